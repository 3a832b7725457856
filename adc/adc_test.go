package adc

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/varint"
)

type builder struct{ buf []byte }

func (b *builder) i32(v int32) *builder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v)) //nolint:gosec
	b.buf = append(b.buf, tmp[:]...)

	return b
}

func (b *builder) u16(v uint16) *builder {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)

	return b
}

func (b *builder) u8(v uint8) *builder {
	b.buf = append(b.buf, v)

	return b
}

func (b *builder) i16(v int16) *builder {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], uint16(v)) //nolint:gosec
	b.buf = append(b.buf, tmp[:]...)

	return b
}

func (b *builder) u32(v uint32) *builder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)

	return b
}

func (b *builder) signed(v int64) *builder {
	b.buf = varint.WriteSigned(b.buf, v)

	return b
}

// sampleDelta appends one ReadSampleDifferential-encoded record: magnitude
// in the high bits, sign in the LSB, using the same leading-one-bit framing
// as an unsigned varint.
func (b *builder) sampleDelta(v int64) *builder {
	magnitude := v
	sign := uint64(0)

	if v < 0 {
		magnitude = -v
		sign = 1
	}

	raw := uint64(magnitude)<<1 | sign
	b.buf = varint.WriteUnsigned(b.buf, raw)

	return b
}

func idWithModes(zeroSup ZeroSupMode, dataRed DataRedMode) int32 {
	return int32(uint32(zeroSup) | uint32(dataRed)<<5) //nolint:gosec
}

func TestDecodeSums_DenseV2(t *testing.T) {
	b := &builder{}
	b.i32(7)   // tel id
	b.i32(3)   // num pixels
	b.i32(2)   // num gains
	// gain 0 (high)
	b.u16(10).u16(20).u16(30)
	// gain 1 (low)
	b.u16(1).u16(2).u16(3)

	h := objheader.ObjectHeader{Type: uint16(format.TypeAdcSums), Version: 2, ID: idWithModes(format.ZeroSupNone, format.DataRedNone)}
	rec, err := DecodeSums(h, b.buf, 0, nil)
	require.NoError(t, err)

	sums, ok := rec.(AdcSums)
	require.True(t, ok)
	require.Equal(t, int32(7), sums.TelescopeID)
	require.Equal(t, []uint32{10, 20, 30}, sums.AdcSum[0])
	require.Equal(t, []uint32{1, 2, 3}, sums.AdcSum[1])
	require.Equal(t, uint8(SignificantEmitted), sums.Significant[0])
	require.Equal(t, uint8(KnownSum), sums.AdcKnown[0][0]&KnownSum)
}

func TestDecodeSums_SkipWeakLowGain(t *testing.T) {
	b := &builder{}
	b.i32(1)
	b.i32(3) // 3 pixels, one group
	b.i32(2)
	// group mask: low gain present for pixel 0 and 2 only -> bits 0,2 => 0b101 = 5
	b.u16(5)
	// low gain values for pixels 0,2 (2 values)
	b.u16(11).u16(33)
	// high gain values for all 3 pixels
	b.u16(100).u16(200).u16(300)

	h := objheader.ObjectHeader{Type: uint16(format.TypeAdcSums), Version: 2, ID: idWithModes(format.ZeroSupNone, format.DataRedSkipWeak)}
	rec, err := DecodeSums(h, b.buf, 0, nil)
	require.NoError(t, err)

	sums := rec.(AdcSums) //nolint:forcetypeassert
	require.Equal(t, []uint32{100, 200, 300}, sums.AdcSum[0])
	require.Equal(t, uint32(11), sums.AdcSum[1][0])
	require.Equal(t, uint32(0), sums.AdcSum[1][1])
	require.Equal(t, uint32(33), sums.AdcSum[1][2])
	require.Equal(t, uint8(0), sums.AdcKnown[1][1]&KnownSum)
}

func TestDecodeSums_PixelListSingletonAndMarkup(t *testing.T) {
	b := &builder{}
	b.i32(1)
	b.i32(10) // num pixels
	b.i32(2)  // num gains
	b.u16(2)  // list size, fixed-width since numPixels < 32768

	// entry 1: pixel 3, no markup bits
	b.i32(3)
	// entry 2: pixel 5, low-gain suppressed (0x2000)
	b.i32(5 | 0x2000)

	// low-gain values: only pixel 3 is not suppressed -> 1 value
	b.u16(7)
	// high-gain values for both entries, non-scaled -> 2 values
	b.u16(111).u16(222)

	h := objheader.ObjectHeader{Type: uint16(format.TypeAdcSums), Version: 2, ID: idWithModes(format.ZeroSupList, format.DataRedNone)}
	rec, err := DecodeSums(h, b.buf, 0, nil)
	require.NoError(t, err)

	sums := rec.(AdcSums) //nolint:forcetypeassert
	require.Equal(t, uint32(111), sums.AdcSum[0][3])
	require.Equal(t, uint32(222), sums.AdcSum[0][5])
	require.Equal(t, uint32(7), sums.AdcSum[1][3])
	require.Equal(t, uint32(0), sums.AdcSum[1][5])
	require.Equal(t, uint8(0), sums.AdcKnown[1][5]&KnownSum)
}

func TestDecodeSums_BitmapZeroSuppression(t *testing.T) {
	b := &builder{}
	b.i32(1)
	b.i32(3) // 3 pixels
	b.i32(1) // single gain
	// presence mask: only pixel 1 present
	b.u16(0b010)
	// high gain value for the 1 present pixel
	b.u16(77)

	h := objheader.ObjectHeader{Type: uint16(format.TypeAdcSums), Version: 2, ID: idWithModes(format.ZeroSupBitmap, format.DataRedNone)}
	rec, err := DecodeSums(h, b.buf, 0, nil)
	require.NoError(t, err)

	sums := rec.(AdcSums) //nolint:forcetypeassert
	require.Equal(t, uint32(77), sums.AdcSum[0][1])
	require.Equal(t, uint32(0), sums.AdcSum[0][0])
	require.Equal(t, uint8(0), sums.AdcKnown[0][0]&KnownSum)
}

// TestDecodeSums_BitmapScale8Bit covers mode (1,2) — zero_sup_mode==bitmap,
// data_red_mode==DataRedScale8Bit — per spec §8 scenario 6: 16 pixels, 8
// z-bits set, of which 4 carry full-width both-gain values (c) and 4 carry
// an 8-bit scaled high gain only (b). Wire order is z, c, b, low-gain for
// the 4 c-bit pixels, then high-gain/scaled for the 8 z-bit pixels.
func TestDecodeSums_BitmapScale8Bit(t *testing.T) {
	b := &builder{}
	b.i32(1)
	b.i32(16) // 16 pixels, one group
	b.i32(2)  // two gains
	b.i16(0)  // threshold (unused at decode time)
	b.i16(0)  // offset_hg8
	b.i16(1)  // scale_hg8
	b.u16(0x00FF) // z: pixels 0-7 present
	b.u16(0x000F) // c (full): pixels 0-3 keep full-width high gain
	b.u16(0x00F0) // b (scaled): pixels 4-7 use the 8-bit scaled high gain
	// low gain for the 4 c-bit pixels (0-3), in order
	b.u16(1).u16(2).u16(3).u16(4)
	// high gain, full-width, for pixels 0-3
	b.u16(100).u16(200).u16(300).u16(400)
	// high gain, 8-bit scaled (scale=1, offset=0), for pixels 4-7
	b.u8(50).u8(60).u8(70).u8(80)

	h := objheader.ObjectHeader{Type: uint16(format.TypeAdcSums), Version: 2, ID: idWithModes(format.ZeroSupBitmap, format.DataRedScale8Bit)}
	rec, err := DecodeSums(h, b.buf, 0, nil)
	require.NoError(t, err)

	sums := rec.(AdcSums) //nolint:forcetypeassert

	// c-bit pixels: full-width high gain and low gain both present.
	require.Equal(t, []uint32{100, 200, 300, 400}, sums.AdcSum[0][0:4])
	require.Equal(t, []uint32{1, 2, 3, 4}, sums.AdcSum[1][0:4])

	// b-bit pixels: scaled high gain only, no low gain recorded.
	require.Equal(t, []uint32{50, 60, 70, 80}, sums.AdcSum[0][4:8])
	require.Equal(t, uint32(0), sums.AdcSum[1][4])
	require.Equal(t, uint8(0), sums.AdcKnown[1][4]&KnownSum)

	// pixels outside z are untouched.
	require.Equal(t, uint8(0), sums.AdcKnown[0][8]&KnownSum)
}

// TestDecodeSums_PixelListWideMarkup covers the 21-bit markup layout (spec
// §8 "Pixel-list markup boundaries"): version>=4 and num_pixels>=32768
// selects both the varint-encoded list length and the 0x200000/0x400000
// markup bits, regardless of the header's unrelated Extended flag.
func TestDecodeSums_PixelListWideMarkup(t *testing.T) {
	b := &builder{}
	b.i32(1)
	b.i32(32768) // num pixels, triggers the wide markup layout
	b.i32(2)     // num gains
	b.buf = varint.WriteUnsigned(b.buf, 2) // list size, varint-encoded

	// entry 1: pixel 40000, no markup bits
	b.u32(40000)
	// entry 2: pixel 50000, low-gain suppressed (0x200000)
	b.u32(50000 | 0x200000)

	// low-gain values: only the first entry is not suppressed -> 1 value
	b.signed(7)
	// high-gain values for both entries, non-scaled -> 2 values (v>=3: differential varint)
	b.signed(111)
	b.signed(111)

	h := objheader.ObjectHeader{Type: uint16(format.TypeAdcSums), Version: 4, ID: idWithModes(format.ZeroSupList, format.DataRedNone)}
	rec, err := DecodeSums(h, b.buf, 0, nil)
	require.NoError(t, err)

	sums := rec.(AdcSums) //nolint:forcetypeassert
	require.Equal(t, uint32(111), sums.AdcSum[0][40000])
	require.Equal(t, uint32(222), sums.AdcSum[0][50000])
	require.Equal(t, uint32(7), sums.AdcSum[1][40000])
	require.Equal(t, uint32(0), sums.AdcSum[1][50000])
	require.Equal(t, uint8(0), sums.AdcKnown[1][50000]&KnownSum)
}

func TestDecodeSums_PreV2Partial(t *testing.T) {
	b := &builder{}
	b.i32(9)

	h := objheader.ObjectHeader{Type: uint16(format.TypeAdcSums), Version: 1}
	rec, err := DecodeSums(h, b.buf, 0, nil)
	require.NoError(t, err)

	sums := rec.(AdcSums) //nolint:forcetypeassert
	require.True(t, sums.Partial)
}

func TestDecodeSamples_DenseV2(t *testing.T) {
	b := &builder{}
	b.i32(1)
	b.i32(2) // num pixels
	b.i32(1) // num gains
	b.i32(2) // num samples
	// pixel 0 trace
	b.u16(1).u16(2)
	// pixel 1 trace
	b.u16(3).u16(4)

	h := objheader.ObjectHeader{Type: uint16(format.TypeAdcSamples), Version: 2, ID: idWithModes(format.ZeroSupNone, format.DataRedNone)}
	rec, err := DecodeSamples(h, b.buf, 0, nil)
	require.NoError(t, err)

	samples := rec.(AdcSamples) //nolint:forcetypeassert
	require.Equal(t, []uint16{1, 2}, samples.Samples[0][0])
	require.Equal(t, []uint16{3, 4}, samples.Samples[0][1])
}

func TestDecodeSamples_PixelRangeList(t *testing.T) {
	b := &builder{}
	b.i32(1)
	b.i32(10) // num pixels
	b.i32(1)  // num gains
	b.i32(2)  // num samples

	// range list: 1 record, singleton pixel 5 (x = -(5)-1 = -6)
	b.signed(1)
	b.signed(-6)

	// trace for pixel 5: accumulated values 9, 8 (deltas +9, -1)
	b.sampleDelta(9).sampleDelta(-1)

	h := objheader.ObjectHeader{Type: uint16(format.TypeAdcSamples), Version: 3, ID: idWithModes(format.ZeroSupList, format.DataRedNone)}
	rec, err := DecodeSamples(h, b.buf, 0, nil)
	require.NoError(t, err)

	samples := rec.(AdcSamples) //nolint:forcetypeassert
	require.Equal(t, []uint16{9, 8}, samples.Samples[0][5])
	require.Nil(t, samples.Samples[0][0])
}

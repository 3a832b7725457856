package objects

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/varint"
)

type builder struct{ buf []byte }

func (b *builder) i32(v int32) *builder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v)) //nolint:gosec
	b.buf = append(b.buf, tmp[:]...)

	return b
}

func (b *builder) i64(v int64) *builder {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v)) //nolint:gosec
	b.buf = append(b.buf, tmp[:]...)

	return b
}

func (b *builder) u8(v uint8) *builder {
	b.buf = append(b.buf, v)

	return b
}

func (b *builder) f32(v float32) *builder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(v))
	b.buf = append(b.buf, tmp[:]...)

	return b
}

func (b *builder) signed(v int64) *builder {
	b.buf = varint.WriteSigned(b.buf, v)

	return b
}

func (b *builder) str(s string) *builder {
	b.buf = append(b.buf, byte(len(s)>>8), byte(len(s)))
	b.buf = append(b.buf, s...)

	return b
}

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	r, err := registry.New()
	require.NoError(t, err)

	RegisterDefaults(r)

	return r
}

func TestDecodeCorsikaRunHeader(t *testing.T) {
	b := &builder{}
	b.i32(3) // array length
	b.f32(12345).f32(20200101).f32(6)

	r := newRegistry(t)
	h := objheader.ObjectHeader{Type: uint16(format.TypeCorsikaRunHeader), Version: 0}
	rec, err := r.Dispatch(h, b.buf, 0)
	require.NoError(t, err)

	rh, ok := rec.(CorsikaRunHeader)
	require.True(t, ok)
	require.Equal(t, int32(12345), rh.RunNumber)
	require.InDelta(t, float32(6), rh.Version, 0.001)
}

func TestDecodeRunHeader_AttachesTelescopeTable(t *testing.T) {
	b := &builder{}
	b.i32(111).i32(20200101)
	b.i32(3)
	b.i32(10).i32(20).i32(30)

	r := newRegistry(t)
	h := objheader.ObjectHeader{Type: uint16(format.TypeRunHeader)}
	rec, err := r.Dispatch(h, b.buf, 0)
	require.NoError(t, err)

	rh, ok := rec.(RunHeader)
	require.True(t, ok)
	require.Equal(t, []int32{10, 20, 30}, rh.TelescopeIDs)

	slot, err := r.Resolve(20)
	require.NoError(t, err)
	require.Equal(t, 1, slot)
}

func TestDecodeCameraOrganisation_SectorListZeroTerminationBug(t *testing.T) {
	b := &builder{}
	b.i32(2)    // num drawers
	b.i32(4)    // num pixels
	b.i32(0).i32(0).i32(1).i32(1) // drawer-of
	b.i32(1)    // num sectors

	// sector 0's member list: pixel 0 (kept, leading), then pixel 0 again
	// (terminates the scan per the reproduced bug), then pixel 7 (never read).
	b.i32(0).i32(0).i32(7).i32(7)

	r := newRegistry(t)
	h := objheader.ObjectHeader{Type: uint16(format.TypeCameraOrganisation)}
	rec, err := r.Dispatch(h, b.buf, 0)
	require.NoError(t, err)

	co, ok := rec.(CameraOrganisation)
	require.True(t, ok)
	require.Len(t, co.SectorOf, 1)
	require.Equal(t, []int32{0}, co.SectorOf[0])
}

func TestDecodePixelList_RangeAndSingleton(t *testing.T) {
	b := &builder{}
	b.i32(7) // code
	b.signed(2) // two records

	// record 1: x=-6 → singleton pixel 5 (-x-1 = 5)
	b.signed(-6)
	// record 2: x=10,y=12 → range [10,12]
	b.signed(10)
	b.signed(12)

	r := newRegistry(t)
	h := objheader.ObjectHeader{Type: uint16(format.TypePixelList)}
	rec, err := r.Dispatch(h, b.buf, 0)
	require.NoError(t, err)

	pl, ok := rec.(PixelList)
	require.True(t, ok)
	require.Equal(t, int32(7), pl.Code)
	require.Equal(t, []int32{5, 10, 11, 12}, pl.Pixels)
}

func TestDecodeTrackEvent(t *testing.T) {
	b := &builder{}
	b.i64(1700000000)
	b.f32(1.5).f32(0.75)

	r := newRegistry(t)
	tel := 42
	h := objheader.ObjectHeader{Type: uint16(format.TrackEventBase) + uint16(tel)}
	rec, err := r.Dispatch(h, b.buf, 0)
	require.NoError(t, err)

	te, ok := rec.(TrackEvent)
	require.True(t, ok)
	require.Equal(t, tel, te.TelescopeID)
	require.Equal(t, int64(1700000000), te.Timestamp)
	require.InDelta(t, float32(1.5), te.Azimuth, 0.001)
}

func TestDecodeInputCard(t *testing.T) {
	b := &builder{}
	b.str("TELESCOPE 1 0 0 0 10")
	b.str("ATMOSPHERE 1")

	r := newRegistry(t)
	h := objheader.ObjectHeader{Type: uint16(format.TypeInputCard)}
	rec, err := r.Dispatch(h, b.buf, 0)
	require.NoError(t, err)

	ic, ok := rec.(InputCard)
	require.True(t, ok)
	require.Equal(t, []string{"TELESCOPE 1 0 0 0 10", "ATMOSPHERE 1"}, ic.Lines)
}

func TestDecodeUnknownType(t *testing.T) {
	r := newRegistry(t)
	h := objheader.ObjectHeader{Type: 54321}
	rec, err := r.Dispatch(h, []byte{9, 9}, 0)
	require.NoError(t, err)

	unk, ok := rec.(registry.UnknownObject)
	require.True(t, ok)
	require.Equal(t, format.ObjectType(54321), unk.ObjectType())
}

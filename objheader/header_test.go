package objheader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/errs"
)

func TestObjectHeader_RoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	cases := []ObjectHeader{
		{Type: 1200, Version: 3, OnlySubObjects: false, Length: 128, ID: 7},
		{Type: 2200, Version: 0, OnlySubObjects: true, Length: 0, ID: -1},
		{Type: 2012, Version: 4, UserBit: true, Length: length30Mask, ID: 42},
	}

	for _, h := range cases {
		data := h.Bytes(engine)
		require.Len(t, data, HeaderSize)

		got, err := Parse(data, engine)
		require.NoError(t, err)
		require.Equal(t, h, got)
	}
}

func TestObjectHeader_ExtendedRoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	h := ObjectHeader{
		Type:     2012,
		Version:  4,
		Extended: true,
		Length:   (uint64(0xABC) << 30) | 0x1234567,
		ID:       99,
	}

	data := h.Bytes(engine)
	require.Len(t, data, HeaderSizeExtended)

	got, err := Parse(data, engine)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestObjectHeader_Parse_TooShort(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	_, err := Parse(make([]byte, 8), engine)
	require.ErrorIs(t, err, errs.ErrMalformedHeader)
}

func TestObjectHeader_Parse_ZeroType(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	h := ObjectHeader{Type: 0, Length: 10, ID: 1}
	data := h.Bytes(engine)

	_, err := Parse(data, engine)
	require.Error(t, err)
}

func TestDetectByteOrder_LittleEndian(t *testing.T) {
	marker := []byte{0x37, 0x8A, 0x1F, 0xD4}
	eng, err := DetectByteOrder(marker)
	require.NoError(t, err)
	require.Equal(t, endian.GetLittleEndianEngine(), eng)
}

func TestDetectByteOrder_BigEndian(t *testing.T) {
	marker := []byte{0xD4, 0x1F, 0x8A, 0x37}
	eng, err := DetectByteOrder(marker)
	require.NoError(t, err)
	require.Equal(t, endian.GetBigEndianEngine(), eng)
}

func TestDetectByteOrder_Invalid(t *testing.T) {
	_, err := DetectByteOrder([]byte{0, 0, 0, 0})
	require.Error(t, err)
}

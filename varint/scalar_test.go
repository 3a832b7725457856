package varint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cta-observatory/goeventio/endian"
)

func TestReadFixedWidth_LittleEndian(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	u16, n, err := ReadU16(buf, 0, engine)
	require.NoError(t, err)
	require.Equal(t, uint16(0x0201), u16)
	require.Equal(t, 2, n)

	u32, n, err := ReadU32(buf, 0, engine)
	require.NoError(t, err)
	require.Equal(t, uint32(0x04030201), u32)
	require.Equal(t, 4, n)

	u64, n, err := ReadU64(buf, 0, engine)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0807060504030201), u64)
	require.Equal(t, 8, n)
}

func TestReadF32F64(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	buf := make([]byte, 12)
	engine.PutUint32(buf[0:4], math.Float32bits(3.5))
	engine.PutUint64(buf[4:12], math.Float64bits(-2.25))

	f32, n, err := ReadF32(buf, 0, engine)
	require.NoError(t, err)
	require.Equal(t, float32(3.5), f32)
	require.Equal(t, 4, n)

	f64, _, err := ReadF64(buf, n, engine)
	require.NoError(t, err)
	require.Equal(t, -2.25, f64)
}

func TestReadU8I8(t *testing.T) {
	buf := []byte{0xFF, 0x7F}

	u8, n, err := ReadU8(buf, 0)
	require.NoError(t, err)
	require.Equal(t, uint8(0xFF), u8)
	require.Equal(t, 1, n)

	i8, _, err := ReadI8(buf, 0)
	require.NoError(t, err)
	require.Equal(t, int8(-1), i8)
}

func TestReadFixedWidth_Truncated(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	_, _, err := ReadU64([]byte{1, 2, 3}, 0, engine)
	require.Error(t, err)
}

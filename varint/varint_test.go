package varint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadUnsigned_RoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 0x7F, 0x80, 0xFF, 0x3FFF, 0x4000,
		1 << 20, 1<<56 - 1, 1 << 56, 1 << 62,
	}

	for _, v := range values {
		buf := WriteUnsigned(nil, v)

		got, n, err := ReadUnsigned(buf, 0)
		require.NoError(t, err)
		require.Equal(t, len(buf), n)
		require.Equal(t, v, got)
	}
}

func TestReadUnsigned_ByteLengths(t *testing.T) {
	cases := []struct {
		value uint64
		n     int
	}{
		{0, 1},
		{0x7F, 1},
		{0x80, 2},
		{1<<56 - 1, 8},
		{1 << 56, 9},
	}

	for _, c := range cases {
		buf := WriteUnsigned(nil, c.value)
		require.Lenf(t, buf, c.n, "value %d", c.value)
	}
}

func TestReadSigned_RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 127, -128, 1 << 20, -(1 << 20)}

	for _, v := range values {
		buf := WriteSigned(nil, v)

		got, n, err := ReadSigned(buf, 0)
		require.NoError(t, err)
		require.Equal(t, len(buf), n)
		require.Equal(t, v, got)
	}
}

func TestReadUnsigned_Truncated(t *testing.T) {
	buf := WriteUnsigned(nil, 1<<20)
	_, _, err := ReadUnsigned(buf[:len(buf)-1], 0)
	require.Error(t, err)
}

func TestReadBitfield(t *testing.T) {
	word := uint32(0b1011_0100)
	require.Equal(t, uint32(0b0100), ReadBitfield(word, 0, 4))
	require.Equal(t, uint32(0b1011), ReadBitfield(word, 4, 4))
}

func TestReadString(t *testing.T) {
	buf := []byte{0x00, 0x05, 'h', 'e', 'l', 'l', 'o', 0xFF}
	s, n, err := ReadString(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "hello", s)
	require.Equal(t, 7, n)
}

func TestReadString_Truncated(t *testing.T) {
	buf := []byte{0x00, 0x05, 'h', 'e'}
	_, _, err := ReadString(buf, 0)
	require.Error(t, err)
}

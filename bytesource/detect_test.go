package bytesource

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

func TestOpen_DetectsGzip(t *testing.T) {
	payload := []byte("hello eventio")

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	src, err := Open(bytes.NewReader(buf.Bytes()), nil)
	require.NoError(t, err)

	got, err := src.Read(len(payload))
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestOpen_DetectsZstd(t *testing.T) {
	payload := []byte("hello eventio, compressed with zstd this time")

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := enc.EncodeAll(payload, nil)
	require.NoError(t, enc.Close())

	src, err := Open(bytes.NewReader(compressed), nil)
	require.NoError(t, err)

	got, err := src.Read(len(payload))
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestOpen_DetectsLZ4(t *testing.T) {
	payload := []byte("hello eventio, lz4 framed this time around")

	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	src, err := Open(bytes.NewReader(buf.Bytes()), nil)
	require.NoError(t, err)

	got, err := src.Read(len(payload))
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestOpen_DetectsS2(t *testing.T) {
	payload := []byte("hello eventio, s2 framed this time")

	var buf bytes.Buffer
	w := s2.NewWriter(&buf)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	src, err := Open(bytes.NewReader(buf.Bytes()), nil)
	require.NoError(t, err)

	got, err := src.Read(len(payload))
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestOpen_RawFallback(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}

	src, err := Open(bytes.NewReader(payload), nil)
	require.NoError(t, err)

	got, err := src.Read(len(payload))
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

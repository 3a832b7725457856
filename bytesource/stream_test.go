package bytesource

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, payload []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestGzipSource_ReadAll(t *testing.T) {
	payload := bytes.Repeat([]byte("eventio-container-payload-"), 64)
	compressed := gzipBytes(t, payload)

	src, err := NewGzip(bytes.NewReader(compressed), nil)
	require.NoError(t, err)
	require.False(t, src.IsSeekable())

	got, err := src.Read(len(payload))
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestGzipSource_SeekEmulation(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 1000)
	compressed := gzipBytes(t, payload)

	reopen := func() (io.Reader, error) {
		return bytes.NewReader(compressed), nil
	}

	src, err := NewGzip(bytes.NewReader(compressed), reopen)
	require.NoError(t, err)
	require.True(t, src.IsSeekable())

	// Forward seek by discard.
	require.NoError(t, src.Seek(500))
	got, err := src.Read(5)
	require.NoError(t, err)
	require.Equal(t, payload[500:505], got)

	// Backward seek forces a reopen.
	require.NoError(t, src.Seek(10))
	got, err = src.Read(5)
	require.NoError(t, err)
	require.Equal(t, payload[10:15], got)
}

func TestGzipSource_BackwardSeekWithoutReopen_Fails(t *testing.T) {
	payload := []byte("abcdef")
	compressed := gzipBytes(t, payload)

	src, err := NewGzip(bytes.NewReader(compressed), nil)
	require.NoError(t, err)

	_, err = src.Read(4)
	require.NoError(t, err)

	require.Error(t, src.Seek(0))
}

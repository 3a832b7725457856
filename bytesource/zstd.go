package bytesource

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// NewZstd wraps a zstd-compressed stream using the pure-Go decoder. This is
// the active implementation; zstd_cgo.go carries an alternate
// valyala/gozstd-backed implementation behind a permanently inactive build
// tag, the same pattern the teacher uses for its own cgo zstd backend.
func NewZstd(r io.Reader, reopen func() (io.Reader, error)) (ByteSource, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}

	var wrapped reopener
	if reopen != nil {
		wrapped = func() (io.Reader, error) {
			raw, err := reopen()
			if err != nil {
				return nil, err
			}

			return zstd.NewReader(raw, zstd.WithDecoderConcurrency(1))
		}
	}

	return newStreamSource(dec, wrapped, zstdDecoderCloser{dec}), nil
}

// zstdDecoderCloser adapts *zstd.Decoder.Close (which returns no error) to
// io.Closer.
type zstdDecoderCloser struct{ dec *zstd.Decoder }

func (c zstdDecoderCloser) Close() error {
	c.dec.Close()

	return nil
}

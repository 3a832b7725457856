package bytesource

import (
	"io"

	"github.com/klauspost/compress/s2"
)

// NewS2 wraps an S2/Snappy-framed stream.
func NewS2(r io.Reader, reopen func() (io.Reader, error)) ByteSource {
	dec := s2.NewReader(r)

	var wrapped reopener
	if reopen != nil {
		wrapped = func() (io.Reader, error) {
			raw, err := reopen()
			if err != nil {
				return nil, err
			}

			return s2.NewReader(raw), nil
		}
	}

	return newStreamSource(dec, wrapped, nil)
}

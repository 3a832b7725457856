package bytesource

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// NewGzip wraps a gzip-compressed stream. reopen, if non-nil, rewinds the
// raw underlying stream to its start (e.g. seeking an *os.File to 0) and is
// used to emulate backward Seek; pass nil when the raw source isn't
// reopenable.
func NewGzip(r io.Reader, reopen func() (io.Reader, error)) (ByteSource, error) {
	gz, err := gzip.NewReader(r)
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

			return gzip.NewReader(raw)
		}
	}

	return newStreamSource(gz, wrapped, gz), nil
}

package bytesource

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// NewLZ4 wraps an LZ4-framed stream, as produced when sim_telarray output is
// repackaged with the lz4 command-line tool rather than gzip or zstd.
func NewLZ4(r io.Reader, reopen func() (io.Reader, error)) ByteSource {
	dec := lz4.NewReader(r)

	var wrapped reopener
	if reopen != nil {
		wrapped = func() (io.Reader, error) {
			raw, err := reopen()
			if err != nil {
				return nil, err
			}

			return lz4.NewReader(raw), nil
		}
	}

	return newStreamSource(dec, wrapped, nil)
}

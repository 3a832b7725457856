package bytesource

import (
	"io"

	"github.com/cta-observatory/goeventio/errs"
)

// rawSource wraps an io.ReadSeeker directly: every operation is a thin
// pass-through, no emulation needed.
type rawSource struct {
	r      io.ReadSeeker
	closer io.Closer
	pos    int64
}

var _ ByteSource = (*rawSource)(nil)

// NewRaw wraps an uncompressed, seekable input (typically *os.File or a
// bytes.Reader) as a ByteSource. If r also implements io.Closer, Close
// closes it.
func NewRaw(r io.ReadSeeker) ByteSource {
	closer, _ := r.(io.Closer)

	return &rawSource{r: r, closer: closer}
}

func (s *rawSource) Read(n int) ([]byte, error) {
	buf := make([]byte, n)

	read, err := io.ReadFull(s.r, buf)
	s.pos += int64(read)

	if err != nil {
		if err == io.ErrUnexpectedEOF { //nolint:errorlint
			err = io.EOF
		}

		return buf[:read], err
	}

	return buf, nil
}

func (s *rawSource) Seek(offset int64) error {
	pos, err := s.r.Seek(offset, io.SeekStart)
	if err != nil {
		return errs.ErrTruncated
	}

	s.pos = pos

	return nil
}

func (s *rawSource) Tell() int64 {
	return s.pos
}

func (s *rawSource) IsSeekable() bool {
	return true
}

func (s *rawSource) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}

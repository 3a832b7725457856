package bytesource

import (
	"io"

	"github.com/cta-observatory/goeventio/errs"
)

// streamSource adapts a one-directional decompressing io.Reader into a
// ByteSource. Forward seeks read and discard; backward seeks call reopen to
// rebuild the decompressor from the start of the underlying stream, then
// discard forward to the target offset. reopen is nil when the underlying
// stream isn't reopenable (e.g. an unbuffered network reader), in which
// case IsSeekable is false and any backward Seek fails.
type streamSource struct {
	r       io.Reader
	rCloser io.Closer
	reopen  reopener
	pos     int64
	discard []byte
}

var _ ByteSource = (*streamSource)(nil)

// newStreamSource wraps r. rCloser, if non-nil, is r's own closer (e.g. the
// *zstd.Decoder itself) and is replaced, not appended, on every reopen so
// Close only ever releases the currently active decoder.
func newStreamSource(r io.Reader, reopen reopener, rCloser io.Closer) *streamSource {
	return &streamSource{r: r, reopen: reopen, rCloser: rCloser}
}

func (s *streamSource) Read(n int) ([]byte, error) {
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

func (s *streamSource) Seek(offset int64) error {
	if offset == s.pos {
		return nil
	}

	if offset > s.pos {
		return s.discardForward(offset - s.pos)
	}

	if s.reopen == nil {
		return errs.ErrCompressionError
	}

	fresh, err := s.reopen()
	if err != nil {
		return errs.ErrCompressionError
	}

	if s.rCloser != nil {
		_ = s.rCloser.Close()
	}

	s.r = fresh
	s.rCloser, _ = fresh.(io.Closer)
	s.pos = 0

	return s.discardForward(offset)
}

func (s *streamSource) discardForward(n int64) error {
	if n == 0 {
		return nil
	}

	if int64(cap(s.discard)) < n && n <= 1<<20 {
		s.discard = make([]byte, n)
	}

	for n > 0 {
		chunk := n
		if chunk > 1<<20 {
			chunk = 1 << 20
		}

		buf := s.discard
		if int64(len(buf)) < chunk {
			buf = make([]byte, chunk)
		}

		read, err := io.ReadFull(s.r, buf[:chunk])
		s.pos += int64(read)
		n -= int64(read)

		if err != nil {
			return errs.ErrTruncated
		}
	}

	return nil
}

func (s *streamSource) Tell() int64 {
	return s.pos
}

func (s *streamSource) IsSeekable() bool {
	return s.reopen != nil
}

func (s *streamSource) Close() error {
	if s.rCloser == nil {
		return nil
	}

	return s.rCloser.Close()
}

package bytesource

import (
	"bufio"
	"bytes"
	"io"
	"os"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	// s2Magic is the Snappy framing format's stream identifier chunk: type
	// 0xff, 3-byte little-endian length 6, then the literal "sNaPpY".
	s2Magic = []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
)

// Open auto-detects the compression of r by sniffing its first bytes and
// returns the matching ByteSource. reopen, if non-nil, rebuilds r from the
// start of the raw, still-compressed stream (e.g. reopening a file and
// seeking to 0); each codec adapter wraps it into its own decoder-level
// reopen. Pass nil when the raw stream can't be rebuilt (the resulting
// source then reports IsSeekable() == false, uncompressed input included).
func Open(r io.Reader, reopen func() (io.Reader, error)) (ByteSource, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(10)
	if err != nil && len(head) == 0 {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return NewGzip(br, reopen)
	case bytes.HasPrefix(head, zstdMagic):
		return NewZstd(br, reopen)
	case bytes.HasPrefix(head, lz4Magic):
		return NewLZ4(br, reopen), nil
	case bytes.HasPrefix(head, s2Magic):
		return NewS2(br, reopen), nil
	default:
		return newStreamSource(br, reopen, nil), nil
	}
}

// OpenFile opens path and auto-detects its compression, using the file
// itself as the reopen source so backward seeks work regardless of codec.
func OpenFile(path string) (ByteSource, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, err
	}

	last := f
	reopen := func() (io.Reader, error) {
		next, err := os.Open(path) //nolint:gosec
		if err != nil {
			return nil, err
		}

		_ = last.Close()
		last = next

		return next, nil
	}

	src, err := Open(f, reopen)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return src, nil
}

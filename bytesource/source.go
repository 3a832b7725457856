// Package bytesource implements component A: a uniform read/seek surface
// over the five kinds of input EventIO files arrive as in practice — raw,
// gzip, zstd, and (less commonly, from repackaged sim_telarray output) lz4
// and S2/Snappy-framed streams.
//
// Every decompressing source emulates seek on top of a one-directional
// decompressor: a forward seek reads and discards, a backward seek reopens
// the underlying stream from scratch, provided the underlying stream is
// itself reopenable. Object iteration (the stream package) never requires
// seek — IsSeekable exists so callers who want random access can detect
// when they don't have it, not so the core read path can assume they do.
package bytesource

import (
	"io"
)

// ByteSource is the uniform read/seek surface every codec adapter in this
// package implements.
type ByteSource interface {
	// Read returns up to n bytes starting at the current position. It
	// returns fewer than n bytes only at end of stream, along with io.EOF.
	Read(n int) ([]byte, error)
	// Seek moves the current position to offset, measured from the start
	// of the (decompressed) stream.
	Seek(offset int64) error
	// Tell returns the current position.
	Tell() int64
	// IsSeekable reports whether Seek can move backward. It is always true
	// for raw sources; for decompressing sources it depends on whether the
	// underlying raw stream can be reopened from the start.
	IsSeekable() bool
	// Close releases any resources held by the source (open files, pooled
	// decoders). It does not close a caller-provided io.Reader that didn't
	// come with a Close method of its own.
	Close() error
}

// reopener produces a fresh io.Reader positioned at the start of the
// decompressed stream, used by seekable decompressing sources to implement
// backward seeks. It returns the underlying error when the stream cannot be
// reopened; the seeking source reports any such failure as
// errs.ErrCompressionError.
type reopener func() (io.Reader, error)

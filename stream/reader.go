package stream

import "github.com/cta-observatory/goeventio/errs"

// Reader presents a ByteSource as a lazy sequence of top-level object
// handles. It owns the source exclusively: two Readers must not share one
// ByteSource, and a Reader's Objects sequence must be fully drained or
// abandoned before opening the file again if random access is needed
// (spec §5 — shared resources are iterator-owned, not shared across
// iterators of the same file).
type Reader struct {
	w *walker
}

// NewReader wraps src. The byte order is undetermined until the first
// object's sync marker is read; every subsequent top-level marker is
// checked against it.
func NewReader(src byteSource) *Reader {
	return &Reader{w: &walker{src: src, topLevel: true}}
}

// Objects returns the lazy top-level object sequence. Ranging over it
// advances the underlying byte source; breaking out of the range leaves
// the source positioned at or before the start of the next unread object,
// never past it.
func (r *Reader) Objects() func(yield func(*ObjectHandle) bool) {
	return r.w.iterate
}

// Err returns the fatal error that stopped iteration, if any. A fatal
// error (MalformedHeader, InvalidSyncMarker) means the decoder could not
// safely locate the next object and iteration cannot be resumed. A clean
// end of stream, or a stream that only produced recoverable Diagnostics,
// leaves Err nil.
func (r *Reader) Err() error {
	return r.w.err
}

// Diagnostics returns the recoverable diagnostics accumulated so far —
// Truncated at a clean top-level boundary, LengthMismatch reconciliation,
// and the like. Façades built on Reader aggregate this into their public
// warnings sink (spec §7).
func (r *Reader) Diagnostics() []errs.Diagnostic {
	return r.w.diagnostics
}

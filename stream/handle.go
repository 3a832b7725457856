// Package stream implements component D: the lazy object-stream iterator.
// A Reader presents a ByteSource as a sequence of top-level ObjectHandles;
// each handle carries its header and the file offsets bracketing its
// payload, without reading the payload itself. Sub-objects of an
// only-sub-objects handle are walked the same way, bounded by the parent's
// extent and without their own sync markers.
package stream

import (
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/errs"
	"github.com/cta-observatory/goeventio/objheader"
)

// ObjectHandle describes one object without having read its payload.
type ObjectHandle struct {
	Header        objheader.ObjectHeader
	PayloadOffset int64 // file offset of the first payload byte
	Boundary      int64 // PayloadOffset + Header.Length: first byte past this object

	owner  *walker
	engine endian.EndianEngine
}

// ReadPayload reads this object's entire payload. It may only be called
// once per handle and only before the iterator that produced it has been
// advanced past this object; Objects()/SubObjects() enforce this by
// skipping any unread payload before yielding the next handle.
func (h *ObjectHandle) ReadPayload() ([]byte, error) {
	return h.owner.readRange(h.PayloadOffset, h.Boundary)
}

// SubObjects walks this handle's nested sub-objects. It panics if
// Header.OnlySubObjects is false; callers should check that first.
func (h *ObjectHandle) SubObjects() func(yield func(*ObjectHandle) bool) {
	if !h.Header.OnlySubObjects {
		panic("stream: SubObjects called on a non-container object")
	}

	w := &walker{
		src:      h.owner.src,
		engine:   h.engine,
		pos:      h.PayloadOffset,
		boundary: h.Boundary,
		topLevel: false,
	}

	return w.iterate
}

// walker holds the mutable iteration state shared by a Reader and any
// SubObjects walker it spawns; both read from the same underlying source,
// so only one may be advancing at a time (spec §5: single-threaded,
// pull-based, byte-source position is shared mutable state).
type walker struct {
	src      byteSource
	engine   endian.EndianEngine
	pos      int64
	boundary int64 // exclusive upper bound; 0 (unbounded) for the top-level walker
	topLevel bool

	pendingBoundary int64 // end of the last yielded handle's payload, not yet skipped past
	err             error
	diagnostics     []errs.Diagnostic
}

// byteSource is the subset of bytesource.ByteSource the walker needs; kept
// narrow here so stream doesn't import bytesource's constructors, only its
// contract.
type byteSource interface {
	Read(n int) ([]byte, error)
	Seek(offset int64) error
	Tell() int64
}

func (w *walker) readRange(start, end int64) ([]byte, error) {
	if w.pos != start {
		if err := w.src.Seek(start); err != nil {
			return nil, errs.ErrTruncated
		}

		w.pos = start
	}

	data, err := w.src.Read(int(end - start))
	w.pos += int64(len(data))

	if err != nil {
		return data, errs.ErrTruncated
	}

	return data, nil
}

func (w *walker) addDiagnostic(d errs.Diagnostic) {
	w.diagnostics = append(w.diagnostics, d)
}

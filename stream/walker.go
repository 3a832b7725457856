package stream

import (
	"github.com/cta-observatory/goeventio/errs"
	"github.com/cta-observatory/goeventio/objheader"
)

// iterate is the shared driver for both the top-level Reader.Objects and
// ObjectHandle.SubObjects sequences; w.topLevel selects whether each object
// is preceded by a 4-byte sync marker and whether iteration is bounded by
// w.boundary (sub-objects) or runs until end of stream (top level).
func (w *walker) iterate(yield func(*ObjectHandle) bool) {
	for {
		if w.err != nil {
			return
		}

		if w.pendingBoundary > w.pos {
			if err := w.src.Seek(w.pendingBoundary); err != nil {
				w.addDiagnostic(errs.Diagnostic{Kind: errs.ErrTruncated, Message: "skipping to next object"})

				return
			}

			w.pos = w.pendingBoundary
		}

		if !w.topLevel && w.pos >= w.boundary {
			return
		}

		if w.topLevel {
			if !w.readSyncMarker() {
				return
			}
		}

		header, payloadOffset, ok := w.readHeader()
		if !ok {
			return
		}

		boundary := payloadOffset + int64(header.Length)

		if !w.topLevel && boundary > w.boundary {
			w.addDiagnostic(errs.Diagnostic{
				Kind: errs.ErrLengthMismatch, ObjectType: int(header.Type), Version: int(header.Version),
				Offset: payloadOffset, Message: "sub-object declared length exceeds parent boundary",
			})
			boundary = w.boundary
		}

		handle := &ObjectHandle{
			Header: header, PayloadOffset: payloadOffset, Boundary: boundary,
			owner: w, engine: w.engine,
		}
		w.pendingBoundary = boundary

		if !yield(handle) {
			return
		}
	}
}

// readSyncMarker reads and validates a top-level object's 4-byte sync
// marker. It returns false when iteration should stop: either a clean EOF
// at an object boundary, or a short read mid-marker (recorded as a
// Truncated diagnostic per the truncation policy).
func (w *walker) readSyncMarker() bool {
	marker, err := w.src.Read(objheader.SyncMarkerSize)
	w.pos += int64(len(marker))

	if err != nil {
		if len(marker) == 0 {
			return false
		}

		w.addDiagnostic(errs.Diagnostic{Kind: errs.ErrTruncated, Message: "short read in sync marker"})

		return false
	}

	if w.engine == nil {
		eng, derr := objheader.DetectByteOrder(marker)
		if derr != nil {
			w.err = derr

			return false
		}

		w.engine = eng

		return true
	}

	if w.engine.Uint32(marker) != objheader.SyncMarkerLE {
		w.err = errs.ErrInvalidSyncMarker

		return false
	}

	return true
}

// readHeader reads a 12- or 16-byte object header at the walker's current
// position. It returns ok == false when iteration should stop: a short or
// mid-header read is a Truncated diagnostic (recoverable, matches the
// truncation policy); a header that parses but fails validation
// (MalformedHeader) is fail-fast and recorded as w.err, since the decoder
// can no longer safely locate the next object.
func (w *walker) readHeader() (objheader.ObjectHeader, int64, bool) {
	word0Buf, err := w.src.Read(4)
	w.pos += int64(len(word0Buf))

	if err != nil {
		w.addDiagnostic(errs.Diagnostic{Kind: errs.ErrTruncated, Message: "short read in header word0"})

		return objheader.ObjectHeader{}, 0, false
	}

	rest, err := w.src.Read(8)
	w.pos += int64(len(rest))

	if err != nil {
		w.addDiagnostic(errs.Diagnostic{Kind: errs.ErrTruncated, Message: "short read in header"})

		return objheader.ObjectHeader{}, 0, false
	}

	headerBuf := make([]byte, 0, objheader.HeaderSizeExtended)
	headerBuf = append(headerBuf, word0Buf...)
	headerBuf = append(headerBuf, rest...)

	if objheader.ExtendedBit(w.engine.Uint32(word0Buf)) {
		ext, err := w.src.Read(objheader.ExtensionSize)
		w.pos += int64(len(ext))

		if err != nil {
			w.addDiagnostic(errs.Diagnostic{Kind: errs.ErrTruncated, Message: "short read in header extension"})

			return objheader.ObjectHeader{}, 0, false
		}

		headerBuf = append(headerBuf, ext...)
	}

	header, err := objheader.Parse(headerBuf, w.engine)
	if err != nil {
		w.err = err

		return objheader.ObjectHeader{}, 0, false
	}

	return header, w.pos, true
}

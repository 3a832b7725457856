// Package eventio provides a high-level, streaming reader for the EventIO
// binary container format used by CORSIKA's IACT/ATMO extension and by
// sim_telarray to store simulated air-shower and telescope data.
//
// EventIO files are a flat sequence of sync-marker-framed objects, each
// tagged with a type code and an optional "only sub-objects" flag that
// nests further objects inside it. This package decodes that structure
// lazily: nothing is read from disk until it is asked for, and a caller
// that only wants a handful of fields from a multi-gigabyte file never
// pays for the rest of it.
//
// # Basic usage
//
// Opening a file and walking its decoded object stream:
//
//	r, err := eventio.Open("run.iact.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	for rec := range r.Decoded() {
//	    switch v := rec.(type) {
//	    case objects.CorsikaEventHeader:
//	        fmt.Printf("event %d, energy %f\n", v.EventNumber, v.Energy)
//	    }
//	}
//	if err := r.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// For CORSIKA IACT or sim_telarray files specifically, IactReader and
// SimtelReader (the iact and simtel packages) assemble the flat object
// stream into whole per-shower or per-array-event records; NewIactReader
// and NewSimtelReader below are convenience constructors over them.
package eventio

import (
	"io"

	"github.com/cta-observatory/goeventio/adc"
	"github.com/cta-observatory/goeventio/bytesource"
	"github.com/cta-observatory/goeventio/errs"
	"github.com/cta-observatory/goeventio/iact"
	"github.com/cta-observatory/goeventio/objects"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/simtel"
	"github.com/cta-observatory/goeventio/stream"
)

// ObjectHandle describes one object in the stream without having read its
// payload yet: its header, and the file offsets bracketing the payload.
// It is a type alias for stream.ObjectHandle so callers of this package
// never need to import stream directly for the common case.
type ObjectHandle = stream.ObjectHandle

// Reader is the top-level convenience entry point: it wraps a ByteSource
// with the object-stream iterator (stream.Reader) and a default type
// registry (registry.Registry, preloaded with every decoder the objects
// and adc packages catalogue), and exposes both the raw and the decoded
// object sequences.
type Reader struct {
	src bytesource.ByteSource
	rd  *stream.Reader
	reg *registry.Registry

	decodeErrs []error
}

// Open opens path, auto-detecting gzip/zstd/lz4/S2 compression from its
// leading bytes, and wraps it in a Reader.
func Open(path string) (*Reader, error) {
	src, err := bytesource.OpenFile(path)
	if err != nil {
		return nil, err
	}

	return newReader(src)
}

// OpenReader wraps an already-open io.Reader, auto-detecting compression
// the same way Open does. reopen, if non-nil, lets the resulting source
// seek backward by rebuilding r from the start; pass nil if r can't be
// rebuilt (Reader still works, but any backward Seek fails).
func OpenReader(r io.Reader, reopen func() (io.Reader, error)) (*Reader, error) {
	src, err := bytesource.Open(r, reopen)
	if err != nil {
		return nil, err
	}

	return newReader(src)
}

func newReader(src bytesource.ByteSource) (*Reader, error) {
	reg, err := registry.New()
	if err != nil {
		return nil, err
	}

	objects.RegisterDefaults(reg)
	adc.RegisterDefaults(reg)

	return &Reader{src: src, rd: stream.NewReader(src), reg: reg}, nil
}

// Objects returns the lazy top-level object-handle sequence (spec §4.D).
// Ranging over it advances the underlying byte source; a handle's payload
// is read on demand via ObjectHandle.ReadPayload, and its sub-objects (if
// any) via ObjectHandle.SubObjects.
func (r *Reader) Objects() func(yield func(*ObjectHandle) bool) {
	return r.rd.Objects()
}

// Decoded returns a lazy sequence of typed records, dispatching every
// top-level object (and, for a container object, every sub-object in
// turn) through the default registry. An unregistered type code surfaces
// as registry.UnknownObject rather than being skipped, so a caller that
// wants to count or log unfamiliar objects still sees them.
//
// A payload that fails to read or decode is recorded (see DecodeErrors)
// and skipped; iteration continues with the next object.
func (r *Reader) Decoded() func(yield func(registry.Record) bool) {
	return func(yield func(registry.Record) bool) {
		if !r.walkDecoded(r.rd.Objects(), yield) {
			return
		}
	}
}

func (r *Reader) walkDecoded(seq func(yield func(*ObjectHandle) bool), yield func(registry.Record) bool) bool {
	for h := range seq {
		if h.Header.OnlySubObjects {
			if !r.walkDecoded(h.SubObjects(), yield) {
				return false
			}

			continue
		}

		payload, err := h.ReadPayload()
		if err != nil {
			r.decodeErrs = append(r.decodeErrs, err)

			continue
		}

		rec, err := r.reg.Dispatch(h.Header, payload, h.PayloadOffset)
		if err != nil {
			r.decodeErrs = append(r.decodeErrs, err)

			continue
		}

		if !yield(rec) {
			return false
		}
	}

	return true
}

// DecodeErrors returns the malformed-payload errors (errs.DecodeError)
// encountered while decoding so far.
func (r *Reader) DecodeErrors() []error { return r.decodeErrs }

// Warnings aggregates the recoverable stream-level diagnostics seen so
// far (Truncated, LengthMismatch, and the like — spec §4.I, §7).
func (r *Reader) Warnings() []errs.Diagnostic { return r.rd.Diagnostics() }

// Err returns the fatal stream error that stopped iteration, if any.
func (r *Reader) Err() error { return r.rd.Err() }

// Close releases the underlying byte source.
func (r *Reader) Close() error { return r.src.Close() }

// NewIactReader opens path and wraps it in an iact.IactReader, the
// CORSIKA-side facade that assembles whole IactEvent records instead of
// a flat object stream.
func NewIactReader(path string) (*iact.IactReader, error) {
	src, err := bytesource.OpenFile(path)
	if err != nil {
		return nil, err
	}

	return iact.NewIactReader(src)
}

// NewSimtelReader opens path and wraps it in a simtel.SimtelReader, the
// sim_telarray-side facade that assembles whole ArrayEvent records.
func NewSimtelReader(path string) (*simtel.SimtelReader, error) {
	src, err := bytesource.OpenFile(path)
	if err != nil {
		return nil, err
	}

	return simtel.NewSimtelReader(src)
}

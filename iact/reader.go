// Package iact implements component H's CORSIKA-side facade: IactReader
// assembles the raw object stream into IactEvent records, hiding
// TelescopeData's sub-object container topology behind a flat
// per-telescope photon-bunch map (spec §4.H).
package iact

import (
	"github.com/cta-observatory/goeventio/bytesource"
	"github.com/cta-observatory/goeventio/errs"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objects"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/stream"
)

// IactEvent is one CORSIKA shower/core combination: the event header, one
// photon-bunch record per telescope, the per-telescope core offsets, and
// the closing particle-count summary.
type IactEvent struct {
	Header        objects.CorsikaEventHeader
	PhotonBunches map[int]objects.IACTPhotons // telescope id -> bunches
	Offsets       objects.ArrayOffsets
	EndBlock      objects.EventEndBlock
}

// IactReader walks a CORSIKA IACT-format EventIO stream and yields
// IactEvent records. File-scoped objects (RunHeader, InputCard,
// TelescopeDefinition) are buffered and exposed as accessors instead of
// being repeated on every event.
type IactReader struct {
	src bytesource.ByteSource
	rd  *stream.Reader
	reg *registry.Registry

	runHeader    *objects.CorsikaRunHeader
	inputCard    *objects.InputCard
	telescopeDef *objects.TelescopeDefinition

	decodeErrs []error
}

// NewIactReader wraps src, which callers open and auto-detect via
// bytesource.Open/OpenFile themselves — the facade owns the resulting
// source exclusively (spec §5).
func NewIactReader(src bytesource.ByteSource) (*IactReader, error) {
	reg, err := registry.New()
	if err != nil {
		return nil, err
	}

	objects.RegisterDefaults(reg)

	return &IactReader{src: src, rd: stream.NewReader(src), reg: reg}, nil
}

// RunHeader returns the most recently seen CorsikaRunHeader, or nil before
// one has been read.
func (r *IactReader) RunHeader() *objects.CorsikaRunHeader { return r.runHeader }

// InputCard returns the most recently seen InputCard, or nil.
func (r *IactReader) InputCard() *objects.InputCard { return r.inputCard }

// TelescopeDefinition returns the most recently seen TelescopeDefinition, or nil.
func (r *IactReader) TelescopeDefinition() *objects.TelescopeDefinition { return r.telescopeDef }

// Warnings aggregates the recoverable stream-level diagnostics seen so far
// (Truncated, LengthMismatch, and the like — spec §4.I, §7).
func (r *IactReader) Warnings() []errs.Diagnostic { return r.rd.Diagnostics() }

// DecodeErrors returns the malformed-payload errors (errs.DecodeError)
// encountered while assembling events so far. Unlike Warnings, these mark
// a specific object's payload as unreadable; the event it belonged to is
// still yielded with whatever fields decoded before the failure.
func (r *IactReader) DecodeErrors() []error { return r.decodeErrs }

// Err returns the fatal stream error that stopped iteration, if any.
func (r *IactReader) Err() error { return r.rd.Err() }

// Close releases the underlying byte source.
func (r *IactReader) Close() error { return r.src.Close() }

// Events returns the lazy IactEvent sequence. Objects outside any
// RunHeader/CorsikaEventHeader/…/EventEndBlock group (HistoryBlock,
// RunEndBlock, and the like) are consumed and discarded by the walker's
// own payload-skipping, never surfaced here.
func (r *IactReader) Events() func(yield func(*IactEvent) bool) {
	return func(yield func(*IactEvent) bool) {
		var cur *IactEvent

		for handle := range r.rd.Objects() {
			switch format.ObjectType(handle.Header.Type) {
			case format.TypeCorsikaRunHeader:
				r.decodeInto(handle, func(rec registry.Record) {
					if rh, ok := rec.(objects.CorsikaRunHeader); ok {
						r.runHeader = &rh
					}
				})
			case format.TypeInputCard:
				r.decodeInto(handle, func(rec registry.Record) {
					if ic, ok := rec.(objects.InputCard); ok {
						r.inputCard = &ic
					}
				})
			case format.TypeTelescopeDefinition:
				r.decodeInto(handle, func(rec registry.Record) {
					if td, ok := rec.(objects.TelescopeDefinition); ok {
						r.telescopeDef = &td
					}
				})
			case format.TypeCorsikaEventHeader:
				r.decodeInto(handle, func(rec registry.Record) {
					if eh, ok := rec.(objects.CorsikaEventHeader); ok {
						cur = &IactEvent{Header: eh, PhotonBunches: make(map[int]objects.IACTPhotons)}
					}
				})
			case format.TypeArrayOffsets:
				r.decodeInto(handle, func(rec registry.Record) {
					if cur == nil {
						return
					}

					if off, ok := rec.(objects.ArrayOffsets); ok {
						cur.Offsets = off
					}
				})
			case format.TypeTelescopeData:
				r.readTelescopeData(handle, cur)
			case format.TypeEventEndBlock:
				r.decodeInto(handle, func(rec registry.Record) {
					if cur == nil {
						return
					}

					if eb, ok := rec.(objects.EventEndBlock); ok {
						cur.EndBlock = eb
					}
				})

				if cur != nil {
					done := cur
					cur = nil

					if !yield(done) {
						return
					}
				}
			}
		}
	}
}

func (r *IactReader) decodeInto(h *stream.ObjectHandle, fn func(registry.Record)) {
	payload, err := h.ReadPayload()
	if err != nil {
		r.decodeErrs = append(r.decodeErrs, err)

		return
	}

	rec, err := r.reg.Dispatch(h.Header, payload, h.PayloadOffset)
	if err != nil {
		r.decodeErrs = append(r.decodeErrs, err)

		return
	}

	fn(rec)
}

// readTelescopeData decodes a TelescopeData container's per-telescope
// IACT-photon sub-objects into cur's PhotonBunches map. A TelescopeData
// seen outside any CorsikaEventHeader (cur == nil) is skipped without
// being read; a stray ArrayOffsets or EventEndBlock is instead decoded and
// then dropped.
func (r *IactReader) readTelescopeData(h *stream.ObjectHandle, cur *IactEvent) {
	if cur == nil {
		return
	}

	for sub := range h.SubObjects() {
		payload, err := sub.ReadPayload()
		if err != nil {
			r.decodeErrs = append(r.decodeErrs, err)

			continue
		}

		rec, err := r.reg.Dispatch(sub.Header, payload, sub.PayloadOffset)
		if err != nil {
			r.decodeErrs = append(r.decodeErrs, err)

			continue
		}

		if ph, ok := rec.(objects.IACTPhotons); ok {
			cur.PhotonBunches[int(ph.TelescopeID)] = ph
		}
	}
}

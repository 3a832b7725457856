// Package registry implements component E: the type-code dispatcher and the
// contextual telescope-id lookup tables it maintains across a file. A
// Registry owns no byte-source state; it is handed a header and an already
// fully-read payload (see stream.ObjectHandle.ReadPayload) and returns a
// typed Record, modeled on the teacher's dispatch-by-key pattern in
// internal/encoding (a type-tag selects a decode function) generalized from
// a closed set of numeric encodings to an open, extensible object registry.
package registry

import (
	"github.com/cta-observatory/goeventio/errs"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/internal/options"
	"github.com/cta-observatory/goeventio/objheader"
)

// Record is implemented by every decoded object type, including UnknownObject.
type Record interface {
	ObjectType() format.ObjectType
}

// Decoder decodes one object's payload into a Record. reg is passed through
// so a decoder that needs telescope-slot resolution (trigger bitmasks,
// per-telescope arrays) can call reg.Resolve, and so a RunHeader decoder can
// call reg.Attach to install the table its own payload describes. offset is
// the file offset of the payload's first byte, carried only so a
// malformed-layout error can be reported against an absolute file position
// (spec §4.G Failure semantics); decoders that don't fail never use it.
type Decoder func(header objheader.ObjectHeader, payload []byte, offset int64, reg *Registry) (Record, error)

// Registry maps type codes to decoders and holds the ring of up to
// ringSize swappable telescope-id tables (spec §4.E).
type Registry struct {
	decoders map[format.ObjectType]Decoder

	tables    [ringSize]*TelescopeTable
	nextSlot  int
	activeRef int
}

const ringSize = 3

// New builds a Registry holding only the decoders supplied through
// options; the default decoder set is installed separately by
// objects.RegisterDefaults and adc.RegisterDefaults.
func New(opts ...options.Option[*Registry]) (*Registry, error) {
	r := &Registry{decoders: make(map[format.ObjectType]Decoder), activeRef: -1}

	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

// WithDecoder registers or overrides the decoder for t.
func WithDecoder(t format.ObjectType, d Decoder) options.Option[*Registry] {
	return options.New(func(r *Registry) error {
		r.Register(t, d)

		return nil
	})
}

// Register installs d as the decoder for t, replacing any previous one.
func (r *Registry) Register(t format.ObjectType, d Decoder) {
	r.decoders[t] = d
}

// Dispatch decodes one object found at payloadOffset. An unregistered type
// code is not an error: it surfaces as an UnknownObject carrying the raw
// payload, so callers can walk past object types this build of the
// registry doesn't know about.
func (r *Registry) Dispatch(header objheader.ObjectHeader, payload []byte, payloadOffset int64) (Record, error) {
	t := format.ObjectType(header.Type)

	d, ok := r.decoders[t]
	if !ok {
		return UnknownObject{Type: t, Header: header, Payload: payload}, nil
	}

	return d(header, payload, payloadOffset, r)
}

// UnknownObject is the opaque passthrough record for an unregistered type
// code (spec §4.E, §7 UnknownType: recover-and-continue).
type UnknownObject struct {
	Type    format.ObjectType
	Header  objheader.ObjectHeader
	Payload []byte
}

func (u UnknownObject) ObjectType() format.ObjectType { return u.Type }

// Resolve maps a telescope id to its slot index in the currently active
// table. It returns errs.ErrNoTelescopeTable if no RunHeader has been
// decoded yet, or errs.ErrUnknownTelescopeID if id isn't in the active
// table.
func (r *Registry) Resolve(telescopeID int32) (int, error) {
	if r.activeRef < 0 {
		return 0, errs.ErrNoTelescopeTable
	}

	t := r.tables[r.activeRef]

	idx, ok := t.slots[telescopeID]
	if !ok {
		return 0, errs.ErrUnknownTelescopeID
	}

	return idx, nil
}

// Attach installs ids as a telescope-id → slot-index table and makes it the
// active one, reusing an existing ring slot if its fingerprint already
// matches (spec §4.E expansion: fingerprint-based reuse). It returns the
// ring index the table occupies, which callers may later pass to UseTable
// to switch back to it (for applications multiplexing several configurations).
func (r *Registry) Attach(ids []int32) int {
	fp := fingerprint(ids)

	for i, t := range r.tables {
		if t != nil && t.fingerprint == fp {
			r.activeRef = i

			return i
		}
	}

	slot := r.nextSlot
	r.tables[slot] = newTelescopeTable(ids, fp)
	r.nextSlot = (r.nextSlot + 1) % ringSize
	r.activeRef = slot

	return slot
}

// UseTable switches the active table to the one previously returned by
// Attach at ref. It returns errs.ErrTableIndexRange if ref is out of range
// or that ring slot has never been populated.
func (r *Registry) UseTable(ref int) error {
	if ref < 0 || ref >= ringSize || r.tables[ref] == nil {
		return errs.ErrTableIndexRange
	}

	r.activeRef = ref

	return nil
}

// ActiveTable returns the currently active telescope-id table, or nil if
// none has been attached yet.
func (r *Registry) ActiveTable() *TelescopeTable {
	if r.activeRef < 0 {
		return nil
	}

	return r.tables[r.activeRef]
}

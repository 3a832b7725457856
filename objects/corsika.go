package objects

import (
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/varint"
)

// CorsikaRunHeader is the decoded form of object type 1200: the CORSIKA run
// header block, a fixed 273-entry float array in the original format. Only
// the fields consumers actually key decisions off are broken out; the rest
// of the block is kept as Raw for callers that need the full vector.
type CorsikaRunHeader struct {
	RunNumber      int32
	Date           int32
	Version        float32
	ObservationLvl []float32 // up to 10 observation levels, as stored
	Raw            []float32
}

func (CorsikaRunHeader) ObjectType() format.ObjectType { return format.TypeCorsikaRunHeader }

func decodeCorsikaRunHeader(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	n := int(c.U32())
	raw := readFloat32Array(c, n)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "corsika-run-header", c.Err)
	}

	rec := CorsikaRunHeader{Raw: raw}
	if len(raw) > 0 {
		rec.RunNumber = int32(raw[0]) //nolint:gosec
	}
	if len(raw) > 1 {
		rec.Date = int32(raw[1]) //nolint:gosec
	}
	if len(raw) > 2 {
		rec.Version = raw[2]
	}
	if len(raw) > 9 {
		rec.ObservationLvl = raw[4:10]
	}

	return rec, nil
}

// TelescopeDefinition is object type 1201: the array of telescope positions
// and sphere radii for the run, in the order RunHeader's telescope-id list
// refers to by slot index.
type TelescopeDefinition struct {
	X, Y, Z []float32
	R       []float32
}

func (TelescopeDefinition) ObjectType() format.ObjectType { return format.TypeTelescopeDefinition }

func decodeTelescopeDefinition(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	n := int(c.I32())
	x := readFloat32Array(c, n)
	y := readFloat32Array(c, n)
	z := readFloat32Array(c, n)
	r := readFloat32Array(c, n)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "telescope-definition", c.Err)
	}

	return TelescopeDefinition{X: x, Y: y, Z: z, R: r}, nil
}

// CorsikaEventHeader is object type 1202: the per-shower CORSIKA event
// header block, a fixed 273-entry float array in the original format.
type CorsikaEventHeader struct {
	EventNumber int32
	ParticleID  float32
	Energy      float32
	Raw         []float32
}

func (CorsikaEventHeader) ObjectType() format.ObjectType { return format.TypeCorsikaEventHeader }

func decodeCorsikaEventHeader(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	n := int(c.U32())
	raw := readFloat32Array(c, n)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "corsika-event-header", c.Err)
	}

	rec := CorsikaEventHeader{Raw: raw}
	if len(raw) > 0 {
		rec.EventNumber = int32(raw[0]) //nolint:gosec
	}
	if len(raw) > 1 {
		rec.ParticleID = raw[1]
	}
	if len(raw) > 3 {
		rec.Energy = raw[3]
	}

	return rec, nil
}

// ArrayOffsets is object type 1203: the shower core offset applied to each
// telescope for one event (one reuse of the same shower across several
// core positions).
type ArrayOffsets struct {
	TimeOffset  float32
	XOffset     []float32
	YOffset     []float32
	Weight      []float32
}

func (ArrayOffsets) ObjectType() format.ObjectType { return format.TypeArrayOffsets }

func decodeArrayOffsets(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	toff := c.F32()
	n := int(c.I32())
	xs := readFloat32Array(c, n)
	ys := readFloat32Array(c, n)

	var weights []float32
	if h.Version >= 1 {
		weights = readFloat32Array(c, n)
	}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "array-offsets", c.Err)
	}

	return ArrayOffsets{TimeOffset: toff, XOffset: xs, YOffset: ys, Weight: weights}, nil
}

// IACTPhotons is object type 1205: one telescope's Cherenkov photon bunches
// for one shower/core combination, stored columnar (structure-of-arrays) so
// large bunch counts don't force per-bunch allocation (spec §5 large-file
// hygiene).
type IACTPhotons struct {
	TelescopeID            int32
	Photons                float32
	X, Y, CX, CY           []float32
	Time                   []float32
	Zem                    []float32
	NumPhotons             []float32
	Wavelength             []float32
	Scattered              []bool // v ≥ 1 only
	Compact                bool
}

func (IACTPhotons) ObjectType() format.ObjectType { return format.TypeIACTPhotons }

func decodeIACTPhotons(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	arrayID := c.I32()
	photons := c.F32()
	n := int(c.I32())
	compact := c.U8() != 0

	rec := IACTPhotons{TelescopeID: arrayID, Photons: photons, Compact: compact}

	rec.X = readFloat32Array(c, n)
	rec.Y = readFloat32Array(c, n)
	rec.CX = readFloat32Array(c, n)
	rec.CY = readFloat32Array(c, n)
	rec.Time = readFloat32Array(c, n)
	rec.Zem = readFloat32Array(c, n)
	rec.NumPhotons = readFloat32Array(c, n)
	rec.Wavelength = readFloat32Array(c, n)

	if h.Version >= 1 {
		flags := make([]bool, n)
		for i := range flags {
			flags[i] = c.U8() != 0
		}
		rec.Scattered = flags
	}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "iact-photons", c.Err)
	}

	return rec, nil
}

// EventEndBlock is object type 1209: per-event CORSIKA particle-count
// summary closing a shower.
type EventEndBlock struct {
	EventNumber int32
	Raw         []float32
}

func (EventEndBlock) ObjectType() format.ObjectType { return format.TypeEventEndBlock }

func decodeEventEndBlock(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	n := int(c.U32())
	raw := readFloat32Array(c, n)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "event-end-block", c.Err)
	}

	rec := EventEndBlock{Raw: raw}
	if len(raw) > 0 {
		rec.EventNumber = int32(raw[0]) //nolint:gosec
	}

	return rec, nil
}

// RunEndBlock is object type 1210: the closing per-run totals block.
type RunEndBlock struct {
	RunNumber   int32
	NumEvents   int32
	Raw         []float32
}

func (RunEndBlock) ObjectType() format.ObjectType { return format.TypeRunEndBlock }

func decodeRunEndBlock(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	n := int(c.U32())
	raw := readFloat32Array(c, n)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "run-end-block", c.Err)
	}

	rec := RunEndBlock{Raw: raw}
	if len(raw) > 0 {
		rec.RunNumber = int32(raw[0]) //nolint:gosec
	}
	if len(raw) > 1 {
		rec.NumEvents = int32(raw[1]) //nolint:gosec
	}

	return rec, nil
}

// InputCard is object type 1212: the verbatim CORSIKA input-card text, one
// string per configuration line.
type InputCard struct {
	Lines []string
}

func (InputCard) ObjectType() format.ObjectType { return format.TypeInputCard }

func decodeInputCard(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	var lines []string
	for c.Remaining() > 0 {
		lines = append(lines, c.String())
		if c.Err != nil {
			break
		}
	}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "input-card", c.Err)
	}

	return InputCard{Lines: lines}, nil
}

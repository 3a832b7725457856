package objects

import (
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/varint"
)

// RunHeader is object type 2000, the sim_telarray run header. Decoding it
// installs the telescope-id → slot-index table used by every later object
// that refers to telescopes by id (spec §4.E, §5 ordering guarantee: the
// dispatcher updates the table inline, before the caller sees the record).
type RunHeader struct {
	RunNumber     int32
	Date          int32
	TelescopeIDs  []int32
	TelescopeRef  int // ring index Registry.Attach assigned this run's table
}

func (RunHeader) ObjectType() format.ObjectType { return format.TypeRunHeader }

func decodeRunHeader(h objheader.ObjectHeader, payload []byte, offset int64, reg *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	run := c.I32()
	date := c.I32()
	n := int(c.I32())
	ids := readInt32Array(c, n)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "run-header", c.Err)
	}

	ref := reg.Attach(ids)

	return RunHeader{RunNumber: run, Date: date, TelescopeIDs: ids, TelescopeRef: ref}, nil
}

// MCRunHeader is object type 2001: the Monte-Carlo simulation configuration
// for the run. Version dispatch follows the ladder in spec §3: v2 adds
// CORSIKA interaction-model ids, v3 adds further shower-generation details,
// v4 adds start timestamps.
type MCRunHeader struct {
	ShowerProgID   int32
	ShowerProgVers int32
	ObservLevels   []float32

	// v ≥ 2
	CorsikaHighEModel int32
	CorsikaLowEModel  int32

	// v ≥ 3
	CorsikaBunchsize float32
	CorsikaWlowerMin float32
	CorsikaWupperMax float32

	// v ≥ 4
	StartTimestamp int64

	Partial bool
}

func (MCRunHeader) ObjectType() format.ObjectType { return format.TypeMCRunHeader }

func decodeMCRunHeader(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	rec := MCRunHeader{}
	rec.ShowerProgID = c.I32()
	rec.ShowerProgVers = c.I32()

	nLvl := int(c.I32())
	rec.ObservLevels = readFloat32Array(c, nLvl)

	if h.Version >= 2 {
		rec.CorsikaHighEModel = c.I32()
		rec.CorsikaLowEModel = c.I32()
	}

	if h.Version >= 3 {
		rec.CorsikaBunchsize = c.F32()
		rec.CorsikaWlowerMin = c.F32()
		rec.CorsikaWupperMax = c.F32()
	}

	if h.Version >= 4 {
		rec.StartTimestamp = c.I64()
	}

	if h.Version > 4 {
		rec.Partial = true
	}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "mc-run-header", c.Err)
	}

	return rec, nil
}

// CameraSoftSet is object type 2006: camera trigger/readout software
// settings (gain switching thresholds, integration window).
type CameraSoftSet struct {
	TelescopeID      int32
	DynRangeLo       float32
	DynRangeHi       float32
	IntegrationWidth int32
}

func (CameraSoftSet) ObjectType() format.ObjectType { return format.TypeCameraSoftSet }

func decodeCameraSoftSet(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	rec := CameraSoftSet{
		TelescopeID:      h.ID,
		DynRangeLo:       c.F32(),
		DynRangeHi:       c.F32(),
		IntegrationWidth: c.I32(),
	}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "camera-soft-set", c.Err)
	}

	return rec, nil
}

// PointingCorrection is object type 2007: per-telescope mechanical pointing
// correction coefficients.
type PointingCorrection struct {
	TelescopeID int32
	Function    int32
	Params      []float64
}

func (PointingCorrection) ObjectType() format.ObjectType { return format.TypePointingCorrection }

func decodePointingCorrection(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	fn := c.I32()
	n := int(c.I32())
	params := readFloat64Array(c, n)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "pointing-correction", c.Err)
	}

	return PointingCorrection{TelescopeID: h.ID, Function: fn, Params: params}, nil
}

// TrackingSetup is object type 2008: tracking-loop configuration for one
// telescope (slewing rate limits, not each individual pointing command —
// those arrive per-event as TrackEvent, 2100+tel).
type TrackingSetup struct {
	TelescopeID  int32
	DriveType    int32
	Parameter    []float32
}

func (TrackingSetup) ObjectType() format.ObjectType { return format.TypeTrackingSetup }

func decodeTrackingSetup(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	driveType := c.I32()
	n := int(c.I32())
	params := readFloat32Array(c, n)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "tracking-setup", c.Err)
	}

	return TrackingSetup{TelescopeID: h.ID, DriveType: driveType, Parameter: params}, nil
}

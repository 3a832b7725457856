package objects

import (
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/varint"
)

// MCShower is object type 2020: the true (simulated, not reconstructed)
// shower parameters — primary particle, energy, geometry — preserved
// alongside the reconstructed Shower record for Monte-Carlo studies.
type MCShower struct {
	ShowerNumber int32
	PrimaryID    int32
	Energy       float32
	Direction    [2]float32 // altitude, azimuth
	HeightFirstInteraction float32
}

func (MCShower) ObjectType() format.ObjectType { return format.TypeMCShower }

func decodeMCShower(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	rec := MCShower{ShowerNumber: h.ID}
	rec.PrimaryID = c.I32()
	rec.Energy = c.F32()
	rec.Direction = [2]float32{c.F32(), c.F32()}
	rec.HeightFirstInteraction = c.F32()

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "mc-shower", c.Err)
	}

	return rec, nil
}

// MCEvent is object type 2021: the true shower-reuse parameters for one
// triggered event (core position actually used, on top of the shared
// MCShower), linking back to the photo-electron sums recorded per
// telescope.
type MCEvent struct {
	EventNumber int32
	ShowerNumber int32
	Core        [2]float32
}

func (MCEvent) ObjectType() format.ObjectType { return format.TypeMCEvent }

func decodeMCEvent(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	rec := MCEvent{EventNumber: h.ID}
	rec.ShowerNumber = c.I32()
	rec.Core = [2]float32{c.F32(), c.F32()}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "mc-event", c.Err)
	}

	return rec, nil
}

// MCpeSum is object type 2026: the per-pixel true photo-electron count sum,
// the noiseless ground truth the calibrated ADC readout approximates.
type MCpeSum struct {
	TelescopeID int32
	NumPhotoElectrons []int32
}

func (MCpeSum) ObjectType() format.ObjectType { return format.TypeMCpeSum }

func decodeMCpeSum(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	n := int(c.I32())
	npe := readInt32Array(c, n)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "mc-pe-sum", c.Err)
	}

	return MCpeSum{TelescopeID: h.ID, NumPhotoElectrons: npe}, nil
}

package objects

import (
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/varint"
)

// TelescopeMonitoring is object type 2022: slow-control status snapshots
// (HV settings, currents, environment) for one telescope, recorded
// periodically rather than per-event.
type TelescopeMonitoring struct {
	TelescopeID int32
	Timestamp   int64
	Status      []int32 // per-subsystem status codes
	HVCurrent   []float32
}

func (TelescopeMonitoring) ObjectType() format.ObjectType { return format.TypeTelescopeMonitoring }

func decodeTelescopeMonitoring(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	rec := TelescopeMonitoring{TelescopeID: h.ID}
	rec.Timestamp = c.I64()

	n := int(c.I32())
	rec.Status = readInt32Array(c, n)
	rec.HVCurrent = readFloat32Array(c, n)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "telescope-monitoring", c.Err)
	}

	return rec, nil
}

// LaserCalibration is object type 2023: per-pixel calibration coefficients
// derived from a laser/LED flat-fielding run.
type LaserCalibration struct {
	TelescopeID int32
	CalibRun    int32
	Gain        []float32 // ADC-count-to-photo-electron factor, per pixel
	GainVariance []float32
}

func (LaserCalibration) ObjectType() format.ObjectType { return format.TypeLaserCalibration }

func decodeLaserCalibration(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	calibRun := c.I32()
	n := int(c.I32())
	gain := readFloat32Array(c, n)

	var variance []float32
	if h.Version >= 1 {
		variance = readFloat32Array(c, n)
	}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "laser-calibration", c.Err)
	}

	return LaserCalibration{TelescopeID: h.ID, CalibRun: calibRun, Gain: gain, GainVariance: variance}, nil
}

package objects

import (
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/varint"
)

// CalibrationEvent is object type 2028: the thin wrapper identifying which
// calibration run/type a following calibration sub-object belongs to.
type CalibrationEvent struct {
	TelescopeID int32
	CalibType   int32
}

func (CalibrationEvent) ObjectType() format.ObjectType { return format.TypeCalibrationEvent }

func decodeCalibrationEvent(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	rec := CalibrationEvent{TelescopeID: h.ID, CalibType: c.I32()}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "calibration-event", c.Err)
	}

	return rec, nil
}

// AuxTrace is the shared record shape for object types 2029 (digital
// auxiliary trace) and 2030 (analog auxiliary trace): a raw waveform
// recorded alongside the camera's own readout, e.g. from an external
// photodiode or a drive-system encoder.
type AuxTrace struct {
	TelescopeID int32
	Digital     bool
	ChannelID   int32
	Samples     []int32
}

// DigitalAuxTrace is object type 2029.
type DigitalAuxTrace struct{ AuxTrace }

func (DigitalAuxTrace) ObjectType() format.ObjectType { return format.TypeAuxTraceDigital }

// AnalogAuxTrace is object type 2030.
type AnalogAuxTrace struct{ AuxTrace }

func (AnalogAuxTrace) ObjectType() format.ObjectType { return format.TypeAuxTraceAnalog }

func decodeAuxTrace(digital bool) registry.Decoder {
	return func(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
		c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

		channel := c.I32()
		n := int(c.I32())
		samples := readInt32Array(c, n)

		if c.Err != nil {
			return nil, decodeErr(int(h.Type), int(h.Version), offset, "aux-trace", c.Err)
		}

		trace := AuxTrace{TelescopeID: h.ID, Digital: digital, ChannelID: channel, Samples: samples}

		if digital {
			return DigitalAuxTrace{trace}, nil
		}

		return AnalogAuxTrace{trace}, nil
	}
}

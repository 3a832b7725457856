package objects

import (
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/varint"
)

// TrackEvent is the per-telescope pointing record for type codes 2100+tel
// (format.TrackEventBase + telescope id, see format.IsTrackEvent).
type TrackEvent struct {
	Type        format.ObjectType
	TelescopeID int
	Timestamp   int64
	Azimuth     float32
	Altitude    float32
}

func (t TrackEvent) ObjectType() format.ObjectType { return t.Type }

func decodeTrackEvent(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	rec := TrackEvent{
		Type:        format.ObjectType(h.Type),
		TelescopeID: format.TrackEventTelescopeID(format.ObjectType(h.Type)),
	}
	rec.Timestamp = c.I64()
	rec.Azimuth = c.F32()
	rec.Altitude = c.F32()

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "track-event", c.Err)
	}

	return rec, nil
}

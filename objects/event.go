package objects

import (
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/varint"
)

// CentralEvent is object type 2009: the global trigger record for one
// event, with arrays indexed by triggered telescope slot. v2 adds, for
// each telescope in the triggered list, a u8 count followed by that many
// float64 trigger times; no per-telescope bitmask is read, so every
// listed telescope gets an entry, possibly empty.
type CentralEvent struct {
	EventNumber      int32
	Timestamp        int64
	TriggeredMask    []int32 // slot indices that triggered, via Registry.Resolve; an id that doesn't resolve is kept as is

	// v ≥ 2
	TriggerTypeTimes map[int32][]float64 // telescope id → per-type trigger times
	Partial          bool
}

func (CentralEvent) ObjectType() format.ObjectType { return format.TypeCentralEvent }

func decodeCentralEvent(h objheader.ObjectHeader, payload []byte, offset int64, reg *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	rec := CentralEvent{EventNumber: h.ID}
	rec.Timestamp = c.I64()

	n := int(c.I32())
	ids := readInt32Array(c, n)

	rec.TriggeredMask = make([]int32, 0, n)
	for _, id := range ids {
		slot, err := reg.Resolve(id)
		if err != nil {
			rec.TriggeredMask = append(rec.TriggeredMask, id)

			continue
		}

		rec.TriggeredMask = append(rec.TriggeredMask, int32(slot)) //nolint:gosec
	}

	if h.Version >= 2 {
		rec.TriggerTypeTimes = make(map[int32][]float64, len(ids))

		for _, id := range ids {
			nTypes := int(c.U8())
			rec.TriggerTypeTimes[id] = readFloat64Array(c, nTypes)
		}
	}

	if h.Version > 2 {
		rec.Partial = true
	}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "central-event", c.Err)
	}

	return rec, nil
}

// TelEventHeader is object type 2011: the per-telescope trigger source and
// the list of local trigger sectors that fired.
type TelEventHeader struct {
	TelescopeID     int32
	GlobalEventCnt  int32
	TriggerSource   int32
	TriggeredSectors []int32
}

func (TelEventHeader) ObjectType() format.ObjectType { return format.TypeTelEventHeader }

func decodeTelEventHeader(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	rec := TelEventHeader{TelescopeID: h.ID}
	rec.GlobalEventCnt = c.I32()
	rec.TriggerSource = c.I32()

	n := int(c.I32())
	rec.TriggeredSectors = readInt32Array(c, n)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "tel-event-header", c.Err)
	}

	return rec, nil
}

// ImageParameters is object type 2014: the Hillas-parameter summary of one
// telescope's calibrated image.
type ImageParameters struct {
	TelescopeID int32
	Size        float32
	Cen         [2]float32 // centroid x, y
	Length      float32
	Width       float32
	Dist        float32
	Alpha       float32
	Miss        float32
	Azwidth     float32
}

func (ImageParameters) ObjectType() format.ObjectType { return format.TypeImageParameters }

func decodeImageParameters(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	rec := ImageParameters{TelescopeID: h.ID}
	rec.Size = c.F32()
	rec.Cen = [2]float32{c.F32(), c.F32()}
	rec.Length = c.F32()
	rec.Width = c.F32()
	rec.Dist = c.F32()
	rec.Alpha = c.F32()
	rec.Miss = c.F32()
	rec.Azwidth = c.F32()

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "image-parameters", c.Err)
	}

	return rec, nil
}

// Shower is object type 2015: the array-level shower-geometry
// reconstruction derived from the telescopes' combined images.
type Shower struct {
	EventNumber int32
	Direction   [2]float32 // altitude, azimuth
	Core        [2]float32 // x, y on the ground plane
	MeanScaledWidth, MeanScaledLength float32
	EnergyEstimate float32
}

func (Shower) ObjectType() format.ObjectType { return format.TypeShower }

func decodeShower(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	rec := Shower{EventNumber: h.ID}
	rec.Direction = [2]float32{c.F32(), c.F32()}
	rec.Core = [2]float32{c.F32(), c.F32()}
	rec.MeanScaledWidth = c.F32()
	rec.MeanScaledLength = c.F32()
	rec.EnergyEstimate = c.F32()

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "shower", c.Err)
	}

	return rec, nil
}

// PixelTiming is object type 2016: per-pixel pulse-timing information
// (signal peak time and, when recorded, the sampled pulse shape).
type PixelTiming struct {
	TelescopeID int32
	PeakTime    []float32
	PulseShape  [][]float32 // nil entries for pixels with no recorded shape
}

func (PixelTiming) ObjectType() format.ObjectType { return format.TypePixelTiming }

func decodePixelTiming(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	n := int(c.I32())
	peak := readFloat32Array(c, n)

	shapes := make([][]float32, n)

	if h.Version >= 1 {
		for i := 0; i < n; i++ {
			m := int(c.U8())
			if m > 0 {
				shapes[i] = readFloat32Array(c, m)
			}
		}
	}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "pixel-timing", c.Err)
	}

	return PixelTiming{TelescopeID: h.ID, PeakTime: peak, PulseShape: shapes}, nil
}

// PixelCalibrated is object type 2017: the fully calibrated per-pixel
// amplitude (photo-electron equivalent), the end product of the ADC
// decode + calibration pipeline.
type PixelCalibrated struct {
	TelescopeID int32
	Amplitude   []float32
}

func (PixelCalibrated) ObjectType() format.ObjectType { return format.TypePixelCalibrated }

func decodePixelCalibrated(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	n := int(c.I32())
	amp := readFloat32Array(c, n)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "pixel-calibrated", c.Err)
	}

	return PixelCalibrated{TelescopeID: h.ID, Amplitude: amp}, nil
}

// PixelList is object type 2027: an explicit list of pixel ids (e.g. an
// image's surviving-pixel mask), using the same signed-varint pixel-range
// list codec as the ADC sample decoder's pixel selection (spec §4.G).
type PixelList struct {
	TelescopeID int32
	Code        int32
	Pixels      []int32
}

func (PixelList) ObjectType() format.ObjectType { return format.TypePixelList }

func decodePixelList(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	code := c.I32()
	n := int(c.Signed())

	pixels := make([]int32, 0, n)

	for i := 0; i < n; i++ {
		x := c.Signed()
		if c.Err != nil {
			break
		}

		if x < 0 {
			pixels = append(pixels, int32(-x-1)) //nolint:gosec

			continue
		}

		y := c.Signed()
		if c.Err != nil {
			break
		}

		for p := x; p <= y; p++ {
			pixels = append(pixels, int32(p)) //nolint:gosec
		}
	}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "pixel-list", c.Err)
	}

	return PixelList{TelescopeID: h.ID, Code: code, Pixels: pixels}, nil
}

// PixelTriggerTimes is object type 2032: the per-pixel local-trigger time,
// recorded for telescopes with pixel-level timing trigger logic.
type PixelTriggerTimes struct {
	TelescopeID int32
	Pixel       []int32
	Time        []float32
}

func (PixelTriggerTimes) ObjectType() format.ObjectType { return format.TypePixelTriggerTimes }

func decodePixelTriggerTimes(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	n := int(c.I32())
	pixels := readInt32Array(c, n)
	times := readFloat32Array(c, n)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "pixel-trigger-times", c.Err)
	}

	return PixelTriggerTimes{TelescopeID: h.ID, Pixel: pixels, Time: times}, nil
}

package objects

import (
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/varint"
)

// CameraSettings is object type 2002: per-pixel camera geometry. v4
// introduces curved focal-surface offsets and per-pixel normal vectors; v5
// adds an effective focal length distinct from the nominal one.
type CameraSettings struct {
	TelescopeID    int32
	FocalLength    float32
	PixelX, PixelY []float32
	PixelShape     []int32
	PixelSize      []float32

	// v ≥ 4
	CurvedSurface bool
	PixelZ        []float32 // curved-surface offset, nil if !CurvedSurface
	NormalX       []float32
	NormalY       []float32

	// v ≥ 5
	EffectiveFocalLength float32

	Partial bool
}

func (CameraSettings) ObjectType() format.ObjectType { return format.TypeCameraSettings }

func decodeCameraSettings(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	rec := CameraSettings{TelescopeID: h.ID}
	rec.FocalLength = c.F32()

	n := int(c.I32())
	rec.PixelX = readFloat32Array(c, n)
	rec.PixelY = readFloat32Array(c, n)
	rec.PixelShape = readInt32Array(c, n)
	rec.PixelSize = readFloat32Array(c, n)

	if h.Version >= 4 {
		rec.CurvedSurface = c.U8() != 0
		if rec.CurvedSurface {
			rec.PixelZ = readFloat32Array(c, n)
		}
		rec.NormalX = readFloat32Array(c, n)
		rec.NormalY = readFloat32Array(c, n)
	}

	if h.Version >= 5 {
		rec.EffectiveFocalLength = c.F32()
	}

	if h.Version > 5 {
		rec.Partial = true
	}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "camera-settings", c.Err)
	}

	return rec, nil
}

// CameraOrganisation is object type 2003: the drawer/card/chip/channel
// readout mapping and the trigger-sector membership lists.
type CameraOrganisation struct {
	TelescopeID int32
	NumDrawers  int32
	DrawerOf    []int32 // pixel → drawer id
	SectorOf    [][]int32 // sector index → member pixel ids
}

func (CameraOrganisation) ObjectType() format.ObjectType { return format.TypeCameraOrganisation }

func decodeCameraOrganisation(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	nDrawers := c.I32()
	nPixels := int(c.I32())
	drawerOf := readInt32Array(c, nPixels)

	nSectors := int(c.I32())
	sectors := make([][]int32, nSectors)

	for s := 0; s < nSectors; s++ {
		sectors[s] = readSectorList(c, nPixels)
	}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "camera-organisation", c.Err)
	}

	return CameraOrganisation{TelescopeID: h.ID, NumDrawers: nDrawers, DrawerOf: drawerOf, SectorOf: sectors}, nil
}

// readSectorList reads one sector's member-pixel list: at most maxPixels
// int32 ids, zero-terminated, with reading stopping right after the
// terminating zero —
// but a long-standing bug in the writer means pixel id 0 (a valid id) also
// terminates the scan once it appears after the first slot, so a sector
// that legitimately contains pixel 0 in a non-leading position loses
// everything after it. The decoder reproduces that bug rather than fixing
// it: slot 0 is always kept, and the scan stops at the first zero
// thereafter (spec §4.G edge-case policy, generalized here from ADC sector
// lists to camera-organisation sector lists since both share the writer).
func readSectorList(c *varint.Cursor, maxPixels int) []int32 {
	var out []int32

	for i := 0; i < maxPixels; i++ {
		id := c.I32()
		if c.Err != nil {
			return out
		}

		if i > 0 && id == 0 {
			break
		}

		out = append(out, id)
	}

	return out
}

// PixelSetting is object type 2004: per-pixel trigger/readout thresholds
// and amplification settings.
type PixelSetting struct {
	TelescopeID int32
	Threshold   []float32
	GainHiLo    []float32
}

func (PixelSetting) ObjectType() format.ObjectType { return format.TypePixelSetting }

func decodePixelSetting(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	n := int(c.I32())
	threshold := readFloat32Array(c, n)
	gain := readFloat32Array(c, n)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "pixel-setting", c.Err)
	}

	return PixelSetting{TelescopeID: h.ID, Threshold: threshold, GainHiLo: gain}, nil
}

// PixelDisabled is object type 2005: the set of pixels excluded from
// triggering and/or readout for this telescope.
type PixelDisabled struct {
	TelescopeID        int32
	TriggerDisabled    []int32
	HVDisabled         []int32
}

func (PixelDisabled) ObjectType() format.ObjectType { return format.TypePixelDisabled }

func decodePixelDisabled(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	nTrig := int(c.I32())
	trig := readInt32Array(c, nTrig)

	nHV := int(c.I32())
	hv := readInt32Array(c, nHV)

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "pixel-disabled", c.Err)
	}

	return PixelDisabled{TelescopeID: h.ID, TriggerDisabled: trig, HVDisabled: hv}, nil
}

// Package objheader implements the EventIO object header codec (spec §4.C):
// the 12- or 16-byte header shared by every object, and the 4-byte sync
// marker that frames top-level objects.
//
// The struct layout and the Parse/Bytes pair are modeled directly on the
// teacher's section.NumericHeader: a fixed-size record parsed from a byte
// slice with explicit validation, rather than struct-tagged reflection.
package objheader

import (
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/errs"
)

// ObjectHeader is the decoded form of an object's 12 (or 16, if Extended)
// byte header. Sub-object headers use the same layout; only top-level
// objects are preceded by a sync marker.
type ObjectHeader struct {
	Type           uint16
	UserBit        bool // informational only; dispatch must ignore it
	Extended       bool
	Version        uint16 // 12 bits
	OnlySubObjects bool
	Length         uint64 // payload length in bytes, 30 or 42 bits
	ID             int32
}

// HeaderByteLen returns 12, or 16 if the header carries an extension word.
func (h ObjectHeader) HeaderByteLen() int {
	if h.Extended {
		return HeaderSizeExtended
	}

	return HeaderSize
}

// ExtendedBit reports whether word0 (the first 4 header bytes, already
// decoded through the file's engine) marks an extended (16-byte) header.
// Callers that must read the header incrementally — not knowing up front
// whether 12 or 16 bytes are coming — read the first word, check this, and
// only then read the extension word if needed.
func ExtendedBit(word0 uint32) bool {
	return word0&extendedMask != 0
}

// Parse decodes an ObjectHeader from data using engine's byte order. data
// must be at least HeaderSize bytes; if the extended bit is set in the
// first word, the caller must re-slice data to include the extension word
// before a second call is unnecessary — Parse reads HeaderSizeExtended
// bytes itself when it detects the bit, provided data is long enough.
//
// Returns errs.ErrMalformedHeader if data is too short or type == 0.
func Parse(data []byte, engine endian.EndianEngine) (ObjectHeader, error) {
	if len(data) < HeaderSize {
		return ObjectHeader{}, errs.ErrMalformedHeader
	}

	word0 := engine.Uint32(data[0:4])
	word1 := engine.Uint32(data[4:8])
	idWord := engine.Uint32(data[8:12])

	h := ObjectHeader{
		Type:           uint16(word0 & typeMask),
		UserBit:        word0&userBitMask != 0,
		Extended:       word0&extendedMask != 0,
		Version:        uint16((word0 & versionMask) >> versionShift),
		OnlySubObjects: word1&onlySubObjMask != 0,
		Length:         uint64(word1 & length30Mask),
		ID:             int32(idWord), //nolint:gosec
	}

	if h.Type == 0 {
		return ObjectHeader{}, errs.ErrMalformedHeader
	}

	if h.Extended {
		if len(data) < HeaderSizeExtended {
			return ObjectHeader{}, errs.ErrMalformedHeader
		}

		ext := engine.Uint32(data[12:16])
		high := uint64(ext) >> length12HighShift
		h.Length |= high << 30
	}

	return h, nil
}

// Bytes serializes h back into its wire form, for round-trip property tests.
func (h ObjectHeader) Bytes(engine endian.EndianEngine) []byte {
	n := HeaderSize
	if h.Extended {
		n = HeaderSizeExtended
	}

	buf := make([]byte, n)

	word0 := uint32(h.Type) & typeMask
	if h.UserBit {
		word0 |= userBitMask
	}
	if h.Extended {
		word0 |= extendedMask
	}
	word0 |= (uint32(h.Version) << versionShift) & versionMask

	word1 := uint32(h.Length) & length30Mask
	if h.OnlySubObjects {
		word1 |= onlySubObjMask
	}

	engine.PutUint32(buf[0:4], word0)
	engine.PutUint32(buf[4:8], word1)
	engine.PutUint32(buf[8:12], uint32(h.ID)) //nolint:gosec

	if h.Extended {
		high := uint32(h.Length >> 30)
		engine.PutUint32(buf[12:16], high<<length12HighShift)
	}

	return buf
}

// DetectByteOrder inspects a 4-byte top-level sync marker and returns the
// endian engine it selects, or errs.ErrInvalidSyncMarker if marker matches
// neither the canonical nor byte-reversed constant.
func DetectByteOrder(marker []byte) (endian.EndianEngine, error) {
	if len(marker) != SyncMarkerSize {
		return nil, errs.ErrInvalidSyncMarker
	}

	le := endian.GetLittleEndianEngine()
	be := endian.GetBigEndianEngine()

	if le.Uint32(marker) == SyncMarkerLE {
		return le, nil
	}

	if be.Uint32(marker) == SyncMarkerLE {
		return be, nil
	}

	return nil, errs.ErrInvalidSyncMarker
}

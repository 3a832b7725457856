// Package objects implements component F: the simple-payload decoders for
// the EventIO object catalogue (spec §3, §4.F, §6). Each decoder consumes
// exactly one object's payload through a varint.Cursor and returns an
// immutable record; none reads past its own object, and version dispatch
// follows the linear-ladder pattern of §4.F — later versions only append
// trailing fields or widen an encoding, never reinterpret an earlier one.
//
// Container object types (TelescopeData, TelEvent, HistoryBlock) have no
// decoder here: their payload is a nested sub-object sequence, walked
// directly by the facades in the iact/simtel packages via
// stream.ObjectHandle.SubObjects rather than dispatched through the
// registry.
package objects

import (
	"github.com/cta-observatory/goeventio/errs"
	"github.com/cta-observatory/goeventio/varint"
)

// readFloat32Array reads n consecutive IEEE-754 floats.
func readFloat32Array(c *varint.Cursor, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = c.F32()
	}

	return out
}

// readFloat64Array reads n consecutive IEEE-754 doubles.
func readFloat64Array(c *varint.Cursor, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = c.F64()
	}

	return out
}

// readInt32Array reads n consecutive fixed-width 32-bit signed integers.
func readInt32Array(c *varint.Cursor, n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = c.I32()
	}

	return out
}

// readUint16Array reads n consecutive fixed-width 16-bit unsigned integers.
func readUint16Array(c *varint.Cursor, n int) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = c.U16()
	}

	return out
}

// readStringArray reads n consecutive length-prefixed strings.
func readStringArray(c *varint.Cursor, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = c.String()
	}

	return out
}

// Partial marks a record decoded from an object version ahead of this
// build's documented range: the decoder read as much of the known prefix as
// it could and skipped the remainder (spec §4.F, §7 UnsupportedVersion).
type Partial struct {
	Partial bool
}

func decodeErr(objType int, version int, offset int64, category string, err error) error {
	return &errs.DecodeError{ObjectType: objType, Version: version, Offset: offset, Category: category, Err: err}
}

package varint

import (
	"math"

	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/errs"
)

// ReadU8 reads a single byte at offset.
func ReadU8(data []byte, offset int) (uint8, int, error) {
	if offset+1 > len(data) {
		return 0, offset, errs.ErrUnexpectedEnd
	}

	return data[offset], offset + 1, nil
}

// ReadI8 reads a single signed byte at offset.
func ReadI8(data []byte, offset int) (int8, int, error) {
	v, next, err := ReadU8(data, offset)

	return int8(v), next, err //nolint:gosec
}

// ReadU16 reads a fixed-width 16-bit unsigned integer using engine's byte order.
func ReadU16(data []byte, offset int, engine endian.EndianEngine) (uint16, int, error) {
	if offset+2 > len(data) {
		return 0, offset, errs.ErrUnexpectedEnd
	}

	return engine.Uint16(data[offset : offset+2]), offset + 2, nil
}

// ReadI16 reads a fixed-width 16-bit signed integer.
func ReadI16(data []byte, offset int, engine endian.EndianEngine) (int16, int, error) {
	v, next, err := ReadU16(data, offset, engine)

	return int16(v), next, err //nolint:gosec
}

// ReadU32 reads a fixed-width 32-bit unsigned integer.
func ReadU32(data []byte, offset int, engine endian.EndianEngine) (uint32, int, error) {
	if offset+4 > len(data) {
		return 0, offset, errs.ErrUnexpectedEnd
	}

	return engine.Uint32(data[offset : offset+4]), offset + 4, nil
}

// ReadI32 reads a fixed-width 32-bit signed integer.
func ReadI32(data []byte, offset int, engine endian.EndianEngine) (int32, int, error) {
	v, next, err := ReadU32(data, offset, engine)

	return int32(v), next, err //nolint:gosec
}

// ReadU64 reads a fixed-width 64-bit unsigned integer.
func ReadU64(data []byte, offset int, engine endian.EndianEngine) (uint64, int, error) {
	if offset+8 > len(data) {
		return 0, offset, errs.ErrUnexpectedEnd
	}

	return engine.Uint64(data[offset : offset+8]), offset + 8, nil
}

// ReadI64 reads a fixed-width 64-bit signed integer.
func ReadI64(data []byte, offset int, engine endian.EndianEngine) (int64, int, error) {
	v, next, err := ReadU64(data, offset, engine)

	return int64(v), next, err //nolint:gosec
}

// ReadF32 reads an IEEE-754 single-precision float.
func ReadF32(data []byte, offset int, engine endian.EndianEngine) (float32, int, error) {
	v, next, err := ReadU32(data, offset, engine)

	return math.Float32frombits(v), next, err
}

// ReadF64 reads an IEEE-754 double-precision float.
func ReadF64(data []byte, offset int, engine endian.EndianEngine) (float64, int, error) {
	v, next, err := ReadU64(data, offset, engine)

	return math.Float64frombits(v), next, err
}

// ReadBitfield extracts a width-bit field starting at bit position shift
// (counted from the LSB) out of word.
func ReadBitfield(word uint32, shift, width int) uint32 {
	mask := uint32(1)<<width - 1

	return (word >> shift) & mask
}

// ReadString reads a length-prefixed string: a 16-bit count followed by that
// many raw bytes, not null-terminated. The count prefix is big-endian
// regardless of the file's detected byte order, a historical quirk carried
// over from the original format's text fields (spec §6).
func ReadString(data []byte, offset int) (string, int, error) {
	if offset+2 > len(data) {
		return "", offset, errs.ErrUnexpectedEnd
	}

	n := int(data[offset])<<8 | int(data[offset+1])
	offset += 2

	if offset+n > len(data) {
		return "", offset, errs.ErrUnexpectedEnd
	}

	return string(data[offset : offset+n]), offset + n, nil
}

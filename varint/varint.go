// Package varint implements the EventIO primitive codecs (spec §4.B): the
// variable-length integer format used throughout the container, fixed-width
// scalar readers, the length-prefixed string reader, and the two
// differential-array codecs layered on top of the varint.
//
// Decoding is purely functional: every reader takes (data, offset) and
// returns (value, newOffset, error), mirroring the teacher's
// section.NumericHeader.Parse style of explicit, allocation-free parsing
// rather than an io.Reader-based API. Cursor (cursor.go) is a thin
// convenience wrapper over the same functions for callers decoding many
// fields from one buffer in sequence.
package varint

import "github.com/cta-observatory/goeventio/errs"

// readRaw decodes the raw (non-zigzag) unsigned magnitude encoded by the
// container's variable-length prefix code and returns the number of bytes
// consumed.
//
// The first byte's leading one-bits (0 to 7 of them) count the additional
// bytes that follow: a run of k one-bits followed by a terminating zero bit
// means a (k+1)-byte encoding, with the first byte's remaining 7-k bits as
// the most-significant bits of the value and the following k bytes supplying
// the rest, most-significant byte first. A first byte of 0xFF is a pure
// length marker with no value bits of its own: the value is the following 8
// bytes read as a 64-bit big-endian integer. This gives 1-to-9-byte
// encodings able to hold any value in [0, 2^64).
func readRaw(data []byte, offset int) (uint64, int, error) {
	if offset >= len(data) {
		return 0, offset, errs.ErrUnexpectedEnd
	}

	lead := data[offset]

	if lead == 0xFF {
		if offset+9 > len(data) {
			return 0, offset, errs.ErrUnexpectedEnd
		}

		var v uint64
		for i := 1; i <= 8; i++ {
			v = (v << 8) | uint64(data[offset+i])
		}

		return v, offset + 9, nil
	}

	k := leadingOnes(lead)
	length := k + 1

	if offset+length > len(data) {
		return 0, offset, errs.ErrUnexpectedEnd
	}

	headerBits := uint64(lead) & (0xFF >> (k + 1))

	v := headerBits
	for i := 1; i < length; i++ {
		v = (v << 8) | uint64(data[offset+i])
	}

	return v, offset + length, nil
}

// leadingOnes counts the run of consecutive one-bits at the top of b,
// excluding the all-ones case (0xFF), which readRaw handles separately.
func leadingOnes(b byte) int {
	k := 0
	for k < 7 && b&(0x80>>k) != 0 {
		k++
	}

	return k
}

// ReadUnsigned decodes an unsigned varint at offset. It is the direct
// wire-level reader; most object fields go through ReadSigned instead.
func ReadUnsigned(data []byte, offset int) (uint64, int, error) {
	return readRaw(data, offset)
}

// ReadSigned decodes a zigzag-encoded signed varint at offset: LSB set means
// the value is negative, -(v>>1)-1; LSB clear means v>>1, matching the
// teacher's TimestampDeltaDecoder bit trick generalized from int64 deltas to
// any signed container field.
func ReadSigned(data []byte, offset int) (int64, int, error) {
	u, next, err := readRaw(data, offset)
	if err != nil {
		return 0, offset, err
	}

	return zigzagDecode(u), next, nil
}

func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -(int64(u & 1)) //nolint:gosec
}

func zigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63)) //nolint:gosec
}

// WriteUnsigned appends the varint encoding of v to dst and returns the
// extended slice. It exists for property tests of ReadUnsigned's involution
// (spec §8); EventIO files are never written by this module.
func WriteUnsigned(dst []byte, v uint64) []byte {
	lead, rest := encodeRaw(v)

	return append(append(dst, lead), rest...)
}

// WriteSigned is the zigzag counterpart of WriteUnsigned, used by the same
// round-trip tests.
func WriteSigned(dst []byte, v int64) []byte {
	return WriteUnsigned(dst, zigzagEncode(v))
}

// encodeRaw returns the lead byte and trailing bytes for v, inverting readRaw.
func encodeRaw(v uint64) (byte, []byte) {
	bitLen := bits64(v)

	for k := 0; k <= 7; k++ {
		headerBits := 7 - k
		if bitLen <= headerBits+8*k {
			length := k + 1
			trailing := make([]byte, k)

			remaining := v
			for i := k - 1; i >= 0; i-- {
				trailing[i] = byte(remaining)
				remaining >>= 8
			}

			lead := byte(remaining) & (0xFF >> (k + 1))
			lead |= leadMarker(k)

			_ = length

			return lead, trailing
		}
	}

	// length == 9: lead byte is the pure marker 0xFF, value in 8 trailing bytes.
	trailing := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		trailing[i] = byte(v)
		v >>= 8
	}

	return 0xFF, trailing
}

// leadMarker returns the k leading one-bits (followed implicitly by a zero
// bit at position 7-k) that mark a (k+1)-byte encoding.
func leadMarker(k int) byte {
	var m byte
	for i := 0; i < k; i++ {
		m |= 0x80 >> i
	}

	return m
}

func bits64(v uint64) int {
	n := 0
	for v != 0 {
		n++
		v >>= 1
	}

	return n
}

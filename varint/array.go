package varint

// ReadDifferentialArray decodes n signed values stored as a running sum of
// zigzag varints: element i is the accumulated sum of element i-1 and the
// i-th decoded delta, with an implicit element -1 of zero. This is the ADC
// sum codec used from format version 3 onward, the same delta accumulation
// the teacher's TimestampDeltaDecoder performs for consecutive timestamps,
// generalized here from "delta between samples" to "delta between array
// elements".
func ReadDifferentialArray(data []byte, offset int, n int) ([]int64, int, error) {
	out := make([]int64, n)

	var acc int64

	for i := 0; i < n; i++ {
		delta, next, err := ReadSigned(data, offset)
		if err != nil {
			return nil, offset, err
		}

		acc += delta
		out[i] = acc
		offset = next
	}

	return out, offset, nil
}

// ReadSampleDifferential decodes n signed values using the bespoke
// pre-varint sample codec: each record uses the same leading-one-bit prefix
// framing as ReadUnsigned to determine its length, but the sign lives in the
// LSB of the assembled magnitude rather than via zigzag, and the decoded
// values accumulate the same way ReadDifferentialArray's do. This is the
// older, narrower encoding used for raw ADC sample traces (spec §4.G).
func ReadSampleDifferential(data []byte, offset int, n int) ([]int64, int, error) {
	out := make([]int64, n)

	var acc int64

	for i := 0; i < n; i++ {
		raw, next, err := readRaw(data, offset)
		if err != nil {
			return nil, offset, err
		}

		magnitude := int64(raw >> 1) //nolint:gosec

		var signed int64
		if raw&1 != 0 {
			signed = -magnitude
		} else {
			signed = magnitude
		}

		acc += signed
		out[i] = acc
		offset = next
	}

	return out, offset, nil
}

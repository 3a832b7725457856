package adc

import (
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/varint"
)

// DecodeSamples decodes object type 2013 (spec §4.G "Sample decoder"). Like
// DecodeSums, pre-v2 objects carry no pixel/gain/sample counts of their own
// and are surfaced as partial records.
func DecodeSamples(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())
	hdr := unpackID(h.ID)

	telID := c.I32()

	rec := AdcSamples{TelescopeID: telID, ZeroSupMode: hdr.zeroSupMode}

	if h.Version < 2 {
		rec.Partial = true

		return rec, nil
	}

	numPixels := int(c.I32())
	numGains := clampGain(int(c.I32()))
	numSamples := int(c.I32())

	rec.NumPixels = numPixels
	rec.NumGains = numGains
	rec.NumSamples = numSamples

	for g := 0; g < numGains; g++ {
		rec.Samples[g] = make([][]uint16, numPixels)
	}

	known := make([]uint8, numPixels)
	sig := make([]uint8, numPixels)
	rec.AdcKnown = [2][]uint8{known, make([]uint8, numPixels)}
	rec.Significant = sig

	switch {
	case hdr.zeroSupMode == format.ZeroSupNone:
		decodeSamplesDense(c, h.Version, numPixels, numGains, numSamples, rec)
	case h.Version >= 3:
		decodeSamplesByPixelList(c, h, numPixels, numGains, numSamples, hdr, rec)
	default:
		// zero-suppressed sample traces require a v≥3 object to carry the
		// pixel-range lists; earlier versions never produced them.
		rec.Partial = true
	}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "adc-samples", c.Err)
	}

	return rec, nil
}

// decodeSamplesDense reads every pixel's trace for every gain (zero_sup_mode==0).
func decodeSamplesDense(c *varint.Cursor, version uint16, numPixels, numGains, numSamples int, rec AdcSamples) {
	for g := 0; g < numGains; g++ {
		for p := 0; p < numPixels; p++ {
			var trace []uint16
			if version >= 3 {
				trace = make([]uint16, numSamples)
				for i, v := range c.DifferentialArray(numSamples) {
					trace[i] = uint16(v) //nolint:gosec
				}
			} else {
				trace = readTrace(c, version, numSamples)
			}

			rec.Samples[g][p] = trace
			rec.AdcKnown[g][p] |= KnownSamples
			rec.Significant[p] |= SignificantEmitted
		}
	}
}

// decodeSamplesByPixelList reads the high-gain pixel-range list, then (if
// data reduction removed some low-gain traces) a second range list gating
// which pixels also carry a low-gain trace.
func decodeSamplesByPixelList(c *varint.Cursor, h objheader.ObjectHeader, numPixels, numGains, numSamples int, hdr header, rec AdcSamples) {
	hiPixels := readPixelRangeList(c)

	for _, p := range hiPixels {
		if p < 0 || p >= numPixels {
			continue
		}

		rec.Samples[0][p] = readTrace(c, h.Version, numSamples)
		rec.AdcKnown[0][p] |= KnownSamples
		rec.Significant[p] |= SignificantEmitted
	}

	if numGains <= 1 {
		return
	}

	if hdr.dataRedMode == format.DataRedNone {
		for _, p := range hiPixels {
			if p < 0 || p >= numPixels {
				continue
			}

			rec.Samples[1][p] = readTrace(c, h.Version, numSamples)
			rec.AdcKnown[1][p] |= KnownSamples
		}

		return
	}

	loPixels := readPixelRangeList(c)
	for _, p := range loPixels {
		if p < 0 || p >= numPixels {
			continue
		}

		rec.Samples[1][p] = readTrace(c, h.Version, numSamples)
		rec.AdcKnown[1][p] |= KnownSamples
	}
}

// readTrace decodes one pixel's n-sample waveform: raw u16 per sample for
// v ≤ 2, the sample-differential codec (sign in the LSB, running sum) for
// v ≥ 3. Dense v ≥ 3 traces don't come through here: decodeSamplesDense
// reads them as a running-sum signed-varint differential array.
func readTrace(c *varint.Cursor, version uint16, n int) []uint16 {
	out := make([]uint16, n)

	if version <= 2 {
		for i := range out {
			out[i] = c.U16()
		}

		return out
	}

	deltas := c.SampleDifferential(n)
	for i, v := range deltas {
		out[i] = uint16(v) //nolint:gosec
	}

	return out
}

// readPixelRangeList decodes the signed-varint pixel-range-list codec
// shared by zero-suppressed sample traces and object 2027 (PixelList):
// list_size records follow a signed-varint count; a negative record x
// names the single pixel -x-1, a non-negative x pairs with the following
// signed varint y to name the inclusive range [x, y].
func readPixelRangeList(c *varint.Cursor) []int32 {
	count := c.Signed()
	if c.Err != nil || count <= 0 {
		return nil
	}

	pixels := make([]int32, 0, count)

	for i := int64(0); i < count; i++ {
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

	return pixels
}

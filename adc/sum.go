package adc

import (
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/varint"
)

// DecodeSums decodes object type 2012 (spec §4.G "Sum decoder"). Object
// versions before 2 don't carry numPixels and numGains in the payload; for
// them DecodeSums returns an empty record with Partial set — see the Open
// Question note in DESIGN.md on pre-v2 AdcSums.
func DecodeSums(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())
	hdr := unpackID(h.ID)

	telID := c.I32()

	var numPixels, numGains int

	if h.Version >= 2 {
		numPixels = int(c.I32())
		numGains = int(c.I32())
	}

	rec := AdcSums{TelescopeID: telID, ZeroSupMode: hdr.zeroSupMode, DataRedMode: hdr.dataRedMode}

	if h.Version < 2 {
		// No in-payload pixel/gain counts; the caller's telescope geometry
		// (CameraSettings) would normally supply these. Without that wiring
		// here, surface an empty, explicitly partial record rather than
		// guessing a count.
		rec.Partial = true

		return rec, nil
	}

	numGains = clampGain(numGains)
	rec.NumPixels = numPixels
	rec.NumGains = numGains

	// threshold, offset_hg8 and scale_hg8 only appear ahead of the pixel data
	// when data_red_mode selects 8-bit scaling; threshold itself gates which
	// pixels the *writer* chose to scale and carries no decode-time meaning.
	var offsetHG8, scaleHG8 float64

	if hdr.dataRedMode == format.DataRedScale8Bit {
		if h.Version >= 4 {
			_ = c.Signed()
			offsetHG8 = float64(c.Signed())
			scaleHG8 = float64(c.Signed())
		} else {
			_ = c.I16()
			offsetHG8 = float64(c.I16())
			scaleHG8 = float64(c.I16())
		}
	}

	sum, known, sig := newPixelArrays(numGains, numPixels)
	rec.AdcSum, rec.AdcKnown, rec.Significant = sum, known, sig

	switch {
	case hdr.zeroSupMode == format.ZeroSupNone && hdr.dataRedMode == format.DataRedNone:
		decodeSumDense(c, h.Version, numPixels, numGains, rec)
	case hdr.zeroSupMode == format.ZeroSupNone && hdr.dataRedMode == format.DataRedSkipWeak:
		decodeSumSkipWeak(c, h.Version, numPixels, numGains, rec)
	case hdr.zeroSupMode == format.ZeroSupNone && hdr.dataRedMode == format.DataRedScale8Bit:
		decodeSumScalePack(c, h.Version, numPixels, numGains, rec, offsetHG8, scaleHG8)
	case hdr.zeroSupMode == format.ZeroSupBitmap:
		decodeSumBitmap(c, h.Version, numPixels, numGains, rec, hdr.dataRedMode, offsetHG8, scaleHG8)
	case hdr.zeroSupMode == format.ZeroSupList:
		decodeSumPixelList(c, h, numPixels, numGains, rec, offsetHG8, scaleHG8)
	default:
		rec.Partial = true
	}

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "adc-sums", c.Err)
	}

	return rec, nil
}

// decodeSumDense reads a flat array per gain (mode (0,0,·)).
func decodeSumDense(c *varint.Cursor, version uint16, numPixels, numGains int, rec AdcSums) {
	for g := 0; g < numGains; g++ {
		values := readSumValues(c, version, numPixels)
		for p, v := range values {
			rec.AdcSum[g][p] = v
			rec.AdcKnown[g][p] |= KnownSum
			rec.Significant[p] |= SignificantEmitted
		}
	}
}

// decodeSumSkipWeak implements mode (0,1,·): per 16-pixel group, a bitmask
// of pixels whose low-gain sample is present, low-gain values for set
// bits, then high-gain values for every pixel in the group.
func decodeSumSkipWeak(c *varint.Cursor, version uint16, numPixels, numGains int, rec AdcSums) {
	for g := 0; g < numGroups(numPixels); g++ {
		start, end := groupBounds(g, numPixels)
		mask := c.U16()

		if numGains > 1 {
			nLow := 0
			for i := start; i < end; i++ {
				if bitmaskTest(mask, i-start) {
					nLow++
				}
			}

			lowValues := readSumValues(c, version, nLow)
			idx := 0

			for i := start; i < end; i++ {
				if bitmaskTest(mask, i-start) {
					rec.AdcSum[1][i] = lowValues[idx]
					rec.AdcKnown[1][i] |= KnownSum
					idx++
				}
			}
		}

		hiValues := readSumValues(c, version, end-start)
		for i := start; i < end; i++ {
			rec.AdcSum[0][i] = hiValues[i-start]
			rec.AdcKnown[0][i] |= KnownSum
			rec.Significant[i] |= SignificantEmitted
		}
	}
}

// decodeSumScalePack implements mode (0,2,·): per 16-pixel group, two
// bitmasks select which pixels keep full-width high gain (c) vs. an 8-bit
// scaled-and-offset high-gain value (b, where c is unset). Low gain, where
// present, is only ever recorded for the c-bit pixels — the b pixels never
// carry a low-gain sample in this mode.
func decodeSumScalePack(c *varint.Cursor, version uint16, numPixels, numGains int, rec AdcSums, offsetHG8, scaleHG8 float64) {
	for g := 0; g < numGroups(numPixels); g++ {
		start, end := groupBounds(g, numPixels)
		full := c.U16()
		scaled := c.U16()

		for i := start; i < end; i++ {
			bit := i - start

			switch {
			case bitmaskTest(full, bit):
				rec.AdcSum[0][i] = uint32(c.U16()) //nolint:gosec
				rec.AdcKnown[0][i] |= KnownSum
			case bitmaskTest(scaled, bit):
				raw := float64(c.U8())
				rec.AdcSum[0][i] = uint32(raw*scaleHG8 + offsetHG8) //nolint:gosec
				rec.AdcKnown[0][i] |= KnownSum
			default:
				continue
			}

			rec.Significant[i] |= SignificantEmitted
		}

		if numGains > 1 {
			nFull := 0
			for i := start; i < end; i++ {
				if bitmaskTest(full, i-start) {
					nFull++
				}
			}

			lowValues := readSumValues(c, version, nFull)
			idx := 0

			for i := start; i < end; i++ {
				if bitmaskTest(full, i-start) {
					rec.AdcSum[1][i] = lowValues[idx]
					rec.AdcKnown[1][i] |= KnownSum
					idx++
				}
			}
		}
	}
}

// decodeSumBitmap implements zero_sup_mode==1: per 16-pixel group, a
// presence bitmask z; an all-zero group is skipped entirely, otherwise the
// per-pixel logic of (0, dataRedMode) applies restricted to bits set in z.
func decodeSumBitmap(c *varint.Cursor, version uint16, numPixels, numGains int, rec AdcSums, dataRed DataRedMode, offsetHG8, scaleHG8 float64) {
	for g := 0; g < numGroups(numPixels); g++ {
		start, end := groupBounds(g, numPixels)
		z := c.U16()

		if z == 0 {
			continue
		}

		present := 0
		for i := start; i < end; i++ {
			if bitmaskTest(z, i-start) {
				present++
			}
		}

		switch dataRed {
		case format.DataRedScale8Bit:
			// Wire order: z, c (full), b (scaled), low gain for the z∩c
			// pixels, then high gain/scaled for every z pixel.
			full := c.U16()
			scaled := c.U16()

			if numGains > 1 {
				nFull := 0
				for i := start; i < end; i++ {
					if bitmaskTest(z, i-start) && bitmaskTest(full, i-start) {
						nFull++
					}
				}

				lowValues := readSumValues(c, version, nFull)
				idx := 0

				for i := start; i < end; i++ {
					if bitmaskTest(z, i-start) && bitmaskTest(full, i-start) {
						rec.AdcSum[1][i] = lowValues[idx]
						rec.AdcKnown[1][i] |= KnownSum
						idx++
					}
				}
			}

			for i := start; i < end; i++ {
				if !bitmaskTest(z, i-start) {
					continue
				}

				bit := i - start

				switch {
				case bitmaskTest(full, bit):
					rec.AdcSum[0][i] = uint32(c.U16()) //nolint:gosec
					rec.AdcKnown[0][i] |= KnownSum
				case bitmaskTest(scaled, bit):
					raw := float64(c.U8())
					rec.AdcSum[0][i] = uint32(raw*scaleHG8 + offsetHG8) //nolint:gosec
					rec.AdcKnown[0][i] |= KnownSum
				}

				rec.Significant[i] |= SignificantEmitted
			}
		case format.DataRedSkipWeak:
			lowMask := c.U16()

			nLow := 0
			for i := start; i < end; i++ {
				if bitmaskTest(z, i-start) && bitmaskTest(lowMask, i-start) {
					nLow++
				}
			}

			if numGains > 1 {
				lowValues := readSumValues(c, version, nLow)
				idx := 0

				for i := start; i < end; i++ {
					if bitmaskTest(z, i-start) && bitmaskTest(lowMask, i-start) {
						rec.AdcSum[1][i] = lowValues[idx]
						rec.AdcKnown[1][i] |= KnownSum
						idx++
					}
				}
			}

			hiValues := readSumValues(c, version, present)
			idx := 0

			for i := start; i < end; i++ {
				if bitmaskTest(z, i-start) {
					rec.AdcSum[0][i] = hiValues[idx]
					rec.AdcKnown[0][i] |= KnownSum
					rec.Significant[i] |= SignificantEmitted
					idx++
				}
			}
		default:
			hiValues := readSumValues(c, version, present)
			idx := 0

			for i := start; i < end; i++ {
				if bitmaskTest(z, i-start) {
					rec.AdcSum[0][i] = hiValues[idx]
					rec.AdcKnown[0][i] |= KnownSum
					rec.Significant[i] |= SignificantEmitted
					idx++
				}
			}

			if numGains > 1 {
				lowValues := readSumValues(c, version, present)
				idx = 0

				for i := start; i < end; i++ {
					if bitmaskTest(z, i-start) {
						rec.AdcSum[1][i] = lowValues[idx]
						rec.AdcKnown[1][i] |= KnownSum
						idx++
					}
				}
			}
		}
	}
}

// decodeSumPixelList implements zero_sup_mode==2: an explicit pixel-id
// list with markup bits, followed by dense gain arrays in a fixed order.
func decodeSumPixelList(c *varint.Cursor, h objheader.ObjectHeader, numPixels, numGains int, rec AdcSums, offsetHG8, scaleHG8 float64) {
	useVarintLen := h.Version >= 4 && numPixels >= 32768

	var listSize int
	if useVarintLen {
		listSize = int(c.Unsigned())
	} else {
		listSize = int(c.U16())
	}

	lowSuppressMask, hiScaledMask := uint32(0x2000), uint32(0x4000)
	if useVarintLen {
		lowSuppressMask, hiScaledMask = 0x200000, 0x400000
	}

	type entry struct {
		pixel        int
		lowSuppressed bool
		hiScaled     bool
	}

	entries := make([]entry, 0, listSize)

	for i := 0; i < listSize; i++ {
		raw := c.U32()
		if c.Err != nil {
			break
		}

		e := entry{pixel: int(raw &^ (lowSuppressMask | hiScaledMask))}
		e.lowSuppressed = raw&lowSuppressMask != 0
		e.hiScaled = raw&hiScaledMask != 0
		entries = append(entries, e)
	}

	nLow, nHi, nScaled := 0, 0, 0

	for _, e := range entries {
		if !e.lowSuppressed {
			nLow++
		}

		if e.hiScaled {
			nScaled++
		} else {
			nHi++
		}
	}

	lowValues := readSumValues(c, h.Version, nLow)
	hiValues := readSumValues(c, h.Version, nHi)
	scaledValues := make([]uint32, nScaled)

	for i := range scaledValues {
		raw := float64(c.U8())
		scaledValues[i] = uint32(raw*scaleHG8 + offsetHG8) //nolint:gosec
	}

	li, hi, si := 0, 0, 0

	for _, e := range entries {
		if e.pixel < 0 || e.pixel >= numPixels {
			continue
		}

		rec.Significant[e.pixel] |= SignificantEmitted

		if !e.lowSuppressed && numGains > 1 {
			rec.AdcSum[1][e.pixel] = lowValues[li]
			rec.AdcKnown[1][e.pixel] |= KnownSum
			li++
		}

		if e.hiScaled {
			rec.AdcSum[0][e.pixel] = scaledValues[si]
			si++
		} else {
			rec.AdcSum[0][e.pixel] = hiValues[hi]
			hi++
		}

		rec.AdcKnown[0][e.pixel] |= KnownSum
	}
}

// readSumValues decodes n consecutive gain-sum values: raw u16 for v ≤ 2,
// running-sum differential signed varint for v ≥ 3 (spec §4.G, §3
// "Differential varint arrays").
func readSumValues(c *varint.Cursor, version uint16, n int) []uint32 {
	out := make([]uint32, n)

	if version <= 2 {
		for i := range out {
			out[i] = uint32(c.U16())
		}

		return out
	}

	deltas := c.DifferentialArray(n)
	for i, v := range deltas {
		out[i] = uint32(v) //nolint:gosec
	}

	return out
}

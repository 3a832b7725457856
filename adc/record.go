// Package adc implements component G: the ADC sum and sample payload
// decoders, the two interlocking state machines across four
// zero-suppression modes, three data-reduction modes, and object versions
// 0-4 (spec §4.G). This is deliberately kept separate from the objects
// package: it is the hardest single piece of the decoder and its own
// grounding notes (see DESIGN.md) deserve to stay independent of the
// simple-payload decoders' much more mechanical pattern.
package adc

import (
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
)

// Known-bits flags for AdcKnown (spec §4.G "Significance and known-bits contract").
const (
	KnownSum       uint8 = 1 << 0
	KnownSamples   uint8 = 1 << 1
	KnownSaturated uint8 = 1 << 2
)

// Significant-pixel flag: set on every pixel emitted at least partially.
const SignificantEmitted uint8 = 0x20

const pixelsPerGroup = 16

// header unpacks the zero-suppression/data-reduction bits packed into the
// object id (spec §4.G "Common header bits"); tel_id and the pixel/gain
// counts are separate scalars read from the start of the payload itself,
// not from the id.
type header struct {
	zeroSupMode ZeroSupMode
	dataRedMode DataRedMode
	listKnown   bool
}

func unpackID(id int32) header {
	u := uint32(id) //nolint:gosec

	return header{
		zeroSupMode: ZeroSupMode(u & 0x1F),
		dataRedMode: DataRedMode((u >> 5) & 0x1F),
		listKnown:   (u>>10)&1 != 0,
	}
}

// ZeroSupMode mirrors format.ZeroSupMode, re-exported here so adc callers
// don't need to import format just to name a mode in tests or logs.
type ZeroSupMode = format.ZeroSupMode

// DataRedMode mirrors format.DataRedMode.
type DataRedMode = format.DataRedMode

// AdcSums is object type 2012: the integrated-charge ("sum") ADC record for
// one telescope event, one entry per (gain, pixel).
type AdcSums struct {
	TelescopeID int32
	NumPixels   int
	NumGains    int

	// AdcSum[g][p], AdcKnown[g][p] index gain (0 = high, 1 = low) then pixel.
	AdcSum      [2][]uint32
	AdcKnown    [2][]uint8
	Significant []uint8

	ZeroSupMode ZeroSupMode
	DataRedMode DataRedMode
	Partial     bool
}

func (AdcSums) ObjectType() format.ObjectType { return format.TypeAdcSums }

// AdcSamples is object type 2013: the per-time-bin waveform ADC record for
// one telescope event, one trace per (gain, pixel) that was read out.
type AdcSamples struct {
	TelescopeID int32
	NumPixels   int
	NumGains    int
	NumSamples  int

	// Samples[g][p] is nil for a (gain, pixel) combination not present in
	// this event (zero-suppressed or, for low gain, never read out).
	Samples [2][][]uint16

	AdcKnown    [2][]uint8
	Significant []uint8

	ZeroSupMode ZeroSupMode
	Partial     bool
}

func (AdcSamples) ObjectType() format.ObjectType { return format.TypeAdcSamples }

func newPixelArrays(numGains, numPixels int) (sum [2][]uint32, known [2][]uint8, sig []uint8) {
	for g := 0; g < numGains && g < 2; g++ {
		sum[g] = make([]uint32, numPixels)
		known[g] = make([]uint8, numPixels)
	}

	sig = make([]uint8, numPixels)

	return
}

func clampGain(numGains int) int {
	if numGains > 2 {
		return 2
	}

	if numGains < 1 {
		return 1
	}

	return numGains
}

// objType/version convenience accessors shared by sum.go and sample.go.
func headerTypeVersion(h objheader.ObjectHeader) (int, int) {
	return int(h.Type), int(h.Version)
}

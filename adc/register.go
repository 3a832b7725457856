package adc

import (
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/registry"
)

// RegisterDefaults installs the AdcSums (2012) and AdcSamples (2013)
// decoders. objects.RegisterDefaults registers everything else in the
// catalogue; the two packages are composed together by callers (see
// eventio.go) rather than one importing the other.
func RegisterDefaults(r *registry.Registry) {
	r.Register(format.TypeAdcSums, DecodeSums)
	r.Register(format.TypeAdcSamples, DecodeSamples)
}

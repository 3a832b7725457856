package objects

import (
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/registry"
)

// RegisterDefaults installs every decoder this package implements into r.
// Register replaces unconditionally, so a decoder for the same type passed
// to registry.New through registry.WithDecoder is replaced here; callers
// that want to override or add decoders call r.Register afterward.
func RegisterDefaults(r *registry.Registry) {
	r.Register(format.TypeHistoryCommandLine, decodeHistoryCommandLine)
	r.Register(format.TypeHistoryConfigLine, decodeHistoryConfigLine)

	r.Register(format.TypeCorsikaRunHeader, decodeCorsikaRunHeader)
	r.Register(format.TypeTelescopeDefinition, decodeTelescopeDefinition)
	r.Register(format.TypeCorsikaEventHeader, decodeCorsikaEventHeader)
	r.Register(format.TypeArrayOffsets, decodeArrayOffsets)
	r.Register(format.TypeIACTPhotons, decodeIACTPhotons)
	r.Register(format.TypeEventEndBlock, decodeEventEndBlock)
	r.Register(format.TypeRunEndBlock, decodeRunEndBlock)
	r.Register(format.TypeInputCard, decodeInputCard)

	r.Register(format.TypeRunHeader, decodeRunHeader)
	r.Register(format.TypeMCRunHeader, decodeMCRunHeader)
	r.Register(format.TypeCameraSettings, decodeCameraSettings)
	r.Register(format.TypeCameraOrganisation, decodeCameraOrganisation)
	r.Register(format.TypePixelSetting, decodePixelSetting)
	r.Register(format.TypePixelDisabled, decodePixelDisabled)
	r.Register(format.TypeCameraSoftSet, decodeCameraSoftSet)
	r.Register(format.TypePointingCorrection, decodePointingCorrection)
	r.Register(format.TypeTrackingSetup, decodeTrackingSetup)
	r.Register(format.TypeCentralEvent, decodeCentralEvent)
	r.Register(format.TypeTelEventHeader, decodeTelEventHeader)
	r.Register(format.TypeImageParameters, decodeImageParameters)
	r.Register(format.TypeShower, decodeShower)
	r.Register(format.TypePixelTiming, decodePixelTiming)
	r.Register(format.TypePixelCalibrated, decodePixelCalibrated)
	r.Register(format.TypeMCShower, decodeMCShower)
	r.Register(format.TypeMCEvent, decodeMCEvent)
	r.Register(format.TypeTelescopeMonitoring, decodeTelescopeMonitoring)
	r.Register(format.TypeLaserCalibration, decodeLaserCalibration)
	r.Register(format.TypeMCpeSum, decodeMCpeSum)
	r.Register(format.TypePixelList, decodePixelList)
	r.Register(format.TypeCalibrationEvent, decodeCalibrationEvent)
	r.Register(format.TypeAuxTraceDigital, decodeAuxTrace(true))
	r.Register(format.TypeAuxTraceAnalog, decodeAuxTrace(false))
	r.Register(format.TypePixelTriggerTimes, decodePixelTriggerTimes)

	for tel := 0; tel < 100; tel++ {
		r.Register(format.TrackEventBase+format.ObjectType(tel), decodeTrackEvent)
	}

	// AdcSums (2012) and AdcSamples (2013) are registered by the adc
	// package's own RegisterDefaults, since their decode state machines are
	// component G rather than F (spec §2).
}

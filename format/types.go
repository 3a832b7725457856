// Package format defines the numeric constants of the EventIO wire format:
// the object-type registry, and the ADC zero-suppression / data-reduction
// mode enums used by the adc package.
package format

// ObjectType identifies the kind of object a header describes. The registry
// is open: unknown values are not an error, they are surfaced as opaque
// objects by the dispatcher (see registry.Registry).
type ObjectType uint16

// Object type codes from the container registry (spec §6).
const (
	TypeHistoryBlock       ObjectType = 70
	TypeHistoryCommandLine ObjectType = 71
	TypeHistoryConfigLine  ObjectType = 72

	TypeHistogramBlock ObjectType = 100

	TypeCorsikaRunHeader      ObjectType = 1200
	TypeTelescopeDefinition   ObjectType = 1201
	TypeCorsikaEventHeader    ObjectType = 1202
	TypeArrayOffsets          ObjectType = 1203
	TypeTelescopeData         ObjectType = 1204
	TypeIACTPhotons           ObjectType = 1205
	TypeEventEndBlock         ObjectType = 1209
	TypeRunEndBlock           ObjectType = 1210
	TypeInputCard             ObjectType = 1212

	TypeRunHeader           ObjectType = 2000
	TypeMCRunHeader         ObjectType = 2001
	TypeCameraSettings      ObjectType = 2002
	TypeCameraOrganisation  ObjectType = 2003
	TypePixelSetting        ObjectType = 2004
	TypePixelDisabled       ObjectType = 2005
	TypeCameraSoftSet       ObjectType = 2006
	TypePointingCorrection  ObjectType = 2007
	TypeTrackingSetup       ObjectType = 2008
	TypeCentralEvent        ObjectType = 2009
	TypeTelEventHeader      ObjectType = 2011
	TypeAdcSums             ObjectType = 2012
	TypeAdcSamples          ObjectType = 2013
	TypeImageParameters     ObjectType = 2014
	TypeShower              ObjectType = 2015
	TypePixelTiming         ObjectType = 2016
	TypePixelCalibrated     ObjectType = 2017
	TypeMCShower            ObjectType = 2020
	TypeMCEvent             ObjectType = 2021
	TypeTelescopeMonitoring ObjectType = 2022
	TypeLaserCalibration    ObjectType = 2023
	TypeMCpeSum             ObjectType = 2026
	TypePixelList           ObjectType = 2027
	TypeCalibrationEvent    ObjectType = 2028
	TypeAuxTraceDigital     ObjectType = 2029
	TypeAuxTraceAnalog      ObjectType = 2030
	TypePixelTriggerTimes   ObjectType = 2032

	// TelEventBase + telescope id is a TelEvent (2200+tel) container; callers
	// use IsTelEvent/TelEventTelescopeID rather than a single constant.
	TelEventBase   ObjectType = 2200
	TrackEventBase ObjectType = 2100
)

// IsTelEvent reports whether t is a per-telescope TelEvent container
// (2200 + telescope id, id in [0, 999]).
func IsTelEvent(t ObjectType) bool {
	return t >= TelEventBase && t < TelEventBase+1000
}

// TelEventTelescopeID extracts the telescope id encoded in a TelEvent type code.
func TelEventTelescopeID(t ObjectType) int {
	return int(t - TelEventBase)
}

// IsTrackEvent reports whether t is a per-telescope TrackEvent (2100 + tel).
func IsTrackEvent(t ObjectType) bool {
	return t >= TrackEventBase && t < TrackEventBase+100
}

// TrackEventTelescopeID extracts the telescope id encoded in a TrackEvent type code.
func TrackEventTelescopeID(t ObjectType) int {
	return int(t - TrackEventBase)
}

func (t ObjectType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	if IsTelEvent(t) {
		return "TelEvent"
	}
	if IsTrackEvent(t) {
		return "TrackEvent"
	}

	return "Unknown"
}

var typeNames = map[ObjectType]string{
	TypeHistoryBlock:        "HistoryBlock",
	TypeHistoryCommandLine:  "HistoryCommandLine",
	TypeHistoryConfigLine:   "HistoryConfigLine",
	TypeHistogramBlock:      "HistogramBlock",
	TypeCorsikaRunHeader:    "CorsikaRunHeader",
	TypeTelescopeDefinition: "TelescopeDefinition",
	TypeCorsikaEventHeader:  "CorsikaEventHeader",
	TypeArrayOffsets:        "ArrayOffsets",
	TypeTelescopeData:       "TelescopeData",
	TypeIACTPhotons:         "IACTPhotons",
	TypeEventEndBlock:       "EventEndBlock",
	TypeRunEndBlock:         "RunEndBlock",
	TypeInputCard:           "InputCard",
	TypeRunHeader:           "RunHeader",
	TypeMCRunHeader:         "MCRunHeader",
	TypeCameraSettings:      "CameraSettings",
	TypeCameraOrganisation:  "CameraOrganisation",
	TypePixelSetting:        "PixelSetting",
	TypePixelDisabled:       "PixelDisabled",
	TypeCameraSoftSet:       "CameraSoftSet",
	TypePointingCorrection:  "PointingCorrection",
	TypeTrackingSetup:       "TrackingSetup",
	TypeCentralEvent:        "CentralEvent",
	TypeTelEventHeader:      "TelEventHeader",
	TypeAdcSums:             "AdcSums",
	TypeAdcSamples:          "AdcSamples",
	TypeImageParameters:     "ImageParameters",
	TypeShower:              "Shower",
	TypePixelTiming:         "PixelTiming",
	TypePixelCalibrated:     "PixelCalibrated",
	TypeMCShower:            "MCShower",
	TypeMCEvent:             "MCEvent",
	TypeTelescopeMonitoring: "TelescopeMonitoring",
	TypeLaserCalibration:    "LaserCalibration",
	TypeMCpeSum:             "MCpeSum",
	TypePixelList:           "PixelList",
	TypeCalibrationEvent:    "CalibrationEvent",
	TypeAuxTraceDigital:     "AuxTraceDigital",
	TypeAuxTraceAnalog:      "AuxTraceAnalog",
	TypePixelTriggerTimes:   "PixelTriggerTimes",
}

// ZeroSupMode selects the ADC sum/sample zero-suppression strategy (spec §4.G).
type ZeroSupMode uint8

const (
	ZeroSupNone   ZeroSupMode = 0 // dense, no suppression
	ZeroSupBitmap ZeroSupMode = 1 // per-16-pixel-group presence bitmask
	ZeroSupList   ZeroSupMode = 2 // explicit pixel-id list
	ZeroSupMode3  ZeroSupMode = 3 // reserved, observed in the registry but undocumented
	ZeroSupMode4  ZeroSupMode = 4 // reserved, observed in the registry but undocumented
)

// DataRedMode selects additional in-object data reduction applied on top of
// the zero-suppression mode (spec §4.G).
type DataRedMode uint8

const (
	DataRedNone      DataRedMode = 0
	DataRedSkipWeak  DataRedMode = 1
	DataRedScale8Bit DataRedMode = 2
)

func (m ZeroSupMode) String() string {
	switch m {
	case ZeroSupNone:
		return "none"
	case 1:
		return "bitmap"
	case 2:
		return "list"
	case 3:
		return "zs3"
	case 4:
		return "zs4"
	default:
		return "unknown"
	}
}

func (m DataRedMode) String() string {
	switch m {
	case DataRedNone:
		return "none"
	case DataRedSkipWeak:
		return "skip-weak-low-gain"
	case DataRedScale8Bit:
		return "scale-pack-8bit"
	default:
		return "unknown"
	}
}

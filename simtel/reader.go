// Package simtel implements component H's sim_telarray-side facade:
// SimtelReader assembles the raw object stream into ArrayEvent records,
// hiding the TelEvent (2200+tel) per-telescope container topology behind a
// flat per-telescope map, the same way iact.IactReader hides TelescopeData.
package simtel

import (
	"github.com/cta-observatory/goeventio/adc"
	"github.com/cta-observatory/goeventio/bytesource"
	"github.com/cta-observatory/goeventio/errs"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objects"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/stream"
)

// TelescopeEvent is one telescope's contribution to an ArrayEvent: trigger
// info, the ADC readout (whichever of sums/samples the run recorded), and
// the calibrated/reconstructed derivatives.
type TelescopeEvent struct {
	TelescopeID       int
	Header            objects.TelEventHeader
	AdcSums           *adc.AdcSums
	AdcSamples        *adc.AdcSamples
	PixelTiming       *objects.PixelTiming
	PixelCalibrated   *objects.PixelCalibrated
	ImageParameters   *objects.ImageParameters
	PixelList         *objects.PixelList
	PixelTriggerTimes *objects.PixelTriggerTimes
}

// ArrayEvent is one sim_telarray triggered event: the array-wide trigger
// record, the Monte-Carlo truth (when the file carries it), the array-level
// reconstructed shower, and each triggered telescope's readout.
type ArrayEvent struct {
	TriggerInformation objects.CentralEvent
	MCShower           *objects.MCShower
	MCEvent            *objects.MCEvent
	Shower             *objects.Shower
	TelescopeEvents    map[int]*TelescopeEvent
	PhotoElectronSums  map[int]objects.MCpeSum // telescope id -> truth pe sum
}

func newArrayEvent() *ArrayEvent {
	return &ArrayEvent{
		TelescopeEvents:   make(map[int]*TelescopeEvent),
		PhotoElectronSums: make(map[int]objects.MCpeSum),
	}
}

// SimtelReader walks a sim_telarray-format EventIO stream and yields
// ArrayEvent records. File/run-scoped objects (RunHeader, MCRunHeader,
// CameraSettings, CameraOrganisation, and the other telescope-description
// objects named in spec §3) are buffered and exposed as accessors rather
// than repeated on every event.
type SimtelReader struct {
	src bytesource.ByteSource
	rd  *stream.Reader
	reg *registry.Registry

	runHeader   *objects.RunHeader
	mcRunHeader *objects.MCRunHeader

	cameraSettings      map[int]objects.CameraSettings
	cameraOrganisation  map[int]objects.CameraOrganisation
	trackingSetup       map[int]objects.TrackingSetup
	telescopeMonitoring map[int]objects.TelescopeMonitoring

	decodeErrs []error
}

// NewSimtelReader wraps src, which callers open and auto-detect via
// bytesource.Open/OpenFile themselves. adc.RegisterDefaults is wired in
// alongside objects.RegisterDefaults since a TelEvent's sub-objects include
// AdcSums/AdcSamples, component G's decoders (unlike iact, which never sees
// ADC payloads).
func NewSimtelReader(src bytesource.ByteSource) (*SimtelReader, error) {
	reg, err := registry.New()
	if err != nil {
		return nil, err
	}

	objects.RegisterDefaults(reg)
	adc.RegisterDefaults(reg)

	return &SimtelReader{
		src:                 src,
		rd:                  stream.NewReader(src),
		reg:                 reg,
		cameraSettings:      make(map[int]objects.CameraSettings),
		cameraOrganisation:  make(map[int]objects.CameraOrganisation),
		trackingSetup:       make(map[int]objects.TrackingSetup),
		telescopeMonitoring: make(map[int]objects.TelescopeMonitoring),
	}, nil
}

func (r *SimtelReader) RunHeader() *objects.RunHeader     { return r.runHeader }
func (r *SimtelReader) MCRunHeader() *objects.MCRunHeader { return r.mcRunHeader }

// CameraSettings returns the most recently seen per-pixel geometry for
// telescope id tel, or false if none has been read yet.
func (r *SimtelReader) CameraSettings(tel int) (objects.CameraSettings, bool) {
	v, ok := r.cameraSettings[tel]

	return v, ok
}

// CameraOrganisation returns the most recently seen readout mapping for
// telescope id tel, or false if none has been read yet.
func (r *SimtelReader) CameraOrganisation(tel int) (objects.CameraOrganisation, bool) {
	v, ok := r.cameraOrganisation[tel]

	return v, ok
}

// TrackingSetup returns the most recently seen tracking-loop configuration
// for telescope id tel, or false if none has been read yet.
func (r *SimtelReader) TrackingSetup(tel int) (objects.TrackingSetup, bool) {
	v, ok := r.trackingSetup[tel]

	return v, ok
}

// TelescopeMonitoring returns the most recently seen slow-control snapshot
// for telescope id tel, or false if none has been read yet.
func (r *SimtelReader) TelescopeMonitoring(tel int) (objects.TelescopeMonitoring, bool) {
	v, ok := r.telescopeMonitoring[tel]

	return v, ok
}

func (r *SimtelReader) Warnings() []errs.Diagnostic { return r.rd.Diagnostics() }
func (r *SimtelReader) DecodeErrors() []error       { return r.decodeErrs }
func (r *SimtelReader) Err() error                  { return r.rd.Err() }
func (r *SimtelReader) Close() error                { return r.src.Close() }

// Events returns the lazy ArrayEvent sequence. spec.md has no explicit
// end-of-array-event marker, so a CentralEvent (2009) — the array-wide
// trigger record every triggered event carries exactly one of — is taken to
// both open the event it belongs to and close whatever event preceded it
// (Open Question resolution, see DESIGN.md's simtel entry). MCShower/MCEvent
// arrive before the CentralEvent they describe and are buffered onto the
// event under construction.
func (r *SimtelReader) Events() func(yield func(*ArrayEvent) bool) {
	return func(yield func(*ArrayEvent) bool) {
		var cur *ArrayEvent

		flush := func() bool {
			if cur == nil {
				return true
			}

			done := cur
			cur = nil

			return yield(done)
		}

		for handle := range r.rd.Objects() {
			t := format.ObjectType(handle.Header.Type)

			switch {
			case t == format.TypeRunHeader:
				r.decodeInto(handle, func(rec registry.Record) {
					if rh, ok := rec.(objects.RunHeader); ok {
						r.runHeader = &rh
					}
				})
			case t == format.TypeMCRunHeader:
				r.decodeInto(handle, func(rec registry.Record) {
					if mh, ok := rec.(objects.MCRunHeader); ok {
						r.mcRunHeader = &mh
					}
				})
			case t == format.TypeCameraSettings:
				r.decodeInto(handle, func(rec registry.Record) {
					if cs, ok := rec.(objects.CameraSettings); ok {
						r.cameraSettings[int(cs.TelescopeID)] = cs
					}
				})
			case t == format.TypeCameraOrganisation:
				r.decodeInto(handle, func(rec registry.Record) {
					if co, ok := rec.(objects.CameraOrganisation); ok {
						r.cameraOrganisation[int(co.TelescopeID)] = co
					}
				})
			case t == format.TypeTrackingSetup:
				r.decodeInto(handle, func(rec registry.Record) {
					if ts, ok := rec.(objects.TrackingSetup); ok {
						r.trackingSetup[int(ts.TelescopeID)] = ts
					}
				})
			case t == format.TypeTelescopeMonitoring:
				r.decodeInto(handle, func(rec registry.Record) {
					if tm, ok := rec.(objects.TelescopeMonitoring); ok {
						r.telescopeMonitoring[int(tm.TelescopeID)] = tm
					}
				})
			case t == format.TypeMCShower:
				r.decodeInto(handle, func(rec registry.Record) {
					if cur == nil {
						cur = newArrayEvent()
					}

					if ms, ok := rec.(objects.MCShower); ok {
						cur.MCShower = &ms
					}
				})
			case t == format.TypeMCEvent:
				r.decodeInto(handle, func(rec registry.Record) {
					if cur == nil {
						cur = newArrayEvent()
					}

					if me, ok := rec.(objects.MCEvent); ok {
						cur.MCEvent = &me
					}
				})
			case t == format.TypeMCpeSum:
				r.decodeInto(handle, func(rec registry.Record) {
					if cur == nil {
						cur = newArrayEvent()
					}

					if pe, ok := rec.(objects.MCpeSum); ok {
						cur.PhotoElectronSums[int(pe.TelescopeID)] = pe
					}
				})
			case t == format.TypeShower:
				r.decodeInto(handle, func(rec registry.Record) {
					if cur == nil {
						return
					}

					if sh, ok := rec.(objects.Shower); ok {
						cur.Shower = &sh
					}
				})
			case t == format.TypeCentralEvent:
				if !flush() {
					return
				}

				cur = newArrayEvent()

				r.decodeInto(handle, func(rec registry.Record) {
					if ce, ok := rec.(objects.CentralEvent); ok {
						cur.TriggerInformation = ce
					}
				})
			case format.IsTelEvent(t):
				r.readTelEvent(handle, cur)
			}
		}

		flush()
	}
}

func (r *SimtelReader) decodeInto(h *stream.ObjectHandle, fn func(registry.Record)) {
	payload, err := h.ReadPayload()
	if err != nil {
		r.decodeErrs = append(r.decodeErrs, err)

		return
	}

	rec, err := r.reg.Dispatch(h.Header, payload, h.PayloadOffset)
	if err != nil {
		r.decodeErrs = append(r.decodeErrs, err)

		return
	}

	fn(rec)
}

// readTelEvent decodes one TelEvent container's sub-objects into a
// TelescopeEvent keyed by the telescope id encoded in the container's own
// type code. A TelEvent seen with no open ArrayEvent (cur == nil) is
// skipped without being read, matching iact's handling of a stray
// TelescopeData.
func (r *SimtelReader) readTelEvent(h *stream.ObjectHandle, cur *ArrayEvent) {
	if cur == nil || !h.Header.OnlySubObjects {
		return
	}

	telID := format.TelEventTelescopeID(format.ObjectType(h.Header.Type))
	ev := &TelescopeEvent{TelescopeID: telID}

	for sub := range h.SubObjects() {
		payload, err := sub.ReadPayload()
		if err != nil {
			r.decodeErrs = append(r.decodeErrs, err)

			continue
		}

		rec, err := r.reg.Dispatch(sub.Header, payload, sub.PayloadOffset)
		if err != nil {
			r.decodeErrs = append(r.decodeErrs, err)

			continue
		}

		switch v := rec.(type) {
		case objects.TelEventHeader:
			ev.Header = v
		case adc.AdcSums:
			ev.AdcSums = &v
		case adc.AdcSamples:
			ev.AdcSamples = &v
		case objects.PixelTiming:
			ev.PixelTiming = &v
		case objects.PixelCalibrated:
			ev.PixelCalibrated = &v
		case objects.ImageParameters:
			ev.ImageParameters = &v
		case objects.PixelList:
			ev.PixelList = &v
		case objects.PixelTriggerTimes:
			ev.PixelTriggerTimes = &v
		}
	}

	cur.TelescopeEvents[telID] = ev
}

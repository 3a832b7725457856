package iact

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cta-observatory/goeventio/bytesource"
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/objheader"
)

type builder struct{ buf []byte }

func (b *builder) i32(v int32) *builder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v)) //nolint:gosec
	b.buf = append(b.buf, tmp[:]...)

	return b
}

func (b *builder) u8(v uint8) *builder {
	b.buf = append(b.buf, v)

	return b
}

func (b *builder) f32(v float32) *builder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(v))
	b.buf = append(b.buf, tmp[:]...)

	return b
}

func appendSyncMarker(buf []byte) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], objheader.SyncMarkerLE)

	return append(buf, b[:]...)
}

func appendTopLevelObject(buf []byte, h objheader.ObjectHeader, payload []byte) []byte {
	engine := endian.GetLittleEndianEngine()
	h.Length = uint64(len(payload))

	buf = appendSyncMarker(buf)
	buf = append(buf, h.Bytes(engine)...)

	return append(buf, payload...)
}

func corsikaEventHeaderPayload(eventNumber, particleID int32, energy float32) []byte {
	b := &builder{}
	b.i32(4)
	b.f32(float32(eventNumber)).f32(float32(particleID)).f32(0).f32(energy)

	return b.buf
}

func arrayOffsetsPayload() []byte {
	b := &builder{}
	b.f32(0.5)
	b.i32(1)
	b.f32(10).f32(20)

	return b.buf
}

func iactPhotonsPayload(telescopeID int32) []byte {
	b := &builder{}
	b.i32(telescopeID)
	b.f32(1.0)
	b.i32(2) // n bunches
	b.u8(0)  // not compact

	for i := 0; i < 8; i++ { // x,y,cx,cy,time,zem,numPhotons,wavelength, 2 entries each
		b.f32(1).f32(2)
	}

	return b.buf
}

func eventEndBlockPayload(eventNumber int32) []byte {
	b := &builder{}
	b.i32(1)
	b.f32(float32(eventNumber))

	return b.buf
}

func TestIactReader_AssemblesEvent(t *testing.T) {
	telChild := objheader.ObjectHeader{Type: 1205}
	telPayload := iactPhotonsPayload(3)
	telChild.Length = uint64(len(telPayload))

	engine := endian.GetLittleEndianEngine()

	var telData []byte
	telData = append(telData, telChild.Bytes(engine)...)
	telData = append(telData, telPayload...)

	var buf []byte
	buf = appendTopLevelObject(buf, objheader.ObjectHeader{Type: 1202}, corsikaEventHeaderPayload(7, 1, 500))
	buf = appendTopLevelObject(buf, objheader.ObjectHeader{Type: 1203}, arrayOffsetsPayload())
	buf = appendTopLevelObject(buf, objheader.ObjectHeader{Type: 1204, OnlySubObjects: true}, telData)
	buf = appendTopLevelObject(buf, objheader.ObjectHeader{Type: 1209}, eventEndBlockPayload(7))

	src := bytesource.NewRaw(bytes.NewReader(buf))
	r, err := NewIactReader(src)
	require.NoError(t, err)

	var events []*IactEvent
	for ev := range r.Events() {
		events = append(events, ev)
	}

	require.NoError(t, r.Err())
	require.Empty(t, r.DecodeErrors())
	require.Len(t, events, 1)

	ev := events[0]
	require.Equal(t, int32(7), ev.Header.EventNumber)
	require.InDelta(t, float32(500), ev.Header.Energy, 0.001)
	require.InDelta(t, float32(10), ev.Offsets.XOffset[0], 0.001)
	require.Contains(t, ev.PhotonBunches, 3)
	require.Equal(t, int32(7), ev.EndBlock.EventNumber)
}

func TestIactReader_BuffersFileScopedObjects(t *testing.T) {
	b := &builder{}
	b.i32(3)
	b.f32(99999).f32(20260101).f32(6)

	var buf []byte
	buf = appendTopLevelObject(buf, objheader.ObjectHeader{Type: 1200}, b.buf)
	buf = appendTopLevelObject(buf, objheader.ObjectHeader{Type: 1212}, []byte{0, 3, 'F', 'O', 'O'})

	src := bytesource.NewRaw(bytes.NewReader(buf))
	r, err := NewIactReader(src)
	require.NoError(t, err)

	for range r.Events() {
	}

	require.NoError(t, r.Err())
	require.NotNil(t, r.RunHeader())
	require.Equal(t, int32(99999), r.RunHeader().RunNumber)
	require.NotNil(t, r.InputCard())
	require.Equal(t, []string{"FOO"}, r.InputCard().Lines)
}

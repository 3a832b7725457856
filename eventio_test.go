package eventio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cta-observatory/goeventio/bytesource"
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/objects"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/registry"
)

type builder struct{ buf []byte }

func (b *builder) i32(v int32) *builder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v)) //nolint:gosec
	b.buf = append(b.buf, tmp[:]...)

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

func corsikaRunHeaderPayload(runNumber int32) []byte {
	b := &builder{}
	b.i32(7)
	b.f32(float32(runNumber)).f32(20260101).f32(6).f32(0).f32(0).f32(0).f32(0)

	return b.buf
}

func TestReader_ObjectsWalksTopLevelStream(t *testing.T) {
	var buf []byte
	buf = appendTopLevelObject(buf, objheader.ObjectHeader{Type: 1200}, corsikaRunHeaderPayload(42))
	buf = appendTopLevelObject(buf, objheader.ObjectHeader{Type: 9999}, []byte{1, 2, 3})

	src := bytesource.NewRaw(bytes.NewReader(buf))
	r, err := newReader(src)
	require.NoError(t, err)
	defer r.Close() //nolint:errcheck

	var types []int
	for h := range r.Objects() {
		types = append(types, int(h.Header.Type))
	}

	require.NoError(t, r.Err())
	require.Equal(t, []int{1200, 9999}, types)
}

func TestReader_DecodedDispatchesKnownAndUnknownTypes(t *testing.T) {
	var buf []byte
	buf = appendTopLevelObject(buf, objheader.ObjectHeader{Type: 1200}, corsikaRunHeaderPayload(42))
	buf = appendTopLevelObject(buf, objheader.ObjectHeader{Type: 9999}, []byte{1, 2, 3})

	src := bytesource.NewRaw(bytes.NewReader(buf))
	r, err := newReader(src)
	require.NoError(t, err)
	defer r.Close() //nolint:errcheck

	var records []registry.Record
	for rec := range r.Decoded() {
		records = append(records, rec)
	}

	require.NoError(t, r.Err())
	require.Empty(t, r.DecodeErrors())
	require.Len(t, records, 2)

	runHeader, ok := records[0].(objects.CorsikaRunHeader)
	require.True(t, ok)
	require.Equal(t, int32(42), runHeader.RunNumber)

	unknown, ok := records[1].(registry.UnknownObject)
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, unknown.Payload)
}

func TestReader_DecodedWalksSubObjects(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	child := objheader.ObjectHeader{Type: 1200}
	childPayload := corsikaRunHeaderPayload(7)
	child.Length = uint64(len(childPayload))

	var container []byte
	container = append(container, child.Bytes(engine)...)
	container = append(container, childPayload...)

	var buf []byte
	buf = appendTopLevelObject(buf, objheader.ObjectHeader{Type: 5000, OnlySubObjects: true}, container)

	src := bytesource.NewRaw(bytes.NewReader(buf))
	r, err := newReader(src)
	require.NoError(t, err)
	defer r.Close() //nolint:errcheck

	var records []registry.Record
	for rec := range r.Decoded() {
		records = append(records, rec)
	}

	require.NoError(t, r.Err())
	require.Len(t, records, 1)

	runHeader, ok := records[0].(objects.CorsikaRunHeader)
	require.True(t, ok)
	require.Equal(t, int32(7), runHeader.RunNumber)
}

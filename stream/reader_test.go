package stream

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cta-observatory/goeventio/bytesource"
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/errs"
	"github.com/cta-observatory/goeventio/objheader"
)

func appendSyncMarker(buf []byte) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], objheader.SyncMarkerLE)

	return append(buf, b[:]...)
}

func appendTopLevelObject(t *testing.T, buf []byte, h objheader.ObjectHeader, payload []byte) []byte {
	t.Helper()

	engine := endian.GetLittleEndianEngine()
	h.Length = uint64(len(payload))

	buf = appendSyncMarker(buf)
	buf = append(buf, h.Bytes(engine)...)
	buf = append(buf, payload...)

	return buf
}

func TestReader_TopLevelIteration(t *testing.T) {
	var buf []byte
	buf = appendTopLevelObject(t, buf, objheader.ObjectHeader{Type: 1200, ID: 1}, []byte{1, 2, 3, 4})
	buf = appendTopLevelObject(t, buf, objheader.ObjectHeader{Type: 1212, ID: 2}, []byte{5, 6})

	src := bytesource.NewRaw(bytes.NewReader(buf))
	r := NewReader(src)

	var types []uint16

	for h := range r.Objects() {
		types = append(types, h.Header.Type)

		payload, err := h.ReadPayload()
		require.NoError(t, err)
		require.Len(t, payload, int(h.Header.Length))
	}

	require.NoError(t, r.Err())
	require.Empty(t, r.Diagnostics())
	require.Equal(t, []uint16{1200, 1212}, types)
}

func TestReader_SubObjects(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	childHeader := objheader.ObjectHeader{Type: 1205, ID: 0}
	childPayload := []byte{0xAA, 0xBB, 0xCC}
	childHeader.Length = uint64(len(childPayload))

	var children []byte
	children = append(children, childHeader.Bytes(engine)...)
	children = append(children, childPayload...)

	parentHeader := objheader.ObjectHeader{Type: 1204, ID: 0, OnlySubObjects: true}

	var buf []byte
	buf = appendTopLevelObject(t, buf, parentHeader, children)

	src := bytesource.NewRaw(bytes.NewReader(buf))
	r := NewReader(src)

	var sawParent, sawChild bool

	for h := range r.Objects() {
		sawParent = true
		require.True(t, h.Header.OnlySubObjects)

		for sub := range h.SubObjects() {
			sawChild = true
			require.Equal(t, uint16(1205), sub.Header.Type)

			payload, err := sub.ReadPayload()
			require.NoError(t, err)
			require.Equal(t, childPayload, payload)
		}
	}

	require.NoError(t, r.Err())
	require.True(t, sawParent)
	require.True(t, sawChild)
}

func TestReader_EarlyTermination(t *testing.T) {
	var buf []byte
	buf = appendTopLevelObject(t, buf, objheader.ObjectHeader{Type: 1200, ID: 1}, []byte{1, 2, 3, 4})
	buf = appendTopLevelObject(t, buf, objheader.ObjectHeader{Type: 1212, ID: 2}, []byte{5, 6})

	src := bytesource.NewRaw(bytes.NewReader(buf))
	r := NewReader(src)

	count := 0

	for range r.Objects() {
		count++

		break
	}

	require.Equal(t, 1, count)
	require.NoError(t, r.Err())
}

func TestReader_CleanEOF(t *testing.T) {
	var buf []byte
	buf = appendTopLevelObject(t, buf, objheader.ObjectHeader{Type: 1200, ID: 1}, []byte{1, 2})

	src := bytesource.NewRaw(bytes.NewReader(buf))
	r := NewReader(src)

	n := 0
	for range r.Objects() {
		n++
	}

	require.Equal(t, 1, n)
	require.NoError(t, r.Err())
	require.Empty(t, r.Diagnostics())
}

func TestReader_TruncatedMidHeader(t *testing.T) {
	var buf []byte
	buf = appendTopLevelObject(t, buf, objheader.ObjectHeader{Type: 1200, ID: 1}, []byte{1, 2})
	buf = appendSyncMarker(buf)
	buf = append(buf, 0x01, 0x02, 0x03) // incomplete header

	src := bytesource.NewRaw(bytes.NewReader(buf))
	r := NewReader(src)

	n := 0
	for range r.Objects() {
		n++
	}

	require.Equal(t, 1, n)
	require.NoError(t, r.Err())
	require.Len(t, r.Diagnostics(), 1)
	require.ErrorIs(t, r.Diagnostics()[0].Kind, errs.ErrTruncated)
}

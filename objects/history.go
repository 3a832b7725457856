package objects

import (
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/varint"
)

// HistoryCommandLine is object type 71: one logged invocation of a
// simulation tool, with its Unix timestamp.
type HistoryCommandLine struct {
	Timestamp int32
	Command   string
}

func (HistoryCommandLine) ObjectType() format.ObjectType { return format.TypeHistoryCommandLine }

func decodeHistoryCommandLine(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	ts := c.I32()
	cmd := c.String()

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "history-command-line", c.Err)
	}

	return HistoryCommandLine{Timestamp: ts, Command: cmd}, nil
}

// HistoryConfigLine is object type 72: one logged configuration-file line,
// with the Unix timestamp it took effect.
type HistoryConfigLine struct {
	Timestamp int32
	Line      string
}

func (HistoryConfigLine) ObjectType() format.ObjectType { return format.TypeHistoryConfigLine }

func decodeHistoryConfigLine(h objheader.ObjectHeader, payload []byte, offset int64, _ *registry.Registry) (registry.Record, error) {
	c := varint.NewCursor(payload, endian.GetLittleEndianEngine())

	ts := c.I32()
	line := c.String()

	if c.Err != nil {
		return nil, decodeErr(int(h.Type), int(h.Version), offset, "history-config-line", c.Err)
	}

	return HistoryConfigLine{Timestamp: ts, Line: line}, nil
}

package varint

import (
	"github.com/cta-observatory/goeventio/endian"
	"github.com/cta-observatory/goeventio/errs"
)

// Cursor is a convenience wrapper over the free-function readers for
// callers that decode many consecutive fields from one buffer: it carries
// the offset and the first error encountered, so a chain of reads can skip
// individual error checks and test err once at the end. Object decoders in
// the objects package use this in preference to threading offsets by hand.
type Cursor struct {
	Data   []byte
	Offset int
	Engine endian.EndianEngine
	Err    error
}

// NewCursor returns a Cursor positioned at the start of data.
func NewCursor(data []byte, engine endian.EndianEngine) *Cursor {
	return &Cursor{Data: data, Engine: engine}
}

func (c *Cursor) fail(err error) {
	if c.Err == nil {
		c.Err = err
	}
}

// Remaining reports how many bytes are left unread.
func (c *Cursor) Remaining() int {
	return len(c.Data) - c.Offset
}

func (c *Cursor) U8() uint8 {
	if c.Err != nil {
		return 0
	}

	v, next, err := ReadU8(c.Data, c.Offset)
	c.Offset = next
	c.fail(err)

	return v
}

func (c *Cursor) I8() int8 {
	if c.Err != nil {
		return 0
	}

	v, next, err := ReadI8(c.Data, c.Offset)
	c.Offset = next
	c.fail(err)

	return v
}

func (c *Cursor) U16() uint16 {
	if c.Err != nil {
		return 0
	}

	v, next, err := ReadU16(c.Data, c.Offset, c.Engine)
	c.Offset = next
	c.fail(err)

	return v
}

func (c *Cursor) I16() int16 {
	if c.Err != nil {
		return 0
	}

	v, next, err := ReadI16(c.Data, c.Offset, c.Engine)
	c.Offset = next
	c.fail(err)

	return v
}

func (c *Cursor) U32() uint32 {
	if c.Err != nil {
		return 0
	}

	v, next, err := ReadU32(c.Data, c.Offset, c.Engine)
	c.Offset = next
	c.fail(err)

	return v
}

func (c *Cursor) I32() int32 {
	if c.Err != nil {
		return 0
	}

	v, next, err := ReadI32(c.Data, c.Offset, c.Engine)
	c.Offset = next
	c.fail(err)

	return v
}

func (c *Cursor) U64() uint64 {
	if c.Err != nil {
		return 0
	}

	v, next, err := ReadU64(c.Data, c.Offset, c.Engine)
	c.Offset = next
	c.fail(err)

	return v
}

func (c *Cursor) I64() int64 {
	if c.Err != nil {
		return 0
	}

	v, next, err := ReadI64(c.Data, c.Offset, c.Engine)
	c.Offset = next
	c.fail(err)

	return v
}

func (c *Cursor) F32() float32 {
	if c.Err != nil {
		return 0
	}

	v, next, err := ReadF32(c.Data, c.Offset, c.Engine)
	c.Offset = next
	c.fail(err)

	return v
}

func (c *Cursor) F64() float64 {
	if c.Err != nil {
		return 0
	}

	v, next, err := ReadF64(c.Data, c.Offset, c.Engine)
	c.Offset = next
	c.fail(err)

	return v
}

func (c *Cursor) String() string {
	if c.Err != nil {
		return ""
	}

	v, next, err := ReadString(c.Data, c.Offset)
	c.Offset = next
	c.fail(err)

	return v
}

func (c *Cursor) Unsigned() uint64 {
	if c.Err != nil {
		return 0
	}

	v, next, err := ReadUnsigned(c.Data, c.Offset)
	c.Offset = next
	c.fail(err)

	return v
}

func (c *Cursor) Signed() int64 {
	if c.Err != nil {
		return 0
	}

	v, next, err := ReadSigned(c.Data, c.Offset)
	c.Offset = next
	c.fail(err)

	return v
}

func (c *Cursor) DifferentialArray(n int) []int64 {
	if c.Err != nil {
		return nil
	}

	v, next, err := ReadDifferentialArray(c.Data, c.Offset, n)
	c.Offset = next
	c.fail(err)

	return v
}

func (c *Cursor) SampleDifferential(n int) []int64 {
	if c.Err != nil {
		return nil
	}

	v, next, err := ReadSampleDifferential(c.Data, c.Offset, n)
	c.Offset = next
	c.fail(err)

	return v
}

// Bytes consumes and returns the next n raw bytes.
func (c *Cursor) Bytes(n int) []byte {
	if c.Err != nil {
		return nil
	}

	if c.Offset+n > len(c.Data) {
		c.fail(errs.ErrUnexpectedEnd)

		return nil
	}

	out := c.Data[c.Offset : c.Offset+n]
	c.Offset += n

	return out
}

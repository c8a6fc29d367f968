// Package stream provides a bounds-checked, seekable big-endian reader over
// an in-memory buffer. All brush file decoders are written in terms of it so
// that no length or offset arithmetic ever touches the buffer unchecked.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Errors returned by Cursor.
var (
	// ErrTruncatedInput is returned when fewer bytes remain than requested.
	ErrTruncatedInput = errors.New("stream: truncated input")

	// ErrOutOfRange is returned when seeking outside [0, Len].
	ErrOutOfRange = errors.New("stream: position out of range")
)

// Cursor reads fixed-width big-endian values from a byte slice.
//
// A failed read does not advance the position.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor creates a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the total buffer length.
func (c *Cursor) Len() int { return len(c.buf) }

// Pos returns the current read position.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// AtEnd reports whether all bytes have been consumed.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.buf) }

// Seek moves to an absolute position. pos == Len is allowed (end of input).
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return fmt.Errorf("%w: seek to %d (len %d)", ErrOutOfRange, pos, len(c.buf))
	}
	c.pos = pos
	return nil
}

// Skip advances by n bytes. Negative n is rejected.
func (c *Cursor) Skip(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: skip %d", ErrOutOfRange, n)
	}
	if n > c.Remaining() {
		return fmt.Errorf("%w: skip %d at %d, %d left", ErrTruncatedInput, n, c.pos, c.Remaining())
	}
	c.pos += n
	return nil
}

// take returns the next n bytes without copying.
func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: read %d", ErrOutOfRange, n)
	}
	if n > c.Remaining() {
		return nil, fmt.Errorf("%w: need %d at %d, %d left", ErrTruncatedInput, n, c.pos, c.Remaining())
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// U8 reads one byte.
func (c *Cursor) U8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// I8 reads one signed byte.
func (c *Cursor) I8() (int8, error) {
	v, err := c.U8()
	return int8(v), err
}

// U16 reads a big-endian uint16.
func (c *Cursor) U16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// I16 reads a big-endian int16.
func (c *Cursor) I16() (int16, error) {
	v, err := c.U16()
	return int16(v), err
}

// U32 reads a big-endian uint32.
func (c *Cursor) U32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// I32 reads a big-endian int32.
func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

// Bytes returns the next n bytes. The result aliases the underlying buffer
// and must not be modified.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	return c.take(n)
}

// Peek returns up to n bytes at the current position without advancing.
func (c *Cursor) Peek(n int) []byte {
	end := min(c.pos+max(n, 0), len(c.buf))
	return c.buf[c.pos:end]
}

// Package packbits implements the scanline run-length scheme used by
// Photoshop brush archives: a table of big-endian 16-bit compressed lengths,
// one per scanline, followed by PackBits-encoded scanline bodies.
package packbits

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/brush/internal/stream"
)

// ErrCorruptRun is returned when a run reads past the input or would write
// past the destination.
var ErrCorruptRun = errors.New("packbits: corrupt run")

// MaxRun is the longest literal or repeat run one control byte can express.
const MaxRun = 128

// Decode reads scanlines compressed-length entries from c and then expands
// each scanline into dst, which is filled front to back. It returns the
// number of bytes written.
//
// Control byte n (two's complement):
//   - 0..127: copy the next n+1 bytes literally
//   - -127..-1: repeat the next byte 1-n times
//   - -128: no-op
//
// A scanline ends as soon as its compressed budget is spent. Reading past the
// end of the input while budget remains, or writing past len(dst), fails
// with ErrCorruptRun; writes are clamped so dst is never overrun.
func Decode(c *stream.Cursor, dst []byte, scanlines int) (int, error) {
	if scanlines < 0 {
		return 0, fmt.Errorf("%w: %d scanlines", ErrCorruptRun, scanlines)
	}

	counts := make([]int, scanlines)
	for i := range counts {
		n, err := c.U16()
		if err != nil {
			return 0, fmt.Errorf("%w: scanline length table: %w", ErrCorruptRun, err)
		}
		counts[i] = int(n)
	}

	out := 0
	for line, budget := range counts {
		for used := 0; used < budget; {
			ctl, err := c.I8()
			if err != nil {
				return out, fmt.Errorf("%w: scanline %d control byte: %w", ErrCorruptRun, line, err)
			}
			used++

			switch {
			case ctl == -128:
				continue

			case ctl < 0:
				v, err := c.U8()
				if err != nil {
					return out, fmt.Errorf("%w: scanline %d repeat value: %w", ErrCorruptRun, line, err)
				}
				used++
				n := 1 - int(ctl)
				if out+n > len(dst) {
					fill(dst[out:], v)
					return len(dst), fmt.Errorf("%w: scanline %d repeat of %d overflows destination at %d", ErrCorruptRun, line, n, out)
				}
				fill(dst[out:out+n], v)
				out += n

			default:
				n := int(ctl) + 1
				lit, err := c.Bytes(n)
				if err != nil {
					return out, fmt.Errorf("%w: scanline %d literal: %w", ErrCorruptRun, line, err)
				}
				used += n
				if out+n > len(dst) {
					copy(dst[out:], lit)
					return len(dst), fmt.Errorf("%w: scanline %d literal of %d overflows destination at %d", ErrCorruptRun, line, n, out)
				}
				copy(dst[out:], lit)
				out += n
			}
		}
	}
	return out, nil
}

func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}

// Encode compresses a width×height byte plane into the same layout Decode
// reads: the scanline length table followed by the encoded scanlines.
func Encode(plane []byte, width, height int) []byte {
	rows := make([][]byte, height)
	for y := range height {
		rows[y] = encodeRow(plane[y*width : (y+1)*width])
	}

	out := make([]byte, 2*height)
	for y, r := range rows {
		binary.BigEndian.PutUint16(out[2*y:], uint16(len(r)))
	}
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}

func encodeRow(row []byte) []byte {
	var out []byte
	i := 0
	for i < len(row) {
		run := 1
		for i+run < len(row) && row[i+run] == row[i] && run < MaxRun {
			run++
		}
		if run >= 2 {
			out = append(out, byte(int8(1-run)), row[i])
			i += run
			continue
		}

		start := i
		i++
		for i < len(row) && i-start < MaxRun {
			if i+1 < len(row) && row[i] == row[i+1] {
				break
			}
			i++
		}
		out = append(out, byte(i-start-1))
		out = append(out, row[start:i]...)
	}
	return out
}

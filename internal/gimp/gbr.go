// Package gimp decodes GIMP brushes (.gbr) and image hoses (.gih).
package gimp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/gogpu/brush/internal/image"
	"github.com/gogpu/brush/internal/stream"
)

// ErrCorrupt is returned for brushes whose header or pixel data is invalid.
var ErrCorrupt = errors.New("gimp: corrupt brush")

const (
	magic = "GIMP"

	headerV1 = 20
	headerV2 = 28

	maxSpacing = 1000
	maxSide    = 1 << 14
)

// Brush is one decoded GIMP brush.
type Brush struct {
	Name string
	// Image is Gray8 coverage for 1-byte brushes and RGBAPremul for
	// 4-byte colour brushes.
	Image *image.ImageBuf
	// Spacing as a fraction of the brush width.
	Spacing float64
	Version int
}

// Decode parses a single .gbr file.
func Decode(data []byte) (*Brush, error) {
	return DecodeFrom(stream.NewCursor(data))
}

// DecodeFrom parses one brush at the cursor and leaves the cursor just
// after its pixel data.
func DecodeFrom(c *stream.Cursor) (*Brush, error) {
	start := c.Pos()
	var hdr [5]uint32
	for i := range hdr {
		v, err := c.U32()
		if err != nil {
			return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
		}
		hdr[i] = v
	}
	headerSize, version, width, height, depth := hdr[0], hdr[1], hdr[2], hdr[3], hdr[4]

	b := &Brush{Version: int(version), Spacing: 0.25}
	fixed := uint32(headerV1)
	switch version {
	case 1:
		if depth != 1 {
			return nil, fmt.Errorf("%w: version 1 with %d bytes per pixel", ErrCorrupt, depth)
		}
	case 2, 3:
		m, err := c.Bytes(4)
		if err != nil {
			return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
		}
		if string(m) != magic {
			return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, m)
		}
		spacing, err := c.U32()
		if err != nil {
			return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
		}
		if spacing > maxSpacing {
			return nil, fmt.Errorf("%w: spacing %d", ErrCorrupt, spacing)
		}
		b.Spacing = float64(spacing) / 100
		fixed = headerV2
	default:
		return nil, fmt.Errorf("%w: version %d", ErrCorrupt, version)
	}

	switch {
	case headerSize <= fixed:
		return nil, fmt.Errorf("%w: header size %d", ErrCorrupt, headerSize)
	case width == 0 || height == 0 || width > maxSide || height > maxSide:
		return nil, fmt.Errorf("%w: size %dx%d", ErrCorrupt, width, height)
	case depth != 1 && depth != 4:
		return nil, fmt.Errorf("%w: %d bytes per pixel", ErrCorrupt, depth)
	}

	name, err := c.Bytes(int(headerSize - fixed))
	if err != nil {
		return nil, fmt.Errorf("%w: name: %w", ErrCorrupt, err)
	}
	name, _, _ = bytes.Cut(name, []byte{0})
	if !utf8.Valid(name) {
		// Version 1 names are Latin-1 in the wild.
		name = []byte(latin1(name))
	}
	b.Name = string(name)

	w, h := int(width), int(height)
	pix, err := c.Bytes(w * h * int(depth))
	if err != nil {
		_ = c.Seek(start)
		return nil, fmt.Errorf("%w: pixel data: %w", ErrCorrupt, err)
	}

	if depth == 1 {
		img := image.MustNew(w, h, image.FormatGray8)
		copy(img.Data(), pix)
		b.Image = img
	} else {
		img := image.MustNew(w, h, image.FormatRGBA8)
		copy(img.Data(), pix)
		b.Image = img.Premultiplied()
	}
	return b, nil
}

func latin1(b []byte) string {
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}
	return string(r)
}

// Encode writes b in .gbr version 2 layout. Colour images are written
// with straight alpha.
func Encode(b *Brush) []byte {
	w, h := b.Image.Bounds()
	depth := 1
	if b.Image.Format() != image.FormatGray8 {
		depth = 4
	}
	name := append([]byte(b.Name), 0)

	out := make([]byte, 0, headerV2+len(name)+w*h*depth)
	for _, v := range []uint32{uint32(headerV2 + len(name)), 2, uint32(w), uint32(h), uint32(depth)} {
		out = binary.BigEndian.AppendUint32(out, v)
	}
	out = append(out, magic...)
	out = binary.BigEndian.AppendUint32(out, uint32(b.Spacing*100+0.5))
	out = append(out, name...)

	for y := range h {
		if depth == 1 {
			out = append(out, b.Image.RowBytes(y)...)
			continue
		}
		for x := range w {
			r, g, bl, a := b.Image.GetRGBA(x, y)
			if b.Image.Format() == image.FormatRGBAPremul && a > 0 && a < 255 {
				r, g, bl = unpremul(r, a), unpremul(g, a), unpremul(bl, a)
			}
			out = append(out, r, g, bl, a)
		}
	}
	return out
}

func unpremul(v, a uint8) uint8 {
	return uint8(min((int(v)*255+int(a)/2)/int(a), 255))
}

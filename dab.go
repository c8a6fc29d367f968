package brush

import (
	stdimage "image"
	"io"

	"github.com/gogpu/brush/internal/image"
)

// Dab is one rendered tip image, ready to be stamped. It belongs to the
// caller; writing to it never affects the tip.
type Dab struct {
	buf *image.ImageBuf
}

// Width returns the dab width in pixels.
func (d *Dab) Width() int { return d.buf.Width() }

// Height returns the dab height in pixels.
func (d *Dab) Height() int { return d.buf.Height() }

// IsMask reports whether the dab is a coverage mask rather than colour.
func (d *Dab) IsMask() bool { return d.buf.Format() == image.FormatGray8 }

// Coverage returns the mask value at (x, y), or the alpha of a colour dab.
func (d *Dab) Coverage(x, y int) uint8 {
	_, _, _, a := d.buf.GetRGBA(x, y)
	return a
}

// Pix returns the raw pixels: one byte per pixel for masks, premultiplied
// RGBA otherwise. Rows are Stride bytes apart.
func (d *Dab) Pix() []byte { return d.buf.Data() }

// Stride returns the distance in bytes between rows of Pix.
func (d *Dab) Stride() int { return d.buf.Stride() }

// Image returns a zero-copy view: *image.Alpha for masks, *image.RGBA for
// colour dabs.
func (d *Dab) Image() stdimage.Image {
	if a := d.buf.AlphaView(); a != nil {
		return a
	}
	return d.buf.View()
}

// EncodePNG writes the dab as PNG. Masks are written white on transparent.
func (d *Dab) EncodePNG(w io.Writer) error { return d.buf.EncodePNG(w) }

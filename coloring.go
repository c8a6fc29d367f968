package brush

import (
	stdimage "image"
	"image/color"

	"github.com/gogpu/brush/internal/image"
)

// ColoringSource supplies the paint colour for each pixel of a mask dab.
// Colours are premultiplied.
type ColoringSource interface {
	ColorAt(x, y int) color.RGBA
}

// PlainColor paints every pixel with one colour.
type PlainColor struct {
	c color.RGBA
}

// NewPlainColor returns a source that paints c everywhere.
func NewPlainColor(c color.Color) PlainColor {
	return PlainColor{c: color.RGBAModel.Convert(c).(color.RGBA)}
}

// ColorAt implements ColoringSource.
func (p PlainColor) ColorAt(int, int) color.RGBA { return p.c }

// ImageColoring takes each pixel's colour from an image, tiling it when the
// dab is larger than the source.
type ImageColoring struct {
	src     stdimage.Image
	offsetX int
	offsetY int
}

// NewImageColoring returns a source that reads src starting at
// (offsetX, offsetY) for the dab's top-left pixel.
func NewImageColoring(src stdimage.Image, offsetX, offsetY int) *ImageColoring {
	return &ImageColoring{src: src, offsetX: offsetX, offsetY: offsetY}
}

// ColorAt implements ColoringSource.
func (c *ImageColoring) ColorAt(x, y int) color.RGBA {
	b := c.src.Bounds()
	if b.Empty() {
		return color.RGBA{}
	}
	sx := b.Min.X + wrap(x+c.offsetX, b.Dx())
	sy := b.Min.Y + wrap(y+c.offsetY, b.Dy())
	return color.RGBAModel.Convert(c.src.At(sx, sy)).(color.RGBA)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// colorize multiplies each source colour by the mask coverage.
func colorize(coverage *image.ImageBuf, src ColoringSource) *image.ImageBuf {
	w, h := coverage.Bounds()
	out := image.MustNew(w, h, image.FormatRGBAPremul)
	for y := range h {
		cov, dst := coverage.RowBytes(y), out.RowBytes(y)
		for x := range w {
			a := uint32(cov[x])
			if a == 0 {
				continue
			}
			c := src.ColorAt(x, y)
			dst[4*x] = byte((uint32(c.R)*a + 127) / 255)
			dst[4*x+1] = byte((uint32(c.G)*a + 127) / 255)
			dst[4*x+2] = byte((uint32(c.B)*a + 127) / 255)
			dst[4*x+3] = byte((uint32(c.A)*a + 127) / 255)
		}
	}
	return out
}

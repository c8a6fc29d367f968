// Package pyramid resamples raster brush tips to arbitrary scale and
// rotation in near-constant time per dab.
//
// A Pyramid holds progressively halved copies of a base image. A request
// picks the nearest level at or above the requested scale and applies one
// bilinear affine transform from it, so no dab ever resamples from a source
// much larger than its output.
package pyramid

import (
	stdimage "image"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"

	"github.com/gogpu/brush/internal/image"
)

// Level is one precomputed resolution of the base image.
type Level struct {
	Image *image.ImageBuf
	// ScaleX and ScaleY are the level size relative to the base.
	ScaleX, ScaleY float64
}

// Pyramid is an immutable set of levels ordered by increasing scale.
// It may be read from any number of goroutines.
type Pyramid struct {
	base   *image.ImageBuf
	levels []Level
}

// Build creates the pyramid for base. Levels are halved with a box filter
// down to 1×1; with smoothing, one bilinear 2× level is added above the
// base. Each level is resampled from its nearest neighbour, never from an
// already distant one.
func Build(base *image.ImageBuf, smoothing bool) *Pyramid {
	base = base.Premultiplied()
	bw, bh := base.Bounds()
	levelOf := func(img *image.ImageBuf) Level {
		w, h := img.Bounds()
		return Level{Image: img, ScaleX: float64(w) / float64(bw), ScaleY: float64(h) / float64(bh)}
	}

	// Collected largest first, reversed at the end.
	var down []Level
	if smoothing {
		down = append(down, levelOf(resize(base, bw*2, bh*2, transform.Linear)))
	}
	down = append(down, levelOf(base))

	cur := base
	for w, h := bw, bh; w > 1 || h > 1; {
		w, h = (w+1)/2, (h+1)/2
		cur = resize(cur, w, h, transform.Box)
		down = append(down, levelOf(cur))
	}

	levels := make([]Level, len(down))
	for i, l := range down {
		levels[len(down)-1-i] = l
	}
	return &Pyramid{base: base, levels: levels}
}

// Base returns the image the pyramid was built from.
func (p *Pyramid) Base() *image.ImageBuf { return p.base }

// Levels returns the levels in increasing scale order. The slice must not
// be modified.
func (p *Pyramid) Levels() []Level { return p.levels }

// level returns the smallest level whose scale is at least min(sx, sy),
// or the largest level if none is.
func (p *Pyramid) level(sx, sy float64) Level {
	want := min(sx, sy)
	for _, l := range p.levels {
		if min(l.ScaleX, l.ScaleY) >= want {
			return l
		}
	}
	return p.levels[len(p.levels)-1]
}

// ImageSize returns the size CreateImage produces for the same arguments.
func (p *Pyramid) ImageSize(sx, sy, angle, spx, spy float64) (int, int) {
	w, h := p.base.Bounds()
	return ImageSize(float64(w), float64(h), sx, sy, angle, spx, spy)
}

// CreateImage returns a new buffer holding the base image scaled by
// (sx, sy), rotated by angle and shifted by (spx, spy). Its size always
// equals ImageSize for the same arguments. The format matches the base.
func (p *Pyramid) CreateImage(sx, sy, angle, spx, spy float64) *image.ImageBuf {
	bw, bh := p.base.Bounds()
	want := CalculateParams(float64(bw), float64(bh), sx, sy, angle, spx, spy)

	l := p.level(sx, sy)
	lw, lh := l.Image.Bounds()
	residual := CalculateParams(float64(lw), float64(lh), sx/l.ScaleX, sy/l.ScaleY, angle, spx, spy)

	if residual.Transform == image.Identity() && lw == want.Width && lh == want.Height {
		return l.Image.Clone()
	}

	dst := image.MustNew(want.Width, want.Height, p.base.Format())
	src := l.Image.View()
	draw.BiLinear.Transform(dst.View(), residual.Transform.Aff3(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// resize scales img to w×h with bild, keeping img's format.
func resize(img *image.ImageBuf, w, h int, filter transform.ResampleFilter) *image.ImageBuf {
	out := transform.Resize(img.View(), w, h, filter)
	if img.Format() == image.FormatGray8 {
		return image.FromStdImage(out, image.FormatGray8)
	}
	return fromRGBA(out)
}

func fromRGBA(src *stdimage.RGBA) *image.ImageBuf {
	b := src.Bounds()
	buf, err := image.FromRaw(src.Pix, b.Dx(), b.Dy(), image.FormatRGBAPremul, src.Stride)
	if err != nil {
		panic(err)
	}
	return buf
}

package brush

import (
	stdimage "image"

	"github.com/gogpu/brush/internal/cache"
	"github.com/gogpu/brush/internal/image"
	"github.com/gogpu/brush/internal/pyramid"
)

// rasterAsset is the immutable part of a raster tip. Clones share it, and
// with it the lazily built pyramid.
type rasterAsset struct {
	img       *image.ImageBuf
	smoothing bool
	opts      options
	pyr       cache.Shared[*pyramid.Pyramid]
}

func newRasterAsset(img *image.ImageBuf, o options) *rasterAsset {
	return &rasterAsset{img: img, smoothing: o.smoothing, opts: o}
}

func (a *rasterAsset) colour() bool { return a.img.Format() != image.FormatGray8 }

func (a *rasterAsset) pyramid() *pyramid.Pyramid {
	return a.pyr.Get(func() *pyramid.Pyramid {
		p := pyramid.Build(a.img, a.smoothing)
		a.opts.log().Debug("brush: pyramid built",
			"width", a.img.Width(), "height", a.img.Height(),
			"levels", len(p.Levels()), "smoothing", a.smoothing)
		return p
	})
}

// size answers without building the pyramid: dab geometry only depends on
// the base size.
func (a *rasterAsset) size(scale, rotation, subPixelX, subPixelY float64) (int, int) {
	return pyramid.ImageSize(float64(a.img.Width()), float64(a.img.Height()),
		scale, scale, rotation, subPixelX, subPixelY)
}

// NewRasterTip builds a tip from img. *image.Alpha sources are used as
// coverage; *image.Gray sources are read as ink on paper, so black is full
// coverage; everything else becomes a colour tip.
//
// NewRasterTip panics if img is empty.
func NewRasterTip(name string, img stdimage.Image, opts ...Option) *Tip {
	if img.Bounds().Empty() {
		panic("brush: empty raster tip")
	}
	var buf *image.ImageBuf
	switch img.(type) {
	case *stdimage.Alpha, *stdimage.Alpha16:
		buf = image.FromStdImage(img, image.FormatGray8)
	case *stdimage.Gray, *stdimage.Gray16:
		buf = image.FromStdImage(img, image.FormatGray8).Inverted()
	default:
		buf = image.FromStdImage(img, image.FormatRGBAPremul)
	}
	return newRasterTip(name, buf, 0, newOptions(opts))
}

// newRasterTip wraps a decoded buffer. A zero spacing means the file
// carried none.
func newRasterTip(name string, img *image.ImageBuf, spacing float64, o options) *Tip {
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	if o.spacing > 0 {
		spacing = o.spacing
	}
	return &Tip{
		name:     name,
		kind:     KindRaster,
		spacing:  clampSpacing(spacing),
		raster:   newRasterAsset(img, o),
		softness: 1,
		opts:     o,
	}
}

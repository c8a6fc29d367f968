package brush

import (
	"fmt"
	stdimage "image"
	"math"

	"github.com/gogpu/brush/internal/pipe"
)

// Kind tags what a Tip is built from.
type Kind uint8

const (
	// KindRaster tips resample a decoded image.
	KindRaster Kind = iota
	// KindProcedural tips render a mask generator.
	KindProcedural
	// KindPipe tips pick one child tip per dab.
	KindPipe
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRaster:
		return "raster"
	case KindProcedural:
		return "procedural"
	case KindPipe:
		return "pipe"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Tip is a brush tip: it produces one dab per call for a given scale,
// rotation, sub-pixel offset and paint sample.
//
// Pixel data, pyramids and procedural dab caches are shared between a tip
// and its clones and are safe for concurrent reads. Pipe selection state is
// owned by one tip value: Clone the tip for every concurrent stroke.
type Tip struct {
	name    string
	kind    Kind
	spacing float64

	hotX, hotY float64
	hasHotSpot bool

	raster *rasterAsset

	proc     *proceduralAsset
	softness float64

	children []*Tip
	selector *pipe.Selector

	opts options
}

// Name returns the tip name.
func (t *Tip) Name() string { return t.name }

// Kind returns what the tip is built from.
func (t *Tip) Kind() Kind { return t.kind }

// Width returns the tip width at scale 1. Pipe tips report their current
// child.
func (t *Tip) Width() int {
	switch t.kind {
	case KindRaster:
		return t.raster.img.Width()
	case KindProcedural:
		return max(int(math.Ceil(t.proc.gen.Params().Width())), 1)
	default:
		return t.current().Width()
	}
}

// Height returns the tip height at scale 1.
func (t *Tip) Height() int {
	switch t.kind {
	case KindRaster:
		return t.raster.img.Height()
	case KindProcedural:
		return max(int(math.Ceil(t.proc.gen.Params().Height())), 1)
	default:
		return t.current().Height()
	}
}

// HasColor reports whether dabs carry their own colour instead of coverage.
func (t *Tip) HasColor() bool {
	switch t.kind {
	case KindRaster:
		return t.raster.colour()
	case KindPipe:
		for _, c := range t.children {
			if c.HasColor() {
				return true
			}
		}
	}
	return false
}

// Image returns a copy of the tip pixels at scale 1: *image.Alpha for masks,
// *image.RGBA for colour tips.
func (t *Tip) Image() stdimage.Image {
	switch t.kind {
	case KindRaster:
		return (&Dab{buf: t.raster.img.Clone()}).Image()
	case KindProcedural:
		return (&Dab{buf: t.proceduralDab(1, 0, 0, 0, PaintSample{})}).Image()
	default:
		return t.current().Image()
	}
}

// Spacing returns the distance between dabs as a fraction of the width.
func (t *Tip) Spacing() float64 { return t.spacing }

// SetSpacing sets the dab spacing, raising it to MinimumSpacing when lower.
func (t *Tip) SetSpacing(spacing float64) { t.spacing = clampSpacing(spacing) }

// XSpacing returns the horizontal dab distance in pixels at scale.
func (t *Tip) XSpacing(scale float64) float64 {
	return float64(t.Width()) * scale * t.spacing
}

// YSpacing returns the vertical dab distance in pixels at scale.
func (t *Tip) YSpacing(scale float64) float64 {
	return float64(t.Height()) * scale * t.spacing
}

func clampSpacing(s float64) float64 {
	if math.IsNaN(s) || s < MinimumSpacing {
		return MinimumSpacing
	}
	return s
}

// SetHotSpot moves the stamping origin. Coordinates are clamped to the
// last pixel of the tip at scale 1.
func (t *Tip) SetHotSpot(x, y float64) {
	t.hotX = clampHot(x, t.Width())
	t.hotY = clampHot(y, t.Height())
	t.hasHotSpot = true
}

func clampHot(v float64, size int) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v >= float64(size):
		return float64(size - 1)
	}
	return v
}

// HotSpot returns the stamping origin at the given scale. Without an
// explicit hot spot it is the centre of the scaled tip, whose footprint is
// never smaller than one pixel.
func (t *Tip) HotSpot(scaleX, scaleY float64) (float64, float64) {
	if t.hasHotSpot {
		return t.hotX * scaleX, t.hotY * scaleY
	}
	w := max(float64(t.Width())*scaleX, 1)
	h := max(float64(t.Height())*scaleY, 1)
	return w / 2, h / 2
}

// MaskSize returns the size of the dab ProduceDab would return for the same
// arguments.
func (t *Tip) MaskSize(scale, rotation, subPixelX, subPixelY float64, sample PaintSample) (int, int) {
	checkScale(scale)
	switch t.kind {
	case KindRaster:
		return t.raster.size(scale, rotation, subPixelX, subPixelY)
	case KindProcedural:
		return t.proc.gen.Size(scale, scale, rotation, subPixelX, subPixelY)
	default:
		return t.pick(sample).MaskSize(scale, rotation, subPixelX, subPixelY, sample)
	}
}

// MaskWidth returns the width of the dab for the given arguments.
func (t *Tip) MaskWidth(scale, rotation, subPixelX, subPixelY float64, sample PaintSample) int {
	w, _ := t.MaskSize(scale, rotation, subPixelX, subPixelY, sample)
	return w
}

// MaskHeight returns the height of the dab for the given arguments.
func (t *Tip) MaskHeight(scale, rotation, subPixelX, subPixelY float64, sample PaintSample) int {
	_, h := t.MaskSize(scale, rotation, subPixelX, subPixelY, sample)
	return h
}

// ProduceDab renders the tip scaled by scale, rotated by rotation radians
// and shifted by the sub-pixel offset in [0, 1).
//
// Mask tips return a coverage dab when coloring is nil and a premultiplied
// colour dab painted from coloring otherwise. Colour tips ignore coloring.
// Pipe tips render the child chosen for sample; call NotifyDabPainted or
// PrepareForSeqNo to move on to the next child.
//
// ProduceDab panics if scale is not a positive finite number.
func (t *Tip) ProduceDab(scale, rotation, subPixelX, subPixelY float64, sample PaintSample, coloring ColoringSource) *Dab {
	checkScale(scale)
	switch t.kind {
	case KindRaster:
		buf := t.raster.pyramid().CreateImage(scale, scale, rotation, subPixelX, subPixelY)
		if coloring != nil && !t.raster.colour() {
			buf = colorize(buf, coloring)
		}
		return &Dab{buf: buf}
	case KindProcedural:
		buf := t.proceduralDab(scale, rotation, subPixelX, subPixelY, sample)
		if coloring != nil {
			buf = colorize(buf, coloring)
		}
		return &Dab{buf: buf}
	default:
		return t.pick(sample).ProduceDab(scale, rotation, subPixelX, subPixelY, sample, coloring)
	}
}

func checkScale(scale float64) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		panic(fmt.Sprintf("brush: invalid dab scale %v", scale))
	}
}

// NotifyStrokeStarted resets pipe selection for a new stroke.
func (t *Tip) NotifyStrokeStarted() {
	if t.kind != KindPipe {
		return
	}
	t.selector.NotifyStrokeStarted()
	for _, c := range t.children {
		c.NotifyStrokeStarted()
	}
}

// NotifyDabPainted advances pipe selection after a dab was stamped.
func (t *Tip) NotifyDabPainted(sample PaintSample) {
	if t.kind != KindPipe {
		return
	}
	child := t.current()
	t.selector.NotifyDabPainted(sample)
	child.NotifyDabPainted(sample)
}

// PrepareForSeqNo selects the child for dab number seq and advances the
// incremental axes to seq, so that dabs rendered out of order on several
// clones still pick the children a sequential stroke would.
func (t *Tip) PrepareForSeqNo(sample PaintSample, seq int) {
	if t.kind != KindPipe {
		return
	}
	t.selector.PrepareForSeqNo(sample, seq)
	// The stored indexes now point at dab seq; prepare the child that the
	// next ProduceDab will pick.
	t.children[t.selector.Peek(sample)].PrepareForSeqNo(sample, seq)
}

// CurrentIndex returns the child chosen for the last dab of a pipe tip,
// or 0 for other kinds.
func (t *Tip) CurrentIndex() int {
	if t.kind != KindPipe {
		return 0
	}
	return t.selector.CurrentBrushIndex()
}

// Clone returns a tip that shares pixel data and caches with t but owns its
// selection state.
func (t *Tip) Clone() *Tip {
	c := *t
	if t.selector != nil {
		c.selector = t.selector.Clone()
	}
	if t.children != nil {
		c.children = make([]*Tip, len(t.children))
		for i, child := range t.children {
			c.children[i] = child.Clone()
		}
	}
	return &c
}

// AsMask returns a tip whose colour pixels are converted to coverage, with
// dark opaque pixels carrying the most ink. Mask tips are returned as clones.
func (t *Tip) AsMask() *Tip {
	c := t.Clone()
	switch t.kind {
	case KindRaster:
		if t.raster.colour() {
			c.raster = newRasterAsset(t.raster.img.ToCoverage(), t.opts)
		}
	case KindPipe:
		for i, child := range c.children {
			c.children[i] = child.AsMask()
		}
	}
	return c
}

// String describes the tip for logs.
func (t *Tip) String() string {
	return fmt.Sprintf("%s %q %dx%d spacing %.2f", t.kind, t.name, t.Width(), t.Height(), t.spacing)
}

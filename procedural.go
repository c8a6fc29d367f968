package brush

import (
	"context"
	"log/slog"

	"github.com/gogpu/brush/internal/cache"
	"github.com/gogpu/brush/internal/image"
	"github.com/gogpu/brush/internal/mask"
)

// dabKey identifies a procedural dab exactly; no rounding is applied so a
// cached dab is always the dab that would have been rendered.
type dabKey struct {
	scale, rotation float64
	subPixelX       float64
	subPixelY       float64
	softness        float64
}

// proceduralAsset is shared by a procedural tip and its clones.
type proceduralAsset struct {
	gen  mask.Generator
	dabs *cache.Cache[dabKey, *image.ImageBuf]
}

// NewProceduralTip builds a tip rendered from p.
//
// NewProceduralTip panics if p fails Validate.
func NewProceduralTip(name string, p MaskParams, opts ...Option) *Tip {
	o := newOptions(opts)
	spacing := DefaultSpacing
	if o.spacing > 0 {
		spacing = o.spacing
	}
	return &Tip{
		name:    name,
		kind:    KindProcedural,
		spacing: clampSpacing(spacing),
		proc: &proceduralAsset{
			gen:  mask.NewGenerator(p),
			dabs: cache.New[dabKey, *image.ImageBuf](o.dabCache),
		},
		softness: 1,
		opts:     o,
	}
}

// MaskParams returns the generator parameters of a procedural tip.
func (t *Tip) MaskParams() (MaskParams, bool) {
	if t.kind != KindProcedural {
		return MaskParams{}, false
	}
	return t.proc.gen.Params(), true
}

// Softness returns the softness applied to procedural dabs. 1 is neutral.
func (t *Tip) Softness() float64 { return t.softness }

// SetSoftness changes how wide the falloff of procedural dabs is: values
// below 1 widen it. It does not affect clones made earlier. Raster and pipe
// tips only store the value.
func (t *Tip) SetSoftness(s float64) {
	t.softness = mask.ClampSoftness(s)
}

// proceduralDab renders or fetches a Gray8 dab owned by the caller.
// Stippled tips depend on the sample's random stream and are never cached.
func (t *Tip) proceduralDab(scale, rotation, subPixelX, subPixelY float64, sample PaintSample) *image.ImageBuf {
	a := t.proc
	opts := mask.Options{Parallel: t.opts.parallel}
	if a.gen.Params().Random() {
		if sample.Random != nil {
			opts.Seed = sample.Random.Uint64()
		}
		return a.gen.Dab(scale, scale, rotation, subPixelX, subPixelY, t.softness, opts)
	}

	key := dabKey{scale: scale, rotation: rotation, subPixelX: subPixelX, subPixelY: subPixelY, softness: t.softness}
	if dab, ok := a.dabs.Get(key); ok {
		return dab.Clone()
	}

	// Rendered outside the cache lock: clones stroking concurrently may
	// render the same key twice, and the later Set wins.
	dab := a.gen.Dab(scale, scale, rotation, subPixelX, subPixelY, t.softness, opts)
	a.dabs.Set(key, dab)
	if l := t.opts.log(); l.Enabled(context.Background(), slog.LevelDebug) {
		st := a.dabs.Stats()
		l.Debug("brush: dab rendered", "tip", t.name,
			"width", dab.Width(), "height", dab.Height(),
			"cached", st.Len, "hits", st.Hits, "misses", st.Misses)
	}
	return dab.Clone()
}

// DabCacheStats reports the procedural dab cache of the tip, shared with
// its clones.
func (t *Tip) DabCacheStats() (CacheStats, bool) {
	if t.kind != KindProcedural {
		return CacheStats{}, false
	}
	return t.proc.dabs.Stats(), true
}

package brush

import (
	"bytes"
	stdimage "image"
	"image/color"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "raster", KindRaster.String())
	assert.Equal(t, "procedural", KindProcedural.String())
	assert.Equal(t, "pipe", KindPipe.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestNewRasterTip_Sources(t *testing.T) {
	black := stdimage.NewGray(stdimage.Rect(0, 0, 2, 2))

	tests := []struct {
		name     string
		img      stdimage.Image
		color    bool
		coverage uint8
	}{
		{"alpha is coverage", solidAlpha(3, 2, 90), false, 90},
		{"black gray is full ink", black, false, 255},
		{"white gray is paper", rampGray(3, 3), false, 0},
		{"rgba is colour", solidRGBA(2, 2, color.RGBA{R: 200, A: 255}), true, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tip := NewRasterTip("t", tt.img)
			assert.Equal(t, KindRaster, tip.Kind())
			assert.Equal(t, tt.color, tip.HasColor())
			assert.Equal(t, tt.img.Bounds().Dx(), tip.Width())
			assert.Equal(t, tt.img.Bounds().Dy(), tip.Height())

			d := tip.ProduceDab(1, 0, 0, 0, PaintSample{}, nil)
			assert.Equal(t, tt.coverage, d.Coverage(0, 0))
			assert.Equal(t, !tt.color, d.IsMask())
		})
	}
}

func TestNewRasterTip_PanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { NewRasterTip("none", stdimage.NewAlpha(stdimage.Rectangle{})) })
}

func TestRasterTip_ImageIsACopy(t *testing.T) {
	tip := NewRasterTip("t", solidAlpha(2, 2, 200))
	img, ok := tip.Image().(*stdimage.Alpha)
	require.True(t, ok)
	img.Pix[0] = 0

	again := tip.Image().(*stdimage.Alpha)
	assert.Equal(t, uint8(200), again.Pix[0])
}

func TestMaskSize_MatchesDab(t *testing.T) {
	p := DefaultMaskParams()
	p.Diameter = 10
	p.Ratio = 0.5

	tips := map[string]*Tip{
		"raster":     NewRasterTip("r", solidAlpha(10, 5, 255)),
		"procedural": NewProceduralTip("p", p),
	}
	tests := []struct {
		name       string
		scale, rot float64
		spx, spy   float64
		w, h       int
	}{
		{"identity", 1, 0, 0, 0, 10, 5},
		{"quarter turn", 1, math.Pi / 2, 0, 0, 6, 11},
		{"half scale", 0.5, 0, 0, 0, 5, 3},
		{"sub-pixel", 1, 0, 0.5, 0.5, 11, 6},
		{"tiny", 0.01, 0, 0, 0, 1, 1},
	}
	for kind, tip := range tips {
		for _, tt := range tests {
			t.Run(kind+"/"+tt.name, func(t *testing.T) {
				w, h := tip.MaskSize(tt.scale, tt.rot, tt.spx, tt.spy, PaintSample{})
				assert.Equal(t, tt.w, w)
				assert.Equal(t, tt.h, h)
				assert.Equal(t, w, tip.MaskWidth(tt.scale, tt.rot, tt.spx, tt.spy, PaintSample{}))
				assert.Equal(t, h, tip.MaskHeight(tt.scale, tt.rot, tt.spx, tt.spy, PaintSample{}))

				d := tip.ProduceDab(tt.scale, tt.rot, tt.spx, tt.spy, PaintSample{}, nil)
				assert.Equal(t, w, d.Width())
				assert.Equal(t, h, d.Height())
			})
		}
	}
}

func TestProduceDab_PanicsOnBadScale(t *testing.T) {
	tip := NewRasterTip("t", solidAlpha(4, 4, 255))
	for _, s := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.Panics(t, func() { tip.ProduceDab(s, 0, 0, 0, PaintSample{}, nil) }, "scale %v", s)
	}
}

func TestSpacing(t *testing.T) {
	tip := NewRasterTip("t", solidAlpha(10, 4, 255))
	assert.Equal(t, DefaultSpacing, tip.Spacing())
	assert.InDelta(t, 5.0, tip.XSpacing(2), 1e-12)
	assert.InDelta(t, 2.0, tip.YSpacing(2), 1e-12)

	tip.SetSpacing(0.001)
	assert.Equal(t, MinimumSpacing, tip.Spacing())

	tip.SetSpacing(math.NaN())
	assert.Equal(t, MinimumSpacing, tip.Spacing())

	assert.Equal(t, 0.5, NewRasterTip("t", solidAlpha(1, 1, 1), WithSpacing(0.5)).Spacing())
	assert.Equal(t, MinimumSpacing, NewProceduralTip("p", DefaultMaskParams(), WithSpacing(0.01)).Spacing())
}

func TestHotSpot(t *testing.T) {
	tip := NewRasterTip("t", solidAlpha(10, 6, 255))

	x, y := tip.HotSpot(1, 1)
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 3.0, y)

	x, y = tip.HotSpot(0.01, 0.01)
	assert.Equal(t, 0.5, x)
	assert.Equal(t, 0.5, y)

	tests := []struct {
		name         string
		inX, inY     float64
		wantX, wantY float64
	}{
		{"inside", 2.5, 4, 2.5, 4},
		{"negative clamps to zero", -1, -0.5, 0, 0},
		{"past the edge clamps to last pixel", 20, 6, 9, 5},
		{"just inside the edge", 9.5, 5.5, 9.5, 5.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tip.SetHotSpot(tt.inX, tt.inY)
			x, y := tip.HotSpot(2, 2)
			assert.Equal(t, tt.wantX*2, x)
			assert.Equal(t, tt.wantY*2, y)
		})
	}
}

func TestProduceDab_Coloring(t *testing.T) {
	red := NewPlainColor(color.RGBA{R: 255, A: 255})

	mask := NewRasterTip("m", solidAlpha(4, 4, 128))
	d := mask.ProduceDab(1, 0, 0, 0, PaintSample{}, red)
	require.False(t, d.IsMask())
	rgba, ok := d.Image().(*stdimage.RGBA)
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 128, A: 128}, rgba.RGBAAt(1, 1))

	green := color.RGBA{G: 255, A: 255}
	colour := NewRasterTip("c", solidRGBA(3, 3, green))
	d = colour.ProduceDab(1, 0, 0, 0, PaintSample{}, red)
	assert.Equal(t, green, d.Image().(*stdimage.RGBA).RGBAAt(1, 1))

	p := NewProceduralTip("p", DefaultMaskParams())
	d = p.ProduceDab(1, 0, 0, 0, PaintSample{}, red)
	assert.False(t, d.IsMask())
}

func TestImageColoring_Tiles(t *testing.T) {
	src := stdimage.NewRGBA(stdimage.Rect(10, 10, 12, 11))
	r, g := color.RGBA{R: 255, A: 255}, color.RGBA{G: 255, A: 255}
	src.SetRGBA(10, 10, r)
	src.SetRGBA(11, 10, g)

	c := NewImageColoring(src, 0, 0)
	assert.Equal(t, r, c.ColorAt(0, 0))
	assert.Equal(t, g, c.ColorAt(1, 0))
	assert.Equal(t, r, c.ColorAt(2, 5))
	assert.Equal(t, g, c.ColorAt(-1, 0))

	shifted := NewImageColoring(src, 1, 0)
	assert.Equal(t, g, shifted.ColorAt(0, 0))
}

func TestAsMask(t *testing.T) {
	colour := NewRasterTip("c", solidRGBA(3, 3, color.RGBA{A: 255}))
	m := colour.AsMask()

	assert.True(t, colour.HasColor())
	assert.False(t, m.HasColor())
	assert.Equal(t, "c", m.Name())
	d := m.ProduceDab(1, 0, 0, 0, PaintSample{}, nil)
	assert.True(t, d.IsMask())
	assert.Equal(t, uint8(255), d.Coverage(1, 1))

	gray := NewRasterTip("g", solidAlpha(2, 2, 77))
	gm := gray.AsMask()
	assert.Equal(t, uint8(77), gm.ProduceDab(1, 0, 0, 0, PaintSample{}, nil).Coverage(0, 0))
}

func TestProceduralTip_DabCache(t *testing.T) {
	tip := NewProceduralTip("round", DefaultMaskParams())
	d1 := tip.ProduceDab(1, 0, 0, 0, PaintSample{}, nil)
	d2 := tip.ProduceDab(1, 0, 0, 0, PaintSample{}, nil)

	stats, ok := tip.DabCacheStats()
	require.True(t, ok)
	assert.Equal(t, 1, stats.Len)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(1), stats.Hits)

	for i := range d1.Pix() {
		d1.Pix()[i] = 7
	}
	d3 := tip.ProduceDab(1, 0, 0, 0, PaintSample{}, nil)
	assert.True(t, bytes.Equal(d2.Pix(), d3.Pix()), "cached dab was modified through a returned dab")

	tip.Clone().ProduceDab(1, 0, 0, 0, PaintSample{}, nil)
	stats, _ = tip.DabCacheStats()
	assert.Equal(t, uint64(3), stats.Hits, "clones share the dab cache")

	_, ok = NewRasterTip("r", solidAlpha(1, 1, 1)).DabCacheStats()
	assert.False(t, ok)
}

func TestProceduralTip_CacheDisabled(t *testing.T) {
	tip := NewProceduralTip("round", DefaultMaskParams(), WithDabCacheSize(0))
	tip.ProduceDab(1, 0, 0, 0, PaintSample{}, nil)
	stats, _ := tip.DabCacheStats()
	assert.Equal(t, 0, stats.Len)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestProceduralTip_StippleBypassesCache(t *testing.T) {
	p := DefaultMaskParams()
	p.Diameter = 16
	p.Density = 0.5
	tip := NewProceduralTip("stipple", p)

	a := tip.ProduceDab(1, 0, 0, 0, PaintSample{Random: NewRandomSource(7)}, nil)
	b := tip.ProduceDab(1, 0, 0, 0, PaintSample{Random: NewRandomSource(7)}, nil)
	c := tip.ProduceDab(1, 0, 0, 0, PaintSample{Random: NewRandomSource(8)}, nil)

	assert.Equal(t, a.Pix(), b.Pix())
	assert.NotEqual(t, a.Pix(), c.Pix())
	stats, _ := tip.DabCacheStats()
	assert.Zero(t, stats.Len)
	assert.Zero(t, stats.Hits+stats.Misses)
}

func TestProceduralTip_Softness(t *testing.T) {
	tip := NewProceduralTip("round", DefaultMaskParams())
	soft := tip.Clone()
	soft.SetSoftness(0.5)

	assert.Equal(t, 1.0, tip.Softness())
	assert.Equal(t, 0.5, soft.Softness())

	sum := func(d *Dab) int {
		n := 0
		for _, v := range d.Pix() {
			n += int(v)
		}
		return n
	}
	hard := tip.ProduceDab(1, 0, 0, 0, PaintSample{}, nil)
	softer := soft.ProduceDab(1, 0, 0, 0, PaintSample{}, nil)
	assert.Less(t, sum(softer), sum(hard))

	params, ok := tip.MaskParams()
	require.True(t, ok)
	assert.Equal(t, 10.0, params.Diameter)
}

func TestProceduralTip_Image(t *testing.T) {
	tip := NewProceduralTip("round", DefaultMaskParams())
	img, ok := tip.Image().(*stdimage.Alpha)
	require.True(t, ok)
	assert.Equal(t, stdimage.Rect(0, 0, 10, 10), img.Bounds())
	assert.Positive(t, img.AlphaAt(5, 5).A)
}

func TestNewProceduralTip_PanicsOnInvalid(t *testing.T) {
	p := DefaultMaskParams()
	p.Diameter = -1
	assert.Panics(t, func() { NewProceduralTip("bad", p) })
}

func TestRasterTip_ConcurrentClones(t *testing.T) {
	src := rampGray(32, 32)
	want := NewRasterTip("ref", src).ProduceDab(0.37, 0.3, 0.5, 0.5, PaintSample{}, nil).Pix()

	shared := NewRasterTip("shared", src)
	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tip := shared.Clone()
			results[i] = tip.ProduceDab(0.37, 0.3, 0.5, 0.5, PaintSample{}, nil).Pix()
		}()
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, want, got, "goroutine %d", i)
	}
}

package mask

import (
	"math"
	"math/rand/v2"
	"runtime"

	"github.com/gogpu/brush/internal/image"
	"github.com/gogpu/brush/internal/paint"
	"github.com/gogpu/brush/internal/parallel"
	"github.com/gogpu/brush/internal/pyramid"
)

// ParallelMode controls band-parallel rendering.
type ParallelMode uint8

const (
	// ParallelAuto renders in bands when the destination is taller than
	// ParallelThreshold rows and at least MinParallelCPUs are available.
	ParallelAuto ParallelMode = iota
	// ParallelOn always renders in bands.
	ParallelOn
	// ParallelOff always renders on the calling goroutine.
	ParallelOff
)

const (
	ParallelThreshold = 100
	MinParallelCPUs   = 4
)

// Options tune one render.
type Options struct {
	Parallel ParallelMode
	// Seed drives density and randomness; identical seeds produce
	// identical stipple patterns on either path.
	Seed uint64
	// Pool overrides the shared worker pool.
	Pool *parallel.WorkerPool
}

func (o Options) bands(height int) int {
	switch o.Parallel {
	case ParallelOff:
		return 1
	case ParallelOn:
		return max(runtime.NumCPU(), 2)
	}
	if height > ParallelThreshold && runtime.NumCPU() >= MinParallelCPUs {
		return runtime.NumCPU()
	}
	return 1
}

// Render fills dst (a Gray8 buffer) with the generator's coverage scaled by
// (scaleX, scaleY) and rotated by angle around the destination point
// (centerX, centerY), at the given softness.
//
// Each pixel is sampled at its centre and depends only on its own
// coordinates and on its row's random stream, so band boundaries never
// change the result.
func Render(dst *image.ImageBuf, g Generator, scaleX, scaleY, angle, centerX, centerY, softness float64, opts Options) {
	if dst.Format() != image.FormatGray8 {
		panic("mask: Render needs a Gray8 destination")
	}
	g = g.WithSoftness(softness)
	r := rowRenderer{
		dst: dst, g: &g,
		cos: math.Cos(angle), sin: math.Sin(angle),
		sx: scaleX, sy: scaleY,
		cx: centerX, cy: centerY,
		seed: opts.Seed,
	}

	n := opts.bands(dst.Height())
	if n <= 1 {
		r.rows(parallel.Band{Y0: 0, Y1: dst.Height()})
		return
	}
	pool := opts.Pool
	if pool == nil {
		pool = parallel.Shared()
	}
	parallel.ForEachBand(pool, dst.Height(), n, r.rows)
}

type rowRenderer struct {
	dst            *image.ImageBuf
	g              *Generator
	cos, sin       float64
	sx, sy, cx, cy float64
	seed           uint64
}

func (r *rowRenderer) rows(b parallel.Band) {
	p := r.g.p
	random := p.Random()

	for y := b.Y0; y < b.Y1; y++ {
		row := r.dst.RowBytes(y)
		var rng *rand.Rand
		if random {
			rng = rand.New(rand.NewPCG(paint.RowSeed(r.seed, y)))
		}

		dy := float64(y) + 0.5 - r.cy
		for x := range row {
			dx := float64(x) + 0.5 - r.cx
			gx := (dx*r.cos + dy*r.sin) / r.sx
			gy := (-dx*r.sin + dy*r.cos) / r.sy
			cov := r.g.Coverage(float32(gx), float32(gy))

			if random {
				// Both draws happen for every pixel so each row consumes a
				// fixed amount of its stream.
				jitter, keep := rng.Float64(), rng.Float64()
				if p.Randomness > 0 {
					cov *= float32((1 - p.Randomness) + p.Randomness*jitter)
				}
				if p.Density < 1 && keep > p.Density {
					cov = 0
				}
			}
			row[x] = uint8(cov*255 + 0.5)
		}
	}
}

// Size returns the dab size for the generator at the given geometry.
func (g Generator) Size(scaleX, scaleY, angle, subPixelX, subPixelY float64) (int, int) {
	return pyramid.ImageSize(g.p.Width(), g.p.Height(), scaleX, scaleY, angle, subPixelX, subPixelY)
}

// Dab allocates a buffer of Size and renders the generator centred in it.
func (g Generator) Dab(scaleX, scaleY, angle, subPixelX, subPixelY, softness float64, opts Options) *image.ImageBuf {
	params := pyramid.CalculateParams(g.p.Width(), g.p.Height(), scaleX, scaleY, angle, subPixelX, subPixelY)
	cx, cy := params.Transform.TransformPoint(g.p.Width()/2, g.p.Height()/2)

	dst := image.MustNew(params.Width, params.Height, image.FormatGray8)
	Render(dst, g, scaleX, scaleY, angle, cx, cy, softness, opts)
	return dst
}

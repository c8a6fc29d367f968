package mask

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/tanema/gween/ease"
)

// Generator evaluates the coverage of a procedural tip. It is an immutable
// value; WithSoftness returns a modified copy.
type Generator struct {
	p        Params
	softness float32

	// Normalising coefficients: 2/width and 2/height.
	xcoef, ycoef float32
	// Hard fade coefficients, already divided by softness.
	fadeX, fadeY float32

	spikeAngle         float32
	spikeCos, spikeSin float32

	// Gaussian profile.
	center, alphaFactor, distFactor float64
	gaussKX, gaussKY                float64
	gaussNormX, gaussNormY          float64

	falloff ease.TweenFunc
	value   func(g *Generator, x, y float32) float32
}

// NewGenerator builds a generator for p. It panics if p is invalid; use
// Params.Validate to check first.
func NewGenerator(p Params) Generator {
	if err := p.Validate(); err != nil {
		panic(err)
	}

	g := Generator{p: p}
	w, h := float32(p.Width()), float32(p.Height())
	g.xcoef, g.ycoef = 2/w, 2/h

	if p.Spikes > 2 {
		g.spikeAngle = math32.Pi / float32(p.Spikes)
		g.spikeCos = math32.Cos(-2 * g.spikeAngle)
		g.spikeSin = math32.Sin(-2 * g.spikeAngle)
	}

	switch p.Type {
	case Soft:
		g.falloff = ease.InOutQuad
	case Curve:
		g.falloff = p.Falloff
		if g.falloff == nil {
			g.falloff = ease.Linear
		}
	case Gaussian:
		g.initGaussian()
	}

	switch {
	case p.Type == Gaussian && p.Shape == Circle:
		g.value = (*Generator).gaussCircle
	case p.Type == Gaussian:
		g.value = (*Generator).gaussRect
	case p.Type == Hard && p.Shape == Circle:
		g.value = (*Generator).hardCircle
	case p.Type == Hard:
		g.value = (*Generator).hardRect
	case p.Shape == Circle:
		g.value = (*Generator).easedCircle
	default:
		g.value = (*Generator).easedRect
	}

	return g.WithSoftness(1)
}

// ClampSoftness returns s as a generator stores it: at least 0.01 and at
// float32 precision.
func ClampSoftness(s float64) float64 {
	return float64(float32(max(s, 0.01)))
}

// Params returns the parameters the generator was built from.
func (g Generator) Params() Params { return g.p }

// Softness returns the current softness factor.
func (g Generator) Softness() float64 { return float64(g.softness) }

// WithSoftness returns a copy with the given softness. 1 leaves the edge
// as configured and lower values widen the falloff; values are clamped to
// at least 0.01.
func (g Generator) WithSoftness(s float64) Generator {
	g.softness = float32(ClampSoftness(s))

	w, h := float32(g.p.Width()), float32(g.p.Height())
	g.fadeX, g.fadeY = 1, 1
	switch g.p.Shape {
	case Circle:
		if g.p.HorizontalFade > 0 {
			g.fadeX = 2 / (float32(g.p.HorizontalFade) * w)
		}
		if g.p.VerticalFade > 0 {
			g.fadeY = 2 / (float32(g.p.VerticalFade) * h)
		}
	case Rectangle:
		if g.p.HorizontalFade > 0 {
			g.fadeX = 1 / float32(g.p.HorizontalFade)
		}
		if g.p.VerticalFade > 0 {
			g.fadeY = 1 / float32(g.p.VerticalFade)
		}
	}
	g.fadeX /= g.softness
	g.fadeY /= g.softness
	return g
}

// Coverage returns the coverage in [0, 1] at (x, y), in pixels relative to
// the tip centre at scale 1.
func (g *Generator) Coverage(x, y float32) float32 {
	return g.value(g, x, y)
}

// foldSpikes rotates (x, y) into the first spike sector.
func (g *Generator) foldSpikes(x, y float32) (float32, float32) {
	if g.p.Spikes <= 2 {
		return x, y
	}
	angle := math32.Atan2(y, x)
	for angle > g.spikeAngle {
		x, y = g.spikeCos*x-g.spikeSin*y, g.spikeSin*x+g.spikeCos*y
		angle -= 2 * g.spikeAngle
	}
	return x, y
}

func (g *Generator) hardCircle(x, y float32) float32 {
	xr, yr := g.foldSpikes(x, math32.Abs(y))

	n := norm(xr*g.xcoef, yr*g.ycoef)
	if n > 1 {
		return 0
	}
	if g.p.AntiAlias {
		xr, yr = math32.Abs(xr)+1, math32.Abs(yr)+1
	}
	nf := norm(xr*g.fadeX, yr*g.fadeY)
	if nf < 1 {
		return 1
	}
	if nf-n <= 0 {
		return 0
	}
	return clamp01(nf * (1 - n) / (nf - n))
}

func (g *Generator) hardRect(x, y float32) float32 {
	xr, yr := g.foldSpikes(math32.Abs(x), math32.Abs(y))
	xr, yr = math32.Abs(xr), math32.Abs(yr)

	nxr, nyr := xr*g.xcoef, yr*g.ycoef
	if nxr > 1 || nyr > 1 {
		return 0
	}
	if g.p.AntiAlias {
		xr, yr = xr+1, yr+1
	}
	fxr := xr * g.xcoef * g.fadeX
	fyr := yr * g.ycoef * g.fadeY

	// The axis that is further into its fade band decides.
	switch {
	case fxr > 1 && (fxr >= fyr || fyr < 1):
		return edge(nxr, fxr)
	case fyr > 1:
		return edge(nyr, fyr)
	}
	return 1
}

// edge is the hard-brush falloff between the fade boundary (f = 1) and
// the rim (n = 1).
func edge(n, f float32) float32 {
	if f-n <= 0 {
		return 0
	}
	return clamp01(1 - n*(f-1)/(f-n))
}

func (g *Generator) easedCircle(x, y float32) float32 {
	xr, yr := g.foldSpikes(x, math32.Abs(y))
	t := math32.Sqrt(norm(xr*g.xcoef, yr*g.ycoef))
	if t > 1 {
		return 0
	}
	fade := float32(g.p.HorizontalFade+g.p.VerticalFade) / 2
	return g.ease(t, fade)
}

func (g *Generator) easedRect(x, y float32) float32 {
	xr, yr := g.foldSpikes(math32.Abs(x), math32.Abs(y))
	tx, ty := math32.Abs(xr)*g.xcoef, math32.Abs(yr)*g.ycoef
	if tx > 1 || ty > 1 {
		return 0
	}
	return min(g.ease(tx, float32(g.p.HorizontalFade)), g.ease(ty, float32(g.p.VerticalFade)))
}

// ease maps a normalised distance t in [0, 1] through the falloff. The
// outer fade/softness of the radius eases from full to no coverage.
func (g *Generator) ease(t, fade float32) float32 {
	r0 := clamp01(1 - fade/g.softness)
	if t <= r0 {
		return 1
	}
	if r0 >= 1 {
		return 0
	}
	u := (t - r0) / (1 - r0)
	return clamp01(1 - g.falloff(u, 0, 1, 1))
}

func (g *Generator) initGaussian() {
	fade := 1 - (g.p.HorizontalFade+g.p.VerticalFade)/2
	switch {
	case fade <= 0:
		fade = 1e-6
	case fade >= 1:
		fade = 1 - 1e-6
	}
	g.center = 2.5 * (6761*fade - 10000) / (math.Sqrt2 * 6761 * fade)
	g.alphaFactor = 255 / (2 * math.Erf(g.center))
	g.distFactor = math.Sqrt2 * 12500 / (6761 * fade * g.p.Width() / 2)

	// Rectangles use one erf edge per axis whose width grows as that
	// axis' fade drops below 1.
	sigma := func(fade, half float64) float64 { return max(fade, 1e-3) * half / 2.5 }
	hw, hh := g.p.Width()/2, g.p.Height()/2
	g.gaussKX = 1 / (math.Sqrt2 * sigma(1-g.p.HorizontalFade, hw))
	g.gaussKY = 1 / (math.Sqrt2 * sigma(1-g.p.VerticalFade, hh))
	g.gaussNormX = 2 * math.Erf(hw*g.gaussKX)
	g.gaussNormY = 2 * math.Erf(hh*g.gaussKY)
}

func (g *Generator) gaussCircle(x, y float32) float32 {
	xr, yr := g.foldSpikes(x, math32.Abs(y))
	ratio := float32(g.p.Ratio)
	d := float64(math32.Sqrt(norm(xr, yr/ratio))) * g.distFactor
	v := g.alphaFactor * (math.Erf(d+g.center) - math.Erf(d-g.center))
	return clamp01(float32(v / 255))
}

func (g *Generator) gaussRect(x, y float32) float32 {
	xr, yr := g.foldSpikes(math32.Abs(x), math32.Abs(y))
	ax, ay := float64(math32.Abs(xr)), float64(math32.Abs(yr))
	hw, hh := g.p.Width()/2, g.p.Height()/2

	vx := (math.Erf((hw+ax)*g.gaussKX) + math.Erf((hw-ax)*g.gaussKX)) / g.gaussNormX
	vy := (math.Erf((hh+ay)*g.gaussKY) + math.Erf((hh-ay)*g.gaussKY)) / g.gaussNormY
	return clamp01(float32(vx * vy))
}

func norm(a, b float32) float32 { return a*a + b*b }

func clamp01(v float32) float32 {
	return max(0, min(v, 1))
}

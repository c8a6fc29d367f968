package pyramid

import (
	"math"

	"github.com/gogpu/brush/internal/image"
)

// snapEpsilon is the magnitude below which a cosine or sine is treated as
// exactly zero, so quarter turns produce exact bounding boxes.
const snapEpsilon = 1e-9

// Params is the output geometry of one resample.
type Params struct {
	// Width and Height of the destination, both at least 1.
	Width, Height int
	// Transform maps source pixel coordinates to destination coordinates.
	Transform image.Affine
}

// CalculateParams returns the destination size and source-to-destination
// transform for a w×h source (fractional sizes come from procedural tips) scaled by (sx, sy), rotated by angle radians
// and shifted by the sub-pixel offset (spx, spy).
//
// Unrotated outputs are ceil(w·sx + spx) × ceil(h·sy + spy). Rotated outputs
// cover the bounding box of the rotated scaled rectangle plus one pixel on
// each axis for the sub-pixel shift.
func CalculateParams(w, h float64, sx, sy, angle, spx, spy float64) Params {
	angle = normalizeAngle(angle)
	sw, sh := w*sx, h*sy

	if angle < snapEpsilon || 2*math.Pi-angle < snapEpsilon {
		return Params{
			Width:     max(int(math.Ceil(sw+spx)), 1),
			Height:    max(int(math.Ceil(sh+spy)), 1),
			Transform: image.Translate(spx, spy).Multiply(image.Scale(sx, sy)),
		}
	}

	c, s := snap(math.Cos(angle)), snap(math.Sin(angle))
	rot := image.RotateCS(c, s)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {sw, 0}, {0, sh}, {sw, sh}} {
		x, y := rot.TransformPoint(p[0], p[1])
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}

	t := image.Translate(spx, spy).
		Multiply(image.Translate(-minX, -minY)).
		Multiply(rot).
		Multiply(image.Scale(sx, sy))

	return Params{
		Width:     max(int(math.Ceil(maxX-minX))+1, 1),
		Height:    max(int(math.Ceil(maxY-minY))+1, 1),
		Transform: t,
	}
}

// ImageSize returns only the destination size of CalculateParams.
func ImageSize(w, h float64, sx, sy, angle, spx, spy float64) (int, int) {
	p := CalculateParams(w, h, sx, sy, angle, spx, spy)
	return p.Width, p.Height
}

func snap(v float64) float64 {
	if math.Abs(v) < snapEpsilon {
		return 0
	}
	return v
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

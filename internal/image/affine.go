package image

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine maps source pixel coordinates to destination coordinates. It
// shares the row-major layout of f64.Aff3:
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]
type Affine f64.Aff3

// Identity leaves points where they are.
func Identity() Affine { return Affine{1, 0, 0, 0, 1, 0} }

func Translate(tx, ty float64) Affine { return Affine{1, 0, tx, 0, 1, ty} }

func Scale(sx, sy float64) Affine { return Affine{sx, 0, 0, 0, sy, 0} }

// RotateCS rotates by the angle whose cosine and sine are given. On a
// y-down raster a positive angle turns clockwise.
func RotateCS(cos, sin float64) Affine { return Affine{cos, -sin, 0, sin, cos, 0} }

func Rotate(angle float64) Affine {
	s, c := math.Sincos(angle)
	return RotateCS(c, s)
}

// Multiply composes m with n so that n is applied first.
func (m Affine) Multiply(n Affine) Affine {
	return Affine{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}

// Invert returns the inverse of m, or false when m collapses the plane.
func (m Affine) Invert() (Affine, bool) {
	det := m[0]*m[4] - m[1]*m[3]
	if math.Abs(det) < 1e-12 {
		return Affine{}, false
	}
	k := 1 / det
	return Affine{
		m[4] * k,
		-m[1] * k,
		(m[1]*m[5] - m[2]*m[4]) * k,
		-m[3] * k,
		m[0] * k,
		(m[2]*m[3] - m[0]*m[5]) * k,
	}, true
}

func (m Affine) TransformPoint(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Aff3 returns m in the form golang.org/x/image/draw transformers take.
func (m Affine) Aff3() f64.Aff3 { return f64.Aff3(m) }

// Package mask generates procedural brush tips: circles and rectangles with
// hard, soft, gaussian or curve-shaped edges.
package mask

import (
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"
)

// ErrInvalidParams is wrapped by Params.Validate failures.
var ErrInvalidParams = errors.New("mask: invalid parameters")

// Shape is the outline of a generated tip.
type Shape uint8

const (
	Circle Shape = iota
	Rectangle
)

// String returns the preset spelling of the shape.
func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Rectangle:
		return "rectangle"
	default:
		return fmt.Sprintf("Shape(%d)", s)
	}
}

// Type is the edge profile of a generated tip.
type Type uint8

const (
	// Hard keeps full coverage up to the fade boundary and then falls off
	// with the classic autobrush profile.
	Hard Type = iota
	// Soft eases coverage from the core to the rim with InOutQuad.
	Soft
	// Gaussian uses an erf profile.
	Gaussian
	// Curve eases coverage with a caller supplied tween function.
	Curve
)

// String returns the preset spelling of the type.
func (t Type) String() string {
	switch t {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Gaussian:
		return "gaussian"
	case Curve:
		return "curve"
	default:
		return fmt.Sprintf("Type(%d)", t)
	}
}

// Params describes a procedural tip. The zero value is not valid; start
// from DefaultParams.
type Params struct {
	Shape Shape
	Type  Type

	// Diameter is the width in pixels at scale 1.
	Diameter float64
	// Ratio is height / width, in (0, 1].
	Ratio float64

	// HorizontalFade and VerticalFade are in [0, 1]. For Hard and Gaussian
	// tips 1 is a crisp edge and lower values widen the falloff; for Soft
	// and Curve tips they are the fraction of the radius that fades.
	HorizontalFade float64
	VerticalFade   float64

	// Spikes folds the shape into a star with that many points when > 2.
	Spikes int

	// AntiAlias softens the outermost pixel of Hard tips.
	AntiAlias bool

	// Density is the fraction of pixels kept, in (0, 1].
	Density float64
	// Randomness scales each pixel by a random factor in [1-Randomness, 1].
	Randomness float64

	// Falloff is the easing used by Curve tips. Nil means ease.Linear.
	Falloff ease.TweenFunc
}

// DefaultParams returns a 10 pixel anti-aliased hard circle.
func DefaultParams() Params {
	return Params{
		Shape:          Circle,
		Type:           Hard,
		Diameter:       10,
		Ratio:          1,
		HorizontalFade: 1,
		VerticalFade:   1,
		Spikes:         2,
		AntiAlias:      true,
		Density:        1,
	}
}

// Validate reports the first parameter out of range.
func (p Params) Validate() error {
	switch {
	case p.Shape > Rectangle:
		return fmt.Errorf("%w: shape %d", ErrInvalidParams, p.Shape)
	case p.Type > Curve:
		return fmt.Errorf("%w: type %d", ErrInvalidParams, p.Type)
	case !(p.Diameter > 0):
		return fmt.Errorf("%w: diameter %v", ErrInvalidParams, p.Diameter)
	case !(p.Ratio > 0) || p.Ratio > 1:
		return fmt.Errorf("%w: ratio %v", ErrInvalidParams, p.Ratio)
	case p.HorizontalFade < 0 || p.HorizontalFade > 1:
		return fmt.Errorf("%w: horizontal fade %v", ErrInvalidParams, p.HorizontalFade)
	case p.VerticalFade < 0 || p.VerticalFade > 1:
		return fmt.Errorf("%w: vertical fade %v", ErrInvalidParams, p.VerticalFade)
	case p.Spikes < 2:
		return fmt.Errorf("%w: spikes %d", ErrInvalidParams, p.Spikes)
	case !(p.Density > 0) || p.Density > 1:
		return fmt.Errorf("%w: density %v", ErrInvalidParams, p.Density)
	case p.Randomness < 0 || p.Randomness > 1:
		return fmt.Errorf("%w: randomness %v", ErrInvalidParams, p.Randomness)
	}
	return nil
}

// Width returns the tip width at scale 1.
func (p Params) Width() float64 { return p.Diameter }

// Height returns the tip height at scale 1.
func (p Params) Height() float64 { return p.Diameter * p.Ratio }

// Random reports whether rendering consumes random numbers.
func (p Params) Random() bool { return p.Density < 1 || p.Randomness > 0 }

// falloffs maps preset names to easing functions.
var falloffs = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-out-cubic": ease.InOutCubic,
	"in-out-sine":  ease.InOutSine,
}

// Falloff returns the easing function registered under name.
func Falloff(name string) (ease.TweenFunc, bool) {
	fn, ok := falloffs[name]
	return fn, ok
}

// ParseShape maps "circle" or "rectangle" to a Shape.
func ParseShape(s string) (Shape, error) {
	switch s {
	case "circle", "":
		return Circle, nil
	case "rectangle", "rect":
		return Rectangle, nil
	}
	return 0, fmt.Errorf("%w: shape %q", ErrInvalidParams, s)
}

// ParseType maps a type name to a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "hard", "":
		return Hard, nil
	case "soft":
		return Soft, nil
	case "gaussian", "gauss":
		return Gaussian, nil
	case "curve":
		return Curve, nil
	}
	return 0, fmt.Errorf("%w: type %q", ErrInvalidParams, s)
}

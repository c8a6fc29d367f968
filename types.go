package brush

import (
	"github.com/gogpu/brush/internal/cache"
	"github.com/gogpu/brush/internal/mask"
	"github.com/gogpu/brush/internal/paint"
	"github.com/gogpu/brush/internal/pipe"
)

// PaintSample is the stroke state at one dab position.
type PaintSample = paint.Sample

// RandomSource is the seeded random stream of one stroke.
type RandomSource = paint.RandomSource

// NewRandomSource returns a random stream seeded with seed.
func NewRandomSource(seed uint64) *RandomSource { return paint.NewRandomSource(seed) }

// MaskParams describes a procedural tip.
type MaskParams = mask.Params

// DefaultMaskParams returns a 10 pixel anti-aliased hard circle.
func DefaultMaskParams() MaskParams { return mask.DefaultParams() }

// Procedural tip outlines and edge profiles.
const (
	Circle    = mask.Circle
	Rectangle = mask.Rectangle

	Hard     = mask.Hard
	Soft     = mask.Soft
	Gaussian = mask.Gaussian
	Curve    = mask.Curve
)

// ParallelMode selects band-parallel rendering of procedural dabs.
type ParallelMode = mask.ParallelMode

// Parallel rendering modes.
const (
	ParallelAuto = mask.ParallelAuto
	ParallelOn   = mask.ParallelOn
	ParallelOff  = mask.ParallelOff
)

// Parasite is the selection configuration of a pipe tip.
type Parasite = pipe.Parasite

// SelectionMode picks the index of one parasite axis.
type SelectionMode = pipe.Mode

// Selection modes.
const (
	SelectConstant    = pipe.Constant
	SelectIncremental = pipe.Incremental
	SelectAngular     = pipe.Angular
	SelectVelocity    = pipe.Velocity
	SelectRandom      = pipe.Random
	SelectPressure    = pipe.Pressure
	SelectTiltX       = pipe.TiltX
	SelectTiltY       = pipe.TiltY
)

// NewParasite builds a parasite with one axis per mode.
func NewParasite(ncells int, modes []SelectionMode, ranks []int) Parasite {
	return pipe.NewParasite(ncells, modes, ranks)
}

// ParseParasite parses the text form "ncells:N dim:D rank0:R sel0:mode".
// Unknown keys and bad axis numbers are returned as warnings.
func ParseParasite(text string) (Parasite, []error) {
	return pipe.ParseParasite(text)
}

// CacheStats reports hits, misses and evictions of a procedural dab cache.
type CacheStats = cache.Stats

// Package paint describes the live stroke state a brush tip reads when it
// produces a dab.
package paint

import (
	"math"
	"math/rand/v2"
)

// Sample is the paint-stream state at one dab position.
type Sample struct {
	// Pressure is normalised to [0, 1].
	Pressure float64

	// DrawingAngle is the stroke direction in radians.
	DrawingAngle float64

	// DrawingSpeed is the stroke speed in pixels per millisecond.
	DrawingSpeed float64

	// TiltX and TiltY are pen tilts in [-1, 1].
	TiltX, TiltY float64

	// Random is the stroke's deterministic random stream. It may be nil,
	// in which case random selection falls back to index 0 and random
	// stippling is disabled.
	Random *RandomSource
}

// RandomSource is a seeded random stream shared by all dabs of a stroke.
//
// Two sources built from the same seed produce identical sequences, which
// is what makes random pipe selection and stippled masks reproducible.
// A RandomSource is not safe for concurrent use; clone it per stroke.
type RandomSource struct {
	seed uint64
	pcg  *rand.PCG
	rng  *rand.Rand
}

// NewRandomSource returns a source seeded with seed.
func NewRandomSource(seed uint64) *RandomSource {
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &RandomSource{seed: seed, pcg: pcg, rng: rand.New(pcg)}
}

// Seed returns the seed the source was created with.
func (r *RandomSource) Seed() uint64 { return r.seed }

// Uint64 returns the next raw value of the stream.
func (r *RandomSource) Uint64() uint64 { return r.rng.Uint64() }

// Generate returns a uniform integer in [lo, hi]. If hi < lo it returns lo.
func (r *RandomSource) Generate(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.IntN(hi-lo+1)
}

// Normalized returns a uniform value in [0, 1).
func (r *RandomSource) Normalized() float64 { return r.rng.Float64() }

// Clone returns an independent source positioned at the same point of the
// stream.
func (r *RandomSource) Clone() *RandomSource {
	pcg := *r.pcg
	return &RandomSource{seed: r.seed, pcg: &pcg, rng: rand.New(&pcg)}
}

// Clone returns a copy of s with its random stream cloned.
func (s Sample) Clone() Sample {
	if s.Random != nil {
		s.Random = s.Random.Clone()
	}
	return s
}

// RowSeed derives an independent seed for one row of a procedural render
// from a stroke-level seed.
func RowSeed(seed uint64, row int) (uint64, uint64) {
	return seed, uint64(row)*0xbf58476d1ce4e5b9 + 1
}

// NormalizeAngle maps a in radians into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

package pipe

import (
	"math"

	"github.com/gogpu/brush/internal/paint"
)

// Selector picks one of a pipe brush's sub-tips for each dab.
//
// Selection runs in two phases. ChooseNext computes the flat index from the
// stored per-axis indexes and the live paint sample without touching stored
// state. UpdateBrushIndexes runs after the dab and advances the Incremental
// and Random axes.
//
// A Selector is owned by one stroke. Clone it before handing a tip to a
// concurrent stroke.
type Selector struct {
	p           Parasite
	count       int
	current     int
	initialized bool
}

// NewSelector returns a selector over count sub-tips. The parasite's NCells
// is replaced by count so the flat index is always < count.
func NewSelector(p Parasite, count int) *Selector {
	if count < 1 {
		panic("pipe: selector needs at least one sub-tip")
	}
	if p.NCells != count {
		p.NCells = count
		p.setBrushesCount()
	}
	return &Selector{p: p, count: count}
}

// Parasite returns a copy of the current configuration and stored indexes.
func (s *Selector) Parasite() Parasite { return s.p }

// Count returns the number of sub-tips.
func (s *Selector) Count() int { return s.count }

// Index returns the stored index of axis i.
func (s *Selector) Index(i int) int { return s.p.Index[i] }

// CurrentBrushIndex returns the flat index computed by the last ChooseNext.
func (s *Selector) CurrentBrushIndex() int { return s.current }

// NotifyStrokeStarted resets the selector so the next ChooseNext starts a
// fresh sequence.
func (s *Selector) NotifyStrokeStarted() {
	s.initialized = false
}

// NotifyDabPainted advances the stored indexes after a dab was stamped.
func (s *Selector) NotifyDabPainted(sample paint.Sample) {
	s.UpdateBrushIndexes(sample, -1)
}

// PrepareForSeqNo selects the tip for dab number seq and advances the stored
// indexes from seq rather than from the previous dab.
func (s *Selector) PrepareForSeqNo(sample paint.Sample, seq int) {
	s.ChooseNext(sample)
	s.UpdateBrushIndexes(sample, seq)
}

// ChooseNext computes and records the flat sub-tip index for sample.
func (s *Selector) ChooseNext(sample paint.Sample) int {
	if !s.initialized {
		s.p.Index = [MaxDim]int{}
		s.UpdateBrushIndexes(sample, 0)
		s.initialized = true
	}
	s.current = s.selectPre(sample)
	return s.current
}

// Peek returns the flat index ChooseNext would pick for sample from the
// stored indexes, without recording it.
func (s *Selector) Peek(sample paint.Sample) int {
	if !s.initialized {
		return 0
	}
	return s.selectPre(sample)
}

func (s *Selector) selectPre(sample paint.Sample) int {
	flat := 0
	for i := range s.p.Dim {
		rank := s.p.Rank[i]
		idx := s.p.Index[i]

		switch s.p.Selection[i] {
		case Pressure:
			idx = int(sample.Pressure*float64(rank-1) + 0.5)
		case Angular:
			// Legacy hoses treat "up" as the first cell.
			angle := paint.NormalizeAngle(sample.DrawingAngle + math.Pi/2 + math.Pi/4)
			idx = int(angle / (2 * math.Pi) * float64(rank))
		case TiltX:
			idx = int(math.Round(sample.TiltX/2*float64(rank))) + rank/2
		case TiltY:
			idx = int(math.Round(sample.TiltY/2*float64(rank))) + rank/2
		case Velocity:
			// log(speed+1) is used as the index directly, saturating
			// at the rank.
			v := min(math.Log(sample.DrawingSpeed+1), float64(rank))
			idx = int(v)
		}

		flat += s.p.brushesCount[i] * clampIndex(idx, rank)
	}
	if flat < 0 {
		flat = 0
	}
	return flat % s.count
}

// UpdateBrushIndexes advances Incremental axes to seq mod rank (or by one
// when seq is negative) and redraws Random axes.
func (s *Selector) UpdateBrushIndexes(sample paint.Sample, seq int) {
	for i := range s.p.Dim {
		rank := s.p.Rank[i]
		if rank <= 0 {
			continue
		}
		switch s.p.Selection[i] {
		case Incremental:
			next := s.p.Index[i] + 1
			if seq >= 0 {
				next = seq
			}
			s.p.Index[i] = next % rank
		case Random:
			if sample.Random != nil {
				s.p.Index[i] = sample.Random.Generate(0, rank-1)
			}
		}
	}
}

// Clone returns an independent copy of the selector state.
func (s *Selector) Clone() *Selector {
	c := *s
	return &c
}

func clampIndex(idx, rank int) int {
	if rank <= 0 || idx < 0 {
		return 0
	}
	if idx >= rank {
		return rank - 1
	}
	return idx
}

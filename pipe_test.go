package brush

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeTip_DabLoopCycles(t *testing.T) {
	tip := widthPipe(4, SelectIncremental)
	tip.NotifyStrokeStarted()

	var widths []int
	s := PaintSample{}
	for range 6 {
		w := tip.MaskWidth(1, 0, 0, 0, s)
		d := tip.ProduceDab(1, 0, 0, 0, s, nil)
		require.Equal(t, w, d.Width(), "MaskWidth and ProduceDab disagree")
		widths = append(widths, d.Width())
		tip.NotifyDabPainted(s)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 1, 2}, widths)
}

func TestPipeTip_PrepareForSeqNo(t *testing.T) {
	tip := widthPipe(4, SelectIncremental)
	s := PaintSample{}

	var got []int
	for range 6 {
		tip.PrepareForSeqNo(s, -1)
		got = append(got, tip.CurrentIndex())
	}
	assert.Equal(t, []int{0, 1, 2, 3, 0, 1}, got)

	tip.PrepareForSeqNo(s, 10)
	assert.Equal(t, 3, tip.ProduceDab(1, 0, 0, 0, s, nil).Width(), "seq 10 selects cell 2")
}

func TestPipeTip_StrokeRestart(t *testing.T) {
	tip := widthPipe(3, SelectIncremental)
	s := PaintSample{}
	tip.ProduceDab(1, 0, 0, 0, s, nil)
	tip.NotifyDabPainted(s)
	tip.ProduceDab(1, 0, 0, 0, s, nil)
	tip.NotifyDabPainted(s)

	tip.NotifyStrokeStarted()
	assert.Equal(t, 1, tip.ProduceDab(1, 0, 0, 0, s, nil).Width())
}

func TestPipeTip_Pressure(t *testing.T) {
	tip := widthPipe(4, SelectPressure)
	tests := []struct {
		pressure float64
		width    int
	}{
		{0, 1},
		{0.5, 3},
		{1, 4},
		{2, 4},
	}
	for _, tt := range tests {
		d := tip.ProduceDab(1, 0, 0, 0, PaintSample{Pressure: tt.pressure}, nil)
		assert.Equal(t, tt.width, d.Width(), "pressure %v", tt.pressure)
	}
}

func TestPipeTip_RandomIsReproducible(t *testing.T) {
	run := func() []int {
		tip := widthPipe(5, SelectRandom)
		s := PaintSample{Random: NewRandomSource(42)}
		var widths []int
		for range 20 {
			widths = append(widths, tip.ProduceDab(1, 0, 0, 0, s, nil).Width())
			tip.NotifyDabPainted(s)
		}
		return widths
	}
	first := run()
	assert.Equal(t, first, run())
	for _, w := range first {
		assert.True(t, w >= 1 && w <= 5, "width %d out of range", w)
	}
}

func TestPipeTip_CloneIsIndependent(t *testing.T) {
	tip := widthPipe(3, SelectIncremental)
	s := PaintSample{}
	tip.ProduceDab(1, 0, 0, 0, s, nil)
	tip.NotifyDabPainted(s)
	tip.NotifyDabPainted(s)

	c := tip.Clone()
	c.NotifyDabPainted(s)

	assert.Equal(t, 3, tip.ProduceDab(1, 0, 0, 0, s, nil).Width())
	assert.Equal(t, 1, c.ProduceDab(1, 0, 0, 0, s, nil).Width())
}

func TestPipeTip_Accessors(t *testing.T) {
	colour := NewRasterTip("c", solidRGBA(2, 2, color.RGBA{A: 255}))
	mask := NewRasterTip("m", solidAlpha(3, 3, 255))
	tip := NewPipeTip("mixed", NewParasite(2, []SelectionMode{SelectIncremental}, []int{2}), []*Tip{mask, colour})

	assert.Equal(t, KindPipe, tip.Kind())
	assert.True(t, tip.HasColor())
	assert.Len(t, tip.Children(), 2)
	assert.Equal(t, 3, tip.Width(), "reports the current child")

	p, ok := tip.Parasite()
	require.True(t, ok)
	assert.Equal(t, 2, p.NCells)
	_, ok = mask.Parasite()
	assert.False(t, ok)

	m := tip.AsMask()
	assert.False(t, m.HasColor())
	assert.True(t, tip.HasColor(), "AsMask leaves the original alone")
}

func TestNewPipeTip_Panics(t *testing.T) {
	one := NewRasterTip("a", solidAlpha(1, 1, 255))
	assert.Panics(t, func() {
		NewPipeTip("empty", NewParasite(1, nil, []int{1}), nil)
	})
	assert.Panics(t, func() {
		NewPipeTip("ranks", NewParasite(3, []SelectionMode{SelectIncremental}, []int{2}), []*Tip{one, one, one})
	})
}

func TestNonPipeNotificationsAreNoOps(t *testing.T) {
	tip := NewRasterTip("r", solidAlpha(2, 2, 255))
	tip.NotifyStrokeStarted()
	tip.NotifyDabPainted(PaintSample{})
	tip.PrepareForSeqNo(PaintSample{}, 3)
	assert.Equal(t, 0, tip.CurrentIndex())
}

func TestPipeTip_PrepareForSeqNoNested(t *testing.T) {
	inner := func(name string, w0, w1 int) *Tip {
		return NewPipeTip(name, NewParasite(2, []SelectionMode{SelectIncremental}, []int{2}), []*Tip{
			NewRasterTip(name+"0", solidAlpha(w0, 1, 255)),
			NewRasterTip(name+"1", solidAlpha(w1, 1, 255)),
		})
	}
	outer := NewPipeTip("outer", NewParasite(2, []SelectionMode{SelectIncremental}, []int{2}),
		[]*Tip{inner("x", 1, 2), inner("y", 3, 4)})
	s := PaintSample{}

	// Dab seq lands on outer cell seq%2 and inner cell seq%2.
	tests := []struct {
		seq  int
		want int
	}{
		{0, 1},
		{1, 4},
		{2, 1},
		{3, 4},
	}
	for _, tt := range tests {
		outer.PrepareForSeqNo(s, tt.seq)
		assert.Equal(t, tt.want, outer.ProduceDab(1, 0, 0, 0, s, nil).Width(), "seq %d", tt.seq)
	}
}

func TestSetSoftness_NonProcedural(t *testing.T) {
	for _, tip := range []*Tip{
		NewRasterTip("r", solidAlpha(4, 4, 255)),
		widthPipe(2, SelectIncremental),
	} {
		t.Run(tip.Kind().String(), func(t *testing.T) {
			require.NotPanics(t, func() { tip.SetSoftness(0.5) })
			assert.Equal(t, 0.5, tip.Softness())
			assert.NotPanics(t, func() { tip.ProduceDab(1, 0, 0, 0, PaintSample{}, nil) })
		})
	}
}

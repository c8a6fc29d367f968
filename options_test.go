package brush

import (
	"log/slog"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := newOptions(nil)
	if !o.smoothing {
		t.Error("smoothing should default to on")
	}
	if o.parallel != ParallelAuto {
		t.Errorf("parallel = %v, want ParallelAuto", o.parallel)
	}
	if o.dabCache != DefaultDabCacheSize {
		t.Errorf("dabCache = %d, want %d", o.dabCache, DefaultDabCacheSize)
	}
	if o.spacing != 0 {
		t.Errorf("spacing = %v, want 0 (keep stored spacing)", o.spacing)
	}
	if o.log() != Logger() {
		t.Error("log() should fall back to the package logger")
	}
}

func TestOptionsApply(t *testing.T) {
	l := slog.New(slog.DiscardHandler)
	o := newOptions([]Option{
		WithLogger(l),
		WithSmoothing(false),
		WithParallel(ParallelOff),
		WithDabCacheSize(4),
		WithSpacing(0.7),
	})

	if o.log() != l {
		t.Error("WithLogger not applied")
	}
	if o.smoothing {
		t.Error("WithSmoothing(false) not applied")
	}
	if o.parallel != ParallelOff {
		t.Errorf("parallel = %v, want ParallelOff", o.parallel)
	}
	if o.dabCache != 4 {
		t.Errorf("dabCache = %d, want 4", o.dabCache)
	}
	if o.spacing != 0.7 {
		t.Errorf("spacing = %v, want 0.7", o.spacing)
	}
}

func TestParallelOption_MatchesSerial(t *testing.T) {
	p := DefaultMaskParams()
	p.Diameter = 140
	p.Type = Soft

	serial := NewProceduralTip("s", p, WithParallel(ParallelOff)).ProduceDab(1, 0.4, 0.5, 0.5, PaintSample{}, nil)
	banded := NewProceduralTip("b", p, WithParallel(ParallelOn)).ProduceDab(1, 0.4, 0.5, 0.5, PaintSample{}, nil)

	if string(serial.Pix()) != string(banded.Pix()) {
		t.Error("band-parallel dab differs from serial dab")
	}
}

func TestSmoothingOption(t *testing.T) {
	src := rampGray(6, 6)
	for _, on := range []bool{true, false} {
		tip := NewRasterTip("r", src, WithSmoothing(on))
		d := tip.ProduceDab(1.7, 0, 0, 0, PaintSample{}, nil)
		w, h := tip.MaskSize(1.7, 0, 0, 0, PaintSample{})
		if d.Width() != w || d.Height() != h {
			t.Errorf("smoothing=%v: dab %dx%d, MaskSize %dx%d", on, d.Width(), d.Height(), w, h)
		}
	}
}

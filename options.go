package brush

import (
	"log/slog"

	"github.com/gogpu/brush/internal/mask"
)

// Default tuning values.
const (
	// DefaultSpacing is the dab spacing of tips that carry none, as a
	// fraction of the tip width.
	DefaultSpacing = 0.25

	// MinimumSpacing is the floor every spacing is clamped to.
	MinimumSpacing = 0.02

	// DefaultDabCacheSize is the number of procedural dabs kept per tip.
	DefaultDabCacheSize = 32
)

// Option configures Decode and the tip constructors.
//
// Example:
//
//	tips, err := brush.Decode(data, "pencils.abr",
//	    brush.WithLogger(logger),
//	    brush.WithSmoothing(false))
type Option func(*options)

type options struct {
	logger    *slog.Logger
	smoothing bool
	parallel  mask.ParallelMode
	dabCache  int
	spacing   float64
}

func defaultOptions() options {
	return options{
		smoothing: true,
		parallel:  mask.ParallelAuto,
		dabCache:  DefaultDabCacheSize,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// log returns the configured logger, falling back to the package logger.
func (o options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return Logger()
}

// WithLogger routes diagnostics to l instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSmoothing controls whether raster tips build an extra 2× pyramid level
// so that upscaled dabs interpolate from finer data. Enabled by default.
func WithSmoothing(on bool) Option {
	return func(o *options) {
		o.smoothing = on
	}
}

// WithParallel selects band-parallel rendering for procedural tips.
func WithParallel(mode ParallelMode) Option {
	return func(o *options) {
		o.parallel = mode
	}
}

// WithDabCacheSize sets how many procedural dabs a tip keeps. Zero or a
// negative value disables the cache.
func WithDabCacheSize(n int) Option {
	return func(o *options) {
		o.dabCache = n
	}
}

// WithSpacing overrides the spacing stored in brush files.
// Values below MinimumSpacing are raised to it.
func WithSpacing(spacing float64) Option {
	return func(o *options) {
		o.spacing = spacing
	}
}

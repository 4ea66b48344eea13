package decomposition

import (
	"github.com/YuminosukeSato/scistat/gradient"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

// Option configures a principal component search.
type Option func(*config)

type config struct {
	center        bool
	tolerance     float64
	maxIterations int
	alpha         float64
	maxEpochs     int
	seed          *uint64
	logger        log.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		center:        true,
		tolerance:     gradient.DefaultTolerance,
		maxIterations: gradient.DefaultMaxIterations,
		alpha:         gradient.DefaultAlpha,
		maxEpochs:     gradient.DefaultMaxEpochs,
		logger:        log.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c config) batchOptions() []gradient.Option {
	return []gradient.Option{
		gradient.WithTolerance(c.tolerance),
		gradient.WithMaxIterations(c.maxIterations),
		gradient.WithLogger(c.logger),
	}
}

func (c config) stochasticOptions() []gradient.Option {
	opts := []gradient.Option{
		gradient.WithAlpha(c.alpha),
		gradient.WithMaxEpochs(c.maxEpochs),
		gradient.WithLogger(c.logger),
	}
	if c.seed != nil {
		opts = append(opts, gradient.WithRandomState(*c.seed))
	}
	return opts
}

// WithCenter controls whether the data is de-meaned before the search.
// Defaults to true.
func WithCenter(center bool) Option {
	return func(c *config) {
		c.center = center
	}
}

// WithTolerance sets the batch ascent tolerance.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		c.tolerance = tol
	}
}

// WithMaxIterations caps the batch ascent iterations.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		c.maxIterations = n
	}
}

// WithAlpha sets the initial stochastic learning rate.
func WithAlpha(alpha float64) Option {
	return func(c *config) {
		c.alpha = alpha
	}
}

// WithMaxEpochs caps the stochastic ascent epochs.
func WithMaxEpochs(n int) Option {
	return func(c *config) {
		c.maxEpochs = n
	}
}

// WithRandomState fixes the stochastic shuffle order.
func WithRandomState(seed uint64) Option {
	return func(c *config) {
		c.seed = &seed
	}
}

// WithLogger sets the logger passed to the optimizer.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

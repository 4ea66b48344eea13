package linear

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/scistat/gradient"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

// デフォルト設定
const (
	// DefaultLearningRate は MultipleRegression の確率的勾配降下法の初期学習率
	DefaultLearningRate = 0.001
	// DefaultTolerance は LogisticRegression のバッチ勾配上昇法の許容誤差
	DefaultTolerance = gradient.DefaultTolerance
)

// Option は推定器の設定を変更する関数
type Option func(*config)

type config struct {
	learningRate  float64
	ridge         float64
	tolerance     float64
	maxIterations int
	maxEpochs     int
	seed          *uint64
	logger        log.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		learningRate:  DefaultLearningRate,
		tolerance:     DefaultTolerance,
		maxIterations: gradient.DefaultMaxIterations,
		maxEpochs:     gradient.DefaultMaxEpochs,
		logger:        log.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// rng は初期値とシャッフルに使う乱数生成器を作る
func (c config) rng() *rand.Rand {
	if c.seed != nil {
		return rand.New(rand.NewPCG(*c.seed, *c.seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// WithLearningRate は確率的勾配降下法の初期学習率を設定する
func WithLearningRate(alpha float64) Option {
	return func(c *config) {
		c.learningRate = alpha
	}
}

// WithRidge はリッジ罰則の強さを設定する（切片には掛からない）
func WithRidge(alpha float64) Option {
	return func(c *config) {
		c.ridge = alpha
	}
}

// WithTolerance はバッチ勾配法の許容誤差を設定する
func WithTolerance(tol float64) Option {
	return func(c *config) {
		c.tolerance = tol
	}
}

// WithMaxIterations はバッチ勾配法の反復回数の上限を設定する
func WithMaxIterations(n int) Option {
	return func(c *config) {
		c.maxIterations = n
	}
}

// WithMaxEpochs は確率的勾配降下法のエポック数の上限を設定する
func WithMaxEpochs(n int) Option {
	return func(c *config) {
		c.maxEpochs = n
	}
}

// WithRandomState は初期値とシャッフルの乱数シードを設定する
func WithRandomState(seed uint64) Option {
	return func(c *config) {
		c.seed = &seed
	}
}

// WithLogger は学習の進捗を出力するロガーを設定する
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

package gradient

import (
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

// デフォルト設定
const (
	DefaultTolerance        = 1e-7
	DefaultMaxIterations    = 10000
	DefaultAlpha            = 0.01
	DefaultDecay            = 0.9
	DefaultMaxNoImprovement = 100
	DefaultMaxEpochs        = 10000
)

// DefaultStepSizes はバッチ版が毎回試すステップ幅（大きい順）
func DefaultStepSizes() []float64 {
	return []float64{100, 10, 1, 0.1, 0.01, 0.001, 0.0001, 0.00001}
}

// Option は最適化の設定を変更する関数
type Option func(*config)

type config struct {
	stepSizes        []float64
	tolerance        float64
	maxIterations    int
	alpha            float64
	decay            float64
	maxNoImprovement int
	maxEpochs        int
	maxGradNorm      float64
	seed             *uint64
	rng              *rand.Rand
	logger           log.Logger
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		stepSizes:        DefaultStepSizes(),
		tolerance:        DefaultTolerance,
		maxIterations:    DefaultMaxIterations,
		alpha:            DefaultAlpha,
		decay:            DefaultDecay,
		maxNoImprovement: DefaultMaxNoImprovement,
		maxEpochs:        DefaultMaxEpochs,
		logger:           log.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *config) validate() error {
	if len(c.stepSizes) == 0 {
		return errors.NewValidationError("stepSizes", "must not be empty", c.stepSizes)
	}
	for i, s := range c.stepSizes {
		if !(s > 0) {
			return errors.NewValidationError("stepSizes", "must be positive", s)
		}
		if i > 0 && s >= c.stepSizes[i-1] {
			return errors.NewValidationError("stepSizes", "must be strictly decreasing", c.stepSizes)
		}
	}
	if !(c.tolerance > 0) {
		return errors.NewValidationError("tolerance", "must be positive", c.tolerance)
	}
	if c.maxIterations <= 0 {
		return errors.NewValidationError("maxIterations", "must be positive", c.maxIterations)
	}
	if !(c.alpha > 0) {
		return errors.NewValidationError("alpha", "must be positive", c.alpha)
	}
	if !(c.decay > 0 && c.decay < 1) {
		return errors.NewValidationError("decay", "must be in (0, 1)", c.decay)
	}
	if c.maxNoImprovement <= 0 {
		return errors.NewValidationError("maxNoImprovement", "must be positive", c.maxNoImprovement)
	}
	if c.maxEpochs <= 0 {
		return errors.NewValidationError("maxEpochs", "must be positive", c.maxEpochs)
	}
	if c.maxGradNorm < 0 || math.IsNaN(c.maxGradNorm) {
		return errors.NewValidationError("maxGradNorm", "must be non-negative", c.maxGradNorm)
	}
	if c.logger == nil {
		c.logger = log.Nop()
	}
	return nil
}

// random は乱数生成器を返す
// WithRand が優先され、次に WithRandomState のシード、どちらもなければ非決定的なシードを使う
func (c *config) random() *rand.Rand {
	switch {
	case c.rng != nil:
		return c.rng
	case c.seed != nil:
		return rand.New(rand.NewPCG(*c.seed, *c.seed))
	default:
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// WithStepSizes はバッチ版のステップ幅候補を設定する（正で狭義単調減少）
func WithStepSizes(sizes ...float64) Option {
	return func(c *config) {
		c.stepSizes = append([]float64(nil), sizes...)
	}
}

// WithTolerance はバッチ版の収束判定の許容誤差を設定する
func WithTolerance(tol float64) Option {
	return func(c *config) {
		c.tolerance = tol
	}
}

// WithMaxIterations はバッチ版の反復回数の上限を設定する
func WithMaxIterations(n int) Option {
	return func(c *config) {
		c.maxIterations = n
	}
}

// WithAlpha は確率的版の初期学習率を設定する
func WithAlpha(alpha float64) Option {
	return func(c *config) {
		c.alpha = alpha
	}
}

// WithDecay は改善しなかったエポックごとに学習率へ掛ける係数を設定する
func WithDecay(decay float64) Option {
	return func(c *config) {
		c.decay = decay
	}
}

// WithMaxNoImprovement は確率的版を停止させる連続非改善エポック数を設定する
func WithMaxNoImprovement(n int) Option {
	return func(c *config) {
		c.maxNoImprovement = n
	}
}

// WithMaxEpochs は確率的版のエポック数の上限を設定する
func WithMaxEpochs(n int) Option {
	return func(c *config) {
		c.maxEpochs = n
	}
}

// WithMaxGradientNorm は確率的版の1サンプルごとの勾配の L2 ノルムの上限を設定する
// 0 は制限なし
func WithMaxGradientNorm(n float64) Option {
	return func(c *config) {
		c.maxGradNorm = n
	}
}

// WithRandomState はシャッフルに使う乱数のシードを設定する
func WithRandomState(seed uint64) Option {
	return func(c *config) {
		c.seed = &seed
	}
}

// WithRand はシャッフルに使う乱数生成器を直接渡す
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		c.rng = r
	}
}

// WithLogger は進捗を出力するロガーを設定する
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

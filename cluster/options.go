package cluster

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

// デフォルト設定
const (
	// DefaultMaxIterations は割り当ての更新回数の上限
	DefaultMaxIterations = 300

	// InitRandom は重複なしに選んだ k 個の標本を初期中心にする
	InitRandom = "random"
	// InitKMeansPlusPlus は最近傍中心までの距離の二乗に比例して初期中心を選ぶ
	InitKMeansPlusPlus = "k-means++"
)

// Option は KMeans の設定を変更する関数
type Option func(*config)

type config struct {
	init          string
	maxIterations int
	seed          *uint64
	logger        log.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		init:          InitRandom,
		maxIterations: DefaultMaxIterations,
		logger:        log.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.Nop()
	}
	return cfg
}

func (c config) validate() error {
	if c.init != InitRandom && c.init != InitKMeansPlusPlus {
		return errors.NewValidationError("init", "must be random or k-means++", c.init)
	}
	if c.maxIterations <= 0 {
		return errors.NewValidationError("maxIterations", "must be positive", c.maxIterations)
	}
	return nil
}

// rng は初期中心の選択に使う乱数生成器を作る
func (c config) rng() *rand.Rand {
	if c.seed != nil {
		return rand.New(rand.NewPCG(*c.seed, *c.seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// WithInit は初期化方法を設定する（InitRandom または InitKMeansPlusPlus）
func WithInit(init string) Option {
	return func(c *config) {
		c.init = init
	}
}

// WithMaxIterations は割り当ての更新回数の上限を設定する
func WithMaxIterations(n int) Option {
	return func(c *config) {
		c.maxIterations = n
	}
}

// WithRandomState は初期中心を選ぶ乱数のシードを設定する
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

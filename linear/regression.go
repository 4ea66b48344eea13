package linear

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/scistat/core/model"
	"github.com/YuminosukeSato/scistat/gradient"
	"github.com/YuminosukeSato/scistat/hypothesis"
	"github.com/YuminosukeSato/scistat/linalg"
	"github.com/YuminosukeSato/scistat/metrics"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
	"github.com/YuminosukeSato/scistat/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MultipleRegression は確率的勾配降下法で学習する重回帰モデル
//
// 損失は二乗誤差 (y_i - x_i・beta)^2 に、WithRidge を指定した場合は
// リッジ罰則 alpha * sum_{j>=1} beta_j^2 を加えたもの。
type MultipleRegression struct {
	model.BaseEstimator // BaseEstimatorを埋め込み

	Coefficients linalg.Vector    // 係数
	Intercept    float64          // 切片
	NFeatures    int              // 特徴量の数
	Result       *gradient.Result // 最後の学習の最適化結果

	cfg config
}

// NewMultipleRegression は新しい重回帰モデルを作成する
func NewMultipleRegression(opts ...Option) *MultipleRegression {
	return &MultipleRegression{cfg: newConfig(opts)}
}

// Fit はモデルを訓練データで学習させる
// 初期値は [0, 1) の一様乱数
func (m *MultipleRegression) Fit(X, y mat.Matrix) error {
	_, c, err := checkFitInput("MultipleRegression.Fit", X, y)
	if err != nil {
		return err
	}
	if m.cfg.ridge < 0 {
		return errors.NewValidationError("ridge", "must be non-negative", m.cfg.ridge)
	}

	rng := m.cfg.rng()
	beta, res, err := m.estimateBeta(designRows(X), column(y), rng)
	if err != nil {
		return errors.NewModelError("MultipleRegression.Fit", "optimization failed", err)
	}

	m.Reset()
	m.NFeatures = c
	m.Intercept = beta[0]
	m.Coefficients = beta[1:].Clone()
	m.Result = res
	m.SetFitted()
	return nil
}

func (m *MultipleRegression) estimateBeta(x []linalg.Vector, y []float64, rng *rand.Rand) (linalg.Vector, *gradient.Result, error) {
	beta0 := make(linalg.Vector, len(x[0]))
	for i := range beta0 {
		beta0[i] = rng.Float64()
	}

	logger := m.cfg.logger.With(log.ModelNameKey, "MultipleRegression", log.OperationKey, log.OperationFit)
	res, err := gradient.MinimizeStochastic(
		ridgeSquaredError(m.cfg.ridge),
		ridgeSquaredErrorGradient(m.cfg.ridge),
		x, y, beta0,
		gradient.WithAlpha(m.cfg.learningRate),
		gradient.WithMaxEpochs(m.cfg.maxEpochs),
		gradient.WithRand(rng),
		gradient.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	return res.Theta, res, nil
}

// Beta は切片を先頭に付けたパラメータベクトルを返す
func (m *MultipleRegression) Beta() linalg.Vector {
	if !m.IsFitted() {
		return nil
	}
	beta := make(linalg.Vector, 0, len(m.Coefficients)+1)
	beta = append(beta, m.Intercept)
	return append(beta, m.Coefficients...)
}

// Predict は入力データに対する予測を行う
func (m *MultipleRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := m.RequireFitted("MultipleRegression", "Predict"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("MultipleRegression.Predict", m.NFeatures, c, 1)
	}

	// 予測: y = X * coefficients + intercept
	beta := m.Beta()
	predictions := mat.NewDense(r, 1, nil)
	for i, x := range designRows(X) {
		predictions.Set(i, 0, dot(x, beta))
	}
	return predictions, nil
}

// Score はモデルの決定係数（R²）を計算する
func (m *MultipleRegression) Score(X, y mat.Matrix) (float64, error) {
	if err := m.RequireFitted("MultipleRegression", "Score"); err != nil {
		return 0, err
	}
	yPred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, yPred)
}

// CoefficientPValues はブートストラップで各パラメータの標準誤差を推定し、
// パラメータがゼロという帰無仮説の p 値を返す（切片が先頭）
//
// 学習済みのモデルと同じ設定で numSamples 回の再学習を行う。
func (m *MultipleRegression) CoefficientPValues(X, y mat.Matrix, numSamples int) ([]float64, error) {
	if err := m.RequireFitted("MultipleRegression", "CoefficientPValues"); err != nil {
		return nil, err
	}
	if _, c, err := checkFitInput("MultipleRegression.CoefficientPValues", X, y); err != nil {
		return nil, err
	} else if c != m.NFeatures {
		return nil, errors.NewDimensionError("MultipleRegression.CoefficientPValues", m.NFeatures, c, 1)
	}

	type pair struct {
		x linalg.Vector
		y float64
	}
	xs, ys := designRows(X), column(y)
	data := make([]pair, len(xs))
	for i := range xs {
		data[i] = pair{xs[i], ys[i]}
	}

	rng := m.cfg.rng()
	betas, err := hypothesis.BootstrapStatistic(rng, data, func(sample []pair) (linalg.Vector, error) {
		sx := make([]linalg.Vector, len(sample))
		sy := make([]float64, len(sample))
		for i, p := range sample {
			sx[i], sy[i] = p.x, p.y
		}
		beta, _, err := m.estimateBeta(sx, sy, rng)
		return beta, err
	}, numSamples)
	if err != nil {
		return nil, err
	}

	beta := m.Beta()
	pValues := make([]float64, len(beta))
	for j := range beta {
		samples := make([]float64, len(betas))
		for k, b := range betas {
			samples[k] = b[j]
		}
		se, err := stats.StandardDeviation(samples)
		if err != nil {
			return nil, err
		}
		pValues[j], err = hypothesis.CoefficientPValue(beta[j], se)
		if err != nil {
			return nil, err
		}
	}
	return pValues, nil
}

// ridgeSquaredError は1件の二乗誤差にリッジ罰則を加えた損失
func ridgeSquaredError(ridge float64) gradient.StochasticObjective {
	return func(x linalg.Vector, y float64, beta linalg.Vector) float64 {
		e := y - dot(x, beta)
		return e*e + RidgePenalty(beta, ridge)
	}
}

// ridgeSquaredErrorGradient は ridgeSquaredError の beta に関する勾配
func ridgeSquaredErrorGradient(ridge float64) gradient.StochasticGradient {
	return func(x linalg.Vector, y float64, beta linalg.Vector) linalg.Vector {
		e := y - dot(x, beta)
		g := linalg.ScalarMultiply(-2*e, x)
		for j := 1; j < len(beta); j++ {
			g[j] += 2 * ridge * beta[j]
		}
		return g
	}
}

// RidgePenalty は alpha * sum_{j>=1} beta_j^2 を返す（切片 beta_0 は除く）
func RidgePenalty(beta linalg.Vector, alpha float64) float64 {
	if len(beta) < 2 {
		return 0
	}
	return alpha * linalg.SumOfSquares(beta[1:])
}

// LassoPenalty は alpha * sum_{j>=1} |beta_j| を返す（切片 beta_0 は除く）
func LassoPenalty(beta linalg.Vector, alpha float64) float64 {
	if len(beta) < 2 {
		return 0
	}
	return alpha * floats.Norm(beta[1:], 1)
}

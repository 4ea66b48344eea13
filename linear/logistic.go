package linear

import (
	"github.com/YuminosukeSato/scistat/core/model"
	"github.com/YuminosukeSato/scistat/gradient"
	"github.com/YuminosukeSato/scistat/linalg"
	"github.com/YuminosukeSato/scistat/metrics"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
	"gonum.org/v1/gonum/mat"
)

var (
	_ model.Regressor  = (*MultipleRegression)(nil)
	_ model.Classifier = (*LogisticRegression)(nil)
)

// Logistic はロジスティック関数 1 / (1 + exp(-x))
func Logistic(x float64) float64 {
	return 1 / (1 + errors.StabilizeExp(-x))
}

// LogisticPrime はロジスティック関数の導関数 f(x)(1 - f(x))
func LogisticPrime(x float64) float64 {
	f := Logistic(x)
	return f * (1 - f)
}

// LogLikelihood は全標本の対数尤度を返す
// x の各行は先頭に切片項の 1 を含む
func LogLikelihood(x []linalg.Vector, y []float64, beta linalg.Vector) float64 {
	var sum float64
	for i := range x {
		p := Logistic(dot(x[i], beta))
		if y[i] == 1 {
			sum += errors.StabilizeLog(p)
		} else {
			sum += errors.StabilizeLog(1 - p)
		}
	}
	return sum
}

// LogLikelihoodGradient は LogLikelihood の beta に関する勾配
// sum_i (y_i - logistic(x_i・beta)) x_i
func LogLikelihoodGradient(x []linalg.Vector, y []float64, beta linalg.Vector) linalg.Vector {
	g := linalg.Zeros(len(beta))
	for i := range x {
		r := y[i] - Logistic(dot(x[i], beta))
		for j := range g {
			g[j] += r * x[i][j]
		}
	}
	return g
}

// LogisticRegression はバッチ勾配上昇法で対数尤度を最大化する二値分類モデル
type LogisticRegression struct {
	model.BaseEstimator

	Coefficients linalg.Vector    // 係数
	Intercept    float64          // 切片
	NFeatures    int              // 特徴量の数
	Result       *gradient.Result // 最後の学習の最適化結果

	cfg config
}

// NewLogisticRegression は新しいロジスティック回帰モデルを作成する
func NewLogisticRegression(opts ...Option) *LogisticRegression {
	return &LogisticRegression{cfg: newConfig(opts)}
}

// Fit はラベル 0/1 の訓練データでモデルを学習させる
func (m *LogisticRegression) Fit(X, y mat.Matrix) error {
	_, c, err := checkFitInput("LogisticRegression.Fit", X, y)
	if err != nil {
		return err
	}
	labels := column(y)
	for _, v := range labels {
		if v != 0 && v != 1 {
			return errors.NewValidationError("y", "labels must be 0 or 1", v)
		}
	}

	x := designRows(X)
	rng := m.cfg.rng()
	beta0 := make(linalg.Vector, c+1)
	for i := range beta0 {
		beta0[i] = rng.Float64()
	}

	logger := m.cfg.logger.With(log.ModelNameKey, "LogisticRegression", log.OperationKey, log.OperationFit)
	res, err := gradient.MaximizeBatch(
		func(beta linalg.Vector) float64 { return LogLikelihood(x, labels, beta) },
		func(beta linalg.Vector) linalg.Vector { return LogLikelihoodGradient(x, labels, beta) },
		beta0,
		gradient.WithTolerance(m.cfg.tolerance),
		gradient.WithMaxIterations(m.cfg.maxIterations),
		gradient.WithLogger(logger),
	)
	if err != nil {
		return errors.NewModelError("LogisticRegression.Fit", "optimization failed", err)
	}

	m.Reset()
	m.NFeatures = c
	m.Intercept = res.Theta[0]
	m.Coefficients = res.Theta[1:].Clone()
	m.Result = res
	m.SetFitted()
	return nil
}

// PredictProba は各標本が陽性である確率を返す
func (m *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if err := m.RequireFitted("LogisticRegression", "PredictProba"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("LogisticRegression.PredictProba", m.NFeatures, c, 1)
	}

	beta := make(linalg.Vector, 0, c+1)
	beta = append(beta, m.Intercept)
	beta = append(beta, m.Coefficients...)

	proba := mat.NewDense(r, 1, nil)
	for i, x := range designRows(X) {
		proba.Set(i, 0, Logistic(dot(x, beta)))
	}
	return proba, nil
}

// Predict は確率 0.5 を閾値としてラベル 0/1 を返す
func (m *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	r, _ := proba.Dims()
	labels := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		if proba.At(i, 0) >= 0.5 {
			labels.Set(i, 0, 1)
		}
	}
	return labels, nil
}

// Score は正解率を返す
func (m *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyScore(y, yPred)
}

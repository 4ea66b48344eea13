// Package metrics は回帰と二値分類の評価指標を提供する
//
// 入力はすべて n×1 の列ベクトル（*mat.VecDense や n×1 の *mat.Dense）。
package metrics

import (
	"math"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// columns は2つの列ベクトルを検証してスライスに変換する
func columns(op string, yTrue, yPred mat.Matrix) ([]float64, []float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, op)
	}
	if rTrue != rPred {
		return nil, nil, errors.NewDimensionError(op, rTrue, rPred, 0)
	}
	if cTrue != 1 || cPred != 1 {
		return nil, nil, errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}

	t := make([]float64, rTrue)
	p := make([]float64, rPred)
	for i := range t {
		t[i] = yTrue.At(i, 0)
		p[i] = yPred.At(i, 0)
	}
	return t, p, nil
}

// residuals は yTrue - yPred を返す
func residuals(op string, yTrue, yPred mat.Matrix) ([]float64, []float64, error) {
	t, p, err := columns(op, yTrue, yPred)
	if err != nil {
		return nil, nil, err
	}
	return t, floats.SubTo(make([]float64, len(t)), t, p), nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred mat.Matrix) (float64, error) {
	_, diff, err := residuals("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// MSE = (1/n) * Σ(yTrue - yPred)²
	return floats.Dot(diff, diff) / float64(len(diff)), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred mat.Matrix) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred mat.Matrix) (float64, error) {
	_, diff, err := residuals("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// MAE = (1/n) * Σ|yTrue - yPred|
	return floats.Norm(diff, 1) / float64(len(diff)), nil
}

// R2Score は決定係数（R²）を計算する
// yTrue の分散がゼロの場合は ErrZeroVariance
func R2Score(yTrue, yPred mat.Matrix) (float64, error) {
	t, diff, err := residuals("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// 全変動（TSS）と残差変動（RSS）
	tss := stat.PopVariance(t, nil) * float64(len(t))
	rss := floats.Dot(diff, diff)
	if tss == 0 {
		return 0, errors.Wrap(errors.ErrZeroVariance, "R2Score: total sum of squares is zero")
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// MAPE は平均絶対パーセンテージ誤差を計算する
// yTrue がゼロの要素は計算から除く
func MAPE(yTrue, yPred mat.Matrix) (float64, error) {
	t, diff, err := residuals("MAPE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAPE = (100/n) * Σ|yTrue - yPred|/|yTrue|
	var sum float64
	validCount := 0
	for i, v := range t {
		if v != 0 {
			sum += math.Abs(diff[i]) / math.Abs(v)
			validCount++
		}
	}
	if validCount == 0 {
		return 0, errors.NewValueError("MAPE", "all yTrue values are zero")
	}
	return (sum / float64(validCount)) * 100, nil
}

// ExplainedVarianceScore は説明分散スコア 1 - Var(yTrue - yPred) / Var(yTrue) を計算する
func ExplainedVarianceScore(yTrue, yPred mat.Matrix) (float64, error) {
	t, diff, err := residuals("ExplainedVarianceScore", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	varYTrue := stat.PopVariance(t, nil)
	if varYTrue == 0 {
		return 0, errors.Wrap(errors.ErrZeroVariance, "ExplainedVarianceScore: no variance in yTrue")
	}
	return 1 - stat.PopVariance(diff, nil)/varYTrue, nil
}

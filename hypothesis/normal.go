// Package hypothesis は正規近似による仮説検定と信頼区間を提供する
//
// 確率は probability.NormalCDF、境界は probability.InverseNormalCDF
// （許容誤差 probability.DefaultInverseTolerance）で計算する。
// sigma が正でない場合や確率が (0, 1) にない場合は errors.ValidationError を返す。
package hypothesis

import (
	"math"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/probability"
)

// NormalApproximationToBinomial は Binomial(n, p) に対応する正規分布の mu と sigma を返す
func NormalApproximationToBinomial(n int, p float64) (mu, sigma float64, err error) {
	if n < 0 {
		return 0, 0, errors.NewValidationError("n", "must be non-negative", n)
	}
	if !(p >= 0 && p <= 1) {
		return 0, 0, errors.NewValidationError("p", "must be in [0, 1]", p)
	}
	mu = p * float64(n)
	sigma = math.Sqrt(p * (1 - p) * float64(n))
	return mu, sigma, nil
}

// NormalProbabilityBelow は X <= hi となる確率
func NormalProbabilityBelow(hi, mu, sigma float64) (float64, error) {
	return probability.NormalCDF(hi, mu, sigma)
}

// NormalProbabilityAbove は X > lo となる確率
func NormalProbabilityAbove(lo, mu, sigma float64) (float64, error) {
	c, err := probability.NormalCDF(lo, mu, sigma)
	if err != nil {
		return 0, err
	}
	return 1 - c, nil
}

// NormalProbabilityBetween は lo < X <= hi となる確率
func NormalProbabilityBetween(lo, hi, mu, sigma float64) (float64, error) {
	cHi, err := probability.NormalCDF(hi, mu, sigma)
	if err != nil {
		return 0, err
	}
	cLo, err := probability.NormalCDF(lo, mu, sigma)
	if err != nil {
		return 0, err
	}
	return cHi - cLo, nil
}

// NormalProbabilityOutside は X が (lo, hi] の外にある確率
func NormalProbabilityOutside(lo, hi, mu, sigma float64) (float64, error) {
	between, err := NormalProbabilityBetween(lo, hi, mu, sigma)
	if err != nil {
		return 0, err
	}
	return 1 - between, nil
}

// NormalUpperBound は P(X <= z) = prob となる z を返す
func NormalUpperBound(prob, mu, sigma float64) (float64, error) {
	return probability.InverseNormalCDF(prob, mu, sigma, probability.DefaultInverseTolerance)
}

// NormalLowerBound は P(X >= z) = prob となる z を返す
func NormalLowerBound(prob, mu, sigma float64) (float64, error) {
	return probability.InverseNormalCDF(1-prob, mu, sigma, probability.DefaultInverseTolerance)
}

// NormalTwoSidedBounds は平均を中心に確率 prob を含む区間を返す
// 残りの 1-prob は両側に半分ずつ割り当てる
func NormalTwoSidedBounds(prob, mu, sigma float64) (lower, upper float64, err error) {
	if !(prob > 0 && prob < 1) {
		return 0, 0, errors.NewValidationError("prob", "must be in (0, 1)", prob)
	}
	tail := (1 - prob) / 2

	// 上側の境界は tail の確率を上に残す
	upper, err = NormalLowerBound(tail, mu, sigma)
	if err != nil {
		return 0, 0, err
	}
	// 下側の境界は tail の確率を下に残す
	lower, err = NormalUpperBound(tail, mu, sigma)
	if err != nil {
		return 0, 0, err
	}
	return lower, upper, nil
}

// TwoSidedPValue は N(mu, sigma) のもとで x 以上に極端な値が出る確率（両側）
func TwoSidedPValue(x, mu, sigma float64) (float64, error) {
	if x >= mu {
		above, err := NormalProbabilityAbove(x, mu, sigma)
		if err != nil {
			return 0, err
		}
		return 2 * above, nil
	}
	below, err := NormalProbabilityBelow(x, mu, sigma)
	if err != nil {
		return 0, err
	}
	return 2 * below, nil
}

// UpperPValue は片側（上側）の p 値
func UpperPValue(x, mu, sigma float64) (float64, error) {
	return NormalProbabilityAbove(x, mu, sigma)
}

// LowerPValue は片側（下側）の p 値
func LowerPValue(x, mu, sigma float64) (float64, error) {
	return NormalProbabilityBelow(x, mu, sigma)
}

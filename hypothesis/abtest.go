package hypothesis

import (
	"math"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/probability"
)

// EstimatedParameters は N 回中 n 回成功したときの成功確率 p と標準誤差 sigma を返す
func EstimatedParameters(N, n int) (p, sigma float64, err error) {
	if N <= 0 {
		return 0, 0, errors.NewValidationError("N", "must be positive", N)
	}
	if n < 0 || n > N {
		return 0, 0, errors.NewValidationError("n", "must be in [0, N]", n)
	}
	p = float64(n) / float64(N)
	sigma = math.Sqrt(p * (1 - p) / float64(N))
	return p, sigma, nil
}

// ABTestStatistic は A と B の成功率が等しいという帰無仮説の検定統計量
// (pB - pA) / sqrt(sigmaA^2 + sigmaB^2) を返す
// 標準正規分布と比較する（例: TwoSidedPValue(z, 0, 1)）
func ABTestStatistic(NA, nA, NB, nB int) (float64, error) {
	pA, sigmaA, err := EstimatedParameters(NA, nA)
	if err != nil {
		return 0, err
	}
	pB, sigmaB, err := EstimatedParameters(NB, nB)
	if err != nil {
		return 0, err
	}
	pooled := math.Sqrt(sigmaA*sigmaA + sigmaB*sigmaB)
	if pooled == 0 {
		return 0, errors.NewValueError("hypothesis.ABTestStatistic", "both groups have zero variance")
	}
	return (pB - pA) / pooled, nil
}

// CoefficientPValue は回帰係数の推定値 betaHat と標準誤差 sigmaHat から
// 係数がゼロという帰無仮説の両側 p 値を返す
func CoefficientPValue(betaHat, sigmaHat float64) (float64, error) {
	if !(sigmaHat > 0) {
		return 0, errors.NewValidationError("sigmaHat", "must be positive", sigmaHat)
	}
	c, err := probability.NormalCDF(betaHat/sigmaHat, 0, 1)
	if err != nil {
		return 0, err
	}
	if betaHat > 0 {
		return 2 * (1 - c), nil
	}
	return 2 * c, nil
}

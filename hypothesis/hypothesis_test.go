package hypothesis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scistat/pkg/errors"
)

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func TestNormalApproximationToBinomial(t *testing.T) {
	mu, sigma, err := NormalApproximationToBinomial(1000, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 500.0, mu)
	assert.Equal(t, 15.8114, round(sigma, 4))

	_, _, err = NormalApproximationToBinomial(10, 1.1)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	_, _, err = NormalApproximationToBinomial(-1, 0.5)
	assert.True(t, errors.As(err, &valErr))
}

func TestNormalProbabilities(t *testing.T) {
	mu, sigma := 0.0, 1.0

	below, err := NormalProbabilityBelow(0, mu, sigma)
	require.NoError(t, err)
	assert.Equal(t, 0.5, below)

	above, err := NormalProbabilityAbove(1.96, mu, sigma)
	require.NoError(t, err)
	assert.InDelta(t, 0.025, above, 1e-4)

	between, err := NormalProbabilityBetween(-1.96, 1.96, mu, sigma)
	require.NoError(t, err)
	assert.InDelta(t, 0.95, between, 1e-4)

	outside, err := NormalProbabilityOutside(-1.96, 1.96, mu, sigma)
	require.NoError(t, err)
	assert.InDelta(t, 1, between+outside, 1e-15)

	_, err = NormalProbabilityBetween(0, 1, 0, -1)
	assert.Error(t, err)
}

func TestBounds(t *testing.T) {
	mu, sigma, err := NormalApproximationToBinomial(1000, 0.5)
	require.NoError(t, err)

	lower, upper, err := NormalTwoSidedBounds(0.95, mu, sigma)
	require.NoError(t, err)
	assert.InDelta(t, 469.01, lower, 0.01)
	assert.InDelta(t, 530.99, upper, 0.01)
	assert.InDelta(t, mu-lower, upper-mu, 1e-3)

	ub, err := NormalUpperBound(0.95, mu, sigma)
	require.NoError(t, err)
	assert.InDelta(t, 526.0, ub, 0.01)

	lb, err := NormalLowerBound(0.95, mu, sigma)
	require.NoError(t, err)
	assert.InDelta(t, 474.0, lb, 0.01)

	_, _, err = NormalTwoSidedBounds(1, mu, sigma)
	assert.Error(t, err)
}

func TestPower(t *testing.T) {
	// p = 0.5 の検定で実際は p = 0.55 のときの検出力
	mu0, sigma0, err := NormalApproximationToBinomial(1000, 0.5)
	require.NoError(t, err)
	lower, upper, err := NormalTwoSidedBounds(0.95, mu0, sigma0)
	require.NoError(t, err)

	mu1, sigma1, err := NormalApproximationToBinomial(1000, 0.55)
	require.NoError(t, err)
	typeII, err := NormalProbabilityBetween(lower, upper, mu1, sigma1)
	require.NoError(t, err)

	assert.InDelta(t, 0.887, 1-typeII, 1e-3)
}

func TestPValues(t *testing.T) {
	mu, sigma, err := NormalApproximationToBinomial(1000, 0.5)
	require.NoError(t, err)

	tests := []struct {
		name string
		fn   func(x, mu, sigma float64) (float64, error)
		x    float64
		want float64
	}{
		{"two-sided above mean", TwoSidedPValue, 529.5, 0.0621},
		{"two-sided above mean, significant", TwoSidedPValue, 531.5, 0.0463},
		{"two-sided below mean", TwoSidedPValue, 470.5, 0.0621},
		{"upper", UpperPValue, 524.5, 0.0606},
		{"upper, significant", UpperPValue, 526.5, 0.0469},
		{"lower", LowerPValue, 500, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.x, mu, sigma)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-4)
		})
	}
}

func TestABTestStatistic(t *testing.T) {
	z, err := ABTestStatistic(1000, 200, 1000, 180)
	require.NoError(t, err)
	assert.Equal(t, -1.14, round(z, 2))

	p, err := TwoSidedPValue(z, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.254, p, 1e-3)

	z, err = ABTestStatistic(1000, 200, 1000, 150)
	require.NoError(t, err)
	assert.Equal(t, -2.95, round(z, 2))

	_, err = ABTestStatistic(10, 0, 10, 0)
	var vErr *errors.ValueError
	assert.True(t, errors.As(err, &vErr))

	_, err = ABTestStatistic(0, 0, 10, 1)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	_, err = ABTestStatistic(10, 11, 10, 1)
	assert.True(t, errors.As(err, &valErr))
}

func TestEstimatedParameters(t *testing.T) {
	p, sigma, err := EstimatedParameters(1000, 200)
	require.NoError(t, err)
	assert.Equal(t, 0.2, p)
	assert.InDelta(t, math.Sqrt(0.2*0.8/1000), sigma, 1e-15)
}

func TestCoefficientPValue(t *testing.T) {
	tests := []struct {
		beta, sigma, want float64
	}{
		{0.923, 1.249, 0.4599},
		{-2.5, 1, 0.0124},
		{2.5, 1, 0.0124},
		{0, 1, 1},
	}

	for _, tt := range tests {
		got, err := CoefficientPValue(tt.beta, tt.sigma)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-4, "beta=%v sigma=%v", tt.beta, tt.sigma)
	}

	_, err := CoefficientPValue(1, 0)
	assert.Error(t, err)
}

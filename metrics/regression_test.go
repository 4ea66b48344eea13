package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scistat/pkg/errors"
)

func vec(v ...float64) *mat.VecDense {
	return mat.NewVecDense(len(v), v)
}

type regressionMetric func(yTrue, yPred mat.Matrix) (float64, error)

func TestRegressionMetrics(t *testing.T) {
	tests := []struct {
		name   string
		metric regressionMetric
		yTrue  mat.Matrix
		yPred  mat.Matrix
		want   float64
	}{
		{"MSE perfect", MSE, vec(1, 2, 3, 4, 5), vec(1, 2, 3, 4, 5), 0},
		{"MSE simple", MSE, vec(1, 2, 3, 4), vec(1.5, 2.5, 2.5, 3.5), 0.25},
		{"MSE larger errors", MSE, vec(10, 20, 30), vec(12, 18, 33), 17.0 / 3.0},
		{"MSE dense column", MSE, mat.NewDense(4, 1, []float64{1, 2, 3, 4}), mat.NewDense(4, 1, []float64{1.5, 2.5, 2.5, 3.5}), 0.25},
		{"RMSE", RMSE, vec(0, 0, 0, 0), vec(1, 1, 1, 1), 1},
		{"MAE simple", MAE, vec(1, 2, 3, 4), vec(1.5, 2.5, 2.5, 3.5), 0.5},
		{"MAE negative differences", MAE, vec(1, 2, 3, 4), vec(2, 1, 4, 3), 1},
		{"R2 perfect", R2Score, vec(1, 2, 3, 4, 5), vec(1, 2, 3, 4, 5), 1},
		{"R2 worse than mean", R2Score, vec(1, 2, 3, 4), vec(4, 3, 2, 1), -3},
		{"MAPE", MAPE, vec(100, 200, 0), vec(110, 180, 5), 10},
		{"explained variance with constant offset", ExplainedVarianceScore, vec(1, 2, 3, 4), vec(2, 3, 4, 5), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.metric(tt.yTrue, tt.yPred)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-10)
		})
	}
}

func TestRegressionMetricErrors(t *testing.T) {
	metrics := map[string]regressionMetric{
		"MSE": MSE, "RMSE": RMSE, "MAE": MAE, "R2Score": R2Score,
		"MAPE": MAPE, "ExplainedVarianceScore": ExplainedVarianceScore,
	}

	for name, metric := range metrics {
		t.Run(name, func(t *testing.T) {
			_, err := metric(vec(1, 2, 3), vec(1, 2))
			var dimErr *errors.DimensionError
			assert.True(t, errors.As(err, &dimErr))

			_, err = metric(&mat.VecDense{}, &mat.VecDense{})
			assert.True(t, errors.Is(err, errors.ErrEmptyData))

			wide := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
			_, err = metric(wide, wide)
			var valErr *errors.ValueError
			assert.True(t, errors.As(err, &valErr))
		})
	}
}

func TestR2ScoreZeroVariance(t *testing.T) {
	_, err := R2Score(vec(3, 3, 3, 3, 3), vec(2, 3, 4, 3, 3))
	assert.True(t, errors.Is(err, errors.ErrZeroVariance))

	_, err = ExplainedVarianceScore(vec(3, 3), vec(1, 2))
	assert.True(t, errors.Is(err, errors.ErrZeroVariance))

	_, err = MAPE(vec(0, 0), vec(1, 2))
	assert.Error(t, err)
}

func TestRMSEIsSqrtMSE(t *testing.T) {
	yTrue, yPred := vec(10, 20, 30), vec(12, 18, 33)
	mse, err := MSE(yTrue, yPred)
	require.NoError(t, err)
	rmse, err := RMSE(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(mse), rmse, 1e-15)
}

func BenchmarkMSE(b *testing.B) {
	size := 10000
	yTrue := mat.NewVecDense(size, nil)
	yPred := mat.NewVecDense(size, nil)
	for i := 0; i < size; i++ {
		yTrue.SetVec(i, float64(i))
		yPred.SetVec(i, float64(i)+0.1*float64(i%10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MSE(yTrue, yPred)
	}
}

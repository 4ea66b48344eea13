package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scistat/pkg/errors"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 5,
		2, 5,
		3, 5,
		4, 5,
	})

	s := NewStandardScalerDefault()
	scaled, err := s.FitTransform(X)
	require.NoError(t, err)

	assert.Equal(t, []float64{2.5, 5}, s.Mean)
	assert.InDelta(t, math.Sqrt(1.25), s.Scale[0], 1e-12)
	assert.Equal(t, 0.0, s.Scale[1])

	col := mat.Col(nil, 0, scaled)
	var sum, sumSq float64
	for _, v := range col {
		sum += v
		sumSq += v * v
	}
	assert.InDelta(t, 0, sum/4, 1e-12)
	assert.InDelta(t, 1, sumSq/4, 1e-12)

	// 標準偏差0の列は中心化だけ
	assert.Equal(t, []float64{0, 0, 0, 0}, mat.Col(nil, 1, scaled))

	back, err := s.InverseTransform(scaled)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-12))
}

func TestStandardScaler_MeanOnly(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{2, 4, 9})

	s := NewStandardScaler(true, false)
	out, err := s.FitTransform(X)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -1, 4}, mat.Col(nil, 0, out))
}

func TestStandardScaler_Errors(t *testing.T) {
	s := NewStandardScalerDefault()

	_, err := s.Transform(mat.NewDense(1, 1, []float64{1}))
	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))

	err = s.Fit(&mat.Dense{})
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	require.NoError(t, s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = s.Transform(mat.NewDense(1, 3, []float64{1, 2, 3}))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	assert.Equal(t, "StandardScaler(with_mean=true, with_std=true, n_features=2)", s.String())
}

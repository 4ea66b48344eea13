package gradient

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scistat/linalg"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

func sumOfSquares(v linalg.Vector) float64 {
	return linalg.SumOfSquares(v)
}

func sumOfSquaresGradient(v linalg.Vector) linalg.Vector {
	return linalg.ScalarMultiply(2, v)
}

func TestMinimizeBatch_SumOfSquares(t *testing.T) {
	starts := []linalg.Vector{
		{3, -4, 1},
		{10, -10, 7},
		{1, 0, 0},
		{-250, 0.5},
	}

	for _, start := range starts {
		res, err := MinimizeBatch(sumOfSquares, sumOfSquaresGradient, start)
		require.NoError(t, err)

		assert.True(t, res.Converged)
		assert.Nil(t, res.Warning())
		assert.Less(t, res.Value, 1e-6)
		assert.Less(t, linalg.Magnitude(res.Theta), 1e-3)
		assert.Equal(t, sumOfSquares(res.Theta), res.Value)
		assert.Len(t, res.Trace, res.Iterations)
		assert.NotEmpty(t, res.RunID)
	}
}

func TestMinimizeBatch_RandomIntegerStart(t *testing.T) {
	rng := rand.New(rand.NewPCG(0, 8))
	start := make(linalg.Vector, 3)
	for i := range start {
		start[i] = float64(rng.IntN(21) - 10)
	}

	res, err := MinimizeBatch(sumOfSquares, sumOfSquaresGradient, start, WithTolerance(1e-12))
	require.NoError(t, err)

	for i, v := range res.Theta {
		assert.Equal(t, 0.0, math.Round(v*1e5)/1e5, "component %d = %v", i, v)
		assert.Less(t, math.Abs(v), 1e-4)
	}
}

func TestMinimizeBatch_DefaultToleranceStopsNearZero(t *testing.T) {
	// 既定の許容誤差 1e-7 では Σv² の減少量 0.36|v|² が 1e-7 を下回った時点で止まるため
	// |theta| は sqrt(1e-7/0.36) ≈ 5.3e-4 以下、その 0.8 倍以上に収まり 1e-4 には届かない
	upper := math.Sqrt(DefaultTolerance / 0.36)

	for _, start := range []linalg.Vector{{3, -4, 1}, {10, -10, 7}, {1, 0, 0}, {-250, 0.5}} {
		res, err := MinimizeBatch(sumOfSquares, sumOfSquaresGradient, start)
		require.NoError(t, err)

		mag := linalg.Magnitude(res.Theta)
		assert.LessOrEqual(t, mag, upper, "start %v", start)
		assert.GreaterOrEqual(t, mag, 0.8*upper, "start %v", start)
		assert.Greater(t, mag, 1e-4, "start %v", start)
	}

	res, err := MinimizeBatch(sumOfSquares, sumOfSquaresGradient, linalg.Vector{3, -4, 1})
	require.NoError(t, err)
	assert.InDelta(t, 4.3378e-4, linalg.Magnitude(res.Theta), 1e-7)
	assert.Equal(t, 43, res.Iterations)
}

func TestMinimizeBatch_DoesNotMutateStart(t *testing.T) {
	start := linalg.Vector{3, -4}
	_, err := MinimizeBatch(sumOfSquares, sumOfSquaresGradient, start)
	require.NoError(t, err)
	assert.Equal(t, linalg.Vector{3, -4}, start)
}

func TestMinimizeBatch_TieGoesToLargestStep(t *testing.T) {
	abs := func(v linalg.Vector) float64 { return math.Abs(v[0]) }
	constant := func(linalg.Vector) linalg.Vector { return linalg.Vector{1} }

	res, err := MinimizeBatch(abs, constant, linalg.Vector{1.5}, WithStepSizes(2, 1))
	require.NoError(t, err)

	// 1.5-2 = -0.5 と 1.5-1 = 0.5 は同値なので先に試す -0.5 が選ばれる
	assert.Equal(t, linalg.Vector{-0.5}, res.Theta)
	assert.Equal(t, 0.5, res.Value)
	assert.Equal(t, 2, res.Iterations)
}

func TestMinimizeBatch_SkipsUndefinedRegion(t *testing.T) {
	// 負の値では定義されない目的関数
	f := func(v linalg.Vector) float64 {
		if v[0] < 0 {
			panic("negative input")
		}
		return math.Sqrt(v[0])
	}
	df := func(v linalg.Vector) linalg.Vector { return linalg.Vector{0.5 / math.Sqrt(v[0])} }

	res, err := MinimizeBatch(f, df, linalg.Vector{4})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Theta[0], 0.0)
	assert.False(t, math.IsInf(res.Value, 0))
	assert.Less(t, res.Value, 2.0)
}

func TestMinimizeBatch_NoImprovingCandidate(t *testing.T) {
	start := linalg.Vector{1}
	f := func(v linalg.Vector) float64 {
		if v[0] == 1 {
			return 0
		}
		return math.Inf(1)
	}
	df := func(linalg.Vector) linalg.Vector { return linalg.Vector{1} }

	res, err := MinimizeBatch(f, df, start)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, start, res.Theta)
	assert.Equal(t, 1, res.Iterations)
}

func TestMinimizeBatch_IterationCap(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)

	res, err := MinimizeBatch(sumOfSquares, sumOfSquaresGradient, linalg.Vector{100, 100},
		WithMaxIterations(3),
		WithLogger(logger),
	)
	require.NoError(t, err)

	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
	assert.Len(t, res.Trace, 4)
	assert.InDelta(t, 100*math.Pow(0.8, 3), res.Theta[0], 1e-9)

	warn := res.Warning()
	require.NotNil(t, warn)
	assert.Equal(t, "MinimizeBatch", warn.Algorithm)
	assert.Equal(t, 3, warn.Iterations)

	assert.True(t, logger.ContainsMessage("did not converge"))
	assert.True(t, logger.ContainsField(log.ErrorCodeKey, log.ErrorConvergence))
}

func TestMinimizeBatch_Logging(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)

	res, err := MinimizeBatch(sumOfSquares, sumOfSquaresGradient, linalg.Vector{1, 1}, WithLogger(logger))
	require.NoError(t, err)

	entries, err := logger.GetLogEntries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	debugCount := 0
	for _, e := range entries {
		assert.Equal(t, res.RunID, e[log.RunIDKey])
		assert.Equal(t, log.OperationMinimizeBatch, e[log.OperationKey])
		if e["level"] == "DEBUG" {
			debugCount++
		}
	}
	assert.Equal(t, res.Iterations, debugCount)
	assert.True(t, logger.ContainsMessage("batch gradient descent converged"))
}

func TestMinimizeBatch_GradientLengthMismatch(t *testing.T) {
	short := func(linalg.Vector) linalg.Vector { return linalg.Vector{1} }

	res, err := MinimizeBatch(sumOfSquares, short, linalg.Vector{1, 1})
	require.Error(t, err)
	assert.Nil(t, res)

	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 2, dimErr.Expected)
	assert.Equal(t, 1, dimErr.Got)
}

func TestMinimizeBatch_UndefinedGradientStops(t *testing.T) {
	tests := []struct {
		name     string
		target   Objective
		grad     Gradient
		start    linalg.Vector
		wantCode string
	}{
		{
			// sqrt は 0 で最小だが勾配は +Inf
			name:     "sqrt at zero",
			target:   func(v linalg.Vector) float64 { return math.Sqrt(v[0]) },
			grad:     func(v linalg.Vector) linalg.Vector { return linalg.Vector{0.5 / math.Sqrt(v[0])} },
			start:    linalg.Vector{0},
			wantCode: log.ErrorNumericalInstability,
		},
		{
			name:   "panic",
			target: sumOfSquares,
			grad:   func(v linalg.Vector) linalg.Vector { return linalg.Vector{v[7], 0} },
			start:  linalg.Vector{1, 1},
		},
		{
			name:     "NaN",
			target:   sumOfSquares,
			grad:     func(linalg.Vector) linalg.Vector { return linalg.Vector{math.NaN(), 0} },
			start:    linalg.Vector{1, 1},
			wantCode: log.ErrorNumericalInstability,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := log.NewTestLogger(log.LevelWarn)

			res, err := MinimizeBatch(tt.target, tt.grad, tt.start, WithLogger(logger))
			require.NoError(t, err)

			assert.True(t, res.Converged)
			assert.Equal(t, tt.start, res.Theta)
			assert.Equal(t, tt.target(tt.start), res.Value)
			assert.Equal(t, 1, res.Iterations)
			assert.Nil(t, res.Warning())
			assert.True(t, logger.ContainsMessage("gradient undefined at current point"))
			if tt.wantCode != "" {
				assert.True(t, logger.ContainsField(log.ErrorCodeKey, tt.wantCode))
			}
		})
	}
}

func TestMinimizeBatch_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"empty step sizes", WithStepSizes()},
		{"increasing step sizes", WithStepSizes(0.1, 1)},
		{"negative step size", WithStepSizes(1, -1)},
		{"zero tolerance", WithTolerance(0)},
		{"NaN tolerance", WithTolerance(math.NaN())},
		{"zero iterations", WithMaxIterations(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MinimizeBatch(sumOfSquares, sumOfSquaresGradient, linalg.Vector{1}, tt.opt)
			var valErr *errors.ValidationError
			assert.True(t, errors.As(err, &valErr), "got %v", err)
		})
	}

	_, err := MinimizeBatch(nil, sumOfSquaresGradient, linalg.Vector{1})
	assert.Error(t, err)
}

func TestMaximizeBatch(t *testing.T) {
	// -(v0-1)^2 - (v1+2)^2 の最大値は (1, -2) で 0
	f := func(v linalg.Vector) float64 {
		return -((v[0]-1)*(v[0]-1) + (v[1]+2)*(v[1]+2))
	}
	df := func(v linalg.Vector) linalg.Vector {
		return linalg.Vector{-2 * (v[0] - 1), -2 * (v[1] + 2)}
	}

	res, err := MaximizeBatch(f, df, linalg.Vector{5, 5})
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.InDelta(t, 1, res.Theta[0], 1e-3)
	assert.InDelta(t, -2, res.Theta[1], 1e-3)
	assert.LessOrEqual(t, res.Value, 0.0)
	assert.Greater(t, res.Value, -1e-6)
	assert.Equal(t, f(res.Theta), res.Value)
	for i := 1; i < len(res.Trace); i++ {
		assert.Greater(t, res.Trace[i], res.Trace[i-1])
	}
}

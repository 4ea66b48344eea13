package gradient

import (
	"math"

	"github.com/YuminosukeSato/scistat/linalg"
	"github.com/YuminosukeSato/scistat/pkg/errors"
)

// Safe は評価に失敗したとき +Inf を返す目的関数を作る
//
// f のパニックと NaN の結果を失敗とみなす。返される関数自体はパニックしない。
func Safe(f Objective) Objective {
	return func(theta linalg.Vector) float64 {
		return safeValue(func() float64 { return f(theta) })
	}
}

// SafeScalar は1変数関数用の Safe
func SafeScalar(f func(float64) float64) func(float64) float64 {
	return func(x float64) float64 {
		return safeValue(func() float64 { return f(x) })
	}
}

func safeStochastic(f StochasticObjective) StochasticObjective {
	return func(x linalg.Vector, y float64, theta linalg.Vector) float64 {
		return safeValue(func() float64 { return f(x, y, theta) })
	}
}

func safeValue(eval func() float64) float64 {
	v, err := errors.SafeEvaluate("gradient.Safe", eval)
	if err != nil || math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}

// Package gradient は勾配降下法による最適化を提供する
//
// バッチ版（MinimizeBatch / MaximizeBatch）は候補ステップ幅の中から目的関数を
// 最も小さくするものを毎回選び、改善量が許容誤差を下回った時点で停止する。
// 確率的版（MinimizeStochastic / MaximizeStochastic）はエポックごとに標本を
// シャッフルして1件ずつ更新し、改善しないエポックが続くと学習率を減衰させ、
// 上限に達したら最良のパラメータを返す。
//
// 目的関数は Safe で包まれ、パニックや NaN は +Inf として扱われる。
// そのため定義域外の候補は自然に選ばれなくなる。
//
// 使用例:
//
//	sumOfSquares := func(v linalg.Vector) float64 { return linalg.SumOfSquares(v) }
//	grad := func(v linalg.Vector) linalg.Vector { return linalg.ScalarMultiply(2, v) }
//	res, err := gradient.MinimizeBatch(sumOfSquares, grad, linalg.Vector{3, -4, 1})
package gradient

import "github.com/YuminosukeSato/scistat/linalg"

// Objective はパラメータベクトルを実数に写す目的関数
type Objective func(theta linalg.Vector) float64

// Gradient は Objective の勾配を返す関数
type Gradient func(theta linalg.Vector) linalg.Vector

// StochasticObjective は1件の標本 (x_i, y_i) に対する損失を返す
type StochasticObjective func(x linalg.Vector, y float64, theta linalg.Vector) float64

// StochasticGradient は1件の標本に対する損失の勾配を返す
type StochasticGradient func(x linalg.Vector, y float64, theta linalg.Vector) linalg.Vector

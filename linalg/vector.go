// Package linalg はベクトルと行列の基本演算を提供する
//
// すべての二項演算は同じ長さを要求し、長さが異なる場合は
// errors.DimensionError を返す（短い方に合わせて切り詰めない）。
// 入力は変更せず、常に新しい Vector を返す。
package linalg

import (
	"math"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Vector は実数の順序付き列
type Vector []float64

// Clone はベクトルのコピーを返す
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Len はベクトルの長さを返す
func (v Vector) Len() int {
	return len(v)
}

// Zeros は長さ n のゼロベクトルを返す
func Zeros(n int) Vector {
	return make(Vector, n)
}

// sameLength は長さの一致を検証する
func sameLength(op string, v, w Vector) error {
	if len(v) != len(w) {
		return errors.NewDimensionError(op, len(v), len(w), 0)
	}
	return nil
}

// Add は要素ごとの和 v + w を返す
func Add(v, w Vector) (Vector, error) {
	if err := sameLength("linalg.Add", v, w); err != nil {
		return nil, err
	}
	return floats.AddTo(make(Vector, len(v)), v, w), nil
}

// Subtract は要素ごとの差 v - w を返す
func Subtract(v, w Vector) (Vector, error) {
	if err := sameLength("linalg.Subtract", v, w); err != nil {
		return nil, err
	}
	return floats.SubTo(make(Vector, len(v)), v, w), nil
}

// AddScaled は v + c*w を返す
// 勾配法の更新 theta - s*gradient はこれで表す（c = -s）
func AddScaled(v Vector, c float64, w Vector) (Vector, error) {
	if err := sameLength("linalg.AddScaled", v, w); err != nil {
		return nil, err
	}
	return floats.AddScaledTo(make(Vector, len(v)), v, c, w), nil
}

// Sum はすべてのベクトルの要素ごとの和を返す
func Sum(vectors []Vector) (Vector, error) {
	if len(vectors) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "linalg.Sum")
	}
	out := vectors[0].Clone()
	for _, v := range vectors[1:] {
		if err := sameLength("linalg.Sum", out, v); err != nil {
			return nil, err
		}
		floats.Add(out, v)
	}
	return out, nil
}

// ScalarMultiply は c*v を返す
func ScalarMultiply(c float64, v Vector) Vector {
	return floats.ScaleTo(make(Vector, len(v)), c, v)
}

// Mean は i 番目の要素が入力ベクトルの i 番目の平均となるベクトルを返す
func Mean(vectors []Vector) (Vector, error) {
	sum, err := Sum(vectors)
	if err != nil {
		return nil, err
	}
	return ScalarMultiply(1/float64(len(vectors)), sum), nil
}

// Dot は内積 v_1*w_1 + ... + v_n*w_n を返す
func Dot(v, w Vector) (float64, error) {
	if err := sameLength("linalg.Dot", v, w); err != nil {
		return 0, err
	}
	return floats.Dot(v, w), nil
}

// SumOfSquares は v_1^2 + ... + v_n^2 を返す
func SumOfSquares(v Vector) float64 {
	return floats.Dot(v, v)
}

// Magnitude はユークリッドノルムを返す
func Magnitude(v Vector) float64 {
	return math.Sqrt(SumOfSquares(v))
}

// SquaredDistance は (v_1-w_1)^2 + ... + (v_n-w_n)^2 を返す
func SquaredDistance(v, w Vector) (float64, error) {
	diff, err := Subtract(v, w)
	if err != nil {
		return 0, err
	}
	return SumOfSquares(diff), nil
}

// Distance は v と w のユークリッド距離を返す
func Distance(v, w Vector) (float64, error) {
	d2, err := SquaredDistance(v, w)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(d2), nil
}

// Direction は w と同じ向きの単位ベクトルを返す
func Direction(w Vector) (Vector, error) {
	mag := Magnitude(w)
	if mag == 0 {
		return nil, errors.NewValueError("linalg.Direction", "zero vector has no direction")
	}
	return ScalarMultiply(1/mag, w), nil
}

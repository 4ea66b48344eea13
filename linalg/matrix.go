package linalg

import (
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Matrix は行ベクトルの列（行優先）
type Matrix [][]float64

// Shape は行数と列数を返す
// 列数は先頭行の長さ（行がなければ 0）
func Shape(a Matrix) (rows, cols int) {
	rows = len(a)
	if rows > 0 {
		cols = len(a[0])
	}
	return rows, cols
}

// Row は i 行目のコピーを返す
func Row(a Matrix, i int) (Vector, error) {
	if i < 0 || i >= len(a) {
		return nil, errors.NewValidationError("i", "row index out of range", i)
	}
	return Vector(a[i]).Clone(), nil
}

// Column は j 列目を返す
func Column(a Matrix, j int) (Vector, error) {
	_, cols := Shape(a)
	if j < 0 || j >= cols {
		return nil, errors.NewValidationError("j", "column index out of range", j)
	}
	out := make(Vector, len(a))
	for i, row := range a {
		if len(row) != cols {
			return nil, errors.NewDimensionError("linalg.Column", cols, len(row), 1)
		}
		out[i] = row[j]
	}
	return out, nil
}

// MakeMatrix は (i, j) 要素が entry(i, j) となる rows x cols 行列を返す
func MakeMatrix(rows, cols int, entry func(i, j int) float64) Matrix {
	a := make(Matrix, rows)
	for i := range a {
		a[i] = make([]float64, cols)
		for j := range a[i] {
			a[i][j] = entry(i, j)
		}
	}
	return a
}

// Identity は n x n の単位行列を返す
func Identity(n int) Matrix {
	return MakeMatrix(n, n, func(i, j int) float64 {
		if i == j {
			return 1
		}
		return 0
	})
}

// Rows は行列を Vector のスライスとして返す（コピー）
func Rows(a Matrix) []Vector {
	out := make([]Vector, len(a))
	for i, row := range a {
		out[i] = Vector(row).Clone()
	}
	return out
}

// FromDense は gonum の行列を Matrix に変換する
func FromDense(m mat.Matrix) Matrix {
	r, c := m.Dims()
	return MakeMatrix(r, c, m.At)
}

// ToDense は Matrix を gonum の *mat.Dense に変換する
// 行の長さが揃っていない場合は DimensionError
func ToDense(a Matrix) (*mat.Dense, error) {
	rows, cols := Shape(a)
	if rows == 0 || cols == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "linalg.ToDense")
	}
	data := make([]float64, 0, rows*cols)
	for _, row := range a {
		if len(row) != cols {
			return nil, errors.NewDimensionError("linalg.ToDense", cols, len(row), 1)
		}
		data = append(data, row...)
	}
	return mat.NewDense(rows, cols, data), nil
}

package linear

import (
	"github.com/YuminosukeSato/scistat/linalg"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// checkFitInput は学習データの形状を検証し、行数と特徴量数を返す
func checkFitInput(op string, X, y mat.Matrix) (rows, cols int, err error) {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return 0, 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return 0, 0, errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return 0, 0, errors.NewValueError(op, "y must be a column vector")
	}
	return r, c, nil
}

// designRows は各行の先頭に切片項の 1 を付けたベクトルを返す
func designRows(X mat.Matrix) []linalg.Vector {
	rows := linalg.FromDense(X)
	out := make([]linalg.Vector, len(rows))
	for i, row := range rows {
		v := make(linalg.Vector, 0, len(row)+1)
		v = append(v, 1)
		out[i] = append(v, row...)
	}
	return out
}

// column は列ベクトル y を []float64 に変換する
func column(y mat.Matrix) []float64 {
	r, _ := y.Dims()
	out := make([]float64, r)
	for i := range out {
		out[i] = y.At(i, 0)
	}
	return out
}

// dot は内積を返す。長さは呼び出し側で揃えてある
func dot(x, beta linalg.Vector) float64 {
	d, _ := linalg.Dot(x, beta)
	return d
}

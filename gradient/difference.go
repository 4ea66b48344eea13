package gradient

import (
	"github.com/YuminosukeSato/scistat/linalg"
	"github.com/YuminosukeSato/scistat/pkg/errors"
)

// DifferenceQuotient は (f(x+h) - f(x)) / h を返す
func DifferenceQuotient(f func(float64) float64, x, h float64) (float64, error) {
	if h == 0 {
		return 0, errors.NewValidationError("h", "must be non-zero", h)
	}
	return (f(x+h) - f(x)) / h, nil
}

// PartialDifferenceQuotient は v の i 番目の成分に関する f の差分商を返す
func PartialDifferenceQuotient(f Objective, v linalg.Vector, i int, h float64) (float64, error) {
	if h == 0 {
		return 0, errors.NewValidationError("h", "must be non-zero", h)
	}
	if i < 0 || i >= len(v) {
		return 0, errors.NewValidationError("i", "index out of range", i)
	}
	w := v.Clone()
	w[i] += h
	return (f(w) - f(v)) / h, nil
}

// EstimateGradient は差分商で f の勾配を近似する
func EstimateGradient(f Objective, v linalg.Vector, h float64) (linalg.Vector, error) {
	if h == 0 {
		return nil, errors.NewValidationError("h", "must be non-zero", h)
	}
	out := make(linalg.Vector, len(v))
	for i := range v {
		d, err := PartialDifferenceQuotient(f, v, i, h)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

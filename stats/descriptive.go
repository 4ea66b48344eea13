// Package stats provides descriptive statistics over one-dimensional samples.
//
// Variance and StandardDeviation are population statistics (divide by n).
// Covariance is the sample covariance (divide by n-1). Every function rejects
// an empty sample with an error wrapping errors.ErrEmptyData.
package stats

import (
	"math"
	"slices"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func requireData(op string, x []float64) error {
	if len(x) == 0 {
		return errors.Wrap(errors.ErrEmptyData, op)
	}
	return nil
}

func sameLength(op string, x, y []float64) error {
	if len(x) != len(y) {
		return errors.NewDimensionError(op, len(x), len(y), 0)
	}
	return nil
}

func sorted(x []float64) []float64 {
	s := slices.Clone(x)
	slices.Sort(s)
	return s
}

// Mean returns the arithmetic mean of x.
func Mean(x []float64) (float64, error) {
	if err := requireData("stats.Mean", x); err != nil {
		return 0, err
	}
	return stat.Mean(x, nil), nil
}

// Median returns the middle value of x. For an even number of elements it
// returns the average of the two middle values.
func Median(x []float64) (float64, error) {
	if err := requireData("stats.Median", x); err != nil {
		return 0, err
	}
	s := sorted(x)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid], nil
	}
	return (s[mid-1] + s[mid]) / 2, nil
}

// Quantile returns the element of the sorted sample at index floor(p*n).
// p must lie in [0, 1]; p = 1 yields the maximum.
func Quantile(x []float64, p float64) (float64, error) {
	if err := requireData("stats.Quantile", x); err != nil {
		return 0, err
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return 0, errors.NewValidationError("p", "must be in [0, 1]", p)
	}
	s := sorted(x)
	idx := min(int(p*float64(len(s))), len(s)-1)
	return s[idx], nil
}

// Mode returns every value that occurs with the highest frequency, ascending.
func Mode(x []float64) ([]float64, error) {
	if err := requireData("stats.Mode", x); err != nil {
		return nil, err
	}
	counts := make(map[float64]int, len(x))
	best := 0
	for _, v := range x {
		counts[v]++
		best = max(best, counts[v])
	}
	var modes []float64
	for v, c := range counts {
		if c == best {
			modes = append(modes, v)
		}
	}
	slices.Sort(modes)
	return modes, nil
}

// DataRange returns max(x) - min(x).
func DataRange(x []float64) (float64, error) {
	if err := requireData("stats.DataRange", x); err != nil {
		return 0, err
	}
	return floats.Max(x) - floats.Min(x), nil
}

// Variance returns the population variance of x.
func Variance(x []float64) (float64, error) {
	if err := requireData("stats.Variance", x); err != nil {
		return 0, err
	}
	return stat.PopVariance(x, nil), nil
}

// StandardDeviation returns the population standard deviation of x.
func StandardDeviation(x []float64) (float64, error) {
	if err := requireData("stats.StandardDeviation", x); err != nil {
		return 0, err
	}
	return stat.PopStdDev(x, nil), nil
}

// InterquartileRange returns Quantile(x, 0.75) - Quantile(x, 0.25).
func InterquartileRange(x []float64) (float64, error) {
	q3, err := Quantile(x, 0.75)
	if err != nil {
		return 0, err
	}
	q1, err := Quantile(x, 0.25)
	if err != nil {
		return 0, err
	}
	return q3 - q1, nil
}

// DeMean returns x shifted so that its mean is zero.
func DeMean(x []float64) ([]float64, error) {
	m, err := Mean(x)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(x)
	floats.AddConst(-m, out)
	return out, nil
}

// Covariance returns the sample covariance of x and y.
func Covariance(x, y []float64) (float64, error) {
	if err := requireData("stats.Covariance", x); err != nil {
		return 0, err
	}
	if err := sameLength("stats.Covariance", x, y); err != nil {
		return 0, err
	}
	if len(x) < 2 {
		return 0, errors.NewValueError("stats.Covariance", "at least two observations are required")
	}
	return stat.Covariance(x, y, nil), nil
}

// Correlation returns the Pearson correlation of x and y.
// When either sample has zero spread the correlation is 0.
func Correlation(x, y []float64) (float64, error) {
	if err := requireData("stats.Correlation", x); err != nil {
		return 0, err
	}
	if err := sameLength("stats.Correlation", x, y); err != nil {
		return 0, err
	}
	if stat.PopStdDev(x, nil) == 0 || stat.PopStdDev(y, nil) == 0 {
		return 0, nil
	}
	return stat.Correlation(x, y, nil), nil
}

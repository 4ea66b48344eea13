package stats

import (
	"math"
	"slices"

	"github.com/YuminosukeSato/scistat/pkg/errors"
)

// Bucketize floors point to the next lower multiple of size.
func Bucketize(point, size float64) (float64, error) {
	if size <= 0 || math.IsNaN(size) {
		return 0, errors.NewValidationError("size", "must be positive", size)
	}
	return size * math.Floor(point/size), nil
}

// Histogram maps the lower edge of each bucket to its count.
type Histogram map[float64]int

// Buckets returns the lower edges of the non-empty buckets, ascending.
func (h Histogram) Buckets() []float64 {
	keys := make([]float64, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// MakeHistogram buckets points by size and counts each bucket.
func MakeHistogram(points []float64, size float64) (Histogram, error) {
	if err := requireData("stats.MakeHistogram", points); err != nil {
		return nil, err
	}
	h := make(Histogram)
	for _, p := range points {
		b, err := Bucketize(p, size)
		if err != nil {
			return nil, err
		}
		h[b]++
	}
	return h, nil
}

// Package decomposition finds principal components by gradient ascent on the
// directional variance of the data.
package decomposition

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scistat/gradient"
	"github.com/YuminosukeSato/scistat/linalg"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
	"github.com/YuminosukeSato/scistat/preprocessing"
)

// Component is a unit direction found by FirstPrincipalComponent.
type Component struct {
	Direction linalg.Vector    // unit length
	Variance  float64          // directional variance of the data along Direction
	Result    *gradient.Result // optimizer output for the unscaled maximizer
}

// DirectionalVariance returns the sum over rows of (x · w/|w|)².
func DirectionalVariance(X []linalg.Vector, w linalg.Vector) (float64, error) {
	d, err := linalg.Direction(w)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, x := range X {
		p, err := linalg.Dot(x, d)
		if err != nil {
			return 0, err
		}
		sum += p * p
	}
	return sum, nil
}

// directionalVarianceRow is one row's contribution; the y argument is unused.
func directionalVarianceRow(x linalg.Vector, _ float64, w linalg.Vector) float64 {
	d, err := linalg.Direction(w)
	if err != nil {
		return math.NaN()
	}
	p := dot(x, d)
	return p * p
}

// directionalVarianceRowGradient is 2(x · w/|w|)x.
func directionalVarianceRowGradient(x linalg.Vector, _ float64, w linalg.Vector) linalg.Vector {
	d, err := linalg.Direction(w)
	if err != nil {
		return nanVector(len(w))
	}
	return linalg.ScalarMultiply(2*dot(x, d), x)
}

// FirstPrincipalComponent maximizes the directional variance with batch
// gradient ascent from an all-ones guess.
func FirstPrincipalComponent(X mat.Matrix, opts ...Option) (*Component, error) {
	cfg := newConfig(opts)
	rows, err := prepare("FirstPrincipalComponent", X, cfg)
	if err != nil {
		return nil, err
	}
	return firstComponent(rows, cfg)
}

func firstComponent(rows []linalg.Vector, cfg config) (*Component, error) {
	target := func(w linalg.Vector) float64 {
		var sum float64
		for _, x := range rows {
			sum += directionalVarianceRow(x, 0, w)
		}
		return sum
	}
	grad := func(w linalg.Vector) linalg.Vector {
		g := linalg.Zeros(len(w))
		for _, x := range rows {
			gi := directionalVarianceRowGradient(x, 0, w)
			for j := range g {
				g[j] += gi[j]
			}
		}
		return g
	}

	cfg.logger = cfg.logger.With(log.ComponentKey, "decomposition")
	res, err := gradient.MaximizeBatch(target, grad, ones(len(rows[0])), cfg.batchOptions()...)
	if err != nil {
		return nil, err
	}
	return newComponent(rows, res)
}

// FirstPrincipalComponentSGD finds the same direction with stochastic
// gradient ascent, one row at a time.
func FirstPrincipalComponentSGD(X mat.Matrix, opts ...Option) (*Component, error) {
	cfg := newConfig(opts)
	rows, err := prepare("FirstPrincipalComponentSGD", X, cfg)
	if err != nil {
		return nil, err
	}

	cfg.logger = cfg.logger.With(log.ComponentKey, "decomposition")
	res, err := gradient.MaximizeStochastic(
		directionalVarianceRow,
		directionalVarianceRowGradient,
		rows, make([]float64, len(rows)),
		ones(len(rows[0])),
		cfg.stochasticOptions()...,
	)
	if err != nil {
		return nil, err
	}
	return newComponent(rows, res)
}

// PrincipalComponents extracts k components, removing each one's projection
// from the data before searching for the next.
func PrincipalComponents(X mat.Matrix, k int, opts ...Option) ([]*Component, error) {
	cfg := newConfig(opts)
	rows, err := prepare("PrincipalComponents", X, cfg)
	if err != nil {
		return nil, err
	}
	if k < 1 || k > len(rows[0]) {
		return nil, errors.NewValidationError("k", "must be between 1 and the number of features", k)
	}

	components := make([]*Component, 0, k)
	for range k {
		c, err := firstComponent(rows, cfg)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
		if rows, err = RemoveProjection(rows, c.Direction); err != nil {
			return nil, err
		}
	}
	return components, nil
}

// Transform maps each row of X onto the given components.
// X must already be centered the same way the components were found.
func Transform(X mat.Matrix, components []*Component) (*mat.Dense, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "decomposition.Transform")
	}
	if len(components) == 0 {
		return nil, errors.NewValidationError("components", "must not be empty", 0)
	}

	out := mat.NewDense(r, len(components), nil)
	for i, x := range linalg.FromDense(X) {
		for j, comp := range components {
			p, err := linalg.Dot(x, comp.Direction)
			if err != nil {
				return nil, err
			}
			out.Set(i, j, p)
		}
	}
	return out, nil
}

// Project returns the projection of v onto the direction of w.
func Project(v, w linalg.Vector) (linalg.Vector, error) {
	d, err := linalg.Direction(w)
	if err != nil {
		return nil, err
	}
	length, err := linalg.Dot(v, d)
	if err != nil {
		return nil, err
	}
	return linalg.ScalarMultiply(length, d), nil
}

// RemoveProjection subtracts each row's projection onto w.
func RemoveProjection(X []linalg.Vector, w linalg.Vector) ([]linalg.Vector, error) {
	out := make([]linalg.Vector, len(X))
	for i, x := range X {
		p, err := Project(x, w)
		if err != nil {
			return nil, err
		}
		if out[i], err = linalg.Subtract(x, p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func prepare(op string, X mat.Matrix, cfg config) ([]linalg.Vector, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "decomposition."+op)
	}
	if cfg.center {
		scaler := preprocessing.NewStandardScaler(true, false)
		centered, err := scaler.FitTransform(X)
		if err != nil {
			return nil, err
		}
		X = centered
	}
	return linalg.Rows(linalg.FromDense(X)), nil
}

func newComponent(rows []linalg.Vector, res *gradient.Result) (*Component, error) {
	d, err := linalg.Direction(res.Theta)
	if err != nil {
		return nil, err
	}
	v, err := DirectionalVariance(rows, d)
	if err != nil {
		return nil, err
	}
	return &Component{Direction: d, Variance: v, Result: res}, nil
}

func dot(x, w linalg.Vector) float64 {
	d, _ := linalg.Dot(x, w)
	return d
}

func ones(n int) linalg.Vector {
	v := make(linalg.Vector, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

func nanVector(n int) linalg.Vector {
	v := make(linalg.Vector, n)
	for i := range v {
		v[i] = math.NaN()
	}
	return v
}

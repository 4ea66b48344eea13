// Package probability provides the normal distribution and a few simple
// discrete and continuous distributions used by the hypothesis tests.
//
// Densities and cumulative probabilities are evaluated through
// gonum.org/v1/gonum/stat/distuv. The inverse CDF is a bisection search on
// the standard normal, rescaled with mu + sigma*z.
package probability

import (
	"math"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultInverseTolerance is the bracket width at which InverseNormalCDF stops.
const DefaultInverseTolerance = 1e-5

// The bisection bracket for the standard normal. CDF(±10) is within double
// precision of 0 and 1.
const (
	bisectionLow  = -10.0
	bisectionHigh = 10.0
)

// Normal is a normal distribution with mean Mu and standard deviation Sigma.
type Normal struct {
	Mu    float64
	Sigma float64
}

// StandardNormal is the normal distribution with Mu = 0 and Sigma = 1.
var StandardNormal = Normal{Mu: 0, Sigma: 1}

// NewNormal returns a Normal after validating sigma.
func NewNormal(mu, sigma float64) (Normal, error) {
	if err := validateSigma(sigma); err != nil {
		return Normal{}, err
	}
	return Normal{Mu: mu, Sigma: sigma}, nil
}

// PDF returns the density at x. A Sigma that is not positive and finite is
// rejected, so a zero Normal{} fails instead of returning NaN.
func (n Normal) PDF(x float64) (float64, error) {
	if err := validateSigma(n.Sigma); err != nil {
		return 0, err
	}
	return n.dist().Prob(x), nil
}

// CDF returns P(X <= x).
func (n Normal) CDF(x float64) (float64, error) {
	if err := validateSigma(n.Sigma); err != nil {
		return 0, err
	}
	return n.dist().CDF(x), nil
}

// InverseCDF returns an approximate x with CDF(x) = p using bisection.
func (n Normal) InverseCDF(p, tolerance float64) (float64, error) {
	return InverseNormalCDF(p, n.Mu, n.Sigma, tolerance)
}

func (n Normal) dist() distuv.Normal {
	return distuv.Normal{Mu: n.Mu, Sigma: n.Sigma}
}

// NormalPDF returns the density of N(mu, sigma²) at x.
func NormalPDF(x, mu, sigma float64) (float64, error) {
	return Normal{Mu: mu, Sigma: sigma}.PDF(x)
}

// NormalCDF returns P(X <= x) for X ~ N(mu, sigma²), that is
// (1 + erf((x-mu)/(sigma*sqrt(2))))/2.
func NormalCDF(x, mu, sigma float64) (float64, error) {
	return Normal{Mu: mu, Sigma: sigma}.CDF(x)
}

// InverseNormalCDF finds z with NormalCDF(z, mu, sigma) approximately p.
//
// The standard normal is searched on [-10, 10], halving the bracket while its
// width exceeds tolerance. When the midpoint's CDF equals p exactly the search
// stops early. The standard result is rescaled with mu + sigma*z.
func InverseNormalCDF(p, mu, sigma, tolerance float64) (float64, error) {
	if err := validateSigma(sigma); err != nil {
		return 0, err
	}
	if !(p > 0 && p < 1) {
		return 0, errors.NewValidationError("p", "must be in (0, 1)", p)
	}
	if !(tolerance > 0) {
		return 0, errors.NewValidationError("tolerance", "must be positive", tolerance)
	}

	return mu + sigma*bisect(p, tolerance), nil
}

func bisect(p, tolerance float64) float64 {
	lo, hi := bisectionLow, bisectionHigh
	mid := (lo + hi) / 2
	for hi-lo > tolerance {
		mid = (lo + hi) / 2
		c := distuv.UnitNormal.CDF(mid)
		switch {
		case c < p:
			lo = mid
		case c > p:
			hi = mid
		default:
			return mid
		}
	}
	return mid
}

func validateSigma(sigma float64) error {
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return errors.NewValidationError("sigma", "must be positive and finite", sigma)
	}
	return nil
}

package probability

import "gonum.org/v1/gonum/stat/distuv"

var unitUniform = distuv.Uniform{Min: 0, Max: 1}

// UniformPDF is the density of the uniform distribution on [0, 1).
func UniformPDF(x float64) float64 {
	if x >= 1 {
		return 0
	}
	return unitUniform.Prob(x)
}

// UniformCDF returns the probability that a uniform random variable on
// [0, 1) is at most x.
func UniformCDF(x float64) float64 {
	return unitUniform.CDF(x)
}

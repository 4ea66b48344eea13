// Package scistat is a small statistics and optimization library for Go.
//
// It covers descriptive statistics, the normal distribution, classical
// hypothesis testing and gradient descent, plus a few estimators built on
// top of them.
//
// # Quick Start
//
// Minimizing a function with batch gradient descent:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/scistat/gradient"
//	    "github.com/YuminosukeSato/scistat/linalg"
//	)
//
//	func main() {
//	    grad := func(v linalg.Vector) linalg.Vector { return linalg.ScalarMultiply(2, v) }
//	    res, err := gradient.MinimizeBatch(linalg.SumOfSquares, grad, linalg.Vector{3, -4, 1})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(res.Theta, res.Value, res.Converged)
//	}
//
// Inverting the normal CDF:
//
//	z, err := probability.InverseNormalCDF(0.975, 0, 1, probability.DefaultInverseTolerance)
//
// # Packages
//
//   - linalg: vector and matrix helpers over []float64, interoperable with gonum/mat
//   - stats: descriptive statistics and bucketed histograms
//   - probability: normal, uniform, Bernoulli and binomial distributions
//   - hypothesis: normal approximations, p-values, A/B tests, bootstrap
//   - gradient: batch and stochastic gradient descent with safe objectives
//   - linear: multiple regression (SGD) and logistic regression (batch ascent)
//   - decomposition: principal components by gradient ascent
//   - cluster: k-means with random or k-means++ initialization
//   - neighbors: k-nearest-neighbor classification
//   - metrics: regression and classification metrics
//   - preprocessing: StandardScaler
//   - viz: gonum/plot figures written to an io.Writer
//   - core/model: estimator state shared by the models
//   - pkg/errors, pkg/log: structured errors and injected logging
//
// The scistat command in cmd/scistat exposes the distribution functions,
// hypothesis tests and a gradient descent demo.
//
// # Errors
//
// Invalid parameters return *errors.ValidationError and shape mismatches
// *errors.DimensionError. Failing to converge is not an error: the result
// carries Converged=false and a *errors.ConvergenceWarning.
//
// # Logging
//
// Nothing logs unless a logger is passed with a WithLogger option:
//
//	logger := log.NewZerologLogger(os.Stderr, log.LevelDebug)
//	res, err := gradient.MinimizeBatch(f, df, theta0, gradient.WithLogger(logger))
package scistat

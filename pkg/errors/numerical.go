package errors

import (
	"math"
)

// CheckNumericalStability checks if values contain NaN or Inf
// and returns an error if numerical instability is detected.
func CheckNumericalStability(operation string, values []float64, iteration int) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(operation, values, iteration)
		}
	}
	return nil
}

// StabilizeLog computes log with protection against log(0).
// Returns log(max(value, epsilon)) where epsilon is a small positive number.
func StabilizeLog(value float64) float64 {
	const epsilon = 1e-10
	if value < epsilon {
		return math.Log(epsilon)
	}
	return math.Log(value)
}

// StabilizeExp computes exp with protection against overflow.
// Clips the input to prevent exp from returning Inf.
func StabilizeExp(value float64) float64 {
	const maxExp = 700.0 // exp(700) is close to the maximum float64
	if value > maxExp {
		return math.Exp(maxExp)
	}
	if value < -maxExp {
		return 0
	}
	return math.Exp(value)
}

// ClipGradient rescales gradients whose L2 norm exceeds maxNorm.
// The input slice is modified in place and returned.
func ClipGradient(gradients []float64, maxNorm float64) []float64 {
	norm := 0.0
	for _, g := range gradients {
		norm += g * g
	}
	norm = math.Sqrt(norm)

	if norm > maxNorm && norm > 0 {
		scale := maxNorm / norm
		for i := range gradients {
			gradients[i] *= scale
		}
	}
	return gradients
}

package probability

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// BernoulliTrial returns 1 with probability p and 0 otherwise.
// A nil rng uses the global source.
func BernoulliTrial(rng *rand.Rand, p float64) (int, error) {
	if !(p >= 0 && p <= 1) {
		return 0, errors.NewValidationError("p", "must be in [0, 1]", p)
	}
	b := distuv.Bernoulli{P: p}
	if rng != nil {
		b.Src = rng
	}
	return int(b.Rand()), nil
}

// Binomial returns the number of successes in n independent Bernoulli(p)
// trials.
func Binomial(rng *rand.Rand, n int, p float64) (int, error) {
	if n < 0 {
		return 0, errors.NewValidationError("n", "must be non-negative", n)
	}
	if !(p >= 0 && p <= 1) {
		return 0, errors.NewValidationError("p", "must be in [0, 1]", p)
	}
	successes := 0
	for range n {
		b, err := BernoulliTrial(rng, p)
		if err != nil {
			return 0, err
		}
		successes += b
	}
	return successes, nil
}

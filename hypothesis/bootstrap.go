package hypothesis

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/scistat/pkg/errors"
)

// BootstrapSample は data から len(data) 個を復元抽出する
func BootstrapSample[T any](rng *rand.Rand, data []T) []T {
	out := make([]T, len(data))
	for i := range out {
		out[i] = data[rng.IntN(len(data))]
	}
	return out
}

// BootstrapStatistic は numSamples 個のブートストラップ標本それぞれで statFn を評価する
// statFn がエラーを返した場合はそこで中断する
func BootstrapStatistic[T, R any](rng *rand.Rand, data []T, statFn func([]T) (R, error), numSamples int) ([]R, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "hypothesis.BootstrapStatistic")
	}
	if numSamples <= 0 {
		return nil, errors.NewValidationError("numSamples", "must be positive", numSamples)
	}
	if rng == nil {
		return nil, errors.NewValidationError("rng", "must not be nil", nil)
	}

	out := make([]R, 0, numSamples)
	for range numSamples {
		r, err := statFn(BootstrapSample(rng, data))
		if err != nil {
			return nil, errors.Wrap(err, "hypothesis.BootstrapStatistic")
		}
		out = append(out, r)
	}
	return out, nil
}

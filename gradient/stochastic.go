package gradient

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/scistat/linalg"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

// MinimizeStochastic は確率的勾配降下法で sum_i target(x_i, y_i, theta) を最小化する
//
// エポックごとに全標本の損失を合計し、最良値を更新したら学習率を初期値に戻す。
// 更新しなかったエポックでは学習率に decay を掛け、連続回数が上限に達したら
// それまでの最良の theta を返す。更新は毎エポック新しい一様ランダムな順序で行う。
func MinimizeStochastic(target StochasticObjective, grad StochasticGradient, x []linalg.Vector, y []float64, theta0 linalg.Vector, opts ...Option) (*Result, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return minimizeStochastic("MinimizeStochastic", target, grad, x, y, theta0, cfg)
}

// MaximizeStochastic は sum_i target(x_i, y_i, theta) を最大化する
// Value は target の符号で返す
func MaximizeStochastic(target StochasticObjective, grad StochasticGradient, x []linalg.Vector, y []float64, theta0 linalg.Vector, opts ...Option) (*Result, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if target == nil || grad == nil {
		return nil, errors.NewValidationError("target", "objective and gradient must not be nil", nil)
	}
	negTarget := func(xi linalg.Vector, yi float64, theta linalg.Vector) float64 {
		return -target(xi, yi, theta)
	}
	negGrad := func(xi linalg.Vector, yi float64, theta linalg.Vector) linalg.Vector {
		return linalg.ScalarMultiply(-1, grad(xi, yi, theta))
	}
	res, err := minimizeStochastic("MaximizeStochastic", negTarget, negGrad, x, y, theta0, cfg)
	if err != nil {
		return nil, err
	}
	return res.negate(), nil
}

func minimizeStochastic(op string, target StochasticObjective, grad StochasticGradient, x []linalg.Vector, y []float64, theta0 linalg.Vector, cfg *config) (*Result, error) {
	if target == nil || grad == nil {
		return nil, errors.NewValidationError("target", "objective and gradient must not be nil", nil)
	}
	if len(x) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "gradient."+op)
	}
	if len(x) != len(y) {
		return nil, errors.NewDimensionError("gradient."+op, len(x), len(y), 0)
	}

	runID := uuid.NewString()
	logger := cfg.logger.With(
		log.ComponentKey, "gradient",
		log.OperationKey, log.OperationMinimizeSGD,
		log.RunIDKey, runID,
	)
	debug := logger.Enabled(context.Background(), log.LevelDebug)
	rng := cfg.random()

	safe := safeStochastic(target)
	theta := theta0.Clone()
	alpha := cfg.alpha
	minTheta := theta.Clone()
	minValue := math.Inf(1)
	noImprovement := 0
	res := &Result{RunID: runID}

	fields := []any{
		log.SamplesKey, len(x),
		log.FeaturesKey, len(theta),
		log.LearningRateKey, alpha,
	}
	if cfg.seed != nil {
		fields = append(fields, log.RandomSeedKey, *cfg.seed)
	}
	logger.Info("starting stochastic gradient descent", fields...)

	for epoch := 1; epoch <= cfg.maxEpochs; epoch++ {
		value := 0.0
		for i := range x {
			value += safe(x[i], y[i], theta)
		}
		res.Trace = append(res.Trace, value)

		if value < minValue {
			minTheta, minValue = theta.Clone(), value
			noImprovement = 0
			alpha = cfg.alpha
		} else {
			noImprovement++
			alpha *= cfg.decay
		}

		if debug {
			logger.Debug("stochastic epoch",
				log.EpochKey, epoch,
				log.LossKey, value,
				log.LearningRateKey, alpha,
				log.NoImprovementKey, noImprovement,
			)
		}

		if noImprovement >= cfg.maxNoImprovement {
			res.Theta, res.Value, res.Iterations, res.Converged = minTheta, minValue, epoch, true
			logger.Info("stochastic gradient descent finished",
				log.EpochKey, epoch,
				log.LossKey, minValue,
				log.ConvergedKey, true,
			)
			return res, nil
		}

		for _, i := range rng.Perm(len(x)) {
			g, err := evalGradient(op, func() linalg.Vector { return grad(x[i], y[i], theta) }, len(theta), epoch)
			if err != nil {
				logger.Error("gradient evaluation failed", failureFields(err, log.EpochKey, epoch)...)
				return nil, err
			}
			if cfg.maxGradNorm > 0 {
				g = errors.ClipGradient(g.Clone(), cfg.maxGradNorm)
			}
			theta, err = linalg.AddScaled(theta, -alpha, g)
			if err != nil {
				return nil, err
			}
		}
	}

	res.Theta, res.Value, res.Iterations = minTheta, minValue, cfg.maxEpochs
	res.warning = errors.NewConvergenceWarning(op, cfg.maxEpochs, "")
	logger.Warn("stochastic gradient descent did not converge",
		log.ErrorCodeKey, log.ErrorConvergence,
		log.EpochKey, cfg.maxEpochs,
		log.LossKey, minValue,
		log.SuggestionKey, "increase WithMaxEpochs or lower WithMaxNoImprovement",
		"warning", res.warning,
	)
	return res, nil
}

package gradient

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/scistat/linalg"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

// MinimizeBatch は勾配降下法で target を最小化する theta を探す
//
// 各反復で勾配 g を計算し、ステップ幅 s ごとの候補 theta - s*g のうち
// 目的関数が最小のもの（同値なら先に試した大きいステップ）を選ぶ。
// 改善量が許容誤差未満、または候補が改善しない場合は現在の theta を返す。
// 現在の theta で勾配がパニックまたは非有限値になった場合も同様に現在の theta を返す。
// 勾配の長さが theta と異なる場合だけはエラーになる。
// 反復上限に達した場合は Converged が false の結果を返し、エラーにはしない。
func MinimizeBatch(target Objective, grad Gradient, theta0 linalg.Vector, opts ...Option) (*Result, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return minimizeBatch("MinimizeBatch", target, grad, theta0, cfg)
}

// MaximizeBatch は target を最大化する theta を探す
// -target を MinimizeBatch で最小化し、Value は target の符号で返す
func MaximizeBatch(target Objective, grad Gradient, theta0 linalg.Vector, opts ...Option) (*Result, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if target == nil || grad == nil {
		return nil, errors.NewValidationError("target", "objective and gradient must not be nil", nil)
	}
	res, err := minimizeBatch("MaximizeBatch", negate(target), negateGradient(grad), theta0, cfg)
	if err != nil {
		return nil, err
	}
	return res.negate(), nil
}

func minimizeBatch(op string, target Objective, grad Gradient, theta0 linalg.Vector, cfg *config) (*Result, error) {
	if target == nil || grad == nil {
		return nil, errors.NewValidationError("target", "objective and gradient must not be nil", nil)
	}

	runID := uuid.NewString()
	logger := cfg.logger.With(
		log.ComponentKey, "gradient",
		log.OperationKey, log.OperationMinimizeBatch,
		log.RunIDKey, runID,
	)
	debug := logger.Enabled(context.Background(), log.LevelDebug)

	safe := Safe(target)
	theta := theta0.Clone()
	value := safe(theta)
	res := &Result{RunID: runID, Trace: []float64{value}}

	logger.Info("starting batch gradient descent",
		log.FeaturesKey, len(theta),
		log.ToleranceKey, cfg.tolerance,
		log.LossKey, value,
	)

	for iter := 1; iter <= cfg.maxIterations; iter++ {
		g, err := evalGradient(op, func() linalg.Vector { return grad(theta) }, len(theta), iter)
		if err != nil {
			var dimErr *errors.DimensionError
			if errors.As(err, &dimErr) {
				logger.Error("gradient evaluation failed", failureFields(err, log.IterationKey, iter)...)
				return nil, err
			}
			// 現在の theta で勾配が定義されない場合は改善できる候補がないものとして扱う
			res.Theta, res.Value, res.Iterations, res.Converged = theta, value, iter, true
			logger.Warn("gradient undefined at current point, stopping",
				failureFields(err, log.IterationKey, iter, log.LossKey, value)...)
			return res, nil
		}

		var next linalg.Vector
		nextValue := math.Inf(1)
		stepSize := 0.0
		for _, s := range cfg.stepSizes {
			candidate, err := linalg.AddScaled(theta, -s, g)
			if err != nil {
				return nil, err
			}
			v := safe(candidate)
			if next == nil || v < nextValue {
				next, nextValue, stepSize = candidate, v, s
			}
		}

		if debug {
			logger.Debug("batch iteration",
				log.IterationKey, iter,
				log.LossKey, nextValue,
				log.StepSizeKey, stepSize,
			)
		}

		if math.Abs(value-nextValue) < cfg.tolerance || !(nextValue < value) {
			res.Theta, res.Value, res.Iterations, res.Converged = theta, value, iter, true
			logger.Info("batch gradient descent converged",
				log.IterationKey, iter,
				log.LossKey, value,
				log.ConvergedKey, true,
			)
			return res, nil
		}

		theta, value = next, nextValue
		res.Trace = append(res.Trace, value)
	}

	res.Theta, res.Value, res.Iterations = theta, value, cfg.maxIterations
	res.warning = errors.NewConvergenceWarning(op, cfg.maxIterations, "")
	logger.Warn("batch gradient descent did not converge",
		log.ErrorCodeKey, log.ErrorConvergence,
		log.IterationKey, cfg.maxIterations,
		log.LossKey, value,
		log.SuggestionKey, "increase WithMaxIterations or WithTolerance",
		"warning", res.warning,
	)
	return res, nil
}

// evalGradient は勾配を評価し、パニック・長さ・数値の安定性を検査する
func evalGradient(op string, eval func() linalg.Vector, dim, iter int) (linalg.Vector, error) {
	var g linalg.Vector
	err := errors.SafeExecute(op+".gradient", func() error {
		g = eval()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(g) != dim {
		return nil, errors.NewDimensionError(op+".gradient", dim, len(g), 1)
	}
	if err := errors.CheckNumericalStability(op+".gradient", g, iter); err != nil {
		return nil, err
	}
	return g, nil
}

// failureFields は err を先頭に置いたログ用フィールドを作る
func failureFields(err error, fields ...any) []any {
	out := append([]any{err}, fields...)
	var numErr *errors.NumericalInstabilityError
	if errors.As(err, &numErr) {
		out = append(out, log.ErrorCodeKey, log.ErrorNumericalInstability)
	}
	return out
}

func negate(f Objective) Objective {
	return func(theta linalg.Vector) float64 {
		return -f(theta)
	}
}

func negateGradient(df Gradient) Gradient {
	return func(theta linalg.Vector) linalg.Vector {
		return linalg.ScalarMultiply(-1, df(theta))
	}
}

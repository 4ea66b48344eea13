package gradient

import (
	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/scistat/linalg"
	"github.com/YuminosukeSato/scistat/pkg/errors"
)

// Result は最適化の結果
type Result struct {
	// Theta は見つかったパラメータ
	Theta linalg.Vector

	// Value は Theta における目的関数の値（呼び出し側の符号）
	Value float64

	// Iterations はバッチ版では反復回数、確率的版ではエポック数
	Iterations int

	// Converged は停止条件を満たして終了したかどうか
	// 上限回数に達した場合は false
	Converged bool

	// Trace は各反復（エポック）での目的関数の値
	Trace []float64

	// RunID は同じ実行のログを関連付ける識別子
	RunID string

	warning *errors.ConvergenceWarning
}

// Warning は収束しなかった場合の警告を返す。収束した場合は nil
func (r *Result) Warning() *errors.ConvergenceWarning {
	return r.warning
}

// MarshalZerologObject は結果の要約をzerologのイベントに追加する
func (r *Result) MarshalZerologObject(e *zerolog.Event) {
	e.Str("run_id", r.RunID).
		Floats64("theta", r.Theta).
		Float64("value", r.Value).
		Int("iterations", r.Iterations).
		Bool("converged", r.Converged)
}

// negate は最大化のために符号を反転した結果を作る
func (r *Result) negate() *Result {
	out := *r
	out.Value = -r.Value
	out.Trace = make([]float64, len(r.Trace))
	for i, v := range r.Trace {
		out.Trace[i] = -v
	}
	return &out
}

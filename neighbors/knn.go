// Package neighbors は k 近傍法による分類を提供する
package neighbors

import (
	"cmp"
	"math"
	"slices"

	"github.com/YuminosukeSato/scistat/core/model"
	"github.com/YuminosukeSato/scistat/linalg"
	"github.com/YuminosukeSato/scistat/metrics"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	_ model.Fitter    = (*KNeighborsClassifier)(nil)
	_ model.Predictor = (*KNeighborsClassifier)(nil)
	_ model.Scorer    = (*KNeighborsClassifier)(nil)
)

// MajorityVote は近い順に並んだラベルから最多のラベルを返す
//
// 最多票が複数ある場合は最も遠いラベルを外して数え直す。
// ラベルが 1 つになれば必ず決まる。
func MajorityVote(labels []int) (int, error) {
	if len(labels) == 0 {
		return 0, errors.NewModelError("MajorityVote", "empty data", errors.ErrEmptyData)
	}
	for n := len(labels); ; n-- {
		counts := make(map[int]int, n)
		winner, best, ties := 0, 0, 0
		for _, l := range labels[:n] {
			counts[l]++
		}
		for _, l := range labels[:n] {
			switch c := counts[l]; {
			case c > best:
				winner, best, ties = l, c, 1
			case c == best && l != winner:
				ties++
			}
			// 同じラベルを二度数えない
			counts[l] = -1
		}
		if ties == 1 {
			return winner, nil
		}
	}
}

// Classify は x に近い k 個の点のラベルで多数決をとる
//
// 距離が等しい点は points の並び順を保つ。k が点の数を超える場合は全点を使う。
func Classify(k int, points []linalg.Vector, labels []int, x linalg.Vector) (int, error) {
	const op = "neighbors.Classify"
	if k < 1 {
		return 0, errors.NewValidationError("k", "must be positive", k)
	}
	if len(points) == 0 {
		return 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if len(points) != len(labels) {
		return 0, errors.NewDimensionError(op, len(points), len(labels), 0)
	}

	type neighbor struct {
		dist  float64
		label int
	}
	ns := make([]neighbor, len(points))
	for i, p := range points {
		d, err := linalg.Distance(p, x)
		if err != nil {
			return 0, err
		}
		ns[i] = neighbor{dist: d, label: labels[i]}
	}
	slices.SortStableFunc(ns, func(a, b neighbor) int {
		return cmp.Compare(a.dist, b.dist)
	})

	k = min(k, len(ns))
	nearest := make([]int, k)
	for i := range nearest {
		nearest[i] = ns[i].label
	}
	return MajorityVote(nearest)
}

// KNeighborsClassifier は学習データをそのまま保持する k 近傍分類器
type KNeighborsClassifier struct {
	model.BaseEstimator

	// K は多数決に使う近傍の数
	K int

	points    []linalg.Vector
	labels    []int
	nFeatures int
}

// NewKNeighborsClassifier は k 個の近傍で分類するモデルを作る
func NewKNeighborsClassifier(k int) *KNeighborsClassifier {
	return &KNeighborsClassifier{K: k}
}

// Fit は訓練データを保持する。y は n×1 の整数ラベル
func (m *KNeighborsClassifier) Fit(X, y mat.Matrix) error {
	const op = "KNeighborsClassifier.Fit"
	if m.K < 1 {
		return errors.NewValidationError("k", "must be positive", m.K)
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	yr, yc := y.Dims()
	if yc != 1 {
		return errors.NewDimensionError(op, 1, yc, 1)
	}
	if yr != r {
		return errors.NewDimensionError(op, r, yr, 0)
	}

	labels := make([]int, r)
	for i := range labels {
		v := y.At(i, 0)
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return errors.NewValidationError("y", "labels must be integers", v)
		}
		labels[i] = int(v)
	}

	m.Reset()
	m.points = linalg.Rows(linalg.FromDense(X))
	m.labels = labels
	m.nFeatures = c
	m.SetFitted()
	return nil
}

// Predict は各行のラベルを n×1 の行列で返す
func (m *KNeighborsClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := m.RequireFitted("KNeighborsClassifier", "Predict"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if c != m.nFeatures {
		return nil, errors.NewDimensionError("KNeighborsClassifier.Predict", m.nFeatures, c, 1)
	}

	out := mat.NewDense(r, 1, nil)
	for i, x := range linalg.Rows(linalg.FromDense(X)) {
		label, err := Classify(m.K, m.points, m.labels, x)
		if err != nil {
			return nil, err
		}
		out.Set(i, 0, float64(label))
	}
	return out, nil
}

// Score は正解率を返す
func (m *KNeighborsClassifier) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyScore(y, yPred)
}

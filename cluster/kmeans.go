// Package cluster は k-means クラスタリングを提供する
//
// 中心と標本の距離は linalg.SquaredDistance、中心の更新は linalg.Mean で計算する。
// 初期中心の選択だけが乱数を使うので、WithRandomState を指定すれば結果は再現できる。
package cluster

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/YuminosukeSato/scistat/core/model"
	"github.com/YuminosukeSato/scistat/linalg"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
	"gonum.org/v1/gonum/mat"
)

var _ model.Clusterer = (*KMeans)(nil)

// KMeans は Lloyd 法による k-means クラスタリング
//
// 全標本を最も近い中心に割り当て、各クラスタの平均を新しい中心にする。
// 割り当てが変わらなくなった時点で収束とする。標本が割り当てられなかった
// クラスタの中心は動かさない。
type KMeans struct {
	model.BaseEstimator

	// K はクラスタ数
	K int

	// Means は学習済みの中心（K 個）
	Means []linalg.Vector
	// Labels は学習データの各標本のクラスタ番号
	Labels []int
	// Inertia は各標本と所属クラスタの中心の距離の二乗和
	Inertia float64
	// Iterations は割り当てを計算した回数
	Iterations int
	// Converged は割り当てが変わらなくなって終了したかどうか
	Converged bool

	nFeatures int
	warning   *errors.ConvergenceWarning
	cfg       config
}

// NewKMeans は k 個のクラスタを探す KMeans を作る
func NewKMeans(k int, opts ...Option) *KMeans {
	return &KMeans{K: k, cfg: newConfig(opts)}
}

// Fit は X の行を標本として中心を学習する
func (m *KMeans) Fit(X mat.Matrix) error {
	const op = "KMeans.Fit"
	if err := m.cfg.validate(); err != nil {
		return err
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if m.K < 1 {
		return errors.NewValidationError("k", "must be positive", m.K)
	}
	if m.K > r {
		return errors.NewValidationError("k", "must not exceed the number of samples", m.K)
	}

	logger := m.cfg.logger.With(
		log.ComponentKey, "cluster",
		log.ModelNameKey, "KMeans",
		log.OperationKey, log.OperationFit,
	)
	logger.Info("starting k-means",
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.ClustersKey, m.K,
	)

	points := linalg.Rows(linalg.FromDense(X))
	rng := m.cfg.rng()
	var means []linalg.Vector
	if m.cfg.init == InitKMeansPlusPlus {
		means = plusPlusCenters(points, m.K, rng)
	} else {
		means = randomCenters(points, m.K, rng)
	}

	var assignments []int
	converged := false
	iter := 0
	for iter < m.cfg.maxIterations {
		iter++
		next := assign(points, means)
		if assignments != nil && slices.Equal(assignments, next) {
			converged = true
			break
		}
		assignments = next

		for i := range means {
			var members []linalg.Vector
			for j, a := range assignments {
				if a == i {
					members = append(members, points[j])
				}
			}
			if len(members) == 0 {
				continue
			}
			mean, err := linalg.Mean(members)
			if err != nil {
				return errors.NewModelError(op, "mean update failed", err)
			}
			means[i] = mean
		}
	}

	labels := assign(points, means)
	inertia := 0.0
	for j, p := range points {
		d2, _ := linalg.SquaredDistance(p, means[labels[j]])
		inertia += d2
	}

	m.Reset()
	m.Means, m.Labels, m.Inertia = means, labels, inertia
	m.Iterations, m.Converged = iter, converged
	m.nFeatures = c
	m.warning = nil
	m.SetFitted()

	if !converged {
		m.warning = errors.NewConvergenceWarning("KMeans", m.cfg.maxIterations, "")
		logger.Warn("k-means did not converge",
			log.ErrorCodeKey, log.ErrorConvergence,
			log.IterationKey, iter,
			log.LossKey, inertia,
			log.SuggestionKey, "increase WithMaxIterations",
			"warning", m.warning,
		)
		return nil
	}
	logger.Info("k-means converged",
		log.IterationKey, iter,
		log.LossKey, inertia,
		log.ConvergedKey, true,
	)
	return nil
}

// Warning は割り当てが収束しなかった場合の警告を返す。収束した場合は nil
func (m *KMeans) Warning() *errors.ConvergenceWarning {
	return m.warning
}

// Classify は x に最も近い中心の番号を返す（同距離なら番号の小さい方）
func (m *KMeans) Classify(x linalg.Vector) (int, error) {
	if err := m.RequireFitted("KMeans", "Classify"); err != nil {
		return 0, err
	}
	if len(x) != m.nFeatures {
		return 0, errors.NewDimensionError("KMeans.Classify", m.nFeatures, len(x), 0)
	}
	return nearest(x, m.Means), nil
}

// Predict は各行のクラスタ番号を n×1 の行列で返す
func (m *KMeans) Predict(X mat.Matrix) (mat.Matrix, error) {
	points, err := m.checkInput("Predict", X)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(len(points), 1, nil)
	for i, p := range points {
		out.Set(i, 0, float64(nearest(p, m.Means)))
	}
	return out, nil
}

// FitPredict は学習して学習データのクラスタ番号を返す
func (m *KMeans) FitPredict(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	out := mat.NewDense(len(m.Labels), 1, nil)
	for i, l := range m.Labels {
		out.Set(i, 0, float64(l))
	}
	return out, nil
}

// Transform は各行と各中心のユークリッド距離を n×K の行列で返す
func (m *KMeans) Transform(X mat.Matrix) (mat.Matrix, error) {
	points, err := m.checkInput("Transform", X)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(len(points), len(m.Means), nil)
	for i, p := range points {
		for j, mean := range m.Means {
			d, _ := linalg.Distance(p, mean)
			out.Set(i, j, d)
		}
	}
	return out, nil
}

func (m *KMeans) checkInput(method string, X mat.Matrix) ([]linalg.Vector, error) {
	if err := m.RequireFitted("KMeans", method); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if r == 0 {
		return nil, errors.NewModelError("KMeans."+method, "empty data", errors.ErrEmptyData)
	}
	if c != m.nFeatures {
		return nil, errors.NewDimensionError("KMeans."+method, m.nFeatures, c, 1)
	}
	return linalg.Rows(linalg.FromDense(X)), nil
}

// SquaredClusteringErrors は X を k 個にクラスタリングしたときの Inertia を返す
// k を変えて呼び出すとエルボー法でクラスタ数を選べる
func SquaredClusteringErrors(X mat.Matrix, k int, opts ...Option) (float64, error) {
	m := NewKMeans(k, opts...)
	if err := m.Fit(X); err != nil {
		return 0, err
	}
	return m.Inertia, nil
}

func assign(points, means []linalg.Vector) []int {
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = nearest(p, means)
	}
	return out
}

// nearest は距離の二乗が最小の中心の番号を返す。長さは呼び出し側で揃えてある
func nearest(x linalg.Vector, means []linalg.Vector) int {
	best, bestDist := 0, math.Inf(1)
	for i, mean := range means {
		d2, _ := linalg.SquaredDistance(x, mean)
		if d2 < bestDist {
			best, bestDist = i, d2
		}
	}
	return best
}

// randomCenters は重複なしに k 個の標本を選ぶ
func randomCenters(points []linalg.Vector, k int, rng *rand.Rand) []linalg.Vector {
	means := make([]linalg.Vector, k)
	for i, idx := range rng.Perm(len(points))[:k] {
		means[i] = points[idx].Clone()
	}
	return means
}

// plusPlusCenters は k-means++ で初期中心を選ぶ
func plusPlusCenters(points []linalg.Vector, k int, rng *rand.Rand) []linalg.Vector {
	means := make([]linalg.Vector, 0, k)
	means = append(means, points[rng.IntN(len(points))].Clone())

	d2 := make([]float64, len(points))
	for len(means) < k {
		total := 0.0
		for i, p := range points {
			d2[i], _ = linalg.SquaredDistance(p, means[nearest(p, means)])
			total += d2[i]
		}
		// 全標本が既存の中心と重なる場合は一様に選ぶ
		if total == 0 {
			means = append(means, points[rng.IntN(len(points))].Clone())
			continue
		}

		target := rng.Float64() * total
		chosen := len(points) - 1
		cum := 0.0
		for i, d := range d2 {
			cum += d
			if cum > target {
				chosen = i
				break
			}
		}
		means = append(means, points[chosen].Clone())
	}
	return means
}

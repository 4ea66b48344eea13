package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scistat/linalg"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

var blobCenters = []linalg.Vector{{0, 0}, {20, 20}, {-20, 20}}

// blobs は各中心の周りに ±0.5 ずらした 4 点を置いたデータ
// 各ブロブの平均は中心と一致し、ブロブ内の距離の二乗和は 1
func blobs() *mat.Dense {
	offsets := []linalg.Vector{{0.5, 0}, {-0.5, 0}, {0, 0.5}, {0, -0.5}}
	X := mat.NewDense(len(blobCenters)*len(offsets), 2, nil)
	row := 0
	for _, c := range blobCenters {
		for _, o := range offsets {
			X.Set(row, 0, c[0]+o[0])
			X.Set(row, 1, c[1]+o[1])
			row++
		}
	}
	return X
}

func TestKMeans_FindsBlobs(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42} {
		m := NewKMeans(3, WithInit(InitKMeansPlusPlus), WithRandomState(seed))
		require.NoError(t, m.Fit(blobs()))

		assert.True(t, m.Converged)
		assert.Nil(t, m.Warning())
		assert.InDelta(t, 3.0, m.Inertia, 1e-9)
		require.Len(t, m.Means, 3)

		// 各ブロブの 4 点は同じクラスタ、異なるブロブは異なるクラスタ
		seen := map[int]bool{}
		for b := range blobCenters {
			label := m.Labels[4*b]
			for i := 1; i < 4; i++ {
				assert.Equal(t, label, m.Labels[4*b+i])
			}
			assert.False(t, seen[label])
			seen[label] = true
			assert.InDeltaSlice(t, blobCenters[b], m.Means[label], 1e-12)
		}
	}
}

func TestKMeans_RandomInit(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 6, 9})

	t.Run("one cluster is the mean", func(t *testing.T) {
		m := NewKMeans(1, WithRandomState(5))
		require.NoError(t, m.Fit(X))
		assert.Equal(t, linalg.Vector{4.5}, m.Means[0])
		assert.InDelta(t, 3.5*3.5+2.5*2.5+1.5*1.5+4.5*4.5, m.Inertia, 1e-12)
		assert.Equal(t, []int{0, 0, 0, 0}, m.Labels)
		assert.True(t, m.Converged)
		assert.Equal(t, 2, m.Iterations)
	})

	t.Run("one cluster per sample", func(t *testing.T) {
		m := NewKMeans(4, WithRandomState(5))
		require.NoError(t, m.Fit(X))
		assert.Equal(t, 0.0, m.Inertia)
		assert.True(t, m.Converged)
		assert.ElementsMatch(t, []int{0, 1, 2, 3}, m.Labels)
	})
}

func TestKMeans_Reproducible(t *testing.T) {
	a := NewKMeans(2, WithRandomState(11))
	b := NewKMeans(2, WithRandomState(11))
	require.NoError(t, a.Fit(blobs()))
	require.NoError(t, b.Fit(blobs()))
	assert.Equal(t, a.Means, b.Means)
	assert.Equal(t, a.Labels, b.Labels)
}

func TestKMeans_IterationCap(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelInfo)

	m := NewKMeans(3, WithInit(InitKMeansPlusPlus), WithRandomState(0), WithMaxIterations(1), WithLogger(logger))
	require.NoError(t, m.Fit(blobs()))

	assert.False(t, m.Converged)
	assert.Equal(t, 1, m.Iterations)
	require.NotNil(t, m.Warning())
	assert.Equal(t, "KMeans", m.Warning().Algorithm)
	assert.True(t, logger.ContainsMessage("k-means did not converge"))
	assert.True(t, logger.ContainsField(log.ModelNameKey, "KMeans"))
}

func TestKMeans_PredictAndTransform(t *testing.T) {
	X := blobs()
	m := NewKMeans(3, WithInit(InitKMeansPlusPlus), WithRandomState(3))
	labels, err := m.FitPredict(X)
	require.NoError(t, err)

	pred, err := m.Predict(X)
	require.NoError(t, err)
	assert.True(t, mat.Equal(labels, pred))

	got, err := m.Classify(linalg.Vector{19, 21})
	require.NoError(t, err)
	want, err := m.Classify(linalg.Vector{20, 20})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	dist, err := m.Transform(X)
	require.NoError(t, err)
	r, c := dist.Dims()
	assert.Equal(t, 12, r)
	assert.Equal(t, 3, c)
	for i := 0; i < r; i++ {
		assert.InDelta(t, 0.5, dist.At(i, m.Labels[i]), 1e-12)
	}
}

func TestKMeans_ClassifyTieGoesToFirstCenter(t *testing.T) {
	m := NewKMeans(2, WithRandomState(0))
	require.NoError(t, m.Fit(mat.NewDense(2, 1, []float64{0, 2})))

	label, err := m.Classify(linalg.Vector{1})
	require.NoError(t, err)
	assert.Equal(t, 0, label)
}

func TestSquaredClusteringErrors(t *testing.T) {
	X := blobs()
	one, err := SquaredClusteringErrors(X, 1)
	require.NoError(t, err)
	three, err := SquaredClusteringErrors(X, 3, WithInit(InitKMeansPlusPlus), WithRandomState(7))
	require.NoError(t, err)

	assert.InDelta(t, 3.0, three, 1e-9)
	assert.Greater(t, one, 100*three)
}

func TestKMeans_Errors(t *testing.T) {
	X := blobs()

	t.Run("invalid parameters", func(t *testing.T) {
		for _, m := range []*KMeans{
			NewKMeans(0),
			NewKMeans(13),
			NewKMeans(2, WithInit("first")),
			NewKMeans(2, WithMaxIterations(0)),
		} {
			var valErr *errors.ValidationError
			assert.True(t, errors.As(m.Fit(X), &valErr))
		}
	})

	t.Run("empty data", func(t *testing.T) {
		err := NewKMeans(1).Fit(&mat.Dense{})
		assert.True(t, errors.Is(err, errors.ErrEmptyData))
	})

	t.Run("not fitted", func(t *testing.T) {
		_, err := NewKMeans(2).Predict(X)
		var nfe *errors.NotFittedError
		assert.True(t, errors.As(err, &nfe))
	})

	t.Run("feature mismatch", func(t *testing.T) {
		m := NewKMeans(2, WithRandomState(1))
		require.NoError(t, m.Fit(X))

		_, err := m.Predict(mat.NewDense(1, 3, nil))
		var dimErr *errors.DimensionError
		assert.True(t, errors.As(err, &dimErr))

		_, err = m.Classify(linalg.Vector{1})
		assert.True(t, errors.As(err, &dimErr))
	})
}

package kmeans_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/symnmf/dataset"
	"github.com/katalvlaran/symnmf/kmeans"
	"github.com/katalvlaran/symnmf/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDataset(t *testing.T, pts ...dataset.Point) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(pts)
	require.NoError(t, err)

	return ds
}

func row(t *testing.T, m *matrix.Dense, i int) []float64 {
	t.Helper()
	r, err := m.Row(i)
	require.NoError(t, err)

	return r
}

func TestClusterTwoGroups(t *testing.T) {
	ds := mustDataset(t, dataset.Point{0, 0}, dataset.Point{0, 1}, dataset.Point{5, 5}, dataset.Point{5, 6})

	centroids, res, err := kmeans.Cluster(context.Background(), ds, 2)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)

	r, c := centroids.Shape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, []float64{0, 0.5}, row(t, centroids, 0))
	assert.Equal(t, []float64{5, 5.5}, row(t, centroids, 1))

	labels, err := kmeans.Labels(context.Background(), ds, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1}, labels)
}

func TestClusterDoesNotAliasDataset(t *testing.T) {
	ds := mustDataset(t, dataset.Point{0, 0}, dataset.Point{0, 1}, dataset.Point{5, 5}, dataset.Point{5, 6})

	_, _, err := kmeans.Cluster(context.Background(), ds, 2, kmeans.WithMaxIter(1))
	require.NoError(t, err)
	assert.Equal(t, dataset.Point{0, 0}, ds.At(0))
	assert.Equal(t, dataset.Point{0, 1}, ds.At(1))
}

func TestClusterIterationCap(t *testing.T) {
	ds := mustDataset(t, dataset.Point{0, 0}, dataset.Point{0, 1}, dataset.Point{5, 5}, dataset.Point{5, 6})

	_, res, err := kmeans.Cluster(context.Background(), ds, 2, kmeans.WithMaxIter(1))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)
	assert.False(t, res.Converged)
}

func TestClampMaxIter(t *testing.T) {
	assert.Equal(t, kmeans.DefaultMaxIter, kmeans.ClampMaxIter(0))
	assert.Equal(t, kmeans.DefaultMaxIter, kmeans.ClampMaxIter(-5))
	assert.Equal(t, 200, kmeans.ClampMaxIter(200))
	assert.Equal(t, kmeans.MaxIterCeiling, kmeans.ClampMaxIter(5000))
}

func TestClusterEmptyCluster(t *testing.T) {
	// Two identical first points: every point ties to centroid 0.
	ds := mustDataset(t, dataset.Point{0, 0}, dataset.Point{0, 0}, dataset.Point{3, 3})

	_, _, err := kmeans.Cluster(context.Background(), ds, 2)
	assert.ErrorIs(t, err, kmeans.ErrEmptyCluster)
}

func TestClusterErrors(t *testing.T) {
	ctx := context.Background()
	ds := mustDataset(t, dataset.Point{0}, dataset.Point{1}, dataset.Point{2})

	_, _, err := kmeans.Cluster(ctx, ds, 1)
	assert.ErrorIs(t, err, dataset.ErrInvalidRank)
	_, _, err = kmeans.Cluster(ctx, ds, 3)
	assert.ErrorIs(t, err, dataset.ErrInvalidRank)
	_, err = kmeans.Labels(ctx, nil, 2)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = kmeans.Cluster(cancelled, ds, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssignTiesToLowestIndex(t *testing.T) {
	centroids, err := matrix.NewDenseFrom(3, 1, []float64{-1, 1, 1})
	require.NoError(t, err)

	assert.Equal(t, 0, kmeans.Assign(dataset.Point{0}, centroids))
	assert.Equal(t, 1, kmeans.Assign(dataset.Point{2}, centroids))
	assert.Equal(t, 0, kmeans.Assign(dataset.Point{-4}, centroids))
}

func TestLabelsRange(t *testing.T) {
	pts := make([]dataset.Point, 0, 30)
	for i := 0; i < 30; i++ {
		pts = append(pts, dataset.Point{float64(i % 7), float64(i % 5), float64(i % 3)})
	}
	ds := mustDataset(t, pts...)

	labels, err := kmeans.Labels(context.Background(), ds, 3, kmeans.WithMaxIter(200))
	require.NoError(t, err)
	require.Len(t, labels, 30)
	for _, l := range labels {
		assert.GreaterOrEqual(t, l, 0)
		assert.Less(t, l, 3)
	}
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { kmeans.WithEpsilon(0) })
	assert.Panics(t, func() { kmeans.WithLogger(nil) })
}

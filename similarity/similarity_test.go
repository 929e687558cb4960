package similarity_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/symnmf/dataset"
	"github.com/katalvlaran/symnmf/matrix"
	"github.com/katalvlaran/symnmf/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDataset(t *testing.T, pts ...dataset.Point) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(pts)
	require.NoError(t, err)

	return ds
}

func at(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

func TestSimilarityValues(t *testing.T) {
	ds := mustDataset(t, dataset.Point{0, 0}, dataset.Point{0, 1}, dataset.Point{1, 1})
	w, err := similarity.Similarity(ds)
	require.NoError(t, err)

	assert.InDelta(t, math.Exp(-0.5), at(t, w, 0, 1), 1e-15)
	assert.InDelta(t, math.Exp(-1), at(t, w, 0, 2), 1e-15)
	assert.InDelta(t, math.Exp(-0.5), at(t, w, 1, 2), 1e-15)
}

func TestSimilaritySymmetricZeroDiagonal(t *testing.T) {
	ds := mustDataset(t,
		dataset.Point{0.3, -1.2, 4},
		dataset.Point{2, 2, 2},
		dataset.Point{-0.7, 0.1, 3.9},
		dataset.Point{1, 0, 0},
		dataset.Point{0.3, -1.2, 4.1},
	)
	w, err := similarity.Similarity(ds)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSymmetric(w, 0)) // exact symmetry

	for i := 0; i < ds.Len(); i++ {
		assert.Zero(t, at(t, w, i, i))
		for j := 0; j < ds.Len(); j++ {
			assert.GreaterOrEqual(t, at(t, w, i, j), 0.0)
		}
	}
}

func TestIdenticalPoints(t *testing.T) {
	ds := mustDataset(t,
		dataset.Point{1, 1}, dataset.Point{1, 1}, dataset.Point{1, 1}, dataset.Point{1, 1},
	)

	w, err := similarity.Similarity(ds)
	require.NoError(t, err)
	d, err := similarity.Degree(ds)
	require.NoError(t, err)
	a, err := similarity.Normalize(ds)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				assert.Zero(t, at(t, w, i, j))
				assert.Equal(t, 3.0, at(t, d, i, j))
				assert.Zero(t, at(t, a, i, j))
				continue
			}
			assert.Equal(t, 1.0, at(t, w, i, j))
			assert.Zero(t, at(t, d, i, j))
			assert.InDelta(t, 1.0/3.0, at(t, a, i, j), 1e-15)
		}
	}
}

func TestNormalizeSymmetricZeroDiagonal(t *testing.T) {
	ds := mustDataset(t,
		dataset.Point{0, 0}, dataset.Point{0, 1}, dataset.Point{2, 1}, dataset.Point{1.5, -0.5},
	)
	a, err := similarity.Normalize(ds)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSymmetric(a, 0))
	require.NoError(t, matrix.ValidateNonNegative(a))
	for i := 0; i < ds.Len(); i++ {
		assert.Zero(t, at(t, a, i, i))
	}

	// Matches the explicit D^(-1/2)·W·D^(-1/2) product.
	w, err := similarity.Similarity(ds)
	require.NoError(t, err)
	d, err := similarity.DegreeOf(w)
	require.NoError(t, err)
	inv := make([]float64, ds.Len())
	for i := range inv {
		inv[i] = 1 / math.Sqrt(at(t, d, i, i))
	}
	dInv, err := matrix.NewDiagonal(inv)
	require.NoError(t, err)
	left, err := matrix.Mul(dInv, w)
	require.NoError(t, err)
	want, err := matrix.Mul(left, dInv)
	require.NoError(t, err)
	dist, err := matrix.FrobeniusDistSq(a, want)
	require.NoError(t, err)
	assert.Less(t, dist, 1e-24)
}

func TestNormalizeDegenerate(t *testing.T) {
	// exp(-‖Δ‖²/2) underflows to exactly 0 for the far point.
	ds := mustDataset(t, dataset.Point{0, 0}, dataset.Point{0, 1}, dataset.Point{1000, 1000})

	d, err := similarity.Degree(ds)
	require.NoError(t, err)
	assert.Zero(t, at(t, d, 2, 2))

	_, err = similarity.Normalize(ds)
	assert.ErrorIs(t, err, similarity.ErrDegenerateAffinity)

	single := mustDataset(t, dataset.Point{3, 3})
	_, err = similarity.Normalize(single)
	assert.ErrorIs(t, err, similarity.ErrDegenerateAffinity)
}

func TestShapeErrors(t *testing.T) {
	_, err := similarity.Similarity(nil)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = similarity.DegreeOf(rect)
	assert.ErrorIs(t, err, matrix.ErrNonSquare)

	sq, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	big, err := matrix.NewDense(3, 3)
	require.NoError(t, err)
	_, err = similarity.NormalizeFrom(sq, big)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

package pipeline_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/symnmf/config"
	"github.com/katalvlaran/symnmf/dataset"
	"github.com/katalvlaran/symnmf/pipeline"
	"github.com/katalvlaran/symnmf/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func blobs(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New([]dataset.Point{
		{0, 0}, {0, 0.2}, {0.2, 0},
		{4, 4}, {4, 4.2}, {4.2, 4},
	})
	require.NoError(t, err)

	return ds
}

func TestParseGoal(t *testing.T) {
	for _, g := range []pipeline.Goal{pipeline.GoalSym, pipeline.GoalDDG, pipeline.GoalNorm, pipeline.GoalSymNMF} {
		got, err := pipeline.ParseGoal(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, got)
	}

	_, err := pipeline.ParseGoal("SYM")
	assert.ErrorIs(t, err, pipeline.ErrUnknownGoal)
	_, err = pipeline.ParseGoal("")
	assert.ErrorIs(t, err, pipeline.ErrUnknownGoal)
	assert.Equal(t, "Goal(9)", pipeline.Goal(9).String())
}

func TestRunShapes(t *testing.T) {
	ds := blobs(t)
	ctx := context.Background()
	cfg := config.Default()

	cases := []struct {
		goal       pipeline.Goal
		k          int
		rows, cols int
	}{
		{pipeline.GoalSym, 0, 6, 6},
		{pipeline.GoalDDG, 0, 6, 6},
		{pipeline.GoalNorm, 3, 6, 6},
		{pipeline.GoalSymNMF, 2, 6, 2},
	}
	for _, tc := range cases {
		t.Run(tc.goal.String(), func(t *testing.T) {
			m, err := pipeline.Run(ctx, tc.goal, ds, tc.k, cfg, zaptest.NewLogger(t))
			require.NoError(t, err)
			r, c := m.Shape()
			assert.Equal(t, tc.rows, r)
			assert.Equal(t, tc.cols, c)
		})
	}
}

func TestRunMatchesEngines(t *testing.T) {
	ds := blobs(t)
	want, err := similarity.Normalize(ds)
	require.NoError(t, err)

	got, err := pipeline.Run(context.Background(), pipeline.GoalNorm, ds, 0, config.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, want.String(), got.String())
}

func TestRunRank(t *testing.T) {
	ds := blobs(t)
	ctx := context.Background()
	cfg := config.Default()

	_, err := pipeline.Run(ctx, pipeline.GoalSym, ds, 6, cfg, nil)
	assert.ErrorIs(t, err, dataset.ErrInvalidRank)
	_, err = pipeline.Run(ctx, pipeline.GoalDDG, ds, -1, cfg, nil)
	assert.ErrorIs(t, err, dataset.ErrInvalidRank)
	_, err = pipeline.Run(ctx, pipeline.GoalSymNMF, ds, 1, cfg, nil)
	assert.ErrorIs(t, err, dataset.ErrInvalidRank)
	_, err = pipeline.Run(ctx, pipeline.Goal(7), ds, 1, cfg, nil)
	assert.ErrorIs(t, err, pipeline.ErrUnknownGoal)
	_, err = pipeline.Run(ctx, pipeline.GoalSym, nil, 1, cfg, nil)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)
}

func TestRunSymNMFParallelConfig(t *testing.T) {
	ds := blobs(t)
	cfg := config.Default()
	serial, err := pipeline.Run(context.Background(), pipeline.GoalSymNMF, ds, 2, cfg, nil)
	require.NoError(t, err)

	cfg.Runtime.Workers = 4
	parallel, err := pipeline.Run(context.Background(), pipeline.GoalSymNMF, ds, 2, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, serial.String(), parallel.String())
}

func TestCompare(t *testing.T) {
	cmp, err := pipeline.Compare(context.Background(), blobs(t), 2, config.Default(), zaptest.NewLogger(t))
	require.NoError(t, err)

	// Both engines recover the same two groups.
	assert.Greater(t, cmp.NMF, 0.8)
	assert.LessOrEqual(t, cmp.NMF, 1.0)
	assert.InDelta(t, cmp.NMF, cmp.KMeans, 1e-12)
}

func TestCompareErrors(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()

	_, err := pipeline.Compare(ctx, blobs(t), 1, cfg, nil)
	assert.ErrorIs(t, err, dataset.ErrInvalidRank)

	far, err := dataset.New([]dataset.Point{{0, 0}, {0, 1}, {1, 0}, {1000, 1000}})
	require.NoError(t, err)
	_, err = pipeline.Compare(ctx, far, 2, cfg, nil)
	assert.ErrorIs(t, err, similarity.ErrDegenerateAffinity)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = pipeline.Compare(cancelled, blobs(t), 2, cfg, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

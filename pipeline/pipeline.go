// SPDX-License-Identifier: MIT

// Package pipeline wires the dataset, the engines and the scorer together
// for the command line tools.
//
//   - Run produces one of the goal matrices (W, D, A or H) for a dataset.
//   - Compare clusters a dataset with SymNMF and k-means concurrently and
//     scores both label sets with the silhouette coefficient.
//
// Engine settings come from a config.Config; every engine run is recorded
// in the metrics package.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/symnmf/config"
	"github.com/katalvlaran/symnmf/dataset"
	"github.com/katalvlaran/symnmf/kmeans"
	"github.com/katalvlaran/symnmf/matrix"
	"github.com/katalvlaran/symnmf/metrics"
	"github.com/katalvlaran/symnmf/silhouette"
	"github.com/katalvlaran/symnmf/similarity"
	"github.com/katalvlaran/symnmf/symnmf"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Comparison holds the silhouette score of each engine.
type Comparison struct {
	NMF    float64
	KMeans float64
}

// Run computes the matrix selected by goal.
// All goals require 0 ≤ k < n; GoalSymNMF also requires k ≥ 2.
// log may be nil.
func Run(ctx context.Context, goal Goal, ds *dataset.Dataset, k int, cfg config.Config, log *zap.Logger) (*matrix.Dense, error) {
	if ds == nil {
		return nil, dataset.ErrEmptyDataset
	}
	minK := 0
	if goal == GoalSymNMF {
		minK = 2
	}
	if err := ds.ValidateRank(k, minK); err != nil {
		return nil, fmt.Errorf("Run %s: %w", goal, err)
	}
	log = orNop(log)

	var (
		m   *matrix.Dense
		err error
	)
	switch goal {
	case GoalSym:
		m, err = similarity.Similarity(ds)
	case GoalDDG:
		m, err = similarity.Degree(ds)
	case GoalNorm:
		m, err = similarity.Normalize(ds)
	case GoalSymNMF:
		m, _, err = factorize(ctx, ds, k, cfg, log)
	default:
		return nil, fmt.Errorf("Run %s: %w", goal, ErrUnknownGoal)
	}
	if err != nil {
		return nil, fmt.Errorf("Run %s: %w", goal, err)
	}

	return m, nil
}

// Compare clusters ds into k groups with both engines and scores them.
// The engines run concurrently and share only the read-only dataset; the
// first failure cancels the other run. Requires 2 ≤ k < n.
func Compare(ctx context.Context, ds *dataset.Dataset, k int, cfg config.Config, log *zap.Logger) (Comparison, error) {
	var cmp Comparison
	if ds == nil {
		return cmp, dataset.ErrEmptyDataset
	}
	if err := ds.ValidateRank(k, 2); err != nil {
		return cmp, fmt.Errorf("Compare: %w", err)
	}
	log = orNop(log)

	var nmfLabels, kmLabels []int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		H, _, err := factorize(gctx, ds, k, cfg, log)
		if err != nil {
			return err
		}
		nmfLabels, err = symnmf.LabelsOf(H)
		return err
	})
	g.Go(func() error {
		var err error
		kmLabels, err = clusterKMeans(gctx, ds, k, cfg, log)
		return err
	})
	if err := g.Wait(); err != nil {
		return cmp, fmt.Errorf("Compare: %w", err)
	}

	var err error
	if cmp.NMF, err = silhouette.Score(ds, nmfLabels); err != nil {
		return cmp, fmt.Errorf("Compare: %s: %w", metrics.EngineSymNMF, err)
	}
	if cmp.KMeans, err = silhouette.Score(ds, kmLabels); err != nil {
		return cmp, fmt.Errorf("Compare: %s: %w", metrics.EngineKMeans, err)
	}
	metrics.SilhouetteScore.WithLabelValues(metrics.EngineSymNMF).Set(cmp.NMF)
	metrics.SilhouetteScore.WithLabelValues(metrics.EngineKMeans).Set(cmp.KMeans)
	log.Info("comparison done",
		zap.Int("n", ds.Len()), zap.Int("k", k),
		zap.Float64("nmf", cmp.NMF), zap.Float64("kmeans", cmp.KMeans))

	return cmp, nil
}

// factorize builds A from ds and runs the factorization engine.
func factorize(ctx context.Context, ds *dataset.Dataset, k int, cfg config.Config, log *zap.Logger) (*matrix.Dense, symnmf.Result, error) {
	start := time.Now()
	A, err := similarity.Normalize(ds)
	if err != nil {
		metrics.ObserveRun(metrics.EngineSymNMF, 0, false, time.Since(start), err)
		return nil, symnmf.Result{}, err
	}
	H, res, err := symnmf.Factorize(ctx, A, k, SymNMFOptions(cfg, log)...)
	metrics.ObserveRun(metrics.EngineSymNMF, res.Iterations, res.Converged, time.Since(start), err)

	return H, res, err
}

// clusterKMeans runs k-means and labels every point with its final centroid.
func clusterKMeans(ctx context.Context, ds *dataset.Dataset, k int, cfg config.Config, log *zap.Logger) ([]int, error) {
	start := time.Now()
	centroids, res, err := kmeans.Cluster(ctx, ds, k, KMeansOptions(cfg, log)...)
	metrics.ObserveRun(metrics.EngineKMeans, res.Iterations, res.Converged, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	labels := make([]int, ds.Len())
	for i := range labels {
		labels[i] = kmeans.Assign(ds.At(i), centroids)
	}

	return labels, nil
}

// SymNMFOptions translates cfg into factorization options.
// cfg must have passed Validate.
func SymNMFOptions(cfg config.Config, log *zap.Logger) []symnmf.Option {
	return []symnmf.Option{
		symnmf.WithSeed(cfg.SymNMF.Seed),
		symnmf.WithMaxIter(cfg.SymNMF.MaxIter),
		symnmf.WithEpsilon(cfg.SymNMF.Epsilon),
		symnmf.WithDelta(cfg.SymNMF.Delta),
		symnmf.WithWorkers(cfg.Runtime.Workers),
		symnmf.WithLogger(orNop(log)),
	}
}

// KMeansOptions translates cfg into k-means options.
// cfg must have passed Validate.
func KMeansOptions(cfg config.Config, log *zap.Logger) []kmeans.Option {
	return []kmeans.Option{
		kmeans.WithMaxIter(cfg.KMeans.MaxIter),
		kmeans.WithEpsilon(cfg.KMeans.Epsilon),
		kmeans.WithLogger(orNop(log)),
	}
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}

	return log
}

// SPDX-License-Identifier: MIT
// Package: kmeans
//
// Purpose:
//   - Lloyd iterations on flat row-major buffers: centroids live in a k×d
//     *matrix.Dense, per-cluster sums in a flat []float64.

package kmeans

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/symnmf/dataset"
	"github.com/katalvlaran/symnmf/matrix"
	"go.uber.org/zap"
)

// ErrEmptyCluster indicates a centroid that received no points in an update step.
var ErrEmptyCluster = errors.New("kmeans: empty cluster")

// Result reports how a Cluster run ended.
type Result struct {
	Iterations int  // assignment/update passes performed
	Converged  bool // every centroid moved less than ε in the last pass
}

// Cluster runs k-means on ds and returns the k×d centroid matrix.
// MAIN DESCRIPTION:
//   - Centroids are initialized with copies of points 0..k-1; ds is never aliased.
//
// Implementation:
//   - Stage 1: assignment, nearest centroid per point (ties to lowest index),
//     accumulating sums and counts.
//   - Stage 2: means; a zero count fails with ErrEmptyCluster.
//   - Stage 3: movement check against ε; swap buffers.
//
// Complexity:
//   - Time O(iters·n·k·d), Space O(k·d).
func Cluster(ctx context.Context, ds *dataset.Dataset, k int, opts ...Option) (*matrix.Dense, Result, error) {
	o := collect(opts)
	var res Result

	if ds == nil {
		return nil, res, dataset.ErrEmptyDataset
	}
	if err := ds.ValidateRank(k, 2); err != nil {
		return nil, res, fmt.Errorf("Cluster: %w", err)
	}
	n, d := ds.Len(), ds.Dim()

	centroids, err := matrix.NewDense(k, d)
	if err != nil {
		return nil, res, fmt.Errorf("Cluster: %w", err)
	}
	next, err := matrix.NewDense(k, d)
	if err != nil {
		return nil, res, fmt.Errorf("Cluster: %w", err)
	}
	var row []float64
	for c := 0; c < k; c++ {
		if row, err = centroids.Row(c); err != nil {
			return nil, res, fmt.Errorf("Cluster: %w", err)
		}
		copy(row, ds.At(c))
	}

	o.logger.Debug("kmeans: cluster start",
		zap.Int("n", n), zap.Int("d", d), zap.Int("k", k), zap.Int("max_iter", o.maxIter))

	counts := make([]int, k)
	var (
		i, c, best int
		p          dataset.Point
		cur, prev  []float64
		moved      bool
	)
	for res.Iterations < o.maxIter {
		if err = ctx.Err(); err != nil {
			return nil, res, err
		}
		res.Iterations++

		// Stage 1: assign and accumulate into next.
		for c = range counts {
			counts[c] = 0
		}
		for c = 0; c < k; c++ {
			if row, err = next.Row(c); err != nil {
				return nil, res, fmt.Errorf("Cluster: %w", err)
			}
			for j := range row {
				row[j] = 0
			}
		}
		for i = 0; i < n; i++ {
			p = ds.At(i)
			best = Assign(p, centroids)
			counts[best]++
			if row, err = next.Row(best); err != nil {
				return nil, res, fmt.Errorf("Cluster: %w", err)
			}
			for j, v := range p {
				row[j] += v
			}
		}

		// Stage 2 and 3: means, then movement.
		moved = false
		for c = 0; c < k; c++ {
			if counts[c] == 0 {
				return nil, res, fmt.Errorf("Cluster: iteration %d cluster %d: %w", res.Iterations, c, ErrEmptyCluster)
			}
			if cur, err = next.Row(c); err != nil {
				return nil, res, fmt.Errorf("Cluster: %w", err)
			}
			for j := range cur {
				cur[j] /= float64(counts[c])
			}
			if prev, err = centroids.Row(c); err != nil {
				return nil, res, fmt.Errorf("Cluster: %w", err)
			}
			if dataset.Dist(cur, prev) >= o.eps {
				moved = true
			}
		}
		centroids, next = next, centroids
		if !moved {
			res.Converged = true
			break
		}
	}

	o.logger.Debug("kmeans: cluster done",
		zap.Int("iterations", res.Iterations), zap.Bool("converged", res.Converged))

	return centroids, res, nil
}

// Assign returns the index of the centroid row nearest to p.
// Ties resolve to the lowest index. p must have centroids.Cols() coordinates.
func Assign(p dataset.Point, centroids *matrix.Dense) int {
	best := 0
	var bestDist float64
	for c := 0; c < centroids.Rows(); c++ {
		row, err := centroids.Row(c)
		if err != nil {
			panic(err)
		}
		dist := dataset.Dist(p, row)
		if c == 0 || dist < bestDist {
			best, bestDist = c, dist
		}
	}

	return best
}

// Labels runs Cluster and labels each point with its nearest final centroid.
func Labels(ctx context.Context, ds *dataset.Dataset, k int, opts ...Option) ([]int, error) {
	centroids, _, err := Cluster(ctx, ds, k, opts...)
	if err != nil {
		return nil, fmt.Errorf("Labels: %w", err)
	}
	labels := make([]int, ds.Len())
	for i := range labels {
		labels[i] = Assign(ds.At(i), centroids)
	}

	return labels, nil
}

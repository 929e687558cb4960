// Package silhouette scores a label assignment with the mean silhouette
// coefficient under Euclidean distance.
//
// For point i in cluster C:
//
//	a(i) = mean distance from i to the other members of C
//	b(i) = min over clusters C' ≠ C of the mean distance from i to C'
//	s(i) = (b(i) − a(i)) / max(a(i), b(i))
//
// A point alone in its cluster scores 0, as does a point with a(i) = b(i) = 0.
// The score is the mean of s(i) and lies in [−1, 1].
package silhouette

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/symnmf/dataset"
)

// ErrClusterCount indicates fewer than 2 or more than n−1 distinct labels.
var ErrClusterCount = errors.New("silhouette: number of labels must be in [2, n-1]")

// Score returns the mean silhouette coefficient of labels over ds.
// Labels are arbitrary ints; only equality matters.
//
// Complexity: O(n²·d) time, O(n·c) space for c distinct labels.
func Score(ds *dataset.Dataset, labels []int) (float64, error) {
	if ds == nil {
		return 0, dataset.ErrEmptyDataset
	}
	n := ds.Len()
	if len(labels) != n {
		return 0, fmt.Errorf("Score: %d labels for %d points: %w", len(labels), n, dataset.ErrDimensionMismatch)
	}

	// Dense cluster ids in first-seen order.
	ids := make(map[int]int)
	cluster := make([]int, n)
	var sizes []int
	for i, l := range labels {
		id, ok := ids[l]
		if !ok {
			id = len(sizes)
			ids[l] = id
			sizes = append(sizes, 0)
		}
		cluster[i] = id
		sizes[id]++
	}
	c := len(sizes)
	if c < 2 || c > n-1 {
		return 0, fmt.Errorf("Score: %d distinct labels for %d points: %w", c, n, ErrClusterCount)
	}

	// sums[i*c+id] = Σ dist(i, j) over j in cluster id.
	sums := make([]float64, n*c)
	var dist float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist = dataset.Dist(ds.At(i), ds.At(j))
			sums[i*c+cluster[j]] += dist
			sums[j*c+cluster[i]] += dist
		}
	}

	var total float64
	for i := 0; i < n; i++ {
		own := cluster[i]
		if sizes[own] == 1 {
			continue
		}
		a := sums[i*c+own] / float64(sizes[own]-1)
		b := math.Inf(1)
		for id := 0; id < c; id++ {
			if id == own {
				continue
			}
			if m := sums[i*c+id] / float64(sizes[id]); m < b {
				b = m
			}
		}
		if den := math.Max(a, b); den > 0 {
			total += (b - a) / den
		}
	}

	return total / float64(n), nil
}

// SPDX-License-Identifier: MIT

// Package kmeans implements Lloyd's k-means over a dataset.Dataset.
//
// Algorithm:
//   - Centroids start as copies of the first k points.
//   - Each iteration assigns every point to its nearest centroid (first
//     minimum wins), then replaces each centroid by the mean of its points.
//   - The loop stops once every centroid moved less than ε, or after the
//     iteration cap.
//
// Iteration cap policy (WithMaxIter):
//   - n ≤ 0   ⇒ DefaultMaxIter (300)
//   - n > 1000 ⇒ clamped to MaxIterCeiling (1000)
//
// Errors:
//   - dataset.ErrInvalidRank - k outside 2 ≤ k < n.
//   - ErrEmptyCluster        - a centroid received no points during an update.
//   - ctx.Err()              - cancellation, checked once per iteration.
package kmeans

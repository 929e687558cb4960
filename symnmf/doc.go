// SPDX-License-Identifier: MIT

// Package symnmf factorizes a nonnegative symmetric affinity matrix A ≈ H·Hᵀ
// with multiplicative updates and derives cluster labels from H.
//
// Pipeline:
//
//	points → similarity.Normalize → A (n×n) → Init → H₀ (n×k) → Update* → H → ArgMaxRows → labels
//
// Update rule (one step, δ > 0 keeps the denominator positive):
//
//	H ← H ⊙ (A·H) ⊘ (H·(HᵀH) + δ)
//
// H·Hᵀ·H is evaluated as H·(HᵀH), which costs O(n·k²) instead of O(n²·k).
// Iteration stops when ‖H_new − H_old‖²_F < ε or after the iteration cap.
//
// Determinism:
//   - Init draws from an injected *rand.Rand in row-major order; the default
//     stream is NewRand(DefaultSeed).
//   - WithWorkers(w > 1) routes the two n-row products through matrix.RowPool,
//     which yields bit-identical results to the serial path.
//
// Errors:
//   - dataset.ErrInvalidRank   - k outside 1 ≤ k < n (Factorize) or 2 ≤ k < n (Labels).
//   - ErrNegativeEntry         - A has a negative entry.
//   - matrix.ErrNonSquare, matrix.ErrDimensionMismatch, matrix.ErrNaNInf - shape/numeric faults.
//   - ctx.Err()                - cancellation, checked once per iteration.
package symnmf

// SPDX-License-Identifier: MIT
// Package: symnmf
//
// Purpose:
//   - Init, Update and the Factorize loop over flat *matrix.Dense buffers.
//
// Determinism:
//   - Fixed row-major draw order in Init; fixed loop orders in every product.

package symnmf

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/symnmf/dataset"
	"github.com/katalvlaran/symnmf/matrix"
	"go.uber.org/zap"
)

// ErrNegativeEntry indicates a negative entry in the affinity matrix.
var ErrNegativeEntry = errors.New("symnmf: negative entry in affinity matrix")

const (
	opInit      = "Init"
	opUpdate    = "Update"
	opFactorize = "Factorize"
	opObjective = "Objective"
)

// SymmetryTolerance bounds |A[i][j] − A[j][i]| for an acceptable affinity matrix.
const SymmetryTolerance = 1e-12

// Result reports how a Factorize run ended.
type Result struct {
	Iterations int     // update steps performed
	Converged  bool    // last change fell below ε
	Change     float64 // ‖H_new − H_old‖²_F of the last step
	Objective  float64 // ‖A − H·Hᵀ‖²_F of the returned H
}

// Init returns the initial n×k factor H₀ for the affinity matrix A.
// MAIN DESCRIPTION:
//   - bound = 2·√(mean(A)/k); H₀[i][j] = rng.Float64()·bound, drawn row by row.
//   - rng == nil uses NewRand(DefaultSeed).
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare, dataset.ErrInvalidRank (k < 1),
//     ErrNegativeEntry (negative mean).
//
// Complexity:
//   - Time O(n² + n·k), Space O(n·k).
func Init(A matrix.Matrix, k int, rng *rand.Rand) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(A); err != nil {
		return nil, fmt.Errorf("%s: %w", opInit, err)
	}
	if k < 1 {
		return nil, fmt.Errorf("%s: k=%d: %w", opInit, k, dataset.ErrInvalidRank)
	}
	avg, err := matrix.Mean(A)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInit, err)
	}
	if avg < 0 {
		return nil, fmt.Errorf("%s: mean %g: %w", opInit, avg, ErrNegativeEntry)
	}
	if rng == nil {
		rng = NewRand(DefaultSeed)
	}

	n := A.Rows()
	H, err := matrix.NewDense(n, k)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInit, err)
	}
	bound := 2 * math.Sqrt(avg/float64(k))
	// Apply walks row-major, which fixes the draw order.
	if err = H.Apply(func(_, _ int, _ float64) float64 { return rng.Float64() * bound }); err != nil {
		return nil, fmt.Errorf("%s: %w", opInit, err)
	}

	return H, nil
}

// Update performs one multiplicative step and returns a fresh matrix:
//
//	H_new = H ⊙ (A·H) ⊘ (H·(HᵀH) + δ)
//
// H is not mutated. pool == nil runs the products serially.
//
// Implementation:
//   - Stage 1: AH = A·H (n×k), the dominant O(n²·k) product.
//   - Stage 2: G = HᵀH (k×k) in one pass over H, then HG = H·G (n×k).
//   - Stage 3: fused MulRatio(H, AH, HG, δ).
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrDimensionMismatch,
//     matrix.ErrNaNInf (δ not finite and > 0, or overflow).
func Update(A, H *matrix.Dense, delta float64, pool *matrix.RowPool) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(A); err != nil {
		return nil, fmt.Errorf("%s: %w", opUpdate, err)
	}
	AH, err := mul(pool, A, H)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opUpdate, err)
	}
	G, err := matrix.MulTransA(H, H)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opUpdate, err)
	}
	HG, err := mul(pool, H, G)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opUpdate, err)
	}
	out, err := matrix.MulRatio(H, AH, HG, delta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opUpdate, err)
	}

	return out, nil
}

func mul(pool *matrix.RowPool, a, b *matrix.Dense) (*matrix.Dense, error) {
	if pool == nil {
		return matrix.Mul(a, b)
	}

	return pool.Mul(a, b)
}

// Factorize runs Init then Update until ‖H_new − H_old‖²_F < ε or the
// iteration cap is reached, and returns the final H.
// MAIN DESCRIPTION:
//   - A must be square, symmetric within SymmetryTolerance and nonnegative; 1 ≤ k < n.
//   - Defaults: seed DefaultSeed, cap DefaultMaxIter, ε DefaultEpsilon, δ DefaultDelta.
//
// Errors:
//   - dataset.ErrInvalidRank, matrix.ErrAsymmetry, ErrNegativeEntry, matrix
//     sentinels from the kernels, ctx.Err() on cancellation.
//
// Complexity:
//   - Time O(iters·(n²·k + n·k²)), Space O(n·k) besides A.
func Factorize(ctx context.Context, A *matrix.Dense, k int, opts ...Option) (*matrix.Dense, Result, error) {
	o := collect(opts)
	var res Result

	if err := matrix.ValidateSquare(A); err != nil {
		return nil, res, fmt.Errorf("%s: %w", opFactorize, err)
	}
	n := A.Rows()
	if k < 1 || k >= n {
		return nil, res, fmt.Errorf("%s: k=%d with n=%d: %w", opFactorize, k, n, dataset.ErrInvalidRank)
	}
	if err := matrix.ValidateSymmetric(A, SymmetryTolerance); err != nil {
		return nil, res, fmt.Errorf("%s: %w", opFactorize, err)
	}
	if err := matrix.ValidateNonNegative(A); err != nil {
		if errors.Is(err, matrix.ErrNegative) {
			return nil, res, fmt.Errorf("%s: %w: %w", opFactorize, ErrNegativeEntry, err)
		}
		return nil, res, fmt.Errorf("%s: %w", opFactorize, err)
	}

	H, err := Init(A, k, o.random())
	if err != nil {
		return nil, res, fmt.Errorf("%s: %w", opFactorize, err)
	}

	var pool *matrix.RowPool
	if o.workers > 1 {
		if pool, err = matrix.NewRowPool(o.workers); err != nil {
			return nil, res, fmt.Errorf("%s: %w", opFactorize, err)
		}
		defer pool.Release()
	}

	o.logger.Debug("symnmf: factorize start",
		zap.Int("n", n), zap.Int("k", k),
		zap.Int("max_iter", o.maxIter), zap.Int("workers", o.workers))

	var next *matrix.Dense
	for res.Iterations < o.maxIter {
		if err = ctx.Err(); err != nil {
			return nil, res, err
		}
		if next, err = Update(A, H, o.delta, pool); err != nil {
			return nil, res, fmt.Errorf("%s: iteration %d: %w", opFactorize, res.Iterations+1, err)
		}
		res.Iterations++
		if res.Change, err = matrix.FrobeniusDistSq(next, H); err != nil {
			return nil, res, fmt.Errorf("%s: %w", opFactorize, err)
		}
		H = next
		if res.Change < o.eps {
			res.Converged = true
			break
		}
	}

	if res.Objective, err = Objective(A, H); err != nil {
		return nil, res, fmt.Errorf("%s: %w", opFactorize, err)
	}

	o.logger.Debug("symnmf: factorize done",
		zap.Int("iterations", res.Iterations),
		zap.Bool("converged", res.Converged),
		zap.Float64("change", res.Change),
		zap.Float64("objective", res.Objective))

	return H, res, nil
}

// Objective returns the factorization residual ‖A − H·Hᵀ‖²_F.
//
// Complexity:
//   - Time O(n²·k), Space O(n²).
func Objective(A, H *matrix.Dense) (float64, error) {
	Ht, err := matrix.Transpose(H)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opObjective, err)
	}
	HHt, err := matrix.Mul(H, Ht)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opObjective, err)
	}
	R, err := matrix.Sub(A, HHt)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opObjective, err)
	}
	obj, err := matrix.FrobeniusSq(R)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opObjective, err)
	}

	return obj, nil
}

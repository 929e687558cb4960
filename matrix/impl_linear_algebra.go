// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise subtraction, matrix multiplication
// and transpose. All functions perform strict fail-fast validation and return
// clear errors on dimension mismatches.
//
// Purpose:
//   - Declare the canonical linear-algebra kernels used by the factorization engine.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - All kernels use central validators and wrap sentinels via matrixErrorf.
//   - The *Dense fast path of Mul is shared with RowPool (parallel.go) through
//     mulDenseRows, so serial and parallel products run the same per-row loop.

package matrix

import (
	"fmt"
)

// ZeroSum is the initial sum value for accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opSub       = "Sub"
	opMul       = "Mul"
	opMulTransA = "MulTransA"
	opTranspose = "Transpose"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across kernels.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: Fast-path if both are *Dense - single flat loop 0..n-1.
//     Otherwise, fallback At/Set with fixed i→j order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with opSub).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Sub(a, b Matrix) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}

	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}

	// Fast-path: both operands are *Dense → one flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data {
				res.data[idx] = da.data[idx] - db.data[idx]
			}
			return res, nil
		}
	}

	// Fallback: generic interface loop (fixed i→j).
	var (
		i, j   int
		av, bv float64
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opSub, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opSub, err)
			}
			if err = res.Set(i, j, av-bv); err != nil {
				return nil, matrixErrorf(opSub, err)
			}
		}
	}

	return res, nil
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: If A and B are *Dense, use i→k→j with row-major strides and skip zeros;
//     otherwise use i→j→k with a fixed order and zero-skip on A[i,k].
//
// Behavior highlights:
//   - Deterministic triple loops; no temporary tiles; one allocation for C.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Determinism:
//   - Fixed loop orders (i→k→j for fast path, i→j→k for fallback).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c). Skipping zero A[i,k] avoids useless multiplies.
//
// AI-Hints:
//   - For large r, RowPool.MulInto splits the same fast path across workers.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// Fast-path for two Dense matrices
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			mulDenseRows(res, da, db, 0, aRows)
			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k)
	var (
		i, j, k         int
		av, bv, current float64
	)
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue // skip zero for performance
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				current += av * bv
			}
			if err = res.Set(i, j, current); err != nil {
				return nil, matrixErrorf(opMul, err)
			}
		}
	}

	return res, nil
}

// mulDenseRows writes rows [lo, hi) of dst = a × b using the i→k→j fast path.
// dst rows in the range must be zero on entry; a, b, dst are never aliased.
//
// Determinism:
//   - Each output row depends only on its own row of a and all of b, and is
//     accumulated in the same k order no matter which goroutine runs it.
//
// Complexity:
//   - Time O((hi-lo)*n*c), Space O(1).
func mulDenseRows(dst, a, b *Dense, lo, hi int) {
	aCols, bCols := a.c, b.c
	var (
		i, k, j                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	// da.data layout: i*aCols + k; db.data layout: k*bCols + j
	for i = lo; i < hi; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = a.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				dst.data[rowOffsetR+j] += av * b.data[rowOffsetB+j]
			}
		}
	}
}

// MulTransA computes C = Aᵀ × B without materializing Aᵀ.
//
// Implementation:
//   - Stage 1: validate non-nil and a.Rows == b.Rows.
//   - Stage 2: for each shared row t (fixed order), accumulate the outer
//     product A[t,:]ᵀ·B[t,:] into C.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with opMulTransA).
//
// Complexity:
//   - Time O(r*p*q) for A r×p and B r×q; Space O(p*q).
//
// AI-Hints:
//   - MulTransA(H, H) yields the k×k Gram matrix HᵀH in one pass over H.
func MulTransA(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMulTransA, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMulTransA, err)
	}
	if a.Rows() != b.Rows() {
		return nil, matrixErrorf(opMulTransA, ErrDimensionMismatch)
	}

	rows, p, q := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(p, q)
	if err != nil {
		return nil, matrixErrorf(opMulTransA, err)
	}

	var (
		t, x, y int
		av, bv  float64
	)
	// Fast-path for two Dense matrices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var baseA, baseB, baseR int
			for t = 0; t < rows; t++ {
				baseA = t * p
				baseB = t * q
				for x = 0; x < p; x++ {
					av = da.data[baseA+x]
					if av == 0 {
						continue
					}
					baseR = x * q
					for y = 0; y < q; y++ {
						res.data[baseR+y] += av * db.data[baseB+y]
					}
				}
			}
			return res, nil
		}
	}

	// Fallback: same t→x→y order through At.
	for t = 0; t < rows; t++ {
		for x = 0; x < p; x++ {
			if av, err = a.At(t, x); err != nil {
				return nil, matrixErrorf(opMulTransA, err)
			}
			if av == 0 {
				continue
			}
			for y = 0; y < q; y++ {
				if bv, err = b.At(t, y); err != nil {
					return nil, matrixErrorf(opMulTransA, err)
				}
				res.data[x*q+y] += av * bv
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Input is validated non-nil; the original matrix is never mutated.
//
// Errors:
//   - ErrNilMatrix (wrapped with opTranspose).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the returned matrix.
//
// AI-Hints:
//   - If you only need AᵀB, prefer MulTransA instead of forming Aᵀ.
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows) // dims flipped
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if dm, ok := m.(*Dense); ok {
		// data[i*cols + j] → res.data[j*rows + i]
		var baseSrc int
		for i = 0; i < rows; i++ {
			baseSrc = i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[baseSrc+j]
			}
		}
		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

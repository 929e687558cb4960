// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide fused element-wise kernels that would otherwise need several
//     intermediate matrices (element-wise product, then add, then divide).
//   - Keep all loops deterministic and cache-friendly on flat *Dense buffers.
//
// Determinism & Performance:
//   - Flat 0..n-1 traversal over identical shapes.
//   - One output allocation; no temporaries.

package matrix

import "math"

const opMulRatio = "MulRatio"

// MulRatio computes out[i,j] = x[i,j] * num[i,j] / (den[i,j] + delta).
// MAIN DESCRIPTION:
//   - The fused multiplicative-update kernel: x ⊙ num ⊘ (den + δ).
//
// Implementation:
//   - Stage 1: validate delta (finite, > 0) and identical shapes.
//   - Stage 2: single flat pass; reject a non-finite result.
//
// Behavior highlights:
//   - Nonnegative x, num, den and delta > 0 give a nonnegative, finite out.
//   - No clamping: a negative result is reported to the caller as-is.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (bad delta or overflow).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func MulRatio(x, num, den *Dense, delta float64) (*Dense, error) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) || delta <= 0 {
		return nil, matrixErrorf(opMulRatio, ErrNaNInf)
	}
	if err := ValidateBinarySameShape(x, num); err != nil {
		return nil, matrixErrorf(opMulRatio, err)
	}
	if err := ValidateBinarySameShape(x, den); err != nil {
		return nil, matrixErrorf(opMulRatio, err)
	}

	out, err := NewDense(x.r, x.c)
	if err != nil {
		return nil, matrixErrorf(opMulRatio, err)
	}
	out.validateNaNInf = x.validateNaNInf

	var v float64
	for idx := range out.data {
		v = x.data[idx] * num.data[idx] / (den.data[idx] + delta)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, matrixErrorf(opMulRatio, denseErrorf(opMulRatio, idx/x.c, idx%x.c, ErrNaNInf))
		}
		out.data[idx] = v
	}

	return out, nil
}

// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/symnmf/matrix"
	"github.com/stretchr/testify/require"
)

// TestMul covers the dense fast path, the generic fallback and shape errors.
func TestMul(t *testing.T) {
	a := denseOf(t, 2, 3, 1, 2, 3, 4, 5, 6)
	b := denseOf(t, 3, 2, 7, 8, 9, 10, 11, 12)
	want := []float64{58, 64, 139, 154}

	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	require.Equal(t, want, values(t, got))

	// Fallback path must agree exactly with the fast path.
	slow, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	require.Equal(t, want, values(t, slow))

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Mul(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestMulTransA verifies Aᵀ×B equals Transpose then Mul.
func TestMulTransA(t *testing.T) {
	a := mustDense(t, 5, 3)
	b := mustDense(t, 5, 4)
	fillDenseRand(t, a, 1)
	fillDenseRand(t, b, 2)

	got, err := matrix.MulTransA(a, b)
	require.NoError(t, err)
	require.Equal(t, 3, got.Rows())
	require.Equal(t, 4, got.Cols())

	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	ref, err := matrix.Mul(at, b)
	require.NoError(t, err)
	require.InDeltaSlice(t, values(t, ref), values(t, got), 1e-12)

	slow, err := matrix.MulTransA(hide{a}, hide{b})
	require.NoError(t, err)
	require.Equal(t, values(t, got), values(t, slow)) // same t→x→y order

	_, err = matrix.MulTransA(a, mustDense(t, 4, 4))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestTranspose swaps shape and entries.
func TestTranspose(t *testing.T) {
	a := denseOf(t, 2, 3, 1, 2, 3, 4, 5, 6)
	got, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.Equal(t, 3, got.Rows())
	require.Equal(t, []float64{1, 4, 2, 5, 3, 6}, values(t, got))

	slow, err := matrix.Transpose(hide{a})
	require.NoError(t, err)
	require.Equal(t, values(t, got), values(t, slow))
}

// TestSub checks the element-wise difference on both paths.
func TestSub(t *testing.T) {
	a := denseOf(t, 2, 2, 1, 2, 3, 4)
	b := denseOf(t, 2, 2, 5, 6, 7, 8)

	d, err := matrix.Sub(b, a)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 4, 4, 4}, values(t, d))

	d2, err := matrix.Sub(hide{b}, hide{a})
	require.NoError(t, err)
	require.Equal(t, values(t, d), values(t, d2))

	_, err = matrix.Sub(a, mustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(a, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

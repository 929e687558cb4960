// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the reductions used by the clustering engines as deterministic
//     single-pass loops over flat buffers.
//
// Exposed API:
//   - Mean(X)               -> mean of all entries
//   - RowSums(X)            -> per-row sums (len = Rows)
//   - NewDiagonal(v)        -> n×n matrix with v on the diagonal
//   - FrobeniusSq(X)        -> Σ X[i,j]²
//   - FrobeniusDistSq(A, B) -> Σ (A[i,j] − B[i,j])² without allocating A−B
//   - ArgMaxRows(X)         -> per-row column index of the maximum (first wins)
//
// Determinism & Performance:
//   - Fixed i→j traversal for all loops; sums accumulate in that order.
//   - Dense fast-paths avoid At and operate on row-major flat buffers.

package matrix

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMean            = "Mean"
	opRowSums         = "RowSums"
	opNewDiagonal     = "NewDiagonal"
	opFrobeniusSq     = "FrobeniusSq"
	opFrobeniusDistSq = "FrobeniusDistSq"
	opArgMaxRows      = "ArgMaxRows"
)

// at reads (i,j) through the fast path when possible.
func at(m Matrix, d *Dense, i, j int) (float64, error) {
	if d != nil {
		return d.data[i*d.c+j], nil
	}

	return m.At(i, j)
}

// asDense returns m as *Dense or nil for other implementations.
func asDense(m Matrix) *Dense {
	d, _ := m.(*Dense)

	return d
}

// Mean returns the arithmetic mean of all entries of X.
//
// Errors:
//   - ErrNilMatrix (wrapped with opMean); At errors in the fallback.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func Mean(X Matrix) (float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return 0, matrixErrorf(opMean, err)
	}
	r, c := X.Rows(), X.Cols()
	d := asDense(X)

	var (
		sum  = ZeroSum
		v    float64
		err  error
		i, j int
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = at(X, d, i, j); err != nil {
				return 0, matrixErrorf(opMean, err)
			}
			sum += v
		}
	}

	return sum / float64(r*c), nil
}

// RowSums returns s[i] = Σ_j X[i,j].
//
// Complexity:
//   - Time O(r*c), Space O(r).
func RowSums(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	r, c := X.Rows(), X.Cols()
	d := asDense(X)
	sums := make([]float64, r)

	var (
		v    float64
		err  error
		i, j int
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = at(X, d, i, j); err != nil {
				return nil, matrixErrorf(opRowSums, err)
			}
			sums[i] += v
		}
	}

	return sums, nil
}

// NewDiagonal builds an n×n matrix with diag on the main diagonal and zeros elsewhere.
//
// Errors:
//   - ErrInvalidDimensions for an empty diag; ErrNaNInf for non-finite values.
//
// Complexity:
//   - Time O(n^2) zeroing + O(n) writes.
func NewDiagonal(diag []float64) (*Dense, error) {
	n := len(diag)
	m, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opNewDiagonal, err)
	}
	for i, v := range diag {
		if err = m.Set(i, i, v); err != nil {
			return nil, matrixErrorf(opNewDiagonal, err)
		}
	}

	return m, nil
}

// FrobeniusSq returns ‖X‖²_F = Σ X[i,j]².
//
// Complexity:
//   - Time O(r*c), Space O(1).
func FrobeniusSq(X Matrix) (float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return 0, matrixErrorf(opFrobeniusSq, err)
	}
	r, c := X.Rows(), X.Cols()
	d := asDense(X)

	var (
		sum  = ZeroSum
		v    float64
		err  error
		i, j int
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = at(X, d, i, j); err != nil {
				return 0, matrixErrorf(opFrobeniusSq, err)
			}
			sum += v * v
		}
	}

	return sum, nil
}

// FrobeniusDistSq returns ‖A − B‖²_F without materializing A − B.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with opFrobeniusDistSq).
//
// Complexity:
//   - Time O(r*c), Space O(1).
//
// AI-Hints:
//   - Convergence checks of iterative schemes: FrobeniusDistSq(next, prev) < eps.
func FrobeniusDistSq(a, b Matrix) (float64, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return 0, matrixErrorf(opFrobeniusDistSq, err)
	}
	r, c := a.Rows(), a.Cols()
	da, db := asDense(a), asDense(b)

	var (
		sum          = ZeroSum
		av, bv, diff float64
		err          error
		i, j         int
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if av, err = at(a, da, i, j); err != nil {
				return 0, matrixErrorf(opFrobeniusDistSq, err)
			}
			if bv, err = at(b, db, i, j); err != nil {
				return 0, matrixErrorf(opFrobeniusDistSq, err)
			}
			diff = av - bv
			sum += diff * diff
		}
	}

	return sum, nil
}

// ArgMaxRows returns, for each row, the column index of its maximum entry.
// Ties resolve to the lowest column index (strict > comparison).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func ArgMaxRows(X Matrix) ([]int, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opArgMaxRows, err)
	}
	r, c := X.Rows(), X.Cols()
	d := asDense(X)
	out := make([]int, r)

	var (
		best, v float64
		bestIdx int
		err     error
		i, j    int
	)
	for i = 0; i < r; i++ {
		if best, err = at(X, d, i, 0); err != nil {
			return nil, matrixErrorf(opArgMaxRows, err)
		}
		bestIdx = 0
		for j = 1; j < c; j++ {
			if v, err = at(X, d, i, j); err != nil {
				return nil, matrixErrorf(opArgMaxRows, err)
			}
			if v > best {
				best, bestIdx = v, j
			}
		}
		out[i] = bestIdx
	}

	return out, nil
}

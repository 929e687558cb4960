// Package similarity builds the Gaussian affinity matrix of a point set,
// its diagonal degree matrix, and the degree-normalized affinity matrix.
//
// Definitions (n points p₀…pₙ₋₁):
//
//	W[i][j] = exp(−‖pᵢ − pⱼ‖² / 2)   for i ≠ j,   W[i][i] = 0
//	D[i][i] = Σⱼ W[i][j]                           (off-diagonal 0)
//	A[i][j] = W[i][j] / √(D[i][i] · D[j][j])        (A = D^(-1/2) · W · D^(-1/2))
//
// Every entry point is self-sufficient: Degree and Normalize rebuild W (and D)
// from the points. DegreeOf and NormalizeFrom reuse matrices the caller already has.
//
// Complexity:
//
//	Similarity: O(n²·d) time, O(n²) memory.
//	Degree, Normalize: O(n²·d + n²).
//
// Errors:
//   - ErrDegenerateAffinity - some D[i][i] = 0 (a point with zero similarity to all others).
//   - dataset.ErrEmptyDataset - nil dataset.
package similarity

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/symnmf/dataset"
	"github.com/katalvlaran/symnmf/matrix"
)

// ErrDegenerateAffinity indicates a zero degree, which makes normalization undefined.
var ErrDegenerateAffinity = errors.New("similarity: degenerate affinity (zero degree)")

// Similarity builds the symmetric affinity matrix W with a zero diagonal.
// Only the upper triangle is evaluated; the lower one is mirrored, so W is
// exactly symmetric.
func Similarity(ds *dataset.Dataset) (*matrix.Dense, error) {
	if ds == nil {
		return nil, dataset.ErrEmptyDataset
	}
	n := ds.Len()
	w, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("Similarity: %w", err)
	}

	var (
		i, j   int
		v      float64
		ri, pi []float64
	)
	for i = 0; i < n; i++ {
		if ri, err = w.Row(i); err != nil {
			return nil, fmt.Errorf("Similarity: %w", err)
		}
		pi = ds.At(i)
		for j = i + 1; j < n; j++ {
			v = math.Exp(-dataset.SqDist(pi, ds.At(j)) / 2)
			ri[j] = v
			if err = w.Set(j, i, v); err != nil {
				return nil, fmt.Errorf("Similarity: %w", err)
			}
		}
	}

	return w, nil
}

// Degree builds W from the points and returns its diagonal degree matrix.
func Degree(ds *dataset.Dataset) (*matrix.Dense, error) {
	w, err := Similarity(ds)
	if err != nil {
		return nil, err
	}

	return DegreeOf(w)
}

// DegreeOf returns the diagonal matrix of row sums of a square W.
func DegreeOf(w matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(w); err != nil {
		return nil, fmt.Errorf("DegreeOf: %w", err)
	}
	sums, err := matrix.RowSums(w)
	if err != nil {
		return nil, fmt.Errorf("DegreeOf: %w", err)
	}
	d, err := matrix.NewDiagonal(sums)
	if err != nil {
		return nil, fmt.Errorf("DegreeOf: %w", err)
	}

	return d, nil
}

// Normalize builds W and D from the points and returns A = D^(-1/2)·W·D^(-1/2).
func Normalize(ds *dataset.Dataset) (*matrix.Dense, error) {
	w, err := Similarity(ds)
	if err != nil {
		return nil, err
	}
	d, err := DegreeOf(w)
	if err != nil {
		return nil, err
	}

	return NormalizeFrom(w, d)
}

// NormalizeFrom computes A[i][j] = W[i][j] / √(D[i][i]·D[j][j]) from a given
// affinity and degree matrix of the same square shape. Only the diagonal of D is read.
func NormalizeFrom(w, d matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(w); err != nil {
		return nil, fmt.Errorf("NormalizeFrom: %w", err)
	}
	if err := matrix.ValidateBinarySameShape(w, d); err != nil {
		return nil, fmt.Errorf("NormalizeFrom: %w", err)
	}

	n := w.Rows()
	diag := make([]float64, n)
	for i := range diag {
		dii, err := d.At(i, i)
		if err != nil {
			return nil, fmt.Errorf("NormalizeFrom: %w", err)
		}
		if dii == 0 {
			return nil, fmt.Errorf("NormalizeFrom: row %d: %w", i, ErrDegenerateAffinity)
		}
		diag[i] = dii
	}

	a, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("NormalizeFrom: %w", err)
	}
	var wij float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if wij, err = w.At(i, j); err != nil {
				return nil, fmt.Errorf("NormalizeFrom: %w", err)
			}
			// diag[i]*diag[j] commutes exactly, so A stays bit-symmetric when W is.
			// Set rejects NaN/Inf: a negative degree surfaces as matrix.ErrNaNInf.
			if err = a.Set(i, j, wij/math.Sqrt(diag[i]*diag[j])); err != nil {
				return nil, fmt.Errorf("NormalizeFrom: %w", err)
			}
		}
	}

	return a, nil
}

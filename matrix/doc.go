// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra primitives behind the
// clustering engines.
//
// The matrix package provides:
//
//   - Dense, a flat row-major float64 buffer with bounds-checked At/Set and
//     row slices (Row) as the mutation surface for hot loops.
//   - Kernels (Mul, MulTransA, Transpose, Sub) with a *Dense fast
//     path and a fixed-order generic fallback.
//   - Reductions (Mean, RowSums, FrobeniusSq, FrobeniusDistSq, ArgMaxRows).
//   - Validators (ValidateSquare, ValidateSymmetric, ValidateFinite,
//     ValidateNonNegative) returning package sentinels.
//   - RowPool, a row-blocked parallel product whose result is bit-identical
//     to the serial Mul.
//
// All loops run in a fixed order, so identical inputs always produce
// identical outputs.
package matrix

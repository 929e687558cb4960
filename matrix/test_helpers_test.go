// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/symnmf/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the generic (non-*Dense) fallback paths in kernels under test.
type hide struct{ matrix.Matrix }

// mustDense allocates an r×c *Dense or fails the test.
func mustDense(tb testing.TB, r, c int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		tb.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// denseOf builds an r×c *Dense from a row-major flat slice.
func denseOf(tb testing.TB, r, c int, vals ...float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	if err != nil {
		tb.Fatalf("NewDenseFrom(%d,%d): %v", r, c, err)
	}

	return m
}

// fillDenseRand fills m with deterministic values in [0, 1) from seed.
func fillDenseRand(tb testing.TB, m *matrix.Dense, seed int64) {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	if err := m.Apply(func(_, _ int, _ float64) float64 { return rng.Float64() }); err != nil {
		tb.Fatalf("Apply: %v", err)
	}
}

// values flattens any Matrix into a row-major slice.
func values(tb testing.TB, m matrix.Matrix) []float64 {
	tb.Helper()
	out := make([]float64, 0, m.Rows()*m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				tb.Fatalf("At(%d,%d): %v", i, j, err)
			}
			out = append(out, v)
		}
	}

	return out
}

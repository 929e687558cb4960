// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Row-blocked parallel matrix product on top of an ants worker pool.
//
// Determinism:
//   - Rows are split into contiguous blocks; every output row is written by
//     exactly one task running mulDenseRows, the same loop the serial Mul uses.
//     The result is therefore bit-identical to Mul for any worker count.
//
// Concurrency:
//   - A RowPool may be shared by sequential callers; MulInto blocks until all
//     of its blocks are done. Release must be called once the pool is no longer needed.

package matrix

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

const opMulInto = "RowPool.MulInto"

// minRowsPerBlock keeps tiny products from paying scheduling overhead.
const minRowsPerBlock = 16

// RowPool runs row blocks of dense products on a bounded set of goroutines.
type RowPool struct {
	pool    *ants.Pool
	workers int
}

// NewRowPool creates a pool with the given number of workers (>= 1).
//
// Errors:
//   - ErrInvalidDimensions when workers < 1; ants construction errors.
func NewRowPool(workers int) (*RowPool, error) {
	if workers < 1 {
		return nil, fmt.Errorf("NewRowPool(%d): %w", workers, ErrInvalidDimensions)
	}
	p, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("NewRowPool(%d): %w", workers, err)
	}

	return &RowPool{pool: p, workers: workers}, nil
}

// Workers reports the configured worker count.
func (p *RowPool) Workers() int { return p.workers }

// Release stops the underlying goroutines. Safe to call more than once.
func (p *RowPool) Release() {
	if p == nil || p.pool == nil {
		return
	}
	p.pool.Release()
}

// Mul allocates the result and calls MulInto.
//
// Complexity:
//   - Time O(r*n*c / workers) wall clock, Space O(r*c).
func (p *RowPool) Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMulInto, err)
	}
	dst, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opMulInto, err)
	}
	if err = p.MulInto(dst, a, b); err != nil {
		return nil, err
	}

	return dst, nil
}

// MulInto computes dst = a × b in row blocks.
// MAIN DESCRIPTION:
//   - dst is overwritten (zeroed first); it must not alias a or b.
//
// Implementation:
//   - Stage 1: validate shapes; zero dst.
//   - Stage 2: split [0, a.Rows) into at most Workers() contiguous blocks of
//     at least minRowsPerBlock rows; submit each block; wait.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrPoolClosed.
func (p *RowPool) MulInto(dst, a, b *Dense) error {
	if p == nil || p.pool == nil {
		return matrixErrorf(opMulInto, ErrPoolClosed)
	}
	if err := ValidateMulCompatible(a, b); err != nil {
		return matrixErrorf(opMulInto, err)
	}
	if err := ValidateNotNil(dst); err != nil {
		return matrixErrorf(opMulInto, err)
	}
	if dst.r != a.r || dst.c != b.c {
		return matrixErrorf(opMulInto, ErrDimensionMismatch)
	}
	for idx := range dst.data {
		dst.data[idx] = 0
	}

	blocks := p.workers
	if maxBlocks := (a.r + minRowsPerBlock - 1) / minRowsPerBlock; blocks > maxBlocks {
		blocks = maxBlocks
	}
	if blocks <= 1 {
		mulDenseRows(dst, a, b, 0, a.r)
		return nil
	}

	step := (a.r + blocks - 1) / blocks
	var wg sync.WaitGroup
	for lo := 0; lo < a.r; lo += step {
		hi := lo + step
		if hi > a.r {
			hi = a.r
		}
		wg.Add(1)
		lo, hi := lo, hi
		if err := p.pool.Submit(func() {
			defer wg.Done()
			mulDenseRows(dst, a, b, lo, hi)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return matrixErrorf(opMulInto, fmt.Errorf("%v: %w", err, ErrPoolClosed))
		}
	}
	wg.Wait()

	return nil
}

// SPDX-License-Identifier: MIT
// Package: symnmf

package symnmf

import (
	"context"
	"fmt"

	"github.com/katalvlaran/symnmf/dataset"
	"github.com/katalvlaran/symnmf/matrix"
	"github.com/katalvlaran/symnmf/similarity"
)

// Labels clusters ds into k groups: Normalize → Factorize → LabelsOf.
// Requires 2 ≤ k < n.
func Labels(ctx context.Context, ds *dataset.Dataset, k int, opts ...Option) ([]int, error) {
	if ds == nil {
		return nil, dataset.ErrEmptyDataset
	}
	if err := ds.ValidateRank(k, 2); err != nil {
		return nil, fmt.Errorf("Labels: %w", err)
	}
	A, err := similarity.Normalize(ds)
	if err != nil {
		return nil, fmt.Errorf("Labels: %w", err)
	}
	H, _, err := Factorize(ctx, A, k, opts...)
	if err != nil {
		return nil, fmt.Errorf("Labels: %w", err)
	}

	return LabelsOf(H)
}

// LabelsOf assigns each row of H to the column holding its maximum.
// Ties go to the lowest column index.
func LabelsOf(H matrix.Matrix) ([]int, error) {
	labels, err := matrix.ArgMaxRows(H)
	if err != nil {
		return nil, fmt.Errorf("LabelsOf: %w", err)
	}

	return labels, nil
}

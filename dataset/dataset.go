// Package dataset - ordered point sets with a fixed dimension.
//
// A Dataset stores n points of dimension d in one flat row-major buffer.
// Order is preserved end-to-end: label i always refers to point i.
//
// Errors:
//   - ErrEmptyDataset      - no points.
//   - ErrDimensionMismatch - a point whose length differs from the first one.
//   - ErrMalformedInput    - unreadable or unparsable point source.
//   - ErrInvalidRank       - k outside the bounds required by an operation.
package dataset

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyDataset indicates a dataset without points.
	ErrEmptyDataset = errors.New("dataset: no points")

	// ErrDimensionMismatch indicates points (or a point and a centroid) of different dimension.
	ErrDimensionMismatch = errors.New("dataset: dimension mismatch")

	// ErrMalformedInput indicates an unreadable or unparsable point source.
	ErrMalformedInput = errors.New("dataset: malformed input")

	// ErrInvalidRank indicates a cluster count k outside the required bounds.
	ErrInvalidRank = errors.New("dataset: invalid rank")
)

// Point is an ordered tuple of d real numbers.
type Point = []float64

// Dataset is an immutable, ordered sequence of n points of dimension d.
type Dataset struct {
	n, d int
	data []float64 // row-major, len == n*d
}

// New copies points into a Dataset. The dimension is taken from the first point.
func New(points []Point) (*Dataset, error) {
	if len(points) == 0 {
		return nil, ErrEmptyDataset
	}
	d := len(points[0])
	if d == 0 {
		return nil, fmt.Errorf("point 0 has no coordinates: %w", ErrDimensionMismatch)
	}

	data := make([]float64, 0, len(points)*d)
	for i, p := range points {
		if len(p) != d {
			return nil, fmt.Errorf("point %d has %d coordinates, want %d: %w", i, len(p), d, ErrDimensionMismatch)
		}
		for j, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("point %d coordinate %d is not finite: %w", i, j, ErrMalformedInput)
			}
		}
		data = append(data, p...)
	}

	return &Dataset{n: len(points), d: d, data: data}, nil
}

// Len returns the number of points n.
func (ds *Dataset) Len() int { return ds.n }

// Dim returns the point dimension d.
func (ds *Dataset) Dim() int { return ds.d }

// At returns point i as a read-only view into the dataset storage.
// It panics when i is out of range, like a slice index.
func (ds *Dataset) At(i int) Point {
	base := i * ds.d

	return ds.data[base : base+ds.d : base+ds.d]
}

// Points returns copies of all points in order.
func (ds *Dataset) Points() []Point {
	out := make([]Point, ds.n)
	for i := range out {
		out[i] = append(Point(nil), ds.At(i)...)
	}

	return out
}

// ValidateRank checks min <= k < n.
func (ds *Dataset) ValidateRank(k, min int) error {
	if k < min || k >= ds.n {
		return fmt.Errorf("k=%d with n=%d (need %d <= k < n): %w", k, ds.n, min, ErrInvalidRank)
	}

	return nil
}

package dataset

import (
	"fmt"
	"math"
)

// SqDist returns the squared Euclidean distance Σ(aᵢ−bᵢ)².
// Points of different length are a programming error and panic.
func SqDist(a, b Point) float64 {
	if len(a) != len(b) {
		panic(fmt.Errorf("SqDist: len %d vs %d: %w", len(a), len(b), ErrDimensionMismatch))
	}
	var sum, diff float64
	for i := range a {
		diff = a[i] - b[i]
		sum += diff * diff
	}

	return sum
}

// Dist returns the Euclidean distance √Σ(aᵢ−bᵢ)².
// Pure and commutative; Dist(a, a) == 0.
func Dist(a, b Point) float64 {
	return math.Sqrt(SqDist(a, b))
}

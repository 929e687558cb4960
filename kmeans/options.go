// SPDX-License-Identifier: MIT
// Package: kmeans

package kmeans

import (
	"math"

	"go.uber.org/zap"
)

const (
	// DefaultMaxIter is used when WithMaxIter receives n ≤ 0 or is not given.
	DefaultMaxIter = 300
	// MaxIterCeiling is the hard cap on iterations.
	MaxIterCeiling = 1000
	// DefaultEpsilon is the per-centroid movement threshold.
	DefaultEpsilon = 1e-4
)

// Option customizes a Cluster or Labels run.
type Option func(*options)

type options struct {
	maxIter int
	eps     float64
	logger  *zap.Logger
}

func collect(opts []Option) options {
	o := options{maxIter: DefaultMaxIter, eps: DefaultEpsilon, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// ClampMaxIter applies the iteration cap policy.
func ClampMaxIter(n int) int {
	switch {
	case n <= 0:
		return DefaultMaxIter
	case n > MaxIterCeiling:
		return MaxIterCeiling
	default:
		return n
	}
}

// WithMaxIter sets the iteration cap, normalized by ClampMaxIter.
func WithMaxIter(n int) Option {
	return func(o *options) {
		o.maxIter = ClampMaxIter(n)
	}
}

// WithEpsilon sets the convergence threshold on centroid movement.
// Panics unless eps is finite and > 0.
func WithEpsilon(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 0) {
		panic("kmeans: WithEpsilon must be finite and > 0")
	}
	return func(o *options) {
		o.eps = eps
	}
}

// WithLogger attaches a logger for Debug progress records. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("kmeans: WithLogger(nil)")
	}
	return func(o *options) {
		o.logger = l
	}
}

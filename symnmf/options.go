// SPDX-License-Identifier: MIT
// Package: symnmf
//
// Functional options for Factorize and Labels.
//
// Contract:
//   - Option constructors validate and PANIC on meaningless inputs; the
//     engine itself never panics.
//   - Determinism is explicit: WithSeed or WithRand. The last one applied wins.

package symnmf

import (
	"math"
	"math/rand"

	"go.uber.org/zap"
)

// Defaults of the factorization loop.
const (
	DefaultMaxIter = 300
	DefaultEpsilon = 1e-4
	DefaultDelta   = 1e-10
)

// Option customizes a Factorize or Labels run.
type Option func(*options)

type options struct {
	rng     *rand.Rand
	seed    int64
	maxIter int
	eps     float64
	delta   float64
	workers int
	logger  *zap.Logger
}

func defaultOptions() options {
	return options{
		seed:    DefaultSeed,
		maxIter: DefaultMaxIter,
		eps:     DefaultEpsilon,
		delta:   DefaultDelta,
		workers: 1,
		logger:  zap.NewNop(),
	}
}

func collect(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// random returns the injected RNG or a fresh stream for the configured seed.
func (o *options) random() *rand.Rand {
	if o.rng != nil {
		return o.rng
	}

	return NewRand(o.seed)
}

// WithSeed draws H₀ from NewRand(seed).
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.rng = nil
	}
}

// WithRand draws H₀ from r. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("symnmf: WithRand(nil)")
	}
	return func(o *options) {
		o.rng = r
	}
}

// WithMaxIter caps the number of update steps. Panics when n < 1.
func WithMaxIter(n int) Option {
	if n < 1 {
		panic("symnmf: WithMaxIter must be >= 1")
	}
	return func(o *options) {
		o.maxIter = n
	}
}

// WithEpsilon sets the convergence threshold on ‖H_new − H_old‖²_F.
// Panics unless eps is finite and > 0.
func WithEpsilon(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 0) {
		panic("symnmf: WithEpsilon must be finite and > 0")
	}
	return func(o *options) {
		o.eps = eps
	}
}

// WithDelta sets the denominator offset δ of the update rule.
// Panics unless delta is finite and > 0.
func WithDelta(delta float64) Option {
	if !(delta > 0) || math.IsInf(delta, 0) {
		panic("symnmf: WithDelta must be finite and > 0")
	}
	return func(o *options) {
		o.delta = delta
	}
}

// WithWorkers runs the n-row products on a matrix.RowPool of w workers.
// w == 1 keeps the serial path. Panics when w < 1.
func WithWorkers(w int) Option {
	if w < 1 {
		panic("symnmf: WithWorkers must be >= 1")
	}
	return func(o *options) {
		o.workers = w
	}
}

// WithLogger attaches a logger for Debug progress records. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("symnmf: WithLogger(nil)")
	}
	return func(o *options) {
		o.logger = l
	}
}

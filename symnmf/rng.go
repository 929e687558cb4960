// SPDX-License-Identifier: MIT
// Package: symnmf
//
// Deterministic random sources for H initialization.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across
//     goroutines; give each concurrent run its own NewRand stream.

package symnmf

import "math/rand"

// DefaultSeed is the seed used when callers pass seed == 0 or no RNG at all.
const DefaultSeed int64 = 1234

// NewRand returns a deterministic *rand.Rand.
// Policy: seed == 0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// SPDX-License-Identifier: MIT
// Package: capy/builder
//
// options.go — functional options for the builder package.
//
// Contract (strict):
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import "math/rand"

// BuilderOption customizes a constructor by mutating builderConfig before use.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the vertex ID generator: idx -> string.
// The scheme should sort lexicographically in index order if population
// vectors are to be indexed by construction index. Panics on nil.
func WithIDScheme(fn func(int) string) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) { c.idFn = fn }
}

// WithRand provides an explicit RNG for stochastic builders. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a new *rand.Rand with the given seed (deterministic).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithWeightFn overrides the per-edge weight generator (weighted graphs only).
// The function receives the possibly-nil RNG. Panics on nil.
func WithWeightFn(fn func(*rand.Rand) int64) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) { c.weightFn = fn }
}

// UniformWeightFn returns a generator drawing integers uniformly from [lo, hi].
// It falls back to lo when the RNG is nil. Panics unless 0 <= lo <= hi.
func UniformWeightFn(lo, hi int64) func(*rand.Rand) int64 {
	if lo < 0 || hi < lo {
		panic("builder: UniformWeightFn requires 0 <= lo <= hi")
	}
	return func(r *rand.Rand) int64 {
		if r == nil {
			return lo
		}
		return lo + r.Int63n(hi-lo+1)
	}
}

// SPDX-License-Identifier: MIT
// Package: capy/builder
//
// config.go — internal configuration and deterministic defaults.
//
// Deterministic defaults (no surprises):
//   • idFn      = nil → zero-padded decimal IDs sized to n
//   • rng       = nil (pure/deterministic unless seeded)
//   • weightFn  = constant DefaultEdgeWeight

package builder

import (
	"math/rand"
	"strconv"
)

// DefaultEdgeWeight is the constant edge weight used on weighted graphs when
// no WithWeightFn is supplied.
const DefaultEdgeWeight = int64(1)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// idFn maps a construction index to a vertex ID; nil means padded decimals.
	idFn func(int) string
	// rng for stochastic choices; nil means “no randomness”.
	rng *rand.Rand
	// weightFn draws an edge weight; used only for weighted graphs.
	weightFn func(*rand.Rand) int64
}

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (last wins).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		weightFn: func(*rand.Rand) int64 { return DefaultEdgeWeight },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// id returns the vertex ID of index i in an n-vertex construction.
func (c builderConfig) id(i, n int) string {
	if c.idFn != nil {
		return c.idFn(i)
	}

	return paddedID(i, digits(n-1))
}

// paddedID renders i as a decimal left-padded with zeros to width.
func paddedID(i, width int) string {
	s := strconv.Itoa(i)
	for len(s) < width {
		s = "0" + s
	}

	return s
}

// digits returns the number of decimal digits of n (n >= 0).
func digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}

	return d
}

// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for graph→matrix adapters and
// numeric policy. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//
// Notes:
//   - Adjacency is always undirected: an edge (u,v,w) writes w into both
//     [u,v] and [v,u]. Parallel edges sum into a single cell.
//   - Self-loops are dropped by default because scoring adds the identity;
//     WithLoops keeps them on the diagonal.
package matrix

// Numeric policy.
const (
	// DefaultEpsilon is the tolerance used by the symmetry check.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

// Build policy.
const (
	// DefaultAllowLoops keeps self-loop weights on the diagonal when true.
	DefaultAllowLoops = false

	// DefaultBinary writes 1 for every edge regardless of its weight when true.
	DefaultBinary = false

	// DefaultSparse selects the CSR representation in NewAdjacencyMatrix when true.
	DefaultSparse = false
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	validateNaNInf bool
	allowLoops     bool
	binary         bool
	sparse         bool
}

// WithNoValidateNaNInf disables finite-value validation for matrices built
// by adapters, Dense and CSR alike. Intended for controlled experiments only.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithLoops keeps self-loop weights on the diagonal. Note that scoring adds
// the identity on top, so a loop of weight w contributes 1+w per node.
func WithLoops() Option {
	return func(o *Options) { o.allowLoops = true }
}

// WithBinary ignores edge weights and writes 1 per distinct neighbor pair.
func WithBinary() Option {
	return func(o *Options) { o.binary = true }
}

// WithSparse makes NewAdjacencyMatrix store a *CSR instead of a *Dense.
func WithSparse() Option {
	return func(o *Options) { o.sparse = true }
}

// gatherOptions resolves defaults and applies opts in order (last wins).
func gatherOptions(opts ...Option) Options {
	o := Options{
		validateNaNInf: DefaultValidateNaNInf,
		allowLoops:     DefaultAllowLoops,
		binary:         DefaultBinary,
		sparse:         DefaultSparse,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

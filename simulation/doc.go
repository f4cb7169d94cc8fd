// SPDX-License-Identifier: MIT

// Package simulation runs a direction-aware Metropolis-Hastings process that
// moves members of two populations between graph nodes, driving the half-edge
// CAPY score of the pair toward a target.
//
// Every step:
//
//  1. picks two distinct nodes idx1, idx2 and a count k ≤ min(A[idx1], B[idx2]),
//  2. builds the candidate where k members of A move idx1→idx2 and k members
//     of B move idx2→idx1 (group totals never change),
//  3. scores current (old) and candidate (new) with energy.HalfCapy,
//  4. below target it favors higher energy, Accept(old, new); at or above
//     target it favors lower energy, Accept(new, old),
//  5. reports the candidate energy on accept and the old energy on reject.
//
// Accept(old, new) is true when new ≥ old, otherwise with probability
// exp(-T·(old-new)). The default T = 2^20 makes the process a practical
// hill-climb; pass a much smaller temperature for real annealing.
//
// State machine:
//
// Start returns the Running state built from copies of the construction-time
// vectors. Advance consumes a State and returns the next one, the observed
// Step and an Outcome tag; once the step budget is spent it returns
// Terminated. States are values: Advance never mutates its argument, so
// a State can be kept and replayed.
//
// All wraps Start/Advance in a range-over-func iterator that yields exactly
// Len() steps and restarts from the original vectors on every call. Run does
// the same with context cancellation between steps.
//
// Randomness:
//
// Each Simulation owns one *rand.Rand (WithSeed or WithRand). A *rand.Rand is
// not goroutine-safe, so one Simulation must not be driven from several
// goroutines. Independent Simulations may share one read-only adjacency and
// run concurrently.
//
// Sampling:
//
// SamplingUniform (default) draws nodes from [0,N) and k from [1,max].
// SamplingLegacy keeps the exclusive bounds of the first published version of
// this model: nodes from [0,N-1) and k from [1,max), so the last node and the
// full count are never picked. Legacy mode needs at least 3 nodes.
//
// A proposal with max = 0 is a no-op; it still consumes one step.
package simulation

// SPDX-License-Identifier: MIT

package simulation

import "errors"

// Sentinel errors returned by New and Advance.
var (
	// ErrTooFewNodes indicates fewer nodes than the proposal needs to pick two
	// distinct indices (2, or 3 with SamplingLegacy).
	ErrTooFewNodes = errors.New("simulation: too few nodes to propose a move")

	// ErrLengthMismatch indicates a population vector whose length differs from
	// the adjacency dimension, or a State not produced by this Simulation.
	ErrLengthMismatch = errors.New("simulation: population length does not match adjacency")

	// ErrNegativePopulation indicates a negative member count.
	ErrNegativePopulation = errors.New("simulation: negative population count")

	// ErrEmptyGroup indicates a group with zero members; its score would be 0/0.
	ErrEmptyGroup = errors.New("simulation: population group is empty")
)

// SPDX-License-Identifier: MIT
// Package: capy/builder
//
// errors.go — sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers use errors.Is.
//   • Implementations attach context with %w, e.g. "Grid: rows=0 ...: %w".
//   • Priority when several checks fail: size → probability → rng → construction.

package builder

import "errors"

// ErrTooFewVertices indicates a size parameter below the constructor's minimum.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor ran without WithSeed/WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates the builder could not complete construction
// (e.g. a nil constructor was passed to BuildGraph).
var ErrConstructFailed = errors.New("builder: construction failed")

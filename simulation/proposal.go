// SPDX-License-Identifier: MIT

package simulation

import (
	"fmt"
	"math"

	"github.com/katalvlaran/capy/energy"
)

// Propose draws a candidate from (a, b) without modifying them.
//
// Implementation:
//   - Stage 1: draw idx1 and idx2 independently, redrawing both until they differ.
//   - Stage 2: max = min(a[idx1], b[idx2]).
//   - Stage 3: draw the count k (0 when the bounds leave nothing to draw).
//   - Stage 4: return fresh vectors with a[idx1]-=k, a[idx2]+=k, b[idx1]+=k,
//     b[idx2]-=k. A no-op move still returns copies.
//
// Bounds follow the Sampling mode (see the package doc). The index range is
// taken from the adjacency, so both vectors must have Nodes() entries.
//
// Errors:
//   - ErrLengthMismatch when len(a) or len(b) differs from Nodes().
//
// Complexity: O(N) for the copies; the index draw takes 1/(1-1/m) rounds on
// average for m candidate indices.
func (s *Simulation) Propose(a, b energy.Population) (energy.Population, energy.Population, Move, error) {
	n := s.adj.Rows()
	if len(a) != n || len(b) != n {
		return nil, nil, Move{}, fmt.Errorf("%s: lengths %d/%d, want %d: %w", ctxPropose, len(a), len(b), n, ErrLengthMismatch)
	}
	hi := n
	if s.sampling == SamplingLegacy {
		hi--
	}

	var i, j int
	for i == j {
		i = s.rng.Intn(hi)
		j = s.rng.Intn(hi)
	}

	mv := Move{From: i, To: j, Count: s.swapCount(min(a[i], b[j]))}

	na, nb := a.Clone(), b.Clone()
	na[i] -= mv.Count
	na[j] += mv.Count
	nb[i] += mv.Count
	nb[j] -= mv.Count

	return na, nb, mv, nil
}

// swapCount draws k for the given max under the current sampling mode.
func (s *Simulation) swapCount(hi int64) int64 {
	switch s.sampling {
	case SamplingLegacy:
		if hi > 1 {
			return 1 + s.rng.Int63n(hi-1)
		}
	default:
		if hi >= 1 {
			return 1 + s.rng.Int63n(hi)
		}
	}

	return 0
}

// Accept is the Metropolis-Hastings test that always favors higher energy:
// true when newE ≥ oldE, otherwise true with probability
// exp(-T·(oldE-newE)). Advance swaps the arguments to favor lower energy.
//
// The random source is consulted only in the second case.
func (s *Simulation) Accept(oldE, newE float64) bool {
	if newE >= oldE {
		return true
	}

	return s.rng.Float64() < math.Exp(-s.temperature*(oldE-newE))
}

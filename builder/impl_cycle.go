// SPDX-License-Identifier: MIT
// Package: capy/builder
//
// impl_cycle.go — Cycle(n): a ring of n nodes.
//
// Contract:
//   - n ≥ 3 (else ErrTooFewVertices); smaller rings would need loops or multi-edges.
//   - Edges i—(i+1 mod n) emitted in ascending i.

package builder

import (
	"fmt"

	"github.com/katalvlaran/capy/core"
)

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor that builds a simple cycle C_n.
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		if err := addVertices(g, cfg, methodCycle, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := addEdge(g, cfg, methodCycle, cfg.id(i, n), cfg.id((i+1)%n, n)); err != nil {
				return err
			}
		}

		return nil
	}
}

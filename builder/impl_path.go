// SPDX-License-Identifier: MIT
// Package: capy/builder
//
// impl_path.go — Path(n): a chain of n nodes, the smallest non-trivial
// adjacency for transect-style population data.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVertices).
//   - Edges i—(i+1) emitted in ascending i.

package builder

import (
	"fmt"

	"github.com/katalvlaran/capy/core"
)

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor that builds a simple path P_n.
func Path(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		if err := addVertices(g, cfg, methodPath, n); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err := addEdge(g, cfg, methodPath, cfg.id(i-1, n), cfg.id(i, n)); err != nil {
				return err
			}
		}

		return nil
	}
}

// SPDX-License-Identifier: MIT
// Package: capy/builder
//
// impl_complete.go — Complete(n): every pair linked. Under CAPY scoring a
// complete graph makes location irrelevant, which is a useful baseline.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVertices).
//   - Pairs (i,j), i<j, emitted in lexicographic order.

package builder

import (
	"fmt"

	"github.com/katalvlaran/capy/core"
)

const (
	methodComplete   = "Complete"
	minCompleteNodes = 2
)

// Complete returns a Constructor that builds K_n.
func Complete(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
		}
		if err := addVertices(g, cfg, methodComplete, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := addEdge(g, cfg, methodComplete, cfg.id(i, n), cfg.id(j, n)); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

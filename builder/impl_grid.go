// SPDX-License-Identifier: MIT
// Package: capy/builder
//
// impl_grid.go — Grid(rows, cols): rook-adjacency lattice, the usual stand-in
// for a regular tiling of census blocks.
//
// Contract:
//   • rows ≥ 1, cols ≥ 1 and rows*cols ≥ 2 (else ErrTooFewVertices).
//   • Vertex IDs follow cfg.idFn over the row-major index r*cols+c, so the
//     default padded IDs keep row-major order after lexicographic sorting.
//   • For each cell: Right neighbor first, then Bottom.

package builder

import (
	"fmt"

	"github.com/katalvlaran/capy/core"
)

const (
	methodGrid   = "Grid"
	minGridDim   = 1
	minGridCells = 2
)

// Grid returns a Constructor that builds a rows×cols 4-neighborhood grid.
func Grid(rows, cols int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if rows < minGridDim || cols < minGridDim || rows*cols < minGridCells {
			return fmt.Errorf("%s: rows=%d, cols=%d: %w", methodGrid, rows, cols, ErrTooFewVertices)
		}
		n := rows * cols
		if err := addVertices(g, cfg, methodGrid, n); err != nil {
			return err
		}

		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := cfg.id(r*cols+c, n)
				if c+1 < cols {
					if err := addEdge(g, cfg, methodGrid, u, cfg.id(r*cols+c+1, n)); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := addEdge(g, cfg, methodGrid, u, cfg.id((r+1)*cols+c, n)); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}

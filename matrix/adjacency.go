// SPDX-License-Identifier: MIT
// Package matrix - adjacency builders from core.Graph and from edge lists.
//
// Deliverables:
//  1. Undirected mirroring: edge (u,v,w) writes w into [u,v] and [v,u].
//  2. Parallel edges sum into one cell (binary mode counts a pair once).
//  3. Self-loops are dropped unless WithLoops is set.
//  4. Deterministic vertex order: core.Graph.Vertices() (ID ascending).
//  5. Dense and CSR outputs hold identical logical values.

package matrix

import (
	"fmt"
	"math"

	"github.com/katalvlaran/capy/core"
)

const (
	ctxFromEdges = "FromEdges"
	ctxFromGraph = "NewAdjacencyMatrix"
)

// AdjacencyMatrix pairs an Adjacency with the vertex labels of its rows.
// VertexIndex maps vertex ID → row/col; vertexByIndex is the reverse lookup.
type AdjacencyMatrix struct {
	Mat           Adjacency
	VertexIndex   map[string]int
	vertexByIndex []string
}

// NewAdjacencyMatrix builds the adjacency of g.
//
// Implementation:
//   - Stage 1: validate g (ErrGraphNil) and non-emptiness (ErrInvalidDimensions).
//   - Stage 2: index vertices in ascending ID order.
//   - Stage 3: translate edges (weight if g.Weighted(), else 1) and delegate to
//     DenseFromEdges or CSRFromEdges depending on WithSparse.
//
// Complexity:
//   - Dense: O(V² + E); sparse: O(V + E log E).
func NewAdjacencyMatrix(g *core.Graph, opts ...Option) (*AdjacencyMatrix, error) {
	if g == nil {
		return nil, fmt.Errorf("%s: %w", ctxFromGraph, ErrGraphNil)
	}
	ids := g.Vertices()
	if len(ids) == 0 {
		return nil, fmt.Errorf("%s: empty graph: %w", ctxFromGraph, ErrInvalidDimensions)
	}
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	weighted := g.Weighted()
	gedges := g.Edges()
	edges := make([]Edge, 0, len(gedges))
	var w float64
	for _, e := range gedges {
		w = 1
		if weighted {
			w = float64(e.Weight)
		}
		edges = append(edges, Edge{U: index[e.From], V: index[e.To], W: w})
	}

	var mat Adjacency
	var err error
	if gatherOptions(opts...).sparse {
		mat, err = CSRFromEdges(len(ids), edges, opts...)
	} else {
		mat, err = DenseFromEdges(len(ids), edges, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFromGraph, err)
	}

	return &AdjacencyMatrix{Mat: mat, VertexIndex: index, vertexByIndex: ids}, nil
}

// Len returns the number of vertices (rows).
func (am *AdjacencyMatrix) Len() int { return len(am.vertexByIndex) }

// VertexID returns the vertex label of row i.
func (am *AdjacencyMatrix) VertexID(i int) (string, error) {
	if i < 0 || i >= len(am.vertexByIndex) {
		return "", fmt.Errorf("AdjacencyMatrix.VertexID(%d): %w", i, ErrOutOfRange)
	}

	return am.vertexByIndex[i], nil
}

// VertexIDs returns a copy of the row labels in index order.
func (am *AdjacencyMatrix) VertexIDs() []string {
	out := make([]string, len(am.vertexByIndex))
	copy(out, am.vertexByIndex)

	return out
}

// DenseFromEdges builds an n×n symmetric Dense from undirected edges.
// Errors: ErrInvalidDimensions, ErrOutOfRange, ErrNaNInf, ErrNegativeWeight.
func DenseFromEdges(n int, edges []Edge, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	entries, err := edgeEntries(n, edges, o)
	if err != nil {
		return nil, err
	}
	d, err := NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFromEdges, err)
	}
	d.validateNaNInf = o.validateNaNInf
	for _, e := range entries {
		d.add(e.Row, e.Col, e.Val)
	}

	return d, nil
}

// CSRFromEdges builds an n×n symmetric CSR from undirected edges.
// Errors: same as DenseFromEdges.
func CSRFromEdges(n int, edges []Edge, opts ...Option) (*CSR, error) {
	o := gatherOptions(opts...)
	entries, err := edgeEntries(n, edges, o)
	if err != nil {
		return nil, err
	}

	return newCSR(n, n, entries, o.validateNaNInf)
}

// edgeEntries validates edges and expands them into mirrored triplets.
func edgeEntries(n int, edges []Edge, o Options) ([]Entry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%s: n=%d: %w", ctxFromEdges, n, ErrInvalidDimensions)
	}

	entries := make([]Entry, 0, 2*len(edges))
	seen := make(map[[2]int]struct{}) // binary mode only
	var w float64
	for k, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, fmt.Errorf("%s: edge %d (%d,%d): %w", ctxFromEdges, k, e.U, e.V, ErrOutOfRange)
		}
		if o.validateNaNInf && (math.IsNaN(e.W) || math.IsInf(e.W, 0)) {
			return nil, fmt.Errorf("%s: edge %d: %w", ctxFromEdges, k, ErrNaNInf)
		}
		if e.W < 0 {
			return nil, fmt.Errorf("%s: edge %d weight %g: %w", ctxFromEdges, k, e.W, ErrNegativeWeight)
		}
		if e.U == e.V && !o.allowLoops {
			continue
		}

		w = e.W
		if o.binary {
			key := [2]int{min(e.U, e.V), max(e.U, e.V)}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			w = 1
		}

		entries = append(entries, Entry{Row: e.U, Col: e.V, Val: w})
		if e.U != e.V {
			entries = append(entries, Entry{Row: e.V, Col: e.U, Val: w})
		}
	}

	return entries, nil
}

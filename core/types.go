// SPDX-License-Identifier: MIT

// Package core defines the Graph, Vertex and Edge types that act as the source
// of an adjacency structure: a set of nodes (precincts, tracts, districts...)
// and the weighted, undirected links between them.
//
// All Graph methods are safe for concurrent use. Vertices and edges are guarded
// by separate sync.RWMutex locks (muVert, muEdge); lock order is always
// muVert -> muEdge.
//
// Errors:
//
//	ErrEmptyVertexID       - vertex ID is the empty string.
//	ErrVertexNotFound      - requested vertex does not exist.
//	ErrBadWeight           - weight not allowed by the graph mode.
//	ErrLoopNotAllowed      - self-loop when loops are disabled.
//	ErrMultiEdgeNotAllowed - parallel edge when multi-edges are disabled.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrBadWeight indicates a non-zero weight on an unweighted graph, or a
	// negative weight on a weighted one (adjacency entries are counts).
	ErrBadWeight = errors.New("core: bad edge weight")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted when multi-edges are disabled.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")
)

// Vertex is a node of the graph.
type Vertex struct {
	// ID uniquely identifies this Vertex within its Graph.
	ID string

	// Metadata stores arbitrary user data (e.g. a precinct name). Not deep-copied.
	Metadata map[string]interface{}
}

// Edge is an undirected link between two vertices.
//
// Weight counts how strongly the endpoints are connected (shared boundary
// segments, commuting flows...). On unweighted graphs it is always 0 and
// adapters export it as 1.
type Edge struct {
	ID     string
	From   string
	To     string
	Weight int64
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithWeighted allows non-zero edge weights.
func WithWeighted() GraphOption {
	return func(g *Graph) { g.weighted = true }
}

// WithMultiEdges permits parallel edges between the same vertices.
// Adapters sum parallel weights into a single adjacency cell.
func WithMultiEdges() GraphOption {
	return func(g *Graph) { g.allowMulti = true }
}

// WithLoops permits self-loops.
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is an in-memory undirected graph.
type Graph struct {
	muVert sync.RWMutex // guards vertices
	muEdge sync.RWMutex // guards edges and adjacency

	weighted   bool
	allowMulti bool
	allowLoops bool

	nextEdgeID uint64             // atomic edge ID generator
	vertices   map[string]*Vertex // vertex ID → Vertex
	edges      map[string]*Edge   // edge ID → Edge

	// adjacency[u][v] holds the IDs of every edge joining u and v (mirrored).
	adjacency map[string]map[string]map[string]struct{}
}

// NewGraph creates an empty Graph. By default it is unweighted, with no loops
// and no multi-edges.
// Complexity: O(1).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:  make(map[string]*Vertex),
		edges:     make(map[string]*Edge),
		adjacency: make(map[string]map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Weighted reports whether edges carry explicit weights.
func (g *Graph) Weighted() bool { return g.weighted }

// Looped reports whether self-loops are allowed.
func (g *Graph) Looped() bool { return g.allowLoops }

// Multigraph reports whether parallel edges are allowed.
func (g *Graph) Multigraph() bool { return g.allowMulti }

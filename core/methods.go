// SPDX-License-Identifier: MIT

// File: methods.go
// Role: vertex and edge lifecycle plus read-only queries.
// Determinism:
//   - Vertices() returns IDs sorted lexicographically ascending.
//   - Edges() returns edges sorted by insertion order ("e1", "e2", ...).
// Concurrency:
//   - Vertex catalog under muVert, edges and adjacency under muEdge.

package core

import (
	"sort"
	"strconv"
	"sync/atomic"
)

// edgeIDPrefix yields stable human-readable IDs like "e1", "e2", ...
const edgeIDPrefix = 'e'

// AddVertex inserts a vertex if missing. Adding an existing vertex is a no-op.
//
// Errors:
//   - ErrEmptyVertexID if id == "".
//
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.muVert.Lock()
	defer g.muVert.Unlock()
	if _, ok := g.vertices[id]; ok {
		return nil
	}
	g.vertices[id] = &Vertex{ID: id, Metadata: make(map[string]interface{})}

	g.muEdge.Lock()
	if g.adjacency[id] == nil {
		g.adjacency[id] = make(map[string]map[string]struct{})
	}
	g.muEdge.Unlock()

	return nil
}

// HasVertex reports whether id is present.
func (g *Graph) HasVertex(id string) bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// Vertex returns the vertex with the given id.
func (g *Graph) Vertex(id string) (*Vertex, error) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	v, ok := g.vertices[id]
	if !ok {
		return nil, ErrVertexNotFound
	}

	return v, nil
}

// AddEdge links from and to, creating missing endpoints, and returns the new
// edge ID.
//
// Steps:
//  1. Validate IDs, weight and loop policy.
//  2. Ensure both endpoints exist.
//  3. Under muEdge, reject a parallel edge unless multi-edges are enabled.
//  4. Store the edge and mirror it in the adjacency index.
//
// Errors: ErrEmptyVertexID, ErrBadWeight, ErrLoopNotAllowed, ErrMultiEdgeNotAllowed.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, weight int64) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if (!g.weighted && weight != 0) || weight < 0 {
		return "", ErrBadWeight
	}
	if from == to && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}

	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}

	g.muEdge.Lock()
	defer g.muEdge.Unlock()

	if !g.allowMulti && len(g.adjacency[from][to]) > 0 {
		return "", ErrMultiEdgeNotAllowed
	}

	eid := nextEdgeID(g)
	g.edges[eid] = &Edge{ID: eid, From: from, To: to, Weight: weight}
	g.link(from, to, eid)
	if from != to {
		g.link(to, from, eid)
	}

	return eid, nil
}

// link registers eid under adjacency[from][to]. Caller holds muEdge.
func (g *Graph) link(from, to, eid string) {
	inner := g.adjacency[from]
	if inner == nil {
		inner = make(map[string]map[string]struct{})
		g.adjacency[from] = inner
	}
	if inner[to] == nil {
		inner[to] = make(map[string]struct{})
	}
	inner[to][eid] = struct{}{}
}

// HasEdge reports whether at least one edge joins from and to.
func (g *Graph) HasEdge(from, to string) bool {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	return len(g.adjacency[from][to]) > 0
}

// NeighborIDs returns the sorted IDs adjacent to id.
//
// Errors: ErrVertexNotFound if id is absent.
// Complexity: O(d log d) for degree d.
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}

	g.muEdge.RLock()
	out := make([]string, 0, len(g.adjacency[id]))
	for nb, ids := range g.adjacency[id] {
		if len(ids) > 0 {
			out = append(out, nb)
		}
	}
	g.muEdge.RUnlock()
	sort.Strings(out)

	return out, nil
}

// Vertices returns all vertex IDs in ascending lexicographic order.
// This order is the node order used by matrix adapters.
func (g *Graph) Vertices() []string {
	g.muVert.RLock()
	out := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		out = append(out, id)
	}
	g.muVert.RUnlock()
	sort.Strings(out)

	return out
}

// Edges returns a snapshot of all edges ordered by creation.
func (g *Graph) Edges() []*Edge {
	g.muEdge.RLock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	g.muEdge.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return edgeSeq(out[i].ID) < edgeSeq(out[j].ID)
	})

	return out
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.vertices)
}

// EdgeCount returns the number of edges (parallel edges counted separately).
func (g *Graph) EdgeCount() int {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	return len(g.edges)
}

// nextEdgeID returns "e<N>" for a monotonically increasing N.
func nextEdgeID(g *Graph) string {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	buf := make([]byte, 0, 21)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)

	return string(buf)
}

// edgeSeq parses the numeric suffix of an edge ID produced by nextEdgeID.
func edgeSeq(id string) uint64 {
	n, _ := strconv.ParseUint(id[1:], 10, 64)

	return n
}

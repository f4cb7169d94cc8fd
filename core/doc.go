// Package core provides a small, thread-safe, undirected Graph that serves as
// the source of an adjacency structure for population-mixing analysis.
//
// Nodes are typically geographic units (precincts, census tracts) and edges
// record adjacency between them, optionally weighted by a count such as the
// number of shared boundary segments.
//
// Configuration Options (GraphOption):
//
//	– WithWeighted()
//	    Permits non-zero weights; otherwise AddEdge(weight≠0) → ErrBadWeight.
//
//	– WithMultiEdges()
//	    Allows multiple parallel edges between the same endpoints.
//
//	– WithLoops()
//	    Allows self-loops. Scoring already adds an implicit self term, so
//	    loops are usually left disabled.
//
// Determinism:
//
//	Vertices() is sorted by ID and Edges() by creation order, so adapters in
//	package matrix produce the same node ordering on every run.
package core

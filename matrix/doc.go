// Package matrix holds the adjacency structure consumed by CAPY scoring.
//
// The matrix package provides:
//
//   - Adjacency: the read-only N×N interface scoring and simulation accept.
//   - Dense: row-major storage with O(1) lookups and O(N²) memory, best for
//     small or dense graphs.
//   - CSR: compressed sparse rows with O(N + E) memory and O(N + E) MatVec,
//     best for large, low-density graphs (thousands of precincts with a
//     handful of neighbors each).
//   - Adapters: NewAdjacencyMatrix (from core.Graph), DenseFromEdges and
//     CSRFromEdges (from index edge lists).
//   - Validators: a single composite ValidateAdjacency enforcing the square,
//     finite, non-negative and symmetric contract.
//
// Dense and CSR are numerically interchangeable: for the same logical input
// every method returns the same values, so a caller can switch representation
// purely for performance.
//
// See the examples in this package for usage patterns.
package matrix

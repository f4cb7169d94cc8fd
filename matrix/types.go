// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense and sparse representations.
package matrix

// Adjacency is a read-only N×N view of a weighted graph.
//
// Two implementations exist: *Dense (row-major, O(N²) memory) and *CSR
// (compressed sparse rows, O(N+E) memory). They are interchangeable: every
// method returns the same logical values for the same logical input.
//
// Complexity notes: Rows/Cols are O(1); At is O(1) for Dense and O(log d) for
// CSR; MatVec and Do are O(N²) for Dense and O(N+E) for CSR.
type Adjacency interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// At returns the entry at (i, j) or ErrOutOfRange.
	At(i, j int) (float64, error)

	// MatVec computes y = A·x. len(x) must equal Cols().
	MatVec(x []float64) ([]float64, error)

	// Do visits entries in row-major order and stops when f returns false.
	// Dense visits every cell; CSR visits stored non-zeros only.
	Do(f func(i, j int, v float64) bool)
}

// Edge is an undirected weighted link between node indices U and V, the
// ingestion unit of DenseFromEdges and CSRFromEdges.
type Edge struct {
	U, V int
	W    float64
}

// Compile-time assertions.
var (
	_ Adjacency = (*Dense)(nil)
	_ Adjacency = (*CSR)(nil)
)

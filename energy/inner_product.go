// SPDX-License-Identifier: MIT

package energy

import (
	"fmt"

	"github.com/katalvlaran/capy/matrix"
)

const (
	opInner       = "InnerProduct"
	opDenseInner  = "DenseInnerProduct"
	opSparseInner = "SparseInnerProduct"
)

// InnerProduct computes xᵗ·(A+I)·y.
//
// The identity is never materialized: (A+I)·y = A·y + y, so the cost is one
// MatVec plus O(N). For *matrix.CSR that is O(N + nnz).
//
// Errors:
//   - matrix.ErrNilMatrix for a nil adjacency,
//   - matrix.ErrNonSquare for a non-square one,
//   - matrix.ErrDimensionMismatch when len(x) or len(y) differs from N.
func InnerProduct(x, y Population, a matrix.Adjacency) (float64, error) {
	if err := checkShapes(x, y, a); err != nil {
		return 0, fmt.Errorf("%s: %w", opInner, err)
	}
	v, err := innerProduct(x.Float64s(), y.Float64s(), a)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opInner, err)
	}

	return v, nil
}

// DenseInnerProduct is InnerProduct pinned to the dense representation.
func DenseInnerProduct(x, y Population, a *matrix.Dense) (float64, error) {
	if a == nil {
		return 0, fmt.Errorf("%s: %w", opDenseInner, matrix.ErrNilMatrix)
	}

	return InnerProduct(x, y, a)
}

// SparseInnerProduct is InnerProduct pinned to the CSR representation.
func SparseInnerProduct(x, y Population, a *matrix.CSR) (float64, error) {
	if a == nil {
		return 0, fmt.Errorf("%s: %w", opSparseInner, matrix.ErrNilMatrix)
	}

	return InnerProduct(x, y, a)
}

// checkShapes validates a is a non-nil square adjacency matching both vectors.
func checkShapes(x, y Population, a matrix.Adjacency) error {
	if err := matrix.ValidateNotNil(a); err != nil {
		return err
	}
	if err := matrix.ValidateSquare(a); err != nil {
		return err
	}
	n := a.Rows()
	if len(x) != n || len(y) != n {
		return fmt.Errorf("vectors of length %d and %d against %d nodes: %w", len(x), len(y), n, matrix.ErrDimensionMismatch)
	}

	return nil
}

// innerProduct assumes validated shapes.
func innerProduct(xf, yf []float64, a matrix.Adjacency) (float64, error) {
	ay, err := a.MatVec(yf)
	if err != nil {
		return 0, err
	}

	return dotShifted(xf, ay, yf), nil
}

// dotShifted returns Σ x[i]·(ay[i] + y[i]), i.e. xᵗ·(A·y + y).
func dotShifted(x, ay, y []float64) float64 {
	var acc float64
	for i := range x {
		acc += x[i] * (ay[i] + y[i])
	}

	return acc
}

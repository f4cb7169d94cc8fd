// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for adjacency validation.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    branch with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure and allocate nothing.
//  - Value checks use Adjacency.Do, so CSR inputs are checked in O(nnz).
//
// Note:
//  - ValidateAdjacency runs the fixed sequence NotNil → Square → Finite →
//    NonNegative → Symmetric and stops at the first failure.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the adjacency is neither a nil interface nor a typed
// nil pointer of a known implementation.
// Complexity: O(1).
func ValidateNotNil(a Adjacency) error {
	switch m := a.(type) {
	case nil:
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	case *Dense:
		if m == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	case *CSR:
		if m == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateSquare checks Rows == Cols. Assumes a is non-nil.
// Complexity: O(1).
func ValidateSquare(a Adjacency) error {
	if a.Rows() != a.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateVecLen ensures x is non-nil with exactly n elements.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects NaN and ±Inf entries.
// Complexity: O(visited entries).
func ValidateFinite(a Adjacency) error {
	var bad error
	a.Do(func(i, j int, v float64) bool {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad = validatorErrorf(fmt.Sprintf("ValidateFinite(%d,%d)", i, j), ErrNaNInf)
			return false
		}
		return true
	})

	return bad
}

// ValidateNonNegative rejects negative entries.
// Complexity: O(visited entries).
func ValidateNonNegative(a Adjacency) error {
	var bad error
	a.Do(func(i, j int, v float64) bool {
		if v < 0 {
			bad = validatorErrorf(fmt.Sprintf("ValidateNonNegative(%d,%d)", i, j), ErrNegativeWeight)
			return false
		}
		return true
	})

	return bad
}

// ValidateSymmetric checks |a[i,j] - a[j,i]| <= eps for every visited entry.
// Visiting only stored entries is sufficient: an asymmetric pair always has
// at least one non-zero side. Assumes a is square.
// Complexity: O(visited entries · cost(At)).
func ValidateSymmetric(a Adjacency, eps float64) error {
	var bad error
	a.Do(func(i, j int, v float64) bool {
		if i == j {
			return true
		}
		w, err := a.At(j, i)
		if err != nil {
			bad = validatorErrorf("ValidateSymmetric", err)
			return false
		}
		if math.Abs(v-w) > eps {
			bad = validatorErrorf(fmt.Sprintf("ValidateSymmetric(%d,%d)", i, j), ErrAsymmetry)
			return false
		}
		return true
	})

	return bad
}

// ValidateAdjacency runs the composite check used before scoring or simulating.
func ValidateAdjacency(a Adjacency, eps float64) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateSquare(a); err != nil {
		return err
	}
	if err := ValidateFinite(a); err != nil {
		return err
	}
	if err := ValidateNonNegative(a); err != nil {
		return err
	}

	return ValidateSymmetric(a, eps)
}

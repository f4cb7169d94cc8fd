// SPDX-License-Identifier: MIT

// Package matrix - CSR (compressed sparse row) storage.
//
// Purpose:
//   - Hold large, low-density adjacency structures in O(N + nnz) memory.
//   - Produce exactly the same logical values as Dense through the Adjacency
//     interface, so callers can swap representations without changing results.
//
// Layout:
//   - indptr has length r+1; the non-zeros of row i live in
//     indices[indptr[i]:indptr[i+1]] (column ids, strictly ascending) and
//     data[indptr[i]:indptr[i+1]] (values).
//
// Complexity quicksheet:
//   - NewCSR: O(nnz log nnz); At: O(log d); MatVec: O(r + nnz).

package matrix

import (
	"fmt"
	"math"
	"sort"
)

const (
	ctxCSRAt     = "CSR.At"
	ctxCSRMatVec = "CSR.MatVec"
	ctxNewCSR    = "NewCSR"
)

// Entry is one (row, col, value) triplet used to assemble a CSR.
type Entry struct {
	Row, Col int
	Val      float64
}

// CSR is an immutable compressed-sparse-row matrix.
type CSR struct {
	r, c    int
	indptr  []int
	indices []int
	data    []float64
}

// NewCSR assembles an r×c CSR from triplets.
//
// Implementation:
//   - Stage 1: validate shape, bounds and finiteness of every entry.
//   - Stage 2: sort a copy of the entries by (row, col).
//   - Stage 3: sum duplicates, drop cells that end up exactly zero, fill indptr.
//
// Behavior highlights:
//   - The caller's slice is not reordered.
//   - Duplicate coordinates are summed (parallel edges).
//
// Errors:
//   - ErrInvalidDimensions, ErrOutOfRange, ErrNaNInf (unless the adapter was
//     built with WithNoValidateNaNInf).
//
// Complexity:
//   - Time O(nnz log nnz), Space O(r + nnz).
func NewCSR(rows, cols int, entries []Entry) (*CSR, error) {
	return newCSR(rows, cols, entries, DefaultValidateNaNInf)
}

// newCSR is NewCSR with an explicit finite-value policy; adapters pass the
// policy resolved from their options.
func newCSR(rows, cols int, entries []Entry, validateNaNInf bool) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s: %w", ctxNewCSR, ErrInvalidDimensions)
	}
	for _, e := range entries {
		if e.Row < 0 || e.Row >= rows || e.Col < 0 || e.Col >= cols {
			return nil, fmt.Errorf("%s: entry (%d,%d): %w", ctxNewCSR, e.Row, e.Col, ErrOutOfRange)
		}
		if validateNaNInf && (math.IsNaN(e.Val) || math.IsInf(e.Val, 0)) {
			return nil, fmt.Errorf("%s: entry (%d,%d): %w", ctxNewCSR, e.Row, e.Col, ErrNaNInf)
		}
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].Row != sorted[b].Row {
			return sorted[a].Row < sorted[b].Row
		}
		return sorted[a].Col < sorted[b].Col
	})

	s := &CSR{
		r:       rows,
		c:       cols,
		indptr:  make([]int, rows+1),
		indices: make([]int, 0, len(sorted)),
		data:    make([]float64, 0, len(sorted)),
	}

	var k int
	for k < len(sorted) {
		cur := sorted[k]
		sum := cur.Val
		k++
		for k < len(sorted) && sorted[k].Row == cur.Row && sorted[k].Col == cur.Col {
			sum += sorted[k].Val
			k++
		}
		if sum == 0 {
			continue
		}
		s.indices = append(s.indices, cur.Col)
		s.data = append(s.data, sum)
		s.indptr[cur.Row+1]++
	}
	// Prefix-sum row counts into row pointers.
	for i := 0; i < rows; i++ {
		s.indptr[i+1] += s.indptr[i]
	}

	return s, nil
}

// Rows returns the row count.
func (s *CSR) Rows() int { return s.r }

// Cols returns the column count.
func (s *CSR) Cols() int { return s.c }

// NNZ returns the number of stored non-zeros.
func (s *CSR) NNZ() int { return len(s.data) }

// At returns the entry at (i, j); absent cells read as 0.
// Complexity: O(log d) for row degree d.
func (s *CSR) At(i, j int) (float64, error) {
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return 0, fmt.Errorf("%s(%d,%d): %w", ctxCSRAt, i, j, ErrOutOfRange)
	}
	lo, hi := s.indptr[i], s.indptr[i+1]
	row := s.indices[lo:hi]
	k := sort.SearchInts(row, j)
	if k < len(row) && row[k] == j {
		return s.data[lo+k], nil
	}

	return 0, nil
}

// MatVec computes y = s·x.
// Determinism: rows ascending, stored columns ascending; the summation order
// matches Dense.MatVec restricted to non-zero cells.
// Complexity: O(r + nnz).
func (s *CSR) MatVec(x []float64) ([]float64, error) {
	if err := ValidateVecLen(x, s.c); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxCSRMatVec, err)
	}

	y := make([]float64, s.r)
	var i, k int
	var acc float64
	for i = 0; i < s.r; i++ {
		acc = zeroSum
		for k = s.indptr[i]; k < s.indptr[i+1]; k++ {
			acc += s.data[k] * x[s.indices[k]]
		}
		y[i] = acc
	}

	return y, nil
}

// Do visits stored non-zeros in row-major order; stops when f returns false.
func (s *CSR) Do(f func(i, j int, v float64) bool) {
	for i := 0; i < s.r; i++ {
		for k := s.indptr[i]; k < s.indptr[i+1]; k++ {
			if !f(i, s.indices[k], s.data[k]) {
				return
			}
		}
	}
}

// Row returns the column ids and values stored for row i. The slices alias
// internal storage and must not be modified.
func (s *CSR) Row(i int) (cols []int, vals []float64, err error) {
	if i < 0 || i >= s.r {
		return nil, nil, fmt.Errorf("CSR.Row(%d): %w", i, ErrOutOfRange)
	}
	lo, hi := s.indptr[i], s.indptr[i+1]

	return s.indices[lo:hi], s.data[lo:hi], nil
}

// ToDense expands s into a row-major Dense.
// Complexity: O(r*c).
func (s *CSR) ToDense() *Dense {
	d := &Dense{r: s.r, c: s.c, data: make([]float64, s.r*s.c), validateNaNInf: DefaultValidateNaNInf}
	s.Do(func(i, j int, v float64) bool {
		d.data[i*s.c+j] = v
		return true
	})

	return d
}

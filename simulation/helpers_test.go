package simulation_test

import (
	"testing"

	"github.com/katalvlaran/capy/matrix"
	"github.com/stretchr/testify/require"
)

// pathDense returns the unit-weight path 0-1-…-(n-1).
func pathDense(t testing.TB, n int) *matrix.Dense {
	t.Helper()
	edges := make([]matrix.Edge, 0, n-1)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, matrix.Edge{U: i, V: i + 1, W: 1})
	}
	d, err := matrix.DenseFromEdges(n, edges)
	require.NoError(t, err)

	return d
}

// k2 is the two-node graph with a single unit edge.
func k2(t testing.TB) *matrix.Dense {
	t.Helper()

	return pathDense(t, 2)
}

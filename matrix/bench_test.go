package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/capy/matrix"
)

// ringEdges returns a ring with a few random chords: low density, like precinct maps.
func ringEdges(n int) []matrix.Edge {
	rng := rand.New(rand.NewSource(1))
	edges := make([]matrix.Edge, 0, 2*n)
	for i := 0; i < n; i++ {
		edges = append(edges, matrix.Edge{U: i, V: (i + 1) % n, W: 1})
		edges = append(edges, matrix.Edge{U: i, V: rng.Intn(n), W: 1})
	}

	return edges
}

func benchMatVec(b *testing.B, a matrix.Adjacency, n int) {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i % 7)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = a.MatVec(x)
	}
}

func BenchmarkMatVecDense1000(b *testing.B) {
	d, _ := matrix.DenseFromEdges(1000, ringEdges(1000))
	benchMatVec(b, d, 1000)
}

func BenchmarkMatVecCSR1000(b *testing.B) {
	s, _ := matrix.CSRFromEdges(1000, ringEdges(1000))
	benchMatVec(b, s, 1000)
}

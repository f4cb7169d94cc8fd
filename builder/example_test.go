package builder_test

import (
	"fmt"

	"github.com/katalvlaran/capy/builder"
)

// ExampleGrid builds a 3×3 lattice of blocks.
func ExampleGrid() {
	g, err := builder.BuildGraph(nil, nil, builder.Grid(3, 3))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("vertices:", g.VertexCount())
	fmt.Println("edges:", g.EdgeCount())

	// Output:
	// vertices: 9
	// edges: 12
}

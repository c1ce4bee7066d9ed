package assembly_test

import (
	"fmt"

	"github.com/katalvlaran/tlattice/assembly"
)

// ExampleGraph_ShortestPath routes across a hexagon to the opposite cell.
func ExampleGraph_ShortestPath() {
	g := assembly.NewGraph()
	if _, err := g.CreatePolygon(assembly.Hexagon, 0, 0, assembly.DefaultParams()); err != nil {
		fmt.Println("error:", err)
		return
	}
	path, ok := g.ShortestPath(1, 4)
	fmt.Println(path, ok)
	// Output: [1 2 3 4] true
}

// ExampleGraph_RemoveCell shows the cascade on a square.
func ExampleGraph_RemoveCell() {
	g := assembly.NewGraph()
	_, _ = g.CreatePolygon(assembly.Square, 0, 0, assembly.DefaultParams())
	g.RemoveCell(2)

	st := g.Stats()
	poly, _ := g.Polygon(1)
	fmt.Println(st.CellCount, st.EdgeCount, poly.Cells)
	// Output: 3 2 [1 3 4]
}

package impact_test

import (
	"fmt"

	"github.com/katalvlaran/tlattice/assembly"
	"github.com/katalvlaran/tlattice/impact"
)

// ExampleSimulate strikes the top cell of a hexagon with 5 N.
func ExampleSimulate() {
	g := assembly.NewGraph()
	_, _ = g.CreatePolygon(assembly.Hexagon, 0, 0, assembly.DefaultParams())

	res, err := impact.Simulate(g, 1, 5)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	s := res.Summary
	fmt.Println(res.Order)
	fmt.Printf("cells=%d radius=%d force@4=%.3f N\n", s.AffectedCells, s.BlastRadius, res.States[4].Force)

	resp, _ := impact.ApplyResponse(g, res.Target, s.BlastRadius)
	fmt.Println("applied", resp.Applied, "refused", resp.Refused)
	// Output:
	// [1 2 6 3 5 4]
	// cells=6 radius=3 force@4=1.250 N
	// applied [1 2 3 4 5 6] refused []
}

package assembly_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tlattice/assembly"
	"github.com/katalvlaran/tlattice/cell"
)

// params is the tabletop geometry used throughout: 25 mm crossbar.
var params = assembly.DefaultParams()

// hexagon returns a graph holding one hexagon centered at the origin (ids 1..6).
func hexagon(t testing.TB) *assembly.Graph {
	t.Helper()
	g := assembly.NewGraph()
	_, err := g.CreatePolygon(assembly.Hexagon, 0, 0, params)
	require.NoError(t, err)
	return g
}

// requireConsistent checks link symmetry and point occupancy for every cell,
// plus ring continuity for every polygon whose members are all present.
func requireConsistent(t *testing.T, g *assembly.Graph) {
	t.Helper()
	for _, snap := range g.Cells() {
		require.Len(t, snap.Occupants, len(snap.Links), "cell %d: occupants vs links", snap.ID)
		for _, l := range snap.Links {
			owner, ok := snap.Occupants[l.Local]
			require.True(t, ok, "cell %d: point %v not marked occupied", snap.ID, l.Local)
			require.Equal(t, l.Neighbor, owner)

			back, err := g.Links(l.Neighbor)
			require.NoError(t, err)
			require.Contains(t, back, l.Mirror(snap.ID), "cell %d → %d not mirrored", snap.ID, l.Neighbor)
		}
	}
	for _, p := range g.Polygons() {
		if len(p.Cells) != p.Sides {
			continue
		}
		for i, id := range p.Cells {
			next := p.Cells[(i+1)%p.Sides]
			links, err := g.Links(id)
			require.NoError(t, err)
			require.Contains(t, links, cell.Link{
				Neighbor: next, Local: cell.Right, Remote: cell.Left, Strength: 0.9,
			})
		}
	}
}

func ids(vs ...int) []cell.ID {
	out := make([]cell.ID, len(vs))
	for i, v := range vs {
		out[i] = cell.ID(v)
	}
	return out
}

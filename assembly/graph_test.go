package assembly_test

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tlattice/assembly"
	"github.com/katalvlaran/tlattice/cell"
)

func TestRemoveCell_Cascade(t *testing.T) {
	g := hexagon(t)

	require.True(t, g.RemoveCell(3))
	require.False(t, g.RemoveCell(3), "second removal is a no-op")

	st := g.Stats()
	assert.Equal(t, 5, st.CellCount)
	assert.Equal(t, 4, st.EdgeCount)
	assert.Equal(t, 1, st.PolygonCount)

	poly, ok := g.Polygon(1)
	require.True(t, ok)
	assert.Equal(t, ids(1, 2, 4, 5, 6), poly.Cells)

	// both former neighbors freed the point that faced cell 3
	two, _ := g.Cell(2)
	four, _ := g.Cell(4)
	assert.NotContains(t, two.Occupants, cell.Right)
	assert.NotContains(t, four.Occupants, cell.Left)
	requireConsistent(t, g)

	for _, id := range ids(1, 2, 4, 5, 6) {
		require.True(t, g.RemoveCell(id))
	}
	assert.Empty(t, g.Polygons())
	assert.Zero(t, g.Stats().EdgeCount)
}

func TestShortestPath(t *testing.T) {
	g := hexagon(t)

	path, ok := g.ShortestPath(1, 4)
	require.True(t, ok)
	assert.Equal(t, ids(1, 2, 3, 4), path)

	path, ok = g.ShortestPath(1, 1)
	require.True(t, ok)
	assert.Equal(t, ids(1), path)

	_, ok = g.ShortestPath(1, 99)
	assert.False(t, ok)
	_, ok = g.ShortestPath(99, 1)
	assert.False(t, ok)

	// cutting the ring forces the long way round
	require.True(t, g.RemoveCell(2))
	path, ok = g.ShortestPath(1, 3)
	require.True(t, ok)
	assert.Equal(t, ids(1, 6, 5, 4, 3), path)
}

func TestShortestPath_Disconnected(t *testing.T) {
	g := hexagon(t)
	_, err := g.CreatePolygon(assembly.Triangle, 200, 0, params)
	require.NoError(t, err)

	_, ok := g.ShortestPath(1, 7)
	assert.False(t, ok)
}

func TestNeighborhood(t *testing.T) {
	g := hexagon(t)

	got := g.Neighborhood(1, 2)
	assert.Equal(t, map[cell.ID]int{1: 0, 2: 1, 6: 1, 3: 2, 5: 2}, got)

	assert.Len(t, g.Neighborhood(1, 10), 6)
	assert.Equal(t, map[cell.ID]int{1: 0}, g.Neighborhood(1, 0))
	assert.Empty(t, g.Neighborhood(42, 3))
}

func TestComponents(t *testing.T) {
	assert.Empty(t, assembly.NewGraph().Components())

	g := hexagon(t)
	assert.Equal(t, [][]cell.ID{ids(1, 2, 3, 4, 5, 6)}, g.Components())

	// one cut opens the ring, a second cut splits it
	g.RemoveCell(3)
	assert.Equal(t, [][]cell.ID{ids(1, 2, 4, 5, 6)}, g.Components())
	g.RemoveCell(6)
	assert.Equal(t, [][]cell.ID{ids(1, 2), ids(4, 5)}, g.Components())
}

func TestEdges_Canonical(t *testing.T) {
	g := hexagon(t)
	edges := g.Edges()
	require.Len(t, edges, 6)

	for i, e := range edges {
		assert.Less(t, e.A, e.B)
		if i > 0 {
			prev := edges[i-1]
			assert.True(t, prev.A < e.A || (prev.A == e.A && prev.B < e.B), "edges out of order")
		}
	}
	// ring closure 6 → 1 is reported from the low end: cell 1's left, cell 6's right
	assert.Equal(t, assembly.Edge{
		A: 1, B: 6,
		Link: cell.Link{Neighbor: 6, Local: cell.Left, Remote: cell.Right, Strength: 0.9},
	}, edges[1])
}

func TestStats_ModeCounts(t *testing.T) {
	g := hexagon(t)
	require.True(t, g.Transition(1, cell.Flex))
	require.True(t, g.Transition(2, cell.Sense))

	st := g.Stats()
	assert.Equal(t, map[cell.Mode]int{cell.Rigid: 4, cell.Flex: 1, cell.Sense: 1}, st.ModeCounts)
}

func TestAddCellAndConnect(t *testing.T) {
	g := assembly.NewGraph()
	require.NoError(t, g.AddCell(cell.New(10)))
	require.NoError(t, g.AddCell(cell.New(11)))

	require.ErrorIs(t, g.AddCell(cell.New(10)), assembly.ErrDuplicateCell)
	require.ErrorIs(t, g.AddCell(nil), cell.ErrNilCell)

	a, b := cell.New(20), cell.New(21)
	require.NoError(t, a.Connect(b, cell.Left, cell.Right, 1))
	require.ErrorIs(t, g.AddCell(a), assembly.ErrCellLinked)

	require.NoError(t, g.Connect(10, 11, cell.Right, cell.Left, 1))
	require.ErrorIs(t, g.Connect(10, 11, cell.Left, cell.Right, 1), cell.ErrAlreadyLinked)
	require.ErrorIs(t, g.Connect(10, 12, cell.Left, cell.Right, 1), assembly.ErrCellNotFound)

	require.NoError(t, g.AddCell(cell.New(12)))
	err := g.Connect(12, 11, cell.Right, cell.Left, 1)
	require.ErrorIs(t, err, cell.ErrPointOccupied)
	requireConsistent(t, g)

	// minted ids continue past the largest inserted id
	poly, err := g.CreatePolygon(assembly.Triangle, 0, 0, params)
	require.NoError(t, err)
	assert.Equal(t, ids(13, 14, 15), poly.Cells)
	_, owned := g.PolygonOf(10)
	assert.False(t, owned)
	pid, owned := g.PolygonOf(13)
	assert.True(t, owned)
	assert.Equal(t, poly.ID, pid)
}

func TestNeighborIDsAndLinks(t *testing.T) {
	g := hexagon(t)

	nbrs, err := g.NeighborIDs(1)
	require.NoError(t, err)
	assert.Equal(t, ids(2, 6), nbrs)

	links, err := g.Links(1)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, cell.ID(2), links[0].Neighbor)
	assert.Equal(t, cell.Right, links[0].Local)

	_, err = g.NeighborIDs(7)
	require.ErrorIs(t, err, assembly.ErrCellNotFound)
	_, err = g.Links(7)
	require.ErrorIs(t, err, assembly.ErrCellNotFound)
}

func TestModeMutators(t *testing.T) {
	g := hexagon(t)

	assert.True(t, g.CanTransition(1, cell.Harvest))
	assert.False(t, g.CanTransition(1, cell.Idle))
	assert.False(t, g.CanTransition(99, cell.Flex))

	assert.False(t, g.Transition(1, cell.Idle))
	m, _ := g.Mode(1)
	assert.Equal(t, cell.Rigid, m)
	assert.False(t, g.Transition(99, cell.Flex))

	assert.True(t, g.SetRole(1, cell.RoleReserve))
	assert.False(t, g.SetRole(99, cell.RoleReserve))
	assert.True(t, g.SetSensor(1, cell.SensorState{StemExtension: 0.25, Strain: 0.1}))
	snap, _ := g.Cell(1)
	assert.Equal(t, cell.RoleReserve, snap.Role)
	assert.Equal(t, 0.25, snap.Sensor.StemExtension)
}

func TestCycleMode(t *testing.T) {
	g := hexagon(t)

	// rigid → flex → sense (flex cannot harvest) → rigid (sense cannot idle)
	want := []cell.Mode{cell.Flex, cell.Sense, cell.Rigid, cell.Flex}
	for _, w := range want {
		got, changed := g.CycleMode(1)
		require.True(t, changed)
		require.Equal(t, w, got)
	}

	require.NoError(t, g.AddCell(cell.New(50)))
	got, changed := g.CycleMode(50)
	assert.False(t, changed, "idle reaches nothing in the cycle")
	assert.Equal(t, cell.Idle, got)

	_, changed = g.CycleMode(99)
	assert.False(t, changed)
}

func TestNearestCell(t *testing.T) {
	g := hexagon(t)

	id, ok := g.NearestCell(0, 30, 0)
	require.True(t, ok)
	assert.Equal(t, cell.ID(1), id)

	id, ok = g.NearestCell(0, -30, 0)
	require.True(t, ok)
	assert.Equal(t, cell.ID(4), id)

	_, ok = g.NearestCell(500, 500, 25)
	assert.False(t, ok)

	_, ok = assembly.NewGraph().NearestCell(0, 0, 0)
	assert.False(t, ok)
}

func TestIndependentGraphs(t *testing.T) {
	a, b := hexagon(t), hexagon(t)
	assert.Equal(t, a.Edges(), b.Edges())
	assert.Equal(t, a.Cells(), b.Cells())

	c := assembly.NewGraph(assembly.WithFirstID(100))
	poly, err := c.CreatePolygon(assembly.Triangle, 0, 0, params)
	require.NoError(t, err)
	assert.Equal(t, ids(100, 101, 102), poly.Cells)

	c.Reset()
	assert.Zero(t, c.CellCount())
	poly, err = c.CreatePolygon(assembly.Triangle, 0, 0, params)
	require.NoError(t, err)
	assert.Equal(t, ids(100, 101, 102), poly.Cells)
	assert.Equal(t, assembly.PolygonID(1), poly.ID)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := assembly.NewGraph(assembly.WithLogger(log))

	_, err := g.CreatePolygon(assembly.Square, 0, 0, params)
	require.NoError(t, err)
	g.RemoveCell(1)

	assert.Contains(t, buf.String(), "polygon created")
	assert.Contains(t, buf.String(), "cell removed")
	assert.Panics(t, func() { assembly.WithLogger(nil) })
}

// TestConcurrentReadersAndWriters mixes queries with snaps and removals.
func TestConcurrentReadersAndWriters(t *testing.T) {
	g := hexagon(t)
	const workers = 16
	var wg sync.WaitGroup
	wg.Add(2 * workers)

	for i := 0; i < workers; i++ {
		go func(n int) {
			defer wg.Done()
			_, _, _ = g.Place(assembly.Triangle, float64(n*10), 40, params)
			g.RemoveCell(cell.ID(n + 1))
		}(i)
		go func() {
			defer wg.Done()
			_ = g.Edges()
			_ = g.Stats()
			_, _ = g.ShortestPath(1, 4)
			_ = g.Neighborhood(4, 3)
		}()
	}
	wg.Wait()
	requireConsistent(t, g)
}

package assembly

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/tlattice/bfs"
	"github.com/katalvlaran/tlattice/cell"
	"github.com/katalvlaran/tlattice/dfs"
)

// lockedView exposes the graph to bfs and dfs while the caller already
// holds g.mu.
type lockedView struct{ g *Graph }

func (v lockedView) Cells() []cell.ID { return v.g.sortedIDs() }

func (v lockedView) HasCell(id cell.ID) bool {
	_, ok := v.g.cells[id]
	return ok
}

func (v lockedView) NeighborIDs(id cell.ID) ([]cell.ID, error) {
	c, ok := v.g.cells[id]
	if !ok {
		return nil, fmt.Errorf("%d: %w", id, ErrCellNotFound)
	}
	return c.NeighborIDs(), nil
}

// Edges lists every undirected link once, ordered by (A, B) with A < B.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Edge
	for _, id := range g.sortedIDs() {
		for _, l := range g.cells[id].Links() {
			if l.Neighbor > id {
				out = append(out, Edge{A: id, B: l.Neighbor, Link: l})
			}
		}
	}
	return out
}

// ShortestPath returns a minimum-hop route from → to inclusive.
// Ties resolve toward lower ids. Returns nil, false when either end is
// absent or no route exists; from == to yields [from].
func (g *Graph) ShortestPath(from, to cell.ID) ([]cell.ID, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.cells[from]; !ok {
		return nil, false
	}
	if _, ok := g.cells[to]; !ok {
		return nil, false
	}
	res, err := bfs.BFS(lockedView{g}, from, bfs.WithStopAt(to))
	if err != nil {
		return nil, false
	}
	path, err := res.PathTo(to)
	if err != nil {
		return nil, false
	}
	return path, true
}

// Neighborhood maps every cell within maxHops of src to its hop count,
// src included at 0. An absent src yields an empty map; maxHops <= 0
// yields only src.
func (g *Graph) Neighborhood(src cell.ID, maxHops int) map[cell.ID]int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.cells[src]; !ok {
		return map[cell.ID]int{}
	}
	if maxHops <= 0 {
		// bfs treats depth 0 as unlimited
		return map[cell.ID]int{src: 0}
	}
	res, err := bfs.BFS(lockedView{g}, src, bfs.WithMaxDepth(maxHops))
	if err != nil {
		return map[cell.ID]int{}
	}
	return res.Depth
}

// Components splits the lattice into connected pieces. Each piece is
// ascending and pieces are ordered by their lowest id. A removal that cuts
// a ring in two shows up here as an extra piece.
func (g *Graph) Components() [][]cell.ID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	res, err := dfs.DFS(lockedView{g}, 0, dfs.WithFullTraversal())
	if err != nil {
		return nil
	}
	pieces := res.Components()
	for _, p := range pieces {
		sort.Slice(p, func(i, j int) bool { return p[i] < p[j] })
	}
	return pieces
}

// Stats returns aggregate counts. EdgeCount is half the sum of degrees.
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := Stats{
		CellCount:    len(g.cells),
		PolygonCount: len(g.polygons),
		ModeCounts:   make(map[cell.Mode]int),
	}
	degrees := 0
	for _, c := range g.cells {
		degrees += c.Degree()
		s.ModeCounts[c.Mode()]++
	}
	s.EdgeCount = degrees / 2
	return s
}

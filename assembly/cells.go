// File: cells.go
// Role: Cell lifecycle, per-cell queries and mode/tag mutators.
//
// Determinism:
//   - Cells(), NeighborIDs(), Links() return ascending ids.
//   - NearestCell breaks distance ties by ascending id.
//
// Concurrency:
//   - Every exported method takes g.mu; sortedIDs and lookups assume it is held.
package assembly

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/tlattice/cell"
)

// AddCell inserts an unlinked cell. Minted ids continue after the largest
// id ever inserted.
//
// Errors:
//   - cell.ErrNilCell for nil.
//   - ErrDuplicateCell if the id is present.
//   - ErrCellLinked if c already carries links.
func (g *Graph) AddCell(c *cell.Cell) error {
	if c == nil {
		return cell.ErrNilCell
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.cells[c.ID()]; exists {
		return fmt.Errorf("AddCell(%d): %w", c.ID(), ErrDuplicateCell)
	}
	if c.Degree() > 0 {
		return fmt.Errorf("AddCell(%d): %w", c.ID(), ErrCellLinked)
	}
	g.insert(c)
	return nil
}

// insert registers c and keeps the id generator ahead of it.
func (g *Graph) insert(c *cell.Cell) {
	g.cells[c.ID()] = c
	if c.ID() >= g.nextCell {
		g.nextCell = c.ID() + 1
	}
}

// RemoveCell deletes a cell and cascades: every neighbor drops its half of
// the link, the cell leaves its polygon, and an emptied polygon is deleted.
// Reports false (no-op) for an absent id.
//
// Complexity: O(d + s) for d neighbors and s polygon sides.
func (g *Graph) RemoveCell(id cell.ID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.cells[id]
	if !ok {
		return false
	}

	for _, nid := range c.NeighborIDs() {
		if n, ok := g.cells[nid]; ok {
			n.Disconnect(id)
		}
		c.Disconnect(nid)
	}

	if pid, owned := g.owner[id]; owned {
		if poly, ok := g.polygons[pid]; ok {
			kept := poly.Cells[:0]
			for _, member := range poly.Cells {
				if member != id {
					kept = append(kept, member)
				}
			}
			poly.Cells = kept
			if len(poly.Cells) == 0 {
				delete(g.polygons, pid)
				g.log.Debug("polygon emptied", "polygon", pid)
			}
		}
		delete(g.owner, id)
	}

	delete(g.cells, id)
	g.log.Debug("cell removed", "cell", id)
	return true
}

// Connect links two cells already in the graph at the given points.
// All cell.Connect preconditions apply and are reported wrapped.
func (g *Graph) Connect(a, b cell.ID, pa, pb cell.Point, strength float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	ca, ok := g.cells[a]
	if !ok {
		return fmt.Errorf("Connect(%d,%d): %d: %w", a, b, a, ErrCellNotFound)
	}
	cb, ok := g.cells[b]
	if !ok {
		return fmt.Errorf("Connect(%d,%d): %d: %w", a, b, b, ErrCellNotFound)
	}
	if err := ca.Connect(cb, pa, pb, strength); err != nil {
		return fmt.Errorf("Connect(%d,%d): %w", a, b, err)
	}
	return nil
}

// HasCell reports whether id is present.
func (g *Graph) HasCell(id cell.ID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.cells[id]
	return ok
}

// CellCount returns the number of cells.
func (g *Graph) CellCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.cells)
}

// Cell returns a detached snapshot of one cell.
func (g *Graph) Cell(id cell.ID) (cell.Snapshot, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.cells[id]
	if !ok {
		return cell.Snapshot{}, false
	}
	return c.Snapshot(), true
}

// Cells returns snapshots of every cell in ascending id order.
func (g *Graph) Cells() []cell.Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]cell.Snapshot, 0, len(g.cells))
	for _, id := range g.sortedIDs() {
		out = append(out, g.cells[id].Snapshot())
	}
	return out
}

// Mode returns the current mode of id.
func (g *Graph) Mode(id cell.ID) (cell.Mode, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.cells[id]
	if !ok {
		return 0, false
	}
	return c.Mode(), true
}

// NeighborIDs returns the neighbors of id in ascending order.
func (g *Graph) NeighborIDs(id cell.ID) ([]cell.ID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.cells[id]
	if !ok {
		return nil, fmt.Errorf("NeighborIDs(%d): %w", id, ErrCellNotFound)
	}
	return c.NeighborIDs(), nil
}

// Links returns the links of id ordered by ascending neighbor id.
func (g *Graph) Links(id cell.ID) ([]cell.Link, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.cells[id]
	if !ok {
		return nil, fmt.Errorf("Links(%d): %w", id, ErrCellNotFound)
	}
	return c.Links(), nil
}

// PolygonOf returns the polygon owning id, if any.
func (g *Graph) PolygonOf(id cell.ID) (PolygonID, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	pid, ok := g.owner[id]
	return pid, ok
}

// CanTransition reports whether id exists and may move to m.
func (g *Graph) CanTransition(id cell.ID, m cell.Mode) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.cells[id]
	return ok && c.CanTransition(m)
}

// Transition applies a legal mode change; false if absent or refused.
func (g *Graph) Transition(id cell.ID, m cell.Mode) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.cells[id]
	if !ok {
		return false
	}
	return c.Transition(m)
}

// SetRole assigns the structural role χ.
func (g *Graph) SetRole(id cell.ID, r cell.Role) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.cells[id]
	if !ok {
		return false
	}
	c.Role = r
	return true
}

// SetSensor replaces the telemetry δ of id.
func (g *Graph) SetSensor(id cell.ID, s cell.SensorState) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.cells[id]
	if !ok {
		return false
	}
	c.Sensor = s
	return true
}

// modeCycle is the order CycleMode walks.
var modeCycle = [...]cell.Mode{cell.Rigid, cell.Flex, cell.Harvest, cell.Sense, cell.Idle}

// CycleMode advances id to the next entry of rigid→flex→harvest→sense→idle
// that is a legal transition from its current mode, skipping illegal ones.
// Returns the resulting mode and whether it changed.
func (g *Graph) CycleMode(id cell.ID) (cell.Mode, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.cells[id]
	if !ok {
		return 0, false
	}

	idx := -1
	for i, m := range modeCycle {
		if m == c.Mode() {
			idx = i
			break
		}
	}
	n := len(modeCycle)
	for k := 1; k < n; k++ {
		next := modeCycle[(idx+k+n)%n]
		if c.Transition(next) {
			return next, true
		}
	}
	return c.Mode(), false
}

// NearestCell returns the cell whose crossbar midpoint is closest to (x,z).
// maxDist > 0 bounds the search (strictly closer than maxDist).
func (g *Graph) NearestCell(x, z, maxDist float64) (cell.ID, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	best, bestDist, found := cell.ID(0), math.Inf(1), false
	for _, id := range g.sortedIDs() {
		pos := g.cells[id].Pose.Position
		d := math.Hypot(pos.X-x, pos.Z-z)
		if d < bestDist && (maxDist <= 0 || d < maxDist) {
			best, bestDist, found = id, d, true
		}
	}
	return best, found
}

// sortedIDs lists cell ids ascending. Caller holds g.mu.
func (g *Graph) sortedIDs() []cell.ID {
	ids := make([]cell.ID, 0, len(g.cells))
	for id := range g.cells {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SPDX-License-Identifier: MIT
// Package: tlattice/assembly
//
// polygon.go: polygon creation, snapping and the auto-connect pass.
//
// Layout contract (CreatePolygon):
//   - sides cells evenly spaced on the inscribed circle, the first at +90°.
//   - cell i sits at angle θᵢ = 2π·i/sides + π/2 with rotation θᵢ − π/2,
//     so its stem points at the center.
//   - right(i) ↔ left(i+1 mod sides) at PolygonLinkStrength.
//
// Determinism:
//   - Snap search and auto-connect scan cells in ascending id, then points in
//     left, right, stemTip order; the first strictly-closer hit wins.
//
// Complexity:
//   - CreatePolygon O(sides); SnapPolygon O(V) scan + O(V²) auto-connect.

package assembly

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/tlattice/cell"
	"github.com/katalvlaran/tlattice/physconst"
)

// CreatePolygon builds a closed ring of new rigid, load-bearing cells
// centered at (x, z). It is the only path that mints cells.
func (g *Graph) CreatePolygon(kind Shape, x, z float64, p Params) (Polygon, error) {
	if kind.Sides() == 0 {
		return Polygon{}, fmt.Errorf("CreatePolygon: %w: %v", ErrUnknownShape, kind)
	}
	if err := p.Validate(); err != nil {
		return Polygon{}, fmt.Errorf("CreatePolygon: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	poly := g.createPolygon(kind, x, z, p)
	return poly.clone(), nil
}

// createPolygon assumes g.mu is held and inputs are valid.
func (g *Graph) createPolygon(kind Shape, x, z float64, p Params) *Polygon {
	sides := kind.Sides()
	radius := kind.InscribedRadius(p.CrossbarLength)
	stem := p.StemExtension(radius)
	step := 2 * math.Pi / float64(sides)

	poly := &Polygon{
		ID:     g.mintPolygon(),
		Shape:  kind,
		Center: cell.Vec2{X: x, Z: z},
		Sides:  sides,
		Cells:  make([]cell.ID, 0, sides),
	}

	ring := make([]*cell.Cell, sides)
	for i := range ring {
		angle := step*float64(i) + math.Pi/2
		c := cell.New(g.mintCell(),
			cell.WithMode(cell.Rigid),
			cell.WithRole(cell.RoleLoadBearing),
			cell.WithStemExtension(stem),
			cell.WithPose(cell.Pose{
				Position: cell.Vec2{X: x + radius*math.Cos(angle), Z: z + radius*math.Sin(angle)},
				Rotation: angle - math.Pi/2,
			}),
		)
		g.insert(c)
		g.owner[c.ID()] = poly.ID
		ring[i] = c
		poly.Cells = append(poly.Cells, c.ID())
	}

	for i, c := range ring {
		next := ring[(i+1)%sides]
		// fresh cells with distinct ids and free points: cannot fail
		_ = c.Connect(next, cell.Right, cell.Left, physconst.PolygonLinkStrength)
	}

	g.polygons[poly.ID] = poly
	g.log.Debug("polygon created",
		"polygon", poly.ID, "shape", kind.String(), "x", x, "z", z, "cells", sides)
	return poly
}

// SnapPolygon attaches a new polygon to the closest free crossbar endpoint
// within SnapRadiusFactor·CrossbarLength of (nearX, nearZ), then runs the
// auto-connect pass. Returns false when no endpoint qualifies.
func (g *Graph) SnapPolygon(kind Shape, nearX, nearZ float64, p Params) (Polygon, bool, error) {
	if kind.Sides() == 0 {
		return Polygon{}, false, fmt.Errorf("SnapPolygon: %w: %v", ErrUnknownShape, kind)
	}
	if err := p.Validate(); err != nil {
		return Polygon{}, false, fmt.Errorf("SnapPolygon: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	poly, ok := g.snapPolygon(kind, nearX, nearZ, p)
	if !ok {
		return Polygon{}, false, nil
	}
	return poly.clone(), true, nil
}

func (g *Graph) snapPolygon(kind Shape, nearX, nearZ float64, p Params) (*Polygon, bool) {
	host, at, ok := g.closestFreeEndpoint(nearX, nearZ, p.CrossbarLength*physconst.SnapRadiusFactor, p.CrossbarLength)
	if !ok {
		g.log.Debug("snap: no free endpoint", "x", nearX, "z", nearZ)
		return nil, false
	}

	// local +Z of the host points away from its own polygon's center
	outward := host.Pose.Rotation + math.Pi/2
	offset := 2 * kind.InscribedRadius(p.CrossbarLength)
	cx := at.X + offset*math.Cos(outward)
	cz := at.Z + offset*math.Sin(outward)

	poly := g.createPolygon(kind, cx, cz, p)
	links := g.autoConnect(p.CrossbarLength)
	g.log.Debug("snap: attached",
		"polygon", poly.ID, "host", host.ID(), "links", links)
	return poly, true
}

// closestFreeEndpoint scans unoccupied left/right points strictly within
// limit of (x, z). Caller holds g.mu.
func (g *Graph) closestFreeEndpoint(x, z, limit, crossbar float64) (*cell.Cell, cell.Vec2, bool) {
	var (
		best     *cell.Cell
		bestPos  cell.Vec2
		bestDist = math.Inf(1)
	)
	for _, id := range g.sortedIDs() {
		c := g.cells[id]
		for _, pt := range cell.Points {
			if !pt.Crossbar() || c.Occupied(pt) {
				continue
			}
			pos, _ := c.ConnectionWorldPosition(pt, crossbar)
			d := math.Hypot(pos.X-x, pos.Z-z)
			if d < bestDist && d < limit {
				best, bestPos, bestDist = c, pos, d
			}
		}
	}
	return best, bestPos, best != nil
}

// autoConnect links every pair of cells from different polygons whose free
// points lie closer than AutoLinkFactor·crossbar, at AutoLinkStrength.
// A pair receives at most one link. Returns the number of links made.
// Caller holds g.mu.
func (g *Graph) autoConnect(crossbar float64) int {
	threshold := crossbar * physconst.AutoLinkFactor
	ids := g.sortedIDs()
	made := 0

	for i := 0; i < len(ids); i++ {
		a := g.cells[ids[i]]
		for j := i + 1; j < len(ids); j++ {
			b := g.cells[ids[j]]
			if _, linked := a.LinkTo(b.ID()); linked || g.samePolygon(a.ID(), b.ID()) {
				continue
			}
			if g.linkClosePoints(a, b, crossbar, threshold) {
				made++
			}
		}
	}
	g.log.Debug("auto-connect", "links", made)
	return made
}

// linkClosePoints connects the first free point pair of a and b within threshold.
func (g *Graph) linkClosePoints(a, b *cell.Cell, crossbar, threshold float64) bool {
	for _, pa := range cell.Points {
		if a.Occupied(pa) {
			continue
		}
		posA, _ := a.ConnectionWorldPosition(pa, crossbar)
		for _, pb := range cell.Points {
			if b.Occupied(pb) {
				continue
			}
			posB, _ := b.ConnectionWorldPosition(pb, crossbar)
			if math.Hypot(posA.X-posB.X, posA.Z-posB.Z) < threshold {
				return a.Connect(b, pa, pb, physconst.AutoLinkStrength) == nil
			}
		}
	}
	return false
}

// samePolygon treats two freestanding cells as sharing the (absent) polygon.
func (g *Graph) samePolygon(a, b cell.ID) bool {
	pa, okA := g.owner[a]
	pb, okB := g.owner[b]
	return okA == okB && pa == pb
}

// Place snaps a new polygon near (x, z) when a free endpoint is in range and
// otherwise creates it freestanding centered at (x, z). snapped reports which.
func (g *Graph) Place(kind Shape, x, z float64, p Params) (poly Polygon, snapped bool, err error) {
	if kind.Sides() == 0 {
		return Polygon{}, false, fmt.Errorf("Place: %w: %v", ErrUnknownShape, kind)
	}
	if err := p.Validate(); err != nil {
		return Polygon{}, false, fmt.Errorf("Place: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if pp, ok := g.snapPolygon(kind, x, z, p); ok {
		return pp.clone(), true, nil
	}
	return g.createPolygon(kind, x, z, p).clone(), false, nil
}

// Polygon returns a copy of one polygon.
func (g *Graph) Polygon(id PolygonID) (Polygon, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.polygons[id]
	if !ok {
		return Polygon{}, false
	}
	return p.clone(), true
}

// Polygons returns copies of all polygons in ascending id order.
func (g *Graph) Polygons() []Polygon {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]PolygonID, 0, len(g.polygons))
	for id := range g.polygons {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Polygon, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.polygons[id].clone())
	}
	return out
}

package assembly

import (
	"io"
	"log/slog"
	"sync"

	"github.com/katalvlaran/tlattice/cell"
)

// PolygonID identifies a polygon within one Graph.
type PolygonID int64

// Polygon is a closed ring of cells. Cells[i] owns edge i; consecutive
// entries are linked right-of-previous ↔ left-of-next while all members live.
type Polygon struct {
	ID     PolygonID
	Shape  Shape
	Center cell.Vec2
	Sides  int
	Cells  []cell.ID
}

func (p *Polygon) clone() Polygon {
	out := *p
	out.Cells = append([]cell.ID(nil), p.Cells...)
	return out
}

// Edge is one undirected link, reported once with A < B.
// Link is seen from A: Link.Local is A's point, Link.Remote is B's.
type Edge struct {
	A, B cell.ID
	Link cell.Link
}

// Stats summarizes the graph.
type Stats struct {
	CellCount    int
	EdgeCount    int
	PolygonCount int
	ModeCounts   map[cell.Mode]int
}

// Option configures a Graph at construction.
type Option func(*Graph)

// WithLogger routes debug records to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("assembly: WithLogger(nil)")
	}
	return func(g *Graph) { g.log = l }
}

// WithFirstID sets the first cell id the graph mints (default 1).
func WithFirstID(id cell.ID) Option {
	return func(g *Graph) {
		g.firstID = id
		g.nextCell = id
	}
}

// Graph owns all cells and polygons of one assembly.
type Graph struct {
	mu sync.RWMutex

	cells    map[cell.ID]*cell.Cell
	owner    map[cell.ID]PolygonID // cell → polygon; absent for freestanding cells
	polygons map[PolygonID]*Polygon

	// id generators are per graph so independent graphs never share numbering
	firstID     cell.ID
	nextCell    cell.ID
	nextPolygon PolygonID

	log *slog.Logger
}

// NewGraph creates an empty Graph. By default it mints cell ids from 1 and
// discards log output.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{
		cells:       make(map[cell.ID]*cell.Cell),
		owner:       make(map[cell.ID]PolygonID),
		polygons:    make(map[PolygonID]*Polygon),
		firstID:     1,
		nextCell:    1,
		nextPolygon: 1,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// mintCell returns a fresh cell id.
func (g *Graph) mintCell() cell.ID {
	id := g.nextCell
	g.nextCell++
	return id
}

// mintPolygon returns a fresh polygon id.
func (g *Graph) mintPolygon() PolygonID {
	id := g.nextPolygon
	g.nextPolygon++
	return id
}

// Reset removes every cell and polygon and restarts both id generators.
func (g *Graph) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cells = make(map[cell.ID]*cell.Cell)
	g.owner = make(map[cell.ID]PolygonID)
	g.polygons = make(map[PolygonID]*Polygon)
	g.nextCell = g.firstID
	g.nextPolygon = 1
	g.log.Debug("graph reset")
}

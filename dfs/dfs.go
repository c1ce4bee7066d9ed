package dfs

import (
	"fmt"

	"github.com/katalvlaran/tlattice/cell"
)

// walker encapsulates state during DFS.
type walker struct {
	graph   Graph
	opts    Options
	res     *Result
	skipped int
}

// DFS performs depth-first search on g. With WithFullTraversal it covers
// every cell and start is ignored; otherwise it explores start's piece only.
// A partial Result is returned alongside context and hook errors.
func DFS(g Graph, start cell.ID, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	if !o.FullTraversal && !g.HasCell(start) {
		return nil, ErrStartVertexNotFound
	}

	var roots []cell.ID
	if o.FullTraversal {
		roots = g.Cells()
	} else {
		roots = []cell.ID{start}
	}

	res := &Result{
		Order:   make([]cell.ID, 0, len(roots)),
		Depth:   make(map[cell.ID]int, len(roots)),
		Parent:  make(map[cell.ID]cell.ID, len(roots)),
		Visited: make(map[cell.ID]bool, len(roots)),
	}
	w := &walker{graph: g, opts: o, res: res}

	for _, r := range roots {
		if res.Visited[r] {
			continue
		}
		if err := w.traverse(r, 0); err != nil {
			res.SkippedNeighbors = w.skipped
			return res, err
		}
	}

	res.SkippedNeighbors = w.skipped
	return res, nil
}

// traverse visits id at depth and recurses into unvisited neighbors.
func (w *walker) traverse(id cell.ID, depth int) error {
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	w.res.Visited[id] = true
	w.res.Depth[id] = depth

	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id); err != nil {
			w.res.Order = nil
			return fmt.Errorf("dfs: OnVisit hook for %d: %w", id, err)
		}
	}

	nbs, err := w.graph.NeighborIDs(id)
	if err != nil {
		w.res.Order = nil
		return fmt.Errorf("dfs: NeighborIDs(%d): %w", id, err)
	}

	for _, nid := range nbs {
		if nid == id || w.res.Visited[nid] {
			continue
		}
		if w.opts.FilterNeighbor != nil && !w.opts.FilterNeighbor(nid) {
			w.skipped++
			continue
		}
		if w.opts.MaxDepth >= 0 && depth+1 > w.opts.MaxDepth {
			continue
		}
		w.res.Parent[nid] = id
		if err = w.traverse(nid, depth+1); err != nil {
			return err
		}
	}

	if w.opts.OnExit != nil {
		if err = w.opts.OnExit(id); err != nil {
			w.res.Order = nil
			return fmt.Errorf("dfs: OnExit hook for %d: %w", id, err)
		}
	}

	w.res.Order = append(w.res.Order, id)
	return nil
}

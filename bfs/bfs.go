package bfs

import (
	"fmt"

	"github.com/katalvlaran/tlattice/cell"
)

// queueItem pairs a cell ID with its BFS depth.
type queueItem struct {
	id    cell.ID
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   Graph
	opts    Options
	queue   []queueItem
	visited map[cell.ID]bool
	res     *Result
	done    bool
}

// BFS runs breadth-first search on g starting from start,
// applying any number of functional Options.
// Returns ErrGraphNil or ErrStartNotFound for invalid input,
// ErrOptionViolation for bad options, ErrNeighbors for graph failures,
// or any user-supplied hook error.
func BFS(g Graph, start cell.ID, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	if !g.HasCell(start) {
		return nil, fmt.Errorf("%w: %d", ErrStartNotFound, start)
	}

	w := &walker{
		graph:   g,
		opts:    o,
		visited: make(map[cell.ID]bool),
		res: &Result{
			Depth:  make(map[cell.ID]int),
			Parent: make(map[cell.ID]cell.ID),
		},
	}

	w.enqueue(start, 0, start, false)
	return w.res, w.loop()
}

// enqueue marks id visited at depth d, records its parent and adds it to
// the queue. Discovering StopAt ends the search after the current visit.
func (w *walker) enqueue(id cell.ID, d int, parent cell.ID, hasParent bool) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if hasParent {
		w.res.Parent[id] = parent
	}
	w.opts.OnEnqueue(id, d)
	w.queue = append(w.queue, queueItem{id: id, depth: d})
	if w.opts.hasStopAt && id == w.opts.StopAt {
		w.done = true
	}
}

// loop processes the queue until empty, error, or early stop.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		item := w.dequeue()
		if err := w.visit(item); err != nil {
			return err
		}
		if w.done {
			return nil
		}
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
		if w.done {
			return nil
		}
	}
	return nil
}

// dequeue pops the first item, invokes OnDequeue, and returns it.
func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	w.opts.OnDequeue(item.id, item.depth)
	return item
}

// visit records the cell in Order and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.id)
	if err := w.opts.OnVisit(item.id, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %d: %w", item.id, err)
	}
	return nil
}

// enqueueNeighbors retrieves neighbors, applies filtering and MaxDepth,
// and enqueues each unseen neighbor.
func (w *walker) enqueueNeighbors(item queueItem) error {
	nextDepth := item.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return nil
	}
	neighbors, err := w.graph.NeighborIDs(item.id)
	if err != nil {
		return fmt.Errorf("%w: failed to get neighbors of %d: %v", ErrNeighbors, item.id, err)
	}
	for _, nbr := range neighbors {
		if w.visited[nbr] || !w.opts.FilterNeighbor(item.id, nbr) {
			continue
		}
		w.enqueue(nbr, nextDepth, item.id, true)
		if w.done {
			return nil
		}
	}
	return nil
}

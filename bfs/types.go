// Package bfs provides tunable options and error definitions
// for breadth-first search over a lattice of cells.
package bfs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tlattice/cell"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNotFound is returned when the start ID is absent.
	ErrStartNotFound = errors.New("bfs: start cell not found")

	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNeighbors is returned when fetching neighbors from the graph fails.
	ErrNeighbors = errors.New("bfs: neighbor iteration error")
)

// Graph is the read surface BFS needs. NeighborIDs must return ids in a
// stable order (ascending for the lattice graph); that order fixes the
// visit sequence and every tie-break derived from it.
type Graph interface {
	HasCell(id cell.ID) bool
	NeighborIDs(id cell.ID) ([]cell.ID, error)
}

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when BFS is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize BFS execution.
type Options struct {
	// OnEnqueue is called when a cell is enqueued, before visiting.
	// Receives the cell ID and its depth from the start.
	OnEnqueue func(id cell.ID, depth int)

	// OnDequeue is called immediately before visiting a cell.
	OnDequeue func(id cell.ID, depth int)

	// OnVisit is called when visiting a cell. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(id cell.ID, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	// A value of 0 explicitly disables any depth limit.
	MaxDepth int

	// FilterNeighbor can skip links by returning false.
	FilterNeighbor func(curr, neighbor cell.ID) bool

	// StopAt, when set, ends the search as soon as that cell is discovered.
	StopAt    cell.ID
	hasStopAt bool

	err error
}

// DefaultOptions returns Options with no depth limit, no filtering,
// no early stop and no-op hooks.
func DefaultOptions() Options {
	return Options{
		OnEnqueue:      func(cell.ID, int) {},
		OnDequeue:      func(cell.ID, int) {},
		OnVisit:        func(cell.ID, int) error { return nil },
		FilterNeighbor: func(_, _ cell.ID) bool { return true },
	}
}

// WithOnEnqueue registers a callback to run on enqueue.
func WithOnEnqueue(fn func(id cell.ID, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue registers a callback to run on dequeue.
func WithOnDequeue(fn func(id cell.ID, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit(fn func(id cell.ID, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth (inclusive).
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		switch {
		case d < 0:
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
		default:
			o.MaxDepth = d
		}
	}
}

// WithFilterNeighbor skips neighbors when fn returns false.
func WithFilterNeighbor(fn func(curr, neighbor cell.ID) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// WithStopAt ends the traversal once target has been discovered. The
// target is recorded in Depth and Parent but never expanded.
func WithStopAt(target cell.ID) Option {
	return func(o *Options) {
		o.StopAt = target
		o.hasStopAt = true
	}
}

// Result holds the outcome of a BFS traversal:
//   - Order: cells visited, in visit sequence.
//   - Depth: map from cell ID to its hop distance from the start.
//   - Parent: map from cell ID to its predecessor in the BFS tree.
type Result struct {
	Order  []cell.ID
	Depth  map[cell.ID]int
	Parent map[cell.ID]cell.ID
}

// Reached reports whether id was discovered.
func (r *Result) Reached(id cell.ID) bool {
	_, ok := r.Depth[id]
	return ok
}

// PathTo reconstructs the path from the start cell to dest.
// Returns an error if dest was not reached.
func (r *Result) PathTo(dest cell.ID) ([]cell.ID, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("bfs: no path to %d", dest)
	}
	// build reversed path
	path := []cell.ID{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	// reverse to get start → dest
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

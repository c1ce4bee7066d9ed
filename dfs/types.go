package dfs

import (
	"context"
	"errors"

	"github.com/katalvlaran/tlattice/cell"
)

var (
	// ErrGraphNil is returned when a nil Graph is passed to DFS.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound indicates that the start cell does not exist.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")
)

// Graph is the read-only view DFS needs. Both listings must be ascending.
type Graph interface {
	HasCell(id cell.ID) bool
	Cells() []cell.ID
	NeighborIDs(id cell.ID) ([]cell.ID, error)
}

// Option configures optional behavior of DFS traversal.
type Option func(*Options)

// Options holds configurable parameters for DFS traversal.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnVisit is invoked when a cell is discovered (pre-order).
	// Returning an error aborts traversal.
	OnVisit func(id cell.ID) error

	// OnExit is invoked after all descendants of a cell are explored
	// (post-order), before it is appended to Order.
	OnExit func(id cell.ID) error

	// MaxDepth, if non-negative, limits recursion to the given depth.
	// 0 visits only the root. Default is -1 (no limit).
	MaxDepth int

	// FilterNeighbor returns false to skip a neighbor.
	FilterNeighbor func(id cell.ID) bool

	// FullTraversal runs DFS from every unvisited cell.
	FullTraversal bool
}

// DefaultOptions returns background context, no hooks, no depth limit,
// no filtering and single-source traversal.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		MaxDepth: -1,
	}
}

// WithContext sets the Context for DFS traversal. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs fn as a pre-order hook.
func WithOnVisit(fn func(id cell.ID) error) Option {
	return func(o *Options) {
		o.OnVisit = fn
	}
}

// WithOnExit installs fn as a post-order hook.
func WithOnExit(fn func(id cell.ID) error) Option {
	return func(o *Options) {
		o.OnExit = fn
	}
}

// WithMaxDepth limits traversal depth. A negative limit means no limit.
func WithMaxDepth(limit int) Option {
	return func(o *Options) {
		o.MaxDepth = limit
	}
}

// WithFilterNeighbor skips every neighbor for which fn returns false.
func WithFilterNeighbor(fn func(id cell.ID) bool) Option {
	return func(o *Options) {
		o.FilterNeighbor = fn
	}
}

// WithFullTraversal enables forest traversal over every cell of the graph.
func WithFullTraversal() Option {
	return func(o *Options) {
		o.FullTraversal = true
	}
}

// Result captures the outcome of a depth-first traversal.
type Result struct {
	// Order records cells in the sequence they finished (post-order).
	Order []cell.ID

	// Depth maps each visited cell to its distance from its tree root.
	Depth map[cell.ID]int

	// Parent maps each visited cell to the cell it was discovered from.
	// Roots have no entry.
	Parent map[cell.ID]cell.ID

	// Visited flags which cells were reached.
	Visited map[cell.ID]bool

	// SkippedNeighbors counts neighbors rejected by FilterNeighbor.
	SkippedNeighbors int
}

// Components splits a full-traversal Order into connected pieces, each
// in post-order with its root last.
func (r *Result) Components() [][]cell.ID {
	var (
		out [][]cell.ID
		cur []cell.ID
	)
	for _, id := range r.Order {
		cur = append(cur, id)
		if r.Depth[id] == 0 {
			out = append(out, cur)
			cur = nil
		}
	}
	return out
}

// Package bfs provides breadth-first search over a lattice of cells,
// returning unweighted hop distances, parent links, and visit order.
//
// What
//
//   - Explore cells in non-decreasing hop distance from a start cell.
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: map from cell → hops from start
//   - Parent: map from cell → its predecessor in the BFS tree
//   - Supports functional hooks at three stages:
//   - OnEnqueue (before a cell is enqueued)
//   - OnDequeue (immediately before visiting)
//   - OnVisit   (when visiting; may abort with an error)
//   - Allows filtering of individual links via WithFilterNeighbor.
//   - Honors MaxDepth limit (d>0) or explicit “no limit” (d==0).
//   - Stops early once a chosen cell is discovered (WithStopAt).
//
// Determinism
//
//	The Graph contract requires NeighborIDs to return a stable order; the
//	lattice graph returns ascending ids. BFS enqueues in that order, so the
//	visit sequence, the parent tree, and therefore the shortest path chosen
//	among equal-length candidates are reproducible for a given graph state.
//
// Complexity (V = cells, E = links)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Traversals are synchronous and run to natural termination; there is no
// cancellation path.
//
// Errors
//
//   - ErrGraphNil         if the graph is nil.
//   - ErrStartNotFound    if the start cell does not exist.
//   - ErrOptionViolation  if an Option is invalid (e.g. negative MaxDepth).
//   - ErrNeighbors        if NeighborIDs fails for any cell.
//   - Wrapped user-supplied hook errors from OnVisit.
package bfs

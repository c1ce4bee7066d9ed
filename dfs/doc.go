// Package dfs implements depth-first search over a lattice of cells.
//
// What:
//
//   - DFS(g, start, opts...) explores as far as possible along each branch
//     before backtracking, recording post-order, depth and parent links.
//   - WithFullTraversal restarts from every unvisited cell, so one call
//     covers every connected piece of a lattice (a forest).
//   - Pre- and post-order hooks, depth limit, neighbor filtering and
//     cancellation via context.Context.
//
// Determinism:
//
//	Cells() and NeighborIDs must return ascending ids. Roots are taken in
//	that order and children are explored in that order, so Order, Depth and
//	Parent are reproducible for a given graph state.
//
// Forests:
//
//	In post-order every tree finishes contiguously and its root finishes
//	last. A root is the only cell of its tree with Depth 0, which lets a
//	caller split Order into connected components without a second pass.
//
// Complexity:
//
//   - Time:   O(V + E), plus hook and filter cost.
//   - Memory: O(V) for the recursion stack and result maps.
//
// Errors:
//
//   - ErrGraphNil             graph is nil
//   - ErrStartVertexNotFound  start cell is absent (single-source mode only)
//   - context.Canceled        traversal cancelled
//   - hook errors             propagated from OnVisit or OnExit
package dfs

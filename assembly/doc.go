// Package assembly provides the connectivity graph of a T-piece lattice:
// the cells, the closed polygons they form, and the links between them.
//
// The Graph is the only place cells are minted. CreatePolygon lays out a
// ring of rigid, load-bearing cells on the inscribed circle of a triangle,
// square or hexagon and links each cell's right point to the next cell's
// left point. SnapPolygon finds the closest free crossbar endpoint near a
// requested position, builds a new polygon just outside it, and runs an
// auto-connect pass that links nearby free points across polygons.
//
// Invariants held after every exported call:
//
//   - Links are symmetric: A lists B iff B lists A, with mirrored points.
//   - A connection point is occupied iff exactly one link uses it.
//   - Consecutive cells of a polygon stay linked while both are present.
//
// Determinism
//
//	Every scan runs in ascending cell id, then point order left, right,
//	stemTip. Id generators belong to each Graph, so independent graphs
//	never share numbering.
//
// Concurrency
//
//	One sync.RWMutex guards the whole graph. Queries take the read lock,
//	mutators the write lock. ShortestPath and Neighborhood walk the graph
//	through package bfs while holding the read lock.
//
// Errors
//
//	Absent ids on removal or mutation report false, not an error.
//	Malformed input (unknown shape, invalid geometry, duplicate ids,
//	occupied points) is reported with the sentinels in errors.go, wrapped
//	with method context.
package assembly

// Package tlattice models a reconfigurable lattice of magnetic T-piece
// cells and the way an impact spreads through it.
//
// The module is organized into small packages:
//
//	physconst/    magnet grades, link strengths, spring constants
//	cell/         one T-piece: pose, connection points, links, mode machine
//	bfs/          breadth-first search over cells (hops, routes)
//	dfs/          depth-first search over cells (connected pieces)
//	assembly/     the connectivity graph: polygons, snapping, auto-connect
//	impact/       impact propagation and the ring response that follows
//	cmd/tlattice  YAML scenarios from the command line
//
// Quick ASCII example, a hexagon seen from above with stems pointing out:
//
//	      |   |
//	    ──●───●──
//	   /         \
//	 ─●           ●─
//	   \         /
//	    ──●───●──
//	      |   |
//
// Every cell is linked right-to-left to the next one around the ring.
package tlattice

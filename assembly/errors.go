// SPDX-License-Identifier: MIT
// Package: tlattice/assembly
//
// errors.go: sentinel errors for the assembly package.
//
// Error policy:
//   • Absent ids are not errors for removal or mutation helpers; those
//     report false instead. Sentinels cover malformed input only.
//   • Lower-level cell errors are wrapped with %w so errors.Is reaches
//     cell.ErrPointOccupied and friends.

package assembly

import "errors"

// ErrUnknownShape indicates a polygon kind outside triangle/square/hexagon.
var ErrUnknownShape = errors.New("assembly: unknown polygon shape")

// ErrBadParams indicates a geometry bundle that cannot place cells
// (non-positive crossbar, empty stem range).
var ErrBadParams = errors.New("assembly: invalid geometry parameters")

// ErrCellNotFound indicates a query referenced a cell that is not in the graph.
var ErrCellNotFound = errors.New("assembly: cell not found")

// ErrDuplicateCell indicates AddCell was given an id already present.
var ErrDuplicateCell = errors.New("assembly: duplicate cell id")

// ErrCellLinked indicates AddCell was given a cell that already carries
// links; its neighbors would be unknown to the graph.
var ErrCellLinked = errors.New("assembly: cell already has links")

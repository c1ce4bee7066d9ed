// SPDX-License-Identifier: MIT
// Package: tlattice/cell
//
// errors.go: sentinel errors for the cell package.
//
// Error policy:
//   • Only package-level sentinels are exposed; branch with errors.Is.
//   • Context is attached with %w at the call site, never baked into the
//     sentinel text.
//   • Link operations validate everything before touching either cell, so a
//     returned error always means "no state changed".

package cell

import "errors"

// ErrNilCell indicates a nil *Cell was passed where a cell is required.
var ErrNilCell = errors.New("cell: nil cell")

// ErrUnknownPoint indicates a connection point outside left/right/stemTip.
var ErrUnknownPoint = errors.New("cell: unknown connection point")

// ErrUnknownMode indicates a mode name that is not in the enumeration.
var ErrUnknownMode = errors.New("cell: unknown mode")

// ErrPointOccupied indicates that a link was requested on a connection point
// that already holds a neighbor. Linking it anyway would leave the previous
// neighbor's reciprocal entry dangling.
var ErrPointOccupied = errors.New("cell: connection point already occupied")

// ErrAlreadyLinked indicates the two cells already share a link.
var ErrAlreadyLinked = errors.New("cell: cells already linked")

// ErrSelfLink indicates an attempt to link a cell to itself.
var ErrSelfLink = errors.New("cell: cannot link a cell to itself")

// ErrBadStrength indicates a link strength outside (0,1].
var ErrBadStrength = errors.New("cell: link strength out of range (0,1]")

// Package cell defines the runtime state of one T-piece in the lattice:
// its behavioral mode, symmetric neighbor links, sensor telemetry,
// classification tags, hardware target and planar pose.
package cell

import (
	"fmt"

	"github.com/katalvlaran/tlattice/physconst"
)

// ID identifies a cell within one assembly. IDs are minted by the owning
// graph and never reused while the cell lives.
type ID int64

// Point names one of the three attachment slots of a T-piece.
type Point uint8

// Connection points in their canonical iteration order.
const (
	Left Point = iota
	Right
	StemTip

	numPoints
)

// Points lists the connection points in canonical order (left, right, stemTip).
var Points = [numPoints]Point{Left, Right, StemTip}

var pointNames = [numPoints]string{Left: "left", Right: "right", StemTip: "stemTip"}

// String returns the canonical point name.
func (p Point) String() string {
	if p < numPoints {
		return pointNames[p]
	}
	return fmt.Sprintf("point(%d)", uint8(p))
}

// Valid reports whether p is one of the three named points.
func (p Point) Valid() bool { return p < numPoints }

// Crossbar reports whether p sits on the crossbar (left or right).
func (p Point) Crossbar() bool { return p == Left || p == Right }

// ParsePoint resolves a point by its canonical name.
func ParsePoint(name string) (Point, error) {
	for i, n := range pointNames {
		if n == name {
			return Point(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPoint, name)
}

// Link is one half of a symmetric connection, as seen from the owning cell.
type Link struct {
	// Neighbor is the cell on the other end.
	Neighbor ID
	// Local is the point on the owning cell.
	Local Point
	// Remote is the point on the neighbor.
	Remote Point
	// Strength models connection quality in (0,1].
	Strength float64
}

// Mirror returns the same link as seen from the neighbor.
func (l Link) Mirror(owner ID) Link {
	return Link{Neighbor: owner, Local: l.Remote, Remote: l.Local, Strength: l.Strength}
}

// SensorState is free-form telemetry (δ).
type SensorState struct {
	// StemExtension is the stem extension ratio in [0,1].
	StemExtension float64
	Strain        float64
	// Temperature in °C.
	Temperature float64
	// FieldStrength holds the magnetometer reading at left, right and stemTip.
	FieldStrength [3]float64
}

// HardwareTarget (ρ) selects the simulation constants for a cell.
type HardwareTarget struct {
	Processor   string
	MagnetGrade string
	// MagnetSize is the magnet diameter in mm.
	MagnetSize float64
}

// Vec2 is a top-down world coordinate in mm.
type Vec2 struct {
	X, Z float64
}

// Pose is a planar position plus rotation about the vertical axis (radians).
type Pose struct {
	Position Vec2
	Rotation float64
}

// Classification tags. The sets are open; these are the values the
// lattice itself assigns.
type (
	// Autonomy is κ, the autonomy level.
	Autonomy string
	// Role is χ, the structural role.
	Role string
	// HardwareClass is τ, the hardware variant.
	HardwareClass string
	// ForceOwnership is λ; computed by the physical layer.
	ForceOwnership string
)

// Tag values assigned by the lattice.
const (
	AutonomyDirected Autonomy = "directed"

	RoleReserve     Role = "reserve"
	RoleLoadBearing Role = "load-bearing"

	ClassBare HardwareClass = "bare"

	OwnershipIdle ForceOwnership = "idle"
)

// Defaults for newly minted cells.
const (
	DefaultStemExtension = 0.5
	DefaultTemperature   = 25.0
	DefaultProcessor     = "esp32c3"
	DefaultMagnetGrade   = physconst.DefaultGrade
	DefaultMagnetSize    = 3.0
)

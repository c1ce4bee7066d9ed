// SPDX-License-Identifier: MIT
// Package: tlattice/cell
//
// cell.go: the Cell record and its single-cell operations.
//
// Invariants maintained here:
//   • Symmetry: Connect installs both halves atomically or neither.
//   • Occupancy: a point is occupied iff exactly one link names it as Local.
//
// Disconnect removes one half only; the graph removal path calls it on both
// cells. Cell is not safe for concurrent use; the owning graph serializes.

package cell

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/tlattice/physconst"
)

// Cell is one T-piece: the 9-attribute coordinate plus pose and points.
type Cell struct {
	id    ID
	mode  Mode
	links map[ID]Link
	// occupant[p] is the neighbor on point p; valid only when occupied[p].
	occupant [numPoints]ID
	occupied [numPoints]bool
	force    ForceOwnership

	// Sensor is δ, free-form telemetry.
	Sensor SensorState
	// Autonomy is κ.
	Autonomy Autonomy
	// Role is χ.
	Role Role
	// Class is τ.
	Class HardwareClass
	// Target is ρ.
	Target HardwareTarget
	// Pose places the crossbar midpoint in the world.
	Pose Pose
}

// Option customizes a Cell at construction.
type Option func(*Cell)

// WithMode sets the initial mode. Invalid modes are ignored.
func WithMode(m Mode) Option {
	return func(c *Cell) {
		if m.Valid() {
			c.mode = m
		}
	}
}

// WithStemExtension sets δ.stemExtension, clamped to [0,1].
func WithStemExtension(x float64) Option {
	return func(c *Cell) { c.Sensor.StemExtension = clamp01(x) }
}

// WithRole sets the structural role χ.
func WithRole(r Role) Option {
	return func(c *Cell) { c.Role = r }
}

// WithAutonomy sets κ.
func WithAutonomy(a Autonomy) Option {
	return func(c *Cell) { c.Autonomy = a }
}

// WithClass sets τ.
func WithClass(h HardwareClass) Option {
	return func(c *Cell) { c.Class = h }
}

// WithTarget sets ρ.
func WithTarget(t HardwareTarget) Option {
	return func(c *Cell) { c.Target = t }
}

// WithPose sets the initial pose.
func WithPose(p Pose) Option {
	return func(c *Cell) { c.Pose = p }
}

// New creates an unattached cell with the given id.
// Defaults: mode idle, stem extension 0.5, 25 °C, autonomy "directed",
// role "reserve", class "bare", target esp32c3/N42/3 mm.
func New(id ID, opts ...Option) *Cell {
	c := &Cell{
		id:    id,
		mode:  DefaultMode,
		links: make(map[ID]Link),
		force: OwnershipIdle,
		Sensor: SensorState{
			StemExtension: DefaultStemExtension,
			Temperature:   DefaultTemperature,
		},
		Autonomy: AutonomyDirected,
		Role:     RoleReserve,
		Class:    ClassBare,
		Target: HardwareTarget{
			Processor:   DefaultProcessor,
			MagnetGrade: DefaultMagnetGrade,
			MagnetSize:  DefaultMagnetSize,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the immutable identity.
func (c *Cell) ID() ID { return c.id }

// Mode returns the current mode.
func (c *Cell) Mode() Mode { return c.mode }

// ForceOwnership returns λ. No public operation sets it.
func (c *Cell) ForceOwnership() ForceOwnership { return c.force }

// CanTransition reports whether target is reachable from the current mode.
func (c *Cell) CanTransition(target Mode) bool {
	return Allowed(c.mode, target)
}

// Transition moves to target iff the table allows it. On refusal the mode
// is unchanged and false is returned; consult CanTransition for the reason.
func (c *Cell) Transition(target Mode) bool {
	if !c.CanTransition(target) {
		return false
	}
	c.mode = target
	return true
}

// LocalOffset returns the unrotated offset of p from the crossbar midpoint.
//
//	left    = (-L/2, 0)
//	right   = (+L/2, 0)
//	stemTip = (0, -stemExtension·L·0.866)
func (c *Cell) LocalOffset(p Point, crossbarLength float64) (Vec2, bool) {
	half := crossbarLength / 2
	switch p {
	case Left:
		return Vec2{X: -half}, true
	case Right:
		return Vec2{X: half}, true
	case StemTip:
		stem := c.Sensor.StemExtension * crossbarLength * physconst.StemHexFactor
		return Vec2{Z: -stem}, true
	default:
		return Vec2{}, false
	}
}

// ConnectionWorldPosition projects point p through the pose:
// world = position + R(rotation)·local. Returns false for an unknown point.
func (c *Cell) ConnectionWorldPosition(p Point, crossbarLength float64) (Vec2, bool) {
	local, ok := c.LocalOffset(p, crossbarLength)
	if !ok {
		return Vec2{}, false
	}
	sin, cos := math.Sincos(c.Pose.Rotation)
	return Vec2{
		X: c.Pose.Position.X + local.X*cos - local.Z*sin,
		Z: c.Pose.Position.Z + local.X*sin + local.Z*cos,
	}, true
}

// Occupant returns the neighbor attached at p, if any.
func (c *Cell) Occupant(p Point) (ID, bool) {
	if !p.Valid() || !c.occupied[p] {
		return 0, false
	}
	return c.occupant[p], true
}

// Occupied reports whether p currently holds a neighbor.
func (c *Cell) Occupied(p Point) bool {
	return p.Valid() && c.occupied[p]
}

// Connect links c and other symmetrically: c.p(mine) ↔ other.p(theirs).
//
// Preconditions (checked before any mutation):
//   - other non-nil and distinct from c          (ErrNilCell, ErrSelfLink)
//   - both points valid                          (ErrUnknownPoint)
//   - strength in (0,1]                          (ErrBadStrength)
//   - no existing link between the two cells     (ErrAlreadyLinked)
//   - both points free                           (ErrPointOccupied)
//
// Complexity: O(1).
func (c *Cell) Connect(other *Cell, mine, theirs Point, strength float64) error {
	if other == nil {
		return ErrNilCell
	}
	if other == c || other.id == c.id {
		return fmt.Errorf("connect %d: %w", c.id, ErrSelfLink)
	}
	if !mine.Valid() || !theirs.Valid() {
		return fmt.Errorf("connect %d→%d (%s,%s): %w", c.id, other.id, mine, theirs, ErrUnknownPoint)
	}
	if !(strength > 0 && strength <= 1) {
		return fmt.Errorf("connect %d→%d strength=%g: %w", c.id, other.id, strength, ErrBadStrength)
	}
	if _, ok := c.links[other.id]; ok {
		return fmt.Errorf("connect %d→%d: %w", c.id, other.id, ErrAlreadyLinked)
	}
	if c.occupied[mine] {
		return fmt.Errorf("connect %d.%s (held by %d): %w", c.id, mine, c.occupant[mine], ErrPointOccupied)
	}
	if other.occupied[theirs] {
		return fmt.Errorf("connect %d.%s (held by %d): %w", other.id, theirs, other.occupant[theirs], ErrPointOccupied)
	}

	l := Link{Neighbor: other.id, Local: mine, Remote: theirs, Strength: strength}
	c.attach(l)
	other.attach(l.Mirror(c.id))

	return nil
}

// attach installs one half of a link and marks the local point.
func (c *Cell) attach(l Link) {
	c.links[l.Neighbor] = l
	c.occupant[l.Local] = l.Neighbor
	c.occupied[l.Local] = true
}

// Disconnect removes this cell's half of the link to other and frees the
// local point. It reports whether a link existed; absent ids are a no-op.
func (c *Cell) Disconnect(other ID) bool {
	l, ok := c.links[other]
	if !ok {
		return false
	}
	delete(c.links, other)
	c.occupied[l.Local] = false
	c.occupant[l.Local] = 0
	return true
}

// LinkTo returns the link toward neighbor, if present.
func (c *Cell) LinkTo(neighbor ID) (Link, bool) {
	l, ok := c.links[neighbor]
	return l, ok
}

// Degree returns the number of neighbors.
func (c *Cell) Degree() int { return len(c.links) }

// Links returns the neighbor links ordered by ascending neighbor id.
// The slice is a fresh copy.
func (c *Cell) Links() []Link {
	out := make([]Link, 0, len(c.links))
	for _, l := range c.links {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Neighbor < out[j].Neighbor })
	return out
}

// NeighborIDs returns neighbor ids in ascending order.
func (c *Cell) NeighborIDs() []ID {
	out := make([]ID, 0, len(c.links))
	for id := range c.links {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func clamp01(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}

// SPDX-License-Identifier: MIT
// Package: tlattice/impact
//
// types.go: public surface of the impact simulator: sentinels, the graph
// contracts it reads and mutates, functional options and result records.
//
// Units:
//   - force in N, displacement in mm, energies in μJ, velocity in m/s.
//   - internal arithmetic runs in SI; conversion happens once per record.

package impact

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/katalvlaran/tlattice/cell"
	"github.com/katalvlaran/tlattice/physconst"
)

// Sentinel errors.
var (
	// ErrGraphNil is returned when a nil graph is passed.
	ErrGraphNil = errors.New("impact: graph is nil")

	// ErrTargetNotFound is returned when the impact site is not in the graph.
	ErrTargetNotFound = errors.New("impact: target cell not found")

	// ErrOptionViolation is returned when an Option carries an invalid value.
	ErrOptionViolation = errors.New("impact: invalid option supplied")
)

// Graph is the read surface Simulate needs. Links must be ordered by
// ascending neighbor id; that order fixes which path reaches a cell first.
type Graph interface {
	HasCell(id cell.ID) bool
	Links(id cell.ID) ([]cell.Link, error)
	Mode(id cell.ID) (cell.Mode, bool)
}

// Responder is the surface ApplyResponse drives.
type Responder interface {
	Neighborhood(src cell.ID, maxHops int) map[cell.ID]int
	Mode(id cell.ID) (cell.Mode, bool)
	Transition(id cell.ID, m cell.Mode) bool
	SetRole(id cell.ID, r cell.Role) bool
}

// Config holds the effective simulation parameters.
type Config struct {
	Attenuation    float64 // share of force kept per hop, in (0,1)
	MaxHops        int
	MagnetGrade    string // resolved grade name
	SpringConstant float64
	CellMass       float64 // kg
	CrossbarLength float64 // mm

	log *slog.Logger
	err error
}

// DefaultConfig returns attenuation 0.7, 10 hops, N42, 0.5 g, 25 mm.
func DefaultConfig() Config {
	g := physconst.Resolve(physconst.DefaultGrade)
	return Config{
		Attenuation:    physconst.DefaultAttenuation,
		MaxHops:        physconst.DefaultMaxHops,
		MagnetGrade:    g.Name,
		SpringConstant: g.SpringConstant,
		CellMass:       physconst.DefaultCellMass,
		CrossbarLength: 25,
		log:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option customizes a simulation run. Invalid values are recorded and
// surfaced as ErrOptionViolation by Simulate.
type Option func(*Config)

// WithAttenuation sets the share of force retained per hop, in (0,1).
func WithAttenuation(a float64) Option {
	return func(c *Config) {
		if !(a > 0 && a < 1) {
			c.err = fmt.Errorf("%w: attenuation %g outside (0,1)", ErrOptionViolation, a)
			return
		}
		c.Attenuation = a
	}
}

// WithMaxHops bounds propagation depth. Zero limits the wave to the target.
func WithMaxHops(n int) Option {
	return func(c *Config) {
		if n < 0 {
			c.err = fmt.Errorf("%w: negative max hops %d", ErrOptionViolation, n)
			return
		}
		c.MaxHops = n
	}
}

// WithMagnetGrade selects the spring constant by grade name.
// Unknown names fall back to the default grade.
func WithMagnetGrade(name string) Option {
	return func(c *Config) {
		g := physconst.Resolve(name)
		c.MagnetGrade = g.Name
		c.SpringConstant = g.SpringConstant
	}
}

// WithCellMass sets the mass of one cell in kg.
func WithCellMass(kg float64) Option {
	return func(c *Config) {
		if !(kg > 0) {
			c.err = fmt.Errorf("%w: cell mass %g must be > 0", ErrOptionViolation, kg)
			return
		}
		c.CellMass = kg
	}
}

// WithCrossbarLength records the crossbar length (mm) of the assembly.
func WithCrossbarLength(mm float64) Option {
	return func(c *Config) {
		if !(mm > 0) {
			c.err = fmt.Errorf("%w: crossbar length %g must be > 0", ErrOptionViolation, mm)
			return
		}
		c.CrossbarLength = mm
	}
}

// WithLogger routes run records to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("impact: WithLogger(nil)")
	}
	return func(c *Config) { c.log = l }
}

// CellState is what one cell experienced during a run.
type CellState struct {
	Force           float64   // N arriving at the cell
	Displacement    float64   // mm, capped at 2 mm
	EnergyAbsorbed  float64   // μJ, ½·k·x²
	EnergyHarvested float64   // μJ
	KineticEnergy   float64   // μJ, ½·m·v²
	Velocity        float64   // m/s peak, sinusoidal at ImpactFrequency
	Hop             int       // hops from the target
	Mode            cell.Mode // mode at simulation time
}

// Step is one time-ordered entry; Time equals the hop count.
type Step struct {
	Time         int
	Cell         cell.ID
	Force        float64
	Displacement float64 // mm
}

// Summary aggregates a run.
type Summary struct {
	ImpactForce          float64
	AffectedCells        int
	BlastRadius          int // max hop actually visited
	TotalEnergyAbsorbed  float64
	TotalEnergyHarvested float64
	MaxDisplacement      float64
	PeakForceAtCenter    float64
	// ForceAtEdge is force·attenuation^MaxHops regardless of topology.
	ForceAtEdge float64
}

// Result of one Simulate call.
type Result struct {
	RunID   uuid.UUID
	Target  cell.ID
	Config  Config
	Order   []cell.ID // visit order
	States  map[cell.ID]CellState
	Steps   []Step
	Summary Summary
}

// Response reports what ApplyResponse changed.
type Response struct {
	// Applied lists cells now in their ring's mode, ascending.
	Applied []cell.ID
	// Refused lists cells whose mode cannot legally reach the ring's mode.
	Refused []cell.ID
	// Rings maps each reached cell to its hop distance from the center.
	Rings map[cell.ID]int
}

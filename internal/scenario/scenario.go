// Package scenario loads lattice experiments from YAML and runs them
// against a fresh assembly graph.
//
// A scenario is an ordered list of steps, each placing a polygon, removing
// a cell, striking the lattice or asking for a route. Steps run in file
// order and every step is deterministic.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tlattice/assembly"
	"github.com/katalvlaran/tlattice/cell"
)

// Sentinel errors.
var (
	ErrInvalid  = errors.New("scenario: invalid scenario")
	ErrNoTarget = errors.New("scenario: impact has no target")
)

// Scenario is one experiment.
type Scenario struct {
	Name string `yaml:"name"`

	// Preset names a geometry bundle; Params, when set, overrides it.
	Preset string           `yaml:"preset"`
	Params *assembly.Params `yaml:"params"`

	Steps []Step `yaml:"steps"`
}

// Step holds exactly one action.
type Step struct {
	Place  *Placement `yaml:"place"`
	Remove *cell.ID   `yaml:"remove"`
	Impact *Impact    `yaml:"impact"`
	Route  *Route     `yaml:"route"`
}

func (st Step) actions() int {
	n := 0
	for _, set := range []bool{st.Place != nil, st.Remove != nil, st.Impact != nil, st.Route != nil} {
		if set {
			n++
		}
	}
	return n
}

// Placement puts one polygon down. Snap placements attach to the nearest
// free endpoint when one is in reach; freestanding ones never snap.
type Placement struct {
	Kind         string  `yaml:"kind"`
	X            float64 `yaml:"x"`
	Z            float64 `yaml:"z"`
	Freestanding bool    `yaml:"freestanding"`
}

// Point is a position on the lattice plane, in mm.
type Point struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

// Impact strikes a cell, chosen by id or by proximity.
type Impact struct {
	Cell        cell.ID `yaml:"cell"`
	Near        *Point  `yaml:"near"`
	Force       float64 `yaml:"force"`
	Attenuation float64 `yaml:"attenuation"`
	MaxHops     *int    `yaml:"max_hops"`
	MagnetGrade string  `yaml:"magnet_grade"`
	// Respond applies the ring response after simulating.
	Respond bool `yaml:"respond"`
}

// Route asks for a shortest path between two cells.
type Route struct {
	From cell.ID `yaml:"from"`
	To   cell.ID `yaml:"to"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a YAML scenario. Unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Geometry resolves the parameter bundle: explicit params, else the
// preset, else the default tabletop bundle.
func (s *Scenario) Geometry() (assembly.Params, error) {
	switch {
	case s.Params != nil:
		return *s.Params, nil
	case s.Preset != "":
		p, ok := assembly.Preset(s.Preset)
		if !ok {
			return assembly.Params{}, fmt.Errorf("%w: unknown preset %q", ErrInvalid, s.Preset)
		}
		return p, nil
	default:
		return assembly.DefaultParams(), nil
	}
}

// Validate checks everything that can be checked before running.
func (s *Scenario) Validate() error {
	p, err := s.Geometry()
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for i, st := range s.Steps {
		if n := st.actions(); n != 1 {
			return fmt.Errorf("%w: step %d: want one action, got %d", ErrInvalid, i, n)
		}
		switch {
		case st.Place != nil:
			if _, err := assembly.ParseShape(st.Place.Kind); err != nil {
				return fmt.Errorf("%w: step %d: %w", ErrInvalid, i, err)
			}
		case st.Impact != nil:
			if st.Impact.Cell == 0 && st.Impact.Near == nil {
				return fmt.Errorf("step %d: %w", i, ErrNoTarget)
			}
			if !(st.Impact.Force > 0) {
				return fmt.Errorf("%w: step %d: force %g must be > 0", ErrInvalid, i, st.Impact.Force)
			}
		}
	}
	return nil
}

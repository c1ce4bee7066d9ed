// SPDX-License-Identifier: MIT
// Package: tlattice/cell
//
// mode.go: behavioral modes and the static transition table.
//
// Contract:
//   • Mode is a closed enumeration; the zero value is Rigid, but New cells
//     start Idle (see DefaultMode).
//   • The transition table is built once as fixed-size bitsets and never
//     mutated; lookups are O(1) and allocation-free.

package cell

import "fmt"

// Mode is the behavioral state of a cell.
type Mode uint8

// Behavioral modes.
const (
	Rigid Mode = iota
	Flex
	RelayReceive
	RelayPass
	AttractHome
	Release
	InTransit
	Harvest
	Sense
	Idle

	numModes
)

// DefaultMode is the mode of a freshly created, unattached cell.
const DefaultMode = Idle

var modeNames = [numModes]string{
	Rigid:        "rigid",
	Flex:         "flex",
	RelayReceive: "relay-receive",
	RelayPass:    "relay-pass",
	AttractHome:  "attract-home",
	Release:      "release",
	InTransit:    "in-transit",
	Harvest:      "harvest",
	Sense:        "sense",
	Idle:         "idle",
}

// String returns the canonical hyphenated name.
func (m Mode) String() string {
	if m < numModes {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Valid reports whether m is one of the enumerated modes.
func (m Mode) Valid() bool { return m < numModes }

// ParseMode maps a canonical name back to its Mode.
func ParseMode(name string) (Mode, error) {
	for m := Mode(0); m < numModes; m++ {
		if modeNames[m] == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Modes returns every mode in enumeration order.
func Modes() []Mode {
	out := make([]Mode, 0, numModes)
	for m := Mode(0); m < numModes; m++ {
		out = append(out, m)
	}
	return out
}

// modeSet is a bitset over Mode values.
type modeSet uint16

func setOf(ms ...Mode) modeSet {
	var s modeSet
	for _, m := range ms {
		s |= 1 << m
	}
	return s
}

func (s modeSet) has(m Mode) bool { return m < numModes && s&(1<<m) != 0 }

// transitions[from] holds every mode reachable from `from` in one step.
// Structural modes interconvert; release→in-transit→attract-home is the
// one-way deployment pipeline back into rigid/flex; idle is the entry point.
var transitions = [numModes]modeSet{
	Rigid:        setOf(Flex, RelayReceive, RelayPass, Release, Harvest, Sense),
	Flex:         setOf(Rigid, RelayReceive, RelayPass, Release, Sense),
	RelayReceive: setOf(Rigid, Flex, RelayPass),
	RelayPass:    setOf(Rigid, Flex, RelayReceive),
	AttractHome:  setOf(Rigid, Flex),
	Release:      setOf(InTransit, Idle),
	InTransit:    setOf(AttractHome, Idle),
	Harvest:      setOf(Rigid, Release),
	Sense:        setOf(Rigid, Flex, Release),
	Idle:         setOf(AttractHome, InTransit),
}

// Allowed reports whether the table contains the edge from→to.
func Allowed(from, to Mode) bool {
	if from >= numModes {
		return false
	}
	return transitions[from].has(to)
}

// Reachable lists the modes reachable from m in one step, ascending.
func Reachable(m Mode) []Mode {
	if m >= numModes {
		return nil
	}
	out := make([]Mode, 0, numModes)
	for to := Mode(0); to < numModes; to++ {
		if transitions[m].has(to) {
			out = append(out, to)
		}
	}
	return out
}

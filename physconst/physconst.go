// SPDX-License-Identifier: MIT
// Package: tlattice/physconst
//
// physconst.go: magnet grades and the fixed constants of the lumped
// impact model.
//
// Policy:
//   • One table only. The impact simulator and any force-curve component
//     read spring constants from here; nobody keeps a private copy.
//   • Values are read-only after package init; lookups never mutate.

package physconst

import "sort"

// Grade describes one neodymium magnet grade used at the crossbar and stem joints.
type Grade struct {
	// Name is the commercial grade label ("N35", "N42", ...).
	Name string
	// Remanence is the residual flux density Br in tesla.
	Remanence float64
	// MaxTempC is the maximum operating temperature in °C.
	MaxTempC float64
	// SpringConstant is the joint stiffness at contact distance, N/m.
	SpringConstant float64
}

// Grade names known to the table.
const (
	GradeN35 = "N35"
	GradeN42 = "N42"
	GradeN52 = "N52"

	// DefaultGrade is the mid grade; unknown names resolve to it.
	DefaultGrade = GradeN42
)

var grades = map[string]Grade{
	GradeN35: {Name: GradeN35, Remanence: 1.19, MaxTempC: 80, SpringConstant: 12000},
	GradeN42: {Name: GradeN42, Remanence: 1.30, MaxTempC: 80, SpringConstant: 16200},
	GradeN52: {Name: GradeN52, Remanence: 1.45, MaxTempC: 60, SpringConstant: 20000},
}

// Lookup returns the Grade registered under name.
// Complexity: O(1).
func Lookup(name string) (Grade, bool) {
	g, ok := grades[name]
	return g, ok
}

// Resolve returns the Grade for name, falling back to DefaultGrade.
func Resolve(name string) Grade {
	if g, ok := grades[name]; ok {
		return g
	}
	return grades[DefaultGrade]
}

// SpringConstant returns the joint spring constant (N/m) for a grade name.
// Unknown grades yield the DefaultGrade value.
func SpringConstant(name string) float64 {
	return Resolve(name).SpringConstant
}

// Grades lists every known grade ordered by ascending spring constant.
// The returned slice is a fresh copy.
func Grades() []Grade {
	out := make([]Grade, 0, len(grades))
	for _, g := range grades {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SpringConstant < out[j].SpringConstant })
	return out
}

// Package impact simulates a mechanical impact spreading through a lattice
// of linked cells and derives the mode response that follows it.
//
// Simulate walks the graph breadth-first from the struck cell. Force decays
// by a fixed share per hop and by the strength of each link it crosses;
// the wave stops spreading once the carried force falls to 10 mN or the hop
// limit is reached. Every reached cell is modeled as a spring of the
// stiffness its magnet grade implies (see physconst), giving displacement,
// absorbed energy and the small share a coil can harvest.
//
// ApplyResponse then stiffens the structure around the site: a flexing
// core of two hops absorbs the blow, a rigid load-bearing ring braces out
// to the blast radius, and a rigid anchor ring sits beyond it.
//
// The model is a lumped first-order approximation, one hop per tick.
package impact

// Package physconst centralizes physical constants shared by the lattice
// packages: magnet grades and the fixed parameters of the impact model.
package physconst

//-----------------------------------------------------------------------------
// Impact model
//-----------------------------------------------------------------------------

const (
	// MaxDisplacement caps joint displacement, in metres (2 mm).
	MaxDisplacement = 2e-3

	// HarvestFraction is the share of absorbed energy recovered by the coil.
	HarvestFraction = 0.02

	// ImpactFrequency is the assumed excitation frequency in Hz.
	ImpactFrequency = 100.0

	// ForceCutoff is the force (N) at or below which a wave stops spreading.
	ForceCutoff = 0.01

	// DefaultAttenuation is the share of force retained per hop.
	DefaultAttenuation = 0.7

	// DefaultMaxHops bounds propagation depth.
	DefaultMaxHops = 10

	// DefaultCellMass is the mass of one T-piece in kg (0.5 g).
	DefaultCellMass = 0.5e-3
)

//-----------------------------------------------------------------------------
// Assembly geometry and linking
//-----------------------------------------------------------------------------

const (
	// PolygonLinkStrength is the strength of links inside a freshly built polygon.
	PolygonLinkStrength = 0.9

	// AutoLinkStrength is the strength of links made by the auto-connect pass.
	AutoLinkStrength = 0.8

	// SnapRadiusFactor times the crossbar length bounds the snap search.
	SnapRadiusFactor = 1.5

	// AutoLinkFactor times the crossbar length is the auto-connect distance.
	AutoLinkFactor = 0.3

	// StemHexFactor normalizes stem length to the inscribed radius of a
	// hexagon built from one crossbar (√3/2).
	StemHexFactor = 0.866
)

// Unit conversions used in reports.
const (
	MetresToMillimetres = 1e3
	JoulesToMicrojoules = 1e6
)

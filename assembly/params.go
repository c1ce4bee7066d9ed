package assembly

import (
	"fmt"
	"math"
	"sort"
)

// Shape is the kind of closed polygon a ring of cells forms.
type Shape uint8

// Polygon shapes.
const (
	Triangle Shape = iota + 1
	Square
	Hexagon
)

// Sides returns the number of cells (edges) of the shape, or 0 if unknown.
func (s Shape) Sides() int {
	switch s {
	case Triangle:
		return 3
	case Square:
		return 4
	case Hexagon:
		return 6
	default:
		return 0
	}
}

// String returns the lowercase shape name.
func (s Shape) String() string {
	switch s {
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	case Hexagon:
		return "hexagon"
	default:
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
}

// ParseShape resolves "triangle", "square" or "hexagon".
func ParseShape(name string) (Shape, error) {
	for _, s := range []Shape{Triangle, Square, Hexagon} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// InscribedRadius returns L / (2·tan(π/sides)) for crossbar length L.
func (s Shape) InscribedRadius(crossbarLength float64) float64 {
	n := s.Sides()
	if n == 0 {
		return 0
	}
	return crossbarLength / (2 * math.Tan(math.Pi/float64(n)))
}

// Params is the T-piece geometry bundle, all lengths in mm.
// Only CrossbarLength and the stem range drive the lattice; the rest is
// carried for collaborators that build meshes from the same bundle.
type Params struct {
	CrossbarLength    float64 `yaml:"crossbar_length"`
	CrossbarWidth     float64 `yaml:"crossbar_width"`
	CrossbarThickness float64 `yaml:"crossbar_thickness"`
	StemMinLength     float64 `yaml:"stem_min_length"`
	StemMaxLength     float64 `yaml:"stem_max_length"`
	StemWidth         float64 `yaml:"stem_width"`
	MagnetDiameter    float64 `yaml:"magnet_diameter"`
	MagnetDepth       float64 `yaml:"magnet_depth"`
}

// Validate checks the fields the lattice depends on.
func (p Params) Validate() error {
	if !(p.CrossbarLength > 0) {
		return fmt.Errorf("%w: crossbar length %g must be > 0", ErrBadParams, p.CrossbarLength)
	}
	if !(p.StemMaxLength > p.StemMinLength) {
		return fmt.Errorf("%w: stem range [%g,%g] is empty", ErrBadParams, p.StemMinLength, p.StemMaxLength)
	}
	return nil
}

// StemExtension maps an inscribed radius onto the stem travel, clamped to [0,1].
func (p Params) StemExtension(radius float64) float64 {
	x := (radius - p.StemMinLength) / (p.StemMaxLength - p.StemMinLength)
	return math.Min(1, math.Max(0, x))
}

// Preset names.
const (
	PresetProof    = "proof"
	PresetTabletop = "tabletop"
	PresetWearable = "wearable"
	PresetArm      = "arm"
)

var presets = map[string]Params{
	PresetProof: {
		CrossbarLength: 50, CrossbarWidth: 5, CrossbarThickness: 3,
		StemMinLength: 10, StemMaxLength: 44, StemWidth: 4,
		MagnetDiameter: 5, MagnetDepth: 2,
	},
	PresetTabletop: {
		CrossbarLength: 25, CrossbarWidth: 3, CrossbarThickness: 2,
		StemMinLength: 5, StemMaxLength: 22, StemWidth: 2.5,
		MagnetDiameter: 3, MagnetDepth: 1.5,
	},
	PresetWearable: {
		CrossbarLength: 12, CrossbarWidth: 2, CrossbarThickness: 1.5,
		StemMinLength: 3, StemMaxLength: 11, StemWidth: 1.8,
		MagnetDiameter: 2, MagnetDepth: 1,
	},
	PresetArm: {
		CrossbarLength: 6, CrossbarWidth: 1.2, CrossbarThickness: 1,
		StemMinLength: 1.5, StemMaxLength: 5.5, StemWidth: 1,
		MagnetDiameter: 1.5, MagnetDepth: 0.8,
	},
}

// DefaultParams returns the tabletop preset (25 mm crossbar).
func DefaultParams() Params { return presets[PresetTabletop] }

// Preset returns the named geometry bundle.
func Preset(name string) (Params, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames lists the preset names in ascending order.
func PresetNames() []string {
	out := make([]string, 0, len(presets))
	for name := range presets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

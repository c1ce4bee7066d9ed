package scenario

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tlattice/assembly"
	"github.com/katalvlaran/tlattice/cell"
	"github.com/katalvlaran/tlattice/impact"
)

// PlacementOutcome records one placement.
type PlacementOutcome struct {
	Polygon assembly.Polygon
	Snapped bool
}

// ImpactOutcome records one strike and, when requested, its response.
type ImpactOutcome struct {
	Result   *impact.Result
	Response *impact.Response
}

// RouteOutcome records one shortest-path query.
type RouteOutcome struct {
	Route
	Path  []cell.ID
	Found bool
}

// Report is everything a run produced. Graph is left in its final state.
type Report struct {
	Name       string
	Params     assembly.Params
	Placements []PlacementOutcome
	Removed    []cell.ID
	Impacts    []ImpactOutcome
	Routes     []RouteOutcome
	Stats      assembly.Stats
	Pieces     [][]cell.ID
	Graph      *assembly.Graph
}

// Run executes s on a fresh graph. log may be nil.
func Run(s *Scenario, log *slog.Logger) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p, _ := s.Geometry()

	g := assembly.NewGraph(assembly.WithLogger(log))
	rep := &Report{Name: s.Name, Params: p, Graph: g}

	for i, st := range s.Steps {
		if err := rep.apply(st, log); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	rep.Stats = g.Stats()
	rep.Pieces = g.Components()
	log.Info("scenario finished",
		"name", s.Name, "cells", rep.Stats.CellCount, "edges", rep.Stats.EdgeCount,
		"pieces", len(rep.Pieces), "impacts", len(rep.Impacts))
	return rep, nil
}

func (rep *Report) apply(st Step, log *slog.Logger) error {
	g, p := rep.Graph, rep.Params
	switch {
	case st.Place != nil:
		kind, _ := assembly.ParseShape(st.Place.Kind)
		var (
			out PlacementOutcome
			err error
		)
		if st.Place.Freestanding {
			out.Polygon, err = g.CreatePolygon(kind, st.Place.X, st.Place.Z, p)
		} else {
			out.Polygon, out.Snapped, err = g.Place(kind, st.Place.X, st.Place.Z, p)
		}
		if err != nil {
			return err
		}
		rep.Placements = append(rep.Placements, out)

	case st.Remove != nil:
		if g.RemoveCell(*st.Remove) {
			rep.Removed = append(rep.Removed, *st.Remove)
		}

	case st.Impact != nil:
		out, err := strike(g, *st.Impact, p, log)
		if err != nil {
			return err
		}
		rep.Impacts = append(rep.Impacts, out)

	case st.Route != nil:
		path, ok := g.ShortestPath(st.Route.From, st.Route.To)
		rep.Routes = append(rep.Routes, RouteOutcome{Route: *st.Route, Path: path, Found: ok})
	}
	return nil
}

func strike(g *assembly.Graph, im Impact, p assembly.Params, log *slog.Logger) (ImpactOutcome, error) {
	target := im.Cell
	if im.Near != nil {
		id, ok := g.NearestCell(im.Near.X, im.Near.Z, 0)
		if !ok {
			return ImpactOutcome{}, ErrNoTarget
		}
		target = id
	}

	opts := []impact.Option{
		impact.WithCrossbarLength(p.CrossbarLength),
		impact.WithLogger(log),
	}
	if im.Attenuation != 0 {
		opts = append(opts, impact.WithAttenuation(im.Attenuation))
	}
	if im.MaxHops != nil {
		opts = append(opts, impact.WithMaxHops(*im.MaxHops))
	}
	if im.MagnetGrade != "" {
		opts = append(opts, impact.WithMagnetGrade(im.MagnetGrade))
	}

	res, err := impact.Simulate(g, target, im.Force, opts...)
	if err != nil {
		return ImpactOutcome{}, err
	}
	out := ImpactOutcome{Result: res}
	if im.Respond {
		resp, err := impact.ApplyResponse(g, target, res.Summary.BlastRadius, impact.WithLogger(log))
		if err != nil {
			return ImpactOutcome{}, err
		}
		out.Response = &resp
	}
	return out, nil
}

// Digest is the flat, printable form of a Report.
type Digest struct {
	Name       string          `yaml:"name"`
	Crossbar   float64         `yaml:"crossbar_mm"`
	Cells      int             `yaml:"cells"`
	Edges      int             `yaml:"edges"`
	Polygons   int             `yaml:"polygons"`
	Pieces     int             `yaml:"pieces"`
	Modes      map[string]int  `yaml:"modes"`
	Placements []PlacementLine `yaml:"placements,omitempty"`
	Removed    []cell.ID       `yaml:"removed,omitempty"`
	Impacts    []ImpactLine    `yaml:"impacts,omitempty"`
	Routes     []RouteLine     `yaml:"routes,omitempty"`
}

// PlacementLine summarizes one placement.
type PlacementLine struct {
	Polygon assembly.PolygonID `yaml:"polygon"`
	Shape   string             `yaml:"shape"`
	Snapped bool               `yaml:"snapped"`
	Cells   []cell.ID          `yaml:"cells,flow"`
}

// ImpactLine summarizes one strike.
type ImpactLine struct {
	Run          string    `yaml:"run"`
	Target       cell.ID   `yaml:"target"`
	Force        float64   `yaml:"force_n"`
	Affected     int       `yaml:"affected"`
	BlastRadius  int       `yaml:"blast_radius"`
	AbsorbedUJ   float64   `yaml:"absorbed_uj"`
	HarvestedUJ  float64   `yaml:"harvested_uj"`
	MaxDispMM    float64   `yaml:"max_displacement_mm"`
	ForceAtEdgeN float64   `yaml:"force_at_edge_n"`
	Refused      []cell.ID `yaml:"refused,flow,omitempty"`
}

// RouteLine summarizes one route.
type RouteLine struct {
	From  cell.ID   `yaml:"from"`
	To    cell.ID   `yaml:"to"`
	Found bool      `yaml:"found"`
	Path  []cell.ID `yaml:"path,flow,omitempty"`
}

// Digest flattens the report.
func (r *Report) Digest() Digest {
	d := Digest{
		Name:     r.Name,
		Crossbar: r.Params.CrossbarLength,
		Cells:    r.Stats.CellCount,
		Edges:    r.Stats.EdgeCount,
		Polygons: r.Stats.PolygonCount,
		Pieces:   len(r.Pieces),
		Modes:    make(map[string]int, len(r.Stats.ModeCounts)),
		Removed:  r.Removed,
	}
	for m, n := range r.Stats.ModeCounts {
		d.Modes[m.String()] = n
	}
	for _, pl := range r.Placements {
		d.Placements = append(d.Placements, PlacementLine{
			Polygon: pl.Polygon.ID,
			Shape:   pl.Polygon.Shape.String(),
			Snapped: pl.Snapped,
			Cells:   pl.Polygon.Cells,
		})
	}
	for _, im := range r.Impacts {
		s := im.Result.Summary
		line := ImpactLine{
			Run:          im.Result.RunID.String(),
			Target:       im.Result.Target,
			Force:        s.ImpactForce,
			Affected:     s.AffectedCells,
			BlastRadius:  s.BlastRadius,
			AbsorbedUJ:   s.TotalEnergyAbsorbed,
			HarvestedUJ:  s.TotalEnergyHarvested,
			MaxDispMM:    s.MaxDisplacement,
			ForceAtEdgeN: s.ForceAtEdge,
		}
		if im.Response != nil {
			line.Refused = im.Response.Refused
		}
		d.Impacts = append(d.Impacts, line)
	}
	for _, rt := range r.Routes {
		d.Routes = append(d.Routes, RouteLine{From: rt.From, To: rt.To, Found: rt.Found, Path: rt.Path})
	}
	return d
}

// WriteYAML encodes the digest to w.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.Digest()); err != nil {
		return err
	}
	return enc.Close()
}

// WriteText prints a short human summary to w.
func (r *Report) WriteText(w io.Writer) error {
	d := r.Digest()
	if _, err := fmt.Fprintf(w, "%s: %d cells, %d edges, %d polygons (crossbar %g mm)\n",
		nameOr(d.Name), d.Cells, d.Edges, d.Polygons, d.Crossbar); err != nil {
		return err
	}

	modes := make([]string, 0, len(d.Modes))
	for m := range d.Modes {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	for _, m := range modes {
		if _, err := fmt.Fprintf(w, "  mode %-13s %d\n", m, d.Modes[m]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "  pieces %d\n", d.Pieces); err != nil {
		return err
	}
	for _, im := range d.Impacts {
		if _, err := fmt.Fprintf(w, "  impact on %d: %g N, %d cells, radius %d, absorbed %.3f uJ, harvested %.3f uJ\n",
			im.Target, im.Force, im.Affected, im.BlastRadius, im.AbsorbedUJ, im.HarvestedUJ); err != nil {
			return err
		}
	}
	for _, rt := range d.Routes {
		if _, err := fmt.Fprintf(w, "  route %d -> %d: %v\n", rt.From, rt.To, routeText(rt)); err != nil {
			return err
		}
	}
	return nil
}

func nameOr(name string) string {
	if name == "" {
		return "scenario"
	}
	return name
}

func routeText(rt RouteLine) string {
	if !rt.Found {
		return "unreachable"
	}
	return fmt.Sprint(rt.Path)
}

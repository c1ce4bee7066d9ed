package impact

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/katalvlaran/tlattice/cell"
	"github.com/katalvlaran/tlattice/physconst"
)

// wave pairs a queued cell with its hop and arriving force.
type wave struct {
	id    cell.ID
	hop   int
	force float64
}

// walker holds the mutable state of one run.
type walker struct {
	graph   Graph
	cfg     Config
	queue   []wave
	visited map[cell.ID]bool
	res     *Result
}

// Simulate propagates an impact of force newtons from target through g.
//
// Each visited cell records displacement min(F/k, 2 mm), absorbed energy
// ½·k·x² and a fixed harvested share. A cell spreads the wave only while
// F·attenuation exceeds 10 mN; each neighbor then receives
// F·attenuation·strength. Cells are claimed when first enqueued, so the
// first-arriving force wins. Waves beyond MaxHops are dropped unprocessed.
//
// Complexity: O(V + E) over the reached component.
func Simulate(g Graph, target cell.ID, force float64, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if !g.HasCell(target) {
		return nil, fmt.Errorf("Simulate: %w: %d", ErrTargetNotFound, target)
	}

	w := &walker{
		graph:   g,
		cfg:     cfg,
		visited: map[cell.ID]bool{target: true},
		queue:   []wave{{id: target, hop: 0, force: force}},
		res: &Result{
			RunID:  uuid.New(),
			Target: target,
			Config: cfg,
			States: make(map[cell.ID]CellState),
		},
	}
	if err := w.loop(); err != nil {
		return nil, err
	}
	w.summarize(force)

	s := w.res.Summary
	cfg.log.Debug("impact simulated",
		"run", w.res.RunID, "target", target, "force", force,
		"affected", s.AffectedCells, "blast_radius", s.BlastRadius,
		"absorbed_uJ", s.TotalEnergyAbsorbed, "harvested_uJ", s.TotalEnergyHarvested)
	return w.res, nil
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]
		if item.hop > w.cfg.MaxHops {
			continue
		}
		mode, ok := w.graph.Mode(item.id)
		if !ok {
			continue
		}
		w.record(item, mode)
		if err := w.spread(item); err != nil {
			return err
		}
	}
	return nil
}

// record derives the energy figures for one cell.
func (w *walker) record(item wave, mode cell.Mode) {
	k := w.cfg.SpringConstant
	x := math.Min(item.force/k, physconst.MaxDisplacement)
	absorbed := 0.5 * k * x * x
	v := x * 2 * math.Pi * physconst.ImpactFrequency

	w.res.States[item.id] = CellState{
		Force:           item.force,
		Displacement:    x * physconst.MetresToMillimetres,
		EnergyAbsorbed:  absorbed * physconst.JoulesToMicrojoules,
		EnergyHarvested: absorbed * physconst.HarvestFraction * physconst.JoulesToMicrojoules,
		KineticEnergy:   0.5 * w.cfg.CellMass * v * v * physconst.JoulesToMicrojoules,
		Velocity:        v,
		Hop:             item.hop,
		Mode:            mode,
	}
	w.res.Order = append(w.res.Order, item.id)
	w.res.Steps = append(w.res.Steps, Step{
		Time:         item.hop,
		Cell:         item.id,
		Force:        item.force,
		Displacement: x * physconst.MetresToMillimetres,
	})
}

// spread enqueues unclaimed neighbors when the attenuated force clears the cutoff.
func (w *walker) spread(item wave) error {
	carried := item.force * w.cfg.Attenuation
	if !(carried > physconst.ForceCutoff) {
		return nil
	}
	links, err := w.graph.Links(item.id)
	if err != nil {
		return fmt.Errorf("Simulate: links of %d: %w", item.id, err)
	}
	for _, l := range links {
		if w.visited[l.Neighbor] {
			continue
		}
		w.visited[l.Neighbor] = true
		w.queue = append(w.queue, wave{id: l.Neighbor, hop: item.hop + 1, force: carried * l.Strength})
	}
	return nil
}

func (w *walker) summarize(force float64) {
	s := Summary{
		ImpactForce:       force,
		AffectedCells:     len(w.res.States),
		PeakForceAtCenter: force,
		ForceAtEdge:       force * math.Pow(w.cfg.Attenuation, float64(w.cfg.MaxHops)),
	}
	for _, id := range w.res.Order {
		st := w.res.States[id]
		s.TotalEnergyAbsorbed += st.EnergyAbsorbed
		s.TotalEnergyHarvested += st.EnergyHarvested
		s.MaxDisplacement = math.Max(s.MaxDisplacement, st.Displacement)
		if st.Hop > s.BlastRadius {
			s.BlastRadius = st.Hop
		}
	}
	w.res.Summary = s
}

// HeatLevel normalizes force against peak into [0,1] for heatmap shading.
// A non-positive peak yields 0.
func HeatLevel(force, peak float64) float64 {
	if !(peak > 0) {
		return 0
	}
	return math.Min(1, math.Max(0, force/peak))
}

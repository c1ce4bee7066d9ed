package impact

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/tlattice/cell"
)

// ResponseMargin is how far past the blast radius the response reaches.
const ResponseMargin = 3

// innerRing is the last hop of the flexing core around the impact site.
const innerRing = 2

// ring returns the target mode for a hop and whether the cell becomes
// load-bearing.
//
//	hop 0            → flex,  load-bearing
//	hop 1..2         → flex
//	hop 3..blast     → rigid, load-bearing
//	hop > blast      → rigid
func ring(hop, blast int) (cell.Mode, bool) {
	switch {
	case hop == 0:
		return cell.Flex, true
	case hop <= innerRing:
		return cell.Flex, false
	case hop <= blast:
		return cell.Rigid, true
	default:
		return cell.Rigid, false
	}
}

// ApplyResponse reassigns modes in concentric rings around center, out to
// blastRadius+ResponseMargin hops. Mode changes go through the legal
// transition table; cells that cannot reach their ring's mode keep their
// mode and are reported in Refused. Roles are assigned either way.
// A negative blastRadius is treated as 0.
func ApplyResponse(g Responder, center cell.ID, blastRadius int, opts ...Option) (Response, error) {
	if g == nil {
		return Response{}, ErrGraphNil
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return Response{}, cfg.err
	}
	if blastRadius < 0 {
		blastRadius = 0
	}

	rings := g.Neighborhood(center, blastRadius+ResponseMargin)
	if len(rings) == 0 {
		return Response{}, fmt.Errorf("ApplyResponse: %w: %d", ErrTargetNotFound, center)
	}

	ids := make([]cell.ID, 0, len(rings))
	for id := range rings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	resp := Response{Rings: rings}
	for _, id := range ids {
		want, loadBearing := ring(rings[id], blastRadius)
		if loadBearing {
			g.SetRole(id, cell.RoleLoadBearing)
		}
		if cur, ok := g.Mode(id); ok && cur == want {
			resp.Applied = append(resp.Applied, id)
			continue
		}
		if g.Transition(id, want) {
			resp.Applied = append(resp.Applied, id)
		} else {
			resp.Refused = append(resp.Refused, id)
		}
	}

	cfg.log.Debug("impact response applied",
		"center", center, "blast_radius", blastRadius,
		"applied", len(resp.Applied), "refused", len(resp.Refused))
	return resp, nil
}

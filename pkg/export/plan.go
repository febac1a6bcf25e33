// Package export serializes computed plans and renders them to output
// formats.
//
// The central type is [Plan], the self-contained document produced by a
// pipeline run: the calibrated room, the layout inputs, and every derived
// artifact (profiles, plates, circuits, bill of materials). A Plan
// round-trips through JSON without loss, so it doubles as the cache and
// storage representation.
//
// Renderers turn a Plan into viewable artifacts:
//   - [RenderSVG] draws the room to scale with profiles, plates, and
//     colored circuit paths.
//   - [ToDOT] and [RenderDOT] produce a circuit-to-plate schematic via
//     Graphviz.
package export

import (
	"github.com/deckwerk/deckplan/pkg/plan"
	"github.com/deckwerk/deckplan/pkg/routing"
)

// Plan is the complete output of a layout computation.
// It captures the inputs alongside every derived artifact so a stored
// plan can be re-rendered without recomputation.
type Plan struct {
	Room        plan.Room           `json:"room" bson:"room"`
	Orientation plan.Orientation    `json:"orientation" bson:"orientation"`
	System      plan.SystemType     `json:"system" bson:"system"`
	Side        plan.ConnectionSide `json:"side" bson:"side"`

	Profiles []plan.Profile    `json:"profiles" bson:"profiles"`
	Plates   []plan.Plate      `json:"plates" bson:"plates"`
	Circuits []routing.Circuit `json:"circuits" bson:"circuits"`
	BOM      plan.BOM          `json:"bom" bson:"bom"`
}

// Stats summarizes a plan for display.
type Stats struct {
	Profiles int     `json:"profiles"`
	Plates   int     `json:"plates"`
	Circuits int     `json:"circuits"`
	AreaM2   float64 `json:"area_m2"`
	TotalMM  float64 `json:"total_mm"`
}

// Stats returns display counts for the plan.
func (p *Plan) Stats() Stats {
	var total float64
	for _, c := range p.Circuits {
		total += c.LengthMM
	}
	return Stats{
		Profiles: len(p.Profiles),
		Plates:   len(p.Plates),
		Circuits: len(p.Circuits),
		AreaM2:   p.BOM.AreaM2,
		TotalMM:  total,
	}
}

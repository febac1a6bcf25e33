// Package routing assembles continuous pipe circuits over a packed plate
// layout: plates are grouped into eight-plate registers, their ends are
// joined by nested rounded U-turns, and registers are accumulated into
// circuits that respect a maximum physical loop length.
package routing

import (
	"math"

	"github.com/deckwerk/deckplan/pkg/geom"
)

// ElementKind discriminates path primitives.
type ElementKind string

const (
	// KindLine is a straight segment from Start to End.
	KindLine ElementKind = "line"
	// KindArc is a circular arc from Start to End around Center.
	KindArc ElementKind = "arc"
)

// Element is one primitive of a circuit path. Lines use Start/End only;
// arcs additionally carry Center, Radius, Sweep, and the rotation sense.
// Clockwise is in drawing coordinates (Y grows downward).
type Element struct {
	Kind      ElementKind `json:"kind" bson:"kind"`
	Start     geom.Point  `json:"start" bson:"start"`
	End       geom.Point  `json:"end" bson:"end"`
	Center    geom.Point  `json:"center,omitempty" bson:"center,omitempty"`
	Radius    float64     `json:"radius,omitempty" bson:"radius,omitempty"`
	Sweep     float64     `json:"sweep,omitempty" bson:"sweep,omitempty"` // radians
	Clockwise bool        `json:"clockwise,omitempty" bson:"clockwise,omitempty"`
}

// Line builds a straight element.
func Line(a, b geom.Point) Element {
	return Element{Kind: KindLine, Start: a, End: b}
}

// Arc builds a circular arc element.
func Arc(start, end, center geom.Point, radius, sweep float64, clockwise bool) Element {
	return Element{
		Kind:      KindArc,
		Start:     start,
		End:       end,
		Center:    center,
		Radius:    radius,
		Sweep:     sweep,
		Clockwise: clockwise,
	}
}

// Length returns the element's arc length in drawing units.
func (e Element) Length() float64 {
	if e.Kind == KindArc {
		return e.Radius * e.Sweep
	}
	return e.Start.Distance(e.End)
}

// Path is an ordered sequence of path elements.
type Path []Element

// Length returns the total path length in drawing units.
func (p Path) Length() float64 {
	total := 0.0
	for _, e := range p {
		total += e.Length()
	}
	return total
}

// QuarterSweep is the sweep angle of the corner arcs in a flattened U.
const QuarterSweep = math.Pi / 2

// Package plan computes the manufacturable layout for a radiant
// ceiling-heating installation: a centered grid of support profiles placed
// inside the room polygon, and heat-transfer plates packed into the gaps
// between adjacent profiles.
//
// All geometry is in drawing units; the room's calibration scale converts
// to and from physical millimetres. Engines are pure functions of their
// inputs: same room, orientation, system, and config always produce the
// same layout, and nothing is retained between calls.
package plan

import (
	"github.com/deckwerk/deckplan/pkg/errors"
	"github.com/deckwerk/deckplan/pkg/geom"
)

// Orientation selects which drawing axis the support profiles run along.
type Orientation string

const (
	// OrientationHorizontal runs profiles left-to-right; the grid advances
	// top-to-bottom.
	OrientationHorizontal Orientation = "horizontal"
	// OrientationVertical runs profiles top-to-bottom; the grid advances
	// left-to-right.
	OrientationVertical Orientation = "vertical"
)

// Valid returns true for a known orientation.
func (o Orientation) Valid() bool {
	return o == OrientationHorizontal || o == OrientationVertical
}

// Axis returns the drawing axis the profiles run along.
func (o Orientation) Axis() geom.Axis {
	if o == OrientationVertical {
		return geom.AxisY
	}
	return geom.AxisX
}

// GridAxis returns the axis the profile grid advances along.
func (o Orientation) GridAxis() geom.Axis {
	return o.Axis().Other()
}

// SystemType selects the plate-packing recipe.
type SystemType string

const (
	// SystemFour packs four wide-gap plates per profile pair.
	SystemFour SystemType = "four"
	// SystemSix packs six narrow-gap plates per profile pair.
	SystemSix SystemType = "six"
)

// Valid returns true for a known system type.
func (s SystemType) Valid() bool {
	return s == SystemFour || s == SystemSix
}

// ConnectionSide is the room side the supply/return leads attach to.
type ConnectionSide string

const (
	SideTop    ConnectionSide = "top"
	SideBottom ConnectionSide = "bottom"
	SideLeft   ConnectionSide = "left"
	SideRight  ConnectionSide = "right"
)

// Valid returns true for a known side.
func (s ConnectionSide) Valid() bool {
	switch s {
	case SideTop, SideBottom, SideLeft, SideRight:
		return true
	}
	return false
}

// Opposite returns the geometrically opposite side.
func (s ConnectionSide) Opposite() ConnectionSide {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	default:
		return SideLeft
	}
}

// Direction returns the outward unit vector for the side, in drawing
// coordinates (Y grows downward).
func (s ConnectionSide) Direction() geom.Point {
	switch s {
	case SideTop:
		return geom.Pt(0, -1)
	case SideBottom:
		return geom.Pt(0, 1)
	case SideLeft:
		return geom.Pt(-1, 0)
	default:
		return geom.Pt(1, 0)
	}
}

// CompatibleWith reports whether plate ends face this side under the given
// orientation. Horizontal plates end at the left and right walls, vertical
// plates at the top and bottom.
func (s ConnectionSide) CompatibleWith(o Orientation) bool {
	if o == OrientationHorizontal {
		return s == SideLeft || s == SideRight
	}
	return s == SideTop || s == SideBottom
}

// DefaultSide returns the conventional connection side for an orientation.
func DefaultSide(o Orientation) ConnectionSide {
	if o == OrientationVertical {
		return SideTop
	}
	return SideLeft
}

// Room is the calibrated input boundary. The polygon is owned by the
// caller and never mutated by the engines.
type Room struct {
	Polygon geom.Polygon `json:"polygon" bson:"polygon"`

	// Scale maps physical millimetres to drawing units
	// (drawing = mm × Scale). Zero means uncalibrated.
	Scale float64 `json:"scale" bson:"scale"`
}

// Validate rejects rooms the engines cannot run on. A missing or
// non-positive scale is reported as UNCALIBRATED, distinct from polygon
// problems, so callers can prompt for calibration instead of a re-draw.
func (r Room) Validate() error {
	if r.Scale <= 0 {
		return errors.New(errors.ErrCodeUncalibrated, "calibration scale is %g; run calibration first", r.Scale)
	}
	if r.Polygon.IsEmpty() {
		return errors.New(errors.ErrCodeInvalidRoom, "room polygon needs at least 3 points, got %d", r.Polygon.Len())
	}
	return nil
}

// AreaM2 returns the physical room area in square metres.
func (r Room) AreaM2() float64 {
	if r.Scale <= 0 {
		return 0
	}
	return r.Polygon.Area() / (r.Scale * r.Scale) / 1e6
}

// ToMM converts a drawing-space length to millimetres.
func (r Room) ToMM(drawing float64) float64 {
	return drawing / r.Scale
}

// ToDrawing converts a millimetre length to drawing units.
func (r Room) ToDrawing(mm float64) float64 {
	return mm * r.Scale
}

// Profile is one rigid support segment of the ceiling grid. Start and End
// span its longitudinal extent; Pos is the centerline coordinate on the
// grid axis. Profiles are ordered by Pos and immutable after creation.
type Profile struct {
	Start       geom.Point  `json:"start" bson:"start"`
	End         geom.Point  `json:"end" bson:"end"`
	Width       float64     `json:"width" bson:"width"` // drawing units
	Orientation Orientation `json:"orientation" bson:"orientation"`
	Pos         float64     `json:"pos" bson:"pos"` // grid-axis centerline, drawing units
}

// Length returns the longitudinal extent in drawing units.
func (p Profile) Length() float64 {
	return p.Start.Distance(p.End)
}

// Interval returns the longitudinal extent along the profile axis.
func (p Profile) Interval() geom.Interval {
	a := p.Orientation.Axis()
	return geom.Interval{Start: p.Start.Coord(a), End: p.End.Coord(a)}
}

// InnerEdge returns the grid-axis coordinate of the edge facing smaller
// positions; OuterEdge the one facing larger positions.
func (p Profile) InnerEdge() float64 { return p.Pos - p.Width/2 }

// OuterEdge returns the grid-axis coordinate of the far edge.
func (p Profile) OuterEdge() float64 { return p.Pos + p.Width/2 }

// Plate is one heat-transfer panel packed between two adjacent profiles.
// Its longitudinal extent is always the safe zone of its profile pair.
type Plate struct {
	Start       geom.Point  `json:"start" bson:"start"`
	End         geom.Point  `json:"end" bson:"end"`
	Width       float64     `json:"width" bson:"width"` // drawing units
	Orientation Orientation `json:"orientation" bson:"orientation"`
	Pos         float64     `json:"pos" bson:"pos"`   // grid-axis centerline, drawing units
	Pair        int         `json:"pair" bson:"pair"` // index of the lower bounding profile
}

// Length returns the longitudinal extent in drawing units.
func (p Plate) Length() float64 {
	return p.Start.Distance(p.End)
}

// Interval returns the longitudinal extent along the plate axis.
func (p Plate) Interval() geom.Interval {
	a := p.Orientation.Axis()
	return geom.Interval{Start: p.Start.Coord(a), End: p.End.Coord(a)}
}

// EndOn returns the plate endpoint facing the given side. The side must be
// compatible with the plate's orientation; for an incompatible side the
// start point is returned.
func (p Plate) EndOn(side ConnectionSide) geom.Point {
	switch side {
	case SideLeft:
		if p.Start.X <= p.End.X {
			return p.Start
		}
		return p.End
	case SideRight:
		if p.Start.X > p.End.X {
			return p.Start
		}
		return p.End
	case SideTop:
		if p.Start.Y <= p.End.Y {
			return p.Start
		}
		return p.End
	case SideBottom:
		if p.Start.Y > p.End.Y {
			return p.Start
		}
		return p.End
	}
	return p.Start
}

package routing

import (
	"math"

	"github.com/deckwerk/deckplan/pkg/geom"
)

// lineEpsilon suppresses degenerate zero-length segments when a turn's
// stems or bridge collapse exactly onto the corner arcs.
const lineEpsilon = 1e-9

// BuildTurn produces a rounded flattened-U path from a to b, bulging
// depth drawing units along side (a unit vector pointing away from the
// plates). The path is line–arc–line–arc–line: two stems along side, two
// quarter-circle corners, and a bridge parallel to the a→b chord.
//
// The corner radius shrinks to half the endpoint gap for tight pairs.
// When the gap is too small for two corners of the configured radius the
// turn degrades to a single straight connector, whose length is exactly
// the endpoint distance.
//
// Both corner arcs share one rotation sense, chosen from the cross
// product of (b−a) and (apex−a); equal senses produce a U, opposite ones
// would produce an S.
func BuildTurn(a, b geom.Point, depth float64, side geom.Point, cornerRadius float64) Path {
	gap := a.Distance(b)
	if gap < 2*cornerRadius {
		return Path{Line(a, b)}
	}

	radius := math.Min(cornerRadius, gap/2)
	// Stems cannot be shorter than the corner radius.
	if depth < radius {
		depth = radius
	}

	u := b.Sub(a).Normalize()
	apex := geom.MidPoint(a, b).Add(side.Scale(depth))
	clockwise := b.Sub(a).Cross(apex.Sub(a)) < 0

	stemA := a.Add(side.Scale(depth - radius))
	stemB := b.Add(side.Scale(depth - radius))
	bridgeStart := a.Add(side.Scale(depth)).Add(u.Scale(radius))
	bridgeEnd := b.Add(side.Scale(depth)).Sub(u.Scale(radius))
	centerA := stemA.Add(u.Scale(radius))
	centerB := stemB.Sub(u.Scale(radius))

	var path Path
	if stemA.Distance(a) > lineEpsilon {
		path = append(path, Line(a, stemA))
	}
	path = append(path, Arc(stemA, bridgeStart, centerA, radius, QuarterSweep, clockwise))
	if bridgeEnd.Distance(bridgeStart) > lineEpsilon {
		path = append(path, Line(bridgeStart, bridgeEnd))
	}
	path = append(path, Arc(bridgeEnd, stemB, centerB, radius, QuarterSweep, clockwise))
	if b.Distance(stemB) > lineEpsilon {
		path = append(path, Line(stemB, b))
	}

	return path
}

// BuildStub produces the straight supply/return lead projecting outward
// from a plate end along the connection direction.
func BuildStub(end geom.Point, dir geom.Point, length float64) Path {
	return Path{Line(end, end.Add(dir.Scale(length)))}
}

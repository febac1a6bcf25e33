package plan

import (
	"math"

	"github.com/deckwerk/deckplan/pkg/geom"
)

// LayoutProfiles places the support-profile grid inside the room.
//
// The grid is centered: the usable span perpendicular to the profile
// direction (room extent minus twice the grid margin) determines the
// profile count, and the whole grid is offset so both outer gaps are
// equal. Each candidate position is validated with a double-ray edge
// check: two rays offset by ±half the profile width from the centerline
// must both cross the polygon, and the profile is confined to the
// tightest interval the two rays agree on. Positions that fail any check
// are skipped; the rest of the grid is still placed.
//
// Profiles are returned ordered by grid position. A room too narrow for
// a single profile yields an empty slice and no error.
func LayoutProfiles(room Room, o Orientation, cfg Config) ([]Profile, error) {
	if err := room.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	long := o.Axis()
	grid := o.GridAxis()

	minP, maxP, ok := room.Polygon.BoundingBox()
	if !ok {
		return nil, nil
	}

	spacing := room.ToDrawing(cfg.ProfileSpacing)
	margin := room.ToDrawing(cfg.GridMargin)
	width := room.ToDrawing(cfg.ProfileWidth)
	buffer := room.ToDrawing(cfg.WallBuffer)
	step := room.ToDrawing(cfg.QuantStep)
	minLen := room.ToDrawing(cfg.MinProfileLength)

	extent := maxP.Coord(grid) - minP.Coord(grid)
	usable := extent - 2*margin
	if usable < 0 {
		return nil, nil
	}

	count := int(math.Floor(usable/spacing)) + 1
	gridSpan := float64(count-1) * spacing
	first := minP.Coord(grid) + (extent-gridSpan)/2

	profiles := make([]Profile, 0, count)
	for i := 0; i < count; i++ {
		pos := first + float64(i)*spacing

		lo := room.Polygon.CastRay(long, pos-width/2)
		hi := room.Polygon.CastRay(long, pos+width/2)
		if len(lo) < 2 || len(hi) < 2 {
			continue
		}

		// Tightest interval both edge rays agree on.
		span := geom.Interval{
			Start: math.Max(lo[0], hi[0]),
			End:   math.Min(lo[1], hi[1]),
		}
		if span.IsEmpty() {
			continue
		}

		inner := span.Shrink(buffer)
		if inner.Length() < minLen {
			continue
		}

		length := geom.Quantize(inner.Length(), step)
		if length < minLen {
			continue
		}

		// Anchor at the wall-buffer end nearer the coordinate origin; the
		// far gap absorbs the quantization remainder.
		profiles = append(profiles, Profile{
			Start:       pointAt(o, inner.Start, pos),
			End:         pointAt(o, inner.Start+length, pos),
			Width:       width,
			Orientation: o,
			Pos:         pos,
		})
	}

	return profiles, nil
}

// pointAt builds a drawing-space point from a longitudinal coordinate and
// a grid-axis coordinate under the given orientation.
func pointAt(o Orientation, long, grid float64) geom.Point {
	if o == OrientationVertical {
		return geom.Pt(grid, long)
	}
	return geom.Pt(long, grid)
}

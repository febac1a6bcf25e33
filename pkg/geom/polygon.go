package geom

import (
	"math"
	"sort"
)

// rayEpsilon rejects polygon edges that run (near-)parallel to a cast ray.
// The parametric intersection divides by the edge's extent across the ray;
// below this threshold the division is numerically meaningless.
const rayEpsilon = 1e-9

// Polygon is a closed simple polygon defined by its vertices in order.
// The closing edge from the last vertex back to the first is implicit.
// Ray casting assumes the polygon does not self-intersect.
type Polygon struct {
	Vertices []Point `json:"vertices" bson:"vertices"`
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point) Polygon {
	return Polygon{Vertices: pts}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (p Polygon) Edge(i int) (Point, Point) {
	n := len(p.Vertices)
	return p.Vertices[i%n], p.Vertices[(i+1)%n]
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for one winding order, negative for the other; zero for
// fewer than 3 vertices.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Y
		area -= p.Vertices[j].X * p.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon in drawing units².
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// BoundingBox returns the axis-aligned bounding box as (min, max) and
// whether the polygon spans a non-degenerate box (at least two distinct
// points).
func (p Polygon) BoundingBox() (Point, Point, bool) {
	if len(p.Vertices) == 0 {
		return Point{}, Point{}, false
	}
	minP := p.Vertices[0]
	maxP := p.Vertices[0]
	distinct := false
	for _, v := range p.Vertices[1:] {
		if v != p.Vertices[0] {
			distinct = true
		}
		minP.X = math.Min(minP.X, v.X)
		minP.Y = math.Min(minP.Y, v.Y)
		maxP.X = math.Max(maxP.X, v.X)
		maxP.Y = math.Max(maxP.Y, v.Y)
	}
	return minP, maxP, distinct
}

// Contains returns true if the point is inside the polygon using ray casting.
func (p Polygon) Contains(pt Point) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// CastRay intersects the infinite line running along the given axis at the
// given perpendicular offset with every polygon edge, and returns the
// crossing coordinates along the ray, sorted ascending.
//
// For AxisX the ray is the horizontal line y = at, and the result holds the
// x-coordinates of the crossings; for AxisY the ray is the vertical line
// x = at and the result holds y-coordinates. Edges running parallel to the
// ray are skipped. For a simple polygon the crossing count is even.
func (p Polygon) CastRay(axis Axis, at float64) []float64 {
	n := len(p.Vertices)
	if n < 2 {
		return nil
	}

	perp := axis.Other()
	var hits []float64
	for i := 0; i < n; i++ {
		a, b := p.Edge(i)

		denom := b.Coord(perp) - a.Coord(perp)
		if math.Abs(denom) < rayEpsilon {
			continue
		}
		t := (at - a.Coord(perp)) / denom
		// Half-open so a crossing exactly on a shared vertex counts once.
		if t < 0 || t >= 1 {
			continue
		}
		hits = append(hits, a.Coord(axis)+t*(b.Coord(axis)-a.Coord(axis)))
	}

	sort.Float64s(hits)
	return hits
}

// Perimeter returns the total perimeter length in drawing units.
func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += p.Vertices[i].Distance(p.Vertices[j])
	}
	return total
}

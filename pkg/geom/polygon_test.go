package geom

import (
	"math"
	"sort"
	"testing"
)

// rect builds the test rectangle (0,0)-(w,h).
func rect(w, h float64) Polygon {
	return NewPolygon(Pt(0, 0), Pt(w, 0), Pt(w, h), Pt(0, h))
}

// lShape is a 100x100 square with the top-right 50x50 corner removed.
func lShape() Polygon {
	return NewPolygon(
		Pt(0, 0), Pt(50, 0), Pt(50, 50), Pt(100, 50), Pt(100, 100), Pt(0, 100),
	)
}

func TestArea(t *testing.T) {
	tests := []struct {
		name string
		p    Polygon
		want float64
	}{
		{"rectangle", rect(40, 30), 1200},
		{"l-shape", lShape(), 7500},
		{"degenerate", NewPolygon(Pt(0, 0), Pt(1, 1)), 0},
		{"empty", Polygon{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Area(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Area() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignedAreaWinding(t *testing.T) {
	cw := rect(10, 10)
	ccw := NewPolygon(Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0))

	if cw.SignedArea() == ccw.SignedArea() {
		t.Error("opposite windings should give opposite signed areas")
	}
	if cw.Area() != ccw.Area() {
		t.Error("Area should be winding-independent")
	}
}

func TestBoundingBox(t *testing.T) {
	min, max, ok := lShape().BoundingBox()
	if !ok {
		t.Fatal("BoundingBox() ok = false for valid polygon")
	}
	if min != Pt(0, 0) || max != Pt(100, 100) {
		t.Errorf("BoundingBox() = %v, %v", min, max)
	}

	if _, _, ok := (Polygon{}).BoundingBox(); ok {
		t.Error("empty polygon should report no box")
	}
	if _, _, ok := NewPolygon(Pt(1, 1), Pt(1, 1)).BoundingBox(); ok {
		t.Error("single repeated point should report no box")
	}
}

func TestContains(t *testing.T) {
	p := lShape()

	tests := []struct {
		name string
		pt   Point
		want bool
	}{
		{"inside lower arm", Pt(25, 25), true},
		{"inside upper body", Pt(50, 75), true},
		{"in removed corner", Pt(75, 25), false},
		{"outside", Pt(200, 200), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.pt); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestCastRay(t *testing.T) {
	p := lShape()

	tests := []struct {
		name string
		axis Axis
		at   float64
		want []float64
	}{
		{"horizontal through lower arm", AxisX, 25, []float64{0, 50}},
		{"horizontal through body", AxisX, 75, []float64{0, 100}},
		{"vertical through arm", AxisY, 25, []float64{0, 100}},
		{"vertical through removed corner", AxisY, 75, []float64{50, 100}},
		{"outside", AxisX, 150, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.CastRay(tt.axis, tt.at)
			if len(got) != len(tt.want) {
				t.Fatalf("CastRay() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("CastRay()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCastRayProperties(t *testing.T) {
	// A simple polygon produces an even, sorted crossing count for any ray
	// not through a vertex.
	p := lShape()
	for _, at := range []float64{10, 30, 60, 90} {
		hits := p.CastRay(AxisX, at)
		if len(hits)%2 != 0 {
			t.Errorf("CastRay(AxisX, %v) has odd crossing count %d", at, len(hits))
		}
		if !sort.Float64sAreSorted(hits) {
			t.Errorf("CastRay(AxisX, %v) = %v, not sorted", at, hits)
		}
	}
}

func TestPerimeter(t *testing.T) {
	if got := rect(30, 40).Perimeter(); got != 140 {
		t.Errorf("Perimeter() = %v, want 140", got)
	}
	if got := (Polygon{}).Perimeter(); got != 0 {
		t.Errorf("empty Perimeter() = %v, want 0", got)
	}
}

func TestEdgeWraps(t *testing.T) {
	p := rect(10, 10)
	a, b := p.Edge(3)
	if a != Pt(0, 10) || b != Pt(0, 0) {
		t.Errorf("Edge(3) = %v→%v, want closing edge", a, b)
	}
}

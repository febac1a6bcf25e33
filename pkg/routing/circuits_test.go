package routing

import (
	"testing"

	"github.com/deckwerk/deckplan/pkg/errors"
	"github.com/deckwerk/deckplan/pkg/geom"
	"github.com/deckwerk/deckplan/pkg/plan"
)

// routeRoom builds a calibrated rectangle, 1 drawing unit per mm.
func routeRoom(w, h float64) plan.Room {
	return plan.Room{
		Polygon: geom.NewPolygon(geom.Pt(0, 0), geom.Pt(w, 0), geom.Pt(w, h), geom.Pt(0, h)),
		Scale:   1,
	}
}

// routePlates lays out a full plate field for a room of the given height.
// Height 2800 yields exactly one eight-plate register with the four-plate
// recipe; 4800 yields two.
func routePlates(t *testing.T, h float64) (plan.Room, []plan.Plate) {
	t.Helper()
	room := routeRoom(5000, h)
	cfg := plan.DefaultConfig()

	profiles, err := plan.LayoutProfiles(room, plan.OrientationHorizontal, cfg)
	if err != nil {
		t.Fatalf("LayoutProfiles: %v", err)
	}
	plates, err := plan.LayoutPlates(profiles, plan.SystemFour, room, cfg)
	if err != nil {
		t.Fatalf("LayoutPlates: %v", err)
	}
	return room, plates
}

func TestRouteCircuitsSingleRegister(t *testing.T) {
	room, plates := routePlates(t, 2800)
	if len(plates) != RegisterSize {
		t.Fatalf("scenario needs %d plates, got %d", RegisterSize, len(plates))
	}

	circuits, err := RouteCircuits(plates, plan.SideLeft, room, plan.DefaultConfig())
	if err != nil {
		t.Fatalf("RouteCircuits: %v", err)
	}

	if len(circuits) != 1 {
		t.Fatalf("got %d circuits, want 1", len(circuits))
	}
	c := circuits[0]

	if len(c.Plates) != RegisterSize {
		t.Errorf("circuit serves %d plates, want %d", len(c.Plates), RegisterSize)
	}
	if c.Color != Palette[0] {
		t.Errorf("color = %q, want first palette entry", c.Color)
	}

	// The loop is at least the plate runs plus the two supply stubs.
	minLength := 0.0
	for _, p := range plates {
		minLength += room.ToMM(p.Length())
	}
	minLength += 2 * plan.DefaultConfig().StubLength
	if c.LengthMM < minLength {
		t.Errorf("LengthMM = %v, below the bare plate runs %v", c.LengthMM, minLength)
	}

	// Path length and reported length agree.
	if got := room.ToMM(c.Path.Length()); got != c.LengthMM {
		t.Errorf("LengthMM = %v, path sums to %v", c.LengthMM, got)
	}
}

func TestRouteCircuitsGreedyPacking(t *testing.T) {
	room, plates := routePlates(t, 4800)
	if len(plates) != 2*RegisterSize {
		t.Fatalf("scenario needs %d plates, got %d", 2*RegisterSize, len(plates))
	}

	cfg := plan.DefaultConfig()

	// Both registers fit one circuit under a generous limit.
	cfg.MaxCircuitLength = 1_000_000
	circuits, err := RouteCircuits(plates, plan.SideLeft, room, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(circuits) != 1 {
		t.Fatalf("generous limit: got %d circuits, want 1", len(circuits))
	}
	if len(circuits[0].Plates) != 2*RegisterSize {
		t.Errorf("merged circuit serves %d plates", len(circuits[0].Plates))
	}

	// A limit below one register still emits it, one register per circuit.
	cfg.MaxCircuitLength = 1
	circuits, err = RouteCircuits(plates, plan.SideLeft, room, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(circuits) != 2 {
		t.Fatalf("tight limit: got %d circuits, want 2", len(circuits))
	}
	for i, c := range circuits {
		if len(c.Plates) != RegisterSize {
			t.Errorf("circuit %d serves %d plates, want %d", i, len(c.Plates), RegisterSize)
		}
		if c.Color != Palette[i%len(Palette)] {
			t.Errorf("circuit %d color = %q, want palette order", i, c.Color)
		}
		if c.LengthMM <= cfg.MaxCircuitLength {
			t.Errorf("circuit %d length %v should exceed the tiny limit", i, c.LengthMM)
		}
	}

	// Every plate belongs to exactly one circuit.
	seen := make(map[int]int)
	for _, c := range circuits {
		for _, p := range c.Plates {
			seen[p]++
		}
	}
	for i := range plates {
		if seen[i] != 1 {
			t.Errorf("plate %d appears in %d circuits", i, seen[i])
		}
	}
}

func TestRouteCircuitsDropsIncompleteRegister(t *testing.T) {
	room, plates := routePlates(t, 4800)

	// 12 plates: one full register, four left over and dropped.
	truncated := plates[:12]

	circuits, err := RouteCircuits(truncated, plan.SideLeft, room, plan.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(circuits) != 1 {
		t.Fatalf("got %d circuits, want 1", len(circuits))
	}
	if len(circuits[0].Plates) != RegisterSize {
		t.Errorf("circuit serves %d plates, want %d", len(circuits[0].Plates), RegisterSize)
	}
}

func TestRouteCircuitsEmpty(t *testing.T) {
	room := routeRoom(5000, 2800)

	circuits, err := RouteCircuits(nil, plan.SideLeft, room, plan.DefaultConfig())
	if err != nil {
		t.Fatalf("RouteCircuits: %v", err)
	}
	if circuits == nil || len(circuits) != 0 {
		t.Errorf("got %v, want empty non-nil slice", circuits)
	}

	// Fewer plates than a register: also empty, not an error.
	_, plates := routePlates(t, 2800)
	circuits, err = RouteCircuits(plates[:5], plan.SideLeft, room, plan.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(circuits) != 0 {
		t.Errorf("got %d circuits from a partial register, want 0", len(circuits))
	}
}

func TestRouteCircuitsSideValidation(t *testing.T) {
	room, plates := routePlates(t, 2800)
	cfg := plan.DefaultConfig()

	if _, err := RouteCircuits(plates, "north", room, cfg); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown side: code = %v, want INVALID_INPUT", errors.GetCode(err))
	}

	// Horizontal plates end left/right; top is incompatible.
	if _, err := RouteCircuits(plates, plan.SideTop, room, cfg); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("incompatible side: code = %v, want INVALID_INPUT", errors.GetCode(err))
	}

	if _, err := RouteCircuits(plates, plan.SideRight, room, cfg); err != nil {
		t.Errorf("right side should work for horizontal plates: %v", err)
	}
}

func TestRouteCircuitsFirstRegisterStubs(t *testing.T) {
	room, plates := routePlates(t, 2800)
	cfg := plan.DefaultConfig()

	circuits, err := RouteCircuits(plates, plan.SideLeft, room, cfg)
	if err != nil {
		t.Fatal(err)
	}

	// The supply and return leads project past the connection side wall.
	stub := cfg.StubLength
	leads := 0
	for _, el := range circuits[0].Path {
		if el.Kind == KindLine && el.End.X < 0 {
			if el.Length() == stub {
				leads++
			}
		}
	}
	if leads != 2 {
		t.Errorf("found %d supply/return leads, want 2", leads)
	}
}

func TestPaletteCycles(t *testing.T) {
	if len(Palette) != 8 {
		t.Fatalf("palette has %d colors, want 8", len(Palette))
	}
	seen := make(map[string]bool)
	for _, c := range Palette {
		if seen[c] {
			t.Errorf("duplicate palette color %q", c)
		}
		seen[c] = true
	}
}

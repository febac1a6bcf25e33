package plan

import (
	"math"
	"testing"

	"github.com/deckwerk/deckplan/pkg/errors"
	"github.com/deckwerk/deckplan/pkg/geom"
)

// testRoom builds a calibrated rectangular room, 1 drawing unit per mm.
func testRoom(w, h float64) Room {
	return Room{
		Polygon: geom.NewPolygon(geom.Pt(0, 0), geom.Pt(w, 0), geom.Pt(w, h), geom.Pt(0, h)),
		Scale:   1,
	}
}

func TestLayoutProfilesCenteredGrid(t *testing.T) {
	room := testRoom(5000, 2800)
	cfg := DefaultConfig()

	profiles, err := LayoutProfiles(room, OrientationHorizontal, cfg)
	if err != nil {
		t.Fatalf("LayoutProfiles: %v", err)
	}

	// Usable span 2800-200 = 2600 at 1000 spacing fits 3 profiles; the
	// 2000 grid span centers at y = 400, 1400, 2400.
	if len(profiles) != 3 {
		t.Fatalf("got %d profiles, want 3", len(profiles))
	}
	wantPos := []float64{400, 1400, 2400}
	for i, p := range profiles {
		if math.Abs(p.Pos-wantPos[i]) > 1e-9 {
			t.Errorf("profile %d Pos = %v, want %v", i, p.Pos, wantPos[i])
		}
	}

	// Symmetric outer gaps.
	first, last := profiles[0], profiles[len(profiles)-1]
	if math.Abs(first.Pos-(2800-last.Pos)) > 1e-9 {
		t.Errorf("grid not centered: first %v, last %v", first.Pos, last.Pos)
	}
}

func TestLayoutProfilesWallBufferAndQuantize(t *testing.T) {
	room := testRoom(5000, 2800)
	cfg := DefaultConfig()

	profiles, err := LayoutProfiles(room, OrientationHorizontal, cfg)
	if err != nil {
		t.Fatalf("LayoutProfiles: %v", err)
	}

	for i, p := range profiles {
		// 5000 span shrunk by the 50 wall buffer on both ends is 4900,
		// already a multiple of the 50 quant step.
		if p.Start.X != 50 {
			t.Errorf("profile %d starts at %v, want 50", i, p.Start.X)
		}
		if p.Length() != 4900 {
			t.Errorf("profile %d length = %v, want 4900", i, p.Length())
		}

		// Quantized length is a whole multiple of the step.
		steps := p.Length() / cfg.QuantStep
		if math.Abs(steps-math.Round(steps)) > 1e-9 {
			t.Errorf("profile %d length %v not on quant grid", i, p.Length())
		}

		// The profile stays clear of the walls on both rails.
		for _, edge := range []float64{p.Pos - p.Width/2, p.Pos + p.Width/2} {
			hits := room.Polygon.CastRay(OrientationHorizontal.Axis(), edge)
			if len(hits) < 2 {
				t.Fatalf("profile %d edge ray %v missed the room", i, edge)
			}
			if p.Start.X < hits[0]+cfg.WallBuffer-1e-9 || p.End.X > hits[len(hits)-1]-cfg.WallBuffer+1e-9 {
				t.Errorf("profile %d [%v,%v] violates wall buffer", i, p.Start.X, p.End.X)
			}
		}
	}
}

func TestLayoutProfilesVertical(t *testing.T) {
	room := testRoom(2800, 5000)

	profiles, err := LayoutProfiles(room, OrientationVertical, DefaultConfig())
	if err != nil {
		t.Fatalf("LayoutProfiles: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("got %d profiles, want 3", len(profiles))
	}
	for i, p := range profiles {
		if p.Start.X != p.End.X {
			t.Errorf("vertical profile %d should run along Y", i)
		}
		if p.Start.Y != 50 || p.End.Y != 4950 {
			t.Errorf("profile %d spans [%v,%v], want [50,4950]", i, p.Start.Y, p.End.Y)
		}
	}
}

func TestLayoutProfilesNarrowRoom(t *testing.T) {
	// Usable span below zero: no profiles, no error.
	room := testRoom(5000, 150)

	profiles, err := LayoutProfiles(room, OrientationHorizontal, DefaultConfig())
	if err != nil {
		t.Fatalf("LayoutProfiles: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("got %d profiles, want 0", len(profiles))
	}
}

func TestLayoutProfilesSkipsShortPositions(t *testing.T) {
	// An L-shaped room: the lower half is only 400 wide, below the
	// minimum profile length, so rows there are skipped while the wide
	// half is still populated.
	room := Room{
		Polygon: geom.NewPolygon(
			geom.Pt(0, 0), geom.Pt(5000, 0), geom.Pt(5000, 1400),
			geom.Pt(400, 1400), geom.Pt(400, 2800), geom.Pt(0, 2800),
		),
		Scale: 1,
	}

	profiles, err := LayoutProfiles(room, OrientationHorizontal, DefaultConfig())
	if err != nil {
		t.Fatalf("LayoutProfiles: %v", err)
	}

	for _, p := range profiles {
		if p.Pos > 1400 && p.Length() >= 500 && p.End.X > 400 {
			t.Errorf("profile at %v extends past the narrow wing", p.Pos)
		}
	}
	if len(profiles) == 0 {
		t.Fatal("wide half should still hold profiles")
	}
}

func TestLayoutProfilesErrors(t *testing.T) {
	cfg := DefaultConfig()

	_, err := LayoutProfiles(Room{Polygon: testRoom(100, 100).Polygon}, OrientationHorizontal, cfg)
	if !errors.Is(err, errors.ErrCodeUncalibrated) {
		t.Errorf("uncalibrated room: code = %v, want UNCALIBRATED", errors.GetCode(err))
	}

	_, err = LayoutProfiles(Room{Polygon: geom.NewPolygon(geom.Pt(0, 0)), Scale: 1}, OrientationHorizontal, cfg)
	if !errors.Is(err, errors.ErrCodeInvalidRoom) {
		t.Errorf("degenerate polygon: code = %v, want INVALID_ROOM", errors.GetCode(err))
	}

	bad := cfg
	bad.QuantStep = 0
	_, err = LayoutProfiles(testRoom(5000, 2800), OrientationHorizontal, bad)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("invalid config: code = %v, want INVALID_CONFIG", errors.GetCode(err))
	}
}

func TestLayoutProfilesScale(t *testing.T) {
	// Same physical room at 2 drawing units per mm: positions double in
	// drawing space, physical lengths stay identical.
	room := testRoom(10000, 5600)
	room.Scale = 2

	profiles, err := LayoutProfiles(room, OrientationHorizontal, DefaultConfig())
	if err != nil {
		t.Fatalf("LayoutProfiles: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("got %d profiles, want 3", len(profiles))
	}
	if profiles[0].Pos != 800 {
		t.Errorf("first Pos = %v, want 800", profiles[0].Pos)
	}
	if got := room.ToMM(profiles[0].Length()); got != 4900 {
		t.Errorf("physical length = %v mm, want 4900", got)
	}
}

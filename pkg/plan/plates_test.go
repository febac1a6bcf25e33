package plan

import (
	"math"
	"testing"

	"github.com/deckwerk/deckplan/pkg/geom"
)

func layoutTestProfiles(t *testing.T, room Room) []Profile {
	t.Helper()
	profiles, err := LayoutProfiles(room, OrientationHorizontal, DefaultConfig())
	if err != nil {
		t.Fatalf("LayoutProfiles: %v", err)
	}
	return profiles
}

func TestLayoutPlatesFourRecipe(t *testing.T) {
	room := testRoom(5000, 2800)
	profiles := layoutTestProfiles(t, room)

	plates, err := LayoutPlates(profiles, SystemFour, room, DefaultConfig())
	if err != nil {
		t.Fatalf("LayoutPlates: %v", err)
	}

	// Two profile pairs, four plates each.
	if len(plates) != 8 {
		t.Fatalf("got %d plates, want 8", len(plates))
	}

	// First pair: profiles at 400 and 1400, facing edges 430 and 1370.
	// The 720 block centers in the 920 gap and shifts by the 10 offset,
	// putting plate centerlines at 590, 770, 950, 1130.
	wantPos := []float64{590, 770, 950, 1130}
	for i := 0; i < 4; i++ {
		if math.Abs(plates[i].Pos-wantPos[i]) > 1e-9 {
			t.Errorf("plate %d Pos = %v, want %v", i, plates[i].Pos, wantPos[i])
		}
		if plates[i].Pair != 0 {
			t.Errorf("plate %d Pair = %d, want 0", i, plates[i].Pair)
		}
	}
	for i := 4; i < 8; i++ {
		if plates[i].Pair != 1 {
			t.Errorf("plate %d Pair = %d, want 1", i, plates[i].Pair)
		}
	}

	// Plates stay inside their profiles' gap.
	for i, p := range plates {
		lower, upper := profiles[p.Pair], profiles[p.Pair+1]
		if p.Pos-p.Width/2 < lower.OuterEdge()-1e-9 || p.Pos+p.Width/2 > upper.InnerEdge()+1e-9 {
			t.Errorf("plate %d at %v leaves the profile gap", i, p.Pos)
		}
	}
}

func TestLayoutPlatesSixRecipe(t *testing.T) {
	room := testRoom(5000, 2800)
	profiles := layoutTestProfiles(t, room)

	plates, err := LayoutPlates(profiles, SystemSix, room, DefaultConfig())
	if err != nil {
		t.Fatalf("LayoutPlates: %v", err)
	}
	if len(plates) != 12 {
		t.Fatalf("got %d plates, want 12", len(plates))
	}

	// Both recipes center the same 720 span, so the block start matches
	// the four-plate variant; the last plate edge sits one trailing gap
	// short of the span end.
	first, last := plates[0], plates[5]
	if math.Abs(first.Pos-first.Width/2-540) > 1e-9 {
		t.Errorf("block starts at %v, want 540", first.Pos-first.Width/2)
	}
	if math.Abs(last.Pos+last.Width/2-1240) > 1e-9 {
		t.Errorf("last plate edge at %v, want 1240", last.Pos+last.Width/2)
	}
}

func TestLayoutPlatesSafeZone(t *testing.T) {
	room := testRoom(5000, 2800)
	profiles := layoutTestProfiles(t, room)

	// Shorten the second profile; the pair's plates must shrink to the
	// overlap of both profiles.
	profiles[1].End = geom.Pt(3000, profiles[1].End.Y)

	plates, err := LayoutPlates(profiles, SystemFour, room, DefaultConfig())
	if err != nil {
		t.Fatalf("LayoutPlates: %v", err)
	}

	for i, p := range plates[:4] {
		if p.Start.X != 50 || p.End.X != 3000 {
			t.Errorf("plate %d spans [%v,%v], want [50,3000]", i, p.Start.X, p.End.X)
		}
	}
	// Second pair keeps the same truncated start.
	for i, p := range plates[4:] {
		if p.Start.X != 50 || p.End.X != 3000 {
			t.Errorf("pair-1 plate %d spans [%v,%v], want [50,3000]", i, p.Start.X, p.End.X)
		}
	}
}

func TestLayoutPlatesSkipsTightGap(t *testing.T) {
	room := testRoom(5000, 2800)

	// Hand-built profiles 700 apart: the facing gap 700-60 = 640 cannot
	// hold the 720 recipe span.
	tight := []Profile{
		{Start: geom.Pt(50, 400), End: geom.Pt(4950, 400), Width: 60, Orientation: OrientationHorizontal, Pos: 400},
		{Start: geom.Pt(50, 1100), End: geom.Pt(4950, 1100), Width: 60, Orientation: OrientationHorizontal, Pos: 1100},
	}

	plates, err := LayoutPlates(tight, SystemFour, room, DefaultConfig())
	if err != nil {
		t.Fatalf("LayoutPlates: %v", err)
	}
	if len(plates) != 0 {
		t.Errorf("got %d plates in a too-tight gap, want 0", len(plates))
	}
}

func TestLayoutPlatesExactSpanGap(t *testing.T) {
	room := testRoom(5000, 2800)

	// Hand-built profiles 780 apart: the facing gap 780-60 = 720 equals
	// the recipe span exactly, leaving no centering margin.
	snug := []Profile{
		{Start: geom.Pt(50, 400), End: geom.Pt(4950, 400), Width: 60, Orientation: OrientationHorizontal, Pos: 400},
		{Start: geom.Pt(50, 1180), End: geom.Pt(4950, 1180), Width: 60, Orientation: OrientationHorizontal, Pos: 1180},
	}

	plates, err := LayoutPlates(snug, SystemFour, room, DefaultConfig())
	if err != nil {
		t.Fatalf("LayoutPlates: %v", err)
	}
	if len(plates) != 4 {
		t.Fatalf("got %d plates in an exact-span gap, want 4", len(plates))
	}

	// With zero margin the block starts at the lower profile's outer
	// edge (430) plus the 10 visual offset.
	if got := plates[0].Pos - plates[0].Width/2; math.Abs(got-440) > 1e-9 {
		t.Errorf("block starts at %v, want 440", got)
	}
	wantPos := []float64{490, 670, 850, 1030}
	for i, p := range plates {
		if math.Abs(p.Pos-wantPos[i]) > 1e-9 {
			t.Errorf("plate %d Pos = %v, want %v", i, p.Pos, wantPos[i])
		}
	}
}

func TestLayoutPlatesDeterministic(t *testing.T) {
	room := testRoom(5000, 2800)
	profiles := layoutTestProfiles(t, room)

	a, err := LayoutPlates(profiles, SystemFour, room, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, err := LayoutPlates(profiles, SystemFour, room, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != len(b) {
		t.Fatalf("runs differ in size: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("plate %d differs between runs", i)
		}
	}
}

func TestBuildBOM(t *testing.T) {
	room := testRoom(5000, 2800)
	cfg := DefaultConfig()
	profiles := layoutTestProfiles(t, room)
	plates, err := LayoutPlates(profiles, SystemFour, room, cfg)
	if err != nil {
		t.Fatal(err)
	}

	bom := BuildBOM(room, profiles, plates, cfg)

	if got := bom.AreaM2; math.Abs(got-14) > 1e-9 {
		t.Errorf("AreaM2 = %v, want 14", got)
	}
	if got := bom.ProfileLengths[4900]; got != 3 {
		t.Errorf("ProfileLengths[4900] = %d, want 3", got)
	}
	if got := bom.PlateLengths[4900]; got != 8 {
		t.Errorf("PlateLengths[4900] = %d, want 8", got)
	}
	if bom.TotalProfileMM != 3*4900 {
		t.Errorf("TotalProfileMM = %v, want %v", bom.TotalProfileMM, 3*4900)
	}
	if bom.TotalPlateMM != 8*4900 {
		t.Errorf("TotalPlateMM = %v, want %v", bom.TotalPlateMM, 8*4900)
	}

	keys := SortedKeys(map[int]int{300: 1, 100: 2, 200: 3})
	if len(keys) != 3 || keys[0] != 100 || keys[2] != 300 {
		t.Errorf("SortedKeys = %v", keys)
	}
}

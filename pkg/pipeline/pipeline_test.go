package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/deckwerk/deckplan/pkg/cache"
	"github.com/deckwerk/deckplan/pkg/errors"
	"github.com/deckwerk/deckplan/pkg/geom"
	"github.com/deckwerk/deckplan/pkg/plan"
)

func testRoom() plan.Room {
	return plan.Room{
		Polygon: geom.NewPolygon(geom.Pt(0, 0), geom.Pt(5000, 0), geom.Pt(5000, 2800), geom.Pt(0, 2800)),
		Scale:   1,
	}
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"svg", "json", "dot", "png"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	for _, f := range []string{"pdf", "SVG", ""} {
		err := ValidateFormat(f)
		if !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v, want INVALID_FORMAT", f, errors.GetCode(err))
		}
	}
}

func TestValidateForPlanDefaults(t *testing.T) {
	opts := Options{Room: testRoom()}
	if err := opts.ValidateForPlan(); err != nil {
		t.Fatalf("ValidateForPlan: %v", err)
	}

	if opts.Orientation != plan.OrientationHorizontal {
		t.Errorf("Orientation = %q, want horizontal", opts.Orientation)
	}
	if opts.System != plan.SystemFour {
		t.Errorf("System = %q, want four", opts.System)
	}
	if opts.Side != plan.SideLeft {
		t.Errorf("Side = %q, want left", opts.Side)
	}
	if opts.Config == nil {
		t.Fatal("Config should default")
	}
	if *opts.Config != plan.DefaultConfig() {
		t.Error("Config should default to the factory settings")
	}
	if opts.Logger == nil {
		t.Error("Logger should default")
	}
}

func TestValidateForPlanErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"uncalibrated room", Options{Room: plan.Room{Polygon: testRoom().Polygon}}, errors.ErrCodeUncalibrated},
		{"bad orientation", Options{Room: testRoom(), Orientation: "diagonal"}, errors.ErrCodeInvalidInput},
		{"bad system", Options{Room: testRoom(), System: "eight"}, errors.ErrCodeInvalidInput},
		{"bad side", Options{Room: testRoom(), Side: "north"}, errors.ErrCodeInvalidInput},
		{"incompatible side", Options{Room: testRoom(), Side: plan.SideTop}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateForPlan()
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}

	bad := plan.DefaultConfig()
	bad.QuantStep = 0
	opts := Options{Room: testRoom(), Config: &bad}
	if err := opts.ValidateForPlan(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("invalid config: code = %v, want INVALID_CONFIG", errors.GetCode(err))
	}
}

func TestComputePlan(t *testing.T) {
	p, err := ComputePlan(context.Background(), Options{Room: testRoom(), Logger: testLogger()})
	if err != nil {
		t.Fatalf("ComputePlan: %v", err)
	}

	if len(p.Profiles) != 3 {
		t.Errorf("got %d profiles, want 3", len(p.Profiles))
	}
	if len(p.Plates) != 8 {
		t.Errorf("got %d plates, want 8", len(p.Plates))
	}
	if len(p.Circuits) != 1 {
		t.Errorf("got %d circuits, want 1", len(p.Circuits))
	}
	if p.BOM.AreaM2 != 14 {
		t.Errorf("BOM area = %v, want 14", p.BOM.AreaM2)
	}
	if p.Orientation != plan.OrientationHorizontal || p.System != plan.SystemFour || p.Side != plan.SideLeft {
		t.Errorf("plan carries %q/%q/%q, want defaults", p.Orientation, p.System, p.Side)
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, testLogger())
	opts := Options{
		Room:    testRoom(),
		Formats: []string{FormatJSON, FormatSVG, FormatDOT},
	}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.ProfileCount != 3 || result.Stats.PlateCount != 8 || result.Stats.CircuitCount != 1 {
		t.Errorf("stats = %+v, want 3 profiles, 8 plates, 1 circuit", result.Stats)
	}
	if result.PlanHash == "" {
		t.Error("PlanHash should be set")
	}
	if result.CacheInfo.PlanHit || result.CacheInfo.RenderHit {
		t.Errorf("null cache reported hits: %+v", result.CacheInfo)
	}

	for _, format := range opts.Formats {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("artifact %q is empty", format)
		}
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact lacks an <svg> element")
	}
	if !strings.Contains(string(result.Artifacts[FormatDOT]), "digraph") {
		t.Error("dot artifact lacks a digraph")
	}
}

func TestExecuteDefaultsToSVG(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())

	result, err := runner.Execute(context.Background(), Options{Room: testRoom()})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Artifacts) != 1 || len(result.Artifacts[FormatSVG]) == 0 {
		t.Errorf("artifacts = %v keys, want just svg", len(result.Artifacts))
	}
}

func TestExecuteInvalidFormat(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())

	_, err := runner.Execute(context.Background(), Options{Room: testRoom(), Formats: []string{"pdf"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("code = %v, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, testLogger())
	opts := Options{Room: testRoom(), Formats: []string{FormatJSON}}
	ctx := context.Background()

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.PlanHit {
		t.Error("first run should miss the plan cache")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.PlanHit {
		t.Error("second run should hit the plan cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if second.PlanHash != first.PlanHash {
		t.Errorf("plan hash changed across cached runs: %q vs %q", second.PlanHash, first.PlanHash)
	}

	// Refresh bypasses the plan cache.
	refreshed := opts
	refreshed.Refresh = true
	third, err := runner.Execute(ctx, refreshed)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.PlanHit {
		t.Error("refresh run should bypass the plan cache")
	}
}

func TestPlanKeyDependsOnConfig(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())

	a := Options{Room: testRoom()}
	if err := a.ValidateForPlan(); err != nil {
		t.Fatal(err)
	}
	keyA, err := runner.planKey(a)
	if err != nil {
		t.Fatal(err)
	}

	wide := plan.DefaultConfig()
	wide.ProfileSpacing = 800
	b := Options{Room: testRoom(), Config: &wide}
	if err := b.ValidateForPlan(); err != nil {
		t.Fatal(err)
	}
	keyB, err := runner.planKey(b)
	if err != nil {
		t.Fatal(err)
	}

	if keyA == keyB {
		t.Error("config change should change the plan key")
	}
}

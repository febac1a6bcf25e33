package plan

import (
	"math"

	"github.com/BurntSushi/toml"

	"github.com/deckwerk/deckplan/pkg/errors"
)

// recipeTolerance is the slack allowed when checking that a plate recipe
// sums to the configured total span. Spans are entered by hand in whole
// millimetres; anything beyond float noise is a real mismatch.
const recipeTolerance = 1e-6

// Config holds every tunable millimetre constant of the layout engine.
// It is validated once at construction and passed by value into every
// layout call; engines never mutate it.
//
// All lengths are physical millimetres. Conversion into drawing units
// happens inside the engines via the room's calibration scale.
type Config struct {
	// Profile grid
	ProfileWidth     float64 `toml:"profile_width_mm" json:"profile_width_mm"`
	ProfileSpacing   float64 `toml:"profile_spacing_mm" json:"profile_spacing_mm"`
	WallBuffer       float64 `toml:"wall_buffer_mm" json:"wall_buffer_mm"`
	GridMargin       float64 `toml:"grid_margin_mm" json:"grid_margin_mm"`
	QuantStep        float64 `toml:"quant_step_mm" json:"quant_step_mm"`
	MinProfileLength float64 `toml:"min_profile_length_mm" json:"min_profile_length_mm"`

	// Plate packing
	PlateWidth   float64 `toml:"plate_width_mm" json:"plate_width_mm"`
	PlateGapFour float64 `toml:"plate_gap_four_mm" json:"plate_gap_four_mm"`
	PlateGapSix  float64 `toml:"plate_gap_six_mm" json:"plate_gap_six_mm"`
	RecipeSpan   float64 `toml:"recipe_span_mm" json:"recipe_span_mm"`
	VisualOffset float64 `toml:"visual_offset_mm" json:"visual_offset_mm"`

	// Circuit routing
	MaxCircuitLength float64 `toml:"max_circuit_length_mm" json:"max_circuit_length_mm"`
	StubLength       float64 `toml:"stub_length_mm" json:"stub_length_mm"`
	TurnMaxDepth     float64 `toml:"turn_max_depth_mm" json:"turn_max_depth_mm"`
	ConnTurnDepth    float64 `toml:"conn_turn_depth_mm" json:"conn_turn_depth_mm"`
	CornerRadius     float64 `toml:"corner_radius_mm" json:"corner_radius_mm"`

	// Bill of materials
	BOMPlateStep float64 `toml:"bom_plate_step_mm" json:"bom_plate_step_mm"`
}

// DefaultConfig returns the factory settings.
func DefaultConfig() Config {
	return Config{
		ProfileWidth:     60,
		ProfileSpacing:   1000,
		WallBuffer:       50,
		GridMargin:       100,
		QuantStep:        50,
		MinProfileLength: 500,

		PlateWidth:   100,
		PlateGapFour: 80,
		PlateGapSix:  20,
		RecipeSpan:   720,
		VisualOffset: 10,

		MaxCircuitLength: 100_000,
		StubLength:       150,
		TurnMaxDepth:     200,
		ConnTurnDepth:    60,
		CornerRadius:     50,

		BOMPlateStep: 50,
	}
}

// LoadConfig reads a TOML settings file on top of the defaults and
// validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the engines cannot run with.
// Invalid values fail here, before any layout is attempted.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"profile_width_mm", c.ProfileWidth},
		{"profile_spacing_mm", c.ProfileSpacing},
		{"wall_buffer_mm", c.WallBuffer},
		{"grid_margin_mm", c.GridMargin},
		{"quant_step_mm", c.QuantStep},
		{"min_profile_length_mm", c.MinProfileLength},
		{"plate_width_mm", c.PlateWidth},
		{"plate_gap_four_mm", c.PlateGapFour},
		{"plate_gap_six_mm", c.PlateGapSix},
		{"recipe_span_mm", c.RecipeSpan},
		{"max_circuit_length_mm", c.MaxCircuitLength},
		{"stub_length_mm", c.StubLength},
		{"turn_max_depth_mm", c.TurnMaxDepth},
		{"conn_turn_depth_mm", c.ConnTurnDepth},
		{"corner_radius_mm", c.CornerRadius},
		{"bom_plate_step_mm", c.BOMPlateStep},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %g", p.name, p.value)
		}
	}

	if c.ProfileSpacing <= c.ProfileWidth {
		return errors.New(errors.ErrCodeInvalidConfig,
			"profile_spacing_mm (%g) must exceed profile_width_mm (%g)", c.ProfileSpacing, c.ProfileWidth)
	}

	for _, sys := range []SystemType{SystemFour, SystemSix} {
		r, err := c.Recipe(sys)
		if err != nil {
			return err
		}
		span := float64(r.Plates) * (c.PlateWidth + r.Gap)
		if math.Abs(span-c.RecipeSpan) > recipeTolerance {
			return errors.New(errors.ErrCodeInvalidConfig,
				"recipe %q spans %g mm, want recipe_span_mm %g", sys, span, c.RecipeSpan)
		}
	}

	return nil
}

// Recipe returns the plate-packing recipe for a system variant.
func (c Config) Recipe(sys SystemType) (Recipe, error) {
	switch sys {
	case SystemFour:
		return Recipe{Plates: 4, Gap: c.PlateGapFour}, nil
	case SystemSix:
		return Recipe{Plates: 6, Gap: c.PlateGapSix}, nil
	default:
		return Recipe{}, errors.New(errors.ErrCodeInvalidInput, "unknown system type %q", sys)
	}
}

// Recipe is a named plate-packing variant: a plate count and the
// inter-plate gap between consecutive plates. Plates × (width + gap)
// equals the configured recipe span for every variant.
type Recipe struct {
	Plates int
	Gap    float64 // millimetres
}

// Package pipeline provides the core planning pipeline for Deckplan.
//
// This package implements the complete layout → route → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Plan: Compute the profile grid, pack the heating plates, and route
//     circuits for the calibrated room.
//  2. Render: Generate output in various formats (SVG, JSON, DOT, PNG).
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Room:    room,
//	    System:  plan.SystemFour,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/deckwerk/deckplan/pkg/cache"
	"github.com/deckwerk/deckplan/pkg/errors"
	"github.com/deckwerk/deckplan/pkg/export"
	"github.com/deckwerk/deckplan/pkg/plan"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatPNG:  true,
}

// Options contains all configuration for the planning pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Plan options
	Room        plan.Room           `json:"room"`
	Orientation plan.Orientation    `json:"orientation,omitempty"`
	System      plan.SystemType     `json:"system,omitempty"`
	Side        plan.ConnectionSide `json:"side,omitempty"`
	Refresh     bool                `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Config overrides the default layout configuration when set.
	Config *plan.Config `json:"config,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the computed plan document.
	Plan *export.Plan

	// PlanHash is the content hash of the serialized plan.
	PlanHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ProfileCount int
	PlateCount   int
	CircuitCount int
	PlanTime     time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlanHit   bool // Whether the plan came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, json, dot, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForPlan(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForPlan checks required fields for plan computation and applies
// plan-stage defaults.
func (o *Options) ValidateForPlan() error {
	if err := o.Room.Validate(); err != nil {
		return err
	}

	if o.Orientation == "" {
		o.Orientation = plan.OrientationHorizontal
	}
	if !o.Orientation.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid orientation: %q", o.Orientation)
	}

	if o.System == "" {
		o.System = plan.SystemFour
	}
	if !o.System.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid system: %q", o.System)
	}

	if o.Side == "" {
		o.Side = plan.DefaultSide(o.Orientation)
	}
	if !o.Side.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid connection side: %q", o.Side)
	}
	if !o.Side.CompatibleWith(o.Orientation) {
		return errors.New(errors.ErrCodeInvalidInput,
			"connection side %q is incompatible with %s profiles", o.Side, o.Orientation)
	}

	if o.Config == nil {
		cfg := plan.DefaultConfig()
		o.Config = &cfg
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// PlanKeyOpts returns cache key options for plan computation.
func (o *Options) PlanKeyOpts(configHash string) cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		Orientation: string(o.Orientation),
		System:      string(o.System),
		Side:        string(o.Side),
		Scale:       o.Room.Scale,
		ConfigHash:  configHash,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
	}
}

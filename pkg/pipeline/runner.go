package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/deckwerk/deckplan/pkg/cache"
	"github.com/deckwerk/deckplan/pkg/export"
	"github.com/deckwerk/deckplan/pkg/observability"
	"github.com/deckwerk/deckplan/pkg/plan"
	"github.com/deckwerk/deckplan/pkg/routing"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete plan → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Plan
	planStart := time.Now()
	p, planHit, err := r.ComputePlanWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Plan = p
	result.Stats.PlanTime = time.Since(planStart)
	result.Stats.ProfileCount = len(p.Profiles)
	result.Stats.PlateCount = len(p.Plates)
	result.Stats.CircuitCount = len(p.Circuits)
	result.CacheInfo.PlanHit = planHit

	// Compute plan hash for cache keys and API responses
	if planData, err := export.MarshalPlan(p); err == nil {
		result.PlanHash = cache.Hash(planData)
	}

	r.Logger.Info("computed plan",
		"profiles", len(p.Profiles),
		"plates", len(p.Plates),
		"circuits", len(p.Circuits),
		"duration", result.Stats.PlanTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputePlanWithCacheInfo computes a plan with caching and returns
// cache hit info.
func (r *Runner) ComputePlanWithCacheInfo(ctx context.Context, opts Options) (*export.Plan, bool, error) {
	if err := opts.ValidateForPlan(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey, err := r.planKey(opts)
	if err != nil {
		return nil, false, err
	}

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if p, err := export.UnmarshalPlan(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "plan")
				return p, true, nil
			}
			// Corrupt cached plan - fall through to recompute.
		}
	}
	observability.Cache().OnCacheMiss(ctx, "plan")

	p, err := ComputePlan(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := export.MarshalPlan(p); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLPlan) == nil {
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
	}

	return p, false, nil
}

// ComputePlan is a convenience wrapper that calls ComputePlanWithCacheInfo
// and discards the cache hit info.
func (r *Runner) ComputePlan(ctx context.Context, opts Options) (*export.Plan, error) {
	p, _, err := r.ComputePlanWithCacheInfo(ctx, opts)
	return p, err
}

// ComputePlan runs the layout and routing engines without caching.
func ComputePlan(ctx context.Context, opts Options) (*export.Plan, error) {
	if err := opts.ValidateForPlan(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnPlanStart(ctx, string(opts.Orientation), string(opts.System))

	p, err := computePlan(opts)

	var stats observability.PlanStats
	if p != nil {
		stats = observability.PlanStats{
			Profiles: len(p.Profiles),
			Plates:   len(p.Plates),
			Circuits: len(p.Circuits),
		}
	}
	observability.Pipeline().OnPlanComplete(ctx,
		string(opts.Orientation), string(opts.System), stats, time.Since(start), err)

	return p, err
}

func computePlan(opts Options) (*export.Plan, error) {
	cfg := *opts.Config

	profiles, err := plan.LayoutProfiles(opts.Room, opts.Orientation, cfg)
	if err != nil {
		return nil, err
	}

	plates, err := plan.LayoutPlates(profiles, opts.System, opts.Room, cfg)
	if err != nil {
		return nil, err
	}

	circuits, err := routing.RouteCircuits(plates, opts.Side, opts.Room, cfg)
	if err != nil {
		return nil, err
	}

	return &export.Plan{
		Room:        opts.Room,
		Orientation: opts.Orientation,
		System:      opts.System,
		Side:        opts.Side,
		Profiles:    profiles,
		Plates:      plates,
		Circuits:    circuits,
		BOM:         plan.BuildBOM(opts.Room, profiles, plates, cfg),
	}, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *export.Plan, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	planData, err := export.MarshalPlan(p)
	if err != nil {
		return nil, false, err
	}
	planHash := cache.Hash(planData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(ctx, p, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper over the format renderers.
func Render(ctx context.Context, p *export.Plan, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	artifacts, err := renderFormats(ctx, p, opts.Formats)

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// planKey computes the fingerprint cache key for a plan request.
func (r *Runner) planKey(opts Options) (string, error) {
	roomData, err := json.Marshal(opts.Room)
	if err != nil {
		return "", err
	}
	configData, err := json.Marshal(opts.Config)
	if err != nil {
		return "", err
	}
	return r.Keyer.PlanKey(cache.Hash(roomData), opts.PlanKeyOpts(cache.Hash(configData))), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Package cache provides the memoization layer for plan computation.
//
// Layout results and rendered artifacts are cached under fingerprint keys
// derived from every input that influences the output: room polygon,
// orientation, system recipe, connection side, calibration scale, and the
// full configuration. Identical requests are served from cache; any input
// change produces a new key and a full recompute. No engine-internal
// state survives between calls.
//
// Backends:
//   - FileCache: per-user cache directory for CLI usage
//   - RedisCache: shared cache for multi-instance serving
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// TTLs per cached artifact class. Plans are pure functions of their
// fingerprint, so the TTL only bounds disk growth, not staleness.
const (
	// TTLPlan applies to computed plan documents.
	TTLPlan = 30 * 24 * time.Hour

	// TTLArtifact applies to rendered outputs (SVG, PNG, ...).
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface for fingerprint-keyed blobs.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PlanKeyOpts carries every plan input that participates in the
// fingerprint besides the room polygon itself.
type PlanKeyOpts struct {
	Orientation string  `json:"orientation"`
	System      string  `json:"system"`
	Side        string  `json:"side"`
	Scale       float64 `json:"scale"`
	ConfigHash  string  `json:"config_hash"`
}

// ArtifactKeyOpts carries the render inputs for an artifact key.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// PlanKey generates a key for a computed plan. roomHash is the content
	// hash of the serialized room polygon.
	PlanKey(roomHash string, opts PlanKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact. planHash is the
	// content hash of the serialized plan.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PlanKey generates a key for a computed plan.
func (DefaultKeyer) PlanKey(roomHash string, opts PlanKeyOpts) string {
	return hashKey("plan", roomHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

// Package pkg provides the core libraries for deckplan, a layout engine for
// radiant ceiling-heating installations.
//
// # Overview
//
// deckplan turns a calibrated room outline into a manufacturable layout:
// support profiles on a centered grid, heat-transfer plates packed between
// them, and continuous pipe circuits with rounded U-turn connections. The
// pkg directory is organized by concern:
//
//  1. [geom] - 2D primitives: points, intervals, polygons, ray casting
//  2. [plan] - Configuration, profile grid layout, plate packing, BOM
//  3. [routing] - Circuit assembly and turn geometry
//  4. [pipeline] - Orchestration (layout → route → render) with caching
//  5. [export] - Serialization and rendering sinks (JSON, SVG, DOT)
//  6. [cache], [store], [observability], [errors], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Room polygon + calibration scale + config
//	         ↓
//	    [plan] package (profiles, plates)
//	         ↓
//	    [routing] package (circuits)
//	         ↓
//	    [export] package (JSON/SVG/DOT output)
//
// # Quick Start
//
// Compute a full plan and render it:
//
//	import (
//	    "context"
//	    "github.com/deckwerk/deckplan/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	opts := pipeline.Options{
//	    Room:    room,
//	    System:  plan.SystemFour,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(context.Background(), opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/routing/...  # Specific package
//
// [geom]: https://pkg.go.dev/github.com/deckwerk/deckplan/pkg/geom
// [plan]: https://pkg.go.dev/github.com/deckwerk/deckplan/pkg/plan
// [routing]: https://pkg.go.dev/github.com/deckwerk/deckplan/pkg/routing
// [pipeline]: https://pkg.go.dev/github.com/deckwerk/deckplan/pkg/pipeline
// [export]: https://pkg.go.dev/github.com/deckwerk/deckplan/pkg/export
// [cache]: https://pkg.go.dev/github.com/deckwerk/deckplan/pkg/cache
// [store]: https://pkg.go.dev/github.com/deckwerk/deckplan/pkg/store
// [observability]: https://pkg.go.dev/github.com/deckwerk/deckplan/pkg/observability
// [errors]: https://pkg.go.dev/github.com/deckwerk/deckplan/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/deckwerk/deckplan/pkg/buildinfo
package pkg

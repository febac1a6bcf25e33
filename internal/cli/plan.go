package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deckwerk/deckplan/pkg/export"
	"github.com/deckwerk/deckplan/pkg/pipeline"
	"github.com/deckwerk/deckplan/pkg/plan"
)

// planCommand creates the plan command, the main entry point of the CLI.
func (c *CLI) planCommand() *cobra.Command {
	var (
		orientation string
		system      string
		side        string
		formatsStr  string
		output      string
		configPath  string
		noCache     bool
		refresh     bool
	)

	cmd := &cobra.Command{
		Use:   "plan [room.json]",
		Short: "Compute a full heating plan for a room",
		Long: `Compute a full heating plan for a room.

The plan command reads a calibrated room outline (a JSON file with the
polygon points and the drawing scale), lays out the mounting-profile
grid, packs heating plates between adjacent profiles, routes the
heating circuits, and writes the requested output formats.

Results are cached locally for faster subsequent runs; identical inputs
are served from cache. Use --refresh to force a recompute.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			room, err := export.ReadRoomFile(args[0])
			if err != nil {
				return err
			}

			opts := pipeline.Options{
				Room:        room,
				Orientation: plan.Orientation(orientation),
				System:      plan.SystemType(system),
				Side:        plan.ConnectionSide(side),
				Formats:     parseFormats(formatsStr),
				Refresh:     refresh,
				Config:      &cfg,
				Logger:      loggerFromContext(cmd.Context()),
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}

			return c.runPlan(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVar(&orientation, "orientation", "", "profile orientation: horizontal (default), vertical")
	cmd.Flags().StringVar(&system, "system", "", "plate recipe: four (default), six")
	cmd.Flags().StringVar(&side, "side", "", "connection side: top, bottom, left, right (default depends on orientation)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&configPath, "config", "", "layout configuration file (TOML)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results and recompute")

	return cmd
}

// runPlan executes the pipeline and writes the artifacts.
func (c *CLI) runPlan(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing plan...")
	spinner.Start()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Planning failed")
		return err
	}
	spinner.Stop()

	stats := result.Plan.Stats()
	prog.done(fmt.Sprintf("Routed %d circuits over %d plates", stats.Circuits, stats.Plates))
	printSuccess("Planned %.1f m² · %.1f m of circuit", stats.AreaM2, stats.TotalMM/1000)
	printStats(stats.Profiles, stats.Plates, stats.Circuits,
		result.CacheInfo.PlanHit && result.CacheInfo.RenderHit)

	if err := writeArtifacts(result.Artifacts, opts.Formats, input, output); err != nil {
		return err
	}

	printNewline()
	printNextStep("Inspect circuits", fmt.Sprintf("deckplan inspect %s.json", basePath(input, output)))
	return nil
}

// writeArtifacts writes each rendered format next to the input file, or
// under the explicit output path when given.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	base := basePath(input, output)

	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if output != "" && len(formats) == 1 && filepath.Ext(output) != "" {
			path = output
		}

		if err := writeFile(path, data); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// basePath derives the artifact base path from the output flag or the
// input file name.
func basePath(input, output string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_plan"
}

// writeFile writes data, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/deckwerk/deckplan/pkg/export"
	"github.com/deckwerk/deckplan/pkg/pipeline"
	"github.com/deckwerk/deckplan/pkg/plan"
)

// bomCommand creates the bom command for bill-of-materials output.
func (c *CLI) bomCommand() *cobra.Command {
	var (
		orientation string
		system      string
		configPath  string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "bom [room.json]",
		Short: "Print the bill of materials for a room",
		Long: `Print the bill of materials for a room.

Computes the plan (or loads it from cache) and prints the profile and
plate length histograms along with area and totals. Plate lengths are
rounded down to the configured manufacturing increment.`,
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

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			p, err := runner.ComputePlan(cmd.Context(), pipeline.Options{
				Room:        room,
				Orientation: plan.Orientation(orientation),
				System:      plan.SystemType(system),
				Config:      &cfg,
				Logger:      loggerFromContext(cmd.Context()),
			})
			if err != nil {
				return err
			}

			printBOM(p.BOM)
			return nil
		},
	}

	cmd.Flags().StringVar(&orientation, "orientation", "", "profile orientation: horizontal (default), vertical")
	cmd.Flags().StringVar(&system, "system", "", "plate recipe: four (default), six")
	cmd.Flags().StringVar(&configPath, "config", "", "layout configuration file (TOML)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// printBOM renders the bill of materials as styled tables.
func printBOM(b plan.BOM) {
	printKeyValue("Area", fmt.Sprintf("%.2f m²", b.AreaM2))
	printKeyValue("Profile total", fmt.Sprintf("%.2f m", b.TotalProfileMM/1000))
	printKeyValue("Plate total", fmt.Sprintf("%.2f m", b.TotalPlateMM/1000))
	printNewline()

	fmt.Println(StyleTitle.Render("Profiles"))
	fmt.Println(histTable("Length (mm)", b.ProfileLengths))
	printNewline()

	fmt.Println(StyleTitle.Render("Plates"))
	fmt.Println(histTable("Length (mm)", b.PlateLengths))
}

func histTable(lengthHeader string, hist map[int]int) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, mm := range plan.SortedKeys(hist) {
		rows = append(rows, []string{fmt.Sprintf("%d", mm), fmt.Sprintf("%d", hist[mm])})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(lengthHeader, "Count").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

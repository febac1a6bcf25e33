package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/deckwerk/deckplan/pkg/export"
)

// inspectCommand creates the inspect command for browsing a computed plan.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [plan.json]",
		Short: "Browse the circuits of a computed plan interactively",
		Long: `Browse the circuits of a computed plan interactively.

The inspect command takes a plan.json file (produced by 'plan -f json')
and opens an interactive circuit browser showing each circuit's color,
total length, and the plates it serves.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := export.ReadPlanFile(args[0])
			if err != nil {
				return err
			}

			if len(p.Circuits) == 0 {
				printWarning("Plan has no circuits")
				return nil
			}

			model := NewCircuitListModel(p)
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			return nil
		},
	}
}

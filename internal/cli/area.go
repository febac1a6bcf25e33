package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deckwerk/deckplan/pkg/export"
)

// areaCommand creates the area command for quick room measurements.
func (c *CLI) areaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "area [room.json]",
		Short: "Print the calibrated area and perimeter of a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := export.ReadRoomFile(args[0])
			if err != nil {
				return err
			}

			perimeterMM := room.ToMM(room.Polygon.Perimeter())

			printKeyValue("Vertices", fmt.Sprintf("%d", room.Polygon.Len()))
			printKeyValue("Area", fmt.Sprintf("%.2f m²", room.AreaM2()))
			printKeyValue("Perimeter", fmt.Sprintf("%.2f m", perimeterMM/1000))
			printKeyValue("Scale", fmt.Sprintf("%g units/mm", room.Scale))
			return nil
		},
	}
}

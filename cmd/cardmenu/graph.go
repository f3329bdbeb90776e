package main

import (
	"fmt"

	"github.com/aretw0/cardmenu/internal/presentation/graph"
	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the mode graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the menu modes, their actions and transitions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if current, _ := cmd.Flags().GetString("current"); current != "" {
			mode := domain.Mode(current)
			if _, ok := app.Config().Mode(mode); !ok {
				return fmt.Errorf("unknown mode %q", current)
			}
			overlay = &graph.GraphOverlay{CurrentMode: mode}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(app.Config(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("current", "", "Highlight this mode")
}

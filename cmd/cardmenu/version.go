package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/cardmenu"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cardmenu",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cardmenu version %s\n", strings.TrimSpace(cardmenu.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

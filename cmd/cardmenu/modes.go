package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the menu modes as YAML",
	Long:  `Prints every mode with its actions, transition targets and data schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(app.Config().Summary()); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
}

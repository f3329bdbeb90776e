package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/cardmenu"
	"github.com/aretw0/cardmenu/internal/config"
	"github.com/aretw0/cardmenu/internal/logging"
	"github.com/aretw0/cardmenu/internal/menu"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cardmenu",
	Short: "cardmenu is a card-game menu driven by a finite state machine",
	Long: `cardmenu runs a small card-game menu whose screens are the modes of a
finite state machine. Play it in the terminal, serve it over HTTP, export its
graph or run its self checks.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// settings are resolved once per invocation from the environment and flags.
var settings struct {
	cfg    config.Config
	logger *slog.Logger
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands). They override CARDMENU_* variables.
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("copy", "", "YAML file with the menu copy")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colors")
	rootCmd.PersistentFlags().Bool("strict", false, "Fail dispatches whose handlers mutate their input")
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("copy") {
		cfg.CopyFile, _ = flags.GetString("copy")
	}
	if flags.Changed("no-color") {
		cfg.NoColor, _ = flags.GetBool("no-color")
	}
	if flags.Changed("strict") {
		cfg.StrictData, _ = flags.GetBool("strict")
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	settings.cfg = cfg
	settings.logger = logging.New(level)
	return nil
}

// newApp builds the app from the resolved settings.
func newApp(opts ...cardmenu.Option) (*cardmenu.App, error) {
	c, err := menu.LoadCopy(settings.cfg.CopyFile)
	if err != nil {
		return nil, err
	}

	all := []cardmenu.Option{
		cardmenu.WithCopy(c),
		cardmenu.WithLogger(settings.logger),
	}
	if settings.cfg.StrictData {
		all = append(all, cardmenu.WithStrictData())
	}
	return cardmenu.New(append(all, opts...)...)
}

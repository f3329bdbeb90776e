package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/cardmenu/internal/presentation/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the menu in the terminal",
	Long: `Starts an interactive session. On a terminal it opens a full-screen UI;
otherwise (or with --plain) it reads one command per line from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		tuiFlag, _ := cmd.Flags().GetBool("tui")

		app, err := newApp()
		if err != nil {
			return err
		}
		b := app.NewBinder()
		markdown := tui.NewRenderer(settings.cfg.NoColor)

		interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		if tuiFlag && !interactive {
			return tui.ErrNotInteractive
		}

		if interactive && !plain {
			return tui.Run(tui.NewModel(b, app.Copy(), markdown), tea.WithAltScreen())
		}

		profile := termenv.EnvColorProfile()
		if settings.cfg.NoColor {
			profile = termenv.Ascii
		}
		if interactive {
			tui.PrintBanner(cmd.OutOrStdout(), profile)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p := tui.NewPlain(cmd.InOrStdin(), cmd.OutOrStdout(), app.Copy(),
			tui.WithProfile(profile),
			tui.WithMarkdown(markdown),
			tui.WithLogger(settings.logger),
			tui.WithMaxInputSize(settings.cfg.MaxInputSize),
		)
		return p.Run(ctx, b)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Bool("plain", false, "Use the line-based adapter even on a terminal")
	playCmd.Flags().Bool("tui", false, "Require the full-screen UI")
}

package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/cardmenu/internal/menu"
	"github.com/aretw0/cardmenu/pkg/check"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// errChecksFailed makes the process exit with status 1.
var errChecksFailed = errors.New("self checks failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the self checks of the menu machine",
	Long:  `Drives the built-in menu through a suite of checks and reports every result. Exits with status 1 if any check fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []termenv.OutputOption{}
		if settings.cfg.NoColor {
			opts = append(opts, termenv.WithProfile(termenv.Ascii))
		}
		out := termenv.NewOutput(cmd.OutOrStdout(), opts...)

		rec := &check.Recorder{}
		printer := check.ReporterFunc(func(r check.Result) {
			if r.Passed {
				fmt.Fprintf(out, "%s %s\n", out.String("PASS").Foreground(out.Color("2")), r.Description)
				return
			}
			fmt.Fprintf(out, "%s %s\n", out.String("FAIL").Foreground(out.Color("1")), r.Description)
			fmt.Fprintf(out, "     actual:   %#v\n     expected: %#v\n", r.Actual, r.Expected)
			if r.Err != nil {
				fmt.Fprintf(out, "     error:    %v\n", r.Err)
			}
		})

		h := check.New(check.WithReporter(check.Tee(printer, rec)))
		suite := check.MakeSuite(menu.SelfChecks(h)...)

		passed := suite()
		fmt.Fprintf(out, "%d checks, %d failed\n", len(rec.Results()), len(rec.Failures()))
		if !passed {
			return errChecksFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "cardmenu version 0.1.0\n", out)
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, "", "check", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS starts on the root menu")
	assert.Contains(t, out, "9 checks, 0 failed")
	assert.NotContains(t, out, "FAIL")
}

func TestGraphCommand(t *testing.T) {
	out, err := execute(t, "", "graph", "--current", "PLAYING")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph TD"))
	assert.Contains(t, out, "class PLAYING current;")

	_, err = execute(t, "", "graph", "--current", "NOWHERE")
	assert.Error(t, err)
}

func TestModesCommand(t *testing.T) {
	out, err := execute(t, "", "modes")
	require.NoError(t, err)
	assert.Contains(t, out, "mode: ROOT_MENU")
	assert.Contains(t, out, "initial: true")
	assert.Contains(t, out, "cursor: cursor")
	assert.Contains(t, out, "mode: RULES")
}

func TestPlayCommand_Plain(t *testing.T) {
	out, err := execute(t, "play\ndraw\nexit\n", "play", "--plain", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Card Table")
	assert.Contains(t, out, "hand: A♠")
}

func TestCopyFlag_Missing(t *testing.T) {
	_, err := execute(t, "", "version", "--copy", "/nonexistent/copy.yaml")
	require.NoError(t, err, "version does not load the copy")

	_, err = execute(t, "", "check", "--copy", "/nonexistent/copy.yaml")
	require.NoError(t, err, "checks run against the embedded copy")

	_, err = execute(t, "", "play", "--plain", "--copy", "/nonexistent/copy.yaml")
	assert.Error(t, err)
}

// resetFlags undoes the flags of a previous execution.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner using the colors profile supports.
func PrintBanner(w io.Writer, profile termenv.Profile) {
	// Card-table greens fading to gold
	lines := []struct {
		text  string
		color string
	}{
		{"                      _                            ", "#34d399"},
		{"   ___ __ _ _ __ __| |_ __ ___   ___ _ __  _   _ ", "#4ade80"},
		{"  / __/ _` | '__/ _` | '_ ` _ \\ / _ \\ '_ \\| | | |", "#a3e635"},
		{" | (_| (_| | | | (_| | | | | | |  __/ | | | |_| |", "#facc15"},
		{"  \\___\\__,_|_|  \\__,_|_| |_| |_|\\___|_| |_|\\__,_|", "#fbbf24"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, profile.String(l.text).Foreground(profile.Color(l.color)))
	}
	fmt.Fprintln(w)
}

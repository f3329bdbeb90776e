package tui

import (
	"github.com/aretw0/cardmenu/internal/menu"
	"github.com/aretw0/cardmenu/pkg/domain"
)

// keymaps maps key names, as reported by bubbletea, to handler names.
var keymaps = map[domain.Mode]map[string]string{
	menu.RootMenu: {
		"up": "up", "k": "up",
		"down": "down", "j": "down",
		"enter": "choose",
		"p":     "play",
		"r":     "rules",
	},
	menu.Playing: {
		"d": "draw", " ": "draw",
		"x":   "discard",
		"esc": "quit", "backspace": "quit",
	},
	menu.Rules: {
		"right": "next", "l": "next", "n": "next",
		"left": "prev", "h": "prev", "p": "prev",
		"esc": "back", "b": "back",
	},
}

// ActionFor returns the handler bound to key in mode.
func ActionFor(mode domain.Mode, key string) (string, bool) {
	name, ok := keymaps[mode][key]
	return name, ok
}

// helpLines describe the keys of each mode.
var helpLines = map[domain.Mode]string{
	menu.RootMenu: "↑/k up • ↓/j down • enter choose • p play • r rules • q exit",
	menu.Playing:  "d draw • x discard • esc quit to menu • q exit",
	menu.Rules:    "←/h prev • →/l next • esc back • q exit",
}

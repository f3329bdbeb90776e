package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/cardmenu/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedModes []domain.Mode
	CurrentMode  domain.Mode
}

// undeclaredID is the node transitions without declared targets point to.
const undeclaredID = "undeclared"

// GenerateMermaid produces a Mermaid flowchart of a config.
// It applies semantic styling:
// - Initial mode: ((Circle))
// - Default: [Rectangle]
// Actions are drawn as dotted self-loops, transitions as solid edges to
// their declared targets. It also applies overlay styles (Visited/Current)
// if provided.
func GenerateMermaid(cfg domain.Config, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	undeclared := false
	for _, mode := range cfg.ModeNames() {
		def := cfg.Modes[mode]
		safeID := sanitizeMermaidID(string(mode))

		opener, closer := "[", "]"
		if mode == cfg.InitialMode {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, mode, closer)

		for _, name := range def.ActionNames() {
			fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", safeID, escapeLabel(name), safeID)
		}

		for _, name := range def.TransitionNames() {
			targets := def.Targets[name]
			if len(targets) == 0 {
				undeclared = true
				fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", safeID, escapeLabel(name), undeclaredID)
				continue
			}
			for _, target := range targets {
				fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", safeID, escapeLabel(name), sanitizeMermaidID(string(target)))
			}
		}
	}
	if undeclared {
		fmt.Fprintf(&sb, "    %s{{\"?\"}}\n", undeclaredID)
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, mode := range overlay.VisitedModes {
			if _, ok := cfg.Modes[mode]; !ok {
				continue
			}
			safeID := sanitizeMermaidID(string(mode))
			if !visitedSet[safeID] {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentMode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(string(overlay.CurrentMode)))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

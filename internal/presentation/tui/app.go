package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/cardmenu/internal/menu"
	"github.com/aretw0/cardmenu/pkg/binder"
	"github.com/aretw0/cardmenu/pkg/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#15803D")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#15803D"))

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DC2626")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	blackCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Model is the bubbletea model of an interactive menu session.
type Model struct {
	binder   *binder.Binder
	copy     menu.Copy
	markdown Markdown
	err      error
}

// NewModel creates a model driving b. A nil markdown renderer prints rules
// pages as is.
func NewModel(b *binder.Binder, c menu.Copy, markdown Markdown) *Model {
	if markdown == nil {
		markdown = PlainMarkdown
	}
	return &Model{binder: b, copy: c, markdown: markdown}
}

// Run starts the interactive program and blocks until the user exits.
func Run(m *Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	name, ok := ActionFor(m.binder.State().Mode, key.String())
	if !ok {
		return m, nil
	}
	m.err = m.invoke(name)
	return m, nil
}

func (m *Model) invoke(name string) error {
	actions, transitions := m.binder.Handlers()
	if h, ok := actions[name]; ok {
		return h()
	}
	if h, ok := transitions[name]; ok {
		return h()
	}
	return &domain.UnhandledActionError{Mode: m.binder.State().Mode, ActionType: name}
}

func (m *Model) View() string {
	var b strings.Builder

	screen, err := m.copy.Screen(m.binder.State())
	if err != nil {
		return errorStyle.Render(err.Error()) + "\n"
	}

	b.WriteString(titleStyle.Render(screen.Title))
	b.WriteString("\n\n")

	switch screen.Mode {
	case menu.RootMenu:
		for _, item := range screen.Items {
			if item.Selected {
				b.WriteString(selectedStyle.Render("> " + item.Label))
			} else {
				b.WriteString("  " + item.Label)
			}
			b.WriteString("\n")
		}
	case menu.Playing:
		if len(screen.Hand) == 0 {
			b.WriteString("Your hand is empty.\n")
		} else {
			cards := make([]string, 0, len(screen.Hand))
			for _, c := range screen.Hand {
				style := blackCardStyle
				if c.Red() {
					style = redCardStyle
				}
				cards = append(cards, style.Render(c.Glyph()))
			}
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d cards left in the deck\n", screen.Remaining)
	case menu.Rules:
		page, err := m.markdown(screen.Rules)
		if err != nil {
			page = screen.Rules
		}
		b.WriteString(page)
		fmt.Fprintf(&b, "\npage %d of %d\n", screen.Page+1, screen.Pages)
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLines[screen.Mode]))
	b.WriteString("\n")
	return b.String()
}

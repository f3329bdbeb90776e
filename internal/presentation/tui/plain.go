package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/cardmenu/internal/input"
	"github.com/aretw0/cardmenu/internal/logging"
	"github.com/aretw0/cardmenu/internal/menu"
	"github.com/aretw0/cardmenu/pkg/binder"
	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Plain drives a session line by line, for pipes and dumb terminals.
// Each input line names a handler of the current mode, optionally followed
// by a YAML payload ("discard 0").
type Plain struct {
	in       io.Reader
	out      *termenv.Output
	profile  *termenv.Profile
	copy     menu.Copy
	markdown Markdown
	logger   *slog.Logger
	maxInput int
}

// PlainOption configures a Plain adapter.
type PlainOption func(*Plain)

// WithMarkdown sets the renderer of rules pages.
func WithMarkdown(md Markdown) PlainOption {
	return func(p *Plain) {
		p.markdown = md
	}
}

// WithProfile forces the color profile of the output.
func WithProfile(profile termenv.Profile) PlainOption {
	return func(p *Plain) {
		p.profile = &profile
	}
}

// WithLogger sets the logger used for rejected lines.
func WithLogger(logger *slog.Logger) PlainOption {
	return func(p *Plain) {
		p.logger = logger
	}
}

// WithMaxInputSize limits the length of a command line in bytes.
func WithMaxInputSize(n int) PlainOption {
	return func(p *Plain) {
		p.maxInput = n
	}
}

// NewPlain creates a line adapter reading commands from in.
func NewPlain(in io.Reader, out io.Writer, c menu.Copy, opts ...PlainOption) *Plain {
	p := &Plain{
		in:       in,
		copy:     c,
		markdown: PlainMarkdown,
		logger:   logging.NewNop(),
		maxInput: input.DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(p)
	}

	var outOpts []termenv.OutputOption
	if p.profile != nil {
		outOpts = append(outOpts, termenv.WithProfile(*p.profile))
	}
	p.out = termenv.NewOutput(out, outOpts...)
	return p
}

// Run renders the session and applies commands until input ends, the
// context is canceled or the user types "exit".
// Rejected commands are reported and do not stop the loop.
func (p *Plain) Run(ctx context.Context, b *binder.Binder) error {
	p.render(b.State())

	scanner := bufio.NewScanner(p.in)
	for {
		p.prompt(b)
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit":
			return nil
		case "help":
			p.help(b)
			continue
		}

		if err := p.apply(b, line); err != nil {
			p.logger.Debug("command rejected", "line", line, "err", err)
			fmt.Fprintln(p.out, p.out.String("! "+err.Error()).Foreground(p.out.Color("1")))
			continue
		}
		p.render(b.State())
	}
	return scanner.Err()
}

func (p *Plain) apply(b *binder.Binder, line string) error {
	line, err := input.Sanitize(line, p.maxInput)
	if err != nil {
		return err
	}
	name, raw, _ := strings.Cut(line, " ")

	var payload []any
	if raw = strings.TrimSpace(raw); raw != "" {
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return &domain.InvalidInputError{Value: raw, Reason: "payload is not valid YAML"}
		}
		payload = append(payload, v)
	}

	actions, transitions := b.Handlers()
	if h, ok := actions[name]; ok {
		return h(payload...)
	}
	if h, ok := transitions[name]; ok {
		return h(payload...)
	}
	return &domain.UnhandledActionError{Mode: b.State().Mode, ActionType: name}
}

func (p *Plain) prompt(b *binder.Binder) {
	fmt.Fprintf(p.out, "%s> ", strings.ToLower(string(b.State().Mode)))
}

func (p *Plain) help(b *binder.Binder) {
	actions, transitions := b.Handlers()
	fmt.Fprintf(p.out, "actions: %s\n", strings.Join(actions.Names(), ", "))
	fmt.Fprintf(p.out, "transitions: %s\n", strings.Join(transitions.Names(), ", "))
	fmt.Fprintln(p.out, "exit ends the session")
}

func (p *Plain) render(state domain.MachineState) {
	screen, err := p.copy.Screen(state)
	if err != nil {
		fmt.Fprintln(p.out, err)
		return
	}

	fmt.Fprintln(p.out, p.out.String(screen.Title).Bold())
	switch screen.Mode {
	case menu.RootMenu:
		for _, item := range screen.Items {
			marker := "  "
			if item.Selected {
				marker = "> "
			}
			fmt.Fprintln(p.out, marker+item.Label)
		}
	case menu.Playing:
		glyphs := make([]string, 0, len(screen.Hand))
		for _, c := range screen.Hand {
			s := p.out.String(c.Glyph())
			if c.Red() {
				s = s.Foreground(p.out.Color("1"))
			}
			glyphs = append(glyphs, s.String())
		}
		if len(glyphs) == 0 {
			fmt.Fprintln(p.out, "hand: (empty)")
		} else {
			fmt.Fprintln(p.out, "hand: "+strings.Join(glyphs, " "))
		}
		fmt.Fprintf(p.out, "deck: %d\n", screen.Remaining)
	case menu.Rules:
		page, err := p.markdown(screen.Rules)
		if err != nil {
			page = screen.Rules
		}
		fmt.Fprint(p.out, page)
		fmt.Fprintf(p.out, "(page %d of %d)\n", screen.Page+1, screen.Pages)
	}
}

// ErrNotInteractive is returned when an interactive program is requested
// without a terminal.
var ErrNotInteractive = errors.New("not a terminal")

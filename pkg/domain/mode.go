package domain

import (
	"sort"

	"github.com/aretw0/cardmenu/pkg/schema"
)

// ActionFunc computes the next data of a mode from its current data.
// It must return a new value instead of mutating data.
type ActionFunc func(data Data, payload any) (Data, error)

// TransitionFunc computes a whole new state, possibly in another mode.
type TransitionFunc func(state MachineState, payload any) (MachineState, error)

// ModeDefinition declares the data and the callable surface of one mode.
type ModeDefinition struct {
	// InitialData is the data a machine starts with when this is the initial mode.
	InitialData Data

	// Actions are keyed by action type.
	Actions map[string]ActionFunc

	// Transitions are keyed by transition name.
	Transitions map[string]TransitionFunc

	// Targets optionally declares the modes a transition may lead to.
	// It is used for validation and graph export only.
	Targets map[string][]Mode

	// Schema optionally constrains the data of this mode.
	Schema schema.Schema
}

// ActionNames returns the declared action types in sorted order.
func (d ModeDefinition) ActionNames() []string {
	names := make([]string, 0, len(d.Actions))
	for name := range d.Actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TransitionNames returns the declared transition names in sorted order.
func (d ModeDefinition) TransitionNames() []string {
	names := make([]string, 0, len(d.Transitions))
	for name := range d.Transitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Config is supplied once by the integrator and is read-only afterwards.
type Config struct {
	InitialMode Mode
	Modes       map[Mode]ModeDefinition
}

// Mode returns the definition of a mode.
func (c Config) Mode(mode Mode) (ModeDefinition, bool) {
	def, ok := c.Modes[mode]
	return def, ok
}

// ModeNames returns every declared mode in sorted order.
func (c Config) ModeNames() []Mode {
	modes := make([]Mode, 0, len(c.Modes))
	for m := range c.Modes {
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}

// Initial returns the state a new machine starts in.
func (c Config) Initial() MachineState {
	return NewState(c.InitialMode, c.Modes[c.InitialMode].InitialData)
}

// ModeSummary is the serializable outline of one mode.
type ModeSummary struct {
	Mode        Mode              `json:"mode" yaml:"mode"`
	Initial     bool              `json:"initial,omitempty" yaml:"initial,omitempty"`
	Actions     []string          `json:"actions" yaml:"actions"`
	Transitions map[string][]Mode `json:"transitions" yaml:"transitions"`
	Schema      schema.Schema     `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Summary outlines every declared mode, sorted by name. Transitions map to
// their declared targets, which may be empty.
func (c Config) Summary() []ModeSummary {
	modes := c.ModeNames()
	out := make([]ModeSummary, 0, len(modes))
	for _, mode := range modes {
		def := c.Modes[mode]
		transitions := make(map[string][]Mode, len(def.Transitions))
		for _, name := range def.TransitionNames() {
			transitions[name] = append([]Mode{}, def.Targets[name]...)
		}
		out = append(out, ModeSummary{
			Mode:        mode,
			Initial:     mode == c.InitialMode,
			Actions:     def.ActionNames(),
			Transitions: transitions,
			Schema:      def.Schema,
		})
	}
	return out
}

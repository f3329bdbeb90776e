package dsl

import (
	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/aretw0/cardmenu/pkg/schema"
)

// ModeBuilder provides a fluent API for configuring a mode.
type ModeBuilder struct {
	mode    domain.Mode
	def     domain.ModeDefinition
	gotos   []gotoTransition
	builder *Builder
}

type gotoTransition struct {
	name   string
	target domain.Mode
}

// Data sets the data the machine starts with in this mode.
// Go transitions into this mode also use it.
func (m *ModeBuilder) Data(data domain.Data) *ModeBuilder {
	m.def.InitialData = data
	return m
}

// Schema constrains the data of the mode.
func (m *ModeBuilder) Schema(s schema.Schema) *ModeBuilder {
	m.def.Schema = s
	return m
}

// Action adds an action that updates the data in place of the mode.
func (m *ModeBuilder) Action(name string, fn domain.ActionFunc) *ModeBuilder {
	m.def.Actions[name] = fn
	return m
}

// Transition adds a transition. Targets are the modes fn may return; they
// are checked at build time and drawn by the graph exporter.
func (m *ModeBuilder) Transition(name string, fn domain.TransitionFunc, targets ...domain.Mode) *ModeBuilder {
	m.def.Transitions[name] = fn
	if len(targets) > 0 {
		if m.def.Targets == nil {
			m.def.Targets = make(map[string][]domain.Mode)
		}
		m.def.Targets[name] = append([]domain.Mode(nil), targets...)
	}
	return m
}

// Go adds a transition that enters target with the target's initial data.
func (m *ModeBuilder) Go(name string, target domain.Mode) *ModeBuilder {
	m.gotos = append(m.gotos, gotoTransition{name: name, target: target})
	if m.def.Targets == nil {
		m.def.Targets = make(map[string][]domain.Mode)
	}
	m.def.Targets[name] = []domain.Mode{target}
	return m
}

// Mode switches to declaring another mode.
func (m *ModeBuilder) Mode(mode domain.Mode) *ModeBuilder {
	return m.builder.Mode(mode)
}

// Build finishes the whole chain. See Builder.Build.
func (m *ModeBuilder) Build() (domain.Config, error) {
	return m.builder.Build()
}

// MustBuild finishes the whole chain and panics on error.
func (m *ModeBuilder) MustBuild() domain.Config {
	return m.builder.MustBuild()
}

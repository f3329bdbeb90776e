package dsl

import (
	"fmt"

	"github.com/aretw0/cardmenu/pkg/runtime"
	"github.com/aretw0/cardmenu/pkg/domain"
)

// Builder manages the config construction.
type Builder struct {
	initial domain.Mode
	order   []domain.Mode
	modes   map[domain.Mode]*ModeBuilder
}

// New creates a new config builder starting in the given mode.
func New(initial domain.Mode) *Builder {
	return &Builder{
		initial: initial,
		modes:   make(map[domain.Mode]*ModeBuilder),
	}
}

// Mode declares a mode of the machine.
// If the mode already exists, it returns the existing builder.
func (b *Builder) Mode(mode domain.Mode) *ModeBuilder {
	if mb, ok := b.modes[mode]; ok {
		return mb
	}
	mb := &ModeBuilder{
		mode: mode,
		def: domain.ModeDefinition{
			Actions:     make(map[string]domain.ActionFunc),
			Transitions: make(map[string]domain.TransitionFunc),
		},
		builder: b,
	}
	b.modes[mode] = mb
	b.order = append(b.order, mode)
	return mb
}

// Build compiles the declared modes into a validated domain.Config.
func (b *Builder) Build() (domain.Config, error) {
	cfg := domain.Config{
		InitialMode: b.initial,
		Modes:       make(map[domain.Mode]domain.ModeDefinition, len(b.modes)),
	}
	for _, mode := range b.order {
		mb := b.modes[mode]
		for _, g := range mb.gotos {
			target, ok := b.modes[g.target]
			if !ok {
				return domain.Config{}, &domain.ConfigError{
					Mode:   mode,
					Name:   g.name,
					Reason: fmt.Sprintf("target mode %q is not declared", g.target),
				}
			}
			mb.def.Transitions[g.name] = enter(g.target, target.def.InitialData)
		}
		cfg.Modes[mode] = mb.def
	}

	if err := runtime.Validate(cfg); err != nil {
		return domain.Config{}, fmt.Errorf("failed to build config: %w", err)
	}
	return cfg, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() domain.Config {
	cfg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}

func enter(mode domain.Mode, data domain.Data) domain.TransitionFunc {
	return func(domain.MachineState, any) (domain.MachineState, error) {
		return domain.NewState(mode, data), nil
	}
}

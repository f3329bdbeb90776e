package runtime

import (
	"errors"
	"fmt"

	"github.com/aretw0/cardmenu/pkg/domain"
)

// Validate checks that cfg is logically sound. Every defect found is
// reported, joined into one error; each one matches domain.ErrInvalidConfig.
func Validate(cfg domain.Config) error {
	if len(cfg.Modes) == 0 {
		return &domain.ConfigError{Reason: "no modes declared"}
	}

	var errs []error
	initial, ok := cfg.Modes[cfg.InitialMode]
	if !ok {
		errs = append(errs, &domain.ConfigError{Mode: cfg.InitialMode, Reason: "initial mode is not declared"})
	}

	for _, mode := range cfg.ModeNames() {
		errs = append(errs, validateMode(cfg, mode, cfg.Modes[mode])...)
	}

	if ok {
		if err := checkContract(initial, cfg.Initial()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func validateMode(cfg domain.Config, mode domain.Mode, def domain.ModeDefinition) []error {
	var errs []error
	if mode == "" {
		errs = append(errs, &domain.ConfigError{Reason: "mode name is empty"})
	}

	for _, name := range def.ActionNames() {
		if name == "" {
			errs = append(errs, &domain.ConfigError{Mode: mode, Reason: "action name is empty"})
		}
		if def.Actions[name] == nil {
			errs = append(errs, &domain.ConfigError{Mode: mode, Name: name, Reason: "action handler is nil"})
		}
		if _, dup := def.Transitions[name]; dup {
			errs = append(errs, &domain.ConfigError{Mode: mode, Name: name, Reason: "declared as both action and transition"})
		}
	}

	for _, name := range def.TransitionNames() {
		if name == "" {
			errs = append(errs, &domain.ConfigError{Mode: mode, Reason: "transition name is empty"})
		}
		if def.Transitions[name] == nil {
			errs = append(errs, &domain.ConfigError{Mode: mode, Name: name, Reason: "transition handler is nil"})
		}
	}

	for name, targets := range def.Targets {
		if _, ok := def.Transitions[name]; !ok {
			errs = append(errs, &domain.ConfigError{Mode: mode, Name: name, Reason: "targets declared for an unknown transition"})
		}
		for _, target := range targets {
			if _, ok := cfg.Modes[target]; !ok {
				errs = append(errs, &domain.ConfigError{
					Mode:   mode,
					Name:   name,
					Reason: fmt.Sprintf("target mode %q is not declared", target),
				})
			}
		}
	}

	return errs
}

package runtime

import (
	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/aretw0/cardmenu/pkg/equal"
)

// Machine is the pure reducer of a validated Config.
// It holds no state of its own; every call to Dispatch depends only on its
// arguments, so a Machine can be shared by any number of binders.
type Machine struct {
	cfg    domain.Config
	strict bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithStrictData makes Dispatch verify that handlers did not mutate the data
// they received. It costs a deep copy per dispatch.
func WithStrictData() Option {
	return func(m *Machine) {
		m.strict = true
	}
}

// New validates cfg and returns a Machine for it.
// The mode tables are copied, so later changes to cfg do not affect the Machine.
func New(cfg domain.Config, opts ...Option) (*Machine, error) {
	m := &Machine{cfg: cloneConfig(cfg)}
	for _, opt := range opts {
		opt(m)
	}

	if err := Validate(m.cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// Config returns the configuration of the machine. It must not be modified.
func (m *Machine) Config() domain.Config {
	return m.cfg
}

// Initial returns the state a new instance starts in.
func (m *Machine) Initial() domain.MachineState {
	return m.cfg.Initial()
}

// Modes returns every declared mode in sorted order.
func (m *Machine) Modes() []domain.Mode {
	return m.cfg.ModeNames()
}

// Lookup reports which table of mode handles actionType.
// Actions take precedence, matching Dispatch.
func (m *Machine) Lookup(mode domain.Mode, actionType string) domain.HandlerKind {
	def, ok := m.cfg.Modes[mode]
	if !ok {
		return domain.KindNone
	}
	if _, ok := def.Actions[actionType]; ok {
		return domain.KindAction
	}
	if _, ok := def.Transitions[actionType]; ok {
		return domain.KindTransition
	}
	return domain.KindNone
}

// Names returns the sorted action and transition names declared by mode.
func (m *Machine) Names(mode domain.Mode) (actions, transitions []string) {
	def, ok := m.cfg.Modes[mode]
	if !ok {
		return nil, nil
	}
	return def.ActionNames(), def.TransitionNames()
}

// Dispatch computes the next state of state under action.
func (m *Machine) Dispatch(state domain.MachineState, action domain.Action) (domain.MachineState, error) {
	return dispatch(m.cfg, state, action, m.strict)
}

// Dispatch is the reducer over an unvalidated Config.
// It is total over the declared (mode, action type) pairs and fails with
// *domain.UnhandledActionError everywhere else.
func Dispatch(cfg domain.Config, state domain.MachineState, action domain.Action) (domain.MachineState, error) {
	return dispatch(cfg, state, action, false)
}

func dispatch(cfg domain.Config, state domain.MachineState, action domain.Action, strict bool) (domain.MachineState, error) {
	def, ok := cfg.Modes[state.Mode]
	if !ok {
		return domain.MachineState{}, &domain.UnhandledActionError{Mode: state.Mode, ActionType: action.Type}
	}

	// 1. Actions: replace data, keep mode.
	if fn, ok := def.Actions[action.Type]; ok {
		var data domain.Data
		err := guard(strict, state, action, func() error {
			var err error
			data, err = fn(state.Data, action.Payload)
			return err
		})
		if err != nil {
			return domain.MachineState{}, err
		}

		next := state.WithData(data)
		if err := checkContract(def, next); err != nil {
			return domain.MachineState{}, err
		}
		return next, nil
	}

	// 2. Transitions: the result is taken verbatim.
	if fn, ok := def.Transitions[action.Type]; ok {
		var next domain.MachineState
		err := guard(strict, state, action, func() error {
			var err error
			next, err = fn(state, action.Payload)
			return err
		})
		if err != nil {
			return domain.MachineState{}, err
		}

		target, ok := cfg.Modes[next.Mode]
		if !ok {
			return domain.MachineState{}, &domain.UnknownModeError{
				From:       state.Mode,
				Transition: action.Type,
				Mode:       next.Mode,
			}
		}
		if err := checkContract(target, next); err != nil {
			return domain.MachineState{}, err
		}
		return next, nil
	}

	// 3. Outside the declared domain.
	return domain.MachineState{}, &domain.UnhandledActionError{Mode: state.Mode, ActionType: action.Type}
}

// guard runs a handler and, in strict mode, fails if it mutated state.Data.
func guard(strict bool, state domain.MachineState, action domain.Action, run func() error) error {
	if !strict {
		return run()
	}

	before := equal.Clone(state.Data)
	if err := run(); err != nil {
		return err
	}

	same, err := equal.Compare(before, state.Data)
	if err != nil {
		return err
	}
	if !same {
		return &domain.MutationError{Mode: state.Mode, ActionType: action.Type}
	}
	return nil
}

func cloneConfig(cfg domain.Config) domain.Config {
	out := domain.Config{
		InitialMode: cfg.InitialMode,
		Modes:       make(map[domain.Mode]domain.ModeDefinition, len(cfg.Modes)),
	}
	for mode, def := range cfg.Modes {
		cp := domain.ModeDefinition{
			InitialData: def.InitialData,
			Schema:      def.Schema,
			Actions:     make(map[string]domain.ActionFunc, len(def.Actions)),
			Transitions: make(map[string]domain.TransitionFunc, len(def.Transitions)),
		}
		for name, fn := range def.Actions {
			cp.Actions[name] = fn
		}
		for name, fn := range def.Transitions {
			cp.Transitions[name] = fn
		}
		if def.Targets != nil {
			cp.Targets = make(map[string][]domain.Mode, len(def.Targets))
			for name, targets := range def.Targets {
				cp.Targets[name] = append([]domain.Mode(nil), targets...)
			}
		}
		out.Modes[mode] = cp
	}
	return out
}

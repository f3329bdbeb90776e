package binder

import (
	"log/slog"
	"time"

	"github.com/aretw0/cardmenu/internal/logging"
	"github.com/aretw0/cardmenu/pkg/runtime"
	"github.com/aretw0/cardmenu/pkg/domain"
)

// Binder holds the live state of one machine instance.
type Binder struct {
	machine   *runtime.Machine
	state     domain.MachineState
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	cache     handlerCache
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(View)
}

type settings struct {
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	runtimeOpts []runtime.Option
}

// Option configures a Binder.
type Option func(*settings)

// WithLogger sets the structured logger used for dispatch tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithHooks registers observability hooks. Multiple calls are combined.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = domain.CombineHooks(s.hooks, hooks)
	}
}

// WithStrictData makes every dispatch verify that handlers returned new data
// instead of mutating the previous value.
func WithStrictData() Option {
	return func(s *settings) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithStrictData())
	}
}

// New validates cfg and creates a Binder in its initial state.
func New(cfg domain.Config, opts ...Option) (*Binder, error) {
	s := resolve(opts)
	m, err := runtime.New(cfg, s.runtimeOpts...)
	if err != nil {
		return nil, err
	}
	return newBinder(m, s), nil
}

// NewFromMachine creates a Binder on an already validated machine.
// Runtime options passed here are ignored; they belong to the machine.
func NewFromMachine(m *runtime.Machine, opts ...Option) *Binder {
	return newBinder(m, resolve(opts))
}

func resolve(opts []Option) *settings {
	s := &settings{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newBinder(m *runtime.Machine, s *settings) *Binder {
	return &Binder{
		machine: m,
		state:   m.Initial(),
		logger:  s.logger,
		hooks:   s.hooks,
	}
}

// State returns the current machine state.
func (b *Binder) State() domain.MachineState {
	return b.state
}

// Machine returns the reducer the binder dispatches through.
func (b *Binder) Machine() *runtime.Machine {
	return b.machine
}

// Dispatch applies action to the current state, stores the result and
// notifies subscribers. On error the state is left untouched and the error
// is returned exactly as the runtime produced it.
func (b *Binder) Dispatch(action domain.Action) error {
	prev := b.state
	base := domain.EventBase{
		Timestamp: time.Now(),
		Mode:      prev.Mode,
		Action:    action.Type,
	}

	next, err := b.machine.Dispatch(prev, action)
	if err != nil {
		b.logger.Debug("dispatch failed", "mode", prev.Mode, "action", action.Type, "error", err)
		if b.hooks.OnError != nil {
			b.hooks.OnError(&domain.ErrorEvent{EventBase: base, Err: err})
		}
		return err
	}

	b.state = next
	kind := b.machine.Lookup(prev.Mode, action.Type)
	b.logger.Debug("dispatch", "mode", prev.Mode, "action", action.Type, "kind", kind.String(), "next", next.Mode)

	if b.hooks.OnDispatch != nil {
		b.hooks.OnDispatch(&domain.DispatchEvent{EventBase: base, Kind: kind, Next: next.Mode})
	}
	if next.Mode != prev.Mode && b.hooks.OnModeChange != nil {
		b.hooks.OnModeChange(&domain.ModeChangeEvent{EventBase: base, To: next.Mode})
	}

	b.notify()
	return nil
}

// Subscribe registers fn to be called with a fresh snapshot after every
// successful dispatch. The returned function removes the subscription.
func (b *Binder) Subscribe(fn func(View)) (cancel func()) {
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listener{id: id, fn: fn})

	return func() {
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

func (b *Binder) notify() {
	if len(b.listeners) == 0 {
		return
	}
	view := b.Snapshot()
	// Listeners may subscribe or cancel while being notified.
	for _, l := range append([]listener(nil), b.listeners...) {
		l.fn(view)
	}
}

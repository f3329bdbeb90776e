package cardmenu

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/cardmenu/internal/logging"
	"github.com/aretw0/cardmenu/internal/menu"
	"github.com/aretw0/cardmenu/pkg/runtime"
	"github.com/aretw0/cardmenu/pkg/binder"
	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/aretw0/cardmenu/pkg/session"
)

// App is the high-level entry point for the card menu.
// It wraps the runtime and hands out binders and session managers that
// share one validated machine.
type App struct {
	machine *runtime.Machine
	copy    menu.Copy
	config  *domain.Config
	hooks   domain.LifecycleHooks
	strict  bool
	logger  *slog.Logger
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithCopy replaces the embedded menu copy.
func WithCopy(c menu.Copy) Option {
	return func(a *App) {
		a.copy = c
	}
}

// WithConfig runs cfg instead of the card menu. Views that depend on the
// menu copy are not available for such configs.
func WithConfig(cfg domain.Config) Option {
	return func(a *App) {
		a.config = &cfg
	}
}

// WithLifecycleHooks registers observability hooks on every binder.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *App) {
		a.hooks = domain.CombineHooks(a.hooks, hooks)
	}
}

// WithStrictData makes every dispatch check that handlers left their input
// untouched.
func WithStrictData() Option {
	return func(a *App) {
		a.strict = true
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// New builds and validates the machine.
func New(opts ...Option) (*App, error) {
	a := &App{
		copy:   menu.DefaultCopy(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	cfg := a.config
	if cfg == nil {
		built, err := menu.New(a.copy)
		if err != nil {
			return nil, fmt.Errorf("failed to build menu: %w", err)
		}
		cfg = &built
	}

	var runtimeOpts []runtime.Option
	if a.strict {
		runtimeOpts = append(runtimeOpts, runtime.WithStrictData())
	}
	m, err := runtime.New(*cfg, runtimeOpts...)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	a.machine = m
	return a, nil
}

// Machine returns the shared reducer.
func (a *App) Machine() *runtime.Machine {
	return a.machine
}

// Config returns the validated config.
func (a *App) Config() domain.Config {
	return a.machine.Config()
}

// Copy returns the menu copy in use.
func (a *App) Copy() menu.Copy {
	return a.copy
}

// Dispatch is the pure reducer of the app.
func (a *App) Dispatch(state domain.MachineState, action domain.Action) (domain.MachineState, error) {
	return a.machine.Dispatch(state, action)
}

// NewBinder starts a new instance in the initial state.
func (a *App) NewBinder() *binder.Binder {
	return binder.NewFromMachine(a.machine, a.binderOptions()...)
}

// NewSessions creates a session manager whose binders share the app options.
func (a *App) NewSessions(opts ...session.Option) *session.Manager {
	all := append([]session.Option{
		session.WithLogger(a.logger),
		session.WithBinderOptions(a.binderOptions()...),
	}, opts...)
	return session.NewManager(a.machine, all...)
}

func (a *App) binderOptions() []binder.Option {
	return []binder.Option{
		binder.WithLogger(a.logger),
		binder.WithHooks(a.hooks),
	}
}

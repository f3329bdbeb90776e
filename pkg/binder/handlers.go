package binder

import (
	"fmt"
	"sort"

	"github.com/aretw0/cardmenu/pkg/domain"
)

// Handler dispatches one action or transition. It accepts zero or one payload.
type Handler func(payload ...any) error

// Handlers maps action or transition names to their bound handlers.
type Handlers map[string]Handler

// Names returns the handler names in sorted order.
func (h Handlers) Names() []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// View is the read-only snapshot handed to the view layer.
type View struct {
	Mode        domain.Mode
	Data        domain.Data
	Actions     Handlers
	Transitions Handlers
}

// handlerCache memoizes the bound surface of a single mode.
type handlerCache struct {
	valid       bool
	mode        domain.Mode
	actions     Handlers
	transitions Handlers
	builds      int
}

// Snapshot returns the current state together with its bound handlers.
func (b *Binder) Snapshot() View {
	actions, transitions := b.Handlers()
	return View{
		Mode:        b.state.Mode,
		Data:        b.state.Data,
		Actions:     actions,
		Transitions: transitions,
	}
}

// Handlers returns the bound surface of the current mode. The maps are
// rebuilt only when the mode differs from the one they were built for, and
// must not be modified by callers.
func (b *Binder) Handlers() (actions, transitions Handlers) {
	mode := b.state.Mode
	if b.cache.valid && b.cache.mode == mode {
		return b.cache.actions, b.cache.transitions
	}

	actionNames, transitionNames := b.machine.Names(mode)
	b.cache = handlerCache{
		valid:       true,
		mode:        mode,
		actions:     make(Handlers, len(actionNames)),
		transitions: make(Handlers, len(transitionNames)),
		builds:      b.cache.builds + 1,
	}
	for _, name := range actionNames {
		b.cache.actions[name] = b.bind(name)
	}
	for _, name := range transitionNames {
		b.cache.transitions[name] = b.bind(name)
	}
	return b.cache.actions, b.cache.transitions
}

func (b *Binder) bind(name string) Handler {
	return func(payload ...any) error {
		var p any
		switch len(payload) {
		case 0:
		case 1:
			p = payload[0]
		default:
			return &domain.InvalidInputError{
				Value:  payload,
				Reason: fmt.Sprintf("handler %q accepts at most one payload, got %d", name, len(payload)),
			}
		}
		return b.Dispatch(domain.NewAction(name, p))
	}
}

package menu

import (
	"errors"
	"reflect"

	"github.com/aretw0/cardmenu/pkg/binder"
	"github.com/aretw0/cardmenu/pkg/cards"
	"github.com/aretw0/cardmenu/pkg/check"
	"github.com/aretw0/cardmenu/pkg/domain"
)

// SelfChecks returns harness checks that exercise the default menu through
// a binder. Every check starts from a fresh binder.
func SelfChecks(h *check.Harness) []check.Check {
	cfg := Default()

	run := func(steps ...string) (domain.MachineState, error) {
		b, err := binder.New(cfg, binder.WithStrictData())
		if err != nil {
			return domain.MachineState{}, err
		}
		for _, step := range steps {
			if err := b.Dispatch(domain.NewAction(step, nil)); err != nil {
				return b.State(), err
			}
		}
		return b.State(), nil
	}
	state := func(steps ...string) func() any {
		return func() any {
			s, err := run(steps...)
			if err != nil {
				return err
			}
			return s
		}
	}

	return []check.Check{
		h.AssertEquals("starts on the root menu",
			state(),
			domain.NewState(RootMenu, RootData{Cursor: 0})),
		h.AssertEquals("down wraps around the menu",
			state("down", "down"),
			domain.NewState(RootMenu, RootData{Cursor: 0})),
		h.AssertEquals("choose enters the selected mode",
			func() any {
				s, err := run("down", "choose")
				if err != nil {
					return err
				}
				return s.Mode
			},
			Rules),
		h.AssertEquals("draw deals the deck in order",
			state("play", "draw", "draw"),
			domain.NewState(Playing, PlayData{
				Hand: []cards.Card{{Suit: cards.Spades, Value: cards.Ace}, {Suit: cards.Spades, Value: cards.King}},
				Next: 2,
			})),
		h.AssertEquals("discard drops the last card",
			state("play", "draw", "draw", "discard"),
			domain.NewState(Playing, PlayData{
				Hand: []cards.Card{{Suit: cards.Spades, Value: cards.Ace}},
				Next: 2,
			})),
		h.AssertEquals("quit forgets the hand",
			state("play", "draw", "quit", "play"),
			domain.NewState(Playing, PlayData{Hand: []cards.Card{}})),
		h.AssertEquals("rules pages stop at the first page",
			state("rules", "prev", "next", "prev", "prev"),
			domain.NewState(Rules, RulesData{Page: 0})),
		h.AssertIs("undeclared actions are rejected",
			func() any {
				_, err := run("draw")
				return errors.Is(err, domain.ErrUnhandledAction)
			},
			true),
		h.AssertIs("handlers are reused within a mode",
			func() any {
				b, err := binder.New(cfg)
				if err != nil {
					return err
				}
				first, _ := b.Handlers()
				if err := first["down"](); err != nil {
					return err
				}
				second, _ := b.Handlers()
				return reflect.ValueOf(first).Pointer() == reflect.ValueOf(second).Pointer()
			},
			true),
	}
}

// Package menu defines the card-game menu machine: a root menu, a playing
// table and a few pages of rules.
package menu

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/cardmenu/pkg/cards"
	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/aretw0/cardmenu/pkg/dsl"
	"github.com/aretw0/cardmenu/pkg/schema"
)

const (
	RootMenu domain.Mode = "ROOT_MENU"
	Playing  domain.Mode = "PLAYING"
	Rules    domain.Mode = "RULES"
)

// ErrDeckEmpty is returned by draw once every card has been drawn.
var ErrDeckEmpty = errors.New("deck is empty")

// RootData is the data of ROOT_MENU.
type RootData struct {
	Cursor int `json:"cursor" mapstructure:"cursor"`
}

// PlayData is the data of PLAYING. Next indexes the next card of the deck.
type PlayData struct {
	Hand []cards.Card `json:"hand" mapstructure:"hand"`
	Next int          `json:"next" mapstructure:"next"`
}

// RulesData is the data of RULES.
type RulesData struct {
	Page int `json:"page" mapstructure:"page"`
}

// New builds the menu config for the given copy.
func New(c Copy) (domain.Config, error) {
	if err := c.validate(); err != nil {
		return domain.Config{}, err
	}
	m := &machine{copy: c, deck: cards.NewDeck()}

	return dsl.New(RootMenu).
		Mode(RootMenu).
		Data(RootData{}).
		Schema(schema.Schema{"cursor": m.cursorType()}).
		Action("up", m.up).
		Action("down", m.down).
		Transition("choose", m.choose, m.choiceTargets()...).
		Go("play", Playing).
		Go("rules", Rules).
		Mode(Playing).
		Data(PlayData{Hand: []cards.Card{}}).
		Schema(schema.Schema{
			"hand": schema.Slice(schema.Object()),
			"next": schema.Int(),
		}).
		Action("draw", m.draw).
		Action("discard", m.discard).
		Go("quit", RootMenu).
		Mode(Rules).
		Data(RulesData{}).
		Schema(schema.Schema{"page": schema.Int()}).
		Action("next", m.nextPage).
		Action("prev", m.prevPage).
		Go("back", RootMenu).
		Build()
}

// Default builds the menu config with DefaultCopy.
func Default() domain.Config {
	cfg, err := New(DefaultCopy())
	if err != nil {
		panic(fmt.Sprintf("menu: default config is invalid: %v", err))
	}
	return cfg
}

type machine struct {
	copy Copy
	deck []cards.Card
}

func (m *machine) cursorType() schema.Type {
	return schema.Custom("cursor", func(v any) error {
		if err := schema.Int().Validate(v); err != nil {
			return err
		}
		cursor, ok := v.(int)
		if !ok || cursor < 0 || cursor >= len(m.copy.Items) {
			return fmt.Errorf("cursor %v is outside the %d menu items", v, len(m.copy.Items))
		}
		return nil
	})
}

func (m *machine) choiceTargets() []domain.Mode {
	var targets []domain.Mode
	for _, item := range m.copy.Items {
		if !slices.Contains(targets, item.Mode) {
			targets = append(targets, item.Mode)
		}
	}
	return targets
}

func (m *machine) up(data domain.Data, _ any) (domain.Data, error) {
	root, err := as[RootData](data)
	if err != nil {
		return nil, err
	}
	n := len(m.copy.Items)
	return RootData{Cursor: (root.Cursor - 1 + n) % n}, nil
}

func (m *machine) down(data domain.Data, _ any) (domain.Data, error) {
	root, err := as[RootData](data)
	if err != nil {
		return nil, err
	}
	return RootData{Cursor: (root.Cursor + 1) % len(m.copy.Items)}, nil
}

// choose enters the mode of the item under the cursor.
func (m *machine) choose(state domain.MachineState, _ any) (domain.MachineState, error) {
	root, err := as[RootData](state.Data)
	if err != nil {
		return domain.MachineState{}, err
	}
	if root.Cursor < 0 || root.Cursor >= len(m.copy.Items) {
		return domain.MachineState{}, &domain.InvalidInputError{Value: root.Cursor, Reason: "cursor is outside the menu"}
	}

	switch mode := m.copy.Items[root.Cursor].Mode; mode {
	case Playing:
		return domain.NewState(Playing, PlayData{Hand: []cards.Card{}}), nil
	default:
		return domain.NewState(mode, RulesData{}), nil
	}
}

func (m *machine) draw(data domain.Data, _ any) (domain.Data, error) {
	play, err := as[PlayData](data)
	if err != nil {
		return nil, err
	}
	if play.Next >= len(m.deck) {
		return nil, ErrDeckEmpty
	}

	hand := make([]cards.Card, 0, len(play.Hand)+1)
	hand = append(hand, play.Hand...)
	hand = append(hand, m.deck[play.Next])
	return PlayData{Hand: hand, Next: play.Next + 1}, nil
}

// discard removes the card at the index given as payload, or the most
// recently drawn card when there is no payload.
func (m *machine) discard(data domain.Data, payload any) (domain.Data, error) {
	play, err := as[PlayData](data)
	if err != nil {
		return nil, err
	}
	if len(play.Hand) == 0 {
		return nil, &domain.InvalidInputError{Value: payload, Reason: "hand is empty"}
	}

	index := len(play.Hand) - 1
	if payload != nil {
		if err := domain.DecodePayload(payload, &index); err != nil {
			return nil, err
		}
	}
	if index < 0 || index >= len(play.Hand) {
		return nil, &domain.InvalidInputError{Value: payload, Reason: fmt.Sprintf("no card at position %d", index)}
	}

	hand := make([]cards.Card, 0, len(play.Hand)-1)
	hand = append(hand, play.Hand[:index]...)
	hand = append(hand, play.Hand[index+1:]...)
	return PlayData{Hand: hand, Next: play.Next}, nil
}

func (m *machine) nextPage(data domain.Data, _ any) (domain.Data, error) {
	rules, err := as[RulesData](data)
	if err != nil {
		return nil, err
	}
	return RulesData{Page: min(rules.Page+1, len(m.copy.Rules)-1)}, nil
}

func (m *machine) prevPage(data domain.Data, _ any) (domain.Data, error) {
	rules, err := as[RulesData](data)
	if err != nil {
		return nil, err
	}
	return RulesData{Page: max(rules.Page-1, 0)}, nil
}

// as views mode data as T. Data of another shape, such as a map restored
// from JSON, is decoded by field name.
func as[T any](data domain.Data) (T, error) {
	if v, ok := data.(T); ok {
		return v, nil
	}
	var out T
	if err := domain.DecodePayload(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

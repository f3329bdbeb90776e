package menu

import (
	"github.com/aretw0/cardmenu/pkg/cards"
	"github.com/aretw0/cardmenu/pkg/domain"
)

// Screen is what a presentation layer needs to draw one state.
type Screen struct {
	Mode      domain.Mode
	Title     string
	Items     []ScreenItem
	Hand      []cards.Card
	Remaining int
	Page      int
	Pages     int
	Rules     string
}

// ScreenItem is a root menu entry.
type ScreenItem struct {
	Label    string
	Selected bool
}

// Screen describes state using the copy.
func (c Copy) Screen(state domain.MachineState) (Screen, error) {
	s := Screen{Mode: state.Mode, Title: c.Title}

	switch state.Mode {
	case RootMenu:
		root, err := as[RootData](state.Data)
		if err != nil {
			return Screen{}, err
		}
		for i, item := range c.Items {
			s.Items = append(s.Items, ScreenItem{Label: item.Label, Selected: i == root.Cursor})
		}
	case Playing:
		play, err := as[PlayData](state.Data)
		if err != nil {
			return Screen{}, err
		}
		s.Hand = play.Hand
		s.Remaining = len(cards.NewDeck()) - play.Next
	case Rules:
		rules, err := as[RulesData](state.Data)
		if err != nil {
			return Screen{}, err
		}
		s.Page = rules.Page
		s.Pages = len(c.Rules)
		if rules.Page >= 0 && rules.Page < len(c.Rules) {
			s.Rules = c.Rules[rules.Page]
		}
	default:
		return Screen{}, &domain.InvalidInputError{Value: state.Mode, Reason: "not a menu mode"}
	}
	return s, nil
}

// Package cards maps playing cards to the image assets and labels the menu
// screens display.
package cards

import (
	"fmt"
	"strings"

	"github.com/aretw0/cardmenu/pkg/domain"
)

// DefaultWidth is the rendered width of a card image, in pixels.
const DefaultWidth = 80

// Suit is the upper-case name of a suit.
type Suit string

const (
	Spades   Suit = "SPADES"
	Clubs    Suit = "CLUBS"
	Hearts   Suit = "HEARTS"
	Diamonds Suit = "DIAMONDS"
)

// Suits lists every suit in deck order.
var Suits = []Suit{Spades, Clubs, Hearts, Diamonds}

var suitCodes = map[Suit]string{
	Spades:   "s",
	Clubs:    "c",
	Hearts:   "h",
	Diamonds: "d",
}

var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Clubs:    "♣",
	Hearts:   "♥",
	Diamonds: "♦",
}

// Value is the upper-case name of a card value.
type Value string

const (
	Ace   Value = "ACE"
	King  Value = "KING"
	Queen Value = "QUEEN"
	Jack  Value = "JACK"
	Ten   Value = "TEN"
	Nine  Value = "NINE"
	Eight Value = "EIGHT"
	Seven Value = "SEVEN"
	Six   Value = "SIX"
	Five  Value = "FIVE"
	Four  Value = "FOUR"
	Three Value = "THREE"
	Two   Value = "TWO"
)

// Values lists every value in deck order.
var Values = []Value{Ace, King, Queen, Jack, Ten, Nine, Eight, Seven, Six, Five, Four, Three, Two}

// valueCodes are single characters; ten is "0".
var valueCodes = map[Value]string{
	Ace: "a", King: "k", Queen: "q", Jack: "j", Ten: "0",
	Nine: "9", Eight: "8", Seven: "7", Six: "6", Five: "5",
	Four: "4", Three: "3", Two: "2",
}

var valueLabels = map[Value]string{
	Ace: "A", King: "K", Queen: "Q", Jack: "J", Ten: "10",
	Nine: "9", Eight: "8", Seven: "7", Six: "6", Five: "5",
	Four: "4", Three: "3", Two: "2",
}

// Card is one playing card.
type Card struct {
	Suit  Suit  `json:"suit" mapstructure:"suit" yaml:"suit"`
	Value Value `json:"value" mapstructure:"value" yaml:"value"`
}

// Image describes how a card is drawn in an HTML view.
type Image struct {
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Width int    `json:"width"`
}

// Asset returns the asset key of the card, suit code first ("sa", "h0").
func (c Card) Asset() string {
	return suitCodes[c.Suit] + valueCodes[c.Value]
}

// Alt returns the accessible label, e.g. "The ace of spades".
func (c Card) Alt() string {
	return fmt.Sprintf("The %s of %s", strings.ToLower(string(c.Value)), strings.ToLower(string(c.Suit)))
}

// Glyph returns a compact text form, e.g. "A♠" or "10♥".
func (c Card) Glyph() string {
	return valueLabels[c.Value] + suitSymbols[c.Suit]
}

// Red reports whether the card is a heart or a diamond.
func (c Card) Red() bool {
	return c.Suit == Hearts || c.Suit == Diamonds
}

// Image returns the image of the card. A width <= 0 uses DefaultWidth.
func (c Card) Image(width int) Image {
	if width <= 0 {
		width = DefaultWidth
	}
	return Image{
		Src:   "svgs/cards/" + c.Asset() + ".svg",
		Alt:   c.Alt(),
		Width: width,
	}
}

// String implements fmt.Stringer.
func (c Card) String() string {
	return c.Glyph()
}

// Valid reports whether both suit and value are known.
func (c Card) Valid() bool {
	_, okSuit := suitCodes[c.Suit]
	_, okValue := valueCodes[c.Value]
	return okSuit && okValue
}

// ParseSuit accepts a suit name in any case.
func ParseSuit(s string) (Suit, error) {
	suit := Suit(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := suitCodes[suit]; !ok {
		return "", &domain.InvalidInputError{Value: s, Reason: "unknown suit"}
	}
	return suit, nil
}

// ParseValue accepts a value name in any case.
func ParseValue(s string) (Value, error) {
	value := Value(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := valueCodes[value]; !ok {
		return "", &domain.InvalidInputError{Value: s, Reason: "unknown card value"}
	}
	return value, nil
}

// ParseAsset is the inverse of Card.Asset.
func ParseAsset(code string) (Card, error) {
	if len(code) != 2 {
		return Card{}, &domain.InvalidInputError{Value: code, Reason: "asset keys have two characters"}
	}
	var card Card
	for suit, c := range suitCodes {
		if c == code[:1] {
			card.Suit = suit
		}
	}
	for value, c := range valueCodes {
		if c == code[1:] {
			card.Value = value
		}
	}
	if !card.Valid() {
		return Card{}, &domain.InvalidInputError{Value: code, Reason: "unknown asset key"}
	}
	return card, nil
}

// NewDeck returns the 52 cards, suit by suit, in Values order.
func NewDeck() []Card {
	deck := make([]Card, 0, len(Suits)*len(Values))
	for _, s := range Suits {
		for _, v := range Values {
			deck = append(deck, Card{Suit: s, Value: v})
		}
	}
	return deck
}

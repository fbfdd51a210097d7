package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
)

// Suits lists every suit in display order
var Suits = []Suit{Hearts, Spades, Clubs, Diamonds}

var suitOrder = map[Suit]int{
	Hearts:   0,
	Spades:   1,
	Clubs:    2,
	Diamonds: 3,
}

// face cards
const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13
)

// Card is an individual playing card
// Cards are values; two cards with the same suit and value are the same card.
type Card struct {
	Suit  Suit `json:"suit"`
	Value int  `json:"value"`
}

func (c Card) String() string {
	var value string
	switch c.Value {
	case Ace:
		value = "A"
	case Jack:
		value = "J"
	case Queen:
		value = "Q"
	case King:
		value = "K"
	default:
		value = strconv.Itoa(c.Value)
	}

	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		suit = "-"
	}

	return fmt.Sprintf("%s%s", value, suit)
}

// Less orders cards for display: by value with the ace low, then by suit
// This is not the order used to decide a round, see Strength()
func (c Card) Less(other Card) bool {
	if c.Value != other.Value {
		return c.Value < other.Value
	}

	return suitOrder[c.Suit] < suitOrder[other.Suit]
}

// IsValid returns true if the card belongs to the truco deck
func (c Card) IsValid() bool {
	if _, ok := suitOrder[c.Suit]; !ok {
		return false
	}

	for _, v := range Values {
		if v == c.Value {
			return true
		}
	}

	return false
}

var cardRx = regexp.MustCompile(`(?i)^([0-9]|1[0-3]|[ajqk])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <value><suit> where value is 1-13 or one of A, J, Q, K and suit in [cdhs]
func CardFromString(s string) Card {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	var value int
	switch strings.ToLower(match[1]) {
	case "a":
		value = Ace
	case "j":
		value = Jack
	case "q":
		value = Queen
	case "k":
		value = King
	default:
		v, err := strconv.Atoi(match[1])
		if err != nil {
			panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
		}
		value = v
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	default:
		// should never be hit due to the regexp
		panic("unknown suit")
	}

	return Card{
		Suit:  suit,
		Value: value,
	}
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(strings.TrimSpace(card))
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (1c)
func CardToString(card Card) string {
	var suit string
	switch card.Suit {
	case Clubs:
		suit = "c"
	case Hearts:
		suit = "h"
	case Diamonds:
		suit = "d"
	case Spades:
		suit = "s"
	}

	return fmt.Sprintf("%d%s", card.Value, suit)
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,4s,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}

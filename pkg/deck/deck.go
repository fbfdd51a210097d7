package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Size is the number of cards in a truco deck
const Size = 40

// Values are the card values used by truco. Eights, nines and tens are removed from the deck
var Values = []int{1, 2, 3, 4, 5, 6, 7, 11, 12, 13}

// Deck represents a playing deck
type Deck struct {
	Cards []Card `json:"cards"`
}

// New returns a new deck of 40 cards.
// Important! this deck is unshuffled. The caller shuffles Cards with its own strategy
func New() *Deck {
	d := &Deck{}
	d.buildDeck()
	return d
}

func (d *Deck) buildDeck() {
	cards := make([]Card, 0, Size)
	for _, suit := range []Suit{Diamonds, Spades, Hearts, Clubs} {
		for _, value := range Values {
			cards = append(cards, Card{
				Suit:  suit,
				Value: value,
			})
		}
	}

	d.Cards = cards
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned along with a zero card.
func (d *Deck) Draw() (Card, error) {
	if len(d.Cards) <= 0 {
		return Card{}, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// DrawN draws n cards off the top of the deck
func (d *Deck) DrawN(n int) (Hand, error) {
	if !d.CanDraw(n) {
		return nil, ErrEndOfDeck
	}

	hand := make(Hand, 0, n)
	for i := 0; i < n; i++ {
		card, _ := d.Draw()
		hand = append(hand, card)
	}

	return hand, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}

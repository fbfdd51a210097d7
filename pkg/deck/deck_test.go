package deck

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := New()

	assert.Equal(t, Size, deck.CardsLeft())
	assert.Equal(t, Card{Suit: Diamonds, Value: 1}, deck.Cards[0])
	assert.Equal(t, Card{Suit: Clubs, Value: 13}, deck.Cards[39])

	seen := make(map[Card]bool)
	for _, card := range deck.Cards {
		assert.True(t, card.IsValid(), card.String())
		assert.False(t, seen[card], "duplicate %s", card)
		seen[card] = true
	}

	assert.Equal(t, New().HashCode(), deck.HashCode())

	deck.Cards[0], deck.Cards[1] = deck.Cards[1], deck.Cards[0]
	assert.NotEqual(t, New().HashCode(), deck.HashCode())
}

func TestDeck_Draw(t *testing.T) {
	deck := New()

	if !deck.CanDraw(40) {
		t.Errorf("expected CanDraw(40) to be true")
	}

	if deck.CanDraw(41) {
		t.Errorf("expected CanDraw(41) to be false")
	}

	for i := 0; i < 40; i++ {
		card, err := deck.Draw()
		assert.NoError(t, err)
		assert.True(t, card.IsValid())
	}

	assert.False(t, deck.CanDraw(1))

	card, err := deck.Draw()
	assert.Equal(t, Card{}, card)
	assert.Equal(t, ErrEndOfDeck, err)
}

func TestDeck_DrawN(t *testing.T) {
	deck := New()

	hand, err := deck.DrawN(3)
	assert.NoError(t, err)
	assert.Equal(t, "1d,2d,3d", hand.String())
	assert.Equal(t, 37, deck.CardsLeft())

	hand, err = deck.DrawN(38)
	assert.Nil(t, hand)
	assert.Equal(t, ErrEndOfDeck, err)
	assert.Equal(t, 37, deck.CardsLeft())
}

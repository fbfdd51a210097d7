package deck

import (
	"github.com/stretchr/testify/assert"
	"sort"
	"testing"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, 1, Ace)
	assert.Equal(t, 11, Jack)
	assert.Equal(t, 12, Queen)
	assert.Equal(t, 13, King)
}

func TestCard_String(t *testing.T) {
	assert.Equal(t, "2♡", Card{Value: 2, Suit: Hearts}.String())
	assert.Equal(t, "J♣", Card{Value: 11, Suit: Clubs}.String())
	assert.Equal(t, "Q♢", Card{Value: 12, Suit: Diamonds}.String())
	assert.Equal(t, "K♠", Card{Value: 13, Suit: Spades}.String())
	assert.Equal(t, "A♠", Card{Value: 1, Suit: Spades}.String())
}

func TestCardFromString(t *testing.T) {
	assert.Equal(t, Card{Suit: Diamonds, Value: 4}, CardFromString("4d"))
	assert.Equal(t, Card{Suit: Spades, Value: Ace}, CardFromString("As"))
	assert.Equal(t, Card{Suit: Spades, Value: Ace}, CardFromString("1s"))
	assert.Equal(t, Card{Suit: Hearts, Value: Queen}, CardFromString("12h"))
	assert.Equal(t, Card{Suit: Clubs, Value: Jack}, CardFromString("JC"))
	assert.Equal(t, Card{Suit: Clubs, Value: King}, CardFromString("kc"))

	assert.PanicsWithValue(t, "could not parse card: 14c", func() {
		CardFromString("14c")
	})
	assert.PanicsWithValue(t, "could not parse card: 4x", func() {
		CardFromString("4x")
	})
}

func TestCardsToString(t *testing.T) {
	cards := CardsFromString("4d, As,12h")
	assert.Equal(t, "4d,1s,12h", CardsToString(cards))
	assert.Equal(t, []Card{}, CardsFromString(""))
}

func TestCard_IsValid(t *testing.T) {
	assert.True(t, CardFromString("1c").IsValid())
	assert.True(t, CardFromString("13d").IsValid())
	assert.False(t, CardFromString("8c").IsValid())
	assert.False(t, CardFromString("10h").IsValid())
	assert.False(t, Card{Suit: "stars", Value: 4}.IsValid())
	assert.False(t, Card{}.IsValid())
}

func TestCard_Less(t *testing.T) {
	hand := Hand(CardsFromString("kd,4c,1s,4h,1h"))
	sort.Sort(hand)
	assert.Equal(t, "1h,1s,4h,4c,13d", hand.String())
}

package deck

// MaxStrength is the strength of the four of clubs, the strongest card in the game
const MaxStrength = 14

type strengthClass struct {
	value int
	suits []Suit // nil means every suit
}

// weakest first; the last four classes are the trumps
var strengthClasses = []strengthClass{
	{4, []Suit{Diamonds, Spades, Hearts}},
	{5, nil},
	{6, nil},
	{7, []Suit{Clubs, Spades}},
	{Queen, nil},
	{Jack, nil},
	{King, nil},
	{Ace, []Suit{Diamonds, Hearts, Clubs}},
	{2, nil},
	{3, nil},
	{7, []Suit{Diamonds}},
	{Ace, []Suit{Spades}},
	{7, []Suit{Hearts}},
	{4, []Suit{Clubs}},
}

var strengths = buildStrengths()

func buildStrengths() map[Card]int {
	s := make(map[Card]int, 40)
	for i, class := range strengthClasses {
		suits := class.suits
		if suits == nil {
			suits = Suits
		}

		for _, suit := range suits {
			s[Card{Suit: suit, Value: class.value}] = i + 1
		}
	}

	return s
}

// Strength returns how strong a card is when a round is resolved, from 1 (weakest) to MaxStrength
// Cards that aren't part of the truco deck have a strength of 0
func Strength(c Card) int {
	return strengths[c]
}

// StrongerThan returns true if the card beats the other card in a round
func (c Card) StrongerThan(other Card) bool {
	return Strength(c) > Strength(other)
}

// IsTrump returns true for the four cards that rank above every value: 7♢, A♠, 7♡ and 4♣
func (c Card) IsTrump() bool {
	return Strength(c) > MaxStrength-4
}

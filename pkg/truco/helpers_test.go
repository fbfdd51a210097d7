package truco

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"truco-server/pkg/deck"
	"truco-server/pkg/model"
	"truco-server/pkg/shuffle"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dealt in seating order: P1 gets diamonds, P2 clubs, P3 hearts, P4 spades
const fixtureCards = "2d,Ad,7d,2c,4c,Jc,Kh,2h,7h,As,Qs,2s"

func newTestMatch(cards string) *Match {
	return NewMatch(42, Options{
		CardShuffler: shuffle.Fixed[deck.Card](deck.CardsFromString(cards)),
		SeatShuffler: shuffle.Fixed[int64]{1, 2, 3, 4},
		Logger:       logrus.StandardLogger(),
	})
}

func testPlayer(id int64) *model.Player {
	return &model.Player{ID: id, Name: fmt.Sprintf("P%d", id)}
}

func joinPlayers(t *testing.T, m *Match) {
	t.Helper()

	for id := int64(1); id <= 4; id++ {
		require.NoError(t, m.AddPlayer(testPlayer(id)))
	}
}

// setupMatch returns a full match where P1 dealt the fixture cards
func setupMatch(t *testing.T, cards string) *Match {
	t.Helper()

	m := newTestMatch(cards)
	joinPlayers(t, m)
	require.NoError(t, m.Deal(1))

	return m
}

// playRound plays the cards in seating order, starting with start
func playRound(t *testing.T, m *Match, start int64, cards string) {
	t.Helper()

	id := start
	for _, card := range deck.CardsFromString(cards) {
		require.NoError(t, m.Play(id, card), "player %d plays %s", id, card)
		id = id%4 + 1
	}
}

func publicEvents(m *Match, since int) []Event {
	events := make([]Event, 0)
	for _, entry := range m.Notifications() {
		if entry.ID >= since {
			events = append(events, entry.Public)
		}
	}

	return events
}

// assertEventsInOrder checks that expected is a subsequence of the public events with an ID >= since
func assertEventsInOrder(t *testing.T, m *Match, since int, expected ...Event) bool {
	t.Helper()

	actual := publicEvents(m, since)
	i := 0
	for _, event := range actual {
		if i < len(expected) && assert.ObjectsAreEqual(expected[i], event) {
			i++
		}
	}

	if i < len(expected) {
		return assert.Fail(t, "missing event", "expected %#v\nin %#v", expected[i], actual)
	}

	return true
}

// roundCards parses "1:2d,2:4c" into the cards each player put down
func roundCards(s string) map[int64]deck.Card {
	c := make(map[int64]deck.Card)
	for _, part := range strings.Split(s, ",") {
		id, card, _ := strings.Cut(part, ":")
		playerID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			panic(err)
		}

		c[playerID] = deck.CardFromString(card)
	}

	return c
}

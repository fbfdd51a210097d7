package truco

import (
	"math/rand"
	"testing"

	"truco-server/pkg/deck"
	"truco-server/pkg/shuffle"

	"github.com/stretchr/testify/assert"
)

func TestMatch_Deal(t *testing.T) {
	m := newTestMatch(fixtureCards)
	joinPlayers(t, m)

	since := len(m.Notifications())
	assert.EqualError(t, m.Deal(2), "only the dealer (1) can deal")
	assert.Len(t, m.Notifications(), since)

	assert.NoError(t, m.Deal(1))
	assert.Equal(t, PhaseRoundInProgress, m.Phase())
	assert.Equal(t, deck.Hand(deck.CardsFromString("2d,Ad,7d")), m.hands[1])
	assert.Equal(t, deck.Hand(deck.CardsFromString("2c,4c,Jc")), m.hands[2])
	assert.Equal(t, deck.Hand(deck.CardsFromString("Kh,2h,7h")), m.hands[3])
	assert.Equal(t, deck.Hand(deck.CardsFromString("As,Qs,2s")), m.hands[4])
	assert.Equal(t, int64(2), m.table.active)

	assertEventsInOrder(t, m, since,
		StartDeal{Dealer: 1},
		SetHandPublic{Player: 1, Size: 3},
		SetHandPublic{Player: 2, Size: 3},
		SetHandPublic{Player: 3, Size: 3},
		SetHandPublic{Player: 4, Size: 3},
		StartRound{Round: 0, StartPlayer: 2},
		SetActivePlayer{Player: 2, Points: 1},
	)

	// the hand is only visible to its owner
	for _, n := range m.ReadNotifications(3, since) {
		switch e := n.Event.(type) {
		case SetHand:
			assert.Equal(t, int64(3), e.Player)
			assert.Equal(t, deck.CardsFromString("Kh,2h,7h"), e.Hand)
		case SetHandPublic:
			assert.NotEqual(t, int64(3), e.Player)
		}
	}

	assert.Equal(t, ErrDealInProgress, m.Deal(1))
}

func TestMatch_Deal_uniqueCards(t *testing.T) {
	for i := 0; i < 200; i++ {
		m := NewMatch(1, Options{
			CardShuffler: shuffle.NewFisherYates[deck.Card](rand.New(rand.NewSource(int64(i)))),
			SeatShuffler: shuffle.NewFisherYates[int64](rand.New(rand.NewSource(int64(i)))),
		})
		joinPlayers(t, m)
		dealer := m.table.dealer
		if !assert.NoError(t, m.Deal(dealer)) {
			return
		}

		seen := make(map[deck.Card]bool)
		for id, hand := range m.hands {
			assert.Len(t, hand, 3, "player %d", id)
			for _, card := range hand {
				assert.True(t, card.IsValid())
				assert.False(t, seen[card], "%s dealt twice", card)
				seen[card] = true
			}
		}

		assert.Len(t, seen, 12)
	}
}

func TestMatch_Play(t *testing.T) {
	m := setupMatch(t, fixtureCards)
	since := len(m.Notifications())

	assert.Equal(t, ErrIsNotPlayersTurn, m.Play(1, deck.CardFromString("2d")))
	assert.Equal(t, ErrCardNotInPlayersHand, m.Play(2, deck.CardFromString("2d")))
	assert.Len(t, m.Notifications(), since, "rejected plays emit nothing")
	assert.Len(t, m.hands[2], 3)

	assert.NoError(t, m.Play(2, deck.CardFromString("4c")))
	assert.Equal(t, deck.Hand(deck.CardsFromString("2c,Jc")), m.hands[2])
	assert.Equal(t, int64(3), m.table.active)
	assertEventsInOrder(t, m, since,
		PlayCard{Player: 2, Card: deck.CardFromString("4c"), RoundCards: roundCards("2:4c")},
		SetHandPublic{Player: 2, Size: 2},
		SetActivePlayer{Player: 3, Points: 1},
	)

	// a replayed action fails on its own
	assert.Equal(t, ErrIsNotPlayersTurn, m.Play(2, deck.CardFromString("4c")))
}

func TestMatch_TwoWinsNoDraw(t *testing.T) {
	m := setupMatch(t, fixtureCards)

	since := len(m.Notifications())
	playRound(t, m, 2, "2c,Kh,As,Ad")
	assertEventsInOrder(t, m, since,
		EndRoundWinner{Team: TeamTwo, Player: 4, RoundCards: roundCards("2:2c,3:Kh,4:As,1:Ad")},
		StartRound{Round: 1, StartPlayer: 4},
		SetActivePlayer{Player: 4, Points: 1},
	)

	since = len(m.Notifications())
	playRound(t, m, 4, "Qs,7d,4c,7h")
	assertEventsInOrder(t, m, since,
		EndRoundWinner{Team: TeamTwo, Player: 2, RoundCards: roundCards("4:Qs,1:7d,2:4c,3:7h")},
		EndDeal{Winners: []int64{2, 4}, Team: TeamTwo, Points: 1, Scores: map[Team]int{TeamOne: 0, TeamTwo: 1}},
		ReadyToDeal{Dealer: 2},
	)

	assert.Equal(t, map[Team]int{TeamOne: 0, TeamTwo: 1}, m.scores)
	assert.Equal(t, PhaseReadyToDeal, m.Phase())
	assert.Equal(t, int64(2), m.table.dealer)
	assert.Equal(t, ErrNoDealInProgress, m.Play(1, deck.CardFromString("2d")))
}

func TestMatch_TwoDeals(t *testing.T) {
	m := newTestMatch("2d,6d,Kd,2c,6c,Kc,2h,6h,Kh,Qs,6s,Ks")
	joinPlayers(t, m)

	assert.NoError(t, m.Deal(1))
	playRound(t, m, 2, "2c,Kh,Qs,6d")
	playRound(t, m, 2, "6c,6h,6s,2d")
	playRound(t, m, 1, "Kd,Kc,2h,Ks")
	assert.Equal(t, map[Team]int{TeamOne: 1, TeamTwo: 0}, m.scores)

	assert.EqualError(t, m.Deal(1), "only the dealer (2) can deal")
	assert.NoError(t, m.Deal(2))
	playRound(t, m, 3, "Kh,Qs,6d,2c")
	playRound(t, m, 2, "6c,6h,6s,2d")
	playRound(t, m, 1, "Kd,Kc,2h,Ks")
	assert.Equal(t, map[Team]int{TeamOne: 2, TeamTwo: 0}, m.scores)
	assert.Equal(t, int64(3), m.table.dealer)
}

func TestMatch_DrawThenWin(t *testing.T) {
	m := setupMatch(t, fixtureCards)

	since := len(m.Notifications())
	playRound(t, m, 2, "2c,2h,Qs,Ad")
	assertEventsInOrder(t, m, since,
		EndRoundDrawn{Players: []int64{2, 3}, RoundCards: roundCards("2:2c,3:2h,4:Qs,1:Ad")},
		StartRound{Round: 1, StartPlayer: 2},
	)

	playRound(t, m, 2, "4c,Kh,2s,7d")
	assert.Equal(t, map[Team]int{TeamOne: 0, TeamTwo: 1}, m.scores)
	assert.Equal(t, 2, m.deal.round, "the deal ends without a third round")
	assert.Equal(t, PhaseReadyToDeal, m.Phase())
}

func TestMatch_WinThenDraw(t *testing.T) {
	m := setupMatch(t, fixtureCards)

	playRound(t, m, 2, "4c,Kh,Qs,2d")
	since := len(m.Notifications())
	playRound(t, m, 2, "2c,2h,2s,Ad")
	assertEventsInOrder(t, m, since,
		EndRoundDrawn{Players: []int64{2, 3, 4}, RoundCards: roundCards("2:2c,3:2h,4:2s,1:Ad")},
		EndDeal{Winners: []int64{2, 4}, Team: TeamTwo, Points: 1, Scores: map[Team]int{TeamOne: 0, TeamTwo: 1}},
	)

	assert.Equal(t, map[Team]int{TeamOne: 0, TeamTwo: 1}, m.scores)
}

func TestMatch_SameTeamTie(t *testing.T) {
	m := setupMatch(t, "3d,5d,6d,Kc,5c,6c,3h,5h,6h,Ks,5s,6s")

	since := len(m.Notifications())
	playRound(t, m, 2, "Kc,3h,Ks,3d")
	assertEventsInOrder(t, m, since,
		EndRoundWinner{Team: TeamOne, Player: 3, RoundCards: roundCards("2:Kc,3:3h,4:Ks,1:3d")},
		StartRound{Round: 1, StartPlayer: 3},
	)

	since = len(m.Notifications())
	playRound(t, m, 3, "5h,5s,5d,5c")
	assertEventsInOrder(t, m, since,
		EndRoundDrawn{Players: []int64{3, 4, 1, 2}, RoundCards: roundCards("3:5h,4:5s,1:5d,2:5c")},
		EndDeal{Winners: []int64{1, 3}, Team: TeamOne, Points: 1, Scores: map[Team]int{TeamOne: 1, TeamTwo: 0}},
	)
}

func TestMatch_AllRoundsDrawn(t *testing.T) {
	m := setupMatch(t, "5d,6d,Qd,5c,6c,Qc,5h,6h,Qh,5s,6s,Qs")

	playRound(t, m, 2, "5c,5h,5s,5d")
	playRound(t, m, 2, "6c,6h,6s,6d")

	since := len(m.Notifications())
	playRound(t, m, 2, "Qc,Qh,Qs,Qd")
	assertEventsInOrder(t, m, since,
		EndDeal{Winners: []int64{}, Team: TeamNone, Points: 0, Scores: map[Team]int{TeamOne: 0, TeamTwo: 0}},
		ReadyToDeal{Dealer: 2},
	)

	assert.Equal(t, map[Team]int{TeamOne: 0, TeamTwo: 0}, m.scores)
	assert.Equal(t, int64(2), m.table.dealer)
}

func Test_resolveRound(t *testing.T) {
	order := []int64{2, 3, 4, 1}

	tests := []struct {
		name  string
		cards string
		want  []int64
	}{
		{"single strongest", "1:4c,2:7h,3:As,4:7d", []int64{1}},
		{"trump beats a three", "1:3d,2:7d,3:3h,4:3s", []int64{2}},
		{"tie in acting order", "1:3d,2:5c,3:3h,4:Ks", []int64{3, 1}},
		{"everybody ties", "1:6d,2:6c,3:6h,4:6s", []int64{2, 3, 4, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveRound(order, roundCards(tt.cards)))
		})
	}
}

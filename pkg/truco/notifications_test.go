package truco

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"truco-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func TestMatch_WaitForNotifications(t *testing.T) {
	m := newTestMatch(fixtureCards)

	n, err := m.WaitForNotifications(context.Background(), 1, 0, 10*time.Millisecond)
	assert.NoError(t, err)
	assert.Nil(t, n, "a timeout is not an error")

	done := make(chan []Notification)
	go func() {
		n, err := m.WaitForNotifications(context.Background(), 1, 0, time.Minute)
		assert.NoError(t, err)
		done <- n
	}()

	assert.NoError(t, m.AddPlayer(testPlayer(1)))

	select {
	case n := <-done:
		if assert.Len(t, n, 1) {
			assert.Equal(t, 0, n[0].ID)
			assert.Equal(t, AddPlayer{Player: *testPlayer(1)}, n[0].Event)
		}
	case <-time.After(time.Second):
		assert.Fail(t, "waiter was not woken up")
	}

	// already available
	n, err = m.WaitForNotifications(context.Background(), 1, 0, time.Minute)
	assert.NoError(t, err)
	assert.Len(t, n, 1)
}

func TestMatch_WaitForNotifications_cancel(t *testing.T) {
	m := newTestMatch(fixtureCards)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error)
	go func() {
		_, err := m.WaitForNotifications(ctx, 1, 0, time.Minute)
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		assert.Fail(t, "waiter was not cancelled")
	}
}

func TestMatch_ReadNotifications_privacy(t *testing.T) {
	m := setupMatch(t, fixtureCards)

	hands := 0
	for _, n := range m.ReadNotifications(2, 0) {
		if e, ok := n.Event.(SetHand); ok {
			hands++
			assert.Equal(t, int64(2), e.Player)
		}
	}
	assert.Equal(t, 1, hands)

	for _, n := range m.ReadNotifications(0, 0) {
		assert.NotEqual(t, KindSetHand, n.Event.Kind())
	}

	entries := m.Notifications()
	for i, entry := range entries {
		assert.Equal(t, i, entry.ID)
	}
}

func TestMatch_concurrentActions(t *testing.T) {
	m := setupMatch(t, fixtureCards)
	since := len(m.Notifications())

	// every player tries to play all of their cards at once; only legal plays go through
	hands := map[int64]string{1: "2d,Ad,7d", 2: "2c,4c,Jc", 3: "Kh,2h,7h", 4: "As,Qs,2s"}

	var wg sync.WaitGroup
	for id, hand := range hands {
		for _, card := range deck.CardsFromString(hand) {
			wg.Add(1)
			go func(id int64, card deck.Card) {
				defer wg.Done()
				err := m.Play(id, card)
				if err != nil {
					assert.True(t, IsGameRuleViolation(err))
				}
			}(id, card)
		}
	}

	wg.Wait()

	entries := m.Notifications()
	for i := since; i < len(entries); i++ {
		assert.Equal(t, i, entries[i].ID)
	}

	// plays are strictly in turn: every PlayCard is followed by the hand size of the same player
	var lastPlayer int64
	for _, e := range publicEvents(m, since) {
		switch e := e.(type) {
		case PlayCard:
			if lastPlayer != 0 {
				assert.Equal(t, lastPlayer%4+1, e.Player)
			}
			lastPlayer = e.Player
		case SetHandPublic:
			assert.Equal(t, lastPlayer, e.Player)
		case StartRound:
			lastPlayer = 0
		}
	}
}

func TestNotification_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Notification{
		ID:    3,
		Event: PlayCard{Player: 2, Card: deck.CardFromString("4c"), RoundCards: roundCards("2:4c")},
	})

	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 3,
		"type": "playCard",
		"event": {
			"player": 2,
			"card": {"suit": "clubs", "value": 4},
			"roundCards": {"2": {"suit": "clubs", "value": 4}}
		}
	}`, string(b))
}

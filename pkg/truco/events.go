package truco

import (
	"encoding/json"

	"truco-server/pkg/deck"
	"truco-server/pkg/model"
	"truco-server/pkg/notify"
)

// EventKind tags every event shape
type EventKind string

// EventKind constants
const (
	KindAddPlayer       EventKind = "addPlayer"
	KindStartGame       EventKind = "startGame"
	KindReadyToDeal     EventKind = "readyToDeal"
	KindStartDeal       EventKind = "startDeal"
	KindStartRound      EventKind = "startRound"
	KindSetHand         EventKind = "setHand"
	KindSetHandPublic   EventKind = "setHandPublic"
	KindPlayCard        EventKind = "playCard"
	KindEndRoundWinner  EventKind = "endRoundWinner"
	KindEndRoundDrawn   EventKind = "endRoundDrawn"
	KindEndDeal         EventKind = "endDeal"
	KindEndGame         EventKind = "endGame"
	KindSetActivePlayer EventKind = "setActivePlayer"
	KindCallTruco       EventKind = "callTruco"
	KindAcceptTruco     EventKind = "acceptTruco"
	KindFold            EventKind = "fold"
)

// Event is something that happened in a match
// The set of events is closed: only the types in this file implement it.
type Event interface {
	Kind() EventKind
	event()
}

// AddPlayer is emitted every time a player joins
type AddPlayer struct {
	Player model.Player `json:"player"`
}

// StartGame is emitted once, when the fourth player joins
type StartGame struct {
	Players []model.Player   `json:"players"`
	Seating []int64          `json:"seating"`
	Teams   map[Team][]int64 `json:"teams"`
}

// ReadyToDeal is emitted when the match waits for the dealer
type ReadyToDeal struct {
	Dealer int64 `json:"dealer"`
}

// StartDeal is emitted before the cards are handed out
type StartDeal struct {
	Dealer int64 `json:"dealer"`
}

// StartRound is emitted at the beginning of every round
type StartRound struct {
	Round       int   `json:"round"`
	StartPlayer int64 `json:"startPlayer"`
}

// SetHand is the private view of a player's new hand
type SetHand struct {
	Player int64       `json:"player"`
	Hand   []deck.Card `json:"hand"`
}

// SetHandPublic tells everybody how many cards a player holds
type SetHandPublic struct {
	Player int64 `json:"player"`
	Size   int   `json:"size"`
}

// PlayCard is emitted when a card is played
type PlayCard struct {
	Player     int64               `json:"player"`
	Card       deck.Card           `json:"card"`
	RoundCards map[int64]deck.Card `json:"roundCards"`
}

// EndRoundWinner is emitted when a round is won
type EndRoundWinner struct {
	Team       Team                `json:"team"`
	Player     int64               `json:"player"`
	RoundCards map[int64]deck.Card `json:"roundCards"`
}

// EndRoundDrawn is emitted when the strongest cards of a round belong to both teams
type EndRoundDrawn struct {
	Players    []int64             `json:"players"`
	RoundCards map[int64]deck.Card `json:"roundCards"`
}

// EndDeal is emitted when a deal is scored
// Team is TeamNone and Points is 0 if nobody won a round.
type EndDeal struct {
	Winners []int64      `json:"winners"`
	Team    Team         `json:"team"`
	Points  int          `json:"points"`
	Scores  map[Team]int `json:"scores"`
}

// EndGame is emitted when a team reaches the winning score
type EndGame struct {
	Winner Team         `json:"winner"`
	Scores map[Team]int `json:"scores"`
}

// SetActivePlayer is emitted whenever the turn moves
// Points is what the deal is currently worth.
type SetActivePlayer struct {
	Player int64 `json:"player"`
	Points int   `json:"points"`
}

// CallTruco is emitted for a raise or a counter-raise
type CallTruco struct {
	Player    int64 `json:"player"`
	Points    int   `json:"points"`
	Responder int64 `json:"responder"`
}

// AcceptTruco is emitted when a raise is accepted
type AcceptTruco struct {
	Player int64 `json:"player"`
	Points int   `json:"points"`
}

// Fold is emitted when a player gives up the deal
type Fold struct {
	Player int64 `json:"player"`
	Team   Team  `json:"team"`
}

func (AddPlayer) Kind() EventKind       { return KindAddPlayer }
func (StartGame) Kind() EventKind       { return KindStartGame }
func (ReadyToDeal) Kind() EventKind     { return KindReadyToDeal }
func (StartDeal) Kind() EventKind       { return KindStartDeal }
func (StartRound) Kind() EventKind      { return KindStartRound }
func (SetHand) Kind() EventKind         { return KindSetHand }
func (SetHandPublic) Kind() EventKind   { return KindSetHandPublic }
func (PlayCard) Kind() EventKind        { return KindPlayCard }
func (EndRoundWinner) Kind() EventKind  { return KindEndRoundWinner }
func (EndRoundDrawn) Kind() EventKind   { return KindEndRoundDrawn }
func (EndDeal) Kind() EventKind         { return KindEndDeal }
func (EndGame) Kind() EventKind         { return KindEndGame }
func (SetActivePlayer) Kind() EventKind { return KindSetActivePlayer }
func (CallTruco) Kind() EventKind       { return KindCallTruco }
func (AcceptTruco) Kind() EventKind     { return KindAcceptTruco }
func (Fold) Kind() EventKind            { return KindFold }

func (AddPlayer) event()       {}
func (StartGame) event()       {}
func (ReadyToDeal) event()     {}
func (StartDeal) event()       {}
func (StartRound) event()      {}
func (SetHand) event()         {}
func (SetHandPublic) event()   {}
func (PlayCard) event()        {}
func (EndRoundWinner) event()  {}
func (EndRoundDrawn) event()   {}
func (EndDeal) event()         {}
func (EndGame) event()         {}
func (SetActivePlayer) event() {}
func (CallTruco) event()       {}
func (AcceptTruco) event()     {}
func (Fold) event()            {}

// Notification is an event as seen by one player
type Notification struct {
	ID    int
	Event Event
}

type notificationJSON struct {
	ID    int       `json:"id"`
	Type  EventKind `json:"type"`
	Event Event     `json:"event"`
}

// MarshalJSON adds the event kind so clients can tell the shapes apart
func (n Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(notificationJSON{
		ID:    n.ID,
		Type:  n.Event.Kind(),
		Event: n.Event,
	})
}

func toNotifications(in []notify.Notification[Event]) []Notification {
	out := make([]Notification, len(in))
	for i, n := range in {
		out[i] = Notification{ID: n.ID, Event: n.Event}
	}

	return out
}

func copyCards(cards map[int64]deck.Card) map[int64]deck.Card {
	c := make(map[int64]deck.Card, len(cards))
	for id, card := range cards {
		c[id] = card
	}

	return c
}

func copyScores(scores map[Team]int) map[Team]int {
	c := make(map[Team]int, len(scores))
	for team, score := range scores {
		c[team] = score
	}

	return c
}

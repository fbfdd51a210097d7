// Package truco is the game engine for a four player, two team match of truco.
//
// A Match serializes every action behind one lock. Events produced by an action are
// appended to the match's notification log in a single batch before the lock is released,
// so readers always see them in the order the state changed. Readers of the log never take
// the game lock.
package truco

import (
	"context"
	"errors"
	"sync"
	"time"

	"truco-server/pkg/deck"
	"truco-server/pkg/model"
	"truco-server/pkg/notify"
	"truco-server/pkg/shuffle"

	"github.com/sirupsen/logrus"
)

// PlayersPerMatch is the number of players needed to start a match
const PlayersPerMatch = 4

// PointsToWin is the score that ends the match
const PointsToWin = 12

const (
	cardsPerHand  = 3
	roundsPerDeal = 3
)

// ladder is what a deal is worth after each accepted truco
var ladder = []int{1, 3, 6, 9, 12}

const maxLadder = 4

// Phase is where the match is in its lifecycle
type Phase string

// Phase constants
// A pending truco is not a phase of its own: see dealState.trucoPending
const (
	PhaseAwaitingPlayers Phase = "awaitingPlayers"
	PhaseReadyToDeal     Phase = "readyToDeal"
	PhaseRoundInProgress Phase = "roundInProgress"
	PhaseMatchOver       Phase = "matchOver"
)

// table only exists once the fourth player joined
type table struct {
	seating []int64
	teams   map[int64]Team
	dealer  int64
	active  int64
}

// dealState is reset by every deal
type dealState struct {
	round      int
	roundStart int64
	roundCards map[int64]deck.Card

	// winners of each round. A zero player and TeamNone mean the round was drawn
	roundWinners [roundsPerDeal]int64
	roundTeams   [roundsPerDeal]Team

	ladder       int
	raisedBy     Team
	trucoPending bool
	raiser       int64
	resumeTo     int64
	folded       Team
}

// Match is a single game of truco
type Match struct {
	ID int64

	logger       logrus.FieldLogger
	cardShuffler shuffle.Shuffler[deck.Card]
	seatShuffler shuffle.Shuffler[int64]

	notifications *notify.Log[Event]

	lock      sync.Mutex
	phase     Phase
	players   map[int64]model.Player
	joinOrder []int64
	hands     map[int64]deck.Hand
	scores    map[Team]int
	winner    Team

	table *table
	deal  *dealState

	lastRoundCards  map[int64]deck.Card
	lastRoundWinner int64

	// events of the action in progress, flushed by unlock()
	pending []notify.Entry[Event]
}

// NewMatch returns a match that is waiting for players
// Missing options are filled in from DefaultOptions()
func NewMatch(id int64, opts Options) *Match {
	defaults := DefaultOptions()
	if opts.CardShuffler == nil {
		opts.CardShuffler = defaults.CardShuffler
	}

	if opts.SeatShuffler == nil {
		opts.SeatShuffler = defaults.SeatShuffler
	}

	if opts.Logger == nil {
		opts.Logger = defaults.Logger
	}

	return &Match{
		ID:            id,
		logger:        opts.Logger.WithField("match", id),
		cardShuffler:  opts.CardShuffler,
		seatShuffler:  opts.SeatShuffler,
		notifications: notify.NewLog[Event](),
		phase:         PhaseAwaitingPlayers,
		players:       make(map[int64]model.Player),
		joinOrder:     make([]int64, 0, PlayersPerMatch),
		hands:         make(map[int64]deck.Hand),
		scores: map[Team]int{
			TeamOne: 0,
			TeamTwo: 0,
		},
	}
}

// unlock publishes the events of the current action, then releases the game lock
func (m *Match) unlock() {
	if len(m.pending) > 0 {
		m.notifications.Append(m.pending...)
		m.pending = nil
	}

	m.lock.Unlock()
}

func (m *Match) emit(events ...Event) {
	for _, e := range events {
		m.pending = append(m.pending, notify.PublicEntry(e))
	}
}

func (m *Match) emitPrivate(player int64, private, public Event) {
	m.pending = append(m.pending, notify.PrivateEntry([]int64{player}, private, public))
}

// AddPlayer adds a player to the match
// The fourth player fixes the seating and the teams, and the match waits for the first deal.
func (m *Match) AddPlayer(player *model.Player) error {
	if player == nil {
		return GameRuleViolation("player is required")
	}

	// 0 stands for "no player" in round and truco bookkeeping
	if player.ID <= 0 {
		return GameRuleViolation("player id must be greater than zero")
	}

	m.lock.Lock()
	defer m.unlock()

	if _, ok := m.players[player.ID]; ok {
		return ErrAlreadyJoined
	}

	if len(m.players) >= PlayersPerMatch {
		return ErrMatchFull
	}

	m.players[player.ID] = *player
	m.joinOrder = append(m.joinOrder, player.ID)
	m.hands[player.ID] = deck.Hand{}
	m.logger.WithField("player", player.ID).Debug("player joined")
	m.emit(AddPlayer{Player: *player})

	if len(m.players) == PlayersPerMatch {
		m.start()
	}

	return nil
}

// IsAcceptingPlayers returns true until the fourth player joins
func (m *Match) IsAcceptingPlayers() bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.phase == PhaseAwaitingPlayers
}

// Phase returns the current phase of the match
func (m *Match) Phase() Phase {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.phase
}

func (m *Match) start() {
	seating := append([]int64{}, m.joinOrder...)
	m.seatShuffler.Shuffle(seating)

	t := &table{
		seating: seating,
		teams:   make(map[int64]Team, PlayersPerMatch),
		dealer:  seating[0],
		active:  seating[0],
	}

	for seat, id := range seating {
		t.teams[id] = teamForSeat(seat)
	}

	m.table = t
	m.phase = PhaseReadyToDeal

	players := make([]model.Player, len(m.joinOrder))
	for i, id := range m.joinOrder {
		players[i] = m.players[id]
	}

	m.logger.WithField("seating", seating).Info("match started")
	m.emit(
		StartGame{
			Players: players,
			Seating: append([]int64{}, seating...),
			Teams:   m.teamRosters(),
		},
		ReadyToDeal{Dealer: t.dealer},
	)
}

func (m *Match) teamRosters() map[Team][]int64 {
	rosters := map[Team][]int64{
		TeamOne: {},
		TeamTwo: {},
	}

	if m.table == nil {
		return rosters
	}

	for _, id := range m.table.seating {
		team := m.table.teams[id]
		rosters[team] = append(rosters[team], id)
	}

	return rosters
}

func (m *Match) seatOf(id int64) int {
	for i, seated := range m.table.seating {
		if seated == id {
			return i
		}
	}

	return -1
}

func (m *Match) nextPlayer(id int64) int64 {
	seat := m.seatOf(id)
	return m.table.seating[(seat+1)%len(m.table.seating)]
}

func (m *Match) previousPlayer(id int64) int64 {
	seat := m.seatOf(id)
	n := len(m.table.seating)
	return m.table.seating[(seat+n-1)%n]
}

// Notifications returns the full log, private views included
func (m *Match) Notifications() []notify.Entry[Event] {
	return m.notifications.Entries()
}

// ReadNotifications returns the notifications with an ID >= since, as seen by viewer
func (m *Match) ReadNotifications(viewer int64, since int) []Notification {
	return toNotifications(m.notifications.Read(viewer, since))
}

// WaitForNotifications blocks until there is a notification with an ID >= since.
// If timeout elapses first, nil is returned with no error. If ctx is cancelled,
// the context's error is returned. A timeout <= 0 waits until ctx is done.
func (m *Match) WaitForNotifications(ctx context.Context, viewer int64, since int, timeout time.Duration) ([]Notification, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	notifications, err := m.notifications.Wait(ctx, viewer, since)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil
		}

		return nil, err
	}

	return toNotifications(notifications), nil
}

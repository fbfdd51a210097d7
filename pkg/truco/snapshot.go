package truco

import (
	"truco-server/pkg/deck"
	"truco-server/pkg/model"
)

// Snapshot is a read-only view of a match as seen by one player
type Snapshot struct {
	ID                 int64                  `json:"id"`
	Phase              Phase                  `json:"phase"`
	IsAcceptingPlayers bool                   `json:"isAcceptingPlayers"`
	Players            map[int64]model.Player `json:"players"`
	Seating            []int64                `json:"seating"`

	// only set when the viewer is seated
	RelativeSeating []int64     `json:"relativeSeating,omitempty"`
	PrivateHand     []deck.Card `json:"privateHand,omitempty"`

	RoundCards      map[int64]deck.Card `json:"roundCards"`
	LastRoundCards  map[int64]deck.Card `json:"lastRoundCards"`
	LastRoundWinner int64               `json:"lastRoundWinner"`
	HandSizes       map[int64]int       `json:"handSizes"`
	Teams           map[Team][]int64    `json:"teams"`
	Scores          map[Team]int        `json:"scores"`
	Round           int                 `json:"round"`
	ActivePlayer    int64               `json:"activePlayer"`
	ReadyToDeal     bool                `json:"readyToDeal"`
	Dealer          int64               `json:"dealer"`
	DealWinners     []Team              `json:"dealWinners"`

	TrucoPending bool `json:"trucoPending"`
	RaisedTo     int  `json:"raisedTo"`
	// RaisePlayer gets the turn back once the truco is accepted
	RaisePlayer int64 `json:"raisePlayer"`
	// LastCaller made the latest call, which differs from RaisePlayer after a counter-raise
	LastCaller int64 `json:"lastCaller"`
	Points     int   `json:"points"`
	RaiseTeam  Team  `json:"raiseTeam"`
	TeamFolded Team  `json:"teamFolded"`

	IsMatchOver bool `json:"isMatchOver"`
	Winner      Team `json:"winner"`
}

// Snapshot returns the state of the match as seen by viewer
// A viewer of 0, or anybody who didn't join, only gets the public view.
func (m *Match) Snapshot(viewer int64) *Snapshot {
	m.lock.Lock()
	defer m.lock.Unlock()

	s := &Snapshot{
		ID:                 m.ID,
		Phase:              m.phase,
		IsAcceptingPlayers: m.phase == PhaseAwaitingPlayers,
		Players:            make(map[int64]model.Player, len(m.players)),
		Seating:            []int64{},
		RoundCards:         map[int64]deck.Card{},
		LastRoundCards:     copyCards(m.lastRoundCards),
		LastRoundWinner:    m.lastRoundWinner,
		HandSizes:          make(map[int64]int, len(m.hands)),
		Teams:              m.teamRosters(),
		Scores:             copyScores(m.scores),
		ReadyToDeal:        m.phase == PhaseReadyToDeal,
		DealWinners:        []Team{},
		Points:             m.points(),
		IsMatchOver:        m.phase == PhaseMatchOver,
		Winner:             m.winner,
	}

	for id, player := range m.players {
		s.Players[id] = player
	}

	for id, hand := range m.hands {
		s.HandSizes[id] = len(hand)
	}

	if m.table != nil {
		s.Seating = append(s.Seating, m.table.seating...)
		s.Dealer = m.table.dealer
		s.ActivePlayer = m.table.active

		if seat := m.seatOf(viewer); seat >= 0 {
			n := len(m.table.seating)
			for i := 1; i < n; i++ {
				s.RelativeSeating = append(s.RelativeSeating, m.table.seating[(seat+i)%n])
			}

			s.PrivateHand = m.hands[viewer].Clone()
		}
	}

	if d := m.deal; d != nil {
		s.Round = d.round
		s.RoundCards = copyCards(d.roundCards)
		s.DealWinners = append(s.DealWinners, d.roundTeams[:d.round]...)
		s.TrucoPending = d.trucoPending
		s.RaiseTeam = d.raisedBy
		s.TeamFolded = d.folded

		if d.trucoPending {
			s.RaisedTo = ladder[d.ladder+1]
			s.RaisePlayer = d.resumeTo
			s.LastCaller = d.raiser
		}
	}

	return s
}

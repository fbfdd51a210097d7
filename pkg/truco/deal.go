package truco

import (
	"truco-server/pkg/deck"
)

// Deal shuffles a fresh deck and hands three cards to every player
// Only the dealer can deal, and only while the match is ready to deal.
func (m *Match) Deal(actor int64) error {
	m.lock.Lock()
	defer m.unlock()

	switch m.phase {
	case PhaseAwaitingPlayers:
		return ErrWaitingForPlayers
	case PhaseMatchOver:
		return ErrMatchOver
	case PhaseRoundInProgress:
		return ErrDealInProgress
	}

	if actor != m.table.dealer {
		return violationf("only the dealer (%d) can deal", m.table.dealer)
	}

	d := deck.New()
	m.cardShuffler.Shuffle(d.Cards)

	hands := make(map[int64]deck.Hand, PlayersPerMatch)
	for _, id := range m.table.seating {
		hand, err := d.DrawN(cardsPerHand)
		if err != nil {
			return err
		}

		hands[id] = hand
	}

	m.logger.WithField("deck", d.HashCode()).Debug("dealing")

	m.hands = hands
	m.deal = &dealState{}
	m.phase = PhaseRoundInProgress

	m.emit(StartDeal{Dealer: m.table.dealer})
	for _, id := range m.table.seating {
		m.emitPrivate(
			id,
			SetHand{Player: id, Hand: hands[id].Clone()},
			SetHandPublic{Player: id, Size: len(hands[id])},
		)
	}

	m.startRound(m.nextPlayer(m.table.dealer))

	return nil
}

// validateTurn checks that a round is being played and that it's the actor's turn
func (m *Match) validateTurn(actor int64) error {
	switch m.phase {
	case PhaseAwaitingPlayers:
		return ErrWaitingForPlayers
	case PhaseMatchOver:
		return ErrMatchOver
	case PhaseReadyToDeal:
		return ErrNoDealInProgress
	}

	if actor != m.table.active {
		return ErrIsNotPlayersTurn
	}

	return nil
}

// Play plays a card from the actor's hand
func (m *Match) Play(actor int64, card deck.Card) error {
	m.lock.Lock()
	defer m.unlock()

	if err := m.validateTurn(actor); err != nil {
		return err
	}

	if m.deal.trucoPending {
		return ErrTrucoPending
	}

	hand := m.hands[actor]
	if !hand.Discard(card) {
		return ErrCardNotInPlayersHand
	}

	m.hands[actor] = hand
	m.deal.roundCards[actor] = card
	m.table.active = m.nextPlayer(actor)

	m.logger.WithField("player", actor).WithField("card", card.String()).Debug("card played")
	m.emit(
		PlayCard{Player: actor, Card: card, RoundCards: copyCards(m.deal.roundCards)},
		SetHandPublic{Player: actor, Size: len(hand)},
	)

	if len(m.deal.roundCards) == PlayersPerMatch {
		m.endRound()
		return nil
	}

	m.emit(SetActivePlayer{Player: m.table.active, Points: m.points()})
	return nil
}

// points is what the current deal is worth
func (m *Match) points() int {
	if m.deal == nil {
		return ladder[0]
	}

	return ladder[m.deal.ladder]
}

func (m *Match) startRound(start int64) {
	d := m.deal
	d.roundStart = start
	d.roundCards = make(map[int64]deck.Card, PlayersPerMatch)
	d.raisedBy = TeamNone
	d.trucoPending = false
	d.resumeTo = 0
	m.table.active = start

	m.emit(
		StartRound{Round: d.round, StartPlayer: start},
		SetActivePlayer{Player: start, Points: m.points()},
	)
}

// roundOrder lists the players in the order they acted this round
func (m *Match) roundOrder() []int64 {
	order := make([]int64, 0, PlayersPerMatch)
	id := m.deal.roundStart
	for i := 0; i < PlayersPerMatch; i++ {
		order = append(order, id)
		id = m.nextPlayer(id)
	}

	return order
}

// resolveRound returns the players holding the strongest card, in the order they acted
func resolveRound(order []int64, cards map[int64]deck.Card) []int64 {
	best := 0
	strongest := make([]int64, 0, len(order))
	for _, id := range order {
		strength := deck.Strength(cards[id])
		switch {
		case strength > best:
			best = strength
			strongest = append(strongest[:0], id)
		case strength == best:
			strongest = append(strongest, id)
		}
	}

	return strongest
}

func (m *Match) endRound() {
	d := m.deal
	strongest := resolveRound(m.roundOrder(), d.roundCards)

	var winner int64
	team := m.table.teams[strongest[0]]
	for _, id := range strongest[1:] {
		if m.table.teams[id] != team {
			team = TeamNone
			break
		}
	}

	if team != TeamNone {
		winner = strongest[0]
	}

	d.roundWinners[d.round] = winner
	d.roundTeams[d.round] = team
	m.lastRoundCards = copyCards(d.roundCards)
	m.lastRoundWinner = winner

	if team == TeamNone {
		m.logger.WithField("round", d.round).Debug("round drawn")
		m.emit(EndRoundDrawn{Players: strongest, RoundCards: copyCards(d.roundCards)})
	} else {
		m.logger.WithField("round", d.round).WithField("player", winner).Debug("round won")
		m.emit(EndRoundWinner{Team: team, Player: winner, RoundCards: copyCards(d.roundCards)})
	}

	d.round++

	if m.dealIsOver() {
		m.endDeal(m.dealWinner())
		return
	}

	next := d.roundStart
	if winner != 0 {
		next = winner
	}

	m.startRound(next)
}

func (m *Match) roundWins() (wins map[Team]int, decided int) {
	wins = make(map[Team]int, 2)
	for _, team := range m.deal.roundTeams[:m.deal.round] {
		if team != TeamNone {
			wins[team]++
			decided++
		}
	}

	return wins, decided
}

// dealIsOver is true after three rounds, two wins by one team, or the first win after a drawn round
func (m *Match) dealIsOver() bool {
	if m.deal.round >= roundsPerDeal {
		return true
	}

	wins, decided := m.roundWins()
	for _, team := range Teams {
		if wins[team] >= 2 {
			return true
		}
	}

	return decided > 0 && decided < m.deal.round
}

// dealWinner is the team with more rounds, or the first team to win a round on a tie
func (m *Match) dealWinner() Team {
	wins, _ := m.roundWins()
	if wins[TeamOne] > wins[TeamTwo] {
		return TeamOne
	}

	if wins[TeamTwo] > wins[TeamOne] {
		return TeamTwo
	}

	for _, team := range m.deal.roundTeams[:m.deal.round] {
		if team != TeamNone {
			return team
		}
	}

	return TeamNone
}

func (m *Match) endDeal(winner Team) {
	d := m.deal
	d.trucoPending = false
	d.resumeTo = 0

	points := 0
	winners := []int64{}
	if winner != TeamNone {
		points = ladder[d.ladder]
		m.scores[winner] += points
		if m.scores[winner] > PointsToWin {
			m.scores[winner] = PointsToWin
		}

		winners = m.teamRosters()[winner]
	}

	m.table.dealer = m.nextPlayer(m.table.dealer)
	m.table.active = m.table.dealer

	m.logger.WithField("team", winner).WithField("points", points).Info("deal over")
	m.emit(EndDeal{
		Winners: winners,
		Team:    winner,
		Points:  points,
		Scores:  copyScores(m.scores),
	})

	if winner != TeamNone && m.scores[winner] >= PointsToWin {
		m.endMatch(winner)
		return
	}

	m.phase = PhaseReadyToDeal
	m.emit(ReadyToDeal{Dealer: m.table.dealer})
}

func (m *Match) endMatch(winner Team) {
	m.phase = PhaseMatchOver
	m.winner = winner
	m.clearHands()

	m.logger.WithField("team", winner).Info("match over")
	m.emit(EndGame{Winner: winner, Scores: copyScores(m.scores)})
}

func (m *Match) clearHands() {
	for id := range m.hands {
		m.hands[id] = deck.Hand{}
	}
}

package truco

// Truco raises what the deal is worth to the next step of the ladder.
// Without a pending truco, the next player must answer and the caller gets the turn back
// once it's accepted. Answering a pending truco with another one accepts it and raises again.
func (m *Match) Truco(actor int64) error {
	m.lock.Lock()
	defer m.unlock()

	if err := m.validateTurn(actor); err != nil {
		return err
	}

	d := m.deal
	team := m.table.teams[actor]
	if d.raisedBy == team {
		return ErrOwnTruco
	}

	if d.trucoPending {
		if d.ladder+1 >= maxLadder {
			return ErrMaxPoints
		}

		// the answer goes back and forth between the two callers
		if d.ladder%2 == 0 {
			m.table.active = m.previousPlayer(actor)
		} else {
			m.table.active = m.nextPlayer(actor)
		}

		d.ladder++
	} else {
		if d.ladder >= maxLadder {
			return ErrMaxPoints
		}

		d.resumeTo = actor
		m.table.active = m.nextPlayer(actor)
	}

	d.raisedBy = team
	d.raiser = actor
	d.trucoPending = true

	m.logger.WithField("player", actor).WithField("points", ladder[d.ladder+1]).Debug("truco")
	m.emit(
		CallTruco{Player: actor, Points: ladder[d.ladder+1], Responder: m.table.active},
		SetActivePlayer{Player: m.table.active, Points: ladder[d.ladder]},
	)

	return nil
}

// Accept accepts the pending truco. The player who started the raise gets the turn back
func (m *Match) Accept(actor int64) error {
	m.lock.Lock()
	defer m.unlock()

	if err := m.validateTurn(actor); err != nil {
		return err
	}

	d := m.deal
	if !d.trucoPending {
		return ErrNoTrucoPending
	}

	if m.table.teams[actor] == d.raisedBy {
		return ErrOwnTruco
	}

	if d.ladder < maxLadder {
		d.ladder++
	}

	d.trucoPending = false
	m.table.active = d.resumeTo
	d.resumeTo = 0

	m.logger.WithField("player", actor).WithField("points", ladder[d.ladder]).Debug("truco accepted")
	m.emit(
		AcceptTruco{Player: actor, Points: ladder[d.ladder]},
		SetActivePlayer{Player: m.table.active, Points: ladder[d.ladder]},
	)

	return nil
}

// Fold gives the deal to the other team at what it was worth before any pending truco
func (m *Match) Fold(actor int64) error {
	m.lock.Lock()
	defer m.unlock()

	if err := m.validateTurn(actor); err != nil {
		return err
	}

	d := m.deal
	winner := m.previousPlayer(actor)
	winningTeam := m.table.teams[winner]

	d.folded = m.table.teams[actor]
	d.roundWinners[d.round] = winner
	d.roundTeams[d.round] = winningTeam
	m.clearHands()

	m.logger.WithField("player", actor).Debug("fold")
	m.emit(Fold{Player: actor, Team: d.folded})
	for _, id := range m.table.seating {
		m.emit(SetHandPublic{Player: id, Size: 0})
	}

	m.endDeal(winningTeam)

	return nil
}

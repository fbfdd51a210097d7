package truco

import (
	"errors"
	"fmt"
)

// GameRuleViolation is returned when an action breaks the rules of the game.
// The action is rejected as a whole: no state changes and no events are emitted.
// The message is safe to show to players.
type GameRuleViolation string

func (g GameRuleViolation) Error() string {
	return string(g)
}

func violationf(format string, a ...interface{}) GameRuleViolation {
	return GameRuleViolation(fmt.Sprintf(format, a...))
}

// IsGameRuleViolation returns true if err is, or wraps, a GameRuleViolation
func IsGameRuleViolation(err error) bool {
	var v GameRuleViolation
	return errors.As(err, &v)
}

// ErrMatchFull happens when a fifth player tries to join
var ErrMatchFull = GameRuleViolation("the match already has four players")

// ErrAlreadyJoined happens when a player joins the same match twice
var ErrAlreadyJoined = GameRuleViolation("player already joined the match")

// ErrWaitingForPlayers is returned for game actions before the fourth player joins
var ErrWaitingForPlayers = GameRuleViolation("the match is waiting for players")

// ErrMatchOver is returned for game actions after a team reached the winning score
var ErrMatchOver = GameRuleViolation("the match is over")

// ErrDealInProgress happens when the dealer tries to deal before the current deal ends
var ErrDealInProgress = GameRuleViolation("the current deal is still in progress")

// ErrNoDealInProgress happens when a player acts while the match is waiting for the dealer
var ErrNoDealInProgress = GameRuleViolation("the cards have not been dealt")

// ErrIsNotPlayersTurn is returned when it's not the player's turn
var ErrIsNotPlayersTurn = GameRuleViolation("not player's turn")

// ErrCardNotInPlayersHand happens when the player tries to play a card they don't have
var ErrCardNotInPlayersHand = GameRuleViolation("card is not in player's hand")

// ErrTrucoPending happens when a card is played before truco is accepted or folded
var ErrTrucoPending = GameRuleViolation("truco must be accepted or folded first")

// ErrNoTrucoPending happens when a player accepts a truco nobody called
var ErrNoTrucoPending = GameRuleViolation("truco has not been called")

// ErrOwnTruco happens when a team tries to raise or accept its own truco
var ErrOwnTruco = GameRuleViolation("the team already called truco")

// ErrMaxPoints happens when truco is called on a deal already worth the maximum
var ErrMaxPoints = GameRuleViolation("the deal cannot be worth more than 12 points")

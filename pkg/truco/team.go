package truco

import "fmt"

// Team identifies one of the two partnerships
// TeamNone is never a real team: it means nobody raised, folded, or won.
type Team int

// Team constants
const (
	TeamNone Team = iota
	TeamOne
	TeamTwo
)

// Teams are the two real teams
var Teams = []Team{TeamOne, TeamTwo}

func (t Team) String() string {
	switch t {
	case TeamOne:
		return "teamOne"
	case TeamTwo:
		return "teamTwo"
	default:
		return "none"
	}
}

// Opponent returns the other team
func (t Team) Opponent() Team {
	switch t {
	case TeamOne:
		return TeamTwo
	case TeamTwo:
		return TeamOne
	default:
		return TeamNone
	}
}

// MarshalText lets teams be used as JSON object keys
func (t Team) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Team) UnmarshalText(b []byte) error {
	switch string(b) {
	case "teamOne":
		*t = TeamOne
	case "teamTwo":
		*t = TeamTwo
	case "none", "":
		*t = TeamNone
	default:
		return fmt.Errorf("unknown team: %s", b)
	}

	return nil
}

// teamForSeat alternates teams around the table: seats 0 and 2 play together against 1 and 3
func teamForSeat(seat int) Team {
	if seat%2 == 0 {
		return TeamOne
	}

	return TeamTwo
}

package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"truco-server/internal/util"
)

// ErrPlayerNotFound is returned when no player matches the lookup
var ErrPlayerNotFound = errors.New("player not found")

// ErrDuplicateName happens if a player is created with a name that is already taken
var ErrDuplicateName = UserError("a player with that name already exists")

// maxNameLength is the longest display name accepted
const maxNameLength = 40

// Player is a person who can join matches
type Player struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%d)", p.Name, p.ID)
}

// PlayerStore creates and looks up players
// Implementations must be safe for concurrent use.
type PlayerStore interface {
	// PlayerByID returns ErrPlayerNotFound if there is no player with that ID
	PlayerByID(ctx context.Context, id int64) (*Player, error)

	// PlayerByName returns ErrPlayerNotFound if there is no player with that name
	PlayerByName(ctx context.Context, name string) (*Player, error)

	// CreatePlayer allocates a new ID. If name is empty a random name is picked
	CreatePlayer(ctx context.Context, name string) (*Player, error)
}

// NormalizeName trims the name and picks a random one if nothing is left
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return util.GetRandomName(), nil
	}

	if len(name) > maxNameLength {
		return "", UserError(fmt.Sprintf("name cannot be longer than %d characters", maxNameLength))
	}

	return name, nil
}

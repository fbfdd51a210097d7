// Package registry keeps every match the server knows about
package registry

import (
	"errors"
	"sync"

	"truco-server/internal/rng"
	"truco-server/pkg/model"
	"truco-server/pkg/truco"

	"github.com/sirupsen/logrus"
)

// ErrMatchNotFound is returned when no match has the requested ID
var ErrMatchNotFound = errors.New("match not found")

// Factory builds the match stored under a new ID
type Factory func(id int64) *truco.Match

// NewFactory returns a factory that creates matches with the same options
func NewFactory(opts truco.Options) Factory {
	return func(id int64) *truco.Match {
		return truco.NewMatch(id, opts)
	}
}

// Registry maps IDs to matches
// Lock order is registry, then match. A match never calls back into the registry.
type Registry struct {
	lock    sync.Mutex
	matches map[int64]*truco.Match
	order   []int64

	rng     rng.Generator
	factory Factory
	logger  logrus.FieldLogger
}

// New returns an empty registry
func New(g rng.Generator, factory Factory, logger logrus.FieldLogger) *Registry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Registry{
		matches: make(map[int64]*truco.Match),
		order:   make([]int64, 0),
		rng:     g,
		factory: factory,
		logger:  logger,
	}
}

// Create stores a new match under an unused ID
func (r *Registry) Create() *truco.Match {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.create()
}

// must hold the lock
func (r *Registry) create() *truco.Match {
	id := rng.ID(r.rng)
	for r.matches[id] != nil {
		id = rng.ID(r.rng)
	}

	match := r.factory(id)
	r.matches[id] = match
	r.order = append(r.order, id)
	r.logger.WithField("match", id).Info("match created")

	return match
}

// Get returns the match with the ID
func (r *Registry) Get(id int64) (*truco.Match, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	match, ok := r.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}

	return match, nil
}

// FindAccepting returns the oldest match that is still waiting for players, or nil
func (r *Registry) FindAccepting() *truco.Match {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, id := range r.order {
		if match := r.matches[id]; match.IsAcceptingPlayers() {
			return match
		}
	}

	return nil
}

// CreateOrJoin adds the player to the oldest match that is waiting for players.
// If there is none, a new match is created for them. A player who is already waiting in
// a match gets that match back.
func (r *Registry) CreateOrJoin(player *model.Player) (*truco.Match, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, id := range r.order {
		match := r.matches[id]
		if !match.IsAcceptingPlayers() {
			continue
		}

		err := match.AddPlayer(player)
		switch {
		case err == nil, errors.Is(err, truco.ErrAlreadyJoined):
			return match, nil
		case errors.Is(err, truco.ErrMatchFull):
			// filled up by a direct join since IsAcceptingPlayers()
			continue
		default:
			return nil, err
		}
	}

	match := r.create()
	if err := match.AddPlayer(player); err != nil {
		return nil, err
	}

	return match, nil
}

// Len returns the number of matches
func (r *Registry) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return len(r.matches)
}

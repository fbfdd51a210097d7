package model

import (
	"context"
	"strings"
	"sync"
	"truco-server/internal/rng"
)

// MemoryStore keeps players in memory
type MemoryStore struct {
	lock    sync.RWMutex
	rng     rng.Generator
	players map[int64]*Player
}

// NewMemoryStore returns an empty store. IDs are drawn from g
func NewMemoryStore(g rng.Generator) *MemoryStore {
	return &MemoryStore{
		rng:     g,
		players: make(map[int64]*Player),
	}
}

// PlayerByID implements PlayerStore
func (m *MemoryStore) PlayerByID(_ context.Context, id int64) (*Player, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	player, ok := m.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	cp := *player
	return &cp, nil
}

// PlayerByName implements PlayerStore
// Names are compared without regard to case
func (m *MemoryStore) PlayerByName(_ context.Context, name string) (*Player, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	for _, player := range m.players {
		if strings.EqualFold(player.Name, name) {
			cp := *player
			return &cp, nil
		}
	}

	return nil, ErrPlayerNotFound
}

// CreatePlayer implements PlayerStore
func (m *MemoryStore) CreatePlayer(_ context.Context, name string) (*Player, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	for _, player := range m.players {
		if strings.EqualFold(player.Name, name) {
			return nil, ErrDuplicateName
		}
	}

	id := rng.ID(m.rng)
	for m.players[id] != nil {
		id = rng.ID(m.rng)
	}

	player := &Player{ID: id, Name: name}
	m.players[id] = player

	cp := *player
	return &cp, nil
}

// Len returns the number of players
func (m *MemoryStore) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return len(m.players)
}

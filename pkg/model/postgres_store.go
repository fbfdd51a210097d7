package model

import (
	"context"
	"database/sql"
	"errors"
	"truco-server/pkg/db"

	"github.com/lib/pq"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

const playerColumns = `
players.id,
players.name`

// PostgresStore keeps players in the `players` table
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a store backed by the database handle
func NewPostgresStore(dbh *sql.DB) *PostgresStore {
	return &PostgresStore{db: dbh}
}

func getPlayerByRow(row db.Scanner) (*Player, error) {
	var player Player
	if err := row.Scan(&player.ID, &player.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}

		return nil, err
	}

	return &player, nil
}

// PlayerByID implements PlayerStore
func (p *PostgresStore) PlayerByID(ctx context.Context, id int64) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE id = $1`

	row := p.db.QueryRowContext(ctx, query, id)
	return getPlayerByRow(row)
}

// PlayerByName implements PlayerStore
func (p *PostgresStore) PlayerByName(ctx context.Context, name string) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE lower(name) = lower($1)`

	row := p.db.QueryRowContext(ctx, query, name)
	return getPlayerByRow(row)
}

// CreatePlayer implements PlayerStore
func (p *PostgresStore) CreatePlayer(ctx context.Context, name string) (*Player, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO players (name)
VALUES ($1)
RETURNING ` + playerColumns

	row := p.db.QueryRowContext(ctx, query, name)
	player, err := getPlayerByRow(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateName
		}

		return nil, err
	}

	return player, nil
}

package mux

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"truco-server/pkg/deck"
	"truco-server/pkg/model"
	"truco-server/pkg/truco"
)

type matchJoinResponse struct {
	Player *model.Player   `json:"player"`
	Match  *truco.Snapshot `json:"match"`
}

func (m *Mux) postMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match := m.matches.Create()
		writeJSON(w, http.StatusCreated, match.Snapshot(0))
	}
}

// loginPlayer returns the player with that name, creating them the first time they're seen
// An empty name always creates a player with a random name.
func (m *Mux) loginPlayer(ctx context.Context, name string) (*model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return m.players.CreatePlayer(ctx, name)
	}

	player, err := m.players.PlayerByName(ctx, name)
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return player, err
	}

	player, err = m.players.CreatePlayer(ctx, name)
	if errors.Is(err, model.ErrDuplicateName) {
		// created by a concurrent request
		return m.players.PlayerByName(ctx, name)
	}

	return player, err
}

// postMatchJoin logs the player in by name and seats them at the first match that needs players
func (m *Mux) postMatchJoin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp playerPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		player, err := m.loginPlayer(r.Context(), pp.Name)
		if err != nil {
			writeError(w, err)
			return
		}

		match, err := m.matches.CreateOrJoin(player)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, matchJoinResponse{
			Player: player,
			Match:  match.Snapshot(player.ID),
		})
	}
}

func (m *Mux) getMatchID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, err := queryInt64(r, "playerId", 0)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		writeJSON(w, http.StatusOK, matchFromContext(r).Snapshot(viewer))
	}
}

type joinPayload struct {
	PlayerID int64 `json:"playerId"`
}

func (m *Mux) postMatchIDJoin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var jp joinPayload
		if !decodeRequest(w, r, &jp) {
			return
		}

		player, err := m.players.PlayerByID(r.Context(), jp.PlayerID)
		if err != nil {
			writeError(w, err)
			return
		}

		match := matchFromContext(r)
		if err := match.AddPlayer(player); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, match.Snapshot(player.ID))
	}
}

// actor resolves the acting player from the playerId query parameter
// Returns false if a response was already written.
func (m *Mux) actor(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := playerID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return 0, false
	}

	if _, err := m.players.PlayerByID(r.Context(), id); err != nil {
		writeError(w, err)
		return 0, false
	}

	return id, true
}

func (m *Mux) postMatchIDAction(action func(*truco.Match, int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := m.actor(w, r)
		if !ok {
			return
		}

		if err := action(matchFromContext(r), id); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (m *Mux) postMatchIDPlay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := m.actor(w, r)
		if !ok {
			return
		}

		var card deck.Card
		if !decodeRequest(w, r, &card) {
			return
		}

		if !card.IsValid() {
			writeJSONError(w, http.StatusBadRequest, truco.ErrCardNotInPlayersHand)
			return
		}

		if err := matchFromContext(r).Play(id, card); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

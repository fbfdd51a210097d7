package mux

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type playerPayload struct {
	Name string `json:"name"`
}

func (m *Mux) postPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp playerPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		player, err := m.players.CreatePlayer(r.Context(), pp.Name)
		if err != nil {
			writeError(w, err)
			return
		}

		m.logger.WithField("player", player.String()).Info("player created")
		writeJSON(w, http.StatusCreated, player)
	}
}

func (m *Mux) getPlayerID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		player, err := m.players.PlayerByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, player)
	}
}

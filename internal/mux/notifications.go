package mux

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// longPollTimeout reads the timeout query parameter, in seconds
func (m *Mux) longPollTimeout(r *http.Request) (time.Duration, error) {
	seconds, err := queryInt64(r, "timeout", -1)
	if err != nil {
		return 0, err
	}

	if seconds == 0 {
		return 0, errors.New("timeout must be greater than zero")
	}

	timeout := m.config.defaultTimeout
	if seconds > 0 {
		timeout = time.Duration(seconds) * time.Second
	}

	if timeout > m.config.maxTimeout {
		timeout = m.config.maxTimeout
	}

	return timeout, nil
}

// getMatchIDNotifications blocks until there are notifications with an ID >= startAt
// Responds with 204 if the timeout elapses first.
func (m *Mux) getMatchIDNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, err := playerID(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		startAt, err := queryInt64(r, "startAt", 0)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		timeout, err := m.longPollTimeout(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		match := matchFromContext(r)
		log := m.logger.WithField("session", uuid.New().String()).
			WithField("match", match.ID).
			WithField("player", viewer)
		log.WithField("startAt", startAt).Debug("long-poll started")

		notifications, err := match.WaitForNotifications(r.Context(), viewer, int(startAt), timeout)
		if err != nil {
			// the client went away
			log.WithError(err).Debug("long-poll cancelled")
			return
		}

		if notifications == nil {
			log.Debug("long-poll timed out")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		log.WithField("count", len(notifications)).Debug("long-poll finished")
		writeJSON(w, http.StatusOK, notifications)
	}
}

package mux

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"truco-server/pkg/model"
	"truco-server/pkg/registry"
	"truco-server/pkg/truco"

	"github.com/sirupsen/logrus"
)

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

// queryInt64 parses an optional integer query parameter
func queryInt64(r *http.Request, key string, defaultValue int64) (int64, error) {
	s := r.FormValue(key)
	if s == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}

	return val, nil
}

// playerID returns the required playerId query parameter
func playerID(r *http.Request) (int64, error) {
	id, err := queryInt64(r, "playerId", 0)
	if err != nil {
		return 0, err
	}

	if id <= 0 {
		return 0, errors.New("playerId is required")
	}

	return id, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// writeError picks the status code from the kind of error
// Rule violations and user errors are the client's fault, unknown IDs are a 404, the rest is a 500.
func writeError(w http.ResponseWriter, err error) {
	var ue model.UserError

	switch {
	case truco.IsGameRuleViolation(err), errors.As(err, &ue):
		writeJSONError(w, http.StatusBadRequest, err)
	case errors.Is(err, model.ErrPlayerNotFound), errors.Is(err, registry.ErrMatchNotFound):
		writeJSONError(w, http.StatusNotFound, err)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}

package mux

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"truco-server/internal/config"
	"truco-server/pkg/model"
	"truco-server/pkg/registry"
	"truco-server/pkg/truco"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type ctxKey int

const (
	ctxMatchKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config  muxConfig
	version string
	players model.PlayerStore
	matches *registry.Registry
	logger  logrus.FieldLogger
}

type muxConfig struct {
	// defaultTimeout is how long a long-poll waits when the client doesn't say
	defaultTimeout time.Duration

	// maxTimeout caps the timeout a client can ask for
	maxTimeout time.Duration
}

// NewMux returns a new HTTP mux
func NewMux(version string, players model.PlayerStore, matches *registry.Registry) *Mux {
	cfg := config.Instance()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		players: players,
		matches: matches,
		logger:  logrus.StandardLogger(),
		config: muxConfig{
			defaultTimeout: cfg.DefaultTimeout(),
			maxTimeout:     cfg.MaxTimeout(),
		},
	}

	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
		r.Methods(http.MethodGet).Path("/player/{id:[0-9]+}").Handler(this.getPlayerID())
		r.Methods(http.MethodPost).Path("/match").Handler(this.postMatch())
		r.Methods(http.MethodPost).Path("/match/join").Handler(this.postMatchJoin())
	}

	{
		mr := this.Router.PathPrefix("/match/{id:[0-9]+}").Subrouter()
		mr.Use(this.matchMiddleware)

		mr.Methods(http.MethodGet).Path("").Handler(this.getMatchID())
		mr.Methods(http.MethodPost).Path("/join").Handler(this.postMatchIDJoin())
		mr.Methods(http.MethodPost).Path("/deal").Handler(this.postMatchIDAction((*truco.Match).Deal))
		mr.Methods(http.MethodPost).Path("/truco").Handler(this.postMatchIDAction((*truco.Match).Truco))
		mr.Methods(http.MethodPost).Path("/accept").Handler(this.postMatchIDAction((*truco.Match).Accept))
		mr.Methods(http.MethodPost).Path("/fold").Handler(this.postMatchIDAction((*truco.Match).Fold))
		mr.Methods(http.MethodPost).Path("/play").Handler(this.postMatchIDPlay())
		mr.Methods(http.MethodGet).Path("/notifications").Handler(this.getMatchIDNotifications())
		mr.Methods(http.MethodGet).Path("/ws").Handler(this.getMatchIDWS())
	}

	return this
}

func (m *Mux) matchMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(gmux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		match, err := m.matches.Get(id)
		if err != nil {
			writeError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxMatchKey, match)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func matchFromContext(r *http.Request) *truco.Match {
	return r.Context().Value(ctxMatchKey).(*truco.Match)
}

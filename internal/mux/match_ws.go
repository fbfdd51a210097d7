package mux

import (
	"context"
	"net/http"
	"time"

	"truco-server/pkg/truco"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// getMatchIDWS streams the player's view of the notification log over a websocket
// Clients don't send anything; the read loop only handles pongs and the close frame.
func (m *Mux) getMatchIDWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

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

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		match := matchFromContext(r)
		log := m.logger.WithField("session", uuid.New().String()).
			WithField("match", match.ID).
			WithField("player", viewer)
		log.Debug("websocket connected")

		ctx, cancel := context.WithCancel(context.Background())
		defer func() {
			cancel()
			_ = conn.Close()
			log.Debug("websocket disconnected")
		}()

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		go m.webSocketReadLoop(conn, cancel, log)
		m.webSocketWriteLoop(ctx, conn, match, viewer, int(startAt), log)
	}
}

func (m *Mux) webSocketWriteLoop(ctx context.Context, conn *websocket.Conn, match *truco.Match, viewer int64, startAt int, log logrus.FieldLogger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	updates := make(chan []truco.Notification)
	go func() {
		defer close(updates)

		next := startAt
		for {
			notifications, err := match.WaitForNotifications(ctx, viewer, next, 0)
			if err != nil {
				return
			}

			select {
			case updates <- notifications:
				next = notifications[len(notifications)-1].ID + 1
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case notifications, ok := <-updates:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			for _, n := range notifications {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(n); err != nil {
					log.WithError(err).Error("could not write notification")
					return
				}
			}
		}
	}
}

func (m *Mux) webSocketReadLoop(conn *websocket.Conn, cancel context.CancelFunc, log logrus.FieldLogger) {
	defer cancel()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Error("could not read message")
			}

			return
		}
	}
}

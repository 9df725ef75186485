package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"moodfm/core/auth"
	"moodfm/logger"
	"moodfm/model"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
	// Slow consumers get dropped rather than blocking the publisher.
	wsStateBuffer = 16
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// PlayerStreamHandler streams playback state changes over a websocket. The
// token rides in a query parameter because browser websocket clients cannot
// set an Authorization header.
func (h *APIHandler) PlayerStreamHandler(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	claims, err := auth.ParseToken(h.cfg.JWTSecret, tokenString)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("[WS] upgrade failed",
			logger.Int64("userID", claims.UserID), logger.ErrorField(err))
		return
	}
	defer conn.Close()

	logger.Info("[WS] player stream opened", logger.Int64("userID", claims.UserID))

	states := make(chan model.PlayerState, wsStateBuffer)
	unsubscribe := h.session.Subscribe(func(state model.PlayerState) {
		select {
		case states <- state:
		default:
		}
	})
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case state := <-states:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(state); err != nil {
				logger.Debug("[WS] write failed, closing stream",
					logger.Int64("userID", claims.UserID), logger.ErrorField(err))
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			logger.Info("[WS] player stream closed", logger.Int64("userID", claims.UserID))
			return
		}
	}
}

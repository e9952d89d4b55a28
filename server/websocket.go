package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const pingPeriod = 30 * time.Second

// handleWebSocket streams monitor events to the client as JSON messages,
// one event per message, until the peer goes away.
func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Errorf("Error upgrading to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	clientID := uuid.NewString()
	events := s.monitor.Subscribe(clientID)
	defer s.monitor.Unsubscribe(clientID)

	log.Infof("event feed client %s connected", clientID)

	conn.SetCloseHandler(func(code int, text string) error {
		log.Infof("event feed client %s disconnected (code: %d, reason: %s)", clientID, code, text)
		return nil
	})

	// reader: discard anything the client sends, notice when it hangs up
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				log.WithError(err).Debugf("event feed client %s write failed", clientID)
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

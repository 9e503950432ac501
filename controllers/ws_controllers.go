package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sudipjangam/tasty-bite-pos/notifier"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// OutcomeStreamHandler -> websocket endpoint POS terminals subscribe to for
// semantic outcome events (promotion applied/invalid, settlement results,
// edit saves).
func OutcomeStreamHandler(hub *notifier.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		terminal := c.Query("terminal")
		if terminal == "" {
			terminal = "unknown"
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		hub.RegisterClient(ws, terminal)

		// Drain incoming frames until the peer goes away.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.UnregisterClient(ws)
	}
}

package notifier

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/sudipjangam/tasty-bite-pos/pos"
	"github.com/sudipjangam/tasty-bite-pos/utils"
)

// Hub fans pos.Outcome events out to connected POS terminals. Delivery is
// best-effort: a dead connection is skipped, not retried.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> terminal label
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]string),
	}
}

// RegisterClient adds a terminal connection to the broadcast set.
func (h *Hub) RegisterClient(conn *websocket.Conn, terminal string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = terminal
}

// UnregisterClient drops a connection and closes it.
func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// Notify implements pos.Notifier.
func (h *Hub) Notify(outcome pos.Outcome) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	data, err := json.Marshal(outcome)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling outcome: %v", err)
		return
	}

	for conn, terminal := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending outcome to terminal %s: %v", terminal, err)
			continue
		}
	}
}

// ClientCount reports connected terminals, mainly for tests and health info.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

// Message is what a feed pushes to its clients.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans messages out to every connected websocket client. A client that cannot keep
// up is disconnected.
type Hub struct {
	name    string
	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

func NewHub(name string) *Hub {
	return &Hub{name: name, clients: make(map[*wsClient]struct{})}
}

// Handler upgrades the request and keeps the connection until the client goes away.
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		client := &wsClient{conn: conn, send: make(chan []byte, sendBuffer)}
		h.add(client)
		go h.writePump(client)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.remove(client)
				break
			}
		}
	}
}

// Broadcast sends msg to every client.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		zap.S().Errorw("failed to encode feed message", "namespace", "ws", "feed", h.name, "error", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// Len is the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) add(client *wsClient) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(client *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
}

func (h *Hub) writePump(client *wsClient) {
	defer client.conn.Close()
	for data := range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(client)
			for range client.send {
			}
			return
		}
	}
	_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

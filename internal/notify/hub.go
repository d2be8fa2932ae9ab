package notify

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // public feed, any origin
}

// subscriber is one connected websocket client.
type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub is the registry of live subscribers for the broadcast sink.
// Register/unregister and broadcast are all safe to call concurrently;
// a subscriber dropping mid-broadcast never affects the others.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]bool
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[*subscriber]bool)}
}

func (h *Hub) register(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[s] = true
}

func (h *Hub) unregister(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[s] {
		delete(h.subscribers, s)
		close(s.send)
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Broadcast pushes one frame to every connected subscriber. Slow clients
// whose send buffer is full are skipped rather than blocking the rest.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subscribers {
		select {
		case s.send <- data:
		default:
		}
	}
}

// HandleWebSocket upgrades GET /ws and keeps the connection registered
// until the client goes away.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	s := &subscriber{conn: conn, send: make(chan []byte, 64)}
	h.register(s)

	go h.writePump(s)
	h.readPump(s) // blocks until disconnect
}

func (h *Hub) readPump(s *subscriber) {
	defer func() {
		h.unregister(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// The feed is push-only; inbound frames are drained and dropped.
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

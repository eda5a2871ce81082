package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"status-dashboard/internal/logs"
	"status-dashboard/internal/metrics"
	"status-dashboard/internal/view"
)

var upgrader = websocket.Upgrader{
	// Allow all origins
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub pushes every dashboard frame to connected browsers.
type Hub struct {
	board   ViewSource
	logger  *logs.Logger
	metrics *metrics.Registry

	clients   map[*websocket.Conn]bool
	clientsMu sync.RWMutex
	broadcast chan []byte
}

func NewHub(board ViewSource, logger *logs.Logger, reg *metrics.Registry) *Hub {
	return &Hub{
		board:     board,
		logger:    logger,
		metrics:   reg,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 64),
	}
}

// Publish queues d for every client. It never blocks, so it is safe as a
// board.Store subscriber; frames are dropped when the queue is full.
func (h *Hub) Publish(d view.Dashboard) {
	data, err := json.Marshal(d)
	if err != nil {
		h.logger.Errorf("stream: encode view: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Debug("stream: queue full, frame dropped")
	}
}

// Run delivers queued frames until ctx is done, then closes all clients.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case msg := <-h.broadcast:
			h.send(msg)
		}
	}
}

// Clients is the number of connected browsers.
func (h *Hub) Clients() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) send(msg []byte) {
	var dead []*websocket.Conn

	h.clientsMu.RLock()
	for c := range h.clients {
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			dead = append(dead, c)
		}
	}
	h.clientsMu.RUnlock()

	for _, c := range dead {
		h.drop(c)
	}
}

// ServeHTTP upgrades to a websocket, sends the current view and then
// streams updates until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnf("stream: upgrade failed: %v", err)
		return
	}

	data, err := json.Marshal(h.board.Current())
	if err != nil {
		h.logger.Errorf("stream: encode view: %v", err)
		_ = conn.Close()
		return
	}

	// Registering under the write lock keeps the first frame ahead of any
	// broadcast.
	h.clientsMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	if err == nil {
		h.clients[conn] = true
	}
	h.clientsMu.Unlock()
	if err != nil {
		_ = conn.Close()
		return
	}
	h.metrics.Inc(metrics.StreamClients)
	h.logger.Debugf("stream: client connected from %s", r.RemoteAddr)

	// Browsers only listen; reading detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(conn)
}

func (h *Hub) drop(c *websocket.Conn) {
	h.clientsMu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.clientsMu.Unlock()

	if ok {
		_ = c.Close()
		h.metrics.Dec(metrics.StreamClients)
		h.logger.Debug("stream: client disconnected")
	}
}

func (h *Hub) closeAll() {
	h.clientsMu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.clientsMu.RUnlock()

	for _, c := range conns {
		h.drop(c)
	}
}

// Package wsbus broadcasts tokenize results to connected WebSocket clients,
// feeding both GET /v1/stream subscribers and the file-watch rescan loop.
package wsbus

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Hub tracks connected clients and fans out broadcast messages to all of
// them.
type Hub struct {
	clientsMu sync.RWMutex
	clients   map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a Hub bound to ctx; Run must be called to start its loop.
func NewHub(ctx context.Context, logger *zap.Logger) *Hub {
	hubCtx, cancel := context.WithCancel(ctx)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
		logger:     logger,
		ctx:        hubCtx,
		cancel:     cancel,
	}
}

// Run drives the hub's event loop until its context is canceled.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.clientsMu.Lock()
			for c := range h.clients {
				close(c.send)
			}
			h.clients = make(map[*Client]bool)
			h.clientsMu.Unlock()
			return

		case c := <-h.register:
			h.clientsMu.Lock()
			h.clients[c] = true
			h.clientsMu.Unlock()
			h.logger.Debug("client registered", zap.String("client_id", c.ID), zap.Int("total", len(h.clients)))

		case c := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.clientsMu.Unlock()

		case msg := <-h.broadcast:
			h.clientsMu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.logger.Warn("dropping slow client", zap.String("client_id", c.ID))
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// Broadcast pushes msg to every connected client's send queue.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	case <-h.ctx.Done():
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Shutdown stops the hub's loop and disconnects every client.
func (h *Hub) Shutdown() {
	h.cancel()
}

// ClientCount reports the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Package ws carries the live activity feed. The hub is broadcast only:
// clients subscribe and receive activity entries as they are recorded.
package ws

import (
	"sync"

	"github.com/rs/zerolog"
)

// Hub maintains the set of connected feed clients and fans payloads out to
// them
type Hub struct {
	clients map[*Client]bool

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run starts the hub loop, handling registrations and broadcasts
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case payload := <-h.broadcast:
			h.broadcastPayload(payload)
		}
	}
}

// Broadcast queues a payload for delivery to every connected client. Safe to
// call from any goroutine; drops the payload when the hub is saturated
// rather than blocking the caller.
func (h *Hub) Broadcast(payload []byte) {
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn().Msg("Activity feed saturated, dropping payload")
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.Info().
		Str("addr", client.conn.RemoteAddr().String()).
		Int("clients", len(h.clients)).
		Msg("Feed client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.logger.Info().
			Int("clients", len(h.clients)).
			Msg("Feed client unregistered")
	}
}

func (h *Hub) broadcastPayload(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Slow client, skip this payload for it
			h.logger.Debug().
				Str("addr", client.conn.RemoteAddr().String()).
				Msg("Feed client send buffer full")
		}
	}
}

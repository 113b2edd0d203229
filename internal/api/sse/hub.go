package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mfreeman/sketchdash/internal/model"
)

// Hub manages the SSE clients connected to a single session's room
type Hub struct {
	pin     model.Pin
	clients map[*Client]bool
	byConn  map[string]*Client
	mu      sync.RWMutex
	logger  *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a new Hub for a session
func NewHub(pin model.Pin, logger *slog.Logger) *Hub {
	return &Hub{
		pin:        pin,
		clients:    make(map[*Client]bool),
		byConn:     make(map[string]*Client),
		logger:     logger.With(slog.String("pin", string(pin))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("sse hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.byConn[client.connID] = client
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client registered",
				slog.String("conn_id", client.connID),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				delete(h.byConn, client.connID)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				duration := time.Since(client.connectedAt)
				h.logger.Info("sse client unregistered",
					slog.String("conn_id", client.connID),
					slog.Duration("connection_duration", duration),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.logger.Warn("sse message dropped - client buffer full",
						slog.String("conn_id", client.connID))
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
				delete(h.byConn, client.connID)
			}
			h.mu.Unlock()
			h.logger.Info("sse hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends a message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped - hub buffer full")
	}
}

// BroadcastEvent sends an SSE event with a name and data to all clients
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.Broadcast(formatSSEMessage(eventName, data))
}

// SendEvent delivers an SSE event to the single client with the given
// connection ID. Reports whether the client was found.
//
// The read lock is held across the send: Run only closes client channels
// under the write lock, so a concurrent disconnect cannot close the
// channel mid-send.
func (h *Hub) SendEvent(connID, eventName, data string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.byConn[connID]
	if !ok {
		return false
	}

	select {
	case client.send <- formatSSEMessage(eventName, data):
	default:
		h.logger.Warn("sse unicast dropped - client buffer full",
			slog.String("conn_id", connID))
	}
	return true
}

// Close shuts down the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message with event name and data.
// Multi-line data gets a "data: " prefix on each line.
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(eventName)
	b.WriteByte('\n')
	for _, line := range strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// HubManager manages hubs for all sessions
type HubManager struct {
	hubs   map[model.Pin]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.Pin]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a session, creating one if it doesn't exist
func (m *HubManager) GetOrCreateHub(pin model.Pin) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[pin]; ok {
		return hub
	}

	hub := NewHub(pin, m.logger)
	m.hubs[pin] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a session, or nil if it doesn't exist
func (m *HubManager) GetHub(pin model.Pin) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[pin]
}

// RemoveHub removes and closes a hub
func (m *HubManager) RemoveHub(pin model.Pin) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[pin]; ok {
		hub.Close()
		delete(m.hubs, pin)
		m.logger.Info("sse hub removed", slog.String("pin", string(pin)))
	}
}

// SendToConn delivers an event to a connection in any hub.
// Reports whether the connection was found.
func (m *HubManager) SendToConn(connID, eventName, data string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, hub := range m.hubs {
		if hub.SendEvent(connID, eventName, data) {
			return true
		}
	}
	return false
}

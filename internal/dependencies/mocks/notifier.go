package mocks

import (
	"sync"

	"github.com/mfreeman/sketchdash/internal/model"
	"github.com/mfreeman/sketchdash/internal/notify"
)

// SentEvent records one delivery through the MockNotifier
type SentEvent struct {
	Pin     model.Pin // Empty for unicasts
	ConnID  string    // Empty for broadcasts
	Event   model.EventType
	Payload any
}

// MockNotifier records all events for inspection in tests
type MockNotifier struct {
	mu           sync.Mutex
	Broadcasts   []SentEvent
	Unicasts     []SentEvent
	Disconnected []model.Pin
}

// Ensure MockNotifier implements Notifier
var _ notify.Notifier = (*MockNotifier)(nil)

// NewMockNotifier creates a new MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Broadcast records a room-wide event
func (n *MockNotifier) Broadcast(pin model.Pin, event model.EventType, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Broadcasts = append(n.Broadcasts, SentEvent{Pin: pin, Event: event, Payload: payload})
}

// Unicast records a single-connection event
func (n *MockNotifier) Unicast(connID string, event model.EventType, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Unicasts = append(n.Unicasts, SentEvent{ConnID: connID, Event: event, Payload: payload})
}

// DisconnectRoom records a forced room disconnection
func (n *MockNotifier) DisconnectRoom(pin model.Pin, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Disconnected = append(n.Disconnected, pin)
}

// BroadcastsOf returns all recorded broadcasts of the given event type
func (n *MockNotifier) BroadcastsOf(event model.EventType) []SentEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []SentEvent
	for _, e := range n.Broadcasts {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// UnicastsOf returns all recorded unicasts of the given event type
func (n *MockNotifier) UnicastsOf(event model.EventType) []SentEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []SentEvent
	for _, e := range n.Unicasts {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears all recorded events
func (n *MockNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Broadcasts = nil
	n.Unicasts = nil
	n.Disconnected = nil
}

// Package notify defines the narrow outbound contract between the game
// core and whatever real-time transport is wired in front of it. The
// core treats delivery as fire-and-forget: it never waits for, or acts
// on, acknowledgement from clients.
package notify

import "github.com/mfreeman/sketchdash/internal/model"

// Notifier delivers events to connected clients
type Notifier interface {
	// Broadcast sends an event to every connection in the session's room
	Broadcast(pin model.Pin, event model.EventType, payload any)

	// Unicast sends an event to a single connection
	Unicast(connID string, event model.EventType, payload any)

	// DisconnectRoom forcibly drops every remaining connection in the
	// session's room, after delivering a final forceDisconnect event
	DisconnectRoom(pin model.Pin, reason string)
}

// NopNotifier discards all events. Used when no transport is attached.
type NopNotifier struct{}

var _ Notifier = (*NopNotifier)(nil)

func (NopNotifier) Broadcast(model.Pin, model.EventType, any) {}
func (NopNotifier) Unicast(string, model.EventType, any)      {}
func (NopNotifier) DisconnectRoom(model.Pin, string)          {}

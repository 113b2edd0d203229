package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mfreeman/sketchdash/internal/model"
)

// Notifier delivers game events to connected clients over SSE hubs.
// It implements notify.Notifier.
type Notifier struct {
	manager *HubManager
	logger  *slog.Logger
}

// NewNotifier creates an SSE-backed notifier on top of a hub manager
func NewNotifier(manager *HubManager, logger *slog.Logger) *Notifier {
	return &Notifier{
		manager: manager,
		logger:  logger.With(slog.String("component", "notifier")),
	}
}

// Broadcast sends an event to every client in a session's room
func (n *Notifier) Broadcast(pin model.Pin, event model.EventType, payload any) {
	hub := n.manager.GetHub(pin)
	if hub == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		n.logger.Error("failed to marshal event payload",
			slog.String("pin", string(pin)),
			slog.String("event", string(event)),
			slog.String("error", err.Error()))
		return
	}

	hub.BroadcastEvent(string(event), string(data))
}

// Unicast sends an event to a single connection
func (n *Notifier) Unicast(connID string, event model.EventType, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		n.logger.Error("failed to marshal event payload",
			slog.String("conn_id", connID),
			slog.String("event", string(event)),
			slog.String("error", err.Error()))
		return
	}

	if !n.manager.SendToConn(connID, string(event), string(data)) {
		n.logger.Debug("unicast target not connected", slog.String("conn_id", connID))
	}
}

// DisconnectRoom tells every client in a session's room to disconnect
// and tears down the room's hub
func (n *Notifier) DisconnectRoom(pin model.Pin, reason string) {
	hub := n.manager.GetHub(pin)
	if hub == nil {
		return
	}

	data, err := json.Marshal(model.ForceDisconnectPayload{Reason: reason})
	if err == nil {
		hub.BroadcastEvent(string(model.EventForceDisconnect), string(data))
	}
	n.manager.RemoveHub(pin)
}

package sse

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Client represents a single SSE connection to a session's room
type Client struct {
	connID      string
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client for the given connection ID
func NewClient(connID string) *Client {
	return &Client{
		connID:      connID,
		send:        make(chan []byte, 64),
		connectedAt: time.Now(),
	}
}

// ConnID returns the client's connection ID
func (c *Client) ConnID() string {
	return c.connID
}

// ServeSSE handles an SSE connection for a client, streaming events from
// the hub until the client disconnects or the hub shuts down.
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, client *Client, logger *slog.Logger) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	hub.Register(client)
	defer hub.Unregister(client)

	// Initial event confirming the connection and carrying the
	// connection ID the client must echo on subsequent requests
	fmt.Fprintf(w, "event: connected\ndata: {\"connId\": %q}\n\n", client.connID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	ctx := r.Context()
	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				// Hub closed the channel
				return
			}
			if _, err := w.Write(message); err != nil {
				logger.Debug("sse write failed",
					slog.String("conn_id", client.connID),
					slog.String("error", err.Error()))
				return
			}
			flusher.Flush()

		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-ctx.Done():
			return
		}
	}
}

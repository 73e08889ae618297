// Package progress is the per-user push channel for algorithm run events.
// The channel is advisory: runs never block on a consumer being present,
// and a failed send tears the stream down rather than failing the run.
package progress

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Server-to-client envelope types.
const (
	TypeProgress    = "algorithm_progress"
	TypeComplete    = "algorithm_complete"
	TypeError       = "algorithm_error"
	TypePong        = "pong"
	TypeSubscribed  = "subscription_confirmed"
	TypeProtocolErr = "error"
)

// Client-to-server frame types.
const (
	framePing      = "ping"
	frameProgress  = "get_progress"
	frameSubscribe = "subscribe_algorithm"
)

// Envelope is the JSON frame shape in both directions. Data carries the
// payload of progress and completion frames; Message carries error text.
type Envelope struct {
	Type    string `json:"type"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Hub tracks one stream and one last-known progress frame per user.
type Hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu        sync.Mutex
	streams   map[string]*websocket.Conn
	lastFrame map[string]Envelope
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		streams:   make(map[string]*websocket.Conn),
		lastFrame: make(map[string]Envelope),
	}
}

// ServeHTTP upgrades the connection and runs the read loop. The user is
// identified by the user_id query parameter.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	h.register(userID, conn)
	defer h.teardown(userID, conn)

	for {
		var frame Envelope
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		h.handleFrame(userID, frame)
	}
}

func (h *Hub) handleFrame(userID string, frame Envelope) {
	switch frame.Type {
	case framePing:
		h.Send(userID, Envelope{Type: TypePong})
	case frameProgress:
		h.mu.Lock()
		last, ok := h.lastFrame[userID]
		h.mu.Unlock()
		if !ok {
			last = Envelope{Type: TypeProgress, Data: map[string]any{"status": "idle"}}
		}
		h.Send(userID, last)
	case frameSubscribe:
		h.Send(userID, Envelope{Type: TypeSubscribed})
	default:
		h.Send(userID, Envelope{Type: TypeProtocolErr, Message: "unknown frame type"})
	}
}

// Send delivers one envelope to the user's stream, if any. Progress
// frames are remembered as the user's last-known frame either way. A
// write failure closes the stream and forgets the user.
func (h *Hub) Send(userID string, env Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if env.Type == TypeProgress {
		h.lastFrame[userID] = env
	}

	conn, ok := h.streams[userID]
	if !ok {
		return
	}
	if err := conn.WriteJSON(env); err != nil {
		h.log.Warn("progress send failed, dropping stream", "user_id", userID, "error", err)
		conn.Close()
		delete(h.streams, userID)
	}
}

func (h *Hub) register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.streams[userID]; ok {
		old.Close()
	}
	h.streams[userID] = conn
	h.log.Debug("progress stream opened", "user_id", userID)
}

func (h *Hub) teardown(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.streams[userID]; ok && current == conn {
		delete(h.streams, userID)
	}
	conn.Close()
	h.log.Debug("progress stream closed", "user_id", userID)
}

// Connected reports whether the user currently has an open stream.
func (h *Hub) Connected(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.streams[userID]
	return ok
}

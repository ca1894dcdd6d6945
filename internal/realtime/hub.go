package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Client represents a single websocket client connection.
// The network conn itself is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Action names a change to a collection.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
	// ActionAssigned goes only to the user a task was handed to.
	ActionAssigned Action = "assigned"
)

// Event tells connected clients that an entity changed.
type Event struct {
	Type       Action    `json:"type"`
	Collection string    `json:"collection"`
	EntityID   string    `json:"entityId"`
	ActorID    string    `json:"actorId,omitempty"`
	At         time.Time `json:"at"`
}

// Hub maintains active user connections and broadcasts events to them.
type Hub struct {
	log *zap.Logger

	mu              sync.RWMutex
	userIDToClients map[string]map[Client]struct{}
}

// NewHub returns an empty hub.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		log:             log,
		userIDToClients: make(map[string]map[Client]struct{}),
	}
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIDToClients[userID]; !ok {
		h.userIDToClients[userID] = make(map[Client]struct{})
	}
	h.userIDToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if user has no more clients, cleans up map.
func (h *Hub) Unregister(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIDToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIDToClients, userID)
		}
	}
}

// Connections returns the number of registered clients.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.userIDToClients {
		n += len(clients)
	}
	return n
}

// Broadcast sends a message to all clients of a user.
func (h *Hub) Broadcast(userID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.userIDToClients[userID] {
		if !c.Send(message) {
			h.log.Debug("websocket send failed", zap.String("user_id", userID))
		}
	}
}

// Notify sends ev to the clients of one user.
func (h *Hub) Notify(userID string, ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("failed to encode realtime event", zap.Error(err))
		return
	}
	h.Broadcast(userID, msg)
}

// Publish sends ev to every connected client. The workspace is shared, so
// every user sees every change.
func (h *Hub) Publish(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("failed to encode realtime event", zap.Error(err))
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for userID, clients := range h.userIDToClients {
		for c := range clients {
			if !c.Send(msg) {
				h.log.Debug("websocket send failed", zap.String("user_id", userID))
			}
		}
	}
}

// Package websocket pushes plan-change events to connected UIs so they can
// recompute their views without polling. The feed is one-way: clients only
// listen.
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event is one plan-change notification.
type Event struct {
	// Type of mutation: "plan", "add_variable", "remove", "toggle", "clear", "import"
	Type string `json:"type"`

	// Course the mutation touched, empty for bulk operations
	CourseID string `json:"courseId,omitempty"`

	// Selection the mutation touched, when one was addressed
	SelectionID string `json:"selectionId,omitempty"`

	// Timestamp when the mutation happened
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts events to them.
type Hub struct {
	clients map[*Client]bool

	broadcast  chan Event
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new event hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run processes register, unregister and broadcast requests. Call in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug().Int("clients", h.clientCount()).Msg("WebSocket client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug().Int("clients", h.clientCount()).Msg("WebSocket client unregistered")

		case event := <-h.broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Error().Err(err).Msg("Failed to encode plan event")
				continue
			}

			var slow []*Client
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()

			// Slow consumers are dropped rather than blocking the feed
			if len(slow) > 0 {
				h.mu.Lock()
				for _, client := range slow {
					if _, ok := h.clients[client]; ok {
						delete(h.clients, client)
						close(client.send)
					}
				}
				h.mu.Unlock()
			}
		}
	}
}

// PublishPlanEvent queues a plan-change event for broadcast.
func (h *Hub) PublishPlanEvent(eventType, courseID, selectionID string) {
	event := Event{
		Type:        eventType,
		CourseID:    courseID,
		SelectionID: selectionID,
		Timestamp:   time.Now(),
	}

	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().Str("type", eventType).Msg("Plan event dropped, broadcast queue full")
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

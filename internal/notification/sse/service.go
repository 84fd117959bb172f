// Package sse provides Server-Sent Events support for real-time updates.
// Clients use the events as refresh hints; the API remains authoritative.
package sse

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lostfound_backend/platform/logger"
)

// EventType represents different types of SSE events.
type EventType string

const (
	EventInquiryStatusChanged EventType = "inquiry_status_changed"
	EventMatchingCompleted    EventType = "matching_completed"
	EventReviewQueueChanged   EventType = "review_queue_changed"
)

// Event represents an SSE event payload.
type Event struct {
	Type      EventType   `json:"type"`
	InquiryID uuid.UUID   `json:"inquiryId,omitempty"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// client represents a connected SSE client.
type client struct {
	userID uuid.UUID
	staff  bool
	events chan Event
}

// Service manages SSE connections and event delivery.
type Service struct {
	mu      sync.RWMutex
	clients map[uuid.UUID][]*client // userID -> clients
	log     *logger.Logger
}

// New creates a new SSE service.
func New(log *logger.Logger) *Service {
	return &Service{
		clients: make(map[uuid.UUID][]*client),
		log:     log,
	}
}

func (s *Service) addClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.userID] = append(s.clients[c.userID], c)
}

func (s *Service) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := s.clients[c.userID]
	for i, cl := range clients {
		if cl == c {
			s.clients[c.userID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(s.clients[c.userID]) == 0 {
		delete(s.clients, c.userID)
	}
}

// Publish sends an event to a specific user's connections. Connections with a
// full buffer miss the event; they catch up on their next poll.
func (s *Service) Publish(userID uuid.UUID, event Event) {
	s.mu.RLock()
	clients := s.clients[userID]
	s.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.events <- event:
		default:
			s.log.Warn("sse buffer full", "user_id", userID.String())
		}
	}
}

// PublishToStaff broadcasts an event to every connected staff client.
func (s *Service) PublishToStaff(event Event) {
	s.mu.RLock()
	var staff []*client
	for _, clients := range s.clients {
		for _, c := range clients {
			if c.staff {
				staff = append(staff, c)
			}
		}
	}
	s.mu.RUnlock()

	for _, c := range staff {
		select {
		case c.events <- event:
		default:
			s.log.Warn("sse buffer full", "user_id", c.userID.String())
		}
	}
}

// ClientCount returns how many connections a user currently holds.
func (s *Service) ClientCount(userID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients[userID])
}

// Handler returns a Gin handler for SSE connections.
func (s *Service) Handler(getClient func(*gin.Context) (uuid.UUID, bool, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, staff, ok := getClient(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		cl := &client{
			userID: userID,
			staff:  staff,
			events: make(chan Event, 32),
		}
		s.addClient(cl)
		defer s.removeClient(cl)

		c.SSEvent("connected", gin.H{"userId": userID})
		c.Writer.Flush()

		clientGone := c.Request.Context().Done()
		for {
			select {
			case <-clientGone:
				return
			case event := <-cl.events:
				data, _ := json.Marshal(event)
				c.SSEvent(string(event.Type), string(data))
				c.Writer.Flush()
			}
		}
	}
}

// Close drops all connections. The event channels are never closed so a
// publish racing a disconnect cannot panic; handlers exit through their
// request contexts instead.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = make(map[uuid.UUID][]*client)
}

// Package sse provides Server-Sent Events support for real-time dashboard
// updates.
package sse

import (
	"encoding/json"
	"net/http"
	"sync"

	"nexus_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventType identifies the kind of change an SSE event describes. The
// dashboard uses these to invalidate the matching list views.
type EventType string

const (
	EventQuoteRequestsChanged  EventType = "quote_requests_changed"
	EventCallBookingsChanged   EventType = "call_bookings_changed"
	EventClientStatusesChanged EventType = "client_statuses_changed"
	EventInvoicesChanged       EventType = "invoices_changed"
	EventProjectsChanged       EventType = "projects_changed"
	EventOpportunitiesChanged  EventType = "opportunities_changed"
	EventQuotesChanged         EventType = "quotes_changed"
	EventCommissionsChanged    EventType = "commissions_changed"
)

// Event is an SSE event payload.
type Event struct {
	Type    EventType   `json:"type"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// client represents a connected SSE client.
type client struct {
	userID uuid.UUID
	roles  []string
	events chan Event
}

func (c *client) hasRole(role string) bool {
	for _, r := range c.roles {
		if r == role {
			return true
		}
	}
	return false
}

// Service manages SSE connections and event broadcasting.
type Service struct {
	log *logger.Logger

	mu      sync.RWMutex
	clients map[uuid.UUID][]*client // userID -> connections
}

// New creates a new SSE service.
func New(log *logger.Logger) *Service {
	return &Service{
		log:     log,
		clients: make(map[uuid.UUID][]*client),
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

	close(c.events)
}

// Publish sends an event to every connection of a specific user.
func (s *Service) Publish(userID uuid.UUID, event Event) {
	s.mu.RLock()
	clients := s.clients[userID]
	s.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.events <- event:
		default:
			s.log.Warn("sse event buffer full", "userId", userID)
		}
	}
}

// PublishToRole broadcasts an event to every connected user holding a role.
func (s *Service) PublishToRole(role string, event Event) {
	s.mu.RLock()
	var targets []*client
	for _, clients := range s.clients {
		for _, c := range clients {
			if c.hasRole(role) {
				targets = append(targets, c)
			}
		}
	}
	s.mu.RUnlock()

	for _, c := range targets {
		select {
		case c.events <- event:
		default:
			s.log.Warn("sse event buffer full", "userId", c.userID)
		}
	}
}

// Handler returns a Gin handler that upgrades the request to an SSE stream.
func (s *Service) Handler(getIdentity func(*gin.Context) (uuid.UUID, []string, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, roles, ok := getIdentity(c)
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
			roles:  roles,
			events: make(chan Event, 32),
		}
		s.addClient(cl)
		defer s.removeClient(cl)

		c.SSEvent("connected", gin.H{"userId": userID})
		c.Writer.Flush()

		s.log.Info("sse client connected", "userId", userID)

		clientGone := c.Request.Context().Done()
		for {
			select {
			case <-clientGone:
				s.log.Info("sse client disconnected", "userId", userID)
				return
			case event, ok := <-cl.events:
				if !ok {
					return
				}
				data, _ := json.Marshal(event)
				c.SSEvent(string(event.Type), string(data))
				c.Writer.Flush()
			}
		}
	}
}

// Close shuts down all active connections.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, clients := range s.clients {
		for _, c := range clients {
			close(c.events)
		}
	}
	s.clients = make(map[uuid.UUID][]*client)
}

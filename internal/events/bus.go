// Package events re-exports the platform event bus for convenience.
// Internal modules import events from here while the infrastructure
// lives in platform/events.
package events

import (
	platformevents "nexus_backend/platform/events"
	"nexus_backend/platform/logger"
)

// InMemoryBus is a type alias to the platform InMemoryBus.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

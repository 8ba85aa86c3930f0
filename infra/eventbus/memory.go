// Package eventbus provides the in-memory event bus used to fan out domain
// events to notification handlers.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/common"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/eventbus"
)

// MemoryEventBus is a simple in-memory implementation of the Bus interface.
type MemoryEventBus struct {
	handlers  map[string][]eventbus.HandlerFunc
	mu        sync.RWMutex
	logger    *slog.Logger
	published []common.Event
}

// NewWithMemory creates a new in-memory event bus.
func NewWithMemory(logger *slog.Logger) *MemoryEventBus {
	return &MemoryEventBus{
		handlers:  make(map[string][]eventbus.HandlerFunc),
		logger:    logger.With("bus", "memory"),
		published: make([]common.Event, 0),
	}
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to all registered handlers for its type.
// Handler errors are logged, not propagated; a failed notification must not
// fail the write that triggered it.
func (b *MemoryEventBus) Emit(ctx context.Context, event common.Event) error {
	eventType := event.Type()
	b.mu.RLock()
	handlers := b.handlers[eventType]
	b.mu.RUnlock()

	b.mu.Lock()
	b.published = append(b.published, event)
	b.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("event handler failed",
				"event_type", eventType,
				"error", err)
		}
	}
	return nil
}

// Published returns the list of emitted events. Useful in tests.
func (b *MemoryEventBus) Published() []common.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.published
}

// ClearPublished clears the list of emitted events. Useful in tests.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = make([]common.Event, 0)
}

var _ eventbus.Bus = (*MemoryEventBus)(nil)

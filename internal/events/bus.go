package events

import (
	"sync"

	"github.com/rubenaguilar/fantasy-trends/internal/telemetry"
)

// Handler processes an event. Returning an error logs it but does not stop
// dispatch to the remaining handlers.
type Handler func(Event) error

// Bus is a synchronous in-process event bus. Subscribers run in registration
// order on the publisher's goroutine; handlers that need async processing
// hand off to their own goroutine. With one publisher (the trend store) and
// cheap handlers this keeps event ordering trivial.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	all      []Handler
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(eventType EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// SubscribeAll registers a handler for every event type. Wildcard handlers
// run after the type-specific ones.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Publish dispatches an event to all handlers registered for its type, then
// to the wildcard handlers.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := b.handlers[e.Type]
	all := b.all
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(e); err != nil {
			telemetry.Warnf("events: %s handler: %v", e.Type, err)
		}
	}
	for _, h := range all {
		if err := h(e); err != nil {
			telemetry.Warnf("events: %s handler: %v", e.Type, err)
		}
	}
}

package event

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
)

// allEvents is the subscription key for handlers that declare no event
// types and therefore receive every published event.
const allEvents = "*"

// InMemoryEventBus delivers domain events to subscribed handlers in
// process. Orders publish order.created and order.status_changed through
// it; the notifier consumes them. Delivery is synchronous and
// best-effort: a failing or panicking handler is logged and never fails
// the publisher.
type InMemoryEventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]shared.EventHandler
	logger      *zap.Logger
}

// NewInMemoryEventBus creates an in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make(map[string][]shared.EventHandler),
		logger:      logger,
	}
}

// Subscribe registers a handler for the given event types. With no types
// given the handler's own EventTypes decide; a handler declaring none
// receives all events.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	if len(eventTypes) == 0 {
		eventTypes = []string{allEvents}
	}

	b.mu.Lock()
	for _, eventType := range eventTypes {
		b.subscribers[eventType] = append(b.subscribers[eventType], handler)
	}
	b.mu.Unlock()

	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler from every event type
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.mu.Lock()
	for eventType, handlers := range b.subscribers {
		kept := handlers[:0]
		for _, h := range handlers {
			if h != handler {
				kept = append(kept, h)
			}
		}
		if len(kept) == 0 {
			delete(b.subscribers, eventType)
			continue
		}
		b.subscribers[eventType] = kept
	}
	b.mu.Unlock()

	b.logger.Debug("handler unsubscribed")
}

// Publish delivers each event to its type's subscribers and to the
// catch-all subscribers. It always returns nil; handler errors are
// logged, not propagated, so order commitment never waits on or fails
// with notification.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, evt := range events {
		for _, handler := range b.recipients(evt.EventType()) {
			if err := b.deliver(ctx, handler, evt); err != nil {
				b.logger.Error("event handler failed",
					zap.String("event_type", evt.EventType()),
					zap.String("event_id", evt.EventID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Start marks the bus ready. The in-memory bus has no background
// machinery to spin up.
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.logger.Info("event bus started")
	return nil
}

// Stop shuts the bus down. Delivery is synchronous so there is nothing
// in flight to drain.
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.logger.Info("event bus stopped")
	return nil
}

// recipients snapshots the handler set for an event type so delivery
// runs outside the lock
func (b *InMemoryEventBus) recipients(eventType string) []shared.EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	typed := b.subscribers[eventType]
	catchAll := b.subscribers[allEvents]
	out := make([]shared.EventHandler, 0, len(typed)+len(catchAll))
	out = append(out, typed...)
	return append(out, catchAll...)
}

func (b *InMemoryEventBus) deliver(ctx context.Context, handler shared.EventHandler, evt shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", evt.EventType()),
				zap.Any("panic", r),
			)
		}
	}()

	return handler.Handle(ctx, evt)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/femcoders/pettrack/internal/events"
)

// publish stamps and emits a domain event. A nil dispatcher is a no-op so
// services stay usable in tests without event plumbing.
func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}

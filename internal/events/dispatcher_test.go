package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventPetCreated, func(_ context.Context, e Event) error {
		got = append(got, string(e.Type))
		return nil
	})
	d.Subscribe(EventPetDeleted, func(_ context.Context, e Event) error {
		got = append(got, string(e.Type))
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventPetCreated}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 1 || got[0] != string(EventPetCreated) {
		t.Errorf("delivered = %v", got)
	}

	// no subscribers for this type
	if err := d.Publish(context.Background(), Event{Type: EventUserUpdated}); err != nil {
		t.Fatalf("Publish without subscribers: %v", err)
	}
}

func TestDispatcherContinuesPastHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventUserDeleted, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventUserDeleted, func(context.Context, Event) error {
		reached = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventUserDeleted}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !reached {
		t.Error("second handler was not invoked after the first failed")
	}
}

package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventServiceAssigned, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})
	dispatcher.Subscribe(EventServiceCompleted, func(_ context.Context, event Event) error {
		t.Errorf("completed handler fired for %s", event.Type)
		return nil
	})

	event := Event{ID: "evt-1", Type: EventServiceAssigned, SubjectID: "service-1"}
	if err := dispatcher.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(received) != 1 || received[0].ID != "evt-1" {
		t.Errorf("received = %+v, want the published event once", received)
	}
}

func TestDispatcherContinuesPastFailingHandler(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	dispatcher.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		return errors.New("handler failure")
	})
	var secondRan bool
	dispatcher.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		secondRan = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !secondRan {
		t.Error("a failing handler must not block later handlers")
	}
}

func TestDispatcherWithoutSubscribersIsNoop(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	if err := dispatcher.Publish(context.Background(), Event{Type: EventServiceCreated}); err != nil {
		t.Fatalf("Publish without subscribers: %v", err)
	}
}

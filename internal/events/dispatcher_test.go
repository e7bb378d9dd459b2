package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)

	var got []Event
	d.Subscribe(EventShiftCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return errors.New("first handler fails")
	})
	d.Subscribe(EventShiftCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventBroadcastSent, func(_ context.Context, e Event) error {
		t.Fatal("unrelated handler invoked")
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventShiftCreated, ResourceID: "s-1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both handlers to run, got %d", len(got))
	}
	if got[0].ID == "" || got[0].Timestamp.IsZero() {
		t.Error("event should be stamped with id and timestamp")
	}
}

package bus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("store.", 10)
	defer unsub()

	b.Publish(Event{Kind: KindChatsUpdated, Timestamp: time.Now(), Payload: "test"})

	select {
	case evt := <-ch:
		if evt.Kind != KindChatsUpdated {
			t.Errorf("got kind %q, want %q", evt.Kind, KindChatsUpdated)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestNamespaceFiltering(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("store.status", 10)
	defer unsub()

	b.Publish(Event{Kind: KindChatsUpdated})
	b.Publish(Event{Kind: KindStatusUpdated})

	select {
	case evt := <-ch:
		if evt.Kind != KindStatusUpdated {
			t.Errorf("got kind %q, want %q", evt.Kind, KindStatusUpdated)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	// Ensure the chats event was filtered out.
	select {
	case evt := <-ch:
		t.Errorf("unexpected event: %v", evt)
	case <-time.After(50 * time.Millisecond):
		// Expected: no more events.
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("store.", 10)
	unsub()
	unsub() // idempotent

	b.Publish(Event{Kind: KindChatsUpdated})

	select {
	case evt := <-ch:
		t.Errorf("received event after unsubscribe: %v", evt)
	case <-time.After(50 * time.Millisecond):
		// Expected.
	}
}

func TestDropOnFullBuffer(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("store.", 1)
	defer unsub()

	// Fill buffer; the second publish is coalesced away.
	b.Publish(Event{Kind: KindMessageAppended})
	b.Publish(Event{Kind: KindStatusUpdated})

	evt := <-ch
	if evt.Kind != KindMessageAppended {
		t.Errorf("got %q, want %q", evt.Kind, KindMessageAppended)
	}
	select {
	case evt := <-ch:
		t.Errorf("unexpected second event: %v", evt)
	default:
	}
}

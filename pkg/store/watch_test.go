package store

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestNoteStoreWatchSeesOtherWriters(t *testing.T) {
	defer goleak.VerifyNone(t)

	base := t.TempDir()
	reader, err := Load(StaticConfig{Path: base})
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	writer, err := Load(StaticConfig{Path: base})
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := NewNotes(reader).Watch(ctx)
	if err != nil {
		cancel()
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	NewNotes(writer).Create("Slept", "fine", nil, nil)

	select {
	case evt := <-ch:
		if evt.Type != EventExternal {
			t.Fatalf("expected external event, got %v", evt.Type)
		}
	case <-time.After(2 * time.Second):
		cancel()
		t.Fatal("timed out waiting for change event")
	}

	cancel()
	for range ch {
		// drain until the watcher closes the channel
	}
}

func TestNoteStoreWatchRequiresDiskBackend(t *testing.T) {
	if _, err := NewNotes(NewMemoryPreferences()).Watch(context.Background()); err == nil {
		t.Fatal("expected error watching an in-memory store")
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 5; i++ {
		th.Enqueue(send)
	}

	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("expected a flushed event")
	}
	select {
	case ev := <-got:
		t.Fatalf("expected a single event, got extra %v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}

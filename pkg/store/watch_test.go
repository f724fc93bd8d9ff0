package store

import (
	"context"
	"testing"
	"time"
)

func TestPersistenceWatchEmitsSlotChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(StaticConfig(base))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if _, err := p.Set("due", time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("set slot: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventSlotsInvalidated {
				continue
			}
			if evt.Slot != "due" {
				t.Fatalf("expected slot 'due', got %q", evt.Slot)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for slot change event")
		}
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	p, err := Load(StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestThrottleCoalescesBursts(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	got := make(chan Event, 10)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 5; i++ {
		th.Enqueue(Event{Type: EventSlotChanged, Slot: "due"}, send)
	}

	select {
	case ev := <-got:
		if ev.Slot != "due" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("throttle never flushed")
	}
	select {
	case ev := <-got:
		t.Fatalf("expected a single event, also got %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}

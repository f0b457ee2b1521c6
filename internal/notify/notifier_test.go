package notify

import (
	"sync"
	"testing"
)

func TestSubscribePublish(t *testing.T) {
	n := NewNotifier()

	var got []Event
	unsub := n.Subscribe(func(e Event) {
		got = append(got, e)
	})
	defer unsub()

	n.Publish(Event{Component: "trend_cache", Severity: SeverityWarning, Message: "lookup failed"})

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Component != "trend_cache" {
		t.Errorf("unexpected component %q", got[0].Component)
	}
	if got[0].At.IsZero() {
		t.Error("expected publish to stamp the event time")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	n := NewNotifier()

	count := 0
	unsub := n.Subscribe(func(Event) { count++ })

	n.Publish(Event{Message: "first"})
	unsub()
	n.Publish(Event{Message: "second"})

	if count != 1 {
		t.Fatalf("expected exactly 1 delivery, got %d", count)
	}
	if n.ListenerCount() != 0 {
		t.Errorf("expected no listeners after unsubscribe, got %d", n.ListenerCount())
	}
}

func TestConcurrentPublish(t *testing.T) {
	n := NewNotifier()

	var mu sync.Mutex
	count := 0
	unsub := n.Subscribe(func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	defer unsub()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.Publish(Event{Message: "x"})
		}()
	}
	wg.Wait()

	if count != 50 {
		t.Fatalf("expected 50 deliveries, got %d", count)
	}
}

package notify

import (
	"sync"
	"time"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Event is a degradation or failure report published by a service.
type Event struct {
	Component string
	Severity  Severity
	Message   string
	Err       error
	At        time.Time
}

type Listener func(Event)

// Notifier is a process-wide callback registry. One instance is built in
// main and handed to the services that publish; there is no package-level
// default.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[int]Listener)}
}

// Subscribe registers a listener and returns its disposer. After the
// disposer runs the listener is never invoked again, even for events
// published concurrently with the unsubscribe.
func (n *Notifier) Subscribe(l Listener) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = l
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.listeners, id)
		n.mu.Unlock()
	}
}

func (n *Notifier) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	n.mu.RLock()
	ls := make([]Listener, 0, len(n.listeners))
	for _, l := range n.listeners {
		ls = append(ls, l)
	}
	n.mu.RUnlock()

	for _, l := range ls {
		l(e)
	}
}

func (n *Notifier) ListenerCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

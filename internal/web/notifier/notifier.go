// Package notifier fans greeting and reload events out to connected browsers.
package notifier

import (
	"sync"

	"github.com/google/uuid"
)

// Kind tells a listener what to do with an event.
type Kind string

// Event kinds.
const (
	KindGreeting Kind = "greeting"
	KindReload   Kind = "reload"
)

// Event is a single broadcast.
type Event struct {
	ID   string
	Kind Kind
	Text string
}

// listenerBuffer is how many events a slow listener may fall behind before
// further events are dropped for it.
const listenerBuffer = 16

// Notifier broadcasts events to all subscribed listeners.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan Event]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel that receives published events.
// The caller must call Unsubscribe when done to prevent goroutine leaks.
func (n *Notifier) Subscribe() chan Event {
	ch := make(chan Event, listenerBuffer)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan Event) {
	n.mu.Lock()
	if _, ok := n.listeners[ch]; ok {
		delete(n.listeners, ch)
		close(ch)
	}
	n.mu.Unlock()
}

// Count returns the number of subscribed listeners.
func (n *Notifier) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Publish sends an event to every listener and returns it.
// Non-blocking: a listener whose buffer is full misses the event.
func (n *Notifier) Publish(kind Kind, text string) Event {
	ev := Event{ID: uuid.NewString(), Kind: kind, Text: text}

	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

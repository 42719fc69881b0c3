package service

import (
	"sync"
	"time"

	"vfd-portal/core/logger"
)

type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// Change describes one successful mirror mutation.
type Change struct {
	Kind       ChangeKind `json:"kind"`
	ExternalID string     `json:"external_id"`
	At         time.Time  `json:"at"`
}

// Notifier fans out calendar changes to any number of subscribers.
// Handlers run synchronously on the publishing goroutine and must not block.
type Notifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Change)
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Change))}
}

// Subscribe registers fn and returns a function that removes it. The returned
// function is safe to call more than once.
func (n *Notifier) Subscribe(fn func(Change)) (unsubscribe func()) {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

func (n *Notifier) Subscribers() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}

func (n *Notifier) Publish(change Change) {
	n.mu.RLock()
	handlers := make([]func(Change), 0, len(n.subs))
	for _, fn := range n.subs {
		handlers = append(handlers, fn)
	}
	n.mu.RUnlock()

	for _, fn := range handlers {
		n.deliver(fn, change)
	}
}

func (n *Notifier) deliver(fn func(Change), change Change) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("CalendarNotifier:Publish:HandlerPanic", "panic", r, "kind", change.Kind)
		}
	}()
	fn(change)
}

// Package watch implements snapshot fan-out for live data feeds. Each
// subscriber gets a buffered channel carrying full snapshots; a publish
// replaces any undelivered snapshot instead of blocking the writer, so a
// slow reader only ever skips to the latest state.
package watch

import "sync"

// Hub broadcasts snapshots of type T to its subscribers.
type Hub[T any] struct {
	mu     sync.Mutex
	subs   map[int]chan T
	nextID int
	closed bool
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[int]chan T)}
}

// Subscribe registers a subscriber and returns its feed plus a cancel
// function. After cancel returns, no further snapshots are delivered and
// the feed channel is closed; a cancelled feed can never resurrect state.
// Cancel is safe to call more than once.
func (h *Hub[T]) Subscribe() (<-chan T, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan T, 1)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers snapshot to every subscriber, last write wins.
func (h *Hub[T]) Publish(snapshot T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- snapshot:
		default:
			// Drop the stale undelivered snapshot, then retry once.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

// Close cancels every subscriber and rejects future subscriptions.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

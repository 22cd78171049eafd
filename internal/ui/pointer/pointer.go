// Package pointer fans mouse presses out to components that asked to hear
// about them. A component acquires a Subscription when it mounts and must
// release it when it unmounts.
package pointer

import "sync"

// Event is a pointer press at a terminal cell
type Event struct {
	X, Y int
}

// Rect is a rectangle of terminal cells. Max is exclusive.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Handler receives pointer events
type Handler func(Event)

// Hub delivers pointer events to live subscriptions. Dispatch runs handlers
// synchronously on the caller's goroutine, which for a Bubble Tea program
// is the update loop.
type Hub struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]Handler
	order  []uint64
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]Handler)}
}

// Subscription is a handle on a registered handler
type Subscription struct {
	hub  *Hub
	id   uint64
	once sync.Once
}

// Subscribe registers h until the returned subscription is released
func (h *Hub) Subscribe(handler Handler) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.subs[id] = handler
	h.order = append(h.order, id)

	return &Subscription{hub: h, id: id}
}

// Release unregisters the handler. Safe to call more than once.
func (s *Subscription) Release() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.hub.remove(s.id)
	})
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs, id)
	for i, v := range h.order {
		if v == id {
			h.order = append(h.order[:i:i], h.order[i+1:]...)
			break
		}
	}
}

// Dispatch delivers ev to every live subscription in subscription order
func (h *Hub) Dispatch(ev Event) {
	h.mu.Lock()
	handlers := make([]Handler, 0, len(h.order))
	for _, id := range h.order {
		handlers = append(handlers, h.subs[id])
	}
	h.mu.Unlock()

	for _, handler := range handlers {
		handler(ev)
	}
}

// Len returns the number of live subscriptions
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

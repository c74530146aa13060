// Package realtime provides the change-notification feed: components register
// interest in a table, receive change events, and re-query. Subscriptions are
// explicitly released on teardown.
package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Event describes one row change in a watched table.
type Event struct {
	Table string    `json:"table"`
	Op    string    `json:"op"` // INSERT, UPDATE or DELETE
	ID    uuid.UUID `json:"id"`
}

// subscriberBuffer bounds each subscriber's event queue. A subscriber that
// stops draining loses events rather than blocking the feed; consumers
// re-query on every event, so a dropped event at worst delays one refresh.
const subscriberBuffer = 16

// Subscription is one registered listener. Drain C until Unsubscribe.
type Subscription struct {
	C <-chan Event

	hub   *Hub
	table string
	id    uint64
	ch    chan Event
}

// Unsubscribe removes the subscription and closes its channel. Safe to call
// once per subscription.
func (s *Subscription) Unsubscribe() {
	s.hub.remove(s)
}

// Hub fans change events out to table subscribers.
type Hub struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[string]map[uint64]*Subscription
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[uint64]*Subscription)}
}

// Subscribe registers a listener for changes to one table. Pass "*" to
// receive changes for every table.
func (h *Hub) Subscribe(table string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	h.nextID++
	sub := &Subscription{C: ch, hub: h, table: table, id: h.nextID, ch: ch}

	if h.subs[table] == nil {
		h.subs[table] = make(map[uint64]*Subscription)
	}
	h.subs[table][sub.id] = sub
	return sub
}

// Publish delivers an event to all subscribers of its table and to wildcard
// subscribers. Delivery is non-blocking; slow subscribers drop events.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, table := range []string{ev.Table, "*"} {
		for _, sub := range h.subs[table] {
			select {
			case sub.ch <- ev:
			default:
			}
		}
	}
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if table, ok := h.subs[s.table]; ok {
		if _, ok := table[s.id]; ok {
			delete(table, s.id)
			close(s.ch)
		}
		if len(table) == 0 {
			delete(h.subs, s.table)
		}
	}
}

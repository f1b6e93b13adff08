// Package event provides a small synchronous publish/subscribe bus.
//
// The bus delivers events in subscription order on the caller's
// goroutine. The editor core is single-threaded by contract, so there
// is no queueing or dispatch machinery; the mutex only guards the
// subscriber registry itself.
package event

import (
	"sync"
	"sync/atomic"
)

// Topic names a stream of events.
type Topic string

// Handler receives published events for a topic.
type Handler func(ev any)

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	topic Topic
	id    uint64
}

// Topic returns the topic this subscription is attached to.
func (s Subscription) Topic() Topic { return s.topic }

type subEntry struct {
	id      uint64
	handler Handler
}

// Bus routes events from publishers to subscribers by topic.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Topic][]subEntry

	published atomic.Uint64
	delivered atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subEntry)}
}

// Subscribe registers a handler for a topic. Handlers for the same
// topic run in the order they were subscribed.
func (b *Bus) Subscribe(topic Topic, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[topic] = append(b.subs[topic], subEntry{id: b.nextID, handler: h})
	return Subscription{topic: topic, id: b.nextID}
}

// Unsubscribe removes a previously registered handler.
// Unknown subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.subs[sub.topic]
	for i, e := range entries {
		if e.id == sub.id {
			b.subs[sub.topic] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to every handler subscribed to topic, in
// subscription order, before returning.
func (b *Bus) Publish(topic Topic, ev any) {
	b.mu.Lock()
	entries := b.subs[topic]
	handlers := make([]Handler, len(entries))
	for i, e := range entries {
		handlers[i] = e.handler
	}
	b.mu.Unlock()

	b.published.Add(1)
	for _, h := range handlers {
		h(ev)
		b.delivered.Add(1)
	}
}

// Stats reports bus activity counters.
type Stats struct {
	Published uint64
	Delivered uint64
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published: b.published.Load(),
		Delivered: b.delivered.Load(),
	}
}

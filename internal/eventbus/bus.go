// Package eventbus is an in-memory fixture implementing the
// scoring.EventBus port (spec.md §6.2), for tests and local
// experimentation. It is not a production pub/sub implementation; hosts
// typically bridge an existing Backbone.Events-style or channel-based
// bus instead.
package eventbus

import (
	"strings"
	"sync"
)

// Bus is a synchronous, single-process topic publisher. Subscribers are
// invoked in registration order on the goroutine that calls Publish.
type Bus struct {
	mu          sync.Mutex
	subscribers map[string][]func(payload any)
}

// New constructs an empty Bus.
func New() *Bus {
	return &Bus{subscribers: make(map[string][]func(payload any))}
}

// Subscribe registers fn to run whenever topic is published.
func (b *Bus) Subscribe(topic string, fn func(payload any)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[topic] = append(b.subscribers[topic], fn)
}

// Publish implements scoring.EventBus: topic may be a space-separated
// list, in which case payload is published to each one independently.
func (b *Bus) Publish(topic string, payload any) {
	for _, t := range strings.Fields(topic) {
		b.publishOne(t, payload)
	}
}

func (b *Bus) publishOne(topic string, payload any) {
	b.mu.Lock()
	fns := append([]func(payload any){}, b.subscribers[topic]...)
	b.mu.Unlock()
	for _, fn := range fns {
		fn(payload)
	}
}

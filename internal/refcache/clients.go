package refcache

import (
	"sync"

	"github.com/kunalgarg/bahi/internal/model"
)

// Observer receives the full client list on every change.
type Observer func([]model.Client)

// Subscription is the handle returned by Subscribe. Every subscriber must
// Cancel when done; there is no implicit teardown.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Cancel releases the observer slot. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

type subscriber struct {
	fn Observer
	id int64
}

// ClientCache is the single shared source of truth for the client list.
// Views read snapshots or subscribe; the only write path is Set, called by a
// collaborator after a fetch or a client mutation. The cache itself never
// touches the network.
//
// Notifications are synchronous and delivered in subscribe order. A
// subscriber may call Set from inside its callback; the contract is that
// every subscriber eventually observes the latest value, not every
// intermediate one. Overlapping refreshes resolve last-write-wins.
type ClientCache struct {
	mu        sync.Mutex
	store     Store[model.Client]
	subs      []*subscriber
	nextSubID int64
	version   uint64
	loaded    bool
	notifying bool
}

// NewClientCache creates an empty, not-yet-loaded cache. Its lifecycle is
// tied to process start; pass the one instance to every consumer.
func NewClientCache() *ClientCache {
	return &ClientCache{}
}

// Get returns the current snapshot; empty before the first load.
func (c *ClientCache) Get() []model.Client {
	return c.store.Get()
}

// Loaded reports whether Set has ever been called. Consumers check this to
// decide whether to trigger the initial backend fetch.
func (c *ClientCache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Subscribe registers an observer. The current value is delivered
// immediately, then every subsequent value on change.
func (c *ClientCache) Subscribe(fn Observer) *Subscription {
	c.mu.Lock()
	sub := &subscriber{id: c.nextSubID, fn: fn}
	c.nextSubID++
	c.subs = append(c.subs, sub)
	c.mu.Unlock()

	fn(c.store.Get())

	return &Subscription{cancel: func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == sub.id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				break
			}
		}
	}}
}

// Set replaces the snapshot, marks the cache loaded, and notifies all
// subscribers synchronously in subscribe order. Re-entrant calls from inside
// a callback do not recurse: the in-flight notification loop picks up the
// newest value and keeps going until the value is stable.
func (c *ClientCache) Set(clients []model.Client) {
	c.mu.Lock()
	c.store.Replace(clients)
	c.loaded = true
	c.version++
	if c.notifying {
		// The active loop below will observe the bumped version.
		c.mu.Unlock()
		return
	}
	c.notifying = true
	c.mu.Unlock()

	for {
		c.mu.Lock()
		version := c.version
		subs := make([]*subscriber, len(c.subs))
		copy(subs, c.subs)
		c.mu.Unlock()

		snapshot := c.store.Get()
		for _, sub := range subs {
			sub.fn(snapshot)
		}

		c.mu.Lock()
		if c.version == version {
			c.notifying = false
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
	}
}

// Package state provides an explicit observer registry for process-wide client state.
//
// A component that owns state embeds a [Broadcaster] and calls [Broadcaster.Publish] with a
// fresh snapshot after every change. Consumers register with [Broadcaster.Subscribe] and
// receive snapshots synchronously, in subscription order, on the publishing goroutine.
package state

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Subscription is a handle returned by [Broadcaster.Subscribe].
type Subscription struct {
	id     uint64
	cancel func(uint64)
	once   sync.Once
}

// Unsubscribe removes the observer. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() { s.cancel(s.id) })
}

// Broadcaster fans snapshots of type T out to registered observers.
//
// The zero value is ready to use.
type Broadcaster[T any] struct {
	mu        sync.RWMutex
	observers map[uint64]func(T)
	nextID    atomic.Uint64
}

// Subscribe registers fn and returns a handle to remove it.
func (b *Broadcaster[T]) Subscribe(fn func(T)) *Subscription {
	id := b.nextID.Add(1)

	b.mu.Lock()
	if b.observers == nil {
		b.observers = make(map[uint64]func(T))
	}
	b.observers[id] = fn
	b.mu.Unlock()

	return &Subscription{id: id, cancel: b.remove}
}

// Publish delivers snapshot to every observer registered at the time of the call.
//
// Observers run outside the registry lock, so they may subscribe or unsubscribe.
func (b *Broadcaster[T]) Publish(snapshot T) {
	b.mu.RLock()
	ids := make([]uint64, 0, len(b.observers))
	for id := range b.observers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(T), len(ids))
	for i, id := range ids {
		fns[i] = b.observers[id]
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// Len returns the number of registered observers.
func (b *Broadcaster[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.observers)
}

func (b *Broadcaster[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.observers, id)
}

// Subscriber is anything that delivers snapshots of T to observers.
type Subscriber[T any] interface {
	Subscribe(fn func(T)) *Subscription
}

// Channel subscribes to b and forwards snapshots to the returned channel.
//
// Delivery never blocks the publisher: when the buffer is full the oldest pending snapshot is
// dropped in favor of the newest. Call the returned Subscription's Unsubscribe to stop delivery;
// the channel is not closed.
func Channel[T any](b Subscriber[T], buffer int) (<-chan T, *Subscription) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan T, buffer)
	var mu sync.Mutex

	sub := b.Subscribe(func(snapshot T) {
		mu.Lock()
		defer mu.Unlock()
		for {
			select {
			case ch <- snapshot:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})

	return ch, sub
}

// Package util holds small generic helpers shared across the module.
package util

import (
	"sync"

	"golang.org/x/exp/constraints"
)

// AtomicEvent retains only the most recent value sent to it and offers a
// non-blocking notification channel. It decouples a producer that may fire
// often (the config file watcher) from a consumer that only ever cares about
// the latest state.
type AtomicEvent[T any] struct {
	mu     sync.Mutex
	value  T
	notify chan struct{}
}

// NewAtomicEvent creates an AtomicEvent seeded with the given initial value.
func NewAtomicEvent[T any](initial T) *AtomicEvent[T] {
	return &AtomicEvent[T]{
		value:  initial,
		notify: make(chan struct{}, 1),
	}
}

// Send replaces the stored value and notifies the consumer. It never blocks;
// if a notification is already pending the new value simply rides along with
// it.
func (ae *AtomicEvent[T]) Send(v T) {
	ae.mu.Lock()
	ae.value = v
	ae.mu.Unlock()

	select {
	case ae.notify <- struct{}{}:
	default:
	}
}

// Channel returns the notification channel for use in select loops. After a
// receive, Value returns the newest state.
func (ae *AtomicEvent[T]) Channel() <-chan struct{} {
	return ae.notify
}

// Value returns the most recently sent value.
func (ae *AtomicEvent[T]) Value() T {
	ae.mu.Lock()
	defer ae.mu.Unlock()
	return ae.value
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

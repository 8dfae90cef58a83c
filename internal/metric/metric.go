// Package metric provides timestamped samples, bounded per-sensor history,
// and the value types shared by all monitors.
package metric

import (
	"sync"
	"time"
)

// Sample is a single typed observation. Samples are immutable: they are
// created at the moment a read succeeds and never change afterwards.
type Sample[T any] struct {
	Value     T
	Timestamp time.Time
}

// NewSample wraps a value with the current time.
func NewSample[T any](value T) Sample[T] {
	return Sample[T]{Value: value, Timestamp: time.Now()}
}

// History is a bounded, insertion-ordered sequence of samples. Insertion
// order equals chronological order because samples are appended at creation
// time. Eviction is oldest-first and atomic with respect to Push: no reader
// ever observes more than the configured capacity. The backing slice is
// used as a ring, so Push is O(1) regardless of capacity.
type History[T any] struct {
	mu       sync.Mutex
	samples  []Sample[T]
	start    int
	count    int
	capacity int
}

// DefaultHistorySize is the per-monitor sample window used when the caller
// does not configure one.
const DefaultHistorySize = 60

// NewHistory creates an empty history holding at most capacity samples.
// Non-positive capacities fall back to DefaultHistorySize.
func NewHistory[T any](capacity int) *History[T] {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}

	return &History[T]{
		samples:  make([]Sample[T], capacity),
		capacity: capacity,
	}
}

// Push appends a sample, evicting the oldest entry once the history is
// full.
func (h *History[T]) Push(s Sample[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.samples[(h.start+h.count)%h.capacity] = s
	if h.count < h.capacity {
		h.count++
	} else {
		h.start = (h.start + 1) % h.capacity
	}
}

// Latest returns the most recently pushed sample, or false if the history
// is empty.
func (h *History[T]) Latest() (Sample[T], bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 {
		var zero Sample[T]
		return zero, false
	}

	return h.samples[(h.start+h.count-1)%h.capacity], true
}

// Window returns a copy of the n most recent samples in insertion order,
// with n clamped to the current length.
func (h *History[T]) Window(n int) []Sample[T] {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n <= 0 || h.count == 0 {
		return nil
	}
	if n > h.count {
		n = h.count
	}

	window := make([]Sample[T], n)
	for i := range window {
		window[i] = h.samples[(h.start+h.count-n+i)%h.capacity]
	}

	return window
}

// Len returns the current number of samples.
func (h *History[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.count
}

// Cap returns the configured capacity.
func (h *History[T]) Cap() int {
	return h.capacity
}

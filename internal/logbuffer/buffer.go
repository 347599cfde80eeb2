// Package logbuffer holds the console's bounded, observable log history.
// Records are kept in FIFO order; once the buffer is full the oldest record is
// evicted on every append.
package logbuffer

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of records a console keeps.
const DefaultCapacity = 255

// Event selects which notification an observer receives.
type Event int

const (
	// Changed fires after every append.
	Changed Event = iota
	// Rebuild fires when history was rewritten and views must redraw from scratch.
	Rebuild
)

func (e Event) String() string {
	switch e {
	case Changed:
		return "changed"
	case Rebuild:
		return "rebuild"
	}
	return "unknown"
}

type observer struct {
	id uuid.UUID
	fn func()
}

// Buffer is a fixed-capacity circular buffer with change notifications.
type Buffer[T any] struct {
	mu sync.RWMutex

	entries  []T
	capacity int
	head     int // index of the oldest entry once the buffer is full

	totalAdded int64

	obsMu     sync.Mutex
	observers map[Event][]observer
}

// New creates a buffer holding at most capacity entries. A non-positive
// capacity falls back to DefaultCapacity.
func New[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer[T]{
		entries:   make([]T, 0, capacity),
		capacity:  capacity,
		observers: make(map[Event][]observer),
	}
}

// Append adds entry, evicting the oldest entry when full, then notifies
// Changed observers.
func (b *Buffer[T]) Append(entry T) {
	b.mu.Lock()
	if len(b.entries) < b.capacity {
		b.entries = append(b.entries, entry)
	} else {
		b.entries[b.head] = entry
		b.head = (b.head + 1) % b.capacity
	}
	b.totalAdded++
	b.mu.Unlock()

	b.notify(Changed)
}

// At returns the entry at index i, 0 being the oldest.
func (b *Buffer[T]) At(i int) (T, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var zero T
	if i < 0 || i >= len(b.entries) {
		return zero, false
	}
	return b.entries[(b.head+i)%len(b.entries)], true
}

// Len returns the number of entries held.
func (b *Buffer[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Cap returns the buffer capacity.
func (b *Buffer[T]) Cap() int { return b.capacity }

// Total returns how many entries were ever appended. Observers compare it with
// a previous reading to find out how many entries are new.
func (b *Buffer[T]) Total() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.totalAdded
}

// Snapshot returns all entries, oldest first.
func (b *Buffer[T]) Snapshot() []T {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]T, len(b.entries))
	n := copy(out, b.entries[b.head:])
	copy(out[n:], b.entries[:b.head])
	return out
}

// TruncateToLast drops every entry except the newest and notifies Rebuild
// observers. An empty buffer is left alone and false is returned.
func (b *Buffer[T]) TruncateToLast() bool {
	b.mu.Lock()
	if len(b.entries) == 0 {
		b.mu.Unlock()
		return false
	}
	newest := (b.head + len(b.entries) - 1) % len(b.entries)
	last := b.entries[newest]
	b.entries = b.entries[:1]
	b.entries[0] = last
	b.head = 0
	b.mu.Unlock()

	b.notify(Rebuild)
	return true
}

// Subscribe registers fn for event and returns a token for Unsubscribe.
func (b *Buffer[T]) Subscribe(event Event, fn func()) uuid.UUID {
	id := uuid.New()
	b.obsMu.Lock()
	defer b.obsMu.Unlock()
	b.observers[event] = append(b.observers[event], observer{id: id, fn: fn})
	return id
}

// Unsubscribe removes the observer registered under id. It reports whether one
// was found.
func (b *Buffer[T]) Unsubscribe(id uuid.UUID) bool {
	b.obsMu.Lock()
	defer b.obsMu.Unlock()

	for event, list := range b.observers {
		for i, o := range list {
			if o.id == id {
				b.observers[event] = append(list[:i:i], list[i+1:]...)
				return true
			}
		}
	}
	return false
}

// notify runs observers without holding any buffer lock so they may read the buffer.
func (b *Buffer[T]) notify(event Event) {
	b.obsMu.Lock()
	list := make([]observer, len(b.observers[event]))
	copy(list, b.observers[event])
	b.obsMu.Unlock()

	for _, o := range list {
		if o.fn != nil {
			o.fn()
		}
	}
}

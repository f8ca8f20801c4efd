package trace

import "sync"

// DefaultSize is used when a non-positive capacity is requested.
const DefaultSize = 100

// RingBuffer keeps the most recent entries up to a fixed capacity. It is
// safe for concurrent use.
type RingBuffer struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	filled  bool
	total   uint64
}

// NewRingBuffer creates a ring buffer holding up to size entries.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultSize
	}
	return &RingBuffer{entries: make([]Entry, size)}
}

// Add records e, dropping the oldest entry when full.
func (rb *RingBuffer) Add(e Entry) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.entries[rb.next] = e
	rb.next++
	if rb.next == len(rb.entries) {
		rb.next = 0
		rb.filled = true
	}
	rb.total++
}

// Last returns up to n of the newest entries, oldest first.
func (rb *RingBuffer) Last(n int) []Entry {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	n = min(n, rb.count())
	if n <= 0 {
		return nil
	}

	out := make([]Entry, n)
	size := len(rb.entries)
	start := (rb.next - n + size) % size
	for i := range out {
		out[i] = rb.entries[(start+i)%size]
	}
	return out
}

// Count returns the number of entries held.
func (rb *RingBuffer) Count() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count()
}

// Total returns the number of entries ever added.
func (rb *RingBuffer) Total() uint64 {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.total
}

func (rb *RingBuffer) count() int {
	if rb.filled {
		return len(rb.entries)
	}
	return rb.next
}

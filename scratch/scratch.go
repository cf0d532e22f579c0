// Package scratch implements the fixed-capacity buffer of tagged entries shared
// by the per-queue sorter and the bounded selector.
package scratch

import (
	"iter"
	"slices"

	"github.com/davidvella/topq/ordered"
	"github.com/davidvella/topq/queue"
)

// Entry pairs a value with the queue it was dequeued from. Origin is a
// lookup-only reference: the buffer never owns the queue, it only records
// where an evicted value has to go back to.
type Entry[V ordered.Comparable[V]] struct {
	Value  V
	Origin queue.Queue[V]
}

func compareEntries[V ordered.Comparable[V]](a, b Entry[V]) int {
	return a.Value.Compare(b.Value)
}

// Buffer holds at most Cap entries. Its storage is allocated once and reused
// across Reset calls.
type Buffer[V ordered.Comparable[V]] struct {
	entries []Entry[V]
}

// New creates an empty Buffer able to hold size entries.
func New[V ordered.Comparable[V]](size int) *Buffer[V] {
	return &Buffer[V]{entries: make([]Entry[V], 0, size)}
}

// Len returns the number of held entries.
func (b *Buffer[V]) Len() int {
	return len(b.entries)
}

// Cap returns the fixed capacity.
func (b *Buffer[V]) Cap() int {
	return cap(b.entries)
}

// Reset empties the buffer, dropping any references it held.
func (b *Buffer[V]) Reset() {
	clear(b.entries)
	b.entries = b.entries[:0]
}

// Push appends an entry. Returns false if the buffer is full.
func (b *Buffer[V]) Push(v V, origin queue.Queue[V]) bool {
	if len(b.entries) == cap(b.entries) {
		return false
	}
	b.entries = append(b.entries, Entry[V]{Value: v, Origin: origin})
	return true
}

// Sort orders the entries ascending by value. Equal values keep the order in
// which they entered the buffer, so Min is the earliest of the smallest.
func (b *Buffer[V]) Sort() {
	slices.SortStableFunc(b.entries, compareEntries[V])
}

// Min returns the first entry, which is the smallest once the buffer is sorted.
// Returns false if the buffer is empty.
func (b *Buffer[V]) Min() (Entry[V], bool) {
	if len(b.entries) == 0 {
		return Entry[V]{}, false
	}
	return b.entries[0], true
}

// ReplaceMin removes the first entry, appends the new one as the latest
// arrival and returns the removed entry. The buffer must be non-empty and is
// left unsorted.
func (b *Buffer[V]) ReplaceMin(v V, origin queue.Queue[V]) Entry[V] {
	old := b.entries[0]
	last := len(b.entries) - 1
	copy(b.entries, b.entries[1:])
	b.entries[last] = Entry[V]{Value: v, Origin: origin}
	return old
}

// Descending yields the entries from the last to the first, largest first once
// the buffer is sorted.
func (b *Buffer[V]) Descending() iter.Seq[Entry[V]] {
	return func(yield func(Entry[V]) bool) {
		for i := len(b.entries) - 1; i >= 0; i-- {
			if !yield(b.entries[i]) {
				return
			}
		}
	}
}

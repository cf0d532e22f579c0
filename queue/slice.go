package queue

// Slice is an unbounded FIFO queue backed by a slice.
type Slice[V any] struct {
	items []V
}

// NewSlice creates an empty Slice with room for size items.
func NewSlice[V any](size int) *Slice[V] {
	return &Slice[V]{items: make([]V, 0, size)}
}

// Len returns the number of queued items.
func (q *Slice[V]) Len() int {
	return len(q.items)
}

// Enqueue appends v at the back.
func (q *Slice[V]) Enqueue(v V) {
	q.items = append(q.items, v)
}

// Dequeue removes and returns the front item.
// Returns false if the queue is empty.
func (q *Slice[V]) Dequeue() (V, bool) {
	var zero V
	if len(q.items) == 0 {
		return zero, false
	}

	v := q.items[0]

	// Clear the slot so the backing array does not pin v.
	q.items[0] = zero

	if len(q.items) == 1 {
		q.items = q.items[:0]
	} else {
		q.items = q.items[1:]
	}

	return v, true
}

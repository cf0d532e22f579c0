package queue

// Queue is a first-in-first-out collection.
type Queue[V any] interface {
	// Len returns the exact number of queued items.
	Len() int

	// Enqueue appends v at the back of the queue.
	Enqueue(v V)

	// Dequeue removes and returns the front item.
	// Returns false if the queue is empty.
	Dequeue() (V, bool)
}

// Of returns a Slice queue holding vs, vs[0] at the front.
func Of[V any](vs ...V) *Slice[V] {
	q := NewSlice[V](len(vs))
	for _, v := range vs {
		q.Enqueue(v)
	}
	return q
}

// Drain dequeues every item from q, front first.
func Drain[V any](q Queue[V]) []V {
	out := make([]V, 0, q.Len())
	for v, ok := q.Dequeue(); ok; v, ok = q.Dequeue() {
		out = append(out, v)
	}
	return out
}

// Snapshot returns the items of q front to back without changing q. It reads
// by rotating the queue once in full.
func Snapshot[V any](q Queue[V]) []V {
	n := q.Len()
	out := make([]V, 0, n)
	for range n {
		v, ok := q.Dequeue()
		if !ok {
			break
		}
		out = append(out, v)
		q.Enqueue(v)
	}
	return out
}

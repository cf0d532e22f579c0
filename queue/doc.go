// Package queue defines the strict first-in-first-out contract consumed by the
// selection algorithms, together with in-memory implementations of it.
//
// A Queue exposes exactly three operations: Len, Enqueue at the back, and
// Dequeue from the front. There is no peek, no indexing and no iteration.
// Dequeue on an empty queue returns false instead of blocking or failing,
// which keeps drain loops simple:
//
//	q := queue.Of(3, 1, 2)
//	for v, ok := q.Dequeue(); ok; v, ok = q.Dequeue() {
//	    fmt.Println(v)
//	}
//
// Two implementations are provided:
//   - Slice: an unbounded slice-backed queue, the simplest choice.
//   - Ring: a growable power-of-two ring buffer that reuses its storage,
//     better suited to workloads that rotate a queue many times.
//
// Implementations are not safe for concurrent use.
package queue

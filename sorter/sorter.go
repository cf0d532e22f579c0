package sorter

import (
	"github.com/davidvella/topq/ordered"
	"github.com/davidvella/topq/queue"
	"github.com/davidvella/topq/scratch"
)

// Strategy identifies how a queue was sorted.
type Strategy int

const (
	Buffered Strategy = iota
	Rotation
)

func (s Strategy) String() string {
	switch s {
	case Buffered:
		return "buffered"
	case Rotation:
		return "rotation"
	default:
		return "unknown"
	}
}

// Sort orders q descending. It uses the buffer when q fits in it and falls
// back to rotation otherwise. The buffer is reset before use.
func Sort[V ordered.Comparable[V]](q queue.Queue[V], buf *scratch.Buffer[V]) Strategy {
	if q.Len() <= buf.Cap() {
		BufferSort(q, buf)
		return Buffered
	}
	RotationSort(q)
	return Rotation
}

// BufferSort drains q into buf, sorts it and re-enqueues largest first.
// q.Len() must not exceed buf.Cap().
func BufferSort[V ordered.Comparable[V]](q queue.Queue[V], buf *scratch.Buffer[V]) {
	buf.Reset()
	defer buf.Reset()

	for v, ok := q.Dequeue(); ok; v, ok = q.Dequeue() {
		if !buf.Push(v, q) {
			panic("sorter: queue does not fit in buffer")
		}
	}

	buf.Sort()

	for e := range buf.Descending() {
		q.Enqueue(e.Value)
	}
}

// RotationSort orders q descending in place.
//
// The unprocessed region is the prefix [0, limit] of the queue. On every pass
// its maximum is moved to the absolute back and limit shrinks by one, so after
// Len passes each value has been re-appended once, largest first.
func RotationSort[V ordered.Comparable[V]](q queue.Queue[V]) {
	n := q.Len()
	for limit := n - 1; limit >= 0; limit-- {
		kickToBack(q, indexOfMax(q, limit))
	}
}

// indexOfMax rotates q once and returns the position of the first maximum
// found among positions 0..limit.
func indexOfMax[V ordered.Comparable[V]](q queue.Queue[V], limit int) int {
	n := q.Len()
	maxV, _ := q.Dequeue()
	q.Enqueue(maxV)

	idx := 0
	for i := 1; i < n; i++ {
		v, _ := q.Dequeue()
		if i <= limit && v.Compare(maxV) > 0 {
			maxV = v
			idx = i
		}
		q.Enqueue(v)
	}
	return idx
}

// kickToBack rotates q once, holding back the value at position idx and
// appending it after the rotation completes.
func kickToBack[V ordered.Comparable[V]](q queue.Queue[V], idx int) {
	n := q.Len()
	var held V
	for i := range n {
		v, _ := q.Dequeue()
		if i == idx {
			held = v
			continue
		}
		q.Enqueue(v)
	}
	q.Enqueue(held)
}

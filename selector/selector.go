package selector

import (
	"github.com/davidvella/topq/ordered"
	"github.com/davidvella/topq/queue"
	"github.com/davidvella/topq/scratch"
)

// Report counts what happened during a selection pass.
type Report struct {
	Examined   int // candidates dequeued from input queues
	Evicted    int // window entries returned to their origin queue
	EarlyExits int // queues abandoned on a candidate below the window minimum
	Emitted    int // values written to the output queue
}

// Select moves the outCount largest values of inQs onto outQ, largest first.
// Every queue in inQs must be in descending order. Select panics if buf cannot
// hold outCount entries; no queue is touched in that case. Fewer than outCount
// values are emitted only when the queues hold fewer in total.
func Select[V ordered.Comparable[V]](
	inQs []queue.Queue[V],
	outQ queue.Queue[V],
	buf *scratch.Buffer[V],
	outCount int,
) Report {
	if outCount > buf.Cap() {
		panic("selector: outCount exceeds buffer capacity")
	}

	var r Report

	buf.Reset()
	defer buf.Reset()

	for _, q := range inQs {
		scan(&r, q, buf, outCount)
	}

	for e := range buf.Descending() {
		outQ.Enqueue(e.Value)
		r.Emitted++
	}

	return r
}

// scan examines each value queued in q at most once. Values evicted back onto
// q during the scan land behind the examined region and are not seen again.
func scan[V ordered.Comparable[V]](r *Report, q queue.Queue[V], buf *scratch.Buffer[V], outCount int) {
	n := q.Len()
	for range n {
		v, ok := q.Dequeue()
		if !ok {
			return
		}
		r.Examined++

		if buf.Len() < outCount {
			buf.Push(v, q)
			buf.Sort()
			continue
		}

		lowest, _ := buf.Min()
		if ordered.Less(v, lowest.Value) {
			q.Enqueue(v)
			r.EarlyExits++
			return
		}

		old := buf.ReplaceMin(v, q)
		old.Origin.Enqueue(old.Value)
		r.Evicted++
		buf.Sort()
	}
}

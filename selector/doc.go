// Package selector picks the globally largest values from a set of queues that
// are each already in descending order.
//
// Select streams candidates from every queue, in slice order, into a sorted
// window of at most outCount entries held in the scratch buffer. A candidate
// enters the window while it has room, or when it is greater than or equal to
// the window's current minimum, in which case the minimum is evicted and
// enqueued back onto the queue it came from. The first candidate smaller than
// the minimum ends the scan of its queue: the queue is descending, so nothing
// behind it can qualify. The rejected candidate is put back as well.
//
// Once every queue has been scanned, the window is emitted largest first onto
// the output queue. Every value that was dequeued and not selected ends up
// back in its origin queue, but appended at the back, so input queues are left
// holding their full value set minus the selected values, in no defined order.
//
// Ties go to the later candidate: when a candidate equals the window minimum
// it replaces it, so among equal values competing for the last slot the one
// met last (by queue order, then position) is kept. Equal entries already in
// the window leave it in the order they arrived.
package selector

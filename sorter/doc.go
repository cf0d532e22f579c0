// Package sorter brings a single FIFO queue into descending order, largest
// value at the front, using nothing but Len, Enqueue and Dequeue.
//
// Two strategies exist and Sort picks between them by queue length:
//
//   - Buffered: when the queue fits in the scratch buffer, the queue is drained
//     into the buffer, the buffer is sorted, and the values are re-enqueued
//     largest first. O(n log n) comparisons, O(n) queue operations.
//   - Rotation: when the queue is larger than the buffer, a selection sort is
//     carried out by rotating the queue. Each pass rotates the queue once to
//     locate the largest value inside a shrinking unprocessed prefix, then a
//     second time to pull that value out and re-append it at the back.
//     O(n²) queue operations, O(1) extra storage.
//
// Both strategies leave the queue in the same shape, so callers can rely on
// the descending order without knowing which path was taken.
package sorter

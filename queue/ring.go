package queue

const minRingSize = 8

// Ring is a FIFO queue backed by a power-of-two ring buffer that doubles when
// full. Unlike Slice it never re-slices its storage, so rotating a queue
// (dequeue then enqueue of the same item) allocates nothing.
type Ring[V any] struct {
	buf  []V
	mask int
	head int // index of the front item
	n    int
}

// NewRing creates an empty Ring with room for at least size items.
// Size will be rounded up to the next power of 2.
func NewRing[V any](size int) *Ring[V] {
	n := minRingSize
	for n < size {
		n <<= 1
	}

	return &Ring[V]{
		buf:  make([]V, n),
		mask: n - 1,
	}
}

// Len returns the number of queued items.
func (r *Ring[V]) Len() int {
	return r.n
}

// Cap returns the current capacity before the ring must grow.
func (r *Ring[V]) Cap() int {
	return len(r.buf)
}

// Enqueue appends v at the back, growing the ring if it is full.
func (r *Ring[V]) Enqueue(v V) {
	if r.n == len(r.buf) {
		r.grow()
	}
	r.buf[(r.head+r.n)&r.mask] = v
	r.n++
}

// Dequeue removes and returns the front item.
// Returns false if the queue is empty.
func (r *Ring[V]) Dequeue() (V, bool) {
	var zero V
	if r.n == 0 {
		return zero, false
	}

	v := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = (r.head + 1) & r.mask
	r.n--

	return v, true
}

func (r *Ring[V]) grow() {
	buf := make([]V, len(r.buf)*2)
	for i := range r.n {
		buf[i] = r.buf[(r.head+i)&r.mask]
	}
	r.buf = buf
	r.mask = len(buf) - 1
	r.head = 0
}

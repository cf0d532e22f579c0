// Package pebbleq provides a durable FIFO queue stored in a Pebble database.
//
// Each queue owns a key namespace inside a Store. Items live under
// name/items/<seq> with big-endian sequence numbers, and the head and tail
// counters are persisted under name/meta in the same batch as every change,
// so a queue reopened from the same directory resumes where it left off.
//
// The queue.Queue contract has no error returns. The first storage error a
// Queue meets is latched and reported by Err; from then on the queue ignores
// Enqueue and reports itself empty.
package pebbleq

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"

	"github.com/davidvella/topq/queue"
	"github.com/davidvella/topq/recordio"
)

// ErrClosed is latched by queues used after their store was closed.
var ErrClosed = errors.New("pebbleq: store is closed")

// StoreOptions configures the underlying database.
type StoreOptions struct {
	Path         string
	CacheSize    int64
	MaxOpenFiles int
	Sync         bool // fsync every committed batch
}

// Store is a Pebble database holding any number of named queues.
type Store struct {
	db     *pebble.DB
	sync   *pebble.WriteOptions
	closed bool
}

// OpenStore opens or creates the database at opts.Path.
func OpenStore(opts StoreOptions) (*Store, error) {
	pebbleOpts := &pebble.Options{
		MaxOpenFiles: opts.MaxOpenFiles,
	}
	if opts.CacheSize > 0 {
		cache := pebble.NewCache(opts.CacheSize)
		defer cache.Unref()
		pebbleOpts.Cache = cache
	}

	// Ensure directory exists
	if err := os.MkdirAll(opts.Path, 0o755); err != nil {
		return nil, errors.Wrapf(err, "pebbleq: create %s", opts.Path)
	}

	db, err := pebble.Open(opts.Path, pebbleOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "pebbleq: open %s", opts.Path)
	}

	wo := pebble.NoSync
	if opts.Sync {
		wo = pebble.Sync
	}

	return &Store{db: db, sync: wo}, nil
}

// Close closes the database. Queues attached to the store latch ErrClosed on
// their next operation.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Queue is a durable FIFO queue of values encoded with a recordio.Codec.
type Queue[V any] struct {
	store *Store
	codec recordio.Codec[V]
	meta  []byte
	items []byte
	head  uint64 // sequence number of the front item
	tail  uint64 // sequence number the next item will get
	err   error
}

var _ queue.Queue[int] = (*Queue[int])(nil)

// Attach opens the queue called name in s, restoring its head and tail if it
// already holds items.
func Attach[V any](s *Store, name string, c recordio.Codec[V]) (*Queue[V], error) {
	if s.closed {
		return nil, ErrClosed
	}

	q := &Queue[V]{
		store: s,
		codec: c,
		meta:  []byte(name + "/meta"),
		items: []byte(name + "/items/"),
	}

	b, closer, err := s.db.Get(q.meta)
	if errors.Is(err, pebble.ErrNotFound) {
		return q, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "pebbleq: read %s", q.meta)
	}
	defer closer.Close()

	if len(b) != 16 {
		return nil, errors.Errorf("pebbleq: corrupt metadata for %q", name)
	}
	q.head = binary.BigEndian.Uint64(b[:8])
	q.tail = binary.BigEndian.Uint64(b[8:])

	return q, nil
}

// Len returns the number of queued items.
func (q *Queue[V]) Len() int {
	if q.err != nil {
		return 0
	}
	return int(q.tail - q.head)
}

// Enqueue appends v at the back. It does nothing once an error is latched.
func (q *Queue[V]) Enqueue(v V) {
	if !q.usable() {
		return
	}

	var buf bytes.Buffer
	if _, err := recordio.Write(&buf, q.codec, v); err != nil {
		q.err = errors.Wrap(err, "pebbleq: encode")
		return
	}

	batch := q.store.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(q.key(q.tail), buf.Bytes(), nil); err != nil {
		q.err = errors.Wrap(err, "pebbleq: enqueue")
		return
	}
	q.commit(batch, q.head, q.tail+1)
}

// Dequeue removes and returns the front item.
// Returns false if the queue is empty or an error is latched.
func (q *Queue[V]) Dequeue() (V, bool) {
	var zero V
	if !q.usable() || q.head == q.tail {
		return zero, false
	}

	key := q.key(q.head)
	b, closer, err := q.store.db.Get(key)
	if err != nil {
		q.err = errors.Wrapf(err, "pebbleq: read item %d", q.head)
		return zero, false
	}
	v, err := recordio.Read(bytes.NewReader(b), q.codec)
	closer.Close()
	if err != nil {
		q.err = errors.Wrapf(err, "pebbleq: decode item %d", q.head)
		return zero, false
	}

	batch := q.store.db.NewBatch()
	defer batch.Close()

	if err := batch.Delete(key, nil); err != nil {
		q.err = errors.Wrap(err, "pebbleq: dequeue")
		return zero, false
	}
	if !q.commit(batch, q.head+1, q.tail) {
		return zero, false
	}
	return v, true
}

// Err returns the first error the queue encountered, if any.
func (q *Queue[V]) Err() error {
	return q.err
}

func (q *Queue[V]) usable() bool {
	if q.err == nil && q.store.closed {
		q.err = ErrClosed
	}
	return q.err == nil
}

func (q *Queue[V]) key(seq uint64) []byte {
	return binary.BigEndian.AppendUint64(bytes.Clone(q.items), seq)
}

// commit writes the new counters into batch, commits it and advances the
// in-memory counters on success.
func (q *Queue[V]) commit(batch *pebble.Batch, head, tail uint64) bool {
	meta := make([]byte, 16)
	binary.BigEndian.PutUint64(meta[:8], head)
	binary.BigEndian.PutUint64(meta[8:], tail)

	if err := batch.Set(q.meta, meta, nil); err != nil {
		q.err = errors.Wrap(err, "pebbleq: write metadata")
		return false
	}
	if err := batch.Commit(q.store.sync); err != nil {
		q.err = errors.Wrap(err, "pebbleq: commit")
		return false
	}

	q.head, q.tail = head, tail
	return true
}

package audit

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/google/btree"

	"github.com/davidvella/topq/ordered"
)

var (
	ErrNotConserved = errors.New("values were lost or created")
	ErrOutputSize   = errors.New("output has the wrong number of values")
	ErrOutputOrder  = errors.New("output is not in descending order")
	ErrWrongValues  = errors.New("output is not the largest values")
	ErrLeftBehind   = errors.New("a larger value was left in an input queue")
)

// Check verifies a run. before and after hold the contents of each input
// queue, front to back, before and after the run; out holds the output queue.
// Every violated property is reported in the returned error.
func Check[V ordered.Comparable[V]](before, after [][]V, out []V, outCount int) error {
	var errs []error

	total := 0
	for _, vs := range before {
		total += len(vs)
	}

	if want := min(outCount, total); len(out) != want {
		errs = append(errs, fmt.Errorf("%w: got %d, want %d", ErrOutputSize, len(out), want))
	}

	for i := 1; i < len(out); i++ {
		if out[i].Compare(out[i-1]) > 0 {
			errs = append(errs, fmt.Errorf("%w: %v follows %v at position %d", ErrOutputOrder, out[i], out[i-1], i))
			break
		}
	}

	if err := conserved(before, after, out); err != nil {
		errs = append(errs, err)
	}

	if err := largest(before, out, outCount); err != nil {
		errs = append(errs, err)
	}

	if len(out) > 0 {
		lowest := slices.MinFunc(out, func(a, b V) int { return a.Compare(b) })
		for i, vs := range after {
			for _, v := range vs {
				if v.Compare(lowest) > 0 {
					errs = append(errs, fmt.Errorf("%w: %v in queue %d exceeds %v", ErrLeftBehind, v, i, lowest))
				}
			}
		}
	}

	return errors.Join(errs...)
}

// conserved compares the multiset of before with the multiset of after plus
// out.
func conserved[V ordered.Comparable[V]](before, after [][]V, out []V) error {
	m := newMultiset[V]()
	for _, vs := range before {
		for _, v := range vs {
			m.add(v, 1)
		}
	}
	for _, vs := range append(slices.Clone(after), out) {
		for _, v := range vs {
			m.add(v, -1)
		}
	}

	var errs []error
	m.tree.Ascend(func(b *bucket[V]) bool {
		switch {
		case b.count > 0:
			errs = append(errs, fmt.Errorf("%w: %d x %v missing", ErrNotConserved, b.count, b.value))
		case b.count < 0:
			errs = append(errs, fmt.Errorf("%w: %d x %v extra", ErrNotConserved, -b.count, b.value))
		}
		return true
	})
	return errors.Join(errs...)
}

// largest compares out with the outCount largest values of before.
func largest[V ordered.Comparable[V]](before [][]V, out []V, outCount int) error {
	seqs := make([]iter.Seq[V], len(before))
	for i, vs := range before {
		sorted := slices.Clone(vs)
		slices.SortFunc(sorted, func(a, b V) int { return b.Compare(a) })
		seqs[i] = slices.Values(sorted)
	}

	i := 0
	for want := range Descending(seqs...) {
		if i == outCount || i == len(out) {
			break
		}
		if out[i].Compare(want) != 0 {
			return fmt.Errorf("%w: position %d holds %v, want %v", ErrWrongValues, i, out[i], want)
		}
		i++
	}
	return nil
}

type bucket[V ordered.Comparable[V]] struct {
	value V
	count int
}

// multiset counts values that compare equal in a single bucket.
type multiset[V ordered.Comparable[V]] struct {
	tree *btree.BTreeG[*bucket[V]]
}

func newMultiset[V ordered.Comparable[V]]() *multiset[V] {
	return &multiset[V]{
		tree: btree.NewG[*bucket[V]](2, func(a, b *bucket[V]) bool {
			return ordered.Less(a.value, b.value)
		}),
	}
}

func (m *multiset[V]) add(v V, n int) {
	if b, ok := m.tree.Get(&bucket[V]{value: v}); ok {
		b.count += n
		return
	}
	m.tree.ReplaceOrInsert(&bucket[V]{value: v, count: n})
}

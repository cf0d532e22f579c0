// Package ordered gives raw values total-order comparison semantics.
//
// The selection algorithms in this module never look inside the values they
// move around. All they need is a three-way comparison, expressed by the
// Comparable constraint:
//
//	type Comparable[T any] interface {
//	    Compare(other T) int
//	}
//
// Value wraps any cmp.Ordered type (integers, floats, strings) and Time wraps
// time.Time, so both satisfy Comparable without the caller writing a method:
//
//	vals := ordered.Wrap(3, 1, 2)
//	slices.SortFunc(vals, ordered.Value[int].Compare)
//	fmt.Println(ordered.Unwrap(vals)) // [1 2 3]
package ordered

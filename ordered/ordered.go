package ordered

import (
	"cmp"
	"fmt"
	"time"
)

// Comparable is satisfied by types that define a total order over themselves.
// Compare returns a negative number when the receiver orders before other,
// zero when they are equal, and a positive number otherwise.
type Comparable[T any] interface {
	Compare(other T) int
}

// Value wraps a cmp.Ordered value.
type Value[T cmp.Ordered] struct {
	v T
}

// Of wraps v.
func Of[T cmp.Ordered](v T) Value[T] {
	return Value[T]{v: v}
}

// Get returns the wrapped value.
func (o Value[T]) Get() T {
	return o.v
}

// Compare implements Comparable.
func (o Value[T]) Compare(other Value[T]) int {
	return cmp.Compare(o.v, other.v)
}

func (o Value[T]) String() string {
	return fmt.Sprint(o.v)
}

// Time wraps a time.Time so instants can be ordered.
type Time struct {
	t time.Time
}

// OfTime wraps t.
func OfTime(t time.Time) Time {
	return Time{t: t}
}

// Get returns the wrapped instant.
func (o Time) Get() time.Time {
	return o.t
}

// Compare implements Comparable.
func (o Time) Compare(other Time) int {
	return o.t.Compare(other.t)
}

func (o Time) String() string {
	return o.t.Format(time.RFC3339Nano)
}

// Wrap converts raw values to a slice of Value.
func Wrap[T cmp.Ordered](vs ...T) []Value[T] {
	out := make([]Value[T], len(vs))
	for i, v := range vs {
		out[i] = Of(v)
	}
	return out
}

// Unwrap is the inverse of Wrap.
func Unwrap[T cmp.Ordered](vs []Value[T]) []T {
	out := make([]T, len(vs))
	for i, v := range vs {
		out[i] = v.Get()
	}
	return out
}

// Less reports whether a orders strictly before b.
func Less[V Comparable[V]](a, b V) bool {
	return a.Compare(b) < 0
}

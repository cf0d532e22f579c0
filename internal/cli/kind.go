package cli

import (
	"strconv"
	"time"

	"github.com/davidvella/topq/ordered"
	"github.com/davidvella/topq/recordio"
)

// ValidKinds defines the value types a queue file may hold.
var ValidKinds = []string{"int", "string", "time"}

// kind describes how values of one type are read, written and printed.
type kind[V ordered.Comparable[V]] struct {
	parse func(string) (V, error)
	text  func(V) string
	json  func(V) any
	codec recordio.Codec[V]
}

var intKind = kind[ordered.Value[int64]]{
	parse: func(s string) (ordered.Value[int64], error) {
		n, err := strconv.ParseInt(s, 10, 64)
		return ordered.Of(n), err
	},
	text:  func(v ordered.Value[int64]) string { return strconv.FormatInt(v.Get(), 10) },
	json:  func(v ordered.Value[int64]) any { return v.Get() },
	codec: recordio.Int64,
}

var stringKind = kind[ordered.Value[string]]{
	parse: func(s string) (ordered.Value[string], error) { return ordered.Of(s), nil },
	text:  ordered.Value[string].Get,
	json:  func(v ordered.Value[string]) any { return v.Get() },
	codec: recordio.String,
}

var timeKind = kind[ordered.Time]{
	parse: func(s string) (ordered.Time, error) {
		t, err := time.Parse(time.RFC3339Nano, s)
		return ordered.OfTime(t), err
	},
	text:  ordered.Time.String,
	json:  func(v ordered.Time) any { return v.String() },
	codec: recordio.Time,
}

package audit_test

import (
	"iter"
	"slices"
	"testing"

	"github.com/davidvella/topq/audit"
	"github.com/davidvella/topq/ordered"
	"github.com/stretchr/testify/assert"
)

type V = ordered.Value[int]

func wrapAll(vss ...[]int) [][]V {
	out := make([][]V, len(vss))
	for i, vs := range vss {
		out[i] = ordered.Wrap(vs...)
	}
	return out
}

func TestCheck(t *testing.T) {
	before := [][]int{{3, 9, 1}, {7, 2}, {8}}

	tests := []struct {
		name     string
		after    [][]int
		out      []int
		outCount int
		wantErrs []error
	}{
		{
			name:     "valid run",
			after:    [][]int{{3, 1}, {2}, {}},
			out:      []int{9, 8, 7},
			outCount: 3,
		},
		{
			name:     "outCount above total",
			after:    [][]int{{}, {}, {}},
			out:      []int{9, 8, 7, 3, 2, 1},
			outCount: 10,
		},
		{
			name:     "value lost",
			after:    [][]int{{3}, {2}, {}},
			out:      []int{9, 8, 7},
			outCount: 3,
			wantErrs: []error{audit.ErrNotConserved},
		},
		{
			name:     "value duplicated",
			after:    [][]int{{3, 1, 1}, {2}, {}},
			out:      []int{9, 8, 7},
			outCount: 3,
			wantErrs: []error{audit.ErrNotConserved},
		},
		{
			name:     "output out of order",
			after:    [][]int{{3, 1}, {2}, {}},
			out:      []int{9, 7, 8},
			outCount: 3,
			wantErrs: []error{audit.ErrOutputOrder, audit.ErrWrongValues},
		},
		{
			name:     "short output",
			after:    [][]int{{3, 1}, {2}, {8}},
			out:      []int{9, 7},
			outCount: 3,
			wantErrs: []error{audit.ErrOutputSize, audit.ErrLeftBehind},
		},
		{
			name:     "wrong selection",
			after:    [][]int{{9, 1}, {2}, {}},
			out:      []int{8, 7, 3},
			outCount: 3,
			wantErrs: []error{audit.ErrWrongValues, audit.ErrLeftBehind},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := audit.Check(wrapAll(before...), wrapAll(tt.after...), ordered.Wrap(tt.out...), tt.outCount)

			if len(tt.wantErrs) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErrs {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestDescending(t *testing.T) {
	tests := []struct {
		name string
		seqs [][]int
		want []int
	}{
		{name: "no sequences", seqs: nil, want: nil},
		{name: "single", seqs: [][]int{{5, 3, 1}}, want: []int{5, 3, 1}},
		{name: "three", seqs: [][]int{{9, 4}, {8, 7, 1}, {6}}, want: []int{9, 8, 7, 6, 4, 1}},
		{name: "with empty", seqs: [][]int{{}, {2, 2}, {}, {3}, {1}}, want: []int{3, 2, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			seqs := make([]iter.Seq[V], 0, len(tt.seqs))
			for _, vs := range tt.seqs {
				seqs = append(seqs, slices.Values(ordered.Wrap(vs...)))
			}
			for v := range audit.Descending(seqs...) {
				got = append(got, v.Get())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescending_StopsEarly(t *testing.T) {
	var got []int
	for v := range audit.Descending(slices.Values(ordered.Wrap(5, 4, 3)), slices.Values(ordered.Wrap(6, 2))) {
		got = append(got, v.Get())
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []int{6, 5}, got)
}

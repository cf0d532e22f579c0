package audit

import (
	"iter"

	"github.com/davidvella/topq/ordered"
)

// Descending merges sequences that are each in descending order into one
// descending sequence.
//
// It is a loser tree laid out in an array: for M sequences, leaves live in
// positions M..2M-1, internal nodes in 1..M-1, and node N has parent N/2.
// Node 0 holds the overall winner. Exhausted leaves lose every game.
func Descending[V ordered.Comparable[V]](seqs ...iter.Seq[V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		if len(seqs) == 0 {
			return
		}

		t := tree[V]{nodes: make([]node[V], len(seqs)*2)}
		for i, s := range seqs {
			next, stop := iter.Pull(s)
			//nolint:gocritic // is not a leak.
			defer stop()
			t.nodes[i+len(seqs)].next = next
			t.moveNext(i + len(seqs))
		}

		t.initialize()
		for !t.nodes[0].item.done && yield(t.nodes[0].item.value) {
			t.moveNext(t.nodes[0].index)
			t.replayGames(t.nodes[0].index)
		}
	}
}

type tree[V ordered.Comparable[V]] struct {
	nodes []node[V]
}

type node[V ordered.Comparable[V]] struct {
	index int              // The loser for internal nodes, the winner for node 0.
	item  item[V]          // Copied from the loser, or the winner for node 0.
	next  func() (V, bool) // Only populated for leaf nodes.
}

type item[V ordered.Comparable[V]] struct {
	value V
	done  bool
}

// beats reports whether a wins a game against b.
func (a item[V]) beats(b item[V]) bool {
	if a.done {
		return false
	}
	if b.done {
		return true
	}
	return a.value.Compare(b.value) > 0
}

func (t *tree[V]) moveNext(index int) {
	n := &t.nodes[index]
	if v, ok := n.next(); ok {
		n.item = item[V]{value: v}
		return
	}
	n.item = item[V]{done: true}
}

func (t *tree[V]) initialize() {
	winner := t.playGame(1)
	t.nodes[0].index = winner
	t.nodes[0].item = t.nodes[winner].item
}

// Find the winner at position pos; if it is a non-leaf node, store the loser.
func (t *tree[V]) playGame(pos int) int {
	nodes := t.nodes
	if pos >= len(nodes)/2 {
		return pos
	}
	left := t.playGame(pos * 2)
	right := t.playGame(pos*2 + 1)
	var loser, winner int
	if nodes[left].item.beats(nodes[right].item) {
		loser, winner = right, left
	} else {
		loser, winner = left, right
	}
	nodes[pos].index = loser
	nodes[pos].item = nodes[loser].item
	return winner
}

// Starting at pos, which is a winner, re-consider all games up to the root.
func (t *tree[V]) replayGames(pos int) {
	nodes := t.nodes
	winning := nodes[pos].item
	for n := pos >> 1; n != 0; n >>= 1 {
		node := &nodes[n]
		if node.item.beats(winning) {
			node.index, pos = pos, node.index
			node.item, winning = winning, node.item
		}
	}
	nodes[0].index = pos
	nodes[0].item = winning
}

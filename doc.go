// Package topq selects the N largest values held across many FIFO queues
// using only queue primitives and a scratch buffer far smaller than the input.
//
// A run has two phases. First every input queue is sorted into descending
// order in place (see package sorter): queues that fit in the scratch buffer
// are sorted through it, larger ones by repeated rotation with O(1) extra
// storage. Then a single bounded selection pass (see package selector) streams
// candidates from each queue into a window of outCount entries, abandoning a
// queue as soon as its front value cannot make the cut, and writes the winners
// to the output queue largest first.
//
// Basic usage:
//
//	inQs := []queue.Queue[ordered.Value[int]]{
//	    queue.Of(ordered.Wrap(4, 17, 9)...),
//	    queue.Of(ordered.Wrap(12, 1)...),
//	}
//	outQ := queue.NewSlice[ordered.Value[int]](0)
//
//	o, err := topq.New(inQs, outQ, 3, 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	o.Run()
//	// outQ now holds 17, 12.
//
// Input queues are borrowed for the duration of Run. Afterwards each holds its
// original values minus the ones selected, in an undefined order: values
// displaced from the selection window are appended back at the tail of the
// queue they came from. Run is not meant to be repeated on the same
// Orchestrator.
package topq

// Package audit checks the post-conditions of a selection run.
//
// Given the values every input queue held before the run, the values they
// hold after it, and the values written to the output queue, Check verifies:
//   - Conservation: before equals after plus output, as multisets.
//   - Size: the output holds min(outCount, total input) values.
//   - Order: the output is non-increasing front to back.
//   - Correctness: the output matches the outCount largest inputs, and no
//     value left in an input queue is greater than the smallest output.
//
// Values are compared only through their Compare method, so two values that
// compare equal are interchangeable for every check.
//
// The multiset bookkeeping is held in a B-tree keyed by value. The expected
// selection is computed independently of the run by sorting each input and
// merging the sorted inputs through a loser tree.
package audit

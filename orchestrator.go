package topq

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/davidvella/topq/ordered"
	"github.com/davidvella/topq/queue"
	"github.com/davidvella/topq/scratch"
	"github.com/davidvella/topq/selector"
	"github.com/davidvella/topq/sorter"
)

var (
	ErrInvalidOutCount = errors.New("topq: outCount must be a positive integer")
	ErrInvalidBufSize  = errors.New("topq: bufSize must be greater than or equal to outCount")
)

// Stats describes the most recent run.
type Stats struct {
	RunID     string
	Buffered  int // queues sorted through the scratch buffer
	Rotated   int // queues sorted by rotation
	Selection selector.Report
	Duration  time.Duration
}

// Orchestrator sorts a set of input queues and selects their largest values
// into an output queue.
type Orchestrator[V ordered.Comparable[V]] struct {
	inQs     []queue.Queue[V]
	outQ     queue.Queue[V]
	buf      *scratch.Buffer[V]
	outCount int
	logger   logrus.FieldLogger
	stats    Stats
}

// New validates the configuration and returns an Orchestrator. It fails with
// ErrInvalidOutCount when outCount < 1 and ErrInvalidBufSize when
// bufSize < outCount. No queue is touched.
func New[V ordered.Comparable[V]](
	inQs []queue.Queue[V],
	outQ queue.Queue[V],
	bufSize, outCount int,
	opts ...Option,
) (*Orchestrator[V], error) {
	if outCount < 1 {
		return nil, ErrInvalidOutCount
	}
	if bufSize < outCount {
		return nil, ErrInvalidBufSize
	}

	// Apply default options
	o := defaultOptions()

	// Apply user options
	for _, opt := range opts {
		opt(&o)
	}

	return &Orchestrator[V]{
		inQs:     inQs,
		outQ:     outQ,
		buf:      scratch.New[V](bufSize),
		outCount: outCount,
		logger:   o.logger.WithField("run_id", o.runID),
		stats:    Stats{RunID: o.runID},
	}, nil
}

// Run sorts every input queue descending, then writes the outCount largest
// values to the output queue, largest first.
func (o *Orchestrator[V]) Run() {
	start := time.Now()
	o.sortInQs()
	o.writeToOutQ()
	o.stats.Duration = time.Since(start)

	o.logger.WithFields(logrus.Fields{
		"buffered":    o.stats.Buffered,
		"rotated":     o.stats.Rotated,
		"examined":    o.stats.Selection.Examined,
		"evicted":     o.stats.Selection.Evicted,
		"early_exits": o.stats.Selection.EarlyExits,
		"emitted":     o.stats.Selection.Emitted,
		"duration":    o.stats.Duration,
	}).Debug("run complete")
}

// Stats returns statistics for the last completed run.
func (o *Orchestrator[V]) Stats() Stats {
	return o.stats
}

func (o *Orchestrator[V]) sortInQs() {
	for i, q := range o.inQs {
		n := q.Len()
		strategy := sorter.Sort(q, o.buf)
		switch strategy {
		case sorter.Buffered:
			o.stats.Buffered++
		case sorter.Rotation:
			o.stats.Rotated++
		}

		o.logger.WithFields(logrus.Fields{
			"queue":    i,
			"len":      n,
			"strategy": strategy.String(),
		}).Debug("queue sorted")
	}
}

func (o *Orchestrator[V]) writeToOutQ() {
	o.stats.Selection = selector.Select(o.inQs, o.outQ, o.buf, o.outCount)
}

package topq

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// options defines all configuration options for the orchestrator.
type options struct {
	logger logrus.FieldLogger // Receives per-queue and per-run debug entries
	runID  string             // Attached to every log entry of the run
}

// Option is a function that configures the orchestrator options.
type Option func(*options)

// WithLogger sets the logger. Entries are logged at debug level.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRunID sets the identifier attached to log entries and Stats.
func WithRunID(id string) Option {
	return func(o *options) {
		o.runID = id
	}
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return options{
		logger: l,
		runID:  uuid.NewString(),
	}
}

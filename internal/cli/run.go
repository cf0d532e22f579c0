package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/davidvella/topq"
	"github.com/davidvella/topq/audit"
	"github.com/davidvella/topq/internal/config"
	"github.com/davidvella/topq/ordered"
	"github.com/davidvella/topq/queue"
	"github.com/davidvella/topq/queue/pebbleq"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	BufSize  int
	OutCount int
	Kind     string
	Store    string // Pebble directory; empty keeps queues in memory
	RunID    string
	Verify   bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <queue-file>...",
		Short: "Select the largest values across queue files",
		Long: `Load every file as one FIFO queue, sort each queue with the scratch
buffer or by rotation, then select the out largest values, largest first.

Text files hold one value per line. Files ending in .rec hold recordio frames.

Example:
  topq run --buf 5 --out 3 q1.txt q2.txt q3.txt
  topq run --kind time --format json --verify events/*.txt
  topq run --store ./queues.db --buf 64 --out 10 big/*.rec`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.applyConfig(cmd); err != nil {
				return err
			}
			return runSelect(cmd, opts, args)
		},
	}

	cmd.Flags().IntVar(&opts.BufSize, "buf", 0, "scratch buffer capacity (defaults to --out)")
	cmd.Flags().IntVar(&opts.OutCount, "out", 1, "number of values to select")
	cmd.Flags().StringVar(&opts.Kind, "kind", "int", fmt.Sprintf("value type %v", ValidKinds))
	cmd.Flags().StringVar(&opts.Store, "store", "", "keep queues in a Pebble database at this directory")
	cmd.Flags().StringVar(&opts.RunID, "run-id", "", "run identifier (random if empty)")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "check the run's post-conditions")

	return cmd
}

// applyConfig fills every flag the user did not set from the config file.
func (o *RunOptions) applyConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(o.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("buf") && cfg.BufSize != 0 {
		o.BufSize = cfg.BufSize
	}
	if !flags.Changed("out") && cfg.OutCount != 0 {
		o.OutCount = cfg.OutCount
	}
	if !flags.Changed("kind") && cfg.Kind != "" {
		o.Kind = cfg.Kind
	}
	if !flags.Changed("store") && cfg.Store != "" {
		o.Store = cfg.Store
	}
	if !flags.Changed("verify") && cfg.Verify {
		o.Verify = true
	}

	root := cmd.Root().PersistentFlags()
	if root.Lookup("format") != nil && !root.Changed("format") && cfg.Format != "" {
		o.Format = cfg.Format
	}
	if root.Lookup("log-level") != nil && !root.Changed("log-level") && cfg.LogLevel != "" {
		o.LogLevel = cfg.LogLevel
	}

	if err := o.validate(); err != nil {
		return err
	}

	if o.BufSize == 0 {
		o.BufSize = o.OutCount
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	return nil
}

func runSelect(cmd *cobra.Command, opts *RunOptions, files []string) error {
	switch opts.Kind {
	case "int":
		return selectValues(cmd, opts, files, intKind)
	case "string":
		return selectValues(cmd, opts, files, stringKind)
	case "time":
		return selectValues(cmd, opts, files, timeKind)
	default:
		return WrapExitError(ExitCommandError, "invalid kind",
			fmt.Errorf("%q: must be one of %v", opts.Kind, ValidKinds))
	}
}

type runStats struct {
	Buffered   int `json:"buffered"`
	Rotated    int `json:"rotated"`
	Examined   int `json:"examined"`
	Evicted    int `json:"evicted"`
	EarlyExits int `json:"early_exits"`
	Emitted    int `json:"emitted"`
}

type runResult struct {
	RunID    string   `json:"run_id"`
	Values   []any    `json:"values"`
	Stats    runStats `json:"stats"`
	Verified bool     `json:"verified"`
}

func selectValues[V ordered.Comparable[V]](cmd *cobra.Command, opts *RunOptions, files []string, k kind[V]) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr()).WithField("run_id", opts.RunID)
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	values, err := loadFiles(cmd.Context(), files, k)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load queues", err)
	}
	logger.WithField("queues", len(values)).Debug("queues loaded")

	qs, err := newQueues(opts, values, k, logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build queues", err)
	}
	defer qs.close()

	o, err := topq.New(qs.in, qs.out, opts.BufSize, opts.OutCount,
		topq.WithLogger(logger),
		topq.WithRunID(opts.RunID),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	o.Run()

	selected := queue.Drain(qs.out)
	if err := qs.err(); err != nil {
		return WrapExitError(ExitCommandError, "queue storage failed", err)
	}

	if opts.Verify {
		after := make([][]V, len(qs.in))
		for i, q := range qs.in {
			after[i] = queue.Snapshot(q)
		}
		if err := audit.Check(values, after, selected, opts.OutCount); err != nil {
			return WrapExitError(ExitFailure, "verification failed", err)
		}
		logger.Info("run verified")
	}

	stats := o.Stats()
	result := runResult{
		RunID:  opts.RunID,
		Values: make([]any, len(selected)),
		Stats: runStats{
			Buffered:   stats.Buffered,
			Rotated:    stats.Rotated,
			Examined:   stats.Selection.Examined,
			Evicted:    stats.Selection.Evicted,
			EarlyExits: stats.Selection.EarlyExits,
			Emitted:    stats.Selection.Emitted,
		},
		Verified: opts.Verify,
	}
	lines := make([]string, len(selected))
	for i, v := range selected {
		result.Values[i] = k.json(v)
		lines[i] = k.text(v)
	}

	return out.Success(result, lines)
}

// queues holds the input and output queues of a run and, when they live in
// Pebble, the store backing them.
type queues[V ordered.Comparable[V]] struct {
	in     []queue.Queue[V]
	out    queue.Queue[V]
	store  *pebbleq.Store
	stored []*pebbleq.Queue[V]
	logger logrus.FieldLogger
}

func newQueues[V ordered.Comparable[V]](opts *RunOptions, values [][]V, k kind[V], logger logrus.FieldLogger) (*queues[V], error) {
	qs := &queues[V]{in: make([]queue.Queue[V], len(values)), logger: logger}

	if opts.Store == "" {
		for i, vs := range values {
			r := queue.NewRing[V](len(vs))
			for _, v := range vs {
				r.Enqueue(v)
			}
			qs.in[i] = r
		}
		qs.out = queue.NewSlice[V](opts.OutCount)
		return qs, nil
	}

	store, err := pebbleq.OpenStore(pebbleq.StoreOptions{Path: opts.Store})
	if err != nil {
		return nil, err
	}
	qs.store = store

	attach := func(name string) (*pebbleq.Queue[V], error) {
		q, err := pebbleq.Attach(store, opts.RunID+"/"+name, k.codec)
		if err != nil {
			return nil, errors.Wrapf(err, "attach %s", name)
		}
		qs.stored = append(qs.stored, q)
		return q, nil
	}

	for i, vs := range values {
		q, err := attach(fmt.Sprintf("in/%d", i))
		if err != nil {
			qs.close()
			return nil, err
		}
		for _, v := range vs {
			q.Enqueue(v)
		}
		qs.in[i] = q
	}
	out, err := attach("out")
	if err != nil {
		qs.close()
		return nil, err
	}
	qs.out = out

	if err := qs.err(); err != nil {
		qs.close()
		return nil, err
	}
	return qs, nil
}

// err returns the first error latched by a Pebble-backed queue.
func (qs *queues[V]) err() error {
	for _, q := range qs.stored {
		if err := q.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (qs *queues[V]) close() {
	if qs.store == nil {
		return
	}
	if err := qs.store.Close(); err != nil {
		qs.logger.WithError(err).Error("error closing queue store")
	}
}

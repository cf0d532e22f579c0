package cli

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/davidvella/topq/ordered"
	"github.com/davidvella/topq/recordio"
)

// GenOptions holds flags for the gen command.
type GenOptions struct {
	*RootOptions
	Queues int
	Size   int
	Seed   int64
	Dir    string
	Binary bool
}

// NewGenCommand creates the gen command.
func NewGenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate queue files holding shuffled distinct integers",
		Long: `Write --queues files of --size integers each. Together the files hold
every integer from 1 to queues*size exactly once, in random order.

Example:
  topq gen --queues 5 --size 5 --dir ./queues
  topq gen --queues 100 --size 1000 --seed 7 --binary --dir ./big`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Queues, "queues", 5, "number of queue files")
	cmd.Flags().IntVar(&opts.Size, "size", 5, "values per queue")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "output directory")
	cmd.Flags().BoolVar(&opts.Binary, "binary", false, "write recordio .rec files instead of text")

	return cmd
}

func generate(cmd *cobra.Command, opts *GenOptions) error {
	if opts.Queues < 1 || opts.Size < 0 {
		return WrapExitError(ExitCommandError, "invalid shape",
			fmt.Errorf("queues must be positive and size non-negative, got %d and %d", opts.Queues, opts.Size))
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return WrapExitError(ExitCommandError, "failed to create directory", err)
	}

	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	vals := rand.New(rand.NewSource(opts.Seed)).Perm(opts.Queues * opts.Size)

	ext := ".txt"
	if opts.Binary {
		ext = ".rec"
	}

	paths := make([]string, opts.Queues)
	for i := range opts.Queues {
		path := filepath.Join(opts.Dir, fmt.Sprintf("q%03d%s", i, ext))
		chunk := vals[i*opts.Size : (i+1)*opts.Size]
		if err := writeQueueFile(path, chunk, opts.Binary); err != nil {
			return WrapExitError(ExitCommandError, "failed to write queue file", err)
		}
		paths[i] = path
		logger.WithField("path", path).Debug("queue file written")
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(map[string]any{"files": paths}, paths)
}

// writeQueueFile writes each value plus one, so values start at 1.
func writeQueueFile(path string, vals []int, binary bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create queue file")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	w := bufio.NewWriter(f)
	for _, v := range vals {
		n := int64(v + 1)
		if binary {
			_, err = recordio.Write(w, recordio.Int64, ordered.Of(n))
		} else {
			_, err = w.WriteString(strconv.FormatInt(n, 10) + "\n")
		}
		if err != nil {
			return errors.Wrapf(err, "write %s", path)
		}
	}
	return errors.Wrapf(w.Flush(), "flush %s", path)
}

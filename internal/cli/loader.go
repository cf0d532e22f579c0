package cli

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/davidvella/topq/ordered"
	"github.com/davidvella/topq/recordio"
)

// maxConcurrentLoads bounds how many queue files are read at once.
const maxConcurrentLoads = 8

// loadFiles reads each file as one queue, front of the queue first. Files
// ending in .rec are recordio frames; anything else is text with one value per
// line, where blank lines and lines starting with # are skipped.
func loadFiles[V ordered.Comparable[V]](ctx context.Context, files []string, k kind[V]) ([][]V, error) {
	out := make([][]V, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			vs, err := loadFile(path, k)
			if err != nil {
				return err
			}
			out[i] = vs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadFile[V ordered.Comparable[V]](path string, k kind[V]) ([]V, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open queue file")
	}
	defer f.Close()

	if filepath.Ext(path) == ".rec" {
		vs, err := recordio.ReadAll(bufio.NewReader(f), k.codec)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		return vs, nil
	}

	var vs []V
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		v, err := k.parse(s)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, line)
		}
		vs = append(vs, v)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return vs, nil
}

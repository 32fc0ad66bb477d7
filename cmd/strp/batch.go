package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/HammadMal/STRP-1/internal/coursefile"
	"github.com/HammadMal/STRP-1/internal/engine"
)

// scoreFunc turns one workbook into a scored run.
type scoreFunc func(ctx context.Context, path string) (*engine.Run, error)

// fileResult is the outcome of one workbook in a batch.
type fileResult struct {
	Path   string           `json:"file"`
	Course *coursefile.Info `json:"course,omitempty"`
	Run    *engine.Run      `json:"report,omitempty"`
	Err    error            `json:"-"`
	Error  string           `json:"error,omitempty"`
}

func isWorkbook(name string) bool {
	if strings.HasPrefix(name, "~$") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".xlsx" || ext == ".xls"
}

//
// collect expands folders into the workbooks they hold, in lexical
// order. Plain files are kept whatever their extension so the name
// check can report them.
//
func collect(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrap(err, "cannot read input")
		}
		if !st.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isWorkbook(d.Name()) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "cannot walk %s", arg)
		}
	}
	return files, nil
}

//
// runBatch scores every file with at most workers in flight. A failing
// file never stops the others, results come back in input order.
//
func runBatch(ctx context.Context, files []string, workers int, score scoreFunc) []fileResult {
	results := make([]fileResult, len(files))
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			res := fileResult{Path: path}
			if info, err := coursefile.Parse(path); err == nil {
				res.Course = &info
			}
			if err := ctx.Err(); err != nil {
				res.Err = err
			} else {
				res.Run, res.Err = score(ctx, path)
			}
			if res.Err != nil {
				res.Error = res.Err.Error()
			}
			results[i] = res
			return nil
		})
	}
	g.Wait()

	return results
}

func failures(results []fileResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

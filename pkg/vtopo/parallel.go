package vtopo

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// LoadOptions controls parallel loading behavior and error handling.
type LoadOptions struct {
	// Parse is applied to every file.
	Parse ParseOptions

	// Workers specifies the number of concurrent parses.
	// If 0, defaults to runtime.NumCPU().
	Workers int

	// SkipErrors causes loading to continue even when individual surveys fail.
	// Failed surveys are skipped and errors are collected.
	// When false, the first error cancels the remaining work and is returned alone.
	SkipErrors bool

	// Progress is an optional callback for tracking loading progress.
	// Called after each file is processed (successfully or with error),
	// never concurrently.
	Progress func(loaded, total int)

	// Logger receives one warning per failed file. Optional.
	Logger *slog.Logger
}

// LoadSurveysParallel loads multiple surveys concurrently.
//
// Surveys are returned in the order of paths, with failed files left out.
// With SkipErrors the returned errors hold one entry per failed file;
// otherwise loading stops at the first failure and only that error is
// returned. Cancelling ctx stops scheduling new files.
//
// Example:
//
//	surveys, errs := vtopo.LoadSurveysParallel(ctx, paths, vtopo.NewParser(), vtopo.LoadOptions{
//	    Parse:      vtopo.DefaultParseOptions(),
//	    Workers:    8,
//	    SkipErrors: true,
//	    Progress: func(loaded, total int) {
//	        fmt.Printf("\rLoading: %d/%d", loaded, total)
//	    },
//	})
func LoadSurveysParallel(ctx context.Context, paths []string, parser Parser, opts LoadOptions) ([]*Survey, []error) {
	if len(paths) == 0 {
		return []*Survey{}, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]*Survey, len(paths))
	failures := make([]error, len(paths))

	var mu sync.Mutex
	loaded := 0
	done := func() {
		if opts.Progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		loaded++
		opts.Progress(loaded, len(paths))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			survey, err := parser.ParseWithOptions(path, opts.Parse)
			done()
			if err != nil {
				err = fmt.Errorf("%s: %w", path, err)
				if opts.Logger != nil {
					opts.Logger.Warn("failed to load survey", "path", path, "error", err)
				}
				if !opts.SkipErrors {
					return err
				}
				failures[i] = err
				return nil
			}

			results[i] = survey
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, []error{err}
	}
	if err := ctx.Err(); err != nil {
		return nil, []error{err}
	}

	surveys := make([]*Survey, 0, len(paths))
	var errs []error
	for i := range paths {
		if failures[i] != nil {
			errs = append(errs, failures[i])
			continue
		}
		if results[i] != nil {
			surveys = append(surveys, results[i])
		}
	}
	return surveys, errs
}

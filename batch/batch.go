// Package batch resolves the file groups of many specification roots in
// parallel. Every root gets its own path list, so resolutions share no
// state; a weighted semaphore bounds how many trees are walked at once.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/podlift/fileset/fileaccess"
	"github.com/podlift/fileset/pathlist"
)

// Request pairs one root directory with the consumer describing it.
type Request struct {
	Root     string
	Consumer fileaccess.Consumer
}

// Result holds the resolved output for one request.
type Result struct {
	// Root is the absolute form of the request's root.
	Root string
	// Groups carries every resolved file role of the specification.
	Groups *fileaccess.Groups
}

// Runner resolves request batches with bounded parallelism.
type Runner struct {
	sem *semaphore.Weighted
	cfg fileaccess.Config
}

// NewRunner creates a Runner allowing up to maxParallel concurrent
// resolutions; values below 1 are treated as 1. cfg is shared by every
// resolver the runner builds.
func NewRunner(maxParallel int64, cfg fileaccess.Config) *Runner {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Runner{
		sem: semaphore.NewWeighted(maxParallel),
		cfg: cfg,
	}
}

// ResolveAll resolves every request and returns the results in request
// order. The first failure cancels the remaining work and is returned with
// the failing root attached; no partial results are returned alongside an
// error.
func (r *Runner) ResolveAll(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)

	for i, req := range reqs {
		i, req := i, req // capture loop variables
		g.Go(func() error {
			if err := r.sem.Acquire(gctx, 1); err != nil {
				return fmt.Errorf("batch: acquire slot for %q: %w", req.Root, err)
			}
			defer r.sem.Release(1)

			list, err := pathlist.New(req.Root)
			if err != nil {
				return fmt.Errorf("batch: %q: %w", req.Root, err)
			}

			resolver, err := fileaccess.New(list, req.Consumer, r.cfg)
			if err != nil {
				return fmt.Errorf("batch: %q: %w", req.Root, err)
			}

			groups, err := resolver.Groups()
			if err != nil {
				return fmt.Errorf("batch: %q: %w", req.Root, err)
			}

			results[i] = Result{Root: list.Root(), Groups: groups}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

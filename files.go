package cksum

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FileResult pairs one input with its outcome. Err carries per-input
// failures; the other inputs are unaffected.
type FileResult struct {
	Name string
	Result
	Err error
}

// SumFiles checksums the named inputs concurrently, bounded by
// WithConcurrency. Results keep input order. Each stream is still computed
// sequentially; only independent inputs run in parallel. Context
// cancellation aborts the remaining inputs, which report the context error.
func SumFiles(ctx context.Context, names []string, opts ...Option) []FileResult {
	o := applyOptions(opts)

	results := make([]FileResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, name := range names {
		g.Go(func() error {
			res, err := SumFile(gctx, name, opts...)
			results[i] = FileResult{Name: name, Result: res, Err: err}
			return nil
		})
	}

	// Per-input failures live in the result slice, so Wait only observes
	// context errors.
	_ = g.Wait()
	return results
}

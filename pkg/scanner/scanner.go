// Package scanner aggregates match results across many files.
package scanner

import (
	"context"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/NickCirv/perf-x-ray/pkg/matcher"
	"github.com/NickCirv/perf-x-ray/pkg/types"
)

// ContentProvider supplies file content for a path. A failed read makes the
// aggregator skip that file; it never aborts the batch.
type ContentProvider func(path string) ([]byte, error)

// FileProvider reads content from the local filesystem.
func FileProvider(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Aggregator runs the match engine across many files.
type Aggregator struct {
	engine  *matcher.Engine
	log     zerolog.Logger
	workers int
}

// New creates an aggregator around a compiled engine. Skipped files are
// reported on logger at debug level.
func New(engine *matcher.Engine, logger zerolog.Logger) *Aggregator {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{engine: engine, log: logger, workers: workers}
}

// ScanAll scans every path and returns findings at or above minSeverity.
// Files are read and matched by a worker pool, but per-file results are
// collected by path index and concatenated in the original path order, so
// the output is identical to a sequential scan: file-iteration order, then
// within a file the engine's emission order. Cancellation is coarse, between
// files; the only error ScanAll returns is the context's.
func (a *Aggregator) ScanAll(ctx context.Context, paths []string, provider ContentProvider, minSeverity types.Severity) ([]*types.Finding, error) {
	results := make([][]*types.Finding, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			content, err := provider(path)
			if err != nil {
				a.log.Debug().Err(err).Str("file", path).Msg("skipping unreadable file")
				return nil
			}
			results[i] = Filter(a.engine.Scan(path, content), minSeverity)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var findings []*types.Finding
	for _, r := range results {
		findings = append(findings, r...)
	}
	return findings, nil
}

// Filter keeps findings whose severity rank is at least the floor's rank.
// No deduplication happens here or anywhere else: two rules matching the
// same line both keep their findings.
func Filter(findings []*types.Finding, min types.Severity) []*types.Finding {
	if min.Rank() == 0 {
		return findings
	}
	var out []*types.Finding
	for _, f := range findings {
		if f.Severity.Rank() >= min.Rank() {
			out = append(out, f)
		}
	}
	return out
}

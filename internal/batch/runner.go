// Package batch parses pending raw addresses from the store in parallel.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/streetsweeper/internal/address"
	"github.com/streetsweeper/internal/db"
	"github.com/streetsweeper/internal/debug"
	"github.com/streetsweeper/internal/normalize"
	"github.com/streetsweeper/internal/parser"
)

// Store is the part of db.Store the runner needs.
type Store interface {
	Pending(ctx context.Context, limit int) ([]db.RawAddress, error)
	SaveParsed(ctx context.Context, id int64, a address.Address) error
	MarkUnmatched(ctx context.Context, id int64) error
}

// Stats summarises a run.
type Stats struct {
	Batches   int
	Processed int
	Parsed    int
	Unmatched int
	Elapsed   time.Duration
}

// Runner drains the pending queue batch by batch.
type Runner struct {
	Parser    *parser.Parser
	Store     Store
	Workers   int
	BatchSize int
	Options   normalize.Options
	Log       *debug.Logger
}

type rowResult struct {
	matched bool
	err     error
}

// Run processes batches until no pending rows remain, the context is
// cancelled, or a store write fails. Rows whose write failed stay pending.
func (r *Runner) Run(ctx context.Context) (stats Stats, err error) {
	start := time.Now()
	defer func() { stats.Elapsed = time.Since(start) }()

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	size := r.BatchSize
	if size < 1 {
		size = 1
	}

	r.Log.Header("batch run")
	defer r.Log.Footer("batch run")

	for {
		if err = ctx.Err(); err != nil {
			return stats, err
		}

		var rows []db.RawAddress
		rows, err = r.Store.Pending(ctx, size)
		if err != nil {
			return stats, fmt.Errorf("failed to load batch %d: %w", stats.Batches+1, err)
		}
		if len(rows) == 0 {
			return stats, nil
		}
		stats.Batches++
		r.Log.Printf("Batch %d: %d addresses across %d workers", stats.Batches, len(rows), workers)

		results := r.processBatch(ctx, rows, workers)

		var firstErr error
		for _, res := range results {
			if res.err != nil {
				if firstErr == nil {
					firstErr = res.err
				}
				continue
			}
			stats.Processed++
			if res.matched {
				stats.Parsed++
			} else {
				stats.Unmatched++
			}
		}
		if firstErr != nil {
			return stats, fmt.Errorf("failed to process batch %d: %w", stats.Batches, firstErr)
		}
	}
}

func (r *Runner) processBatch(ctx context.Context, rows []db.RawAddress, workers int) []rowResult {
	jobs := make(chan int, len(rows))
	for i := range rows {
		jobs <- i
	}
	close(jobs)

	results := make([]rowResult, len(rows))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.processRow(ctx, workerID, rows[i])
			}
		}(w)
	}
	wg.Wait()
	return results
}

func (r *Runner) processRow(ctx context.Context, workerID int, row db.RawAddress) rowResult {
	if err := ctx.Err(); err != nil {
		return rowResult{err: err}
	}

	a, ok := r.Parser.Parse(row.Address, r.Options)
	if !ok {
		r.Log.Printf("Worker %d: no match for %d %q", workerID, row.ID, row.Address)
		if err := r.Store.MarkUnmatched(ctx, row.ID); err != nil {
			return rowResult{err: err}
		}
		return rowResult{}
	}

	if err := r.Store.SaveParsed(ctx, row.ID, a); err != nil {
		return rowResult{err: err}
	}
	r.Log.Printf("Worker %d: %d -> %s", workerID, row.ID, a.FullStreetAddress())
	return rowResult{matched: true}
}

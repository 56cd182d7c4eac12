// Package supervisor fans a snapshot run out across table workers with
// a bounded degree of concurrency, joining their results without
// letting one table's failure cancel the others.
package supervisor

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"maskframe/internal/orchestrator"
	"maskframe/internal/report"
)

// Run schedules up to maxConcurrency table jobs at a time via run,
// waits for all of them to join, and returns the aggregated report.
// A failing table is recorded on its TableResult and logged; it never
// cancels or blocks the remaining table workers.
func Run(ctx context.Context, maxConcurrency int, jobs []orchestrator.Job, run func(context.Context, orchestrator.Job) report.TableResult) []report.TableResult {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrency)

	results := make([]report.TableResult, len(jobs))
	var mu sync.Mutex

	for i, job := range jobs {
		i, job := i, job
		group.Go(func() error {
			result := run(groupCtx, job)
			mu.Lock()
			results[i] = result
			mu.Unlock()
			// A table failure is captured on its own TableResult, never
			// returned here: returning it would cancel groupCtx and
			// abort sibling table workers still in flight.
			return nil
		})
	}

	_ = group.Wait()
	return results
}

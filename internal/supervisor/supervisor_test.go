package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maskframe/internal/orchestrator"
	"maskframe/internal/report"
)

func TestRunCollectsResultsInJobOrder(t *testing.T) {
	jobs := []orchestrator.Job{
		{Table: "a"},
		{Table: "b"},
		{Table: "c"},
	}

	results := Run(context.Background(), 2, jobs, func(_ context.Context, job orchestrator.Job) report.TableResult {
		return report.TableResult{Table: job.Table}
	})

	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Table)
	assert.Equal(t, "b", results[1].Table)
	assert.Equal(t, "c", results[2].Table)
}

func TestRunDoesNotCancelSiblingsOnFailure(t *testing.T) {
	jobs := []orchestrator.Job{
		{Table: "failing"},
		{Table: "slow-but-fine"},
	}

	var ran int32
	results := Run(context.Background(), 2, jobs, func(ctx context.Context, job orchestrator.Job) report.TableResult {
		atomic.AddInt32(&ran, 1)
		if job.Table == "failing" {
			return report.TableResult{Table: job.Table, Err: errors.New("boom")}
		}
		assert.NoError(t, ctx.Err(), "sibling's context must not be canceled by another table's failure")
		return report.TableResult{Table: job.Table}
	})

	assert.Equal(t, int32(2), ran)
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}

func TestRunRespectsConcurrencyLimit(t *testing.T) {
	jobs := make([]orchestrator.Job, 8)
	for i := range jobs {
		jobs[i] = orchestrator.Job{Table: "t"}
	}

	var inFlight, maxInFlight int32
	results := Run(context.Background(), 3, jobs, func(_ context.Context, job orchestrator.Job) report.TableResult {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			max := atomic.LoadInt32(&maxInFlight)
			if cur <= max || atomic.CompareAndSwapInt32(&maxInFlight, max, cur) {
				break
			}
		}
		atomic.AddInt32(&inFlight, -1)
		return report.TableResult{Table: job.Table}
	})

	require.Len(t, results, 8)
	assert.LessOrEqual(t, maxInFlight, int32(3))
}

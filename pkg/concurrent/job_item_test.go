package concurrent

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionRowRanges(t *testing.T) {
	jobs := PartitionRowRanges(10, 3)
	assert.Len(t, jobs, 3)

	covered := make([]bool, 10)
	for _, j := range jobs {
		for i := j.JobItem.Start; i < j.JobItem.End; i++ {
			assert.False(t, covered[i], "row %d assigned twice", i)
			covered[i] = true
		}
	}
	for i, c := range covered {
		assert.True(t, c, "row %d unassigned", i)
	}
}

func TestPartitionRowRangesMoreWorkersThanRows(t *testing.T) {
	jobs := PartitionRowRanges(2, 8)
	assert.Len(t, jobs, 2)
	assert.Equal(t, NewRowRangeParam(0, 1), jobs[0].JobItem)
	assert.Equal(t, NewRowRangeParam(1, 2), jobs[1].JobItem)

	assert.Empty(t, PartitionRowRanges(0, 4))
}

func TestDistributeJobs(t *testing.T) {
	var processed atomic.Int64

	jobs := PartitionRowRanges(100, 4)
	err := DistributeJobs(context.Background(), 4, jobs, func(_ context.Context, job Job[RowRangeParam]) error {
		processed.Add(int64(job.JobItem.End - job.JobItem.Start))
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(100), processed.Load())
}

func TestDistributeJobsPropagatesError(t *testing.T) {
	jobs := PartitionRowRanges(10, 2)
	err := DistributeJobs(context.Background(), 2, jobs, func(_ context.Context, job Job[RowRangeParam]) error {
		if job.ID == 1 {
			return assert.AnError
		}
		return nil
	})
	assert.ErrorIs(t, err, assert.AnError)
}

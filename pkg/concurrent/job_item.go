package concurrent

import (
	"context"
	"sync"
)

// RowRangeParam is a half-open [Start, End) partition of the OD row table.
// Each worker owns its ranges exclusively and writes only into those rows.
type RowRangeParam struct {
	Start int
	End   int
}

func NewRowRangeParam(start, end int) RowRangeParam {
	return RowRangeParam{Start: start, End: end}
}

type JobI interface {
	RowRangeParam | []int32
}

type Job[T JobI] struct {
	ID      int
	JobItem T
}

type JobFunc[T JobI] func(ctx context.Context, job Job[T]) error

// PartitionRowRanges splits total rows into numWorkers contiguous ranges.
func PartitionRowRanges(total, numWorkers int) []Job[RowRangeParam] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numWorkers > total {
		numWorkers = total
	}
	jobs := make([]Job[RowRangeParam], 0, numWorkers)
	if total == 0 {
		return jobs
	}

	chunk := total / numWorkers
	rem := total % numWorkers
	start := 0
	for i := 0; i < numWorkers; i++ {
		end := start + chunk
		if i < rem {
			end++
		}
		jobs = append(jobs, Job[RowRangeParam]{ID: i, JobItem: NewRowRangeParam(start, end)})
		start = end
	}
	return jobs
}

// DistributeJobs fans jobs out over numWorkers goroutines and waits for all
// of them. The first error wins; remaining jobs still drain so no worker
// leaks.
func DistributeJobs[T JobI](ctx context.Context, numWorkers int, jobs []Job[T], fn JobFunc[T]) error {
	if numWorkers < 1 {
		numWorkers = 1
	}

	jobChan := make(chan Job[T])
	var wg sync.WaitGroup

	var once sync.Once
	var firstErr error

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				if err := fn(ctx, job); err != nil {
					once.Do(func() { firstErr = err })
				}
			}
		}()
	}

	for _, job := range jobs {
		jobChan <- job
	}
	close(jobChan)
	wg.Wait()

	return firstErr
}

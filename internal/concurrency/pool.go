// Package concurrency provides a small bounded fan-out helper built on
// errgroup, used by any component that needs to run a fixed batch of
// independent I/O-bound jobs with a worker cap, per-job panic isolation,
// and first-error propagation without aborting sibling jobs.
package concurrency

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Job is one unit of fan-out work. index is the job's position in the
// batch passed to Run, useful for writing results back into a
// pre-allocated, order-preserving slice.
type Job func(ctx context.Context, index int) error

// Run executes jobs with at most maxWorkers running concurrently. Unlike
// errgroup's default behavior, a job returning an error does not cancel
// ctx for the others -- every job runs to completion (or to ctx's own
// cancellation) and Run returns the first error seen, if any. A panic
// inside a job is recovered and reported as an error for that job only.
func Run(ctx context.Context, maxWorkers int, jobs []Job) error {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if len(jobs) == 0 {
		return nil
	}

	sem := semaphore.NewWeighted(int64(maxWorkers))
	var g errgroup.Group

	for i, job := range jobs {
		i, job := i, job
		if err := sem.Acquire(ctx, 1); err != nil {
			// Caller's context died before we could schedule this job;
			// remaining jobs are simply not started.
			break
		}
		g.Go(func() (err error) {
			defer sem.Release(1)
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("concurrency: job %d panicked: %v", i, r)
				}
			}()
			return job(ctx, i)
		})
	}

	return g.Wait()
}

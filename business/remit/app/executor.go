package app

import (
	"context"
	"fmt"
	"time"

	"github.com/fd1az/remit-aggregator/business/remit/domain"
	"github.com/fd1az/remit-aggregator/internal/concurrency"
	"github.com/fd1az/remit-aggregator/internal/logger"
)

const (
	// defaultPerProviderTimeout is used when the request does not set
	// Options.PerProviderTimeoutMS.
	defaultPerProviderTimeout = 30 * time.Second

	// defaultMaxWorkers caps the worker pool when the request and the
	// active adapter count don't otherwise bound it.
	defaultMaxWorkers = 32

	// drainTimeout bounds how long the executor waits for in-flight
	// adapters to acknowledge cancellation before abandoning them.
	drainTimeout = 2 * time.Second
)

// Executor fans out a QuoteRequest to a set of adapters in parallel,
// enforcing a per-adapter deadline and isolating panics.
type Executor struct {
	logger logger.LoggerInterface
}

// NewExecutor builds an Executor.
func NewExecutor(log logger.LoggerInterface) *Executor {
	return &Executor{logger: log}
}

// Dispatch runs req against every adapter in adapters, in registry
// order, respecting ctx's cancellation. The returned slice is ordered
// identically to adapters, independent of completion order.
func (e *Executor) Dispatch(ctx context.Context, req domain.QuoteRequest, adapters []ProviderAdapter) []domain.RawResult {
	results := make([]domain.RawResult, len(adapters))

	perCallTimeout := defaultPerProviderTimeout
	if req.Options.PerProviderTimeoutMS != nil {
		perCallTimeout = time.Duration(*req.Options.PerProviderTimeoutMS) * time.Millisecond
	}

	maxWorkers := len(adapters)
	if maxWorkers > defaultMaxWorkers {
		maxWorkers = defaultMaxWorkers
	}
	if req.Options.MaxWorkers != nil && *req.Options.MaxWorkers > 0 {
		maxWorkers = *req.Options.MaxWorkers
	}
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	drainCtx, cancelDrain := context.WithTimeout(context.Background(), drainTimeout)
	defer cancelDrain()

	jobs := make([]concurrency.Job, len(adapters))
	for i, adapter := range adapters {
		i, adapter := i, adapter
		jobs[i] = func(_ context.Context, _ int) error {
			results[i] = e.invoke(ctx, drainCtx, adapter, req, perCallTimeout)
			return nil
		}
	}

	// Errors from individual jobs are never propagated: a failed adapter
	// becomes a failed RawResult, never aborts the batch.
	_ = concurrency.Run(drainCtx, maxWorkers, jobs)

	for i, adapter := range adapters {
		if results[i].ProviderID == "" {
			results[i] = domain.RawResult{
				ProviderID:   adapter.ID(),
				Success:      false,
				ErrorKind:    domain.ErrorKindInternal,
				ErrorMessage: "adapter did not produce a result before drain timeout",
			}
		}
	}

	return results
}

// invoke runs a single adapter with its own deadline, translating panics
// and deadline overruns into the appropriate typed failure.
func (e *Executor) invoke(callerCtx, drainCtx context.Context, adapter ProviderAdapter, req domain.QuoteRequest, timeout time.Duration) (result domain.RawResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error(callerCtx, "provider adapter panicked",
				"provider", adapter.ID(), "panic", fmt.Sprintf("%v", r))
			result = domain.RawResult{
				ProviderID:   adapter.ID(),
				Success:      false,
				ErrorKind:    domain.ErrorKindInternal,
				ErrorMessage: "adapter panicked",
			}
		}
	}()

	if callerCtx.Err() != nil {
		return domain.RawResult{
			ProviderID:   adapter.ID(),
			Success:      false,
			ErrorKind:    domain.ErrorKindInternal,
			ErrorMessage: "request cancelled before dispatch",
		}
	}

	ctx, cancel := context.WithTimeout(callerCtx, timeout)
	defer cancel()

	done := make(chan domain.RawResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- domain.RawResult{
					ProviderID:   adapter.ID(),
					Success:      false,
					ErrorKind:    domain.ErrorKindInternal,
					ErrorMessage: "adapter panicked",
				}
				return
			}
		}()
		done <- adapter.Quote(ctx, req)
	}()

	select {
	case res := <-done:
		res.ProviderID = adapter.ID()
		return res
	case <-ctx.Done():
		// Give the adapter until the drain deadline to acknowledge
		// cancellation before this slot is abandoned as a Timeout.
		select {
		case res := <-done:
			res.ProviderID = adapter.ID()
			return res
		case <-drainCtx.Done():
			return domain.RawResult{
				ProviderID:   adapter.ID(),
				Success:      false,
				ErrorKind:    domain.ErrorKindTimeout,
				ErrorMessage: "provider did not respond within deadline",
			}
		}
	}
}

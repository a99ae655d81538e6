package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// JobResult represents the outcome of a single job.
type JobResult struct {
	Name     string
	Err      error
	Duration time.Duration
}

type job struct {
	result JobResult
	done   bool
}

// WorkerPool runs submitted jobs concurrently with optional bounded
// concurrency.
type WorkerPool struct {
	ctx      context.Context
	cancel   context.CancelFunc
	slots    chan struct{} // nil when unbounded
	failFast bool

	wg   sync.WaitGroup
	mu   sync.Mutex
	jobs []job
}

// NewWorkerPool creates a new worker pool.
// If maxWorkers is 0, unlimited workers are allowed.
// If failFast is true, the context passed to jobs is cancelled on the first error.
func NewWorkerPool(ctx context.Context, maxWorkers int, failFast bool) *WorkerPool {
	ctx, cancel := context.WithCancel(ctx)
	p := &WorkerPool{
		ctx:      ctx,
		cancel:   cancel,
		failFast: failFast,
	}
	if maxWorkers > 0 {
		p.slots = make(chan struct{}, maxWorkers)
	}
	return p
}

// Submit schedules fn and returns the index of its result in Wait. A job
// that never starts because the context was cancelled is recorded with the
// context error.
func (p *WorkerPool) Submit(name string, fn func(ctx context.Context) error) int {
	p.mu.Lock()
	idx := len(p.jobs)
	p.jobs = append(p.jobs, job{result: JobResult{Name: name}})
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(idx, fn)
	return idx
}

func (p *WorkerPool) run(idx int, fn func(ctx context.Context) error) {
	defer p.wg.Done()

	if p.slots != nil {
		select {
		case p.slots <- struct{}{}:
			defer func() { <-p.slots }()
		case <-p.ctx.Done():
			p.finish(idx, p.ctx.Err(), 0)
			return
		}
	}
	if err := p.ctx.Err(); err != nil {
		p.finish(idx, err, 0)
		return
	}

	start := time.Now()
	err := fn(p.ctx)
	p.finish(idx, err, time.Since(start))
}

func (p *WorkerPool) finish(idx int, err error, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.jobs[idx].result.Err = err
	p.jobs[idx].result.Duration = d
	p.jobs[idx].done = true
	if err != nil && p.failFast {
		p.cancel()
	}
}

// Wait blocks until every submitted job has settled and returns the results
// in submission order, along with the failures.
func (p *WorkerPool) Wait() ([]JobResult, []error) {
	p.wg.Wait()
	p.cancel()
	return p.Results(), p.Errors()
}

// Results returns the jobs settled so far, in submission order.
func (p *WorkerPool) Results() []JobResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	results := make([]JobResult, 0, len(p.jobs))
	for _, j := range p.jobs {
		if j.done {
			results = append(results, j.result)
		}
	}
	return results
}

// Errors returns the failures settled so far, each prefixed with its job name.
func (p *WorkerPool) Errors() []error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for _, j := range p.jobs {
		if j.done && j.result.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", j.result.Name, j.result.Err))
		}
	}
	return errs
}

// Cancel cancels all pending work in the pool.
func (p *WorkerPool) Cancel() {
	p.cancel()
}

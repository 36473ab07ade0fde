// Package dispatch runs one operator over a file list, either in order or on
// a bounded pool of workers, and collects per-file outcomes.
package dispatch

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/lepinkainen/texturetool/types"
)

// ErrPanic wraps a panic recovered from an operator call.
var ErrPanic = errors.New("operator panicked")

// Result is the outcome of one operator call.
type Result struct {
	Path     string
	Worker   int
	Outcome  types.Outcome
	Duration time.Duration
}

// Observer receives progress events. Started is called from worker
// goroutines and must be safe for concurrent use; Finished is always called
// from the goroutine running Run.
type Observer interface {
	Started(worker int, path string)
	Finished(r Result)
}

// Dispatcher applies Op to every file of a run.
type Dispatcher struct {
	Op       types.Operator
	Config   *types.RunConfig
	Observer Observer
}

// New returns a Dispatcher. obs may be nil.
func New(op types.Operator, cfg *types.RunConfig, obs Observer) *Dispatcher {
	return &Dispatcher{Op: op, Config: cfg, Observer: obs}
}

// Workers returns the pool size: 1 for sequential runs, otherwise
// NumCPU times the multiplier.
func (d *Dispatcher) Workers() int {
	if !d.Config.Parallel {
		return 1
	}
	m := d.Config.Multiplier
	if m < 1 {
		m = 1
	}
	return runtime.NumCPU() * m
}

// Run processes every file once and returns the aggregated summary. A
// failing or panicking file never stops the run.
func (d *Dispatcher) Run(files []string) *Summary {
	start := time.Now()
	summary := &Summary{}
	if d.Config.Parallel && len(files) > 1 {
		d.runParallel(files, min(d.Workers(), len(files)), summary)
	} else {
		d.runSequential(files, summary)
	}
	summary.Elapsed = time.Since(start)
	return summary
}

// runSequential processes files one by one in order
func (d *Dispatcher) runSequential(files []string, summary *Summary) {
	for _, path := range files {
		r := d.invoke(0, path)
		summary.Add(r)
		d.finished(r)
	}
}

// runParallel processes files using a worker pool
func (d *Dispatcher) runParallel(files []string, workers int, summary *Summary) {
	jobs := make(chan string, len(files))
	results := make(chan Result, workers)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for path := range jobs {
				results <- d.invoke(workerID, path)
			}
		}(i)
	}

	// Send jobs
	for _, path := range files {
		jobs <- path
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		summary.Add(r)
		d.finished(r)
	}
}

// invoke runs the operator on one file, converting a panic into a failure.
func (d *Dispatcher) invoke(worker int, path string) (r Result) {
	if d.Observer != nil {
		d.Observer.Started(worker, path)
	}
	start := time.Now()
	r = Result{Path: path, Worker: worker}
	defer func() {
		if rec := recover(); rec != nil {
			r.Outcome = types.Failed(fmt.Errorf("%w on %s: %v", ErrPanic, path, rec))
		}
		r.Duration = time.Since(start)
	}()
	r.Outcome = d.Op(path, d.Config)
	return r
}

func (d *Dispatcher) finished(r Result) {
	if d.Observer != nil {
		d.Observer.Finished(r)
	}
}

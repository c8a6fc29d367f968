// Package parallel runs independent pieces of a render on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type job struct {
	band Band
	fn   func(Band)
	wg   *sync.WaitGroup
}

func (j job) run() {
	defer j.wg.Done()
	j.fn(j.band)
}

// WorkerPool is a fixed set of goroutines sharing one job queue. It is safe
// for concurrent use.
type WorkerPool struct {
	workers int
	jobs    chan job
	done    chan struct{}
	exited  sync.WaitGroup

	// mu is held for reading while jobs are queued so Close cannot strand
	// a job behind exited workers.
	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool starts workers goroutines, or GOMAXPROCS of them when
// workers is not positive.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &WorkerPool{
		workers: workers,
		jobs:    make(chan job, workers*4),
		done:    make(chan struct{}),
	}
	p.exited.Add(workers)
	for range workers {
		go p.work()
	}
	return p
}

func (p *WorkerPool) work() {
	defer p.exited.Done()
	for {
		select {
		case j := <-p.jobs:
			j.run()
		case <-p.done:
			for {
				select {
				case j := <-p.jobs:
					j.run()
				default:
					return
				}
			}
		}
	}
}

// Run calls fn once per band and returns when every call has finished.
// A closed pool runs the bands on the calling goroutine.
func (p *WorkerPool) Run(bands []Band, fn func(Band)) {
	if len(bands) == 0 {
		return
	}
	var wg sync.WaitGroup
	wg.Add(len(bands))

	p.mu.RLock()
	closed := p.closed
	if !closed {
		for _, b := range bands {
			p.jobs <- job{band: b, fn: fn, wg: &wg}
		}
	}
	p.mu.RUnlock()

	if closed {
		for _, b := range bands {
			job{band: b, fn: fn, wg: &wg}.run()
		}
	}
	wg.Wait()
}

// Close lets the workers finish what is queued and stops them. Further
// calls are no-ops.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.done)
	p.mu.Unlock()
	p.exited.Wait()
}

func (p *WorkerPool) Workers() int { return p.workers }

// IsRunning reports whether Run still hands bands to the workers.
func (p *WorkerPool) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.closed
}

// Shared returns the process-wide pool used for dab rendering. It has one
// worker per logical CPU and is never closed.
var Shared = sync.OnceValue(func() *WorkerPool {
	return NewWorkerPool(runtime.NumCPU())
})

package worker

import (
	"errors"
	"fmt"
	"sync"
)

// Task represents a unit of work executed by the pool.
type Task func()

var (
	ErrQueueFull = errors.New("worker queue full")
	ErrStopped   = errors.New("worker pool stopped")
)

// Pool defines a worker pool with a bounded queue.
type Pool interface {
	// Submit enqueues t without blocking.
	Submit(Task) error
	// Stop rejects new tasks and waits for queued ones to finish.
	Stop()
}

// PanicHandler receives values recovered from panicking tasks.
type PanicHandler func(recovered interface{})

// NewPool creates a pool with n workers and room for queue pending tasks.
// n<=0 defaults to 1, queue<0 defaults to 0 (Submit succeeds only when a worker is idle).
func NewPool(n, queue int, onPanic PanicHandler) Pool {
	if n <= 0 {
		n = 1
	}
	if queue < 0 {
		queue = 0
	}
	p := &pool{jobs: make(chan Task, queue), onPanic: onPanic}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.run(job)
			}
		}()
	}
	return p
}

type pool struct {
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
	onPanic PanicHandler
}

func (p *pool) run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && p.onPanic != nil {
			p.onPanic(fmt.Sprint(r))
		}
	}()
	job()
}

func (p *pool) Submit(t Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	select {
	case p.jobs <- t:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

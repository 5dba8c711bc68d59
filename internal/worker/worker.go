package worker

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Submit once Stop has been called.
var ErrStopped = errors.New("worker pool stopped")

// Task represents a unit of work executed by the pool.
type Task func()

// Pool defines a bounded worker pool.
type Pool interface {
	// Submit hands t to a free worker. It blocks until a worker takes the
	// task or ctx is done; it does not wait for t to finish.
	Submit(ctx context.Context, t Task) error
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
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
}

func (p *pool) Submit(ctx context.Context, t Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	select {
	case p.jobs <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop waits for in-flight tasks and is safe to call more than once.
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

// Do runs fn on p and waits for it to return. A nil pool runs fn inline.
func Do[T any](ctx context.Context, p Pool, fn func() (T, error)) (T, error) {
	if p == nil {
		return fn()
	}
	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	if err := p.Submit(ctx, func() {
		v, err := fn()
		done <- result{v, err}
	}); err != nil {
		var zero T
		return zero, err
	}
	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

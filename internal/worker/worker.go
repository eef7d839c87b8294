// Package worker runs background tasks (event publishing, scheduled sweeps)
// and drains them on shutdown.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Pool manages background goroutines and ensures graceful shutdown.
// At most maxConcurrent tasks run at once; further submissions wait for a
// slot. Queued tasks still run after Shutdown, with a cancelled context.
type Pool struct {
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
	slots  chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewPool creates a new worker pool. maxConcurrent <= 0 means unbounded.
func NewPool(logger *slog.Logger, maxConcurrent int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
	if maxConcurrent > 0 {
		p.slots = make(chan struct{}, maxConcurrent)
	}
	return p
}

// Submit adds a task to the pool and tracks it
func (p *Pool) Submit(task func(ctx context.Context)) error {
	return p.submit(func() {
		task(p.ctx)
	})
}

// SubmitWithTimeout adds a task with a timeout to the pool
func (p *Pool) SubmitWithTimeout(timeout time.Duration, task func(ctx context.Context)) error {
	return p.submit(func() {
		ctx, cancel := context.WithTimeout(p.ctx, timeout)
		defer cancel()
		task(ctx)
	})
}

func (p *Pool) submit(run func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if p.slots != nil {
			p.slots <- struct{}{}
			defer func() { <-p.slots }()
		}
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("❌ [Worker] Task panicked", "panic", r)
			}
		}()
		run()
	}()
	return nil
}

// Context returns the pool's context
func (p *Pool) Context() context.Context {
	return p.ctx
}

// Shutdown stops accepting tasks, signals running ones and waits for them.
// It reports whether every task finished before the timeout.
func (p *Pool) Shutdown(timeout time.Duration) bool {
	p.logger.Info("🛑 [Worker] Initiating graceful shutdown...")

	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("✅ [Worker] All background tasks completed")
		return true
	case <-time.After(timeout):
		p.logger.Warn("⚠️ [Worker] Shutdown timeout exceeded, some tasks may not have completed",
			"timeout", timeout,
		)
		return false
	}
}

// Worker errors
var (
	ErrPoolClosed = errors.New("worker pool is shut down")
)

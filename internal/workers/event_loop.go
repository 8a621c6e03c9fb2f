// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
)

// EventLoop executes posted functions one at a time, in posting order, on
// the goroutine that called Run. The queue is unbounded so a function may
// post further work without blocking.
type EventLoop struct {
	mu      sync.Mutex
	pending []func()
	stopped bool

	wake chan struct{}
	quit chan struct{}
	once sync.Once
}

// NewEventLoop returns an idle loop. Functions posted before Run is called
// are kept and executed once the loop starts.
func NewEventLoop() *EventLoop {
	return &EventLoop{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
	}
}

// Post implements [Dispatcher].
func (l *EventLoop) Post(fn func()) bool {
	if fn == nil {
		return false
	}

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run implements [Worker]. It drains the queue until ctx is cancelled or
// Stop is called. Work still queued at that point is discarded.
func (l *EventLoop) Run(ctx context.Context) {
	defer l.Stop()

	for {
		if !l.drain(ctx) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-l.quit:
			return
		case <-l.wake:
		}
	}
}

// Stop makes the loop refuse new work and ends Run. Safe to call more than
// once and before Run.
func (l *EventLoop) Stop() {
	l.once.Do(func() {
		l.mu.Lock()
		l.stopped = true
		l.pending = nil
		l.mu.Unlock()
		close(l.quit)
	})
}

// Len returns the number of functions waiting to be executed.
func (l *EventLoop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

func (l *EventLoop) drain(ctx context.Context) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-l.quit:
			return false
		default:
		}

		l.mu.Lock()
		if len(l.pending) == 0 {
			l.mu.Unlock()
			return true
		}
		fn := l.pending[0]
		l.pending[0] = nil
		l.pending = l.pending[1:]
		l.mu.Unlock()

		fn()
	}
}

// Inline is a Dispatcher that runs every function immediately on the
// posting goroutine. It is meant for tests and single-threaded embeddings
// where the caller already serializes delivery.
type Inline struct{}

// Post implements [Dispatcher].
func (Inline) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	fn()
	return true
}

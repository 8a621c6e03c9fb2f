// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers in the client.
// It defines the Worker interface, a Workers aggregate that runs several
// workers under one context, and EventLoop, the serialized callback queue
// every transport delivers its results through.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run blocks until ctx is cancelled or the worker stops on its own.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// Dispatcher queues functions for serialized execution.
type Dispatcher interface {
	// Post enqueues fn. It reports false if the dispatcher no longer
	// accepts work, in which case fn is dropped.
	Post(fn func()) bool
}

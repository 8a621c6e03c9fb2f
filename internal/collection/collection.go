// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package collection implements synchronized collections: in-memory mirrors
// of a server-owned collection that follow its change stream and translate
// sequence operations into remote mutations.
//
// A [Collection] is created by [Synchronize], which issues a single
// "retrieve" call. Its callback receives the initial content as a
// [models.EventSynchronized] event and then every change published for the
// collection. Events are applied by [Collection.Apply].
//
// Mutating operations are optimistic: they issue the remote call and return
// immediately, and the local mirror only changes once the corresponding
// event comes back. The Confirm variants ([Collection.PushConfirm] and
// friends) wait for the remote acknowledgment instead.
//
// Failures of fire-and-forget calls and malformed events go to the
// collection's [ErrorHandler]. The default handler logs the error and
// panics.
package collection

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/rpc"
	"github.com/MKhiriev/go-cloud-sync/models"
)

const (
	methodRetrieve = rpc.MethodRetrieve
	methodAdd      = "add"
	methodRemove   = "remove"
	methodUpdate   = "update"
)

// Collection is a synchronized mirror of a remote collection. All methods
// are safe for concurrent use.
type Collection struct {
	name    string
	dbid    string
	service string
	idField string

	caller  rpc.Caller
	onError ErrorHandler
	logger  *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.RWMutex
	items     []models.Record
	length    int
	observers []Observer

	// applyMu serializes event application together with observer
	// notification.
	applyMu sync.Mutex
}

// Synchronize starts mirroring the collection name of database dbid. It
// issues retrieve(dbid, name) on caller and returns at once; the collection
// stays empty until the first event arrives. The subscription lives until
// ctx is done or [Collection.Close] is called.
//
// An unsupported mode is reported as [*UnsupportedModeError] before any
// remote call is made.
func Synchronize(ctx context.Context, caller rpc.Caller, dbid, name string, opts ...Option) (*Collection, error) {
	o := options{idField: models.DefaultIDField}
	for _, opt := range opts {
		opt(&o)
	}

	if !o.mode.Supported() {
		return nil, &UnsupportedModeError{Mode: string(o.mode)}
	}
	if caller == nil {
		return nil, ErrNilCaller
	}
	if o.logger == nil {
		o.logger = logger.NewLogger("sync")
	}

	c := &Collection{
		name:    name,
		dbid:    dbid,
		service: o.mode.service(o.private),
		idField: o.idField,
		caller:  caller,
		onError: o.onError,
	}
	c.logger = &logger.Logger{Logger: o.logger.With().
		Str("service", c.service).
		Str("collection", name).
		Logger()}
	if c.onError == nil {
		c.onError = c.fatal
	}
	if o.observer != nil {
		c.observers = append(c.observers, o.observer)
	}

	c.ctx, c.cancel = context.WithCancel(ctx)
	c.caller.Call(c.ctx, c.service, methodRetrieve, c.onRetrieve, c.dbid, c.name)

	return c, nil
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Service returns the namespace the collection's calls target.
func (c *Collection) Service() string {
	return c.service
}

// IDField returns the record key holding the id.
func (c *Collection) IDField() string {
	return c.idField
}

// Observe registers fn ahead of every previously registered observer and
// returns c for chaining. Observers run one at a time after each applied
// change and must not call [Collection.Apply].
func (c *Collection) Observe(fn Observer) *Collection {
	if fn == nil {
		return c
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append([]Observer{fn}, c.observers...)
	return c
}

// Close stops following the change stream. Events that are still in flight
// are dropped. No remote unsubscribe call is issued.
func (c *Collection) Close() {
	c.cancel()
}

// Done is closed once the collection stops following its change stream.
func (c *Collection) Done() <-chan struct{} {
	return c.ctx.Done()
}

func (c *Collection) onRetrieve(res rpc.Result, err error) {
	if c.ctx.Err() != nil {
		c.logger.Debug().Msg("collection closed, event dropped")
		return
	}
	if err != nil {
		c.fail(c.remoteErr(methodRetrieve, err))
		return
	}
	if res.Empty() {
		c.logger.Debug().Msg("empty retrieve result")
		return
	}

	var ev models.ChangeEvent
	if err = res.Decode(&ev); err != nil {
		c.fail(&ProtocolViolationError{Err: err})
		return
	}
	if err = c.Apply(ev); err != nil {
		c.fail(err)
	}
}

func (c *Collection) notify(event models.EventType, payload any) {
	c.mu.RLock()
	observers := append([]Observer(nil), c.observers...)
	c.mu.RUnlock()

	for _, fn := range observers {
		fn(event, payload)
	}
}

func (c *Collection) fail(err error) {
	c.logger.Error().Err(err).Msg("synchronized collection failure")
	c.onError(err)
}

func (c *Collection) fatal(err error) {
	panic(err)
}

func (c *Collection) remoteErr(method string, err error) error {
	return &RemoteCallError{Service: c.service, Method: method, Collection: c.name, Err: err}
}

// call issues a fire-and-forget remote call on this collection. Failures go
// to the error handler until the collection is closed; after that they are
// only logged.
func (c *Collection) call(method string, args ...any) {
	c.logger.Debug().Str("method", method).Msg("remote call")
	c.caller.Call(context.Background(), c.service, method, func(_ rpc.Result, err error) {
		if err == nil {
			return
		}
		if c.ctx.Err() != nil {
			c.logger.Warn().Err(err).Str("method", method).Msg("remote call failed after close")
			return
		}
		c.fail(c.remoteErr(method, err))
	}, c.target(args...)...)
}

// confirm issues a remote call on this collection and waits for its
// acknowledgment or for ctx to be done. It must not be called from an
// observer: the acknowledgment is delivered on the same event loop.
func (c *Collection) confirm(ctx context.Context, method string, args ...any) error {
	done := make(chan error, 1)
	c.caller.Call(ctx, c.service, method, func(_ rpc.Result, err error) {
		if err != nil {
			err = c.remoteErr(method, err)
		}
		done <- err
	}, c.target(args...)...)

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Collection) target(args ...any) []any {
	return append([]any{c.dbid, c.name}, args...)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package rpc provides the remote-call primitive used to reach the cloud
// gateway and the change stream that keeps synchronized collections live.
//
// The primary abstraction is [Caller], an asynchronous request/response
// primitive: a call names a service and a method, carries positional
// arguments, and reports its outcome through a [Callback] exactly once.
// The package ships an HTTP implementation ([HTTPCaller]) and a decorator
// ([StreamCaller]) that turns streaming methods such as "retrieve" into a
// long-lived subscription backed by a [Subscriber] ([MQTTSubscriber]).
//
// Every implementation delivers callbacks through a [workers.Dispatcher], so
// callers observe results one at a time, in order of completion.
//
// Transport failures are mapped onto the sentinel errors declared in
// errors.go so that callers can use [errors.Is] regardless of the protocol
// (e.g. [ErrUnauthorized] for 401); gateway-level failures are reported as
// [*RemoteError].
package rpc

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/rpc_mock.go -package=mock

// Callback receives the outcome of a remote call. A non-nil err signals
// failure, in which case res is empty.
type Callback func(res Result, err error)

// Caller invokes a named remote method.
type Caller interface {
	// Call issues service.method(args...) and returns immediately. cb is
	// invoked once with the result, except for streaming methods whose
	// callback receives every subsequent message until ctx is done.
	// A nil cb discards the outcome.
	Call(ctx context.Context, service, method string, cb Callback, args ...any)
}

// Subscriber delivers messages published on a topic.
type Subscriber interface {
	// Subscribe registers fn for messages on topic. The registration lives
	// until ctx is done.
	Subscribe(ctx context.Context, topic string, fn func(Result)) error
}

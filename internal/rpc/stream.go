package rpc

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
)

// MethodRetrieve is the streaming method that primes a synchronized
// collection and then follows its change stream.
const MethodRetrieve = "retrieve"

// StreamCaller decorates a [Caller] with live change streams. For a
// streaming method it subscribes to the method's topic before issuing the
// call, so cb receives the call's result followed by every message
// published on the topic until ctx is done. Other methods are forwarded
// unchanged.
type StreamCaller struct {
	caller     Caller
	subscriber Subscriber
	streaming  map[string]struct{}

	logger *logger.Logger
}

// NewStreamCaller wraps caller. methods lists the streaming methods and
// defaults to [MethodRetrieve]. A nil subscriber turns every streaming call
// into a plain one-shot call.
func NewStreamCaller(caller Caller, subscriber Subscriber, log *logger.Logger, methods ...string) *StreamCaller {
	if len(methods) == 0 {
		methods = []string{MethodRetrieve}
	}
	if log == nil {
		log = logger.Nop()
	}

	streaming := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		streaming[m] = struct{}{}
	}

	return &StreamCaller{
		caller:     caller,
		subscriber: subscriber,
		streaming:  streaming,
		logger:     log,
	}
}

// Call implements [Caller].
func (s *StreamCaller) Call(ctx context.Context, service, method string, cb Callback, args ...any) {
	if _, ok := s.streaming[method]; ok && s.subscriber != nil && cb != nil {
		topic := Topic(service, args...)
		err := s.subscriber.Subscribe(ctx, topic, func(res Result) { cb(res, nil) })
		if err != nil {
			s.logger.Error().Err(err).Str("topic", topic).Msg("change stream subscription failed")
		} else {
			s.logger.Debug().Str("topic", topic).Msg("subscribed to change stream")
		}
	}

	s.caller.Call(ctx, service, method, cb, args...)
}

// Topic builds the change topic of a streaming call: the service followed
// by every argument, separated by "/". MQTT wildcard characters inside
// arguments are replaced with "_".
func Topic(service string, args ...any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, service)
	for _, arg := range args {
		parts = append(parts, topicReplacer.Replace(fmt.Sprint(arg)))
	}
	return strings.Join(parts, "/")
}

var topicReplacer = strings.NewReplacer("/", "_", "+", "_", "#", "_")

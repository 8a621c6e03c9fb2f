package utils

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// NewTraceID returns a time-ordered UUIDv7 for the X-Trace-ID header. A
// random UUIDv4 is used when the clock source fails.
func NewTraceID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}

// TraceIDOrNew returns the trace id carried by ctx, or a fresh one.
func TraceIDOrNew(ctx context.Context) string {
	if id, ok := GetTraceIDFromContext(ctx); ok {
		return id
	}
	return NewTraceID()
}

// NewClientID returns prefix followed by a random UUID without dashes. Broker
// client ids must be unique per connection, so every process gets its own.
func NewClientID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

package utils

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewTraceID(t *testing.T) {
	first, second := NewTraceID(), NewTraceID()
	if first == second {
		t.Fatal("expected distinct ids")
	}

	parsed, err := uuid.Parse(first)
	if err != nil {
		t.Fatalf("expected a valid uuid, got %q: %v", first, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
}

func TestTraceIDOrNew(t *testing.T) {
	ctx := WithTraceID(context.Background(), "trace-1")
	if got := TraceIDOrNew(ctx); got != "trace-1" {
		t.Errorf("expected trace id from context, got %q", got)
	}

	got := TraceIDOrNew(context.Background())
	if _, err := uuid.Parse(got); err != nil {
		t.Errorf("expected a fresh uuid, got %q: %v", got, err)
	}
}

func TestNewClientID(t *testing.T) {
	id := NewClientID("viewer-")
	if !strings.HasPrefix(id, "viewer-") {
		t.Fatalf("expected prefix, got %q", id)
	}
	if strings.Contains(strings.TrimPrefix(id, "viewer-"), "-") {
		t.Errorf("expected no dashes after the prefix, got %q", id)
	}
	if id == NewClientID("viewer-") {
		t.Error("expected distinct ids")
	}
}

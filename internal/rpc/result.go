package rpc

import (
	"bytes"
	"fmt"
)

// Result is an encoded remote payload together with the codec needed to
// decode it.
type Result struct {
	data  []byte
	codec Codec
}

// NewResult wraps data encoded with codec. A nil codec means [JSON].
func NewResult(data []byte, codec Codec) Result {
	if codec == nil {
		codec = JSON
	}
	return Result{data: data, codec: codec}
}

// EncodeResult encodes v with codec and wraps the bytes in a [Result].
func EncodeResult(v any, codec Codec) (Result, error) {
	if codec == nil {
		codec = JSON
	}
	data, err := codec.Marshal(v)
	if err != nil {
		return Result{}, fmt.Errorf("encode result with %s: %w", codec.Name(), err)
	}
	return Result{data: data, codec: codec}, nil
}

// Empty reports whether the result carries no value.
func (r Result) Empty() bool {
	trimmed := bytes.TrimSpace(r.data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Bytes returns the raw encoded payload.
func (r Result) Bytes() []byte {
	return r.data
}

// Codec returns the codec the payload is encoded with.
func (r Result) Codec() Codec {
	if r.codec == nil {
		return JSON
	}
	return r.codec
}

// Decode decodes the payload into v. An empty result leaves v untouched.
func (r Result) Decode(v any) error {
	if r.Empty() {
		return nil
	}
	if err := r.Codec().Unmarshal(r.data, v); err != nil {
		return fmt.Errorf("decode %s result: %w", r.Codec().Name(), err)
	}
	return nil
}

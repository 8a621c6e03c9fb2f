package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	ErrUnknownCodec     = errors.New("unknown codec")
	ErrEmptyAddress     = errors.New("empty address")
	ErrMalformedPayload = errors.New("malformed gateway payload")
)

// RemoteError is a failure reported by the gateway in the "error" field of
// an otherwise successful response.
type RemoteError struct {
	Service string
	Method  string
	// Payload is the decoded error value as sent by the gateway.
	Payload any
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote %s.%s failed: %s", e.Service, e.Method, e.Message())
}

// Message extracts a human-readable message from the payload: the payload
// itself when it is a string, its "message" field when it is an object,
// otherwise its JSON encoding.
func (e *RemoteError) Message() string {
	switch p := e.Payload.(type) {
	case string:
		return p
	case map[string]any:
		if msg, ok := p["message"].(string); ok {
			return msg
		}
	}

	raw, err := json.Marshal(e.Payload)
	if err != nil {
		return fmt.Sprint(e.Payload)
	}
	return string(raw)
}

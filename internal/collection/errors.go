package collection

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cloud-sync/models"
)

var (
	ErrUnsupportedMode   = errors.New("unsupported persistence mode")
	ErrProtocolViolation = errors.New("protocol violation")
	ErrRemoteCall        = errors.New("remote call failed")
	ErrNilCaller         = errors.New("nil remote caller")
	ErrMissingID         = errors.New("record has no id")

	ErrIndexOutOfRange = errors.New("index out of range")
	ErrEmptyCollection = errors.New("collection is empty")
	ErrReduceOfEmpty   = errors.New("reduce of empty collection with no initial value")
)

// UnsupportedModeError is returned by [Synchronize] for a persistence mode
// other than the document store.
type UnsupportedModeError struct {
	Mode string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedMode, e.Mode)
}

func (e *UnsupportedModeError) Unwrap() error {
	return ErrUnsupportedMode
}

// RemoteCallError wraps a failure reported by the remote caller for one of
// the collection's calls.
type RemoteCallError struct {
	Service    string
	Method     string
	Collection string
	Err        error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s.%s on collection %q: %v", e.Service, e.Method, e.Collection, e.Err)
}

func (e *RemoteCallError) Unwrap() []error {
	return []error{ErrRemoteCall, e.Err}
}

// ProtocolViolationError reports a change event the collection cannot
// interpret: an unknown type tag or a payload of the wrong shape.
type ProtocolViolationError struct {
	Type models.EventType
	Err  error
}

func (e *ProtocolViolationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: unexpected change type %q", ErrProtocolViolation, e.Type)
	}
	return fmt.Sprintf("%s: %q event: %v", ErrProtocolViolation, e.Type, e.Err)
}

func (e *ProtocolViolationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrProtocolViolation}
	}
	return []error{ErrProtocolViolation, e.Err}
}

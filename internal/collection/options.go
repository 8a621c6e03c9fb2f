package collection

import (
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/models"
)

// Mode is the persistence layer backing a collection.
type Mode string

// ModeDocument is the document store, the only supported backend. The empty
// Mode selects it as well.
const ModeDocument Mode = "mongo"

// Service namespaces of synchronized collections.
const (
	ServiceShared  = "sync"
	ServicePrivate = "sync-private"
)

// Supported reports whether collections can be synchronized in m.
func (m Mode) Supported() bool {
	return m == "" || m == ModeDocument
}

// service returns the namespace the collection's calls target.
func (m Mode) service(private bool) string {
	if private {
		return ServicePrivate
	}
	return ServiceShared
}

// ErrorHandler receives remote and protocol failures of a collection.
type ErrorHandler func(err error)

// Observer is notified after every change applied to a collection. payload
// depends on the event: the new content for [models.EventSynchronized], the
// appended record or records for [models.EventInserted], the id for
// [models.EventRemoved], an empty slice for [models.EventRemovedAll] and the
// new record for [models.EventUpdated].
type Observer func(event models.EventType, payload any)

type options struct {
	mode     Mode
	private  bool
	idField  string
	logger   *logger.Logger
	onError  ErrorHandler
	observer Observer
}

// Option configures [Synchronize].
type Option func(*options)

// WithMode selects the persistence mode. Only the document store is
// supported.
func WithMode(mode string) Option {
	return func(o *options) { o.mode = Mode(mode) }
}

// WithPrivate targets the per-user "sync-private" namespace instead of the
// shared "sync" one.
func WithPrivate(private bool) Option {
	return func(o *options) { o.private = private }
}

// WithIDField sets the record key holding the store-assigned id. Defaults
// to "id".
func WithIDField(field string) Option {
	return func(o *options) {
		if field != "" {
			o.idField = field
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.logger = log
		}
	}
}

// WithErrorHandler replaces the default fatal error handler.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(o *options) { o.onError = fn }
}

// WithObserver registers fn before the initial retrieval is issued, so it
// cannot miss the first event.
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

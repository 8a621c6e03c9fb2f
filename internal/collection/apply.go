package collection

import (
	"errors"
	"slices"

	"github.com/MKhiriev/go-cloud-sync/models"
)

var (
	errNotARecord   = errors.New("payload is not a record")
	errNotARecordOr = errors.New("payload is neither a record nor a list of records")
)

// Apply applies one change event to the mirror and notifies the observers
// when the content changed. Events are applied one at a time.
//
// An unknown event type or a payload of the wrong shape is reported as
// [*ProtocolViolationError] and leaves the mirror untouched.
func (c *Collection) Apply(ev models.ChangeEvent) error {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	payload, changed, err := c.apply(ev)
	if err != nil {
		return err
	}
	if changed {
		c.logger.Debug().Str("event", string(ev.Type)).Int("length", c.Len()).Msg("change applied")
		c.notify(ev.Type, payload)
	}
	return nil
}

// apply mutates the mirror under the write lock. It returns the payload to
// notify observers with and whether anything changed.
func (c *Collection) apply(ev models.ChangeEvent) (any, bool, error) {
	switch ev.Type {
	case models.EventSynchronized:
		return c.applySynchronized(ev.Data)
	case models.EventInserted:
		return c.applyInserted(ev.Data)
	case models.EventRemoved:
		return c.applyRemoved(ev.Data)
	case models.EventRemovedAll:
		return c.applyRemovedAll()
	case models.EventUpdated:
		return c.applyUpdated(ev.Data)
	default:
		return nil, false, &ProtocolViolationError{Type: ev.Type}
	}
}

func (c *Collection) applySynchronized(data any) (any, bool, error) {
	var records []models.Record
	if data != nil {
		var ok bool
		if records, ok = models.AsRecords(data); !ok {
			return nil, false, &ProtocolViolationError{Type: models.EventSynchronized, Err: errNotARecordOr}
		}
	}

	c.mu.Lock()
	c.items = slices.Clone(records)
	c.length = len(c.items)
	snapshot := slices.Clone(c.items)
	c.mu.Unlock()

	if snapshot == nil {
		snapshot = []models.Record{}
	}
	return snapshot, true, nil
}

func (c *Collection) applyInserted(data any) (any, bool, error) {
	if rec, ok := models.AsRecord(data); ok {
		c.mu.Lock()
		defer c.mu.Unlock()

		key := rec.IDKey(c.idField)
		if key != "" && c.lastIndexOfKey(key) >= 0 {
			return nil, false, nil
		}
		c.items = append(c.items, rec)
		c.length = len(c.items)
		return rec, true, nil
	}

	records, ok := models.AsRecords(data)
	if !ok {
		return nil, false, &ProtocolViolationError{Type: models.EventInserted, Err: errNotARecordOr}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]struct{}, len(c.items)+len(records))
	for _, item := range c.items {
		if key := item.IDKey(c.idField); key != "" {
			seen[key] = struct{}{}
		}
	}

	// walk the batch backwards so that the last occurrence of a repeated id wins
	accepted := make([]bool, len(records))
	for j := len(records) - 1; j >= 0; j-- {
		key := records[j].IDKey(c.idField)
		if key != "" {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		accepted[j] = true
	}

	appended := make([]models.Record, 0, len(records))
	for j, rec := range records {
		if accepted[j] {
			appended = append(appended, rec)
		}
	}
	if len(appended) == 0 {
		return nil, false, nil
	}

	c.items = append(c.items, appended...)
	c.length = len(c.items)
	return appended, true, nil
}

func (c *Collection) applyRemoved(id any) (any, bool, error) {
	key := models.IDKey(id)
	if key == "" {
		return nil, false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.lastIndexOfKey(key)
	switch {
	case i < 0:
		return nil, false, nil
	case i == 0:
		c.items = c.items[1:]
	case i == len(c.items)-1:
		c.items = c.items[:i]
	default:
		c.items = slices.Delete(c.items, i, i+1)
	}
	c.length = len(c.items)
	return id, true, nil
}

func (c *Collection) applyRemovedAll() (any, bool, error) {
	c.mu.Lock()
	c.items = nil
	c.length = 0
	c.mu.Unlock()

	return []models.Record{}, true, nil
}

func (c *Collection) applyUpdated(data any) (any, bool, error) {
	if data == nil {
		return nil, false, nil
	}
	rec, ok := models.AsRecord(data)
	if !ok {
		return nil, false, &ProtocolViolationError{Type: models.EventUpdated, Err: errNotARecord}
	}

	// a record without an id matches nothing
	key := rec.IDKey(c.idField)
	if key == "" {
		return nil, false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.lastIndexOfKey(key)
	if i < 0 {
		return nil, false, nil
	}
	c.items[i] = rec
	return rec, true, nil
}

// lastIndexOfKey must be called with c.mu held.
func (c *Collection) lastIndexOfKey(key string) int {
	for i := len(c.items) - 1; i >= 0; i-- {
		if c.items[i].IDKey(c.idField) == key {
			return i
		}
	}
	return -1
}

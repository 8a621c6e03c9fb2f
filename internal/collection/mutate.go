package collection

import (
	"cmp"
	"fmt"
	"slices"

	"dario.cat/mergo"
	"github.com/MKhiriev/go-cloud-sync/models"
)

// At returns the record at index.
func (c *Collection) At(index int) (models.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if index < 0 || index >= len(c.items) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(c.items))
	}
	return c.items[index], nil
}

// UpdateAt merges update into the record at index, stores the result in the
// mirror and issues update(dbid, name, id, merged). Nested objects are
// merged recursively, lists and scalars are replaced. The merged record is
// returned without waiting for the server; observers are not notified until
// the matching "updated" event arrives.
func (c *Collection) UpdateAt(index int, update models.Record) (models.Record, error) {
	merged, id, err := c.mergeAt(index, update)
	if err != nil {
		return nil, err
	}

	c.call(methodUpdate, id, merged)
	return merged.Clone(), nil
}

// Push asks the server to add records with a single add call and returns
// the optimistic new length. The mirror grows once the "inserted" event
// arrives.
func (c *Collection) Push(records ...models.Record) int {
	if len(records) == 0 {
		return c.Len()
	}

	n := c.Len()
	c.call(methodAdd, addPayload(records))
	return n + len(records)
}

// Unshift issues the same add call as [Collection.Push]. Collections have
// no order, so both ends are the same.
func (c *Collection) Unshift(records ...models.Record) {
	if len(records) == 0 {
		return
	}
	c.call(methodAdd, addPayload(records))
}

// Pop asks the server to remove the last record and returns it. The mirror
// shrinks once the "removed" event arrives.
func (c *Collection) Pop() (models.Record, error) {
	rec, id, err := c.edge(true)
	if err != nil {
		return nil, err
	}
	c.call(methodRemove, id)
	return rec, nil
}

// Shift asks the server to remove the first record and returns it.
func (c *Collection) Shift() (models.Record, error) {
	rec, id, err := c.edge(false)
	if err != nil {
		return nil, err
	}
	c.call(methodRemove, id)
	return rec, nil
}

// Splice asks the server to remove count records starting at index and to
// add records, then returns the records of the removed range as they were
// before the call. A negative index counts from the end; count is clamped
// to the records available. Removals are issued from the highest index
// down, followed by one add call per new record.
func (c *Collection) Splice(index, count int, records ...models.Record) []models.Record {
	c.mu.RLock()
	n := len(c.items)
	index = clampIndex(index, n)
	count = max(0, min(count, n-index))
	removed := slices.Clone(c.items[index : index+count])
	c.mu.RUnlock()

	for i := len(removed) - 1; i >= 0; i-- {
		id, ok := removed[i].ID(c.idField)
		if !ok {
			c.logger.Warn().Int("index", index+i).Msg("splice skipped a record without id")
			continue
		}
		c.call(methodRemove, id)
	}
	for _, rec := range records {
		c.Push(rec)
	}

	return removed
}

// Reverse reverses the mirror in place. The order is local only: the server
// keeps none and the next "synchronized" event discards it.
func (c *Collection) Reverse() *Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	slices.Reverse(c.items)
	return c
}

// Sort sorts the mirror in place with a stable sort. A nil cmpFn orders
// records by id. Like [Collection.Reverse], the order is local only.
func (c *Collection) Sort(cmpFn func(a, b models.Record) int) *Collection {
	if cmpFn == nil {
		cmpFn = func(a, b models.Record) int {
			return cmp.Compare(a.IDKey(c.idField), b.IDKey(c.idField))
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	slices.SortStableFunc(c.items, cmpFn)
	return c
}

// mergeAt merges update into a copy of the record at index and stores the
// copy.
func (c *Collection) mergeAt(index int, update models.Record) (models.Record, any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.items) {
		return nil, nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(c.items))
	}

	merged := c.items[index].Clone()
	if merged == nil {
		merged = models.Record{}
	}
	if err := mergo.Merge(&merged, update.Clone(), mergo.WithOverride); err != nil {
		return nil, nil, fmt.Errorf("merge record at %d: %w", index, err)
	}

	id, ok := merged.ID(c.idField)
	if !ok {
		return nil, nil, fmt.Errorf("%w: field %q at %d", ErrMissingID, c.idField, index)
	}

	c.items[index] = merged
	return merged, id, nil
}

// edge returns the last (or first) record and its id.
func (c *Collection) edge(last bool) (models.Record, any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.items) == 0 {
		return nil, nil, ErrEmptyCollection
	}

	rec := c.items[0]
	if last {
		rec = c.items[len(c.items)-1]
	}

	id, ok := rec.ID(c.idField)
	if !ok {
		return nil, nil, fmt.Errorf("%w: field %q", ErrMissingID, c.idField)
	}
	return rec, id, nil
}

// addPayload sends a single record as itself and several as a list.
func addPayload(records []models.Record) any {
	if len(records) == 1 {
		return records[0]
	}
	return records
}

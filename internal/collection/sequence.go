package collection

import (
	"slices"
	"strings"

	"github.com/MKhiriev/go-cloud-sync/models"
)

// Read operations work on a snapshot of the mirror, never issue remote
// calls and return plain values. Records handed to callbacks are shared
// with the mirror and must not be modified.

// Len returns the number of records in the mirror.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.length
}

// Records returns a deep copy of the mirror's content.
func (c *Collection) Records() []models.Record {
	snapshot := c.snapshot()
	out := make([]models.Record, len(snapshot))
	for i, rec := range snapshot {
		out[i] = rec.Clone()
	}
	return out
}

// IndexOf returns the position of the first record whose id equals id, or
// -1.
func (c *Collection) IndexOf(id any) int {
	key := models.IDKey(id)
	if key == "" {
		return -1
	}
	return slices.IndexFunc(c.snapshot(), func(rec models.Record) bool {
		return rec.IDKey(c.idField) == key
	})
}

// LastIndexOf returns the position of the last record whose id equals id,
// or -1.
func (c *Collection) LastIndexOf(id any) int {
	key := models.IDKey(id)
	if key == "" {
		return -1
	}

	snapshot := c.snapshot()
	for i := len(snapshot) - 1; i >= 0; i-- {
		if snapshot[i].IDKey(c.idField) == key {
			return i
		}
	}
	return -1
}

// Join renders every record and joins them with sep.
func (c *Collection) Join(sep string) string {
	snapshot := c.snapshot()
	parts := make([]string, len(snapshot))
	for i, rec := range snapshot {
		parts[i] = rec.String()
	}
	return strings.Join(parts, sep)
}

// Slice returns the records in [start, end). Negative positions count from
// the end; positions are clamped to the mirror's bounds.
func (c *Collection) Slice(start, end int) []models.Record {
	snapshot := c.snapshot()
	n := len(snapshot)
	start, end = clampIndex(start, n), clampIndex(end, n)
	if start >= end {
		return []models.Record{}
	}
	return slices.Clone(snapshot[start:end])
}

func (c *Collection) String() string {
	return "SynchronizedArray(" + c.name + "):[" + c.Join(", ") + "]"
}

// Filter returns the records for which fn reports true.
func (c *Collection) Filter(fn func(rec models.Record, i int) bool) []models.Record {
	out := make([]models.Record, 0)
	for i, rec := range c.snapshot() {
		if fn(rec, i) {
			out = append(out, rec)
		}
	}
	return out
}

// ForEach calls fn for every record in order.
func (c *Collection) ForEach(fn func(rec models.Record, i int)) {
	for i, rec := range c.snapshot() {
		fn(rec, i)
	}
}

// Every reports whether fn holds for every record. It is true for an empty
// collection.
func (c *Collection) Every(fn func(rec models.Record, i int) bool) bool {
	for i, rec := range c.snapshot() {
		if !fn(rec, i) {
			return false
		}
	}
	return true
}

// Some reports whether fn holds for at least one record.
func (c *Collection) Some(fn func(rec models.Record, i int) bool) bool {
	for i, rec := range c.snapshot() {
		if fn(rec, i) {
			return true
		}
	}
	return false
}

// Reducer folds one record into the accumulator.
type Reducer func(acc any, rec models.Record, i int) any

// Reduce folds the records from first to last. With no init the first
// record seeds the fold; an empty collection then yields
// [ErrReduceOfEmpty]. Only the first init value is used.
func (c *Collection) Reduce(fn Reducer, init ...any) (any, error) {
	snapshot := c.snapshot()

	var acc any
	start := 0
	if len(init) > 0 {
		acc = init[0]
	} else {
		if len(snapshot) == 0 {
			return nil, ErrReduceOfEmpty
		}
		acc, start = snapshot[0], 1
	}

	for i := start; i < len(snapshot); i++ {
		acc = fn(acc, snapshot[i], i)
	}
	return acc, nil
}

// ReduceRight folds the records from last to first. It follows the same
// seeding rules as [Collection.Reduce].
func (c *Collection) ReduceRight(fn Reducer, init ...any) (any, error) {
	snapshot := c.snapshot()

	var acc any
	start := len(snapshot) - 1
	if len(init) > 0 {
		acc = init[0]
	} else {
		if len(snapshot) == 0 {
			return nil, ErrReduceOfEmpty
		}
		acc, start = snapshot[start], start-1
	}

	for i := start; i >= 0; i-- {
		acc = fn(acc, snapshot[i], i)
	}
	return acc, nil
}

func (c *Collection) snapshot() []models.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// clampIndex resolves a possibly negative position against length n.
func clampIndex(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}

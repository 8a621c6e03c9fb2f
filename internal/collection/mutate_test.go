package collection

import (
	"testing"

	"github.com/MKhiriev/go-cloud-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── At / UpdateAt ───────────────────────────────────────────────────────────

func TestAt(t *testing.T) {
	c, _ := seededCollection(t)

	r, err := c.At(2)
	require.NoError(t, err)
	assert.Equal(t, "C", r["name"])

	for _, i := range []int{-1, 4, 100} {
		_, err = c.At(i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", i)
	}
}

func TestUpdateAt_DeepMerge(t *testing.T) {
	c, caller, sink := newTestCollection(t)
	seed(t, c, models.Record{
		"id":      1,
		"name":    "A",
		"profile": map[string]any{"city": "Oslo", "zip": "0150", "geo": map[string]any{"lat": 59.9}},
		"tags":    []any{"x", "y"},
	})
	got := observed(c)

	merged, err := c.UpdateAt(0, models.Record{
		"name":    "A2",
		"profile": map[string]any{"city": "Bergen", "geo": map[string]any{"lon": 5.3}},
		"tags":    []any{"z"},
		"extra":   true,
	})
	require.NoError(t, err)

	want := models.Record{
		"id":      1,
		"name":    "A2",
		"profile": map[string]any{"city": "Bergen", "zip": "0150", "geo": map[string]any{"lat": 59.9, "lon": 5.3}},
		"tags":    []any{"z"},
		"extra":   true,
	}
	assert.Equal(t, want, merged)

	stored, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, want, stored)

	updates := caller.byMethod("update")
	require.Len(t, updates, 1)
	assert.Equal(t, "sync", updates[0].service)
	require.Len(t, updates[0].args, 4)
	assert.Equal(t, []any{"db-1", "people", 1}, updates[0].args[:3])
	assert.Equal(t, want, updates[0].args[3])

	assert.Empty(t, *got, "observers wait for the updated event")
	assert.Empty(t, sink.all())
}

func TestUpdateAt_DoesNotAliasInputs(t *testing.T) {
	c, _, _ := newTestCollection(t)
	original := models.Record{"id": 1, "profile": map[string]any{"city": "Oslo"}}
	seed(t, c, original)
	before := c.Records()

	update := models.Record{"profile": map[string]any{"city": "Rome"}}
	merged, err := c.UpdateAt(0, update)
	require.NoError(t, err)

	// neither the previous snapshot nor the update share maps with the result
	assert.Equal(t, "Oslo", before[0]["profile"].(map[string]any)["city"])
	merged["profile"].(map[string]any)["city"] = "Paris"
	update["profile"].(map[string]any)["city"] = "Lima"

	stored, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, "Rome", stored["profile"].(map[string]any)["city"])
}

func TestUpdateAt_Errors(t *testing.T) {
	c, caller, _ := newTestCollection(t)
	seed(t, c, models.Record{"name": "no id"})

	_, err := c.UpdateAt(3, models.Record{"name": "x"})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = c.UpdateAt(0, models.Record{"name": "x"})
	assert.ErrorIs(t, err, ErrMissingID)

	assert.Empty(t, caller.byMethod("update"))
}

// ── Push / Unshift ──────────────────────────────────────────────────────────

func TestPush(t *testing.T) {
	c, caller := seededCollection(t)

	assert.Equal(t, 5, c.Push(rec(nil, "E")))
	assert.Equal(t, 6, c.Push(rec(nil, "F"), rec(nil, "G")))
	assert.Equal(t, 4, c.Push())
	assert.Equal(t, 4, c.Len(), "the mirror waits for inserted events")

	adds := caller.byMethod("add")
	require.Len(t, adds, 2)
	assert.Equal(t, []any{"db-1", "people", rec(nil, "E")}, adds[0].args)
	assert.Equal(t, []any{"db-1", "people", []models.Record{rec(nil, "F"), rec(nil, "G")}}, adds[1].args)
}

func TestUnshift_SameRemoteEffectAsPush(t *testing.T) {
	c, caller, _ := newTestCollection(t)

	c.Push(rec(nil, "A"), rec(nil, "B"))
	c.Unshift(rec(nil, "A"), rec(nil, "B"))
	c.Unshift()

	adds := caller.byMethod("add")
	require.Len(t, adds, 2)
	assert.Equal(t, adds[0].service, adds[1].service)
	assert.Equal(t, adds[0].args, adds[1].args)
}

// ── Pop / Shift ─────────────────────────────────────────────────────────────

func TestPopShift(t *testing.T) {
	c, caller := seededCollection(t)

	last, err := c.Pop()
	require.NoError(t, err)
	assert.Equal(t, "D", last["name"])

	first, err := c.Shift()
	require.NoError(t, err)
	assert.Equal(t, "A", first["name"])

	assert.Equal(t, 4, c.Len(), "the mirror waits for removed events")

	removes := caller.byMethod("remove")
	require.Len(t, removes, 2)
	assert.Equal(t, []any{"db-1", "people", 4}, removes[0].args)
	assert.Equal(t, []any{"db-1", "people", 1}, removes[1].args)
}

func TestPopShift_Empty(t *testing.T) {
	c, caller, _ := newTestCollection(t)

	_, err := c.Pop()
	assert.ErrorIs(t, err, ErrEmptyCollection)
	_, err = c.Shift()
	assert.ErrorIs(t, err, ErrEmptyCollection)

	assert.Empty(t, caller.byMethod("remove"))
}

func TestPop_ThenRemovedEvent(t *testing.T) {
	c, caller := seededCollection(t)
	retrieve := retrieveCall(t, caller)

	last, err := c.Pop()
	require.NoError(t, err)
	retrieve.reply(t, ev(models.EventRemoved, last["id"]))

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, -1, c.IndexOf(4))
}

// ── Splice ──────────────────────────────────────────────────────────────────

func TestSplice(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		count       int
		wantRemoved []any
		wantIDs     []any
	}{
		{name: "middle", index: 1, count: 2, wantRemoved: []any{"B", "C"}, wantIDs: []any{3, 2}},
		{name: "negative index", index: -2, count: 1, wantRemoved: []any{"C"}, wantIDs: []any{3}},
		{name: "count clamped", index: 2, count: 10, wantRemoved: []any{"C", "D"}, wantIDs: []any{4, 3}},
		{name: "zero count", index: 0, count: 0, wantRemoved: []any{}, wantIDs: nil},
		{name: "negative count", index: 0, count: -3, wantRemoved: []any{}, wantIDs: nil},
		{name: "index past end", index: 9, count: 1, wantRemoved: []any{}, wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, caller := seededCollection(t)

			removed := c.Splice(tt.index, tt.count)
			assert.Equal(t, tt.wantRemoved, names(removed))

			var ids []any
			for _, call := range caller.byMethod("remove") {
				ids = append(ids, call.args[2])
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, 4, c.Len())
		})
	}
}

func TestSplice_AddsNewRecordsOneByOne(t *testing.T) {
	c, caller := seededCollection(t)

	removed := c.Splice(0, 1, rec(nil, "X"), rec(nil, "Y"))
	assert.Equal(t, []any{"A"}, names(removed))

	adds := caller.byMethod("add")
	require.Len(t, adds, 2)
	assert.Equal(t, rec(nil, "X"), adds[0].args[2])
	assert.Equal(t, rec(nil, "Y"), adds[1].args[2])
	assert.Len(t, caller.byMethod("remove"), 1)
}

// ── Reverse / Sort ──────────────────────────────────────────────────────────

func TestReverseSort_LocalOnly(t *testing.T) {
	c, caller := seededCollection(t)
	before := caller.count()

	assert.Same(t, c, c.Reverse())
	assert.Equal(t, []any{"D", "C", "B", "A"}, names(c.Records()))

	c.Sort(func(a, b models.Record) int { return a["age"].(int) - b["age"].(int) })
	// stable: D stays ahead of B, as the reversal left them
	assert.Equal(t, []any{"D", "B", "A", "C"}, names(c.Records()))

	c.Sort(nil)
	assert.Equal(t, []any{"A", "B", "C", "D"}, names(c.Records()))

	assert.Equal(t, before, caller.count())

	// the next synchronization discards the local order
	retrieveCall(t, caller).reply(t, ev(models.EventSynchronized, []any{rec(2, "B"), rec(1, "A")}))
	assert.Equal(t, []any{"B", "A"}, names(c.Records()))
}

package collection

import (
	"encoding/json"
	"testing"

	"github.com/MKhiriev/go-cloud-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notification struct {
	event   models.EventType
	payload any
}

func observed(c *Collection) *[]notification {
	var got []notification
	c.Observe(func(e models.EventType, p any) {
		got = append(got, notification{event: e, payload: p})
	})
	return &got
}

func seed(t *testing.T, c *Collection, records ...models.Record) {
	t.Helper()
	data := make([]any, len(records))
	for i, r := range records {
		data[i] = r
	}
	require.NoError(t, c.Apply(ev(models.EventSynchronized, data)))
}

// ── synchronized ────────────────────────────────────────────────────────────

func TestApply_Synchronized(t *testing.T) {
	c, _, _ := newTestCollection(t)
	got := observed(c)

	seed(t, c, rec(1, "A"), rec(2, "B"))
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.Apply(ev(models.EventSynchronized, nil)))
	assert.Equal(t, 0, c.Len())

	require.Len(t, *got, 2)
	assert.Equal(t, models.EventSynchronized, (*got)[0].event)
	assert.Len(t, (*got)[0].payload, 2)
	assert.Equal(t, []models.Record{}, (*got)[1].payload)
}

func TestApply_Synchronized_Malformed(t *testing.T) {
	c, _, _ := newTestCollection(t)
	seed(t, c, rec(1, "A"))

	err := c.Apply(ev(models.EventSynchronized, "not a list"))
	assert.ErrorIs(t, err, ErrProtocolViolation)
	assert.Equal(t, 1, c.Len())
}

// ── inserted ────────────────────────────────────────────────────────────────

func TestApply_Inserted_Single(t *testing.T) {
	c, _, _ := newTestCollection(t)
	seed(t, c, rec(1, "A"))
	got := observed(c)

	require.NoError(t, c.Apply(ev(models.EventInserted, rec(2, "B"))))
	assert.Equal(t, 2, c.Len())
	require.Len(t, *got, 1)
	assert.Equal(t, rec(2, "B"), (*got)[0].payload)
}

func TestApply_Inserted_DuplicateSingle_Silent(t *testing.T) {
	c, _, _ := newTestCollection(t)
	seed(t, c, rec(1, "A"))
	got := observed(c)

	require.NoError(t, c.Apply(ev(models.EventInserted, rec(1, "again"))))

	assert.Equal(t, 1, c.Len())
	assert.Empty(t, *got)
	r, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, "A", r["name"])
}

func TestApply_Inserted_IDsMatchAcrossNumericTypes(t *testing.T) {
	c, _, _ := newTestCollection(t)
	seed(t, c, rec(int8(1), "A"))

	require.NoError(t, c.Apply(ev(models.EventInserted, rec(1.0, "float"))))
	require.NoError(t, c.Apply(ev(models.EventInserted, rec(json.Number("1"), "number"))))
	assert.Equal(t, 1, c.Len())
}

func TestApply_StringAndNumberIDsAreDistinct(t *testing.T) {
	c, _, _ := newTestCollection(t)
	seed(t, c, rec(1, "number"))

	require.NoError(t, c.Apply(ev(models.EventInserted, rec("1", "string"))))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 0, c.IndexOf(1))
	assert.Equal(t, 1, c.IndexOf("1"))

	require.NoError(t, c.Apply(ev(models.EventUpdated, rec("1", "string v2"))))
	first, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, "number", first["name"])

	require.NoError(t, c.Apply(ev(models.EventRemoved, "1")))
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 0, c.IndexOf(1))
}

func TestApply_Inserted_Batch(t *testing.T) {
	c, _, _ := newTestCollection(t)
	seed(t, c, rec(1, "A"))
	got := observed(c)

	require.NoError(t, c.Apply(ev(models.EventInserted, []any{
		rec(2, "B"),
		rec(1, "dup"),
		rec(3, "first-3"),
		rec(4, "D"),
		rec(3, "last-3"),
	})))

	assert.Equal(t, []any{"A", "B", "D", "last-3"}, names(c.Records()))
	assert.Equal(t, 4, c.Len())

	require.Len(t, *got, 1)
	assert.Equal(t, models.EventInserted, (*got)[0].event)
	assert.Equal(t, []any{"B", "D", "last-3"}, names((*got)[0].payload.([]models.Record)))
}

func TestApply_Inserted_BatchOfDuplicates_NoNotify(t *testing.T) {
	c, _, _ := newTestCollection(t)
	seed(t, c, rec(1, "A"), rec(2, "B"))
	got := observed(c)

	require.NoError(t, c.Apply(ev(models.EventInserted, []any{rec(2, "x"), rec(1, "y")})))
	require.NoError(t, c.Apply(ev(models.EventInserted, []any{})))

	assert.Equal(t, 2, c.Len())
	assert.Empty(t, *got)
}

func TestApply_Inserted_Malformed(t *testing.T) {
	c, _, _ := newTestCollection(t)

	assert.ErrorIs(t, c.Apply(ev(models.EventInserted, 42)), ErrProtocolViolation)
	assert.ErrorIs(t, c.Apply(ev(models.EventInserted, nil)), ErrProtocolViolation)
	assert.ErrorIs(t, c.Apply(ev(models.EventInserted, []any{rec(1, "A"), "x"})), ErrProtocolViolation)
	assert.Equal(t, 0, c.Len())
}

// ── removed ─────────────────────────────────────────────────────────────────

func TestApply_Removed(t *testing.T) {
	tests := []struct {
		name string
		id   any
		want []any
	}{
		{name: "head", id: 1, want: []any{"B", "C"}},
		{name: "middle", id: 2, want: []any{"A", "C"}},
		{name: "tail", id: 3, want: []any{"A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestCollection(t)
			seed(t, c, rec(1, "A"), rec(2, "B"), rec(3, "C"))
			got := observed(c)

			require.NoError(t, c.Apply(ev(models.EventRemoved, tt.id)))

			assert.Equal(t, 2, c.Len())
			assert.Equal(t, tt.want, names(c.Records()))
			require.Len(t, *got, 1)
			assert.Equal(t, tt.id, (*got)[0].payload)
		})
	}
}

func TestApply_Removed_Absent_NoOp(t *testing.T) {
	c, _, _ := newTestCollection(t)
	seed(t, c, rec(1, "A"))
	got := observed(c)

	require.NoError(t, c.Apply(ev(models.EventRemoved, 99)))
	require.NoError(t, c.Apply(ev(models.EventRemoved, nil)))

	assert.Equal(t, 1, c.Len())
	assert.Empty(t, *got)
}

func TestApply_Removed_OnlyOneMatch(t *testing.T) {
	c, _, _ := newTestCollection(t)
	// duplicates can only come from a full synchronization
	seed(t, c, rec(1, "A"), rec(1, "A2"))

	require.NoError(t, c.Apply(ev(models.EventRemoved, 1)))
	assert.Equal(t, []any{"A"}, names(c.Records()))
}

// ── removedall ──────────────────────────────────────────────────────────────

func TestApply_RemovedAll(t *testing.T) {
	c, _, _ := newTestCollection(t)
	got := observed(c)

	require.NoError(t, c.Apply(ev(models.EventRemovedAll, nil)))
	assert.Equal(t, 0, c.Len())

	seed(t, c, rec(1, "A"), rec(2, "B"))
	require.NoError(t, c.Apply(ev(models.EventRemovedAll, "ignored")))
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Records())

	require.Len(t, *got, 3)
	assert.Equal(t, models.EventRemovedAll, (*got)[2].event)
	assert.Equal(t, []models.Record{}, (*got)[2].payload)
}

// ── updated ─────────────────────────────────────────────────────────────────

func TestApply_Updated(t *testing.T) {
	c, _, _ := newTestCollection(t)
	seed(t, c, rec(1, "A"), rec(2, "B"))
	got := observed(c)

	require.NoError(t, c.Apply(ev(models.EventUpdated, models.Record{"id": 2, "name": "C", "age": 30})))

	r, err := c.At(1)
	require.NoError(t, err)
	assert.Equal(t, "C", r["name"])
	assert.Equal(t, 30, r["age"])
	assert.Equal(t, 2, c.Len())
	require.Len(t, *got, 1)
	assert.Equal(t, models.EventUpdated, (*got)[0].event)
}

func TestApply_Updated_NilAndUnknown(t *testing.T) {
	c, _, _ := newTestCollection(t)
	seed(t, c, rec(1, "A"))
	before := c.Records()
	got := observed(c)

	require.NoError(t, c.Apply(ev(models.EventUpdated, nil)))
	require.NoError(t, c.Apply(ev(models.EventUpdated, rec(7, "ghost"))))

	assert.Equal(t, before, c.Records())
	assert.Empty(t, *got)
}

func TestApply_Updated_Malformed(t *testing.T) {
	c, _, _ := newTestCollection(t)
	seed(t, c, rec(1, "A"))

	assert.ErrorIs(t, c.Apply(ev(models.EventUpdated, "x")), ErrProtocolViolation)
}

func TestApply_Updated_WithoutID_NoOp(t *testing.T) {
	c, _, _ := newTestCollection(t)
	seed(t, c, rec(1, "A"))
	got := observed(c)
	before := c.Records()

	require.NoError(t, c.Apply(ev(models.EventUpdated, models.Record{"name": "no id"})))

	assert.Equal(t, before, c.Records())
	assert.Empty(t, *got)
}

// ── properties ──────────────────────────────────────────────────────────────

// TestApply_LengthMatchesDistinctIDs replays a mixed event sequence and
// checks after every step that the length equals the number of distinct ids.
func TestApply_LengthMatchesDistinctIDs(t *testing.T) {
	c, _, _ := newTestCollection(t)

	events := []models.ChangeEvent{
		ev(models.EventInserted, rec(1, "a")),
		ev(models.EventInserted, []any{rec(2, "b"), rec(3, "c"), rec(2, "b2")}),
		ev(models.EventInserted, rec(1, "dup")),
		ev(models.EventRemoved, 2),
		ev(models.EventRemoved, 42),
		ev(models.EventUpdated, rec(3, "c2")),
		ev(models.EventUpdated, nil),
		ev(models.EventRemovedAll, nil),
		ev(models.EventInserted, []any{rec(5, "e"), rec(6, "f")}),
		ev(models.EventSynchronized, []any{rec(7, "g")}),
		ev(models.EventInserted, rec(8, "h")),
	}

	for i, e := range events {
		require.NoError(t, c.Apply(e), "event %d", i)

		distinct := map[string]struct{}{}
		for _, r := range c.Records() {
			distinct[r.IDKey("id")] = struct{}{}
		}
		assert.Equal(t, len(distinct), c.Len(), "event %d", i)
		assert.Len(t, c.Records(), c.Len(), "event %d", i)
	}
	assert.Equal(t, 2, c.Len())
}

func TestApply_UnknownType_LeavesMirror(t *testing.T) {
	c, _, _ := newTestCollection(t)
	seed(t, c, rec(1, "A"))
	got := observed(c)

	err := c.Apply(ev("renamed", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unexpected change type "renamed"`)
	assert.Equal(t, 1, c.Len())
	assert.Empty(t, *got)
}

func TestApply_CustomIDField(t *testing.T) {
	c, _, _ := newTestCollection(t, WithIDField("_id"))
	seed(t, c, models.Record{"_id": "x1", "name": "A"})

	require.NoError(t, c.Apply(ev(models.EventInserted, models.Record{"_id": "x1", "name": "dup"})))
	require.NoError(t, c.Apply(ev(models.EventInserted, models.Record{"_id": "x2", "name": "B"})))
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.Apply(ev(models.EventRemoved, "x1")))
	assert.Equal(t, []any{"B"}, names(c.Records()))
}

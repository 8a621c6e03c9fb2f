// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EventType tags a change notification pushed by the sync service.
type EventType string

// Change notification types delivered on a collection's live stream.
const (
	// EventSynchronized carries the full current content of the collection.
	EventSynchronized EventType = "synchronized"
	// EventInserted carries one record or a slice of records.
	EventInserted EventType = "inserted"
	// EventRemoved carries the identifier of the removed record.
	EventRemoved EventType = "removed"
	// EventRemovedAll signals that the collection was emptied.
	EventRemovedAll EventType = "removedall"
	// EventUpdated carries the full new version of one record, or nil.
	EventUpdated EventType = "updated"
)

// ChangeEvent is a single message of a collection's change stream. The
// initial retrieval of a collection is delivered as an EventSynchronized
// event, every subsequent message describes an incremental change.
type ChangeEvent struct {
	Type EventType `json:"type" msgpack:"type"`
	Data any       `json:"data" msgpack:"data"`
}

// Valid reports whether t is one of the known change types.
func (t EventType) Valid() bool {
	switch t {
	case EventSynchronized, EventInserted, EventRemoved, EventRemovedAll, EventUpdated:
		return true
	default:
		return false
	}
}

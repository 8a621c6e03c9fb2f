// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// DefaultIDField is the key under which the remote store keeps the unique
// identifier of every record.
const DefaultIDField = "id"

// Record is the unit of storage in a collection: an open map of named fields
// plus a unique identifier assigned by the remote store.
type Record map[string]any

// ID returns the identifier stored under field and whether it is present.
func (r Record) ID(field string) (any, bool) {
	if r == nil {
		return nil, false
	}
	id, ok := r[field]
	if !ok || id == nil {
		return nil, false
	}
	return id, true
}

// IDKey returns the canonical comparison key of the identifier stored under
// field, or an empty string if the record has none.
//
// Identifiers travel through different codecs (a JSON number decodes as
// float64 or json.Number, a msgpack number as int8..uint64), so records are
// always compared by IDKey rather than by the raw value. The key carries the
// kind of the identifier: the string "1" and the number 1 are different ids.
func (r Record) IDKey(field string) string {
	id, ok := r.ID(field)
	if !ok {
		return ""
	}
	return IDKey(id)
}

// IDKey returns the canonical comparison key of a raw identifier value.
// Strings are prefixed with "s:" and numbers with "n:", numbers being
// rendered in their shortest decimal form so that 1, int8(1), 1.0 and
// json.Number("1") share a key.
func IDKey(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return "s:" + v
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return numberKey(strconv.FormatInt(i, 10))
		}
		if f, err := v.Float64(); err == nil {
			return floatKey(f)
		}
		return numberKey(v.String())
	case float64:
		return floatKey(v)
	case float32:
		return floatKey(float64(v))
	case int:
		return numberKey(strconv.FormatInt(int64(v), 10))
	case int8:
		return numberKey(strconv.FormatInt(int64(v), 10))
	case int16:
		return numberKey(strconv.FormatInt(int64(v), 10))
	case int32:
		return numberKey(strconv.FormatInt(int64(v), 10))
	case int64:
		return numberKey(strconv.FormatInt(v, 10))
	case uint:
		return numberKey(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return numberKey(strconv.FormatUint(uint64(v), 10))
	case uint16:
		return numberKey(strconv.FormatUint(uint64(v), 10))
	case uint32:
		return numberKey(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return numberKey(strconv.FormatUint(v, 10))
	case bool:
		return "b:" + strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%T:%v", v, v)
	}
}

func numberKey(digits string) string {
	return "n:" + digits
}

// floatKey renders integral floats like integers so that a JSON 12 and a
// msgpack 12 match.
func floatKey(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return numberKey(strconv.FormatInt(int64(f), 10))
	}
	return numberKey(strconv.FormatFloat(f, 'g', -1, 64))
}

// Clone returns a deep copy of r. Nested maps are copied as map[string]any
// and nested slices are copied element by element.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

// String renders the record as compact JSON with sorted keys.
func (r Record) String() string {
	b, err := json.Marshal(map[string]any(r))
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(r))
	}
	return string(b)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Record:
		return map[string]any(t.Clone())
	case map[string]any:
		return map[string]any(Record(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// AsRecord converts a decoded payload value into a Record. It accepts a
// Record, a map[string]any or a map[any]any with string keys.
func AsRecord(v any) (Record, bool) {
	switch t := v.(type) {
	case Record:
		return t, true
	case map[string]any:
		return Record(t), true
	case map[any]any:
		out := make(Record, len(t))
		for k, val := range t {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// AsRecords converts a decoded payload value into a slice of records. It
// accepts []Record, []map[string]any and []any whose elements are records.
func AsRecords(v any) ([]Record, bool) {
	switch t := v.(type) {
	case []Record:
		return t, true
	case []map[string]any:
		out := make([]Record, len(t))
		for i, m := range t {
			out[i] = Record(m)
		}
		return out, true
	case []any:
		out := make([]Record, 0, len(t))
		for _, e := range t {
			rec, ok := AsRecord(e)
			if !ok {
				return nil, false
			}
			out = append(out, rec)
		}
		return out, true
	default:
		return nil, false
	}
}

// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import "strings"

// MapEntry is a single key/value pair of a Map, preserving construction
// order for iteration and String rendering.
type MapEntry struct {
	Key Value
	Val Value
}

// Map is an insertion-ordered, heterogeneous-keyed associative Value. Keys
// must be hashable: Bool, Int, Uint, or String. Int and Uint keys that
// denote the same mathematical value are treated as the same key, matching
// the cross-type numeric equality used elsewhere in the value model.
type Map struct {
	entries []MapEntry
}

// IsHashable reports whether v is a valid CEL map key kind. Double is
// explicitly excluded: equality on floating point keys is not reliable
// under NaN, so map construction rejects it rather than risk silently
// inconsistent lookups.
func IsHashable(v Value) bool {
	switch v.(type) {
	case Bool, Int, Uint, String:
		return true
	default:
		return false
	}
}

// NewMap constructs a Map from the given entries, preserving order. It
// returns an Error if any key is unhashable or if two entries collide on
// the same key.
func NewMap(id int64, entries []MapEntry) Value {
	m := &Map{entries: make([]MapEntry, 0, len(entries))}
	for _, e := range entries {
		if !IsHashable(e.Key) {
			return NewErrKind(id, InvalidArgument, "unsupported map key type: %s", e.Key.String())
		}
		if _, found := m.find(e.Key); found {
			return NewErrKind(id, InvalidArgument, "duplicate map key: %s", e.Key.String())
		}
		m.entries = append(m.entries, e)
	}
	return m
}

func (m *Map) Kind() Kind { return KindMap }

func (m *Map) find(key Value) (Value, bool) {
	for _, e := range m.entries {
		eq := e.Key.Equal(key)
		if eq == True {
			return e.Val, true
		}
	}
	return nil, false
}

func (m *Map) Equal(other Value) Value {
	o, ok := other.(*Map)
	if !ok {
		return False
	}
	if len(m.entries) != len(o.entries) {
		return False
	}
	for _, e := range m.entries {
		v, found := o.find(e.Key)
		if !found {
			return False
		}
		eq := e.Val.Equal(v)
		if IsErrorOrUnknown(eq) {
			return eq
		}
		if eq != True {
			return False
		}
	}
	return True
}

func (m *Map) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Key.String())
		sb.WriteString(": ")
		sb.WriteString(e.Val.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (m *Map) Len() int64 { return int64(len(m.entries)) }

// Get looks up key, returning a NoSuchKey Error at id if absent.
func (m *Map) Get(id int64, key Value) Value {
	v, found := m.find(key)
	if !found {
		return NoSuchKeyErr(id, key)
	}
	return v
}

// Find looks up key without producing an Error, for has()-style presence
// tests and optional indexing.
func (m *Map) Find(key Value) (Value, bool) { return m.find(key) }

// Iterate returns the keys in insertion order; callers must not mutate it.
func (m *Map) Iterate() []Value {
	keys := make([]Value, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns the entries in insertion order; callers must not mutate
// it.
func (m *Map) Entries() []MapEntry { return m.entries }

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

import (
	"sort"
	"strings"
)

// Struct is a named, field-addressable record Value. The planning core
// treats struct field layout as externally supplied (via a TypeProvider
// collaborator at evaluation time); this type is the in-memory carrier used
// once fields have been populated, e.g. by a message-creation expression or
// by a host-supplied Activation binding.
type Struct struct {
	typeName string
	fields   map[string]Value
}

// NewStruct constructs a Struct with the given qualified type name and
// field values. The map is retained, not copied.
func NewStruct(typeName string, fields map[string]Value) *Struct {
	if fields == nil {
		fields = map[string]Value{}
	}
	return &Struct{typeName: typeName, fields: fields}
}

func (s *Struct) Kind() Kind { return KindStruct }

func (s *Struct) TypeName() string { return s.typeName }

func (s *Struct) Equal(other Value) Value {
	o, ok := other.(*Struct)
	if !ok {
		return False
	}
	if s.typeName != o.typeName || len(s.fields) != len(o.fields) {
		return False
	}
	for k, v := range s.fields {
		ov, found := o.fields[k]
		if !found {
			return False
		}
		eq := v.Equal(ov)
		if IsErrorOrUnknown(eq) {
			return eq
		}
		if eq != True {
			return False
		}
	}
	return True
}

func (s *Struct) String() string {
	names := make([]string, 0, len(s.fields))
	for k := range s.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	var sb strings.Builder
	sb.WriteString(s.typeName)
	sb.WriteByte('{')
	for i, n := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(n)
		sb.WriteString(": ")
		sb.WriteString(s.fields[n].String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// GetField returns the named field, or a NoSuchField Error at id if the
// struct carries no such field.
func (s *Struct) GetField(id int64, name string) Value {
	v, found := s.fields[name]
	if !found {
		return NoSuchFieldErr(id, name)
	}
	return v
}

// HasField reports whether the named field is present in the struct's field
// map; a present field holding a zero value still counts as set. The planning
// core treats presence as simple map membership; host type providers that need
// proto3 presence semantics layer that on top via the Struct they hand
// back.
func (s *Struct) HasField(name string) bool {
	_, found := s.fields[name]
	return found
}

// WithField returns a new Struct with name bound to v; s is not mutated.
func (s *Struct) WithField(name string, v Value) *Struct {
	next := make(map[string]Value, len(s.fields)+1)
	for k, fv := range s.fields {
		next[k] = fv
	}
	next[name] = v
	return &Struct{typeName: s.typeName, fields: next}
}

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

// List is an ordered, heterogeneous sequence of Values.
type List struct {
	elems []Value
}

// NewList constructs a List value from the given elements. The slice is
// retained, not copied; callers must not mutate it afterward.
func NewList(elems []Value) *List {
	if elems == nil {
		elems = []Value{}
	}
	return &List{elems: elems}
}

func (l *List) Kind() Kind { return KindList }

func (l *List) Equal(other Value) Value {
	o, ok := other.(*List)
	if !ok {
		return False
	}
	if len(l.elems) != len(o.elems) {
		return False
	}
	for i, e := range l.elems {
		eq := e.Equal(o.elems[i])
		if IsErrorOrUnknown(eq) {
			return eq
		}
		if eq != True {
			return False
		}
	}
	return True
}

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range l.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (l *List) Len() int64 { return int64(len(l.elems)) }

// Get returns the element at the given index, or an InvalidArgument Error at
// id if the index is out of range.
func (l *List) Get(id int64, index int64) Value {
	if index < 0 || index >= int64(len(l.elems)) {
		return NewErrKind(id, InvalidArgument, "index %d out of range [0, %d)", index, len(l.elems))
	}
	return l.elems[index]
}

// Iterate returns the elements in order; callers must not mutate the result.
func (l *List) Iterate() []Value { return l.elems }

// Contains reports whether v is equal to any element of l. The result is
// Unknown or Error if any element comparison is itself Unknown or Error and
// no earlier element produced a definite true.
func (l *List) Contains(v Value) Value {
	var absorbed Value
	for _, e := range l.elems {
		eq := e.Equal(v)
		if IsErrorOrUnknown(eq) {
			if absorbed == nil {
				absorbed = eq
			}
			continue
		}
		if eq == True {
			return True
		}
	}
	if absorbed != nil {
		return absorbed
	}
	return False
}

// Append returns a new List with v appended; l is not mutated.
func (l *List) Append(v Value) *List {
	next := make([]Value, len(l.elems)+1)
	copy(next, l.elems)
	next[len(l.elems)] = v
	return &List{elems: next}
}

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

import "fmt"

// Enum is a named enumerated constant carrying its declaring type name and
// underlying numeric value. Enum values order by their underlying number;
// they equal an Int with the same number, or an Enum of the same declaring
// type and number.
type Enum struct {
	typeName string
	name     string
	value    int32
}

// NewEnum constructs an Enum value.
func NewEnum(typeName, name string, value int32) Enum {
	return Enum{typeName: typeName, name: name, value: value}
}

func (e Enum) Kind() Kind { return KindEnum }

func (e Enum) TypeName() string { return e.typeName }

func (e Enum) Name() string { return e.name }

func (e Enum) Value() int32 { return e.value }

func (e Enum) Equal(other Value) Value {
	switch o := other.(type) {
	case Enum:
		return Bool(e.typeName == o.typeName && e.value == o.value)
	case Int:
		return Bool(int64(e.value) == int64(o))
	default:
		return False
	}
}

func (e Enum) String() string { return fmt.Sprintf("%s.%s", e.typeName, e.name) }

// Compare orders e by its underlying numeric value.
func (e Enum) Compare(other Value) (int, bool) {
	switch o := other.(type) {
	case Enum:
		return Int(e.value).Compare(Int(o.value))
	case Int, Uint, Double:
		return Int(e.value).Compare(o)
	}
	return 0, false
}

// Copyright 2021 Google LLC
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

// Optional wraps a Value that may or may not be present, the result of
// optional-chaining qualification (e.g. `a.?b.c`) or of an explicit
// optional.of / optional.none construction.
type Optional struct {
	value    Value
	hasValue bool
}

// OptionalNone is the absent Optional singleton.
var OptionalNone = &Optional{}

// OptionalOf wraps v as a present Optional. An absent Optional passed as v
// is returned as OptionalNone, so some(none) collapses to none.
func OptionalOf(v Value) *Optional {
	if o, ok := v.(*Optional); ok && !o.hasValue {
		return OptionalNone
	}
	return &Optional{value: v, hasValue: true}
}

func (o *Optional) Kind() Kind { return KindOptional }

func (o *Optional) HasValue() bool { return o.hasValue }

// GetValue returns the wrapped value, or an Error if the Optional is
// absent.
func (o *Optional) GetValue() Value {
	if !o.hasValue {
		return NewErrKind(0, InvalidArgument, "optional.none() dereferenced")
	}
	return o.value
}

func (o *Optional) Equal(other Value) Value {
	oo, ok := other.(*Optional)
	if !ok {
		return False
	}
	if o.hasValue != oo.hasValue {
		return False
	}
	if !o.hasValue {
		return True
	}
	return o.value.Equal(oo.value)
}

func (o *Optional) String() string {
	if !o.hasValue {
		return "optional.none()"
	}
	return fmt.Sprintf("optional.of(%s)", o.value.String())
}

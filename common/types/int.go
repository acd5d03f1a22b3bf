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
	"fmt"
	"math"
)

// Int is a signed 64-bit integer Value.
type Int int64

// IntZero is a commonly used Int constant.
const IntZero = Int(0)

func (i Int) Kind() Kind { return KindInt }

func (i Int) Equal(other Value) Value {
	switch o := other.(type) {
	case Int:
		return Bool(i == o)
	case Uint:
		return Bool(o <= math.MaxInt64 && i == Int(o))
	case Double:
		return Bool(float64(i) == float64(o))
	default:
		return False
	}
}

func (i Int) String() string { return fmt.Sprintf("%d", int64(i)) }

// Negate returns -i, or an overflow Error at id if i is math.MinInt64.
func (i Int) Negate(id int64) Value {
	v, ok := negateInt64Checked(int64(i))
	if !ok {
		return NewErrKind(id, Overflow, "integer negation overflow")
	}
	return Int(v)
}

func (i Int) Add(id int64, other Int) Value {
	v, ok := addInt64Checked(int64(i), int64(other))
	if !ok {
		return NewErrKind(id, Overflow, "integer overflow")
	}
	return Int(v)
}

func (i Int) Subtract(id int64, other Int) Value {
	v, ok := subtractInt64Checked(int64(i), int64(other))
	if !ok {
		return NewErrKind(id, Overflow, "integer overflow")
	}
	return Int(v)
}

func (i Int) Multiply(id int64, other Int) Value {
	v, ok := multiplyInt64Checked(int64(i), int64(other))
	if !ok {
		return NewErrKind(id, Overflow, "integer overflow")
	}
	return Int(v)
}

func (i Int) Divide(id int64, other Int) Value {
	if other == 0 {
		return NewErrKind(id, DivideByZero, "division by zero")
	}
	v, ok := divideInt64Checked(int64(i), int64(other))
	if !ok {
		return NewErrKind(id, Overflow, "integer overflow")
	}
	return Int(v)
}

func (i Int) Modulo(id int64, other Int) Value {
	if other == 0 {
		return NewErrKind(id, DivideByZero, "modulus by zero")
	}
	v, ok := moduloInt64Checked(int64(i), int64(other))
	if !ok {
		return NewErrKind(id, Overflow, "integer overflow")
	}
	return Int(v)
}

// Compare returns -1, 0, or 1 comparing i to other; NaN-aware per Double.
func (i Int) Compare(other Value) (int, bool) {
	switch o := other.(type) {
	case Int:
		switch {
		case i < o:
			return -1, true
		case i > o:
			return 1, true
		default:
			return 0, true
		}
	case Uint:
		if o > math.MaxInt64 {
			return -1, true
		}
		return Int(i).Compare(Int(o))
	case Double:
		return compareFloat(float64(i), float64(o))
	}
	return 0, false
}

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

// Uint is an unsigned 64-bit integer Value.
type Uint uint64

func (u Uint) Kind() Kind { return KindUint }

func (u Uint) Equal(other Value) Value {
	switch o := other.(type) {
	case Uint:
		return Bool(u == o)
	case Int:
		return Bool(o >= 0 && u == Uint(o))
	case Double:
		return Bool(float64(u) == float64(o))
	default:
		return False
	}
}

func (u Uint) String() string { return fmt.Sprintf("%d", uint64(u)) }

func (u Uint) Add(id int64, other Uint) Value {
	v, ok := addUint64Checked(uint64(u), uint64(other))
	if !ok {
		return NewErrKind(id, Overflow, "unsigned integer overflow")
	}
	return Uint(v)
}

func (u Uint) Subtract(id int64, other Uint) Value {
	v, ok := subtractUint64Checked(uint64(u), uint64(other))
	if !ok {
		return NewErrKind(id, Overflow, "unsigned integer overflow")
	}
	return Uint(v)
}

func (u Uint) Multiply(id int64, other Uint) Value {
	v, ok := multiplyUint64Checked(uint64(u), uint64(other))
	if !ok {
		return NewErrKind(id, Overflow, "unsigned integer overflow")
	}
	return Uint(v)
}

func (u Uint) Divide(id int64, other Uint) Value {
	if other == 0 {
		return NewErrKind(id, DivideByZero, "division by zero")
	}
	return u / other
}

func (u Uint) Modulo(id int64, other Uint) Value {
	if other == 0 {
		return NewErrKind(id, DivideByZero, "modulus by zero")
	}
	return u % other
}

// Compare returns -1, 0, or 1 comparing u to other.
func (u Uint) Compare(other Value) (int, bool) {
	switch o := other.(type) {
	case Uint:
		switch {
		case u < o:
			return -1, true
		case u > o:
			return 1, true
		default:
			return 0, true
		}
	case Int:
		if o < 0 {
			return 1, true
		}
		return u.Compare(Uint(o))
	case Double:
		return compareFloat(float64(u), float64(o))
	}
	return 0, false
}

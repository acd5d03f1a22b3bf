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

// Package types implements the runtime value model shared by the planner and the
// interpretable evaluation tree: a small closed sum of variants with every
// operation total over the set.
package types

// Value is the common interface implemented by every runtime value variant:
// Bool, Int, Uint, Double, String, Bytes, Null, List, Map, Struct, Enum, Type,
// Optional, Error, and Unknown.
//
// Implementations are immutable after construction.
type Value interface {
	// Kind reports which of the closed set of value variants this is.
	Kind() Kind

	// Equal reports whether the receiver and other represent the same CEL value.
	// Equality between an Error or Unknown and any other value is itself an
	// Error/Unknown, per the absorbing-value rule; callers that need a plain
	// bool should use ValuesEqual instead.
	Equal(other Value) Value

	// String renders a debug representation of the value; not used for CEL's
	// own string conversions.
	String() string
}

// Kind enumerates the closed set of runtime value variants.
type Kind int

const (
	// KindBool through KindUnknown mirror the value variants in the data model.
	KindBool Kind = iota
	KindInt
	KindUint
	KindDouble
	KindString
	KindBytes
	KindNull
	KindList
	KindMap
	KindStruct
	KindEnum
	KindType
	KindOptional
	KindError
	KindUnknown
	KindDuration
	KindDyn
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindNull:
		return "null"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindType:
		return "type"
	case KindOptional:
		return "optional"
	case KindError:
		return "error"
	case KindUnknown:
		return "unknown"
	case KindDuration:
		return "duration"
	case KindDyn:
		return "dyn"
	}
	return "unspecified"
}

// IsError reports whether v is an Error value.
func IsError(v Value) bool {
	_, ok := v.(*Error)
	return ok
}

// IsUnknown reports whether v is an Unknown value.
func IsUnknown(v Value) bool {
	_, ok := v.(*Unknown)
	return ok
}

// IsErrorOrUnknown reports whether v is either absorbing variant.
func IsErrorOrUnknown(v Value) bool {
	return IsError(v) || IsUnknown(v)
}

// ValuesEqual reports plain Go-level equality between two CEL values, treating
// Error and Unknown as never equal to anything (including each other).
func ValuesEqual(a, b Value) bool {
	if IsErrorOrUnknown(a) || IsErrorOrUnknown(b) {
		return false
	}
	eq := a.Equal(b)
	bv, ok := eq.(Bool)
	return ok && bool(bv)
}

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

// Type is a first-class reference to one of the runtime value kinds, or to
// a named struct/enum type. It is produced whenever an identifier resolves
// to a type-constructor name (e.g. `int`, `google.type.Money`), and is what
// the `type(x)` conversion yields.
type Type struct {
	name string
	kind Kind
}

// Well-known Type singletons for the primitive kinds, keyed by the names
// the planner recognizes as type-conversion intrinsics.
var (
	BoolType   = Type{name: "bool", kind: KindBool}
	IntType    = Type{name: "int", kind: KindInt}
	UintType   = Type{name: "uint", kind: KindUint}
	DoubleType = Type{name: "double", kind: KindDouble}
	StringType = Type{name: "string", kind: KindString}
	BytesType  = Type{name: "bytes", kind: KindBytes}
	NullType   = Type{name: "null_type", kind: KindNull}
	ListType   = Type{name: "list", kind: KindList}
	MapType    = Type{name: "map", kind: KindMap}
	TypeType   = Type{name: "type", kind: KindType}

	// DynType is the static type of an expression the checker left unconstrained; it never
	// appears as a runtime value's own kind, only as a type-map entry.
	DynType = Type{name: "dyn", kind: KindDyn}
)

// IsDyn reports whether t is the Dyn static type.
func (t Type) IsDyn() bool { return t.kind == KindDyn }

// NewObjectType constructs a Type referring to a named struct type, as
// resolved against a container namespace or TypeProvider.
func NewObjectType(name string) Type { return Type{name: name, kind: KindStruct} }

// NewEnumType constructs a Type referring to a named enum type.
func NewEnumType(name string) Type { return Type{name: name, kind: KindEnum} }

func (t Type) Kind() Kind { return KindType }

// TypeName returns the type's qualified name, e.g. "int" or
// "google.type.Money".
func (t Type) TypeName() string { return t.name }

// ValueKind returns the Kind of values this Type describes.
func (t Type) ValueKind() Kind { return t.kind }

func (t Type) Equal(other Value) Value {
	o, ok := other.(Type)
	if !ok {
		return False
	}
	return Bool(t.name == o.name && t.kind == o.kind)
}

func (t Type) String() string { return t.name }

// TypeOf returns the first-class Type describing v's runtime kind. Struct
// and Enum values carry their own declared type name; every other kind
// maps to its well-known singleton.
func TypeOf(v Value) Type {
	switch o := v.(type) {
	case *Struct:
		return NewObjectType(o.TypeName())
	case Enum:
		return NewEnumType(o.TypeName())
	case Type:
		return TypeType
	case Bool:
		return BoolType
	case Int:
		return IntType
	case Uint:
		return UintType
	case Double:
		return DoubleType
	case String:
		return StringType
	case Bytes:
		return BytesType
	case Null:
		return NullType
	case *List:
		return ListType
	case *Map:
		return MapType
	default:
		return Type{name: v.Kind().String(), kind: v.Kind()}
	}
}

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

import "testing"

func TestTypeSingletons(t *testing.T) {
	if IntType.TypeName() != "int" || IntType.ValueKind() != KindInt {
		t.Errorf("got %q, %v, wanted int, KindInt", IntType.TypeName(), IntType.ValueKind())
	}
	if !DynType.IsDyn() {
		t.Error("DynType.IsDyn() == false")
	}
	if BoolType.IsDyn() {
		t.Error("BoolType.IsDyn() == true")
	}
}

func TestNewObjectType(t *testing.T) {
	ty := NewObjectType("my.Foo")
	if ty.TypeName() != "my.Foo" || ty.ValueKind() != KindStruct {
		t.Errorf("got %q, %v, wanted my.Foo, KindStruct", ty.TypeName(), ty.ValueKind())
	}
}

func TestNewEnumType(t *testing.T) {
	ty := NewEnumType("my.Color")
	if ty.TypeName() != "my.Color" || ty.ValueKind() != KindEnum {
		t.Errorf("got %q, %v, wanted my.Color, KindEnum", ty.TypeName(), ty.ValueKind())
	}
}

func TestTypeEqual(t *testing.T) {
	if IntType.Equal(IntType) != True {
		t.Error("IntType != IntType")
	}
	if IntType.Equal(StringType) != False {
		t.Error("IntType == StringType, wanted false")
	}
	if NewObjectType("my.Foo").Equal(NewEnumType("my.Foo")) != False {
		t.Error("same name but different kind compared equal")
	}
}

func TestTypeOf(t *testing.T) {
	cases := []struct {
		v    Value
		want Type
	}{
		{Bool(true), BoolType},
		{Int(1), IntType},
		{Uint(1), UintType},
		{Double(1), DoubleType},
		{String("a"), StringType},
		{Bytes("a"), BytesType},
		{NullValue, NullType},
		{NewList(nil), ListType},
		{NewMap(0, nil), MapType},
		{IntType, TypeType},
	}
	for _, tc := range cases {
		if got := TypeOf(tc.v); got != tc.want {
			t.Errorf("TypeOf(%v): got %v, wanted %v", tc.v, got, tc.want)
		}
	}
	s := NewStruct("my.Foo", nil)
	if got := TypeOf(s); got.TypeName() != "my.Foo" || got.ValueKind() != KindStruct {
		t.Errorf("TypeOf(struct): got %v, wanted an object type named my.Foo", got)
	}
	e := NewEnum("my.Color", "RED", 0)
	if got := TypeOf(e); got.TypeName() != "my.Color" || got.ValueKind() != KindEnum {
		t.Errorf("TypeOf(enum): got %v, wanted an enum type named my.Color", got)
	}
}

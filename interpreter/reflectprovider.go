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

package interpreter

import (
	"reflect"
	"sort"

	"github.com/waveform-dev/celcore/common/types"
)

// ReflectProvider is a TypeProvider backed by Go struct definitions registered ahead of time by
// the embedder. It does not read protobuf descriptors or generated code (out of scope: see
// SPEC_FULL.md §1); it exists so the planner's CreateStruct/Select paths and the legacy-enum field
// coercion have a real, introspectable type to run against.
//
// Field names are taken from a `cel:"name"` struct tag when present, or the Go field name
// otherwise. No automatic camelCase/snake_case translation is performed.
type ReflectProvider struct {
	structs map[string]reflect.Type
	enums   map[string]map[string]int32
}

// NewReflectProvider returns an empty ReflectProvider; register types with RegisterStruct and
// RegisterEnum before planning expressions that reference them.
func NewReflectProvider() *ReflectProvider {
	return &ReflectProvider{
		structs: map[string]reflect.Type{},
		enums:   map[string]map[string]int32{},
	}
}

// RegisterStruct associates typeName with goType, which must be a struct type (not a pointer to
// one). Only exported fields are visible to FindStructFieldType/StructFieldNames.
func (p *ReflectProvider) RegisterStruct(typeName string, goType reflect.Type) {
	if goType.Kind() != reflect.Struct {
		panic("interpreter: RegisterStruct requires a struct kind, got " + goType.Kind().String())
	}
	p.structs[typeName] = goType
}

// RegisterEnum associates typeName with a set of value-name to ordinal mappings.
func (p *ReflectProvider) RegisterEnum(typeName string, values map[string]int32) {
	p.enums[typeName] = values
}

func (p *ReflectProvider) FindStructType(name string) (string, bool) {
	if _, found := p.structs[name]; !found {
		return "", false
	}
	return name, true
}

func (p *ReflectProvider) FindStructFieldType(typeName, field string) (*types.Type, bool) {
	goType, found := p.structs[typeName]
	if !found {
		return nil, false
	}
	sf, found := fieldByCELName(goType, field)
	if !found {
		return nil, false
	}
	t := p.celType(sf.Type)
	return &t, true
}

func (p *ReflectProvider) StructFieldNames(typeName string) []string {
	goType, found := p.structs[typeName]
	if !found {
		return nil
	}
	names := make([]string, 0, goType.NumField())
	for i := 0; i < goType.NumField(); i++ {
		sf := goType.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		names = append(names, celFieldName(sf))
	}
	sort.Strings(names)
	return names
}

func (p *ReflectProvider) FindEnumType(name string) (string, bool) {
	if _, found := p.enums[name]; !found {
		return "", false
	}
	return name, true
}

func (p *ReflectProvider) FindEnumValue(name string) (int32, bool) {
	typeName, valueName, ok := splitLastDot(name)
	if !ok {
		return 0, false
	}
	values, found := p.enums[typeName]
	if !found {
		return 0, false
	}
	v, found := values[valueName]
	return v, found
}

// NewStruct builds a types.Struct carrier for typeName: fieldValues are used as given, and any
// declared field absent from fieldValues is defaulted to its kind's zero value.
func (p *ReflectProvider) NewStruct(typeName string, fieldValues map[string]types.Value) types.Value {
	goType, found := p.structs[typeName]
	if !found {
		return types.NewErrKind(0, types.Generic, "no such struct type: %s", typeName)
	}
	fields := make(map[string]types.Value, goType.NumField())
	for i := 0; i < goType.NumField(); i++ {
		sf := goType.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		name := celFieldName(sf)
		if v, present := fieldValues[name]; present {
			fields[name] = v
			continue
		}
		fields[name] = zeroValue(p.celType(sf.Type))
	}
	for name, v := range fieldValues {
		if _, declared := fields[name]; !declared {
			fields[name] = v
		}
	}
	return types.NewStruct(typeName, fields)
}

func (p *ReflectProvider) celType(t reflect.Type) types.Type {
	switch t.Kind() {
	case reflect.Bool:
		return types.BoolType
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return types.IntType
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return types.UintType
	case reflect.Float32, reflect.Float64:
		return types.DoubleType
	case reflect.String:
		return types.StringType
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return types.BytesType
		}
		return types.ListType
	case reflect.Array:
		return types.ListType
	case reflect.Map:
		return types.MapType
	case reflect.Struct:
		if name, found := p.structNameOf(t); found {
			return types.NewObjectType(name)
		}
		return types.NewObjectType(t.Name())
	default:
		return types.DynType
	}
}

func (p *ReflectProvider) structNameOf(t reflect.Type) (string, bool) {
	for name, goType := range p.structs {
		if goType == t {
			return name, true
		}
	}
	return "", false
}

func zeroValue(t types.Type) types.Value {
	switch t.ValueKind() {
	case types.KindBool:
		return types.False
	case types.KindInt:
		return types.Int(0)
	case types.KindUint:
		return types.Uint(0)
	case types.KindDouble:
		return types.Double(0)
	case types.KindString:
		return types.String("")
	case types.KindBytes:
		return types.Bytes{}
	case types.KindList:
		return types.NewList(nil)
	case types.KindMap:
		return types.NewMap(0, nil)
	default:
		return types.NullValue
	}
}

func celFieldName(sf reflect.StructField) string {
	if tag, ok := sf.Tag.Lookup("cel"); ok && tag != "" {
		return tag
	}
	return sf.Name
}

func fieldByCELName(goType reflect.Type, field string) (reflect.StructField, bool) {
	for i := 0; i < goType.NumField(); i++ {
		sf := goType.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		if celFieldName(sf) == field {
			return sf, true
		}
	}
	return reflect.StructField{}, false
}

func splitLastDot(name string) (string, string, bool) {
	idx := -1
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", "", false
	}
	return name[:idx], name[idx+1:], true
}

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

import "github.com/waveform-dev/celcore/common/types"

// TypeProvider supplies struct and enum reflection: the planner and the CreateStruct node
// consult it to validate type names, field names, and field types, and to construct struct
// values once fields are evaluated. It is referenced only through this interface; no concrete
// implementation lives in the planning core.
type TypeProvider interface {
	// FindStructType returns the canonical name of the struct type named name, and whether it
	// was found. name has already had container-namespace candidate resolution applied by the
	// caller; FindStructType itself does exact matching only.
	FindStructType(name string) (string, bool)

	// FindStructFieldType returns the declared Type of field on typeName, if both the type and
	// the field are known.
	FindStructFieldType(typeName, field string) (*types.Type, bool)

	// StructFieldNames lists the declared field names of typeName, for default-value population
	// when a CreateStruct expression omits a required field.
	StructFieldNames(typeName string) []string

	// FindEnumType returns the canonical name of the enum type named name, and whether it was
	// found.
	FindEnumType(name string) (string, bool)

	// FindEnumValue resolves a fully-qualified enum constant name to its numeric value.
	FindEnumValue(name string) (int32, bool)

	// NewStruct constructs a Value of typeName from already-evaluated and already-coerced field
	// values, applying any provider-side defaults for fields not present in fieldValues.
	NewStruct(typeName string, fieldValues map[string]types.Value) types.Value
}

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

package ast

import "github.com/waveform-dev/celcore/common/types"

// ReferenceInfo carries the resolution the type checker computed for an identifier, select, or
// call expression node: the canonical (possibly namespace-qualified) name it resolved to, the
// overload ids a call expression may dispatch to, and, for identifiers that name a constant
// (enum values and the `cel.@block` hidden slots), the constant value itself.
type ReferenceInfo struct {
	// Name is the canonical, possibly container-qualified name the expression resolved to.
	Name string

	// OverloadIDs lists the overload ids a call expression could dispatch to, in declaration
	// order. Empty for identifier and select references.
	OverloadIDs []string

	// Value holds the constant value of the reference, if the checker determined this
	// identifier names a constant (most commonly an enum value). Nil otherwise.
	Value types.Value
}

// NewIdentReference creates a ReferenceInfo for an identifier that resolves to name, optionally
// carrying a constant value.
func NewIdentReference(name string, value types.Value) *ReferenceInfo {
	return &ReferenceInfo{Name: name, Value: value}
}

// NewFunctionReference creates a ReferenceInfo for a call expression with the given candidate
// overload ids.
func NewFunctionReference(overloadIDs ...string) *ReferenceInfo {
	return &ReferenceInfo{OverloadIDs: append([]string{}, overloadIDs...)}
}

// AddOverload appends an overload id to the reference if not already present, returning whether
// the set changed.
func (r *ReferenceInfo) AddOverload(overloadID string) bool {
	for _, id := range r.OverloadIDs {
		if id == overloadID {
			return false
		}
	}
	r.OverloadIDs = append(r.OverloadIDs, overloadID)
	return true
}

// Equals reports whether r and other carry the same name, overloads, and constant value.
func (r *ReferenceInfo) Equals(other *ReferenceInfo) bool {
	if r == other {
		return true
	}
	if r == nil || other == nil {
		return false
	}
	if r.Name != other.Name || len(r.OverloadIDs) != len(other.OverloadIDs) {
		return false
	}
	for i, id := range r.OverloadIDs {
		if other.OverloadIDs[i] != id {
			return false
		}
	}
	if (r.Value == nil) != (other.Value == nil) {
		return false
	}
	if r.Value == nil {
		return true
	}
	return types.ValuesEqual(r.Value, other.Value)
}

// AST bundles an input expression tree with the optional reference and type maps a checker
// would have produced. A nil or zero-value ReferenceMap/TypeMap means the expression is
// parse-only: the planner falls back to its own unchecked resolution rules (container scan,
// dispatcher probing) wherever a lookup misses.
type AST struct {
	expr     Expr
	sourceID string
	refMap   map[int64]*ReferenceInfo
	typeMap  map[int64]*types.Type
}

// NewAST constructs an AST wrapping expr with no reference or type information; used for
// parse-only input.
func NewAST(expr Expr, sourceID string) *AST {
	return &AST{expr: expr, sourceID: sourceID, refMap: map[int64]*ReferenceInfo{}, typeMap: map[int64]*types.Type{}}
}

// NewCheckedAST constructs an AST carrying the given reference and type maps, as a checker would
// produce. Nil maps are normalized to empty ones.
func NewCheckedAST(expr Expr, sourceID string, refMap map[int64]*ReferenceInfo, typeMap map[int64]*types.Type) *AST {
	if refMap == nil {
		refMap = map[int64]*ReferenceInfo{}
	}
	if typeMap == nil {
		typeMap = map[int64]*types.Type{}
	}
	return &AST{expr: expr, sourceID: sourceID, refMap: refMap, typeMap: typeMap}
}

// Expr returns the root expression node.
func (a *AST) Expr() Expr { return a.expr }

// SourceID identifies the originating source text, for error reporting; opaque to the planner.
func (a *AST) SourceID() string { return a.sourceID }

// ReferenceMap returns the expr id -> ReferenceInfo map computed by the checker, or an empty
// map for parse-only input.
func (a *AST) ReferenceMap() map[int64]*ReferenceInfo { return a.refMap }

// TypeMap returns the expr id -> checked Type map, or an empty map for parse-only input.
func (a *AST) TypeMap() map[int64]*types.Type { return a.typeMap }

// IsChecked reports whether the AST carries any checker-computed reference or type information.
func (a *AST) IsChecked() bool { return len(a.refMap) > 0 || len(a.typeMap) > 0 }

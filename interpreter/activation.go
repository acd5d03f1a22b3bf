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

// Package interpreter implements the planner and executable node tree that evaluate a
// type-checked CEL expression against a runtime binding environment.
package interpreter

import "github.com/waveform-dev/celcore/common/types"

// Activation resolves identifiers by name and references by expression id.
//
// An Activation is the primary mechanism by which a caller supplies input into a CEL program; it
// is also how a Block or comprehension overlays its own scoped bindings without mutating the
// activation a caller passed in.
type Activation interface {
	// ResolveName returns a value from the activation by qualified name, or false if the name
	// could not be found.
	ResolveName(name string) (types.Value, bool)

	// ResolveReference returns a value from the activation by expression id, or false if the
	// id-based reference could not be found. Used by Block to bind intermediate slot values.
	ResolveReference(exprID int64) (types.Value, bool)

	// Parent returns the parent of the current activation, or nil. If non-nil, the parent is
	// searched when this activation's own bindings miss.
	Parent() Activation
}

// Supplier lazily produces a bound value; a MapActivation entry may be one of these instead of a
// plain types.Value so that expensive bindings are computed only if referenced.
type Supplier func() types.Value

// NewActivation returns an activation wrapping a map of qualified name to bound value. Values may
// be a types.Value directly or a Supplier for lazy binding.
func NewActivation(bindings map[string]any) *MapActivation {
	return &MapActivation{bindings: bindings}
}

// MapActivation implements Activation over a name-keyed map and an id-keyed reference map.
type MapActivation struct {
	references map[int64]types.Value
	bindings   map[string]any
}

var _ Activation = &MapActivation{}

func (a *MapActivation) Parent() Activation { return nil }

func (a *MapActivation) ResolveReference(exprID int64) (types.Value, bool) {
	v, found := a.references[exprID]
	return v, found
}

func (a *MapActivation) ResolveName(name string) (types.Value, bool) {
	bound, found := a.bindings[name]
	if !found {
		return nil, false
	}
	switch v := bound.(type) {
	case Supplier:
		return v(), true
	case types.Value:
		return v, true
	default:
		return nil, false
	}
}

// WithReference returns a's binding map extended with a single expression-id-keyed value,
// leaving a unmodified. Used by Block to thread slot bindings through evaluation.
func (a *MapActivation) WithReference(exprID int64, v types.Value) *MapActivation {
	refs := make(map[int64]types.Value, len(a.references)+1)
	for k, rv := range a.references {
		refs[k] = rv
	}
	refs[exprID] = v
	return &MapActivation{references: refs, bindings: a.bindings}
}

// HierarchicalActivation implements Activation by searching a child activation before falling
// back to a parent.
type HierarchicalActivation struct {
	parent Activation
	child  Activation
}

var _ Activation = &HierarchicalActivation{}

func (a *HierarchicalActivation) Parent() Activation { return a.parent }

func (a *HierarchicalActivation) ResolveReference(exprID int64) (types.Value, bool) {
	if v, found := a.child.ResolveReference(exprID); found {
		return v, true
	}
	return a.parent.ResolveReference(exprID)
}

func (a *HierarchicalActivation) ResolveName(name string) (types.Value, bool) {
	if v, found := a.child.ResolveName(name); found {
		return v, true
	}
	return a.parent.ResolveName(name)
}

// ExtendActivation produces a new Activation that prioritizes resolution in child, falling back
// to parent.
func ExtendActivation(parent, child Activation) Activation {
	return &HierarchicalActivation{parent: parent, child: child}
}

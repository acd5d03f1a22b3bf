// Copyright 2019 Google LLC
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
	"math"
	"strings"

	"github.com/waveform-dev/celcore/common/types"
)

// Qualifier represents a single step (field or index) in an attribute path: something that can
// be applied to an already-resolved value to produce the next value in the chain.
type Qualifier interface {
	// ID is the expression id where the qualifier appears in source.
	ID() int64

	// IsOptional reports whether the qualifier was written with the `?` optional-chaining
	// marker, or is acting as one because it followed an Optional value.
	IsOptional() bool

	// Qualify applies the qualifier to obj, short-circuiting on Error/Unknown.
	Qualify(act Activation, obj types.Value) types.Value
}

// Attribute is a compiled variable-plus-selection path: a variable reference together with the
// qualifiers chained onto it. Qualifiers may only be appended during planning; once an Attribute
// is wrapped by an Attr Interpretable node it is never mutated again.
type Attribute interface {
	// ID is the expression id the attribute was planned from.
	ID() int64

	// Resolve evaluates the attribute against act, applying every qualifier in order.
	Resolve(act Activation) types.Value

	// AddQualifier appends q to the attribute, returning the (possibly new) Attribute to use in
	// its place. Conditional and Maybe attributes fan the qualifier out to every branch.
	AddQualifier(q Qualifier) Attribute

	// Qualifiers lists the qualifiers appended so far, for introspection and testing.
	Qualifiers() []Qualifier
}

// AttributeFactory builds Attribute and Qualifier values for the planner. It holds no per-call
// state; it exists so the planner can be written against an interface rather than bare
// constructor functions, matching the rest of the planning core's collaborator style.
type AttributeFactory interface {
	// AbsoluteAttribute builds an Attribute rooted at a free variable named by the dot-joined
	// segments of namePath.
	AbsoluteAttribute(id int64, namePath ...string) Attribute

	// MaybeAttribute builds a disjunctive Attribute trying each candidate name in order,
	// stopping at the first one that resolves without error. Candidates with internal dots are
	// split into namePath segments the same way AbsoluteAttribute is.
	MaybeAttribute(id int64, candidates ...string) Attribute

	// RelativeAttribute builds an Attribute rooted at the result of evaluating operand.
	RelativeAttribute(id int64, operand Interpretable) Attribute

	// ConditionalAttribute builds an Attribute that selects between truthy and falsy based on
	// evaluating cond.
	ConditionalAttribute(id int64, cond Interpretable, truthy, falsy Attribute) Attribute

	// NewStringQualifier builds a field-name qualifier.
	NewStringQualifier(id int64, field string, optional bool) Qualifier

	// NewIndexQualifier builds a static-index qualifier.
	NewIndexQualifier(id int64, index types.Value, optional bool) Qualifier

	// NewComputedQualifier builds a dynamic-index qualifier that evaluates operand, then applies
	// index semantics to the result.
	NewComputedQualifier(id int64, operand Interpretable, optional bool) Qualifier
}

// NewAttributeFactory returns the default AttributeFactory.
func NewAttributeFactory() AttributeFactory {
	return &attrFactory{}
}

type attrFactory struct{}

func (*attrFactory) AbsoluteAttribute(id int64, namePath ...string) Attribute {
	return &absoluteAttribute{id: id, namePath: namePath}
}

func (f *attrFactory) MaybeAttribute(id int64, candidates ...string) Attribute {
	if len(candidates) == 1 {
		return f.AbsoluteAttribute(id, strings.Split(candidates[0], ".")...)
	}
	attrs := make([]*absoluteAttribute, len(candidates))
	for i, c := range candidates {
		attrs[i] = &absoluteAttribute{id: id, namePath: strings.Split(c, ".")}
	}
	return &maybeAttribute{id: id, attrs: attrs}
}

func (*attrFactory) RelativeAttribute(id int64, operand Interpretable) Attribute {
	return &relativeAttribute{id: id, operand: operand}
}

func (*attrFactory) ConditionalAttribute(id int64, cond Interpretable, truthy, falsy Attribute) Attribute {
	return &conditionalAttribute{id: id, cond: cond, truthy: truthy, falsy: falsy}
}

func (*attrFactory) NewStringQualifier(id int64, field string, optional bool) Qualifier {
	return &stringQualifier{id: id, field: field, optional: optional}
}

func (*attrFactory) NewIndexQualifier(id int64, index types.Value, optional bool) Qualifier {
	return &indexQualifier{id: id, index: index, optional: optional}
}

func (*attrFactory) NewComputedQualifier(id int64, operand Interpretable, optional bool) Qualifier {
	return &computedQualifier{id: id, operand: operand, optional: optional}
}

// absoluteAttribute is rooted at a free variable, per spec §4.1: try namePath[0] first, then the
// dot-joined whole path, then apply the remaining segments as synthesized qualifiers.
type absoluteAttribute struct {
	id         int64
	namePath   []string
	qualifiers []Qualifier
}

func (a *absoluteAttribute) ID() int64                { return a.id }
func (a *absoluteAttribute) Qualifiers() []Qualifier  { return a.qualifiers }

func (a *absoluteAttribute) AddQualifier(q Qualifier) Attribute {
	a.qualifiers = append(a.qualifiers, q)
	return a
}

func (a *absoluteAttribute) Resolve(act Activation) types.Value {
	var obj types.Value
	v, found := act.ResolveName(a.namePath[0])
	if found {
		obj = v
		for _, seg := range a.namePath[1:] {
			obj = qualifyField(act, a.id, obj, seg, false)
			if types.IsErrorOrUnknown(obj) {
				return obj
			}
		}
	} else if len(a.namePath) > 1 {
		joined := strings.Join(a.namePath, ".")
		v, found = act.ResolveName(joined)
		if !found {
			return types.NewErrKind(a.id, types.UndeclaredVariable, "undeclared reference to %s", a.namePath[0])
		}
		obj = v
	} else {
		return types.NewErrKind(a.id, types.UndeclaredVariable, "undeclared reference to %s", a.namePath[0])
	}
	for _, q := range a.qualifiers {
		obj = q.Qualify(act, obj)
		if types.IsErrorOrUnknown(obj) {
			return obj
		}
	}
	return obj
}

// maybeAttribute is a disjunction of absolute candidates tried in order; the first to resolve
// without Error wins. Qualifiers appended to a Maybe fan out to every candidate.
type maybeAttribute struct {
	id    int64
	attrs []*absoluteAttribute
}

func (a *maybeAttribute) ID() int64 { return a.id }

func (a *maybeAttribute) Qualifiers() []Qualifier {
	if len(a.attrs) == 0 {
		return nil
	}
	return a.attrs[0].Qualifiers()
}

func (a *maybeAttribute) AddQualifier(q Qualifier) Attribute {
	for _, cand := range a.attrs {
		cand.AddQualifier(q)
	}
	return a
}

func (a *maybeAttribute) Resolve(act Activation) types.Value {
	if len(a.attrs) == 0 {
		return types.NewErr(a.id, "no candidate attributes")
	}
	var last types.Value
	for _, cand := range a.attrs {
		v := cand.Resolve(act)
		if !types.IsError(v) {
			return v
		}
		last = v
	}
	return last
}

// relativeAttribute is rooted at the result of an arbitrary sub-expression.
type relativeAttribute struct {
	id         int64
	operand    Interpretable
	qualifiers []Qualifier
}

func (a *relativeAttribute) ID() int64               { return a.id }
func (a *relativeAttribute) Qualifiers() []Qualifier { return a.qualifiers }

func (a *relativeAttribute) AddQualifier(q Qualifier) Attribute {
	a.qualifiers = append(a.qualifiers, q)
	return a
}

func (a *relativeAttribute) Resolve(act Activation) types.Value {
	obj := a.operand.Eval(act)
	if types.IsErrorOrUnknown(obj) {
		return obj
	}
	for _, q := range a.qualifiers {
		obj = q.Qualify(act, obj)
		if types.IsErrorOrUnknown(obj) {
			return obj
		}
	}
	return obj
}

// conditionalAttribute selects between two candidate attributes based on a boolean condition,
// supporting expressions like (cond ? a : b).field.
type conditionalAttribute struct {
	id     int64
	cond   Interpretable
	truthy Attribute
	falsy  Attribute
}

func (a *conditionalAttribute) ID() int64 { return a.id }

func (a *conditionalAttribute) Qualifiers() []Qualifier { return a.truthy.Qualifiers() }

func (a *conditionalAttribute) AddQualifier(q Qualifier) Attribute {
	a.truthy.AddQualifier(q)
	a.falsy.AddQualifier(q)
	return a
}

func (a *conditionalAttribute) Resolve(act Activation) types.Value {
	condVal := a.cond.Eval(act)
	if types.IsError(condVal) {
		return condVal
	}
	if types.IsUnknown(condVal) {
		t := a.truthy.Resolve(act)
		f := a.falsy.Resolve(act)
		if types.IsUnknown(t) && types.IsUnknown(f) {
			merged, _ := types.MergeUnknowns(t, f)
			return merged
		}
		return condVal
	}
	b, ok := condVal.(types.Bool)
	if !ok {
		return types.NewErrKind(a.id, types.TypeMismatch, "no such overload: expected bool condition")
	}
	if bool(b) {
		return a.truthy.Resolve(act)
	}
	return a.falsy.Resolve(act)
}

// qualifyField implements StringQualifier.qualify: field-name access on Struct or Map, with
// Optional unwrapping and optional-chaining semantics per spec §4.1.
func qualifyField(act Activation, id int64, obj types.Value, field string, optional bool) types.Value {
	if types.IsErrorOrUnknown(obj) {
		return obj
	}
	optSel := optional
	if opt, ok := obj.(*types.Optional); ok {
		if !opt.HasValue() {
			return types.OptionalNone
		}
		obj = opt.GetValue()
		optSel = true
	}
	switch o := obj.(type) {
	case *types.Struct:
		if !o.HasField(field) {
			if optSel {
				return types.OptionalNone
			}
			return types.NoSuchFieldErr(id, field)
		}
		v := o.GetField(id, field)
		if optSel {
			return types.OptionalOf(v)
		}
		return v
	case *types.Map:
		v, found := o.Find(types.String(field))
		if !found {
			if optSel {
				return types.OptionalNone
			}
			return types.NoSuchKeyErr(id, types.String(field))
		}
		if optSel {
			return types.OptionalOf(v)
		}
		return v
	default:
		return types.NewErrKind(id, types.TypeMismatch, "type '%s' does not support field selection", types.TypeOf(obj).TypeName())
	}
}

type stringQualifier struct {
	id       int64
	field    string
	optional bool
}

func (q *stringQualifier) ID() int64         { return q.id }
func (q *stringQualifier) IsOptional() bool  { return q.optional }
func (q *stringQualifier) Qualify(act Activation, obj types.Value) types.Value {
	return qualifyField(act, q.id, obj, q.field, q.optional)
}

type indexQualifier struct {
	id       int64
	index    types.Value
	optional bool
}

func (q *indexQualifier) ID() int64        { return q.id }
func (q *indexQualifier) IsOptional() bool { return q.optional }
func (q *indexQualifier) Qualify(act Activation, obj types.Value) types.Value {
	return qualifyIndex(q.id, obj, q.index, q.optional)
}

type computedQualifier struct {
	id       int64
	operand  Interpretable
	optional bool
}

func (q *computedQualifier) ID() int64        { return q.id }
func (q *computedQualifier) IsOptional() bool { return q.optional }
func (q *computedQualifier) Qualify(act Activation, obj types.Value) types.Value {
	idx := q.operand.Eval(act)
	if types.IsErrorOrUnknown(idx) {
		return idx
	}
	return qualifyIndex(q.id, obj, idx, q.optional)
}

// normalizeListIndex converts index to an int64 list/string/bytes position per spec: Int passes
// through; Uint widens if it fits; finite integral Double narrows; anything else is invalid.
func normalizeListIndex(index types.Value) (int64, bool) {
	switch v := index.(type) {
	case types.Int:
		return int64(v), true
	case types.Uint:
		if uint64(v) > uint64(math.MaxInt64) {
			return 0, false
		}
		return int64(v), true
	case types.Double:
		if v.IsNaN() || math.IsInf(float64(v), 0) {
			return 0, false
		}
		f := float64(v)
		if f != math.Trunc(f) {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

// qualifyIndex implements IndexQualifier.qualify over List, Map, String, and Bytes, per spec
// §4.1, with Optional unwrapping and optional-chaining semantics.
func qualifyIndex(id int64, obj, index types.Value, optional bool) types.Value {
	if types.IsErrorOrUnknown(obj) {
		return obj
	}
	if types.IsErrorOrUnknown(index) {
		return index
	}
	optSel := optional
	if opt, ok := obj.(*types.Optional); ok {
		if !opt.HasValue() {
			return types.OptionalNone
		}
		obj = opt.GetValue()
		optSel = true
	}
	switch o := obj.(type) {
	case *types.List:
		idx, ok := normalizeListIndex(index)
		if !ok {
			return types.NewErrKind(id, types.InvalidArgument, "invalid list index: %s", index.String())
		}
		if idx < 0 || idx >= o.Len() {
			if optSel {
				return types.OptionalNone
			}
			return types.NewErrKind(id, types.InvalidArgument, "index %d out of range [0, %d)", idx, o.Len())
		}
		v := o.Get(id, idx)
		if optSel {
			return types.OptionalOf(v)
		}
		return v
	case *types.Map:
		if !types.IsHashable(index) {
			return types.NewErrKind(id, types.TypeMismatch, "unsupported map key type: %s", index.String())
		}
		v, found := o.Find(index)
		if !found {
			if optSel {
				return types.OptionalNone
			}
			return types.NoSuchKeyErr(id, index)
		}
		if optSel {
			return types.OptionalOf(v)
		}
		return v
	case types.String:
		idx, ok := normalizeListIndex(index)
		if !ok {
			return types.NewErrKind(id, types.InvalidArgument, "invalid string index: %s", index.String())
		}
		r, inRange := o.RuneAt(idx)
		if !inRange {
			if optSel {
				return types.OptionalNone
			}
			return types.NewErrKind(id, types.InvalidArgument, "index %d out of range [0, %d)", idx, o.Len())
		}
		if optSel {
			return types.OptionalOf(r)
		}
		return r
	case types.Bytes:
		idx, ok := normalizeListIndex(index)
		if !ok {
			return types.NewErrKind(id, types.InvalidArgument, "invalid bytes index: %s", index.String())
		}
		b, inRange := o.ByteAt(idx)
		if !inRange {
			if optSel {
				return types.OptionalNone
			}
			return types.NewErrKind(id, types.InvalidArgument, "index %d out of range [0, %d)", idx, o.Len())
		}
		if optSel {
			return types.OptionalOf(b)
		}
		return b
	default:
		return types.NewErrKind(id, types.TypeMismatch, "type '%s' does not support indexing", types.TypeOf(obj).TypeName())
	}
}

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
	"fmt"

	"github.com/waveform-dev/celcore/common/types"
)

// Interpretable is a planned node in the executable tree: it knows the expression id it was
// planned from and evaluates to a Value against an Activation. Every Interpretable is immutable
// once constructed; planning never mutates a node after it is returned.
type Interpretable interface {
	// ID returns the source expression id this node was planned from.
	ID() int64

	// Eval evaluates the node against act, returning a total Value (never panics, never returns
	// nil).
	Eval(act Activation) types.Value
}

// propagate returns v if it is Error or Unknown, else ok=false.
func propagate(v types.Value) (types.Value, bool) {
	if types.IsErrorOrUnknown(v) {
		return v, true
	}
	return nil, false
}

// evalConst is a literal value, identical on every evaluation.
type evalConst struct {
	id  int64
	val types.Value
}

// NewConst builds a constant node.
func NewConst(id int64, val types.Value) Interpretable { return &evalConst{id: id, val: val} }

func (n *evalConst) ID() int64                   { return n.id }
func (n *evalConst) Eval(Activation) types.Value { return n.val }

// Value returns the constant value, for optimizer passes that need to inspect it without a full
// Eval round-trip.
func (n *evalConst) Value() types.Value { return n.val }

// evalAttr resolves a compiled Attribute against the activation.
type evalAttr struct {
	id   int64
	attr Attribute
}

// NewAttr builds a node that resolves attr against the activation it is evaluated with.
func NewAttr(id int64, attr Attribute) Interpretable { return &evalAttr{id: id, attr: attr} }

func (n *evalAttr) ID() int64 { return n.id }

func (n *evalAttr) Eval(act Activation) types.Value { return n.attr.Resolve(act) }

// Attr returns the underlying Attribute, for callers (e.g. the planner's select-folding) that
// need to append further qualifiers before the node is considered final.
func (n *evalAttr) Attr() Attribute { return n.attr }

// evalNot implements the `!_` operator.
type evalNot struct {
	id      int64
	operand Interpretable
}

func NewNot(id int64, operand Interpretable) Interpretable {
	return &evalNot{id: id, operand: operand}
}

func (n *evalNot) ID() int64 { return n.id }

func (n *evalNot) Eval(act Activation) types.Value {
	v := n.operand.Eval(act)
	if r, absorbed := propagate(v); absorbed {
		return r
	}
	b, ok := v.(types.Bool)
	if !ok {
		return types.NewErrKind(n.id, types.TypeMismatch, "no such overload: !%s", types.TypeOf(v).TypeName())
	}
	return b.Negate()
}

// evalNeg implements unary `-_`.
type evalNeg struct {
	id      int64
	operand Interpretable
}

func NewNeg(id int64, operand Interpretable) Interpretable {
	return &evalNeg{id: id, operand: operand}
}

func (n *evalNeg) ID() int64 { return n.id }

func (n *evalNeg) Eval(act Activation) types.Value {
	v := n.operand.Eval(act)
	if r, absorbed := propagate(v); absorbed {
		return r
	}
	switch o := v.(type) {
	case types.Int:
		return o.Negate(n.id)
	case types.Double:
		return o.Negate()
	case types.Duration:
		return o.Negate(n.id)
	default:
		return types.NewErrKind(n.id, types.TypeMismatch, "no such overload: -%s", types.TypeOf(v).TypeName())
	}
}

// evalNotStrictlyFalse is the macro-expanded loop guard of all/exists: it treats Error and
// Unknown as "keep going" (true) rather than propagating them, so a single failing element does
// not suppress the comprehension's final result step.
type evalNotStrictlyFalse struct {
	id      int64
	operand Interpretable
}

func NewNotStrictlyFalse(id int64, operand Interpretable) Interpretable {
	return &evalNotStrictlyFalse{id: id, operand: operand}
}

func (n *evalNotStrictlyFalse) ID() int64 { return n.id }

func (n *evalNotStrictlyFalse) Eval(act Activation) types.Value {
	v := n.operand.Eval(act)
	if types.IsErrorOrUnknown(v) {
		return types.True
	}
	if b, ok := v.(types.Bool); ok && !bool(b) {
		return types.False
	}
	return types.True
}

// evalAnd implements CEL's commutative, three-valued `&&`.
type evalAnd struct {
	id       int64
	lhs, rhs Interpretable
}

func NewAnd(id int64, lhs, rhs Interpretable) Interpretable {
	return &evalAnd{id: id, lhs: lhs, rhs: rhs}
}

func (n *evalAnd) ID() int64 { return n.id }

func (n *evalAnd) Eval(act Activation) types.Value {
	l := n.lhs.Eval(act)
	if lb, ok := l.(types.Bool); ok && !bool(lb) {
		return types.False
	}
	r := n.rhs.Eval(act)
	if rb, ok := r.(types.Bool); ok && !bool(rb) {
		return types.False
	}
	if types.IsError(l) {
		return l
	}
	if types.IsError(r) {
		return r
	}
	if merged, ok := types.MergeUnknowns(l, r); ok {
		return merged
	}
	lb, lok := l.(types.Bool)
	rb, rok := r.(types.Bool)
	if lok && rok {
		return types.Bool(bool(lb) && bool(rb))
	}
	bad := l
	if lok {
		bad = r
	}
	return types.NewErrKind(n.id, types.TypeMismatch, "no such overload: %s && %s", types.TypeOf(l).TypeName(), types.TypeOf(bad).TypeName())
}

// evalOr implements CEL's commutative, three-valued `||`.
type evalOr struct {
	id       int64
	lhs, rhs Interpretable
}

func NewOr(id int64, lhs, rhs Interpretable) Interpretable {
	return &evalOr{id: id, lhs: lhs, rhs: rhs}
}

func (n *evalOr) ID() int64 { return n.id }

func (n *evalOr) Eval(act Activation) types.Value {
	l := n.lhs.Eval(act)
	if lb, ok := l.(types.Bool); ok && bool(lb) {
		return types.True
	}
	r := n.rhs.Eval(act)
	if rb, ok := r.(types.Bool); ok && bool(rb) {
		return types.True
	}
	if types.IsError(l) {
		return l
	}
	if types.IsError(r) {
		return r
	}
	if merged, ok := types.MergeUnknowns(l, r); ok {
		return merged
	}
	lb, lok := l.(types.Bool)
	rb, rok := r.(types.Bool)
	if lok && rok {
		return types.Bool(bool(lb) || bool(rb))
	}
	bad := l
	if lok {
		bad = r
	}
	return types.NewErrKind(n.id, types.TypeMismatch, "no such overload: %s || %s", types.TypeOf(l).TypeName(), types.TypeOf(bad).TypeName())
}

// evalConditional implements the `_?_:_` ternary with the three-valued rule for an Unknown
// condition: if both branches are Unknown, their merge is returned; otherwise the condition's
// own Unknown propagates unchanged.
type evalConditional struct {
	id                  int64
	cond, truthy, falsy Interpretable
}

func NewConditional(id int64, cond, truthy, falsy Interpretable) Interpretable {
	return &evalConditional{id: id, cond: cond, truthy: truthy, falsy: falsy}
}

func (n *evalConditional) ID() int64 { return n.id }

func (n *evalConditional) Eval(act Activation) types.Value {
	c := n.cond.Eval(act)
	if types.IsError(c) {
		return c
	}
	if types.IsUnknown(c) {
		t := n.truthy.Eval(act)
		f := n.falsy.Eval(act)
		if types.IsUnknown(t) && types.IsUnknown(f) {
			merged, _ := types.MergeUnknowns(t, f)
			return merged
		}
		return c
	}
	b, ok := c.(types.Bool)
	if !ok {
		return types.NewErrKind(n.id, types.TypeMismatch, "no such overload: bool ? : expected, got %s", types.TypeOf(c).TypeName())
	}
	if bool(b) {
		return n.truthy.Eval(act)
	}
	return n.falsy.Eval(act)
}

// evalBinary implements the relational, arithmetic, and `in` operators via their human-readable
// symbol (see common/operators for the mapping from internal function name).
type evalBinary struct {
	id       int64
	op       string
	lhs, rhs Interpretable
}

// NewBinary builds a binary operator node for op (one of "==", "!=", "<", "<=", ">", ">=", "+",
// "-", "*", "/", "%", "in").
func NewBinary(id int64, op string, lhs, rhs Interpretable) Interpretable {
	return &evalBinary{id: id, op: op, lhs: lhs, rhs: rhs}
}

func (n *evalBinary) ID() int64 { return n.id }

func (n *evalBinary) Eval(act Activation) types.Value {
	l := n.lhs.Eval(act)
	if r, absorbed := propagate(l); absorbed {
		return r
	}
	r := n.rhs.Eval(act)
	if rr, absorbed := propagate(r); absorbed {
		return rr
	}
	switch n.op {
	case "==":
		return l.Equal(r)
	case "!=":
		eq := l.Equal(r)
		if types.IsErrorOrUnknown(eq) {
			return eq
		}
		b, _ := eq.(types.Bool)
		return types.Bool(!bool(b))
	case "<", "<=", ">", ">=":
		return n.compare(l, r)
	case "in":
		return evalIn(n.id, l, r)
	case "+":
		return evalAdd(n.id, l, r)
	case "-":
		return evalSubtract(n.id, l, r)
	case "*":
		return evalMultiply(n.id, l, r)
	case "/":
		return evalDivide(n.id, l, r)
	case "%":
		return evalModulo(n.id, l, r)
	default:
		return types.NewErrKind(n.id, types.Generic, "unsupported operator: %s", n.op)
	}
}

type comparable interface {
	Compare(other types.Value) (int, bool)
}

func (n *evalBinary) compare(l, r types.Value) types.Value {
	cl, ok := l.(comparable)
	if !ok {
		return types.NewErrKind(n.id, types.TypeMismatch, "no such overload: %s %s %s", types.TypeOf(l).TypeName(), n.op, types.TypeOf(r).TypeName())
	}
	cmp, ok := cl.Compare(r)
	if !ok {
		return types.False
	}
	switch n.op {
	case "<":
		return types.Bool(cmp < 0)
	case "<=":
		return types.Bool(cmp <= 0)
	case ">":
		return types.Bool(cmp > 0)
	case ">=":
		return types.Bool(cmp >= 0)
	}
	return types.NewErrKind(n.id, types.Generic, "unsupported comparison: %s", n.op)
}

func evalIn(id int64, l, r types.Value) types.Value {
	switch o := r.(type) {
	case *types.List:
		return o.Contains(l)
	case *types.Map:
		if !types.IsHashable(l) {
			return types.False
		}
		_, found := o.Find(l)
		return types.Bool(found)
	default:
		return types.NewErrKind(id, types.TypeMismatch, "no such overload: %s in %s", types.TypeOf(l).TypeName(), types.TypeOf(r).TypeName())
	}
}

func evalAdd(id int64, l, r types.Value) types.Value {
	switch a := l.(type) {
	case types.Int:
		if b, ok := r.(types.Int); ok {
			return a.Add(id, b)
		}
	case types.Uint:
		if b, ok := r.(types.Uint); ok {
			return a.Add(id, b)
		}
	case types.Double:
		if b, ok := r.(types.Double); ok {
			return a.Add(b)
		}
	case types.String:
		if b, ok := r.(types.String); ok {
			return a.Concat(b)
		}
	case types.Bytes:
		if b, ok := r.(types.Bytes); ok {
			return append(append(types.Bytes{}, a...), b...)
		}
	case *types.List:
		if b, ok := r.(*types.List); ok {
			return types.NewList(append(append([]types.Value{}, a.Iterate()...), b.Iterate()...))
		}
	}
	return types.NewErrKind(id, types.TypeMismatch, "no such overload: %s + %s", types.TypeOf(l).TypeName(), types.TypeOf(r).TypeName())
}

func evalSubtract(id int64, l, r types.Value) types.Value {
	switch a := l.(type) {
	case types.Int:
		if b, ok := r.(types.Int); ok {
			return a.Subtract(id, b)
		}
	case types.Uint:
		if b, ok := r.(types.Uint); ok {
			return a.Subtract(id, b)
		}
	case types.Double:
		if b, ok := r.(types.Double); ok {
			return a.Subtract(b)
		}
	}
	return types.NewErrKind(id, types.TypeMismatch, "no such overload: %s - %s", types.TypeOf(l).TypeName(), types.TypeOf(r).TypeName())
}

func evalMultiply(id int64, l, r types.Value) types.Value {
	switch a := l.(type) {
	case types.Int:
		if b, ok := r.(types.Int); ok {
			return a.Multiply(id, b)
		}
	case types.Uint:
		if b, ok := r.(types.Uint); ok {
			return a.Multiply(id, b)
		}
	case types.Double:
		if b, ok := r.(types.Double); ok {
			return a.Multiply(b)
		}
	}
	return types.NewErrKind(id, types.TypeMismatch, "no such overload: %s * %s", types.TypeOf(l).TypeName(), types.TypeOf(r).TypeName())
}

func evalDivide(id int64, l, r types.Value) types.Value {
	switch a := l.(type) {
	case types.Int:
		if b, ok := r.(types.Int); ok {
			return a.Divide(id, b)
		}
	case types.Uint:
		if b, ok := r.(types.Uint); ok {
			return a.Divide(id, b)
		}
	case types.Double:
		if b, ok := r.(types.Double); ok {
			return a.Divide(b)
		}
	}
	return types.NewErrKind(id, types.TypeMismatch, "no such overload: %s / %s", types.TypeOf(l).TypeName(), types.TypeOf(r).TypeName())
}

func evalModulo(id int64, l, r types.Value) types.Value {
	switch a := l.(type) {
	case types.Int:
		if b, ok := r.(types.Int); ok {
			return a.Modulo(id, b)
		}
	case types.Uint:
		if b, ok := r.(types.Uint); ok {
			return a.Modulo(id, b)
		}
	}
	return types.NewErrKind(id, types.TypeMismatch, "no such overload: %s %% %s", types.TypeOf(l).TypeName(), types.TypeOf(r).TypeName())
}

// evalCall invokes a registered overload via the Dispatcher. Arguments are evaluated
// left-to-right and short-circuit on the first Error/Unknown.
type evalCall struct {
	id         int64
	function   string
	overloadID string
	args       []Interpretable
	dispatcher Dispatcher
}

// NewCall builds a function-call node dispatching through d.
func NewCall(id int64, function, overloadID string, args []Interpretable, d Dispatcher) Interpretable {
	return &evalCall{id: id, function: function, overloadID: overloadID, args: args, dispatcher: d}
}

func (n *evalCall) ID() int64              { return n.id }
func (n *evalCall) Function() string       { return n.function }
func (n *evalCall) OverloadID() string     { return n.overloadID }
func (n *evalCall) Args() []Interpretable  { return n.args }

func (n *evalCall) Eval(act Activation) types.Value {
	argv := make([]types.Value, len(n.args))
	for i, a := range n.args {
		v := a.Eval(act)
		if r, absorbed := propagate(v); absorbed {
			return r
		}
		argv[i] = v
	}
	return n.dispatcher.Dispatch(n.id, n.function, n.overloadID, argv)
}

// evalBlock binds a sequence of slot expressions, each visible to later slots and to result
// under the synthetic name `@index<i>`, then evaluates result. Used for cel.@block's
// common-subexpression-elimination form.
type evalBlock struct {
	id     int64
	slots  []Interpretable
	result Interpretable
}

// NewBlock builds a block node. If slots is empty, callers should plan just result directly; this
// constructor still handles the empty case correctly.
func NewBlock(id int64, slots []Interpretable, result Interpretable) Interpretable {
	return &evalBlock{id: id, slots: slots, result: result}
}

func (n *evalBlock) ID() int64 { return n.id }

func (n *evalBlock) Eval(act Activation) types.Value {
	overlay := newBlockActivation(act)
	for i, slot := range n.slots {
		v := slot.Eval(overlay)
		overlay.set(i, v)
		if r, absorbed := propagate(v); absorbed {
			return r
		}
	}
	return n.result.Eval(overlay)
}

// blockActivation overlays `@index<i>` bindings onto a parent activation for evalBlock.
type blockActivation struct {
	parent Activation
	slots  map[string]types.Value
}

func newBlockActivation(parent Activation) *blockActivation {
	return &blockActivation{parent: parent, slots: map[string]types.Value{}}
}

func (b *blockActivation) set(i int, v types.Value) { b.slots[blockSlotName(i)] = v }

func blockSlotName(i int) string { return fmt.Sprintf("@index%d", i) }

func (b *blockActivation) Parent() Activation { return b.parent }

func (b *blockActivation) ResolveReference(exprID int64) (types.Value, bool) {
	return b.parent.ResolveReference(exprID)
}

func (b *blockActivation) ResolveName(name string) (types.Value, bool) {
	if v, found := b.slots[name]; found {
		return v, true
	}
	return b.parent.ResolveName(name)
}

// evalCreateList builds a List, honoring optional-typed element positions: an Optional element
// is unwrapped (and the index omitted entirely if it was none).
type evalCreateList struct {
	id         int64
	elems      []Interpretable
	optIndices map[int]bool
}

func NewCreateList(id int64, elems []Interpretable, optIndices map[int]bool) Interpretable {
	return &evalCreateList{id: id, elems: elems, optIndices: optIndices}
}

func (n *evalCreateList) ID() int64                 { return n.id }
func (n *evalCreateList) InitVals() []Interpretable { return n.elems }

func (n *evalCreateList) Eval(act Activation) types.Value {
	out := make([]types.Value, 0, len(n.elems))
	for i, elem := range n.elems {
		v := elem.Eval(act)
		if r, absorbed := propagate(v); absorbed {
			return r
		}
		if n.optIndices[i] {
			opt, ok := v.(*types.Optional)
			if !ok {
				return types.NewErrKind(n.id, types.TypeMismatch, "optional list element must be an optional value")
			}
			if !opt.HasValue() {
				continue
			}
			v = opt.GetValue()
		}
		out = append(out, v)
	}
	return types.NewList(out)
}

// evalCreateMap builds a Map, honoring optional-typed entries the same way evalCreateList does
// for elements; duplicate or unhashable keys yield Error per types.NewMap.
type evalCreateMap struct {
	id         int64
	keys       []Interpretable
	vals       []Interpretable
	optIndices map[int]bool
}

func NewCreateMap(id int64, keys, vals []Interpretable, optIndices map[int]bool) Interpretable {
	return &evalCreateMap{id: id, keys: keys, vals: vals, optIndices: optIndices}
}

func (n *evalCreateMap) ID() int64 { return n.id }

func (n *evalCreateMap) Eval(act Activation) types.Value {
	entries := make([]types.MapEntry, 0, len(n.keys))
	for i := range n.keys {
		k := n.keys[i].Eval(act)
		if r, absorbed := propagate(k); absorbed {
			return r
		}
		v := n.vals[i].Eval(act)
		if r, absorbed := propagate(v); absorbed {
			return r
		}
		if n.optIndices[i] {
			opt, ok := v.(*types.Optional)
			if !ok {
				return types.NewErrKind(n.id, types.TypeMismatch, "optional map entry must be an optional value")
			}
			if !opt.HasValue() {
				continue
			}
			v = opt.GetValue()
		}
		entries = append(entries, types.MapEntry{Key: k, Val: v})
	}
	return types.NewMap(n.id, entries)
}

// evalCreateStruct builds a Struct via the TypeProvider, honoring optional-typed fields.
type evalCreateStruct struct {
	id         int64
	typeName   string
	fieldNames []string
	fieldVals  []Interpretable
	optIndices map[int]bool
	provider   TypeProvider
}

func NewCreateStruct(id int64, typeName string, fieldNames []string, fieldVals []Interpretable, optIndices map[int]bool, provider TypeProvider) Interpretable {
	return &evalCreateStruct{id: id, typeName: typeName, fieldNames: fieldNames, fieldVals: fieldVals, optIndices: optIndices, provider: provider}
}

func (n *evalCreateStruct) ID() int64 { return n.id }

func (n *evalCreateStruct) Eval(act Activation) types.Value {
	if _, found := n.provider.FindStructType(n.typeName); !found {
		return types.NewErrKind(n.id, types.Generic, "unknown type: %s", n.typeName)
	}
	fields := make(map[string]types.Value, len(n.fieldNames))
	for i, name := range n.fieldNames {
		v := n.fieldVals[i].Eval(act)
		if r, absorbed := propagate(v); absorbed {
			return r
		}
		if n.optIndices[i] {
			opt, ok := v.(*types.Optional)
			if !ok {
				return types.NewErrKind(n.id, types.TypeMismatch, "optional field initializer must be an optional value")
			}
			if !opt.HasValue() {
				continue
			}
			v = opt.GetValue()
		}
		fields[name] = v
	}
	return n.provider.NewStruct(n.typeName, fields)
}

// evalHasField implements the `has()` macro's presence test.
type evalHasField struct {
	id      int64
	operand Interpretable
	field   string
}

func NewHasField(id int64, operand Interpretable, field string) Interpretable {
	return &evalHasField{id: id, operand: operand, field: field}
}

func (n *evalHasField) ID() int64 { return n.id }

func (n *evalHasField) Eval(act Activation) types.Value {
	v := n.operand.Eval(act)
	if r, absorbed := propagate(v); absorbed {
		return r
	}
	switch o := v.(type) {
	case *types.Struct:
		return types.Bool(o.HasField(n.field))
	case *types.Map:
		_, found := o.Find(types.String(n.field))
		return types.Bool(found)
	case *types.Optional:
		return types.Bool(o.HasValue())
	case types.Null:
		return types.False
	default:
		return types.NewErrKind(n.id, types.TypeMismatch, "has() does not support type '%s'", types.TypeOf(v).TypeName())
	}
}

// evalComprehension implements the macro-expanded form common to all/exists/exists_one/map/
// filter, per the fold algorithm in spec §4.3.
type evalComprehension struct {
	id        int64
	iterVar   string
	iterVar2  string
	accuVar   string
	iterRange Interpretable
	accuInit  Interpretable
	loopCond  Interpretable
	loopStep  Interpretable
	result    Interpretable
}

func NewComprehension(id int64, iterVar, iterVar2, accuVar string, iterRange, accuInit, loopCond, loopStep, result Interpretable) Interpretable {
	return &evalComprehension{
		id: id, iterVar: iterVar, iterVar2: iterVar2, accuVar: accuVar,
		iterRange: iterRange, accuInit: accuInit, loopCond: loopCond, loopStep: loopStep, result: result,
	}
}

func (n *evalComprehension) ID() int64 { return n.id }

func (n *evalComprehension) Eval(act Activation) types.Value {
	rangeVal := n.iterRange.Eval(act)
	if r, absorbed := propagate(rangeVal); absorbed {
		return r
	}
	accu := n.accuInit.Eval(act)
	if r, absorbed := propagate(accu); absorbed {
		return r
	}

	// step returns (errVal, haltWithError, breakLoop). breakLoop is set both when the loop
	// condition turns false (normal short-circuit) and when haltWithError is set (errVal then
	// carries the Error/Unknown to return from Eval).
	step := func(iterVal, iterVal2 types.Value, haveIterVal2 bool) (types.Value, bool, bool) {
		bindings := map[string]any{n.iterVar: iterVal, n.accuVar: accu}
		if haveIterVal2 {
			bindings[n.iterVar2] = iterVal2
		}
		overlay := ExtendActivation(act, NewActivation(bindings))
		cond := n.loopCond.Eval(overlay)
		if b, ok := cond.(types.Bool); ok && !bool(b) {
			return nil, false, true
		}
		next := n.loopStep.Eval(overlay)
		accu = next
		if r, absorbed := propagate(next); absorbed {
			return r, true, true
		}
		return nil, false, false
	}

	switch rv := rangeVal.(type) {
	case *types.List:
		for _, e := range rv.Iterate() {
			errVal, haltWithError, brk := step(e, nil, false)
			if haltWithError {
				return errVal
			}
			if brk {
				break
			}
		}
	case *types.Map:
		if n.iterVar2 != "" {
			for _, e := range rv.Entries() {
				errVal, haltWithError, brk := step(e.Key, e.Val, true)
				if haltWithError {
					return errVal
				}
				if brk {
					break
				}
			}
		} else {
			for _, k := range rv.Iterate() {
				errVal, haltWithError, brk := step(k, nil, false)
				if haltWithError {
					return errVal
				}
				if brk {
					break
				}
			}
		}
	default:
		return types.NewErrKind(n.id, types.TypeMismatch, "comprehension range must be a list or map, got %s", types.TypeOf(rangeVal).TypeName())
	}

	final := ExtendActivation(act, NewActivation(map[string]any{n.accuVar: accu}))
	return n.result.Eval(final)
}

// legacyEnumCoerce narrows an Enum value produced by operand to its underlying Int, for struct
// fields planned under the legacy-enum compatibility flag. Non-Enum values pass through
// unchanged, since the field's runtime value may already have been defaulted or is otherwise not
// actually enum-typed.
type legacyEnumCoerce struct {
	id      int64
	operand Interpretable
}

func (n *legacyEnumCoerce) ID() int64 { return n.id }

func (n *legacyEnumCoerce) Eval(act Activation) types.Value {
	v := n.operand.Eval(act)
	if r, absorbed := propagate(v); absorbed {
		return r
	}
	if e, ok := v.(types.Enum); ok {
		return types.Int(e.Value())
	}
	return v
}

// evalTypeConversion implements the six primitive conversions, `type(x)`, and `dyn(x)`.
type evalTypeConversion struct {
	id       int64
	operand  Interpretable
	target   string
	provider TypeProvider
}

func NewTypeConversion(id int64, operand Interpretable, target string, provider TypeProvider) Interpretable {
	return &evalTypeConversion{id: id, operand: operand, target: target, provider: provider}
}

func (n *evalTypeConversion) ID() int64 { return n.id }

// Target exposes the conversion's target type name, used by the no-op conversion elimination
// pass to decide whether a Const operand already matches.
func (n *evalTypeConversion) Target() string { return n.target }

// Operand exposes the wrapped node, used by the same pass.
func (n *evalTypeConversion) Operand() Interpretable { return n.operand }

func (n *evalTypeConversion) Eval(act Activation) types.Value {
	v := n.operand.Eval(act)
	if r, absorbed := propagate(v); absorbed {
		return r
	}
	return convert(n.id, v, n.target)
}

func convert(id int64, v types.Value, target string) types.Value {
	switch target {
	case "dyn":
		return v
	case "type":
		return types.TypeOf(v)
	case "int":
		return convertToInt(id, v)
	case "uint":
		return convertToUint(id, v)
	case "double":
		return convertToDouble(id, v)
	case "string":
		return convertToString(id, v)
	case "bytes":
		return convertToBytes(id, v)
	case "bool":
		return convertToBool(id, v)
	default:
		return types.NewErrKind(id, types.Generic, "unsupported conversion target: %s", target)
	}
}

func convertToInt(id int64, v types.Value) types.Value {
	switch o := v.(type) {
	case types.Int:
		return o
	case types.Uint:
		if uint64(o) > 1<<63-1 {
			return types.NewErrKind(id, types.Overflow, "uint to int overflow")
		}
		return types.Int(o)
	case types.Double:
		return doubleToInt(id, o)
	case types.Enum:
		return types.Int(o.Value())
	default:
		return types.NewErrKind(id, types.TypeMismatch, "type conversion error from '%s' to int", types.TypeOf(v).TypeName())
	}
}

func doubleToInt(id int64, d types.Double) types.Value {
	f := float64(d)
	if f != f || f < -9223372036854775808.0 || f >= 9223372036854775808.0 {
		return types.NewErrKind(id, types.Overflow, "double to int overflow")
	}
	return types.Int(int64(f))
}

func convertToUint(id int64, v types.Value) types.Value {
	switch o := v.(type) {
	case types.Uint:
		return o
	case types.Int:
		if o < 0 {
			return types.NewErrKind(id, types.Overflow, "int to uint overflow")
		}
		return types.Uint(o)
	case types.Double:
		f := float64(o)
		if f != f || f < 0 || f >= 18446744073709551615.0 {
			return types.NewErrKind(id, types.Overflow, "double to uint overflow")
		}
		return types.Uint(uint64(f))
	default:
		return types.NewErrKind(id, types.TypeMismatch, "type conversion error from '%s' to uint", types.TypeOf(v).TypeName())
	}
}

func convertToDouble(id int64, v types.Value) types.Value {
	switch o := v.(type) {
	case types.Double:
		return o
	case types.Int:
		return types.Double(o)
	case types.Uint:
		return types.Double(o)
	default:
		return types.NewErrKind(id, types.TypeMismatch, "type conversion error from '%s' to double", types.TypeOf(v).TypeName())
	}
}

func convertToString(id int64, v types.Value) types.Value {
	switch o := v.(type) {
	case types.String:
		return o
	case types.Bytes:
		return types.String(string(o))
	case types.Int, types.Uint, types.Double, types.Bool, types.Null, types.Enum:
		return types.String(o.String())
	default:
		return types.NewErrKind(id, types.TypeMismatch, "type conversion error from '%s' to string", types.TypeOf(v).TypeName())
	}
}

func convertToBytes(id int64, v types.Value) types.Value {
	switch o := v.(type) {
	case types.Bytes:
		return o
	case types.String:
		return types.Bytes(string(o))
	default:
		return types.NewErrKind(id, types.TypeMismatch, "type conversion error from '%s' to bytes", types.TypeOf(v).TypeName())
	}
}

func convertToBool(id int64, v types.Value) types.Value {
	switch o := v.(type) {
	case types.Bool:
		return o
	case types.String:
		switch o {
		case "true", "True", "TRUE", "t", "1":
			return types.True
		case "false", "False", "FALSE", "f", "0":
			return types.False
		}
		return types.NewErrKind(id, types.InvalidArgument, "invalid bool string: %s", o)
	default:
		return types.NewErrKind(id, types.TypeMismatch, "type conversion error from '%s' to bool", types.TypeOf(v).TypeName())
	}
}

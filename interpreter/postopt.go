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

import "github.com/waveform-dev/celcore/common/types"

// PostOptimizer walks a planned Interpretable tree eliminating no-op TypeConversion nodes: a
// conversion whose operand is already a Const of the target's own kind does nothing at evaluation
// time beyond what evaluating the Const would already do. `dyn(x)` is always a no-op, regardless
// of x's kind, since it is a purely static annotation; `type(x)` is never eliminated, since it
// always has an evaluation-time effect (producing the type of whatever x evaluates to).
type PostOptimizer struct{}

// NewPostOptimizer returns a PostOptimizer.
func NewPostOptimizer() *PostOptimizer { return &PostOptimizer{} }

// Optimize returns a tree equivalent to node with no-op conversions removed. Unchanged subtrees
// are returned as the same node (structural sharing), not copied.
func (o *PostOptimizer) Optimize(node Interpretable) Interpretable {
	switch n := node.(type) {
	case *evalTypeConversion:
		operand := o.Optimize(n.Operand())
		if n.Target() == "dyn" {
			return operand
		}
		if c, ok := operand.(*evalConst); ok && noopConversion(n.Target(), c.Value()) {
			return operand
		}
		if operand == n.Operand() {
			return n
		}
		return NewTypeConversion(n.ID(), operand, n.Target(), n.provider)

	case *evalNot:
		operand := o.Optimize(n.operand)
		if operand == n.operand {
			return n
		}
		return NewNot(n.id, operand)

	case *evalNeg:
		operand := o.Optimize(n.operand)
		if operand == n.operand {
			return n
		}
		return NewNeg(n.id, operand)

	case *evalNotStrictlyFalse:
		operand := o.Optimize(n.operand)
		if operand == n.operand {
			return n
		}
		return NewNotStrictlyFalse(n.id, operand)

	case *evalAnd:
		l, r := o.Optimize(n.lhs), o.Optimize(n.rhs)
		if l == n.lhs && r == n.rhs {
			return n
		}
		return NewAnd(n.id, l, r)

	case *evalOr:
		l, r := o.Optimize(n.lhs), o.Optimize(n.rhs)
		if l == n.lhs && r == n.rhs {
			return n
		}
		return NewOr(n.id, l, r)

	case *evalConditional:
		c, t, f := o.Optimize(n.cond), o.Optimize(n.truthy), o.Optimize(n.falsy)
		if c == n.cond && t == n.truthy && f == n.falsy {
			return n
		}
		return NewConditional(n.id, c, t, f)

	case *evalBinary:
		l, r := o.Optimize(n.lhs), o.Optimize(n.rhs)
		if l == n.lhs && r == n.rhs {
			return n
		}
		return NewBinary(n.id, n.op, l, r)

	case *evalCall:
		changed := false
		args := make([]Interpretable, len(n.args))
		for i, a := range n.args {
			args[i] = o.Optimize(a)
			if args[i] != a {
				changed = true
			}
		}
		if !changed {
			return n
		}
		return NewCall(n.id, n.function, n.overloadID, args, n.dispatcher)

	case *evalBlock:
		changed := false
		slots := make([]Interpretable, len(n.slots))
		for i, s := range n.slots {
			slots[i] = o.Optimize(s)
			if slots[i] != s {
				changed = true
			}
		}
		result := o.Optimize(n.result)
		if !changed && result == n.result {
			return n
		}
		return NewBlock(n.id, slots, result)

	case *evalCreateList:
		changed := false
		elems := make([]Interpretable, len(n.elems))
		for i, e := range n.elems {
			elems[i] = o.Optimize(e)
			if elems[i] != e {
				changed = true
			}
		}
		if !changed {
			return n
		}
		return NewCreateList(n.id, elems, n.optIndices)

	case *evalCreateMap:
		changed := false
		keys := make([]Interpretable, len(n.keys))
		vals := make([]Interpretable, len(n.vals))
		for i := range n.keys {
			keys[i] = o.Optimize(n.keys[i])
			vals[i] = o.Optimize(n.vals[i])
			if keys[i] != n.keys[i] || vals[i] != n.vals[i] {
				changed = true
			}
		}
		if !changed {
			return n
		}
		return NewCreateMap(n.id, keys, vals, n.optIndices)

	case *evalCreateStruct:
		changed := false
		vals := make([]Interpretable, len(n.fieldVals))
		for i, v := range n.fieldVals {
			vals[i] = o.Optimize(v)
			if vals[i] != v {
				changed = true
			}
		}
		if !changed {
			return n
		}
		return NewCreateStruct(n.id, n.typeName, n.fieldNames, vals, n.optIndices, n.provider)

	case *evalHasField:
		operand := o.Optimize(n.operand)
		if operand == n.operand {
			return n
		}
		return NewHasField(n.id, operand, n.field)

	case *evalComprehension:
		iterRange := o.Optimize(n.iterRange)
		accuInit := o.Optimize(n.accuInit)
		loopCond := o.Optimize(n.loopCond)
		loopStep := o.Optimize(n.loopStep)
		result := o.Optimize(n.result)
		if iterRange == n.iterRange && accuInit == n.accuInit && loopCond == n.loopCond &&
			loopStep == n.loopStep && result == n.result {
			return n
		}
		return NewComprehension(n.id, n.iterVar, n.iterVar2, n.accuVar, iterRange, accuInit, loopCond, loopStep, result)

	case *legacyEnumCoerce:
		operand := o.Optimize(n.operand)
		if operand == n.operand {
			return n
		}
		return &legacyEnumCoerce{id: n.id, operand: operand}

	default:
		return n
	}
}

// noopConversion reports whether converting v to target produces exactly v back, so the
// conversion node can be dropped in favor of its operand.
func noopConversion(target string, v types.Value) bool {
	switch target {
	case "int":
		_, ok := v.(types.Int)
		return ok
	case "uint":
		_, ok := v.(types.Uint)
		return ok
	case "double":
		_, ok := v.(types.Double)
		return ok
	case "string":
		_, ok := v.(types.String)
		return ok
	case "bytes":
		_, ok := v.(types.Bytes)
		return ok
	case "bool":
		_, ok := v.(types.Bool)
		return ok
	}
	return false
}

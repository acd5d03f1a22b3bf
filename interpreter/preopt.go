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
	"github.com/waveform-dev/celcore/common/ast"
	"github.com/waveform-dev/celcore/common/operators"
	"github.com/waveform-dev/celcore/common/types"
)

// PreOptimizer performs constant folding over a parsed or checked AST, before planning. It only
// ever replaces a node with a strictly cheaper equivalent: a literal in place of a call whose
// folded meaning is statically known. It never changes an AST's observable evaluation result,
// including its error behavior, which is why it folds Double arithmetic (exact per the IEEE 754
// semantics types.Double already implements) but leaves Int/Uint arithmetic alone, since folding
// those would need to replicate the overflow-checking error behavior of evalAdd and friends
// rather than just reuse it.
type PreOptimizer struct {
	fac ast.ExprFactory
}

// NewPreOptimizer returns a PreOptimizer using the default expression factory.
func NewPreOptimizer() *PreOptimizer {
	return &PreOptimizer{fac: ast.NewExprFactory()}
}

// Optimize returns an AST equivalent to a with constant subexpressions folded. The reference and
// type maps are carried over unchanged; folded nodes reuse their original expression ids so any
// existing map entries still apply.
func (o *PreOptimizer) Optimize(a *ast.AST) *ast.AST {
	folded := o.fold(a.Expr())
	return ast.NewCheckedAST(folded, a.SourceID(), a.ReferenceMap(), a.TypeMap())
}

func (o *PreOptimizer) fold(e ast.Expr) ast.Expr {
	switch e.Kind() {
	case ast.CallKind:
		return o.foldCall(e)
	case ast.SelectKind:
		sel := e.AsSelect()
		operand := o.fold(sel.Operand())
		if sel.IsTestOnly() {
			return o.fac.NewPresenceTest(e.ID(), operand, sel.FieldName())
		}
		return o.fac.NewSelect(e.ID(), operand, sel.FieldName(), sel.IsOptional())
	case ast.ListKind:
		l := e.AsList()
		elems := make([]ast.Expr, len(l.Elements()))
		for i, el := range l.Elements() {
			elems[i] = o.fold(el)
		}
		return o.fac.NewList(e.ID(), elems, l.OptionalIndices())
	case ast.MapKind:
		entries := e.AsMap().Entries()
		out := make([]ast.EntryExpr, len(entries))
		for i, entry := range entries {
			me := entry.AsMapEntry()
			out[i] = o.fac.NewMapEntry(entry.ID(), o.fold(me.Key()), o.fold(me.Value()), me.IsOptional())
		}
		return o.fac.NewMap(e.ID(), out)
	case ast.StructKind:
		s := e.AsStruct()
		fields := s.Fields()
		out := make([]ast.EntryExpr, len(fields))
		for i, f := range fields {
			sf := f.AsStructField()
			out[i] = o.fac.NewStructField(f.ID(), sf.Name(), o.fold(sf.Value()), sf.IsOptional())
		}
		return o.fac.NewStruct(e.ID(), s.TypeName(), out)
	case ast.ComprehensionKind:
		c := e.AsComprehension()
		return o.fac.NewComprehension(
			e.ID(), o.fold(c.IterRange()), c.IterVar(), c.IterVar2(), c.AccuVar(),
			o.fold(c.AccuInit()), o.fold(c.LoopCondition()), o.fold(c.LoopStep()), o.fold(c.Result()),
		)
	default:
		return e
	}
}

func (o *PreOptimizer) foldCall(e ast.Expr) ast.Expr {
	call := e.AsCall()
	fnName := call.FunctionName()

	var target ast.Expr
	if call.IsMemberFunction() {
		target = o.fold(call.Target())
	}
	args := make([]ast.Expr, len(call.Args()))
	for i, a := range call.Args() {
		args[i] = o.fold(a)
	}

	rebuild := func() ast.Expr {
		if target != nil {
			return o.fac.NewMemberCall(e.ID(), fnName, target, args...)
		}
		return o.fac.NewCall(e.ID(), fnName, args...)
	}

	if call.IsMemberFunction() {
		return rebuild()
	}

	switch fnName {
	case operators.LogicalNot:
		if b, ok := literalBool(args[0]); ok {
			return o.fac.NewLiteral(e.ID(), types.Bool(!b))
		}
	case operators.Equals:
		if l, ok := asLiteral(args[0]); ok {
			if r, ok := asLiteral(args[1]); ok {
				return o.fac.NewLiteral(e.ID(), types.Bool(types.ValuesEqual(l, r)))
			}
		}
	case operators.NotEquals:
		if l, ok := asLiteral(args[0]); ok {
			if r, ok := asLiteral(args[1]); ok {
				return o.fac.NewLiteral(e.ID(), types.Bool(!types.ValuesEqual(l, r)))
			}
		}
	case operators.Add, operators.Subtract, operators.Multiply, operators.Divide:
		if l, ok := literalDouble(args[0]); ok {
			if r, ok := literalDouble(args[1]); ok {
				if v, ok := foldDouble(fnName, l, r); ok {
					return o.fac.NewLiteral(e.ID(), v)
				}
			}
		}
	case operators.Conditional:
		if b, ok := literalBool(args[0]); ok {
			branch := args[1]
			if !b {
				branch = args[2]
			}
			if _, ok := asLiteral(branch); ok {
				return branch
			}
		}
	}
	return rebuild()
}

func asLiteral(e ast.Expr) (types.Value, bool) {
	if e.Kind() != ast.LiteralKind {
		return nil, false
	}
	return e.AsLiteral(), true
}

func literalBool(e ast.Expr) (bool, bool) {
	v, ok := asLiteral(e)
	if !ok {
		return false, false
	}
	b, ok := v.(types.Bool)
	return bool(b), ok
}

func literalDouble(e ast.Expr) (types.Double, bool) {
	v, ok := asLiteral(e)
	if !ok {
		return 0, false
	}
	d, ok := v.(types.Double)
	return d, ok
}

func foldDouble(fnName string, l, r types.Double) (types.Value, bool) {
	switch fnName {
	case operators.Add:
		return l.Add(r), true
	case operators.Subtract:
		return l.Subtract(r), true
	case operators.Multiply:
		return l.Multiply(r), true
	case operators.Divide:
		return l.Divide(r), true
	}
	return nil, false
}

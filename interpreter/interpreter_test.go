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
	"testing"

	"github.com/waveform-dev/celcore/common/ast"
	"github.com/waveform-dev/celcore/common/operators"
	"github.com/waveform-dev/celcore/common/types"
)

func newTestInterpreter() Interpreter {
	return NewInterpreter(NewStandardDispatcher(), NewReflectProvider(), nil)
}

func evalExpr(t *testing.T, in Interpreter, e ast.Expr, vars map[string]any) types.Value {
	t.Helper()
	prog, err := in.NewProgram(ast.NewAST(e, "test"))
	if err != nil {
		t.Fatalf("NewProgram() failed: %v", err)
	}
	return prog.Eval(vars)
}

// 1 + 2 == 3
func TestEndToEnd_ArithmeticComparison(t *testing.T) {
	fac := ast.NewExprFactory()
	e := fac.NewCall(1, operators.Equals,
		fac.NewCall(2, operators.Add, fac.NewLiteral(3, types.Int(1)), fac.NewLiteral(4, types.Int(2))),
		fac.NewLiteral(5, types.Int(3)),
	)
	got := evalExpr(t, newTestInterpreter(), e, nil)
	if got != types.True {
		t.Errorf("got %v, wanted true", got)
	}
}

// x.a.b with activation {x: {a: {b: 7}}}
func TestEndToEnd_AttributeFusion(t *testing.T) {
	fac := ast.NewExprFactory()
	e := fac.NewSelect(1, fac.NewSelect(2, fac.NewIdent(3, "x"), "a", false), "b", false)
	vars := map[string]any{
		"x": types.NewStruct("my.X", map[string]types.Value{
			"a": types.NewStruct("my.A", map[string]types.Value{
				"b": types.Int(7),
			}),
		}),
	}
	got := evalExpr(t, newTestInterpreter(), e, vars)
	if got != types.Int(7) {
		t.Errorf("got %v, wanted 7", got)
	}

	// verify the planner actually fused the chain into one Attr node, not nested Attr/Relative.
	in := newTestInterpreter().(*exprInterpreter)
	plan, err := in.NewInterpretable(ast.NewAST(e, "test"))
	if err != nil {
		t.Fatalf("NewInterpretable() failed: %v", err)
	}
	attr, ok := plan.(*evalAttr)
	if !ok {
		t.Fatalf("plan is %T, wanted *evalAttr", plan)
	}
	if len(attr.Attr().Qualifiers()) != 2 {
		t.Errorf("got %d qualifiers, wanted 2 (fused chain)", len(attr.Attr().Qualifiers()))
	}
}

// [1,2,3][1] -> 2; [1,2,3][10] -> Error; [1,2,3][?10] -> Optional.none()
func TestEndToEnd_ListIndexing(t *testing.T) {
	fac := ast.NewExprFactory()
	list := func() ast.Expr {
		return fac.NewList(1, []ast.Expr{
			fac.NewLiteral(2, types.Int(1)),
			fac.NewLiteral(3, types.Int(2)),
			fac.NewLiteral(4, types.Int(3)),
		}, nil)
	}

	in := newTestInterpreter()

	got := evalExpr(t, in, fac.NewCall(5, operators.Index, list(), fac.NewLiteral(6, types.Int(1))), nil)
	if got != types.Int(2) {
		t.Errorf("[1,2,3][1]: got %v, wanted 2", got)
	}

	got = evalExpr(t, in, fac.NewCall(7, operators.Index, list(), fac.NewLiteral(8, types.Int(10))), nil)
	if _, ok := got.(*types.Error); !ok {
		t.Errorf("[1,2,3][10]: got %v, wanted Error", got)
	}

	got = evalExpr(t, in, fac.NewCall(9, operators.OptIndex, list(), fac.NewLiteral(10, types.Int(10))), nil)
	opt, ok := got.(*types.Optional)
	if !ok || opt.HasValue() {
		t.Errorf("[1,2,3][?10]: got %v, wanted Optional.none()", got)
	}
}

// {"k":1}.k -> 1; {"k":1}.missing -> Error(NoSuchKey); {"k":1}[?"missing"] -> Optional.none()
func TestEndToEnd_MapAccess(t *testing.T) {
	fac := ast.NewExprFactory()
	m := func() ast.Expr {
		return fac.NewMap(1, []ast.EntryExpr{
			fac.NewMapEntry(2, fac.NewLiteral(3, types.String("k")), fac.NewLiteral(4, types.Int(1)), false),
		})
	}
	in := newTestInterpreter()

	got := evalExpr(t, in, fac.NewSelect(5, m(), "k", false), nil)
	if got != types.Int(1) {
		t.Errorf(`{"k":1}.k: got %v, wanted 1`, got)
	}

	got = evalExpr(t, in, fac.NewSelect(6, m(), "missing", false), nil)
	e, ok := got.(*types.Error)
	if !ok || e.ErrKind != types.NoSuchKey {
		t.Errorf(`{"k":1}.missing: got %v, wanted Error(NoSuchKey)`, got)
	}

	got = evalExpr(t, in, fac.NewCall(7, operators.OptIndex, m(), fac.NewLiteral(8, types.String("missing"))), nil)
	opt, ok := got.(*types.Optional)
	if !ok || opt.HasValue() {
		t.Errorf(`{"k":1}[?"missing"]: got %v, wanted Optional.none()`, got)
	}
}

// [1,2,3].all(x, x > 0) -> true; [1,-2,3].all(x, x > 0) -> false
func allComprehension(fac ast.ExprFactory, elems []ast.Expr) ast.Expr {
	accu := fac.NewAccuIdent(100)
	return fac.NewComprehension(1,
		fac.NewList(2, elems, nil),
		"x", "", "__result__",
		fac.NewLiteral(3, types.True),
		fac.NewCall(4, operators.NotStrictlyFalse, accu),
		fac.NewCall(5, operators.LogicalAnd, accu, fac.NewCall(6, operators.Greater, fac.NewIdent(7, "x"), fac.NewLiteral(8, types.Int(0)))),
		accu,
	)
}

func TestEndToEnd_Comprehension(t *testing.T) {
	fac := ast.NewExprFactory()
	in := newTestInterpreter()

	got := evalExpr(t, in, allComprehension(fac, []ast.Expr{
		fac.NewLiteral(10, types.Int(1)), fac.NewLiteral(11, types.Int(2)), fac.NewLiteral(12, types.Int(3)),
	}), nil)
	if got != types.True {
		t.Errorf("all(x, x>0) over [1,2,3]: got %v, wanted true", got)
	}

	got = evalExpr(t, in, allComprehension(fac, []ast.Expr{
		fac.NewLiteral(10, types.Int(1)), fac.NewLiteral(11, types.Int(-2)), fac.NewLiteral(12, types.Int(3)),
	}), nil)
	if got != types.False {
		t.Errorf("all(x, x>0) over [1,-2,3]: got %v, wanted false", got)
	}
}

// x ? 1 : 1 with x Unknown -> Unknown (single-branch-Unknown rule)
func TestEndToEnd_ConditionalUnknown(t *testing.T) {
	fac := ast.NewExprFactory()
	e := fac.NewCall(1, operators.Conditional, fac.NewIdent(2, "x"), fac.NewLiteral(3, types.Int(1)), fac.NewLiteral(4, types.Int(1)))
	u := types.NewUnknown(2)
	vars := map[string]any{"x": u}
	got := evalExpr(t, newTestInterpreter(), e, vars)
	uk, ok := got.(*types.Unknown)
	if !ok {
		t.Fatalf("got %v (%T), wanted Unknown", got, got)
	}
	if len(uk.IDs()) != 1 || uk.IDs()[0] != 2 {
		t.Errorf("got ids %v, wanted the original condition's Unknown (id 2) preserved", uk.IDs())
	}
}

// size("hello") via the reference Dispatcher's bundled standard library.
func TestEndToEnd_DispatchedCall(t *testing.T) {
	fac := ast.NewExprFactory()
	e := fac.NewCall(1, "size", fac.NewLiteral(2, types.String("hello")))
	got := evalExpr(t, newTestInterpreter(), e, nil)
	if got != types.Int(5) {
		t.Errorf(`size("hello"): got %v, wanted 5`, got)
	}
}

// x.contains(y) as a member call, dispatched through the same Dispatcher.
func TestEndToEnd_MemberDispatchedCall(t *testing.T) {
	fac := ast.NewExprFactory()
	e := fac.NewMemberCall(1, "contains", fac.NewIdent(2, "x"), fac.NewLiteral(3, types.String("ell")))
	vars := map[string]any{"x": types.String("hello")}
	got := evalExpr(t, newTestInterpreter(), e, vars)
	if got != types.True {
		t.Errorf(`"hello".contains("ell"): got %v, wanted true`, got)
	}
}

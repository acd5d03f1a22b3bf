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
	"testing"

	"github.com/waveform-dev/celcore/common/ast"
	"github.com/waveform-dev/celcore/common/operators"
	"github.com/waveform-dev/celcore/common/types"
)

func foldedLiteral(t *testing.T, e ast.Expr) types.Value {
	t.Helper()
	a := ast.NewAST(e, "test")
	out := NewPreOptimizer().Optimize(a)
	if out.Expr().Kind() != ast.LiteralKind {
		t.Fatalf("got kind %v, wanted a folded literal", out.Expr().Kind())
	}
	return out.Expr().AsLiteral()
}

func TestPreOptimizer_NegationFolds(t *testing.T) {
	fac := ast.NewExprFactory()
	got := foldedLiteral(t, fac.NewCall(1, operators.LogicalNot, fac.NewLiteral(2, types.True)))
	if got != types.False {
		t.Errorf("!true: got %v, wanted false", got)
	}
}

func TestPreOptimizer_EqualsFoldsLiterals(t *testing.T) {
	fac := ast.NewExprFactory()
	got := foldedLiteral(t, fac.NewCall(1, operators.Equals, fac.NewLiteral(2, types.Int(3)), fac.NewLiteral(3, types.Int(3))))
	if got != types.True {
		t.Errorf("3 == 3: got %v, wanted true", got)
	}
	got = foldedLiteral(t, fac.NewCall(1, operators.NotEquals, fac.NewLiteral(2, types.Int(3)), fac.NewLiteral(3, types.Int(4))))
	if got != types.True {
		t.Errorf("3 != 4: got %v, wanted true", got)
	}
}

func TestPreOptimizer_DoubleArithmeticFolds(t *testing.T) {
	fac := ast.NewExprFactory()
	got := foldedLiteral(t, fac.NewCall(1, operators.Add, fac.NewLiteral(2, types.Double(1.5)), fac.NewLiteral(3, types.Double(2.5))))
	if got != types.Double(4.0) {
		t.Errorf("1.5 + 2.5: got %v, wanted 4.0", got)
	}
}

func TestPreOptimizer_IntegerArithmeticNotFolded(t *testing.T) {
	fac := ast.NewExprFactory()
	e := fac.NewCall(1, operators.Add, fac.NewLiteral(2, types.Int(1)), fac.NewLiteral(3, types.Int(2)))
	out := NewPreOptimizer().Optimize(ast.NewAST(e, "test"))
	if out.Expr().Kind() != ast.CallKind {
		t.Errorf("1 + 2 (int): got kind %v, wanted CallKind (unfolded)", out.Expr().Kind())
	}
}

func TestPreOptimizer_ConditionalFoldsOnlyWhenBranchIsLiteral(t *testing.T) {
	fac := ast.NewExprFactory()

	// true ? 1 : 2 -> 1 (branch is already a literal)
	e := fac.NewCall(1, operators.Conditional, fac.NewLiteral(2, types.True), fac.NewLiteral(3, types.Int(1)), fac.NewLiteral(4, types.Int(2)))
	got := foldedLiteral(t, e)
	if got != types.Int(1) {
		t.Errorf("true ? 1 : 2: got %v, wanted 1", got)
	}

	// true ? (1+1) : 2 -> unchanged, since the truthy branch is a Call, not a literal.
	e = fac.NewCall(1, operators.Conditional, fac.NewLiteral(2, types.True),
		fac.NewCall(3, operators.Add, fac.NewLiteral(4, types.Int(1)), fac.NewLiteral(5, types.Int(1))),
		fac.NewLiteral(6, types.Int(2)))
	out := NewPreOptimizer().Optimize(ast.NewAST(e, "test"))
	if out.Expr().Kind() != ast.CallKind {
		t.Errorf("true ? (1+1) : 2: got kind %v, wanted CallKind (unfolded)", out.Expr().Kind())
	}
}

func TestPreOptimizer_Idempotent(t *testing.T) {
	fac := ast.NewExprFactory()
	e := fac.NewCall(1, operators.LogicalNot, fac.NewLiteral(2, types.True))
	o := NewPreOptimizer()
	once := o.Optimize(ast.NewAST(e, "test"))
	twice := o.Optimize(once)
	if twice.Expr().Kind() != once.Expr().Kind() || twice.Expr().AsLiteral() != once.Expr().AsLiteral() {
		t.Errorf("pass was not idempotent: once=%v twice=%v", once.Expr().AsLiteral(), twice.Expr().AsLiteral())
	}
}

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

	"github.com/waveform-dev/celcore/common/types"
)

func c(v types.Value) Interpretable { return NewConst(0, v) }

func TestEvalNot(t *testing.T) {
	if got := NewNot(1, c(types.True)).Eval(nil); got != types.False {
		t.Errorf("!true: got %v, wanted false", got)
	}
	got := NewNot(1, c(types.Int(1))).Eval(nil)
	if e, ok := got.(*types.Error); !ok || e.ErrKind != types.TypeMismatch {
		t.Errorf("!1: got %v, wanted Error(TypeMismatch)", got)
	}
}

func TestEvalNeg(t *testing.T) {
	if got := NewNeg(1, c(types.Int(5))).Eval(nil); got != types.Int(-5) {
		t.Errorf("-5: got %v, wanted -5", got)
	}
	if got := NewNeg(1, c(types.Double(1.5))).Eval(nil); got != types.Double(-1.5) {
		t.Errorf("-1.5: got %v, wanted -1.5", got)
	}
}

func TestEvalNegIntOverflow(t *testing.T) {
	got := NewNeg(1, c(types.Int(-9223372036854775808))).Eval(nil)
	e, ok := got.(*types.Error)
	if !ok || e.ErrKind != types.Overflow {
		t.Errorf("-MinInt64: got %v, wanted Error(Overflow)", got)
	}
}

func TestEvalNotStrictlyFalse(t *testing.T) {
	if got := NewNotStrictlyFalse(1, c(types.False)).Eval(nil); got != types.False {
		t.Errorf("false: got %v, wanted false", got)
	}
	if got := NewNotStrictlyFalse(1, c(types.True)).Eval(nil); got != types.True {
		t.Errorf("true: got %v, wanted true", got)
	}
	errNode := NewConst(1, types.NewErr(1, "boom"))
	if got := NewNotStrictlyFalse(1, errNode).Eval(nil); got != types.True {
		t.Errorf("error operand: got %v, wanted true (absorbed as not-strictly-false)", got)
	}
}

func TestEvalAndShortCircuits(t *testing.T) {
	errNode := NewConst(1, types.NewErr(1, "boom"))
	if got := NewAnd(1, c(types.False), errNode).Eval(nil); got != types.False {
		t.Errorf("false && error: got %v, wanted false (left false short-circuits)", got)
	}
	if got := NewAnd(1, errNode, c(types.False)).Eval(nil); got != types.False {
		t.Errorf("error && false: got %v, wanted false (right false short-circuits)", got)
	}
	got := NewAnd(1, errNode, c(types.True)).Eval(nil)
	if _, ok := got.(*types.Error); !ok {
		t.Errorf("error && true: got %v, wanted the Error to propagate", got)
	}
}

func TestEvalOrShortCircuits(t *testing.T) {
	errNode := NewConst(1, types.NewErr(1, "boom"))
	if got := NewOr(1, c(types.True), errNode).Eval(nil); got != types.True {
		t.Errorf("true || error: got %v, wanted true", got)
	}
	if got := NewOr(1, errNode, c(types.True)).Eval(nil); got != types.True {
		t.Errorf("error || true: got %v, wanted true", got)
	}
}

func TestEvalConditional(t *testing.T) {
	if got := NewConditional(1, c(types.True), c(types.Int(1)), c(types.Int(2))).Eval(nil); got != types.Int(1) {
		t.Errorf("true?1:2: got %v, wanted 1", got)
	}
	if got := NewConditional(1, c(types.False), c(types.Int(1)), c(types.Int(2))).Eval(nil); got != types.Int(2) {
		t.Errorf("false?1:2: got %v, wanted 2", got)
	}
}

func TestEvalBinaryArithmeticOverflow(t *testing.T) {
	maxInt := NewConst(1, types.Int(9223372036854775807))
	got := NewBinary(1, "+", maxInt, c(types.Int(1))).Eval(nil)
	e, ok := got.(*types.Error)
	if !ok || e.ErrKind != types.Overflow {
		t.Errorf("MaxInt64 + 1: got %v, wanted Error(Overflow)", got)
	}
}

func TestEvalBinaryDivideByZero(t *testing.T) {
	got := NewBinary(1, "/", c(types.Int(1)), c(types.Int(0))).Eval(nil)
	e, ok := got.(*types.Error)
	if !ok || e.ErrKind != types.DivideByZero {
		t.Errorf("1 / 0: got %v, wanted Error(DivideByZero)", got)
	}
}

func TestEvalBinaryComparison(t *testing.T) {
	tests := []struct {
		op   string
		l, r types.Value
		want types.Bool
	}{
		{"<", types.Int(1), types.Int(2), types.True},
		{"<=", types.Int(2), types.Int(2), types.True},
		{">", types.Int(3), types.Int(2), types.True},
		{">=", types.Int(2), types.Int(3), types.False},
	}
	for _, tc := range tests {
		got := NewBinary(1, tc.op, c(tc.l), c(tc.r)).Eval(nil)
		if got != tc.want {
			t.Errorf("%v %s %v: got %v, wanted %v", tc.l, tc.op, tc.r, got, tc.want)
		}
	}
}

func TestEvalBinaryIn(t *testing.T) {
	list := c(types.NewList([]types.Value{types.Int(1), types.Int(2), types.Int(3)}))
	got := NewBinary(1, "in", c(types.Int(2)), list).Eval(nil)
	if got != types.True {
		t.Errorf("2 in [1,2,3]: got %v, wanted true", got)
	}
	got = NewBinary(1, "in", c(types.Int(9)), list).Eval(nil)
	if got != types.False {
		t.Errorf("9 in [1,2,3]: got %v, wanted false", got)
	}
}

func TestEvalCallDispatches(t *testing.T) {
	d := NewStandardDispatcher()
	call := NewCall(1, "size", "size_string", []Interpretable{c(types.String("hello"))}, d)
	if got := call.Eval(nil); got != types.Int(5) {
		t.Errorf(`size("hello"): got %v, wanted 5`, got)
	}
}

func TestEvalCallPropagatesArgError(t *testing.T) {
	d := NewStandardDispatcher()
	errNode := NewConst(1, types.NewErr(1, "boom"))
	call := NewCall(1, "size", "", []Interpretable{errNode}, d)
	got := call.Eval(nil)
	if _, ok := got.(*types.Error); !ok {
		t.Errorf("size(error): got %v, wanted the argument error to propagate", got)
	}
}

func TestEvalBlock(t *testing.T) {
	// cel.@block([1, @index0 + 1], @index1) -> 2
	slot0 := c(types.Int(1))
	slot1 := NewBinary(2, "+", NewAttr(3, &absoluteAttribute{id: 3, namePath: []string{"@index0"}}), c(types.Int(1)))
	result := NewAttr(4, &absoluteAttribute{id: 4, namePath: []string{"@index1"}})
	block := NewBlock(1, []Interpretable{slot0, slot1}, result)

	got := block.Eval(NewActivation(nil))
	if got != types.Int(2) {
		t.Errorf("block result: got %v, wanted 2", got)
	}
}

func TestEvalCreateListOptionalElements(t *testing.T) {
	elems := []Interpretable{c(types.Int(1)), c(types.OptionalOf(types.Int(2))), c(types.OptionalNone)}
	node := NewCreateList(1, elems, map[int]bool{1: true, 2: true})
	got := node.Eval(nil)
	list, ok := got.(*types.List)
	if !ok {
		t.Fatalf("got %T, wanted *types.List", got)
	}
	if list.Len() != 2 {
		t.Fatalf("got len %d, wanted 2 (the none optional is dropped)", list.Len())
	}
	if list.Get(1, 0) != types.Int(1) || list.Get(1, 1) != types.Int(2) {
		t.Errorf("got %v, wanted [1, 2]", list.Iterate())
	}
}

func TestEvalCreateMap(t *testing.T) {
	node := NewCreateMap(1,
		[]Interpretable{c(types.String("a"))},
		[]Interpretable{c(types.Int(1))},
		nil,
	)
	got := node.Eval(nil)
	m, ok := got.(*types.Map)
	if !ok {
		t.Fatalf("got %T, wanted *types.Map", got)
	}
	if v, found := m.Find(types.String("a")); !found || v != types.Int(1) {
		t.Errorf(`got %v, %v, wanted 1, true for key "a"`, v, found)
	}
}

func TestEvalHasField(t *testing.T) {
	s := types.NewStruct("my.T", map[string]types.Value{"a": types.Int(1)})
	if got := NewHasField(1, c(s), "a").Eval(nil); got != types.True {
		t.Errorf("has(s.a): got %v, wanted true", got)
	}
	if got := NewHasField(1, c(s), "b").Eval(nil); got != types.False {
		t.Errorf("has(s.b): got %v, wanted false", got)
	}
	if got := NewHasField(1, c(types.OptionalNone), "x").Eval(nil); got != types.False {
		t.Errorf("has(optional.none().x): got %v, wanted false", got)
	}
}

func TestEvalTypeConversion(t *testing.T) {
	got := NewTypeConversion(1, c(types.Int(1)), "double", nil).Eval(nil)
	if got != types.Double(1) {
		t.Errorf("int(1) -> double: got %v, wanted 1.0", got)
	}
	got = NewTypeConversion(1, c(types.Double(3.9)), "int", nil).Eval(nil)
	if got != types.Int(3) {
		t.Errorf("double(3.9) -> int: got %v, wanted 3 (truncated)", got)
	}
	got = NewTypeConversion(1, c(types.String("42")), "int", nil).Eval(nil)
	if e, ok := got.(*types.Error); !ok || e.ErrKind != types.TypeMismatch {
		t.Errorf(`int("42"): got %v, wanted Error(TypeMismatch) (string->int is not a supported conversion)`, got)
	}
}

func TestEvalTypeConversionDyn(t *testing.T) {
	v := types.Int(7)
	got := NewTypeConversion(1, c(v), "dyn", nil).Eval(nil)
	if got != v {
		t.Errorf("dyn(7): got %v, wanted 7 unchanged", got)
	}
}

func TestLegacyEnumCoerceNonEnumPassesThrough(t *testing.T) {
	node := &legacyEnumCoerce{id: 1, operand: c(types.Int(5))}
	if got := node.Eval(nil); got != types.Int(5) {
		t.Errorf("non-enum operand: got %v, wanted 5 unchanged", got)
	}
}

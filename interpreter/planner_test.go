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
	"reflect"
	"testing"

	"github.com/waveform-dev/celcore/common/ast"
	"github.com/waveform-dev/celcore/common/containers"
	"github.com/waveform-dev/celcore/common/operators"
	"github.com/waveform-dev/celcore/common/types"
)

func newTestPlanner(d Dispatcher, p TypeProvider, cont *containers.Container) *Planner {
	if d == nil {
		d = NewDispatcher()
	}
	if p == nil {
		p = NewReflectProvider()
	}
	return NewPlanner(d, p, NewAttributeFactory(), cont, false)
}

func TestPlanner_OverloadTieBreak_SingleOverloadWins(t *testing.T) {
	d := NewDispatcher()
	d.Add("f", &Overload{ID: "f_int", Function: func(args []types.Value) types.Value { return args[0] }})
	p := newTestPlanner(d, nil, nil)

	fac := ast.NewExprFactory()
	e := fac.NewCall(1, "f", fac.NewLiteral(2, types.Int(1)))
	plan, err := p.Plan(ast.NewAST(e, "test"))
	if err != nil {
		t.Fatalf("Plan() failed: %v", err)
	}
	call, ok := plan.(*evalCall)
	if !ok {
		t.Fatalf("got %T, wanted *evalCall", plan)
	}
	if call.OverloadID() != "f_int" {
		t.Errorf("got overload id %q, wanted f_int (the sole registered overload)", call.OverloadID())
	}
}

func TestPlanner_OverloadTieBreak_MultipleNonDynPicksFirstRegistered(t *testing.T) {
	d := NewDispatcher()
	d.Add("f", &Overload{ID: "f_int", Function: func(args []types.Value) types.Value { return args[0] }})
	d.Add("f", &Overload{ID: "f_string", Function: func(args []types.Value) types.Value { return args[0] }})
	p := newTestPlanner(d, nil, nil)

	fac := ast.NewExprFactory()
	e := fac.NewCall(1, "f", fac.NewLiteral(2, types.Int(1)))
	plan, err := p.Plan(ast.NewAST(e, "test"))
	if err != nil {
		t.Fatalf("Plan() failed: %v", err)
	}
	call := plan.(*evalCall)
	if call.OverloadID() != "f_int" {
		t.Errorf("got overload id %q, wanted f_int (first registered, no Dyn argument)", call.OverloadID())
	}
}

func TestPlanner_OverloadTieBreak_DynArgumentFallsBackToArityName(t *testing.T) {
	d := NewDispatcher()
	d.Add("f", &Overload{ID: "f_int", Function: func(args []types.Value) types.Value { return args[0] }})
	d.Add("f", &Overload{ID: "f_string", Function: func(args []types.Value) types.Value { return args[0] }})
	p := newTestPlanner(d, nil, nil)

	fac := ast.NewExprFactory()
	arg := fac.NewIdent(2, "x")
	e := fac.NewCall(1, "f", arg)
	typeMap := map[int64]*types.Type{2: &types.DynType}
	plan, err := p.Plan(ast.NewCheckedAST(e, "test", map[int64]*ast.ReferenceInfo{}, typeMap))
	if err != nil {
		t.Fatalf("Plan() failed: %v", err)
	}
	call := plan.(*evalCall)
	if call.OverloadID() != "f_1" {
		t.Errorf("got overload id %q, wanted the f_1 fallback (Dyn-typed argument defeats the tie-break)", call.OverloadID())
	}
}

func TestPlanner_BlockLowering(t *testing.T) {
	p := newTestPlanner(nil, nil, nil)
	fac := ast.NewExprFactory()
	e := fac.NewCall(1, blockFunction,
		fac.NewList(2, []ast.Expr{fac.NewLiteral(3, types.Int(1))}, nil),
		fac.NewLiteral(4, types.Int(2)),
	)
	plan, err := p.Plan(ast.NewAST(e, "test"))
	if err != nil {
		t.Fatalf("Plan() failed: %v", err)
	}
	if _, ok := plan.(*evalBlock); !ok {
		t.Errorf("cel.@block(...): got %T, wanted *evalBlock", plan)
	}
}

func TestPlanner_BlockLoweringEmptyBindingsSkipsBlock(t *testing.T) {
	p := newTestPlanner(nil, nil, nil)
	fac := ast.NewExprFactory()
	e := fac.NewCall(1, blockFunction, fac.NewList(2, nil, nil), fac.NewLiteral(3, types.Int(2)))
	plan, err := p.Plan(ast.NewAST(e, "test"))
	if err != nil {
		t.Fatalf("Plan() failed: %v", err)
	}
	if _, ok := plan.(*evalBlock); ok {
		t.Errorf("cel.@block([], 2): got *evalBlock, wanted the result planned directly with no bindings")
	}
}

func TestPlanner_MemberCallResolvesToQualifiedGlobalFunction(t *testing.T) {
	d := NewDispatcher()
	d.Add("ns.foo", &Overload{ID: "ns_foo", Function: func(args []types.Value) types.Value { return types.True }})
	p := newTestPlanner(d, nil, nil)

	fac := ast.NewExprFactory()
	e := fac.NewMemberCall(1, "foo", fac.NewIdent(2, "ns"), fac.NewLiteral(3, types.Int(1)))
	plan, err := p.Plan(ast.NewAST(e, "test"))
	if err != nil {
		t.Fatalf("Plan() failed: %v", err)
	}
	call, ok := plan.(*evalCall)
	if !ok {
		t.Fatalf("got %T, wanted *evalCall", plan)
	}
	if call.Function() != "ns.foo" {
		t.Errorf("got function %q, wanted ns.foo (member call resolved as a qualified global)", call.Function())
	}
	if len(call.Args()) != 1 {
		t.Errorf("got %d args, wanted 1 (the receiver is not passed as an argument once resolved as global)", len(call.Args()))
	}
}

func TestPlanner_IndexLoweringToQualifier(t *testing.T) {
	p := newTestPlanner(nil, nil, nil)
	fac := ast.NewExprFactory()
	list := fac.NewList(1, []ast.Expr{fac.NewLiteral(2, types.Int(1))}, nil)
	e := fac.NewCall(3, operators.Index, list, fac.NewLiteral(4, types.Int(0)))
	plan, err := p.Plan(ast.NewAST(e, "test"))
	if err != nil {
		t.Fatalf("Plan() failed: %v", err)
	}
	attr, ok := plan.(*evalAttr)
	if !ok {
		t.Fatalf("got %T, wanted *evalAttr", plan)
	}
	if len(attr.Attr().Qualifiers()) != 1 {
		t.Errorf("got %d qualifiers, wanted 1", len(attr.Attr().Qualifiers()))
	}
}

func TestPlanner_OptIndexQualifierIsOptional(t *testing.T) {
	p := newTestPlanner(nil, nil, nil)
	fac := ast.NewExprFactory()
	list := fac.NewList(1, []ast.Expr{fac.NewLiteral(2, types.Int(1))}, nil)
	e := fac.NewCall(3, operators.OptIndex, list, fac.NewLiteral(4, types.Int(0)))
	plan, err := p.Plan(ast.NewAST(e, "test"))
	if err != nil {
		t.Fatalf("Plan() failed: %v", err)
	}
	attr := plan.(*evalAttr)
	quals := attr.Attr().Qualifiers()
	if len(quals) != 1 || !quals[0].IsOptional() {
		t.Errorf("got qualifiers %v, wanted exactly one optional qualifier", quals)
	}
}

func TestPlanner_ContainerQualifiedStructTypeResolution(t *testing.T) {
	provider := NewReflectProvider()
	provider.RegisterStruct("my.pkg.Point", reflect.TypeOf(struct {
		X int64 `cel:"x"`
	}{}))
	cont, err := containers.NewContainer(containers.Name("my.pkg"))
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}
	p := newTestPlanner(nil, provider, cont)

	fac := ast.NewExprFactory()
	e := fac.NewStruct(1, "Point", []ast.EntryExpr{
		fac.NewStructField(2, "x", fac.NewLiteral(3, types.Int(1)), false),
	})
	plan, err := p.Plan(ast.NewAST(e, "test"))
	if err != nil {
		t.Fatalf("Plan() failed: %v", err)
	}
	cs, ok := plan.(*evalCreateStruct)
	if !ok {
		t.Fatalf("got %T, wanted *evalCreateStruct", plan)
	}
	if cs.typeName != "my.pkg.Point" {
		t.Errorf("got type name %q, wanted the container-qualified my.pkg.Point", cs.typeName)
	}
}

// fakeEnumProvider is a minimal TypeProvider stub used only to exercise the legacy-enum field
// coercion path, which ReflectProvider itself has no Go-native analog for (see DESIGN.md).
type fakeEnumProvider struct {
	TypeProvider
}

func (f *fakeEnumProvider) FindStructType(name string) (string, bool) { return name, true }

func (f *fakeEnumProvider) FindStructFieldType(typeName, field string) (*types.Type, bool) {
	et := types.NewEnumType("my.Color")
	return &et, true
}

func (f *fakeEnumProvider) NewStruct(typeName string, fieldValues map[string]types.Value) types.Value {
	return types.NewStruct(typeName, fieldValues)
}

func TestPlanner_LegacyEnumFieldCoercion(t *testing.T) {
	provider := &fakeEnumProvider{}
	p := NewPlanner(NewDispatcher(), provider, NewAttributeFactory(), nil, true)

	fac := ast.NewExprFactory()
	e := fac.NewStruct(1, "my.Widget", []ast.EntryExpr{
		fac.NewStructField(2, "color", fac.NewLiteral(3, types.Int(1)), false),
	})
	plan, err := p.Plan(ast.NewAST(e, "test"))
	if err != nil {
		t.Fatalf("Plan() failed: %v", err)
	}
	cs := plan.(*evalCreateStruct)
	if _, ok := cs.fieldVals[0].(*legacyEnumCoerce); !ok {
		t.Errorf("got %T, wanted the enum-typed field wrapped in *legacyEnumCoerce", cs.fieldVals[0])
	}
}

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
	"fmt"

	"github.com/waveform-dev/celcore/common/ast"
	"github.com/waveform-dev/celcore/common/containers"
	"github.com/waveform-dev/celcore/common/operators"
	"github.com/waveform-dev/celcore/common/types"
)

// blockFunction is the hidden call cel.@block(bindings, result) the macro expander emits for
// common-subexpression-eliminated ASTs.
const blockFunction = "cel.@block"

// binarySymbols maps an operator's internal call name to the human-readable symbol evalBinary
// dispatches on.
var binarySymbols = map[string]string{
	operators.Equals:        "==",
	operators.NotEquals:     "!=",
	operators.Less:          "<",
	operators.LessEquals:    "<=",
	operators.Greater:       ">",
	operators.GreaterEquals: ">=",
	operators.Add:           "+",
	operators.Subtract:      "-",
	operators.Multiply:      "*",
	operators.Divide:        "/",
	operators.Modulo:        "%",
	operators.In:            "in",
}

// conversionIntrinsics is the set of single-argument global functions the planner lowers to
// TypeConversion rather than Call.
var conversionIntrinsics = map[string]bool{
	"int": true, "uint": true, "double": true, "string": true,
	"bytes": true, "bool": true, "type": true, "dyn": true,
}

// Planner translates a checked or parse-only AST into an executable Interpretable tree. A single
// Planner may plan any number of ASTs; it holds no per-plan state itself, only the collaborators
// every plan consults.
type Planner struct {
	dispatcher Dispatcher
	provider   TypeProvider
	attrs      AttributeFactory
	container  *containers.Container

	// legacyEnum, when set, coerces enum-typed struct fields to Int at construction time, for
	// compatibility with callers that predate first-class Enum values.
	legacyEnum bool
}

// NewPlanner returns a Planner using the given collaborators.
func NewPlanner(dispatcher Dispatcher, provider TypeProvider, attrs AttributeFactory, container *containers.Container, legacyEnum bool) *Planner {
	return &Planner{dispatcher: dispatcher, provider: provider, attrs: attrs, container: container, legacyEnum: legacyEnum}
}

// Plan lowers a into an executable Interpretable tree.
func (p *Planner) Plan(a *ast.AST) (Interpretable, error) {
	pc := &planContext{
		Planner: p,
		refMap:  a.ReferenceMap(),
		typeMap: a.TypeMap(),
		checked: a.IsChecked(),
	}
	return pc.plan(a.Expr()), nil
}

// planContext carries the reference and type maps of a single AST being planned; it is discarded
// once Plan returns.
type planContext struct {
	*Planner
	refMap  map[int64]*ast.ReferenceInfo
	typeMap map[int64]*types.Type
	checked bool
}

// plan dispatches on expr's kind. Per the planning core's error-handling contract, an
// unrecognized or malformed node never fails planning outright: it becomes a Const wrapping an
// Error, so evaluation remains a total function even over degenerate input.
func (pc *planContext) plan(expr ast.Expr) Interpretable {
	switch expr.Kind() {
	case ast.LiteralKind:
		return pc.planConst(expr)
	case ast.IdentKind:
		return pc.planIdent(expr)
	case ast.SelectKind:
		return pc.planSelect(expr)
	case ast.CallKind:
		return pc.planCall(expr)
	case ast.ListKind:
		return pc.planCreateList(expr)
	case ast.MapKind:
		return pc.planCreateMap(expr)
	case ast.StructKind:
		return pc.planCreateStruct(expr)
	case ast.ComprehensionKind:
		return pc.planComprehension(expr)
	default:
		return NewConst(expr.ID(), types.NewErrKind(expr.ID(), types.Generic, "unsupported expression kind"))
	}
}

func (pc *planContext) planConst(expr ast.Expr) Interpretable {
	return NewConst(expr.ID(), expr.AsLiteral())
}

func (pc *planContext) planIdent(expr ast.Expr) Interpretable {
	if ref, found := pc.refMap[expr.ID()]; found {
		return pc.planReference(expr.ID(), ref, expr.AsIdent())
	}
	return NewAttr(expr.ID(), pc.attrs.MaybeAttribute(expr.ID(), pc.container.ResolveCandidateNames(expr.AsIdent())...))
}

// planReference lowers a checker-resolved identifier or select reference: a constant (including
// enum constants, subject to the legacy-enum coercion), a type-constructor identifier, or a plain
// attribute under its canonical name.
func (pc *planContext) planReference(id int64, ref *ast.ReferenceInfo, fallbackName string) Interpretable {
	if ref.Value != nil {
		return NewConst(id, pc.coerceConstant(ref.Value))
	}
	name := ref.Name
	if name == "" {
		name = fallbackName
	}
	if t, found := pc.typeMap[id]; found && t != nil && t.ValueKind() == types.KindType {
		return NewConst(id, types.NewObjectType(name))
	}
	return NewAttr(id, pc.attrs.AbsoluteAttribute(id, name))
}

// coerceConstant applies the legacy-enum flag: a fully-resolved Enum constant narrows to its
// underlying Int when the planner was built with legacyEnum set.
func (pc *planContext) coerceConstant(val types.Value) types.Value {
	if pc.legacyEnum {
		if e, ok := val.(types.Enum); ok {
			return types.Int(e.Value())
		}
	}
	return val
}

// planSelect lowers a field selection: a presence test (`has()`), a checker-resolved namespaced
// reference, an attribute fold over a dotted chain of unchecked identifiers, or an ordinary
// qualifier append onto the operand's attribute.
func (pc *planContext) planSelect(expr ast.Expr) Interpretable {
	if ref, found := pc.refMap[expr.ID()]; found {
		return pc.planReference(expr.ID(), ref, "")
	}
	sel := expr.AsSelect()
	if sel.IsTestOnly() {
		operand := pc.plan(sel.Operand())
		return NewHasField(expr.ID(), operand, sel.FieldName())
	}
	if !pc.checked && !sel.IsOptional() {
		if dotted, ok := dottedName(sel); ok {
			return NewAttr(expr.ID(), pc.attrs.AbsoluteAttribute(expr.ID(), splitDotted(dotted)...))
		}
	}
	operand := pc.plan(sel.Operand())
	attr := pc.toAttribute(operand)
	qual := pc.attrs.NewStringQualifier(expr.ID(), sel.FieldName(), sel.IsOptional())
	attr = attr.AddQualifier(qual)
	return NewAttr(expr.ID(), attr)
}

// dottedName walks a chain of plain (non-test, non-optional) Select/Ident nodes into a single
// dot-joined name, for the unchecked-AST attribute-folding case.
func dottedName(sel ast.SelectExpr) (string, bool) {
	base, ok := dottedNameOf(sel.Operand())
	if !ok {
		return "", false
	}
	return base + "." + sel.FieldName(), true
}

func dottedNameOf(expr ast.Expr) (string, bool) {
	switch expr.Kind() {
	case ast.IdentKind:
		return expr.AsIdent(), true
	case ast.SelectKind:
		sel := expr.AsSelect()
		if sel.IsTestOnly() || sel.IsOptional() {
			return "", false
		}
		return dottedName(sel)
	default:
		return "", false
	}
}

func splitDotted(name string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			parts = append(parts, name[start:i])
			start = i + 1
		}
	}
	return append(parts, name[start:])
}

// toAttribute returns node's underlying Attribute if it already is one, or wraps it as a
// RelativeAttribute otherwise.
func (pc *planContext) toAttribute(node Interpretable) Attribute {
	if a, ok := node.(*evalAttr); ok {
		return a.Attr()
	}
	return pc.attrs.RelativeAttribute(node.ID(), node)
}

// planCall dispatches a call expression: the cel.@block macro form, built-in operators lowered
// to dedicated node kinds, index/opt-index qualifier folding, type-conversion intrinsics, and
// ordinary dispatcher-routed calls.
func (pc *planContext) planCall(expr ast.Expr) Interpretable {
	call := expr.AsCall()
	fnName := call.FunctionName()

	if fnName == blockFunction && !call.IsMemberFunction() {
		return pc.planBlock(expr, call)
	}

	switch fnName {
	case operators.LogicalAnd:
		args := call.Args()
		return NewAnd(expr.ID(), pc.plan(args[0]), pc.plan(args[1]))
	case operators.LogicalOr:
		args := call.Args()
		return NewOr(expr.ID(), pc.plan(args[0]), pc.plan(args[1]))
	case operators.Conditional:
		args := call.Args()
		return NewConditional(expr.ID(), pc.plan(args[0]), pc.plan(args[1]), pc.plan(args[2]))
	case operators.LogicalNot:
		return NewNot(expr.ID(), pc.plan(call.Args()[0]))
	case operators.Negate:
		return NewNeg(expr.ID(), pc.plan(call.Args()[0]))
	case operators.NotStrictlyFalse:
		return NewNotStrictlyFalse(expr.ID(), pc.plan(call.Args()[0]))
	case operators.Index:
		return pc.planIndex(expr, call, false)
	case operators.OptIndex, operators.OptSelect:
		return pc.planIndex(expr, call, true)
	}

	if sym, ok := binarySymbols[fnName]; ok {
		args := call.Args()
		return NewBinary(expr.ID(), sym, pc.plan(args[0]), pc.plan(args[1]))
	}

	if !call.IsMemberFunction() && len(call.Args()) == 1 && conversionIntrinsics[fnName] {
		return NewTypeConversion(expr.ID(), pc.plan(call.Args()[0]), fnName, pc.provider)
	}

	return pc.planDispatchedCall(expr, call)
}

// planIndex lowers `_[_]`/`_[?_]` into a qualifier appended to the operand's attribute: a literal
// string index folds to a StringQualifier, any other literal to an IndexQualifier, and a
// non-constant index expression to a ComputedQualifier.
func (pc *planContext) planIndex(expr ast.Expr, call ast.CallExpr, optional bool) Interpretable {
	args := call.Args()
	operand := pc.plan(args[0])
	indexNode := pc.plan(args[1])
	attr := pc.toAttribute(operand)

	var qual Qualifier
	if c, ok := indexNode.(*evalConst); ok {
		if s, isStr := c.Value().(types.String); isStr {
			qual = pc.attrs.NewStringQualifier(expr.ID(), string(s), optional)
		} else {
			qual = pc.attrs.NewIndexQualifier(expr.ID(), c.Value(), optional)
		}
	} else {
		qual = pc.attrs.NewComputedQualifier(expr.ID(), indexNode, optional)
	}
	attr = attr.AddQualifier(qual)
	return NewAttr(expr.ID(), attr)
}

// planBlock lowers cel.@block(bindings, result). Planning fails soft (a Const(Error) node) if the
// shape does not match, matching the core's always-total planning contract.
func (pc *planContext) planBlock(expr ast.Expr, call ast.CallExpr) Interpretable {
	args := call.Args()
	if len(args) != 2 || args[0].Kind() != ast.ListKind {
		return NewConst(expr.ID(), types.NewErrKind(expr.ID(), types.Generic, "malformed cel.@block call"))
	}
	elems := args[0].AsList().Elements()
	if len(elems) == 0 {
		return pc.plan(args[1])
	}
	slots := make([]Interpretable, len(elems))
	for i, e := range elems {
		slots[i] = pc.plan(e)
	}
	return NewBlock(expr.ID(), slots, pc.plan(args[1]))
}

// planDispatchedCall handles the general call case: resolving whether a member call is really a
// qualified global function, and selecting the overload id to bind at plan time.
func (pc *planContext) planDispatchedCall(expr ast.Expr, call ast.CallExpr) Interpretable {
	fnName := call.FunctionName()
	var target ast.Expr
	resolvedName := fnName
	overloadID := ""

	if call.IsMemberFunction() {
		resolvedAsGlobal := false
		if qualBase, ok := pc.toQualifiedName(call.Target()); ok {
			candidateName := qualBase + "." + fnName
			for _, cand := range pc.container.ResolveCandidateNames(candidateName) {
				if overloads := pc.dispatcher.FindOverloadsByName(cand); len(overloads) > 0 {
					resolvedName = cand
					overloadID = pc.selectOverload(expr, cand, len(call.Args()), overloads)
					resolvedAsGlobal = true
					break
				}
			}
		}
		if !resolvedAsGlobal {
			target = call.Target()
		}
	}

	if overloadID == "" {
		arity := len(call.Args())
		if target != nil {
			arity++
		}
		overloadID = pc.selectOverload(expr, resolvedName, arity, pc.dispatcher.FindOverloadsByName(resolvedName))
	}

	var args []Interpretable
	if target != nil {
		args = append(args, pc.plan(target))
	}
	for _, a := range call.Args() {
		args = append(args, pc.plan(a))
	}
	return NewCall(expr.ID(), resolvedName, overloadID, args, pc.dispatcher)
}

// selectOverload applies the plan-time overload tie-break rule: a checker-provided reference with
// exactly one overload id wins outright; zero ids fall back to "{name}_{arity}"; more than one id
// falls back the same way if any argument's static type is Dyn, else the first registered id
// wins.
func (pc *planContext) selectOverload(expr ast.Expr, name string, arity int, registered []*Overload) string {
	fallback := fmt.Sprintf("%s_%d", name, arity)

	ref, found := pc.refMap[expr.ID()]
	if found && len(ref.OverloadIDs) > 0 {
		if len(ref.OverloadIDs) == 1 {
			return ref.OverloadIDs[0]
		}
		if pc.anyArgIsDyn(expr) {
			return fallback
		}
		return ref.OverloadIDs[0]
	}

	switch len(registered) {
	case 0:
		return fallback
	case 1:
		return registered[0].ID
	default:
		if pc.anyArgIsDyn(expr) {
			return fallback
		}
		return registered[0].ID
	}
}

func (pc *planContext) anyArgIsDyn(expr ast.Expr) bool {
	call := expr.AsCall()
	if call.IsMemberFunction() {
		if t, found := pc.typeMap[call.Target().ID()]; found && t != nil && t.IsDyn() {
			return true
		}
	}
	for _, a := range call.Args() {
		if t, found := pc.typeMap[a.ID()]; found && t != nil && t.IsDyn() {
			return true
		}
	}
	return false
}

// toQualifiedName converts an unchecked ident/select chain into a dotted name candidate for
// qualified-global-function resolution; checker-resolved operands are never reinterpreted this
// way since their reference already pins a concrete meaning.
func (pc *planContext) toQualifiedName(operand ast.Expr) (string, bool) {
	if _, found := pc.refMap[operand.ID()]; found {
		return "", false
	}
	switch operand.Kind() {
	case ast.IdentKind:
		return operand.AsIdent(), true
	case ast.SelectKind:
		sel := operand.AsSelect()
		if sel.IsTestOnly() || sel.IsOptional() {
			return "", false
		}
		base, ok := pc.toQualifiedName(sel.Operand())
		if !ok {
			return "", false
		}
		return base + "." + sel.FieldName(), true
	default:
		return "", false
	}
}

func (pc *planContext) planCreateList(expr ast.Expr) Interpretable {
	l := expr.AsList()
	elems := l.Elements()
	nodes := make([]Interpretable, len(elems))
	for i, e := range elems {
		nodes[i] = pc.plan(e)
	}
	opt := optionalIndexSet(l.OptionalIndices())
	return NewCreateList(expr.ID(), nodes, opt)
}

func (pc *planContext) planCreateMap(expr ast.Expr) Interpretable {
	entries := expr.AsMap().Entries()
	keys := make([]Interpretable, len(entries))
	vals := make([]Interpretable, len(entries))
	opt := map[int]bool{}
	for i, e := range entries {
		entry := e.AsMapEntry()
		keys[i] = pc.plan(entry.Key())
		vals[i] = pc.plan(entry.Value())
		if entry.IsOptional() {
			opt[i] = true
		}
	}
	return NewCreateMap(expr.ID(), keys, vals, opt)
}

func (pc *planContext) planCreateStruct(expr ast.Expr) Interpretable {
	s := expr.AsStruct()
	typeName, found := pc.resolveTypeName(s.TypeName())
	if !found {
		typeName = s.TypeName()
	}
	fields := s.Fields()
	names := make([]string, len(fields))
	vals := make([]Interpretable, len(fields))
	opt := map[int]bool{}
	for i, f := range fields {
		sf := f.AsStructField()
		names[i] = sf.Name()
		v := pc.plan(sf.Value())
		if pc.legacyEnum {
			v = pc.coerceLegacyEnumField(typeName, sf.Name(), v)
		}
		vals[i] = v
		if sf.IsOptional() {
			opt[i] = true
		}
	}
	return NewCreateStruct(expr.ID(), typeName, names, vals, opt, pc.provider)
}

// coerceLegacyEnumField wraps an already-planned field initializer so that, if the field's
// declared type is an enum, an Enum value produced at evaluation time narrows to Int.
func (pc *planContext) coerceLegacyEnumField(typeName, field string, node Interpretable) Interpretable {
	ft, found := pc.provider.FindStructFieldType(typeName, field)
	if !found || ft == nil || ft.ValueKind() != types.KindEnum {
		return node
	}
	return &legacyEnumCoerce{id: node.ID(), operand: node}
}

func (pc *planContext) resolveTypeName(name string) (string, bool) {
	for _, cand := range pc.container.ResolveCandidateNames(name) {
		if qn, found := pc.provider.FindStructType(cand); found {
			return qn, true
		}
	}
	return "", false
}

func (pc *planContext) planComprehension(expr ast.Expr) Interpretable {
	c := expr.AsComprehension()
	return NewComprehension(
		expr.ID(),
		c.IterVar(), c.IterVar2(), c.AccuVar(),
		pc.plan(c.IterRange()),
		pc.plan(c.AccuInit()),
		pc.plan(c.LoopCondition()),
		pc.plan(c.LoopStep()),
		pc.plan(c.Result()),
	)
}

func optionalIndexSet(indices []int32) map[int]bool {
	if len(indices) == 0 {
		return nil
	}
	out := make(map[int]bool, len(indices))
	for _, i := range indices {
		out[int(i)] = true
	}
	return out
}

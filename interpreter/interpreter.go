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
	"github.com/waveform-dev/celcore/common/ast"
	"github.com/waveform-dev/celcore/common/containers"
)

// Interpreter turns a checked or parse-only AST into a runnable Program. It is the facade the
// rest of the planning core is built to serve: callers construct one Interpreter per
// (Dispatcher, TypeProvider, Container) combination and reuse it across every expression that
// shares those bindings.
type Interpreter interface {
	// NewProgram plans a and returns the resulting executable Program.
	NewProgram(a *ast.AST) (Program, error)

	// NewInterpretable is the lower-level form of NewProgram: it runs the same
	// optimize-plan-optimize pipeline but returns the bare Interpretable tree rather than
	// wrapping it, for callers (tests, other optimizer passes) that want to inspect the tree
	// directly.
	NewInterpretable(a *ast.AST) (Interpretable, error)
}

// InterpreterOption configures an Interpreter at construction time.
type InterpreterOption func(*exprInterpreter)

// LegacyEnum configures the Interpreter's Planner to coerce enum-typed constants and struct
// fields down to Int, for compatibility with callers built before Enum became a first-class
// value kind.
func LegacyEnum() InterpreterOption {
	return func(i *exprInterpreter) { i.legacyEnum = true }
}

// NewInterpreter returns an Interpreter wired to dispatcher, provider, and container.
func NewInterpreter(dispatcher Dispatcher, provider TypeProvider, container *containers.Container, opts ...InterpreterOption) Interpreter {
	in := &exprInterpreter{
		dispatcher: dispatcher,
		provider:   provider,
		container:  container,
		attrs:      NewAttributeFactory(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

type exprInterpreter struct {
	dispatcher Dispatcher
	provider   TypeProvider
	container  *containers.Container
	attrs      AttributeFactory
	legacyEnum bool
}

func (i *exprInterpreter) NewInterpretable(a *ast.AST) (Interpretable, error) {
	optimized := NewPreOptimizer().Optimize(a)
	planner := NewPlanner(i.dispatcher, i.provider, i.attrs, i.container, i.legacyEnum)
	plan, err := planner.Plan(optimized)
	if err != nil {
		return nil, err
	}
	return NewPostOptimizer().Optimize(plan), nil
}

func (i *exprInterpreter) NewProgram(a *ast.AST) (Program, error) {
	plan, err := i.NewInterpretable(a)
	if err != nil {
		return nil, err
	}
	return &program{plan: plan}, nil
}

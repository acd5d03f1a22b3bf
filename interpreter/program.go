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

import "github.com/waveform-dev/celcore/common/types"

// Program is a planned expression ready to evaluate repeatedly against different inputs. Unlike
// Interpretable, which exposes the raw tree for tooling, Program is the caller-facing surface:
// it accepts plain Go bindings rather than requiring callers to build their own Activation.
type Program interface {
	// Eval evaluates the program against vars, a map of variable name to either a types.Value or
	// a Supplier for lazy binding.
	Eval(vars map[string]any) types.Value

	// EvalWithActivation evaluates the program against an already-built Activation, for callers
	// that need to compose activations (e.g. layering a base environment with per-call
	// overrides) rather than build a single flat map.
	EvalWithActivation(act Activation) types.Value
}

type program struct {
	plan Interpretable
}

// NewProgram wraps an already-planned Interpretable tree as a Program.
func NewProgram(plan Interpretable) Program {
	return &program{plan: plan}
}

func (p *program) Eval(vars map[string]any) types.Value {
	return p.plan.Eval(NewActivation(vars))
}

func (p *program) EvalWithActivation(act Activation) types.Value {
	return p.plan.Eval(act)
}

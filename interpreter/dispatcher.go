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

// Overload binds a single overload id to its implementation function. The planning core never
// inspects arity or argument types directly: it is the Dispatcher's job to resolve a call; the
// core only ever asks for a specific (name, overload id) pair at plan time and invokes it at
// evaluation time.
type Overload struct {
	// ID is the unique overload identifier, e.g. "add_int64".
	ID string

	// Function implements the overload; args are already-evaluated and never Error/Unknown
	// (the Call node pre-filters both before invoking Dispatch).
	Function func(args []types.Value) types.Value
}

// Dispatcher resolves a function name and overload id to a callable, and lists the overloads
// registered under a name so the planner can apply its tie-break rules at plan time.
type Dispatcher interface {
	// FindOverloadsByName returns every overload registered under name, in registration order.
	FindOverloadsByName(name string) []*Overload

	// FindOverload returns the specific overload registered under id, if any.
	FindOverload(overloadID string) (*Overload, bool)

	// Dispatch invokes the named overload with args, returning its result. If overloadID is
	// empty, a single registered overload for name is used outright; with none or several
	// registered, Dispatch returns UnknownOverload (it does not apply the planner's
	// first-registered tie-break).
	Dispatch(id int64, name, overloadID string, args []types.Value) types.Value

	// Add registers an overload under name, appending to any already registered under it.
	Add(name string, o *Overload)
}

// NewDispatcher returns an empty, mutable Dispatcher.
func NewDispatcher() Dispatcher {
	return &defaultDispatcher{
		byName:     map[string][]*Overload{},
		byOverload: map[string]*Overload{},
	}
}

type defaultDispatcher struct {
	byName     map[string][]*Overload
	byOverload map[string]*Overload
}

func (d *defaultDispatcher) Add(name string, o *Overload) {
	d.byName[name] = append(d.byName[name], o)
	d.byOverload[o.ID] = o
}

func (d *defaultDispatcher) FindOverloadsByName(name string) []*Overload {
	return d.byName[name]
}

func (d *defaultDispatcher) FindOverload(overloadID string) (*Overload, bool) {
	o, found := d.byOverload[overloadID]
	return o, found
}

func (d *defaultDispatcher) Dispatch(id int64, name, overloadID string, args []types.Value) types.Value {
	if overloadID != "" {
		o, found := d.FindOverload(overloadID)
		if !found {
			return types.NewErrKind(id, types.UnknownOverload, "unknown overload: %s", overloadID)
		}
		return o.Function(args)
	}
	overloads := d.FindOverloadsByName(name)
	if len(overloads) != 1 {
		return types.NewErrKind(id, types.UnknownOverload, "no unique overload for function: %s", name)
	}
	return overloads[0].Function(args)
}

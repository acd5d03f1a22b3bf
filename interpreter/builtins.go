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
	"strings"

	"github.com/waveform-dev/celcore/common/types"
)

// NewStandardDispatcher returns a Dispatcher seeded with a small function library: size() over
// the four sized container/scalar kinds, and the string predicates contains/startsWith/endsWith.
// It exists so the planner's Call node and the core's Dispatcher contract have something real to
// exercise; it is not a complete CEL standard library (no regex, timestamp/duration arithmetic, or
// protobuf well-known-type coercions — see DESIGN.md).
func NewStandardDispatcher() Dispatcher {
	d := NewDispatcher()
	d.Add("size", &Overload{ID: "size_string", Function: sizeOf})
	d.Add("size", &Overload{ID: "size_bytes", Function: sizeOf})
	d.Add("size", &Overload{ID: "size_list", Function: sizeOf})
	d.Add("size", &Overload{ID: "size_map", Function: sizeOf})
	d.Add("contains", &Overload{ID: "contains_string", Function: containsString})
	d.Add("startsWith", &Overload{ID: "startsWith_string", Function: startsWithString})
	d.Add("endsWith", &Overload{ID: "endsWith_string", Function: endsWithString})
	return d
}

type sized interface {
	Len() int64
}

func sizeOf(args []types.Value) types.Value {
	if len(args) != 1 {
		return types.NewErrKind(0, types.InvalidArgument, "size() takes exactly one argument")
	}
	s, ok := args[0].(sized)
	if !ok {
		return types.NewErrKind(0, types.TypeMismatch, "no such overload: size(%s)", types.TypeOf(args[0]).TypeName())
	}
	return types.Int(s.Len())
}

func asStringPair(args []types.Value) (types.String, types.String, bool) {
	if len(args) != 2 {
		return "", "", false
	}
	s, ok := args[0].(types.String)
	if !ok {
		return "", "", false
	}
	sub, ok := args[1].(types.String)
	if !ok {
		return "", "", false
	}
	return s, sub, true
}

func containsString(args []types.Value) types.Value {
	s, sub, ok := asStringPair(args)
	if !ok {
		return types.NewErrKind(0, types.TypeMismatch, "no such overload: contains(string, string)")
	}
	return types.Bool(strings.Contains(string(s), string(sub)))
}

func startsWithString(args []types.Value) types.Value {
	s, prefix, ok := asStringPair(args)
	if !ok {
		return types.NewErrKind(0, types.TypeMismatch, "no such overload: startsWith(string, string)")
	}
	return types.Bool(strings.HasPrefix(string(s), string(prefix)))
}

func endsWithString(args []types.Value) types.Value {
	s, suffix, ok := asStringPair(args)
	if !ok {
		return types.NewErrKind(0, types.TypeMismatch, "no such overload: endsWith(string, string)")
	}
	return types.Bool(strings.HasSuffix(string(s), string(suffix)))
}

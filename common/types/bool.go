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

package types

import "fmt"

// Bool is a boolean Value.
type Bool bool

const (
	// True and False are the canonical Bool singletons.
	True  = Bool(true)
	False = Bool(false)
)

func (b Bool) Kind() Kind { return KindBool }

func (b Bool) Equal(other Value) Value {
	o, ok := other.(Bool)
	if !ok {
		return False
	}
	return Bool(b == o)
}

func (b Bool) String() string { return fmt.Sprintf("%t", bool(b)) }

// Negate implements logical not.
func (b Bool) Negate() Bool { return !b }

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

import "strings"

// String is a Unicode text Value.
type String string

func (s String) Kind() Kind { return KindString }

func (s String) Equal(other Value) Value {
	o, ok := other.(String)
	if !ok {
		return False
	}
	return Bool(s == o)
}

func (s String) String() string { return string(s) }

// Compare returns -1, 0, or 1 using byte-wise ordering of the runes, matching
// Go's native string comparison.
func (s String) Compare(other Value) (int, bool) {
	o, ok := other.(String)
	if !ok {
		return 0, false
	}
	return strings.Compare(string(s), string(o)), true
}

// RuneAt returns the single-character string at the given zero-based
// code-point position.
func (s String) RuneAt(i int64) (String, bool) {
	runes := []rune(string(s))
	if i < 0 || i >= int64(len(runes)) {
		return "", false
	}
	return String(runes[i]), true
}

// Len returns the number of Unicode code points in s.
func (s String) Len() int64 {
	return int64(len([]rune(string(s))))
}

func (s String) Concat(other String) String { return s + other }

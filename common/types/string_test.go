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

import "testing"

func TestStringEqual(t *testing.T) {
	if String("abc").Equal(String("abc")) != True {
		t.Error(`"abc" != "abc"`)
	}
	if String("abc").Equal(String("abd")) != False {
		t.Error(`"abc" == "abd", wanted false`)
	}
	if String("1").Equal(Int(1)) != False {
		t.Error(`"1" == int(1), wanted no cross-kind equality`)
	}
}

func TestStringCompare(t *testing.T) {
	if c, ok := String("a").Compare(String("b")); !ok || c != -1 {
		t.Errorf(`"a" vs "b": got %d, %v, wanted -1, true`, c, ok)
	}
	if _, ok := String("a").Compare(Int(1)); ok {
		t.Error(`"a" vs int(1): got ok=true, wanted false`)
	}
}

func TestStringRuneAt(t *testing.T) {
	r, ok := String("héllo").RuneAt(1)
	if !ok || r != String("é") {
		t.Errorf(`"héllo"[1]: got %q, %v, wanted "é", true`, r, ok)
	}
	if _, ok := String("abc").RuneAt(5); ok {
		t.Error("out-of-range RuneAt: got ok=true, wanted false")
	}
}

func TestStringLen(t *testing.T) {
	// Len counts code points, not bytes.
	if String("héllo").Len() != 5 {
		t.Errorf("got %d, wanted 5", String("héllo").Len())
	}
}

func TestStringConcat(t *testing.T) {
	if String("ab").Concat(String("cd")) != String("abcd") {
		t.Errorf(`got %q, wanted "abcd"`, String("ab").Concat(String("cd")))
	}
}

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

func TestBytesEqual(t *testing.T) {
	if Bytes("abc").Equal(Bytes("abc")) != True {
		t.Error(`bytes("abc") != bytes("abc")`)
	}
	if Bytes("abc").Equal(Bytes("abd")) != False {
		t.Error(`bytes("abc") == bytes("abd"), wanted false`)
	}
	if Bytes("abc").Equal(String("abc")) != False {
		t.Error(`bytes("abc") == string("abc"), wanted no cross-kind equality`)
	}
}

func TestBytesLen(t *testing.T) {
	if Bytes("hello").Len() != 5 {
		t.Errorf("got %d, wanted 5", Bytes("hello").Len())
	}
}

func TestBytesByteAt(t *testing.T) {
	b, ok := Bytes("ab").ByteAt(1)
	if !ok || b != Uint('b') {
		t.Errorf(`bytes("ab")[1]: got %v, %v, wanted 'b', true`, b, ok)
	}
	if _, ok := Bytes("ab").ByteAt(5); ok {
		t.Error("out-of-range ByteAt: got ok=true, wanted false")
	}
}

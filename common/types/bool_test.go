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

func TestBoolEqual(t *testing.T) {
	if True.Equal(True) != True {
		t.Error("true != true")
	}
	if True.Equal(False) != False {
		t.Error("true == false")
	}
	if True.Equal(Int(1)) != False {
		t.Error("true == int(1), wanted no cross-kind equality")
	}
}

func TestBoolNegate(t *testing.T) {
	if True.Negate() != False {
		t.Error("!true != false")
	}
	if False.Negate() != True {
		t.Error("!false != true")
	}
}

func TestBoolString(t *testing.T) {
	if True.String() != "true" || False.String() != "false" {
		t.Errorf("got %q, %q, wanted true, false", True.String(), False.String())
	}
}

func TestBoolKind(t *testing.T) {
	if True.Kind() != KindBool {
		t.Error("True.Kind() != KindBool")
	}
}

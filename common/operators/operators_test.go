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

package operators

import "testing"

func TestFind(t *testing.T) {
	op, found := Find("+")
	if !found || op != Add {
		t.Errorf(`Find("+"): got %q, %v, wanted Add, true`, op, found)
	}
	op, found = Find("==")
	if !found || op != Equals {
		t.Errorf(`Find("=="): got %q, %v, wanted Equals, true`, op, found)
	}
	if _, found := Find("nope"); found {
		t.Error(`Find("nope"): got found=true, wanted false`)
	}
}

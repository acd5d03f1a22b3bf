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

import (
	"bytes"
	"fmt"
)

// Bytes is a raw byte-string Value.
type Bytes []byte

func (b Bytes) Kind() Kind { return KindBytes }

func (b Bytes) Equal(other Value) Value {
	o, ok := other.(Bytes)
	if !ok {
		return False
	}
	return Bool(bytes.Equal(b, o))
}

func (b Bytes) String() string { return fmt.Sprintf("%v", []byte(b)) }

// ByteAt returns the byte at the given zero-based position as a Uint in
// 0..255.
func (b Bytes) ByteAt(i int64) (Uint, bool) {
	if i < 0 || i >= int64(len(b)) {
		return 0, false
	}
	return Uint(b[i]), true
}

func (b Bytes) Len() int64 { return int64(len(b)) }

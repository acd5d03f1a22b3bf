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
	"math"
	"time"
)

// Duration is a signed, nanosecond-resolution span of time, with its own
// KindDuration. It is not among the value variants listed on Value
// (well-known wrapper message handling lives with the TypeProvider
// collaborator); it exists here only because Neg must be able to negate one.
type Duration time.Duration

func (d Duration) Kind() Kind { return KindDuration }

func (d Duration) Equal(other Value) Value {
	o, ok := other.(Duration)
	if !ok {
		return False
	}
	return Bool(d == o)
}

func (d Duration) String() string { return time.Duration(d).String() }

// Negate returns -d, or an overflow Error at id if d is the most negative
// representable duration.
func (d Duration) Negate(id int64) Value {
	if d == Duration(math.MinInt64) {
		return NewErrKind(id, Overflow, "duration negation overflow")
	}
	return -d
}

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
	"fmt"
	"math"
)

// Double is an IEEE-754 64-bit floating point Value.
type Double float64

func (d Double) Kind() Kind { return KindDouble }

func (d Double) Equal(other Value) Value {
	switch o := other.(type) {
	case Double:
		return Bool(float64(d) == float64(o))
	case Int:
		return Bool(float64(d) == float64(o))
	case Uint:
		return Bool(float64(d) == float64(o))
	default:
		return False
	}
}

func (d Double) String() string { return fmt.Sprintf("%g", float64(d)) }

func (d Double) Negate() Double { return -d }

func (d Double) Add(other Double) Double      { return d + other }
func (d Double) Subtract(other Double) Double { return d - other }
func (d Double) Multiply(other Double) Double { return d * other }
func (d Double) Divide(other Double) Double   { return d / other }

// compareFloat returns -1, 0, or 1 comparing x to y. All NaN comparisons
// report ok=false so that callers treat them as incomparable (every NaN
// relational comparison is false, and != on NaN is true).
func compareFloat(x, y float64) (int, bool) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return 0, false
	}
	switch {
	case x < y:
		return -1, true
	case x > y:
		return 1, true
	default:
		return 0, true
	}
}

// Compare returns -1, 0, or 1 comparing d to other; NaN yields ok=false.
func (d Double) Compare(other Value) (int, bool) {
	switch o := other.(type) {
	case Double:
		return compareFloat(float64(d), float64(o))
	case Int:
		return compareFloat(float64(d), float64(o))
	case Uint:
		return compareFloat(float64(d), float64(o))
	}
	return 0, false
}

// IsNaN reports whether d is NaN.
func (d Double) IsNaN() bool { return math.IsNaN(float64(d)) }

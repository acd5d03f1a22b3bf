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
	"sort"
	"strings"
)

// Unknown carries the set of expression ids whose value was not known at
// evaluation time. Unknown values merge under set union and are weaker than
// Error for the conditional operator's three-valued rule (see Conditional),
// but otherwise absorb like Error.
type Unknown struct {
	ids map[int64]bool
}

// NewUnknown creates an Unknown seeded with a single expression id.
func NewUnknown(id int64) *Unknown {
	return &Unknown{ids: map[int64]bool{id: true}}
}

// IDs returns the sorted set of expression ids carried by the unknown.
func (u *Unknown) IDs() []int64 {
	out := make([]int64, 0, len(u.ids))
	for id := range u.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Merge returns the union of the receiver and other.
func (u *Unknown) Merge(other *Unknown) *Unknown {
	if u == nil {
		return other
	}
	if other == nil {
		return u
	}
	out := make(map[int64]bool, len(u.ids)+len(other.ids))
	for id := range u.ids {
		out[id] = true
	}
	for id := range other.ids {
		out[id] = true
	}
	return &Unknown{ids: out}
}

func (u *Unknown) Kind() Kind { return KindUnknown }

func (u *Unknown) Equal(other Value) Value { return u }

func (u *Unknown) String() string {
	parts := make([]string, 0, len(u.ids))
	for _, id := range u.IDs() {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return "unknown{" + strings.Join(parts, ",") + "}"
}

// MergeUnknowns combines two possibly-nil unknowns, returning (merged, true)
// if either input was Unknown.
func MergeUnknowns(a, b Value) (*Unknown, bool) {
	ua, aIsUnk := a.(*Unknown)
	ub, bIsUnk := b.(*Unknown)
	if !aIsUnk && !bIsUnk {
		return nil, false
	}
	if aIsUnk && bIsUnk {
		return ua.Merge(ub), true
	}
	if aIsUnk {
		return ua, true
	}
	return ub, true
}

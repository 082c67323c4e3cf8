// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

// UnknownUser is the raw identifier of interactions without a user. It is mapped to a
// user id like any other identifier.
const UnknownUser = ""

// UserDict assigns user ids to raw user identifiers in first-seen order. Ids start at 1
// and count the occurrences of each identifier.
type UserDict struct {
	si  map[string]int32
	is  []string
	cnt []int
}

func NewUserDict() *UserDict {
	return &UserDict{si: map[string]int32{}}
}

// Count returns the number of distinct identifiers.
func (d *UserDict) Count() int {
	return len(d.is)
}

// Id returns the user id of s, assigning the next id if s has not been seen.
func (d *UserDict) Id(s string) int32 {
	if y, ok := d.si[s]; ok {
		d.cnt[y-1]++
		return y
	}
	y := int32(len(d.is) + 1)
	d.si[s] = y
	d.is = append(d.is, s)
	d.cnt = append(d.cnt, 1)
	return y
}

// Lookup returns the user id of s without assigning one.
func (d *UserDict) Lookup(s string) (int32, bool) {
	y, ok := d.si[s]
	return y, ok
}

// Email returns the raw identifier of a user id.
func (d *UserDict) Email(id int32) (string, bool) {
	if id < 1 || int(id) > len(d.is) {
		return "", false
	}
	return d.is[id-1], true
}

func (d *UserDict) Freq(id int32) int {
	if id < 1 || int(id) > len(d.cnt) {
		return 0
	}
	return d.cnt[id-1]
}

// MapUsers maps raw user identifiers to user ids, one per element.
func MapUsers(emails []string) []int32 {
	dict := NewUserDict()
	ids := make([]int32, len(emails))
	for i, email := range emails {
		ids[i] = dict.Id(email)
	}
	return ids
}

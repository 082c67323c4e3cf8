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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserDict(t *testing.T) {
	dict := NewUserDict()
	assert.Equal(t, int32(1), dict.Id("a"))
	assert.Equal(t, int32(2), dict.Id("b"))
	assert.Equal(t, int32(2), dict.Id("b"))
	assert.Equal(t, int32(3), dict.Id("c"))
	assert.Equal(t, int32(3), dict.Id("c"))
	assert.Equal(t, int32(3), dict.Id("c"))
	assert.Equal(t, 3, dict.Count())
	assert.Equal(t, 1, dict.Freq(1))
	assert.Equal(t, 2, dict.Freq(2))
	assert.Equal(t, 3, dict.Freq(3))
	assert.Equal(t, 0, dict.Freq(4))

	id, ok := dict.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, int32(2), id)
	_, ok = dict.Lookup("d")
	assert.False(t, ok)
	s, ok := dict.Email(3)
	assert.True(t, ok)
	assert.Equal(t, "c", s)
	_, ok = dict.Email(0)
	assert.False(t, ok)
}

func TestMapUsers(t *testing.T) {
	emails := []string{"x@ibm.com", "y@ibm.com", UnknownUser, "x@ibm.com", UnknownUser, "z@ibm.com"}
	ids := MapUsers(emails)
	assert.Equal(t, []int32{1, 2, 3, 1, 3, 4}, ids)
	// deterministic for the same order
	assert.Equal(t, ids, MapUsers(emails))
	// bijection between raw identifiers and ids
	seen := map[int32]string{}
	for i, id := range ids {
		if email, ok := seen[id]; ok {
			assert.Equal(t, email, emails[i])
		}
		seen[id] = emails[i]
	}
	assert.Len(t, seen, 4)
	assert.Empty(t, MapUsers(nil))
}

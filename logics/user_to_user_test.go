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

package logics

import (
	"testing"

	"github.com/MaxJoas/article-recommendations/dataset"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	m := dataset.NewInteractionMatrix(newTestTable())
	score, err := Similarity(m, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, score)
	score, err = Similarity(m, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, score)
	_, err = Similarity(m, 1, 6)
	assert.True(t, errors.Is(err, errors.NotFound))
	_, err = Similarity(m, 6, 1)
	assert.True(t, errors.Is(err, errors.NotFound))

	// symmetric
	for _, a := range m.Users() {
		for _, b := range m.Users() {
			ab, err := Similarity(m, a, b)
			assert.NoError(t, err)
			ba, err := Similarity(m, b, a)
			assert.NoError(t, err)
			assert.Equal(t, ab, ba)
		}
	}
}

func TestFindSimilarUsers(t *testing.T) {
	m := dataset.NewInteractionMatrix(newTestTable())
	users, err := FindSimilarUsers(m, 1)
	assert.NoError(t, err)
	assert.Equal(t, []int32{2, 4, 3, 5}, users)

	// never contains the target
	for _, userId := range m.Users() {
		users, err = FindSimilarUsers(m, userId)
		assert.NoError(t, err)
		assert.NotContains(t, users, userId)
		assert.Len(t, users, m.NumUsers()-1)
	}

	_, err = FindSimilarUsers(m, 6)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestTopSortedUsers(t *testing.T) {
	m := dataset.NewInteractionMatrix(newTestTable())
	neighbors, err := TopSortedUsers(m, 1)
	assert.NoError(t, err)
	assert.Equal(t, []Neighbor{
		{UserId: 4, Similarity: 2, NumInteractions: 4},
		{UserId: 2, Similarity: 2, NumInteractions: 3},
		{UserId: 3, Similarity: 1, NumInteractions: 2},
		{UserId: 5, Similarity: 0, NumInteractions: 1},
	}, neighbors)

	neighbors, err = TopSortedUsers(m, 5)
	assert.NoError(t, err)
	assert.Equal(t, []int32{4, 1, 2, 3}, []int32{neighbors[0].UserId, neighbors[1].UserId, neighbors[2].UserId, neighbors[3].UserId})

	_, err = TopSortedUsers(m, 0)
	assert.True(t, errors.Is(err, errors.NotFound))
}

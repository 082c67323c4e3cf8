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
	"cmp"
	"slices"

	"github.com/MaxJoas/article-recommendations/dataset"
	"github.com/juju/errors"
)

// Neighbor is a user similar to a target user.
type Neighbor struct {
	UserId int32
	// Similarity is the number of articles shared with the target user.
	Similarity int
	// NumInteractions is the number of distinct articles of the neighbor.
	NumInteractions int
}

// Similarity returns the dot product of the rows of two users.
func Similarity(m *dataset.InteractionMatrix, a, b int32) (int, error) {
	i, ok := m.UserIndex(a)
	if !ok {
		return 0, errors.NotFoundf("user %v", a)
	}
	j, ok := m.UserIndex(b)
	if !ok {
		return 0, errors.NotFoundf("user %v", b)
	}
	return m.DotAt(i, j), nil
}

func neighbors(m *dataset.InteractionMatrix, userId int32) ([]Neighbor, error) {
	target, ok := m.UserIndex(userId)
	if !ok {
		return nil, errors.NotFoundf("user %v", userId)
	}
	result := make([]Neighbor, 0, m.NumUsers()-1)
	for i := 0; i < m.NumUsers(); i++ {
		if i == target {
			continue
		}
		result = append(result, Neighbor{
			UserId:          m.UserAt(i),
			Similarity:      m.DotAt(target, i),
			NumInteractions: m.CountAt(i),
		})
	}
	return result, nil
}

// FindSimilarUsers returns all other users from most to least similar. Users with the
// same similarity keep row order.
func FindSimilarUsers(m *dataset.InteractionMatrix, userId int32) ([]int32, error) {
	result, err := neighbors(m, userId)
	if err != nil {
		return nil, errors.Trace(err)
	}
	slices.SortStableFunc(result, func(a, b Neighbor) int {
		return b.Similarity - a.Similarity
	})
	userIds := make([]int32, len(result))
	for i, neighbor := range result {
		userIds[i] = neighbor.UserId
	}
	return userIds, nil
}

// TopSortedUsers returns all other users sorted by similarity, then by number of
// interactions, both descending. Remaining ties are broken by user id.
func TopSortedUsers(m *dataset.InteractionMatrix, userId int32) ([]Neighbor, error) {
	result, err := neighbors(m, userId)
	if err != nil {
		return nil, errors.Trace(err)
	}
	slices.SortFunc(result, func(a, b Neighbor) int {
		return cmp.Or(
			cmp.Compare(b.Similarity, a.Similarity),
			cmp.Compare(b.NumInteractions, a.NumInteractions),
			cmp.Compare(a.UserId, b.UserId),
		)
	})
	return result, nil
}

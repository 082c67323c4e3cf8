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
	"github.com/MaxJoas/article-recommendations/storage/data"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecommender(t *testing.T, table *dataset.Table) *UserToUser {
	popular, err := NewPopular(table)
	require.NoError(t, err)
	return NewUserToUser(table, dataset.NewInteractionMatrix(table), popular)
}

func TestUserToUserRecommend(t *testing.T) {
	r := newTestRecommender(t, newTestTable())

	// all candidates of the first two neighbors fit
	recs, err := r.Recommend(1, 3)
	assert.NoError(t, err)
	assert.Equal(t, []string{"6.0", "7.0", "4.0"}, recs)
	// the first neighbor overflows, the more popular candidate wins
	recs, err = r.Recommend(1, 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"6.0"}, recs)
	// neighbors run out
	recs, err = r.Recommend(1, 10)
	assert.NoError(t, err)
	assert.Equal(t, []string{"6.0", "7.0", "4.0", "5.0", "8.0"}, recs)
	// candidates are ordered by popularity
	recs, err = r.Recommend(5, 10)
	assert.NoError(t, err)
	assert.Equal(t, []string{"2.0", "3.0", "6.0", "7.0", "1.0", "4.0", "5.0"}, recs)

	recs, err = r.Recommend(1, 0)
	assert.NoError(t, err)
	assert.Empty(t, recs)
	_, err = r.Recommend(6, 10)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestUserToUserNeverSeen(t *testing.T) {
	table := newTestTable()
	r := newTestRecommender(t, table)
	m := dataset.NewInteractionMatrix(table)
	for _, userId := range m.Users() {
		seen, err := m.UserArticles(userId)
		require.NoError(t, err)
		for n := 0; n <= 10; n++ {
			recs, err := r.Recommend(userId, n)
			assert.NoError(t, err)
			assert.LessOrEqual(t, len(recs), n)
			for _, articleId := range recs {
				assert.NotContains(t, seen, articleId)
			}
			// distinct
			assert.ElementsMatch(t, recs, dedup(recs))
		}
	}
}

func dedup(a []string) []string {
	seen := map[string]struct{}{}
	var b []string
	for _, v := range a {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			b = append(b, v)
		}
	}
	return b
}

func TestRecommend(t *testing.T) {
	r := newTestRecommender(t, newTestTable())
	rec, err := Recommend(r, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, &Recommendation{
		UserId:     1,
		ArticleIds: []string{"6.0", "7.0"},
		Titles:     []string{"article 6", "article 7"},
		Strategy:   StrategyUserToUser,
	}, rec)
}

func TestRecommendNewUser(t *testing.T) {
	table := newTestTable()
	r := newTestRecommender(t, table)
	popular, err := NewPopular(table)
	require.NoError(t, err)

	// a new user has no row in the matrix
	rec, err := Recommend(r, 100, 10)
	assert.NoError(t, err)
	assert.Equal(t, StrategyPopular, rec.Strategy)
	assert.Equal(t, popular.TopArticleIds(10), rec.ArticleIds)
	assert.Equal(t, popular.TopArticles(10), rec.Titles)
}

func TestUserArticles(t *testing.T) {
	var interactions []data.Interaction
	for _, email := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j",
		"k", "l", "m", "n", "o", "p", "q", "r", "s"} {
		interactions = append(interactions, data.Interaction{Email: email, ArticleId: "1430.0", Title: "using pixiedust"})
	}
	interactions = append(interactions,
		data.Interaction{Email: "t", ArticleId: "1320.0", Title: "housing (2015): united states demographic measures"},
		data.Interaction{Email: "t", ArticleId: "232.0", Title: "self-service data preparation with ibm data refinery"},
		data.Interaction{Email: "t", ArticleId: "844.0", Title: "use the cloudant-spark connector in python notebook"},
		data.Interaction{Email: "t", ArticleId: "1320.0", Title: "housing (2015): united states demographic measures"},
	)
	r := newTestRecommender(t, dataset.NewTable(interactions))

	articleIds, names, err := r.UserArticles(20)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"1320.0", "232.0", "844.0"}, articleIds)
	assert.ElementsMatch(t, []string{
		"housing (2015): united states demographic measures",
		"self-service data preparation with ibm data refinery",
		"use the cloudant-spark connector in python notebook",
	}, names)
	assert.ElementsMatch(t, names, r.ArticleNames([]string{"1320.0", "232.0", "844.0"}))

	_, _, err = r.UserArticles(21)
	assert.True(t, errors.Is(err, errors.NotFound))
}

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
	"fmt"
	"testing"

	"github.com/MaxJoas/article-recommendations/storage/data"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

var titles = map[string]string{
	"1320.0": "housing (2015): united states demographic measures",
	"232.0":  "self-service data preparation with ibm data refinery",
	"844.0":  "use the cloudant-spark connector in python notebook",
	"1430.0": "using pixiedust for fast, flexible, and easier data analysis and experimentation",
}

// newUserTwentyInteractions returns interactions where the 20th user has seen 1320.0,
// 232.0 and 844.0, and every other user has seen 1430.0.
func newUserTwentyInteractions() []data.Interaction {
	var interactions []data.Interaction
	for i := 1; i < 20; i++ {
		interactions = append(interactions, data.Interaction{
			Email:     fmt.Sprintf("user%d@example.com", i),
			ArticleId: "1430",
			Title:     titles["1430.0"],
		})
	}
	for _, articleId := range []string{"1320.0", "232.0", "844.0", "232.0"} {
		interactions = append(interactions, data.Interaction{
			Email:     "user20@example.com",
			ArticleId: articleId,
			Title:     titles[articleId],
		})
	}
	return interactions
}

func TestTable(t *testing.T) {
	table := NewTable([]data.Interaction{
		{Email: "a", ArticleId: "1430", Title: "pixiedust"},
		{Email: UnknownUser, ArticleId: "1314.0", Title: "healthcare"},
		{Email: "a", ArticleId: "1314", Title: "healthcare"},
		{Email: "b", ArticleId: "abc ", Title: "other"},
	})
	assert.Equal(t, 4, table.Len())
	assert.Equal(t, []int32{1, 2, 1, 3}, table.UserIds())
	assert.Equal(t, 3, table.NumKnownUsers())
	userId, articleId, title := table.At(2)
	assert.Equal(t, int32(1), userId)
	assert.Equal(t, "1314.0", articleId)
	assert.Equal(t, "healthcare", title)
	assert.Equal(t, "abc", table.ArticleId(3))

	userId, err := table.LookupUser(UnknownUser)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), userId)
	_, err = table.LookupUser("c")
	assert.True(t, errors.Is(err, errors.NotFound))
	email, err := table.Email(3)
	assert.NoError(t, err)
	assert.Equal(t, "b", email)
	_, err = table.Email(4)
	assert.True(t, errors.Is(err, errors.NotFound))

	// user ids are modified on copies only
	userIds := table.UserIds()
	userIds[0] = 100
	assert.Equal(t, int32(1), table.UserId(0))
}

func TestTableSplit(t *testing.T) {
	table := NewTable(newUserTwentyInteractions())
	train, test := table.Split(19)
	assert.Equal(t, 19, train.Len())
	assert.Equal(t, 4, test.Len())
	assert.Equal(t, int32(20), test.UserId(0))
	// user ids are shared
	userId, err := test.LookupUser("user1@example.com")
	assert.NoError(t, err)
	assert.Equal(t, int32(1), userId)

	train, test = table.Split(DefaultTrainSize)
	assert.Equal(t, table.Len(), train.Len())
	assert.Zero(t, test.Len())
	assert.Equal(t, 2, table.Slice(3, 5).Len())
	assert.Zero(t, table.Slice(5, 3).Len())
}

func TestArticleNames(t *testing.T) {
	table := NewTable(newUserTwentyInteractions())
	assert.Equal(t, []string{titles["1320.0"], titles["232.0"], titles["844.0"]},
		table.ArticleNames([]string{"1320.0", "232.0", "844.0"}))
	assert.Equal(t, []string{titles["232.0"]}, table.ArticleNames([]string{"232", "232.0"}))
	assert.Empty(t, table.ArticleNames([]string{"0.0"}))

	title, err := table.ArticleTitle("844")
	assert.NoError(t, err)
	assert.Equal(t, titles["844.0"], title)
	_, err = table.ArticleTitle("0")
	assert.True(t, errors.Is(err, errors.NotFound))

	assert.Equal(t, []string{titles["844.0"], titles["1430.0"]},
		table.ArticleTitles([]string{"844.0", "0.0", "1430.0"}))
}

func TestArticleTitlesShared(t *testing.T) {
	table := NewTable([]data.Interaction{
		{Email: "a", ArticleId: "1", Title: "same"},
		{Email: "a", ArticleId: "2", Title: "same"},
	})
	assert.Equal(t, []string{"same", "same"}, table.ArticleTitles([]string{"1", "2"}))
	assert.Equal(t, []string{"same"}, table.ArticleNames([]string{"1", "2"}))
}

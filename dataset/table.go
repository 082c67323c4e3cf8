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
	"github.com/MaxJoas/article-recommendations/storage/data"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"modernc.org/strutil"
)

// DefaultTrainSize is the number of leading interactions used for training.
const DefaultTrainSize = 40000

// Table is an immutable interaction table with raw user identifiers replaced by user
// ids. Slices of a table share its user ids.
type Table struct {
	users      *UserDict
	userIds    []int32
	articleIds []string
	titles     []string
}

// NewTable maps users of the interactions to user ids in first-seen order and normalizes
// article ids.
func NewTable(interactions []data.Interaction) *Table {
	pool := strutil.NewPool()
	t := &Table{
		users:      NewUserDict(),
		userIds:    make([]int32, len(interactions)),
		articleIds: make([]string, len(interactions)),
		titles:     make([]string, len(interactions)),
	}
	for i, interaction := range interactions {
		t.userIds[i] = t.users.Id(interaction.Email)
		t.articleIds[i] = pool.Align(NormalizeArticleId(interaction.ArticleId))
		t.titles[i] = pool.Align(interaction.Title)
	}
	return t
}

// Len returns the number of interactions.
func (t *Table) Len() int {
	return len(t.userIds)
}

// At returns the i-th interaction.
func (t *Table) At(i int) (userId int32, articleId, title string) {
	return t.userIds[i], t.articleIds[i], t.titles[i]
}

func (t *Table) UserId(i int) int32 {
	return t.userIds[i]
}

func (t *Table) ArticleId(i int) string {
	return t.articleIds[i]
}

func (t *Table) Title(i int) string {
	return t.titles[i]
}

// UserIds returns the user id of each interaction.
func (t *Table) UserIds() []int32 {
	userIds := make([]int32, len(t.userIds))
	copy(userIds, t.userIds)
	return userIds
}

// LookupUser returns the user id of a raw user identifier.
func (t *Table) LookupUser(email string) (int32, error) {
	if userId, ok := t.users.Lookup(email); ok {
		return userId, nil
	}
	return 0, errors.NotFoundf("user %q", email)
}

// Email returns the raw identifier of a user id.
func (t *Table) Email(userId int32) (string, error) {
	if email, ok := t.users.Email(userId); ok {
		return email, nil
	}
	return "", errors.NotFoundf("user %v", userId)
}

// NumKnownUsers returns the number of user ids assigned for the source table.
func (t *Table) NumKnownUsers() int {
	return t.users.Count()
}

// Slice returns interactions [begin, end) as a new table.
func (t *Table) Slice(begin, end int) *Table {
	begin = min(max(begin, 0), t.Len())
	end = min(max(end, begin), t.Len())
	return &Table{
		users:      t.users,
		userIds:    t.userIds[begin:end:end],
		articleIds: t.articleIds[begin:end:end],
		titles:     t.titles[begin:end:end],
	}
}

// Split returns the first trainSize interactions as the training table and the rest as
// the test table.
func (t *Table) Split(trainSize int) (train, test *Table) {
	return t.Slice(0, trainSize), t.Slice(trainSize, t.Len())
}

// ArticleTitle returns the title of the first interaction with an article.
func (t *Table) ArticleTitle(articleId string) (string, error) {
	articleId = NormalizeArticleId(articleId)
	for i, id := range t.articleIds {
		if id == articleId {
			return t.titles[i], nil
		}
	}
	return "", errors.NotFoundf("article %v", articleId)
}

// ArticleNames returns the distinct titles of interactions with the given articles in
// order of first interaction.
func (t *Table) ArticleNames(articleIds []string) []string {
	ids := mapset.NewThreadUnsafeSet[string]()
	for _, articleId := range articleIds {
		ids.Add(NormalizeArticleId(articleId))
	}
	names := make([]string, 0, len(articleIds))
	seen := mapset.NewThreadUnsafeSet[string]()
	for i, articleId := range t.articleIds {
		if ids.Contains(articleId) && seen.Add(t.titles[i]) {
			names = append(names, t.titles[i])
		}
	}
	return names
}

// ArticleTitles returns the title of each article, see ArticleTitle. Articles without
// interactions are skipped.
func (t *Table) ArticleTitles(articleIds []string) []string {
	first := make(map[string]string)
	for i, articleId := range t.articleIds {
		if _, exist := first[articleId]; !exist {
			first[articleId] = t.titles[i]
		}
	}
	titles := make([]string, 0, len(articleIds))
	for _, articleId := range articleIds {
		if title, exist := first[NormalizeArticleId(articleId)]; exist {
			titles = append(titles, title)
		}
	}
	return titles
}

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
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/mat"
)

// InteractionMatrix is a binary user-by-article matrix. Rows are users sorted by user id
// and columns are articles sorted by CompareArticleIds. An entry is 1 iff the user has
// interacted with the article at least once. The matrix is never modified after
// construction.
type InteractionMatrix struct {
	users        []int32
	articles     []string
	userIndex    map[int32]int
	articleIndex map[string]int
	rows         []*bitset.BitSet
}

// NewInteractionMatrix builds the interaction matrix of a table. An empty table results
// in a matrix with 0 rows and 0 columns.
func NewInteractionMatrix(t *Table) *InteractionMatrix {
	users := lo.Uniq(t.userIds)
	slices.Sort(users)
	articles := lo.Uniq(t.articleIds)
	slices.SortFunc(articles, CompareArticleIds)
	m := newMatrix(users, articles)
	for i := range m.rows {
		m.rows[i] = bitset.New(uint(len(articles)))
	}
	for i := range t.userIds {
		m.rows[m.userIndex[t.userIds[i]]].Set(uint(m.articleIndex[t.articleIds[i]]))
	}
	return m
}

func newMatrix(users []int32, articles []string) *InteractionMatrix {
	m := &InteractionMatrix{
		users:        users,
		articles:     articles,
		userIndex:    make(map[int32]int, len(users)),
		articleIndex: make(map[string]int, len(articles)),
		rows:         make([]*bitset.BitSet, len(users)),
	}
	for i, userId := range users {
		m.userIndex[userId] = i
	}
	for j, articleId := range articles {
		m.articleIndex[articleId] = j
	}
	return m
}

// Shape returns the number of rows and columns.
func (m *InteractionMatrix) Shape() (int, int) {
	return len(m.users), len(m.articles)
}

func (m *InteractionMatrix) NumUsers() int {
	return len(m.users)
}

func (m *InteractionMatrix) NumArticles() int {
	return len(m.articles)
}

// Users returns user ids in row order.
func (m *InteractionMatrix) Users() []int32 {
	return slices.Clone(m.users)
}

// Articles returns article ids in column order.
func (m *InteractionMatrix) Articles() []string {
	return slices.Clone(m.articles)
}

func (m *InteractionMatrix) UserAt(i int) int32 {
	return m.users[i]
}

func (m *InteractionMatrix) ArticleAt(j int) string {
	return m.articles[j]
}

// UserIndex returns the row of a user.
func (m *InteractionMatrix) UserIndex(userId int32) (int, bool) {
	i, ok := m.userIndex[userId]
	return i, ok
}

// ArticleIndex returns the column of an article.
func (m *InteractionMatrix) ArticleIndex(articleId string) (int, bool) {
	j, ok := m.articleIndex[NormalizeArticleId(articleId)]
	return j, ok
}

func (m *InteractionMatrix) HasUser(userId int32) bool {
	_, ok := m.userIndex[userId]
	return ok
}

func (m *InteractionMatrix) HasArticle(articleId string) bool {
	_, ok := m.ArticleIndex(articleId)
	return ok
}

func (m *InteractionMatrix) row(userId int32) (*bitset.BitSet, error) {
	i, ok := m.userIndex[userId]
	if !ok {
		return nil, errors.NotFoundf("user %v", userId)
	}
	return m.rows[i], nil
}

// Get returns the entry of a user and an article.
func (m *InteractionMatrix) Get(userId int32, articleId string) (int, error) {
	row, err := m.row(userId)
	if err != nil {
		return 0, errors.Trace(err)
	}
	j, ok := m.ArticleIndex(articleId)
	if !ok {
		return 0, errors.NotFoundf("article %v", articleId)
	}
	if row.Test(uint(j)) {
		return 1, nil
	}
	return 0, nil
}

// At returns the entry at row i and column j.
func (m *InteractionMatrix) At(i, j int) int {
	if m.rows[i].Test(uint(j)) {
		return 1
	}
	return 0
}

// RowSum returns the number of distinct articles of a user.
func (m *InteractionMatrix) RowSum(userId int32) (int, error) {
	row, err := m.row(userId)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return int(row.Count()), nil
}

// CountAt returns the row sum of row i.
func (m *InteractionMatrix) CountAt(i int) int {
	return int(m.rows[i].Count())
}

// DotAt returns the dot product of rows i and j.
func (m *InteractionMatrix) DotAt(i, j int) int {
	return int(m.rows[i].IntersectionCardinality(m.rows[j]))
}

// UserArticles returns the articles of a user in column order.
func (m *InteractionMatrix) UserArticles(userId int32) ([]string, error) {
	row, err := m.row(userId)
	if err != nil {
		return nil, errors.Trace(err)
	}
	articles := make([]string, 0, row.Count())
	for j, ok := row.NextSet(0); ok; j, ok = row.NextSet(j + 1) {
		articles = append(articles, m.articles[j])
	}
	return articles, nil
}

// Dense returns the matrix as a dense float matrix, or nil if the matrix is empty.
func (m *InteractionMatrix) Dense() *mat.Dense {
	if len(m.users) == 0 || len(m.articles) == 0 {
		return nil
	}
	dense := mat.NewDense(len(m.users), len(m.articles), nil)
	for i, row := range m.rows {
		for j, ok := row.NextSet(0); ok; j, ok = row.NextSet(j + 1) {
			dense.Set(i, int(j), 1)
		}
	}
	return dense
}

// Equal reports whether two matrices have the same users, articles and entries.
func (m *InteractionMatrix) Equal(other *InteractionMatrix) bool {
	if !slices.Equal(m.users, other.users) || !slices.Equal(m.articles, other.articles) {
		return false
	}
	for i := range m.rows {
		if !m.rows[i].Equal(other.rows[i]) {
			return false
		}
	}
	return true
}

type matrixSnapshot struct {
	Users    []int32    `msgpack:"users"`
	Articles []string   `msgpack:"articles"`
	Rows     [][]uint64 `msgpack:"rows"`
}

// Marshal encodes the matrix with msgpack.
func (m *InteractionMatrix) Marshal() ([]byte, error) {
	snapshot := matrixSnapshot{
		Users:    m.users,
		Articles: m.articles,
		Rows:     make([][]uint64, len(m.rows)),
	}
	for i, row := range m.rows {
		snapshot.Rows[i] = row.Words()
	}
	b, err := msgpack.Marshal(&snapshot)
	return b, errors.Trace(err)
}

// UnmarshalInteractionMatrix decodes a matrix encoded by Marshal.
func UnmarshalInteractionMatrix(b []byte) (*InteractionMatrix, error) {
	var snapshot matrixSnapshot
	if err := msgpack.Unmarshal(b, &snapshot); err != nil {
		return nil, errors.Trace(err)
	}
	if len(snapshot.Rows) != len(snapshot.Users) {
		return nil, errors.NotValidf("snapshot with %d rows and %d users", len(snapshot.Rows), len(snapshot.Users))
	}
	if !slices.IsSorted(snapshot.Users) || !slices.IsSortedFunc(snapshot.Articles, CompareArticleIds) {
		return nil, errors.NotValidf("snapshot with unsorted users or articles")
	}
	m := newMatrix(snapshot.Users, snapshot.Articles)
	n := uint(len(snapshot.Articles))
	numWords := (len(snapshot.Articles) + 63) / 64
	for i, words := range snapshot.Rows {
		if len(words) != numWords {
			return nil, errors.NotValidf("snapshot row %d with %d words", i, len(words))
		}
		if n%64 != 0 && words[numWords-1]>>(n%64) != 0 {
			return nil, errors.NotValidf("snapshot row %d out of range", i)
		}
		row := bitset.FromWithLength(n, words)
		m.rows[i] = row
	}
	return m, nil
}

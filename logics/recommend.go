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
	"github.com/MaxJoas/article-recommendations/base/log"
	"github.com/MaxJoas/article-recommendations/dataset"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

type Strategy string

const (
	StrategyUserToUser Strategy = "user_to_user"
	StrategyPopular    Strategy = "popular"
)

// Recommendation is a set of articles recommended to a user. Titles are resolved per
// article id.
type Recommendation struct {
	UserId     int32
	ArticleIds []string
	Titles     []string
	Strategy   Strategy
}

// UserToUser recommends articles seen by similar users.
type UserToUser struct {
	table   *dataset.Table
	matrix  *dataset.InteractionMatrix
	popular *Popular
}

// NewUserToUser creates a recommender. Titles are looked up in table, similarities are
// computed on matrix and candidates are ranked by popular.
func NewUserToUser(table *dataset.Table, matrix *dataset.InteractionMatrix, popular *Popular) *UserToUser {
	return &UserToUser{
		table:   table,
		matrix:  matrix,
		popular: popular,
	}
}

// UserArticles returns the articles seen by a user and their distinct titles.
func (r *UserToUser) UserArticles(userId int32) ([]string, []string, error) {
	articleIds, err := r.matrix.UserArticles(userId)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	return articleIds, r.table.ArticleNames(articleIds), nil
}

// ArticleNames returns the distinct titles of articles.
func (r *UserToUser) ArticleNames(articleIds []string) []string {
	return r.table.ArticleNames(articleIds)
}

// Recommend returns at most m articles not seen by a user. Neighbors are visited in the
// order of TopSortedUsers. All unseen articles of a neighbor are taken if they fit,
// otherwise the most popular of them fill the remaining slots. Fewer than m articles are
// returned if neighbors run out.
func (r *UserToUser) Recommend(userId int32, m int) ([]string, error) {
	seenIds, err := r.matrix.UserArticles(userId)
	if err != nil {
		return nil, errors.Trace(err)
	}
	neighbors, err := TopSortedUsers(r.matrix, userId)
	if err != nil {
		return nil, errors.Trace(err)
	}
	seen := mapset.NewThreadUnsafeSet(seenIds...)
	recommended := mapset.NewThreadUnsafeSet[string]()
	recs := make([]string, 0, max(m, 0))
	for _, neighbor := range neighbors {
		if len(recs) >= m {
			break
		}
		articleIds, err := r.matrix.UserArticles(neighbor.UserId)
		if err != nil {
			return nil, errors.Trace(err)
		}
		candidates := make([]string, 0, len(articleIds))
		for _, articleId := range articleIds {
			if !seen.Contains(articleId) && !recommended.Contains(articleId) {
				candidates = append(candidates, articleId)
			}
		}
		r.popular.Sort(candidates)
		if len(recs)+len(candidates) > m {
			candidates = candidates[:m-len(recs)]
		}
		for _, articleId := range candidates {
			recs = append(recs, articleId)
			recommended.Add(articleId)
		}
	}
	return recs, nil
}

// Recommend recommends m articles to a user. Users without interactions fall back to
// the most popular articles.
func Recommend(r *UserToUser, userId int32, m int) (*Recommendation, error) {
	rowSum, err := r.matrix.RowSum(userId)
	if err != nil && !errors.Is(err, errors.NotFound) {
		return nil, errors.Trace(err)
	}
	if err != nil || rowSum == 0 {
		log.Logger().Debug("recommend popular articles to cold start user", zap.Int32("user_id", userId))
		return &Recommendation{
			UserId:     userId,
			ArticleIds: r.popular.TopArticleIds(m),
			Titles:     r.popular.TopArticles(m),
			Strategy:   StrategyPopular,
		}, nil
	}
	articleIds, err := r.Recommend(userId, m)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &Recommendation{
		UserId:     userId,
		ArticleIds: articleIds,
		Titles:     r.table.ArticleTitles(articleIds),
		Strategy:   StrategyUserToUser,
	}, nil
}

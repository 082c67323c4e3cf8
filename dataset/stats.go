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
	"github.com/juju/errors"
	"github.com/montanaflynn/stats"
	"github.com/samber/lo"
)

// ErrEmptyTable is returned by computations that are meaningless without interactions.
var ErrEmptyTable = errors.NewNotValid(nil, "empty interaction table")

// Stats summarizes an interaction table and the article catalog. Interactions of the
// unknown user are counted in NumInteractions and article counts only.
type Stats struct {
	NumInteractions      int
	NumUsers             int
	NumArticles          int
	NumCatalogArticles   int
	NumDuplicateArticles int
	MedianInteractions   float64
	MaxInteractions      int
	MostViewedArticle    string
	MostViewedCount      int
}

// Describe computes descriptive statistics. The catalog is optional.
func Describe(t *Table, catalog *Catalog) (Stats, error) {
	if t.Len() == 0 {
		return Stats{}, errors.Trace(ErrEmptyTable)
	}
	s := Stats{NumInteractions: t.Len()}

	// interactions per user
	userCounts := make(map[int32]int)
	for _, userId := range t.userIds {
		if email, _ := t.users.Email(userId); email == UnknownUser {
			continue
		}
		userCounts[userId]++
	}
	s.NumUsers = len(userCounts)
	if s.NumUsers > 0 {
		counts := lo.Map(lo.Values(userCounts), func(c int, _ int) float64 { return float64(c) })
		median, err := stats.Median(counts)
		if err != nil {
			return Stats{}, errors.Trace(err)
		}
		s.MedianInteractions = median
		s.MaxInteractions = lo.Max(lo.Values(userCounts))
	}

	// interactions per article, ties go to the first encountered article
	articleCounts := make(map[string]int)
	for _, articleId := range t.articleIds {
		articleCounts[articleId]++
	}
	s.NumArticles = len(articleCounts)
	for _, articleId := range t.articleIds {
		if articleCounts[articleId] > s.MostViewedCount {
			s.MostViewedArticle = articleId
			s.MostViewedCount = articleCounts[articleId]
		}
	}

	if catalog != nil {
		s.NumCatalogArticles = catalog.Count()
		s.NumDuplicateArticles = catalog.Duplicates()
	}
	return s, nil
}

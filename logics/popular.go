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
	"slices"

	"github.com/MaxJoas/article-recommendations/dataset"
	"github.com/juju/errors"
)

// Popular ranks articles by the number of interactions. Ties are broken by the order
// in which articles are first encountered in the table.
type Popular struct {
	articles  []string
	titles    []string
	allTitles [][]string
	counts    []int
	rank      map[string]int
}

func NewPopular(t *dataset.Table) (*Popular, error) {
	if t.Len() == 0 {
		return nil, errors.Trace(dataset.ErrEmptyTable)
	}
	p := &Popular{rank: make(map[string]int)}
	for i := 0; i < t.Len(); i++ {
		_, articleId, title := t.At(i)
		if j, exist := p.rank[articleId]; exist {
			p.counts[j]++
			if !slices.Contains(p.allTitles[j], title) {
				p.allTitles[j] = append(p.allTitles[j], title)
			}
			continue
		}
		p.rank[articleId] = len(p.articles)
		p.articles = append(p.articles, articleId)
		p.titles = append(p.titles, title)
		p.allTitles = append(p.allTitles, []string{title})
		p.counts = append(p.counts, 1)
	}
	// articles are in encounter order, a stable sort keeps it for ties
	order := make([]int, len(p.articles))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return p.counts[b] - p.counts[a]
	})
	articles := make([]string, len(order))
	titles := make([]string, len(order))
	allTitles := make([][]string, len(order))
	counts := make([]int, len(order))
	for r, i := range order {
		articles[r], titles[r], allTitles[r], counts[r] = p.articles[i], p.titles[i], p.allTitles[i], p.counts[i]
		p.rank[articles[r]] = r
	}
	p.articles, p.titles, p.allTitles, p.counts = articles, titles, allTitles, counts
	return p, nil
}

// Len returns the number of distinct articles.
func (p *Popular) Len() int {
	return len(p.articles)
}

// TopArticleIds returns the n most popular articles.
func (p *Popular) TopArticleIds(n int) []string {
	n = min(max(n, 0), len(p.articles))
	return slices.Clone(p.articles[:n])
}

// TopArticles returns the titles of the n most popular articles, one per article and
// aligned with TopArticleIds. An article logged under several titles is reported with
// the first one, see TopArticleTitles for all of them.
func (p *Popular) TopArticles(n int) []string {
	n = min(max(n, 0), len(p.titles))
	return slices.Clone(p.titles[:n])
}

// TopArticleTitles returns every distinct title of each of the n most popular articles in
// rank order. Titles shared by different articles are repeated.
func (p *Popular) TopArticleTitles(n int) []string {
	n = min(max(n, 0), len(p.allTitles))
	return slices.Concat(p.allTitles[:n]...)
}

// Titles returns the distinct titles an article was logged under, in encounter order.
func (p *Popular) Titles(articleId string) []string {
	if r, ok := p.rank[dataset.NormalizeArticleId(articleId)]; ok {
		return slices.Clone(p.allTitles[r])
	}
	return nil
}

// Rank returns the position of an article in the ranking, starting at 0.
func (p *Popular) Rank(articleId string) (int, error) {
	if r, ok := p.rank[dataset.NormalizeArticleId(articleId)]; ok {
		return r, nil
	}
	return 0, errors.NotFoundf("article %v", articleId)
}

// Count returns the number of interactions with an article.
func (p *Popular) Count(articleId string) int {
	if r, ok := p.rank[dataset.NormalizeArticleId(articleId)]; ok {
		return p.counts[r]
	}
	return 0
}

// Sort orders article ids by popularity in place. Unknown articles go last in their
// original order.
func (p *Popular) Sort(articleIds []string) {
	slices.SortStableFunc(articleIds, func(a, b string) int {
		ra, okA := p.rank[a]
		rb, okB := p.rank[b]
		switch {
		case okA && okB:
			return ra - rb
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
}

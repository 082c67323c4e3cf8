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
	"github.com/juju/errors"
)

// Catalog is the article catalog with one entry per article id. The first occurrence of
// an article id wins.
type Catalog struct {
	articles   []data.Article
	index      map[string]int
	duplicates int
}

func NewCatalog(articles []data.Article) *Catalog {
	c := &Catalog{
		articles: make([]data.Article, 0, len(articles)),
		index:    make(map[string]int, len(articles)),
	}
	for _, article := range articles {
		article.ArticleId = NormalizeArticleId(article.ArticleId)
		if _, exist := c.index[article.ArticleId]; exist {
			c.duplicates++
			continue
		}
		c.index[article.ArticleId] = len(c.articles)
		c.articles = append(c.articles, article)
	}
	return c
}

// Count returns the number of distinct articles.
func (c *Catalog) Count() int {
	return len(c.articles)
}

// Duplicates returns the number of removed duplicate entries.
func (c *Catalog) Duplicates() int {
	return c.duplicates
}

func (c *Catalog) Get(articleId string) (data.Article, error) {
	if i, ok := c.index[NormalizeArticleId(articleId)]; ok {
		return c.articles[i], nil
	}
	return data.Article{}, errors.NotFoundf("article %v", articleId)
}

// Articles returns the deduplicated entries in catalog order.
func (c *Catalog) Articles() []data.Article {
	articles := make([]data.Article, len(c.articles))
	copy(articles, c.articles)
	return articles
}

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
	"io"
	"os"

	"github.com/MaxJoas/article-recommendations/base"
	"github.com/MaxJoas/article-recommendations/base/log"
	"github.com/MaxJoas/article-recommendations/storage/data"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Column names of the interaction table.
const (
	ColumnArticleId = "article_id"
	ColumnTitle     = "title"
	ColumnEmail     = "email"
)

// Column names of the article catalog.
const (
	ColumnDocBody        = "doc_body"
	ColumnDocDescription = "doc_description"
	ColumnDocFullName    = "doc_full_name"
	ColumnDocStatus      = "doc_status"
)

// indexColumns are row numbering columns written by dataframe exports.
var indexColumns = []string{"", "Unnamed: 0"}

type header map[string]int

func readTable(r io.Reader, required []string, handler func(line int, h header, fields []string) error) error {
	var (
		h          header
		numCols    int
		handlerErr error
	)
	if err := base.ReadCSV(r, ",", func(i int, fields []string) bool {
		if i == 0 {
			numCols = len(fields)
			h = make(header, len(fields))
			for j, name := range fields {
				if lo.Contains(indexColumns, name) {
					continue
				}
				h[name] = j
			}
			for _, name := range required {
				if _, ok := h[name]; !ok {
					handlerErr = errors.NotValidf("column %q", name)
					return false
				}
			}
			return true
		}
		if len(fields) != numCols {
			handlerErr = errors.NotValidf("record %d with %d fields, expected %d", i, len(fields), numCols)
			return false
		}
		if handlerErr = handler(i, h, fields); handlerErr != nil {
			return false
		}
		return true
	}); err != nil {
		return errors.Trace(err)
	}
	if handlerErr != nil {
		return errors.Trace(handlerErr)
	}
	if h == nil {
		return errors.NotValidf("table without header")
	}
	return nil
}

func (h header) get(fields []string, name string) string {
	if j, ok := h[name]; ok {
		return fields[j]
	}
	return ""
}

// LoadInteractions reads the interaction table. Article ids are normalized and index
// columns are discarded.
func LoadInteractions(r io.Reader) ([]data.Interaction, error) {
	var interactions []data.Interaction
	err := readTable(r, []string{ColumnArticleId, ColumnTitle, ColumnEmail}, func(_ int, h header, fields []string) error {
		interactions = append(interactions, data.Interaction{
			Email:     h.get(fields, ColumnEmail),
			ArticleId: NormalizeArticleId(h.get(fields, ColumnArticleId)),
			Title:     h.get(fields, ColumnTitle),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Annotate(err, "failed to load interactions")
	}
	return interactions, nil
}

// LoadArticles reads the article catalog. Duplicates are kept, see NewCatalog.
func LoadArticles(r io.Reader) ([]data.Article, error) {
	var articles []data.Article
	err := readTable(r, []string{ColumnArticleId}, func(_ int, h header, fields []string) error {
		articles = append(articles, data.Article{
			ArticleId:      NormalizeArticleId(h.get(fields, ColumnArticleId)),
			DocBody:        h.get(fields, ColumnDocBody),
			DocDescription: h.get(fields, ColumnDocDescription),
			DocFullName:    h.get(fields, ColumnDocFullName),
			DocStatus:      h.get(fields, ColumnDocStatus),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Annotate(err, "failed to load articles")
	}
	return articles, nil
}

func LoadInteractionsFile(path string) ([]data.Interaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	interactions, err := LoadInteractions(file)
	if err != nil {
		return nil, errors.Annotate(err, path)
	}
	log.Logger().Info("load interactions",
		zap.String("path", path),
		zap.Int("n_interactions", len(interactions)))
	return interactions, nil
}

func LoadArticlesFile(path string) ([]data.Article, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	articles, err := LoadArticles(file)
	if err != nil {
		return nil, errors.Annotate(err, path)
	}
	log.Logger().Info("load articles",
		zap.String("path", path),
		zap.Int("n_articles", len(articles)))
	return articles, nil
}

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

package data

import (
	"context"
	"database/sql"

	"github.com/MaxJoas/article-recommendations/storage"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SQLDriver int

const (
	MySQL SQLDriver = iota
	Postgres
	SQLite
)

// batchSize bounds the number of rows per INSERT statement to stay below the bind
// variable limits of the drivers.
const batchSize = 1000

// SQLInteraction is the row of the interactions table. Seq preserves the order of the
// interaction log.
type SQLInteraction struct {
	Seq       int64  `gorm:"column:seq;primaryKey;autoIncrement"`
	Email     string `gorm:"column:email;type:varchar(256)"`
	ArticleId string `gorm:"column:article_id;type:varchar(256);index"`
	Title     string `gorm:"column:title;type:text"`
}

// SQLArticle is the row of the articles table.
type SQLArticle struct {
	Seq            int64  `gorm:"column:seq;primaryKey;autoIncrement"`
	ArticleId      string `gorm:"column:article_id;type:varchar(256);uniqueIndex"`
	DocBody        string `gorm:"column:doc_body;type:text"`
	DocDescription string `gorm:"column:doc_description;type:text"`
	DocFullName    string `gorm:"column:doc_full_name;type:text"`
	DocStatus      string `gorm:"column:doc_status;type:varchar(256)"`
}

type SQLDatabase struct {
	storage.TablePrefix
	gormDB *gorm.DB
	client *sql.DB
	driver SQLDriver
}

func (d *SQLDatabase) Init() error {
	if err := d.gormDB.AutoMigrate(&SQLInteraction{}, &SQLArticle{}); err != nil {
		return errors.Trace(err)
	}
	return nil
}

func (d *SQLDatabase) Ping() error {
	return d.client.Ping()
}

func (d *SQLDatabase) Close() error {
	return d.client.Close()
}

func (d *SQLDatabase) Purge() error {
	tables := []string{d.InteractionsTable(), d.ArticlesTable()}
	for _, tableName := range tables {
		if !d.gormDB.Migrator().HasTable(tableName) {
			continue
		}
		if err := d.gormDB.Exec("DELETE FROM " + tableName).Error; err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func (d *SQLDatabase) BatchInsertInteractions(ctx context.Context, interactions []Interaction) error {
	if len(interactions) == 0 {
		return nil
	}
	rows := lo.Map(interactions, func(interaction Interaction, _ int) SQLInteraction {
		return SQLInteraction{
			Email:     interaction.Email,
			ArticleId: interaction.ArticleId,
			Title:     interaction.Title,
		}
	})
	if err := d.gormDB.WithContext(ctx).CreateInBatches(rows, batchSize).Error; err != nil {
		return errors.Trace(err)
	}
	return nil
}

func (d *SQLDatabase) BatchInsertArticles(ctx context.Context, articles []Article) error {
	if len(articles) == 0 {
		return nil
	}
	// collapse duplicates in the batch, keeping the first occurrence
	articles = lo.UniqBy(articles, func(article Article) string {
		return article.ArticleId
	})
	rows := lo.Map(articles, func(article Article, _ int) SQLArticle {
		return SQLArticle{
			ArticleId:      article.ArticleId,
			DocBody:        article.DocBody,
			DocDescription: article.DocDescription,
			DocFullName:    article.DocFullName,
			DocStatus:      article.DocStatus,
		}
	})
	if err := d.gormDB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "article_id"}}, DoNothing: true}).
		CreateInBatches(rows, batchSize).Error; err != nil {
		return errors.Trace(err)
	}
	return nil
}

func (d *SQLDatabase) GetInteractions(ctx context.Context) ([]Interaction, error) {
	var rows []SQLInteraction
	if err := d.gormDB.WithContext(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, errors.Trace(err)
	}
	return lo.Map(rows, func(row SQLInteraction, _ int) Interaction {
		return Interaction{
			Email:     row.Email,
			ArticleId: row.ArticleId,
			Title:     row.Title,
		}
	}), nil
}

func (d *SQLDatabase) GetArticles(ctx context.Context) ([]Article, error) {
	var rows []SQLArticle
	if err := d.gormDB.WithContext(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, errors.Trace(err)
	}
	return lo.Map(rows, func(row SQLArticle, _ int) Article {
		return Article{
			ArticleId:      row.ArticleId,
			DocBody:        row.DocBody,
			DocDescription: row.DocDescription,
			DocFullName:    row.DocFullName,
			DocStatus:      row.DocStatus,
		}
	}), nil
}

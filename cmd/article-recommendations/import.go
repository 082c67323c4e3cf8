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


package main

import (
	"fmt"

	"github.com/MaxJoas/article-recommendations/base/log"
	"github.com/MaxJoas/article-recommendations/dataset"
	"github.com/MaxJoas/article-recommendations/storage/data"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCommand.AddCommand(importCommand)
	importCommand.Flags().Bool("purge", false, "remove existing rows before importing")
}

var importCommand = &cobra.Command{
	Use:   "import",
	Short: "Import the CSV exports into the data store.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if globalConfig.Database.DataStore == "" {
			return errors.NotValidf("empty data store")
		}
		interactions, err := dataset.LoadInteractionsFile(globalConfig.Dataset.InteractionsPath)
		if err != nil {
			return errors.Trace(err)
		}
		var articles []data.Article
		if globalConfig.Dataset.ArticlesPath != "" {
			if articles, err = dataset.LoadArticlesFile(globalConfig.Dataset.ArticlesPath); err != nil {
				return errors.Trace(err)
			}
		}

		log.Logger().Info("connect data store",
			zap.String("data_store", log.RedactDBURL(globalConfig.Database.DataStore)))
		database, err := data.Open(globalConfig.Database.DataStore, globalConfig.Database.TablePrefix)
		if err != nil {
			return errors.Trace(err)
		}
		defer database.Close()
		if err = database.Init(); err != nil {
			return errors.Trace(err)
		}
		if purge, _ := cmd.Flags().GetBool("purge"); purge {
			if err = database.Purge(); err != nil {
				return errors.Trace(err)
			}
		}
		if err = database.BatchInsertArticles(ctx, articles); err != nil {
			return errors.Trace(err)
		}
		if err = database.BatchInsertInteractions(ctx, interactions); err != nil {
			return errors.Trace(err)
		}
		log.Logger().Info("import dataset",
			zap.Int("n_interactions", len(interactions)),
			zap.Int("n_articles", len(articles)))
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d interactions and %d articles\n", len(interactions), len(articles))
		return nil
	},
}

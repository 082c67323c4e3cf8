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
	"strconv"

	"github.com/MaxJoas/article-recommendations/dataset"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	rootCommand.AddCommand(statsCommand)
}

var statsCommand = &cobra.Command{
	Use:   "stats",
	Short: "Describe the interaction table and the article catalog.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd.Context(), globalConfig)
		if err != nil {
			return errors.Trace(err)
		}
		s, err := dataset.Describe(env.table, env.catalog)
		if err != nil {
			return errors.Trace(err)
		}
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("statistic", "value")
		rows := [][]string{
			{"interactions", strconv.Itoa(s.NumInteractions)},
			{"users", strconv.Itoa(s.NumUsers)},
			{"articles with interactions", strconv.Itoa(s.NumArticles)},
			{"articles in catalog", strconv.Itoa(s.NumCatalogArticles)},
			{"duplicate catalog articles", strconv.Itoa(s.NumDuplicateArticles)},
			{"median interactions per user", strconv.FormatFloat(s.MedianInteractions, 'f', 1, 64)},
			{"max interactions per user", strconv.Itoa(s.MaxInteractions)},
			{"most viewed article", s.MostViewedArticle},
			{"most viewed count", strconv.Itoa(s.MostViewedCount)},
		}
		if err = table.Bulk(rows); err != nil {
			return errors.Trace(err)
		}
		return errors.Trace(table.Render())
	},
}

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
	"strconv"
	"strings"

	"github.com/MaxJoas/article-recommendations/dataset"
	"github.com/MaxJoas/article-recommendations/logics"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	rootCommand.AddCommand(topCommand)
	rootCommand.AddCommand(similarCommand)
	rootCommand.AddCommand(recommendCommand)
	topCommand.Flags().IntP("num", "n", 0, "number of articles (default from config)")
	similarCommand.Flags().IntP("num", "n", 0, "number of neighbors (default from config)")
	similarCommand.Flags().Bool("email", false, "identify the user by email")
	recommendCommand.Flags().IntP("num", "m", 0, "number of recommendations (default from config)")
	recommendCommand.Flags().Bool("email", false, "identify the user by email")
}

// intFlag returns the value of a flag if it is set, otherwise the fallback.
func intFlag(cmd *cobra.Command, name string, fallback int) int {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	n, _ := cmd.Flags().GetInt(name)
	return n
}

var topCommand = &cobra.Command{
	Use:   "top",
	Short: "List the most popular articles.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd.Context(), globalConfig)
		if err != nil {
			return errors.Trace(err)
		}
		popular, err := logics.NewPopular(env.table)
		if err != nil {
			return errors.Trace(err)
		}
		n := intFlag(cmd, "num", globalConfig.Recommend.TopN)
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("rank", "article id", "title", "interactions")
		for i, articleId := range popular.TopArticleIds(n) {
			title := strings.Join(popular.Titles(articleId), " / ")
			if err = table.Append(strconv.Itoa(i+1), articleId, title, strconv.Itoa(popular.Count(articleId))); err != nil {
				return errors.Trace(err)
			}
		}
		return errors.Trace(table.Render())
	},
}

var similarCommand = &cobra.Command{
	Use:   "similar <user>",
	Short: "List the users most similar to a user.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd.Context(), globalConfig)
		if err != nil {
			return errors.Trace(err)
		}
		byEmail, _ := cmd.Flags().GetBool("email")
		userId, err := parseUser(env.table, args[0], byEmail)
		if err != nil {
			return errors.Trace(err)
		}
		neighbors, err := logics.TopSortedUsers(dataset.NewInteractionMatrix(env.table), userId)
		if err != nil {
			return errors.Trace(err)
		}
		n := intFlag(cmd, "num", globalConfig.Recommend.NumNeighbors)
		neighbors = neighbors[:min(max(n, 0), len(neighbors))]
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("user id", "email", "similarity", "interactions")
		for _, neighbor := range neighbors {
			email, err := env.table.Email(neighbor.UserId)
			if err != nil {
				return errors.Trace(err)
			}
			if err = table.Append(
				strconv.Itoa(int(neighbor.UserId)),
				email,
				strconv.Itoa(neighbor.Similarity),
				strconv.Itoa(neighbor.NumInteractions),
			); err != nil {
				return errors.Trace(err)
			}
		}
		return errors.Trace(table.Render())
	},
}

var recommendCommand = &cobra.Command{
	Use:   "recommend <user>",
	Short: "Recommend articles to a user.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd.Context(), globalConfig)
		if err != nil {
			return errors.Trace(err)
		}
		byEmail, _ := cmd.Flags().GetBool("email")
		userId, err := parseUser(env.table, args[0], byEmail)
		if err != nil {
			return errors.Trace(err)
		}
		popular, err := logics.NewPopular(env.table)
		if err != nil {
			return errors.Trace(err)
		}
		recommender := logics.NewUserToUser(env.table, dataset.NewInteractionMatrix(env.table), popular)
		rec, err := logics.Recommend(recommender, userId, intFlag(cmd, "num", globalConfig.Recommend.NumRecommend))
		if err != nil {
			return errors.Trace(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %d, strategy %s\n", rec.UserId, rec.Strategy)
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("article id", "title")
		for i, articleId := range rec.ArticleIds {
			title := ""
			if i < len(rec.Titles) {
				title = rec.Titles[i]
			}
			if err = table.Append(articleId, title); err != nil {
				return errors.Trace(err)
			}
		}
		return errors.Trace(table.Render())
	},
}

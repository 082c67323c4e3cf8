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
	"context"
	"fmt"
	"strconv"

	"github.com/MaxJoas/article-recommendations/base/log"
	"github.com/MaxJoas/article-recommendations/cmd/version"
	"github.com/MaxJoas/article-recommendations/config"
	"github.com/MaxJoas/article-recommendations/dataset"
	"github.com/MaxJoas/article-recommendations/storage/data"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var globalConfig *config.Config

var rootCommand = &cobra.Command{
	Use:           "article-recommendations",
	Short:         "Recommend articles from user-article interactions.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// setup logger
		debug, _ := cmd.Flags().GetBool("debug")
		log.SetLogger(cmd.Flags(), debug)

		// load config
		configPath, _ := cmd.Flags().GetString("config")
		log.Logger().Debug("load config", zap.String("config", configPath))
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			return errors.Annotate(err, "failed to load config")
		}
		globalConfig = conf
		return nil
	},
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show build information.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), version.BuildInfo())
	},
}

func init() {
	rootCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.AddCommand(versionCommand)
}

// environment holds the interaction table and the article catalog of a run.
type environment struct {
	table   *dataset.Table
	catalog *dataset.Catalog
}

// loadEnvironment reads interactions and articles from the data store if configured,
// otherwise from the CSV exports.
func loadEnvironment(ctx context.Context, conf *config.Config) (*environment, error) {
	var (
		interactions []data.Interaction
		articles     []data.Article
		err          error
	)
	if conf.Database.DataStore != "" {
		log.Logger().Info("load dataset from data store",
			zap.String("data_store", log.RedactDBURL(conf.Database.DataStore)))
		database, err := data.Open(conf.Database.DataStore, conf.Database.TablePrefix)
		if err != nil {
			return nil, errors.Trace(err)
		}
		defer database.Close()
		if interactions, err = database.GetInteractions(ctx); err != nil {
			return nil, errors.Trace(err)
		}
		if articles, err = database.GetArticles(ctx); err != nil {
			return nil, errors.Trace(err)
		}
	} else {
		if interactions, err = dataset.LoadInteractionsFile(conf.Dataset.InteractionsPath); err != nil {
			return nil, errors.Trace(err)
		}
		if conf.Dataset.ArticlesPath != "" {
			if articles, err = dataset.LoadArticlesFile(conf.Dataset.ArticlesPath); err != nil {
				return nil, errors.Trace(err)
			}
		}
	}
	return &environment{
		table:   dataset.NewTable(interactions),
		catalog: dataset.NewCatalog(articles),
	}, nil
}

// parseUser resolves a user argument. The argument is an email if byEmail is set,
// otherwise a user id.
func parseUser(table *dataset.Table, arg string, byEmail bool) (int32, error) {
	if byEmail {
		return table.LookupUser(arg)
	}
	userId, err := strconv.ParseInt(arg, 10, 32)
	if err != nil {
		return 0, errors.NotValidf("user id %q", arg)
	}
	return int32(userId), nil
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}

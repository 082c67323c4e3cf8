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
	"github.com/MaxJoas/article-recommendations/base/progress"
	"github.com/MaxJoas/article-recommendations/dataset"
	"github.com/MaxJoas/article-recommendations/model/svd"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCommand.AddCommand(svdCommand)
	svdCommand.Flags().Bool("test", false, "evaluate on a head/tail train/test split")
	svdCommand.Flags().Bool("snapshot", false, "factorize the interaction matrix snapshot")
	svdCommand.Flags().Int("train-size", 0, "number of training interactions (default from config)")
	svdCommand.Flags().IntP("jobs", "j", 0, "number of jobs (default from config)")
}

var svdCommand = &cobra.Command{
	Use:   "svd",
	Short: "Sweep the number of latent features of a singular value decomposition.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		testMode, _ := cmd.Flags().GetBool("test")
		fromSnapshot, _ := cmd.Flags().GetBool("snapshot")
		if testMode && fromSnapshot {
			return errors.NotValidf("--test with --snapshot")
		}
		jobs := intFlag(cmd, "jobs", globalConfig.Factorization.Jobs)

		var (
			train, test *dataset.InteractionMatrix
			err         error
		)
		if fromSnapshot {
			if train, err = loadSnapshot(cmd.Context()); err != nil {
				return errors.Trace(err)
			}
		} else {
			env, err := loadEnvironment(cmd.Context(), globalConfig)
			if err != nil {
				return errors.Trace(err)
			}
			if testMode {
				trainTable, testTable := env.table.Split(intFlag(cmd, "train-size", globalConfig.Factorization.TrainSize))
				train = dataset.NewInteractionMatrix(trainTable)
				test = dataset.NewInteractionMatrix(testTable)
			} else {
				train = dataset.NewInteractionMatrix(env.table)
			}
		}

		model, err := svd.Fit(train)
		if err != nil {
			return errors.Trace(err)
		}
		ks := svd.ClipGrid(globalConfig.Factorization.Grid(), model.Rank())
		numUsers, numArticles := train.Shape()
		log.Logger().Info("fit svd",
			zap.Int("n_users", numUsers),
			zap.Int("n_articles", numArticles),
			zap.Int("rank", model.Rank()),
			zap.Ints("ks", ks),
			zap.Int("jobs", jobs))

		ctx, done := withProgressBar(cmd, len(ks))
		defer done()
		if testMode {
			evaluation, err := model.Evaluate(ctx, test, ks, jobs)
			if err != nil {
				return errors.Trace(err)
			}
			done()
			c := evaluation.ColdStart
			fmt.Fprintf(cmd.OutOrStdout(), "predictable users: %d, unpredictable users: %d\n",
				c.PredictableUsers, c.UnpredictableUsers)
			fmt.Fprintf(cmd.OutOrStdout(), "predictable articles: %d, unpredictable articles: %d\n",
				c.PredictableArticles, c.UnpredictableArticles)
			return renderScores(cmd, evaluation.Scores)
		}
		scores, err := model.Sweep(ctx, ks, jobs)
		if err != nil {
			return errors.Trace(err)
		}
		done()
		return renderScores(cmd, scores)
	},
}

// withProgressBar returns a context whose spans advance a progress bar on stderr. The
// returned function finishes the bar and is safe to call more than once.
func withProgressBar(cmd *cobra.Command, total int) (context.Context, func()) {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("latent features"),
		progressbar.OptionShowCount())
	tracer := progress.NewTracer("svd")
	tracer.Observe(func(_ string, n int) {
		_ = bar.Add(n)
	})
	ctx, span := tracer.Start(cmd.Context(), "svd", total)
	finished := false
	return ctx, func() {
		if finished {
			return
		}
		finished = true
		span.End()
		_ = bar.Finish()
		fmt.Fprintln(cmd.ErrOrStderr())
	}
}

func renderScores(cmd *cobra.Command, scores []svd.Score) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("latent features", "errors", "entries", "accuracy")
	for _, score := range scores {
		if err := table.Append(
			strconv.Itoa(score.K),
			strconv.Itoa(score.Errors),
			strconv.Itoa(score.Total),
			strconv.FormatFloat(score.Accuracy, 'f', 4, 64),
		); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(table.Render())
}

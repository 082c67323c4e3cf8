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

	"github.com/MaxJoas/article-recommendations/base/log"
	"github.com/MaxJoas/article-recommendations/dataset"
	"github.com/MaxJoas/article-recommendations/storage/blob"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCommand.AddCommand(snapshotCommand)
	snapshotCommand.AddCommand(snapshotSaveCommand)
	snapshotCommand.AddCommand(snapshotLoadCommand)
}

var snapshotCommand = &cobra.Command{
	Use:   "snapshot",
	Short: "Save or load the user-article interaction matrix.",
}

var snapshotSaveCommand = &cobra.Command{
	Use:   "save",
	Short: "Build the interaction matrix and save it to the snapshot store.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd.Context(), globalConfig)
		if err != nil {
			return errors.Trace(err)
		}
		matrix := dataset.NewInteractionMatrix(env.table)
		b, err := matrix.Marshal()
		if err != nil {
			return errors.Trace(err)
		}
		store, err := blob.Open(globalConfig.Snapshot)
		if err != nil {
			return errors.Trace(err)
		}
		if err = blob.WriteAll(cmd.Context(), store, globalConfig.Snapshot.Name, b); err != nil {
			return errors.Trace(err)
		}
		numUsers, numArticles := matrix.Shape()
		log.Logger().Info("save snapshot",
			zap.String("store", globalConfig.Snapshot.Store),
			zap.String("name", globalConfig.Snapshot.Name),
			zap.Int("size", len(b)))
		fmt.Fprintf(cmd.OutOrStdout(), "saved %d users x %d articles to %s\n",
			numUsers, numArticles, globalConfig.Snapshot.Name)
		return nil
	},
}

var snapshotLoadCommand = &cobra.Command{
	Use:   "load",
	Short: "Load the interaction matrix from the snapshot store.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		matrix, err := loadSnapshot(cmd.Context())
		if err != nil {
			return errors.Trace(err)
		}
		numUsers, numArticles := matrix.Shape()
		fmt.Fprintf(cmd.OutOrStdout(), "loaded %d users x %d articles from %s\n",
			numUsers, numArticles, globalConfig.Snapshot.Name)
		return nil
	},
}

func loadSnapshot(ctx context.Context) (*dataset.InteractionMatrix, error) {
	store, err := blob.Open(globalConfig.Snapshot)
	if err != nil {
		return nil, errors.Trace(err)
	}
	b, err := blob.ReadAll(ctx, store, globalConfig.Snapshot.Name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	matrix, err := dataset.UnmarshalInteractionMatrix(b)
	if err != nil {
		return nil, errors.Annotatef(err, "snapshot %s", globalConfig.Snapshot.Name)
	}
	return matrix, nil
}

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

package svd

import (
	"context"

	"github.com/MaxJoas/article-recommendations/base/log"
	"github.com/MaxJoas/article-recommendations/base/progress"
	"github.com/MaxJoas/article-recommendations/common/parallel"
	"github.com/MaxJoas/article-recommendations/dataset"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// ColdStart counts test users and articles with and without a row or column in the
// training matrix.
type ColdStart struct {
	PredictableUsers      int
	UnpredictableUsers    int
	PredictableArticles   int
	UnpredictableArticles int
}

// NewColdStart derives cold start counts from the set differences between test and
// training ids.
func NewColdStart(train, test *dataset.InteractionMatrix) ColdStart {
	trainUsers := mapset.NewThreadUnsafeSet(train.Users()...)
	testUsers := mapset.NewThreadUnsafeSet(test.Users()...)
	trainArticles := mapset.NewThreadUnsafeSet(train.Articles()...)
	testArticles := mapset.NewThreadUnsafeSet(test.Articles()...)
	return ColdStart{
		PredictableUsers:      testUsers.Intersect(trainUsers).Cardinality(),
		UnpredictableUsers:    testUsers.Difference(trainUsers).Cardinality(),
		PredictableArticles:   testArticles.Intersect(trainArticles).Cardinality(),
		UnpredictableArticles: testArticles.Difference(trainArticles).Cardinality(),
	}
}

type Evaluation struct {
	ColdStart ColdStart
	Scores    []Score
}

// Evaluate predicts the test matrix for each k. Only users and articles present in both
// matrices are compared, the others are counted in ColdStart.
func (m *Model) Evaluate(ctx context.Context, test *dataset.InteractionMatrix, ks []int, jobs int) (*Evaluation, error) {
	for _, k := range ks {
		if err := m.checkK(k); err != nil {
			return nil, errors.Trace(err)
		}
	}
	coldStart := NewColdStart(m.matrix, test)
	log.Logger().Info("evaluate svd",
		zap.Int("n_predictable_users", coldStart.PredictableUsers),
		zap.Int("n_unpredictable_users", coldStart.UnpredictableUsers),
		zap.Int("n_predictable_articles", coldStart.PredictableArticles),
		zap.Int("n_unpredictable_articles", coldStart.UnpredictableArticles))
	if coldStart.PredictableUsers == 0 || coldStart.PredictableArticles == 0 {
		return nil, errors.NotValidf("test matrix without predictable users or articles")
	}

	// rows and columns in the training matrix and in the test matrix
	var trainRows, testRows, trainCols, testCols []int
	for i, userId := range test.Users() {
		if row, ok := m.matrix.UserIndex(userId); ok {
			trainRows = append(trainRows, row)
			testRows = append(testRows, i)
		}
	}
	for j, articleId := range test.Articles() {
		if col, ok := m.matrix.ArticleIndex(articleId); ok {
			trainCols = append(trainCols, col)
			testCols = append(testCols, j)
		}
	}

	_, span := progress.Start(ctx, "svd.Evaluate", len(ks))
	scores := make([]Score, len(ks))
	err := parallel.Parallel(ctx, len(ks), jobs, func(_, i int) error {
		est := m.reconstruct(ks[i], trainRows, trainCols)
		round(est)
		errs := mismatches(est, func(r, c int) float64 {
			return float64(test.At(testRows[r], testCols[c]))
		})
		scores[i] = newScore(ks[i], errs, len(testRows)*len(testCols))
		span.Add(1)
		return nil
	})
	if err != nil {
		span.Fail(err)
		return nil, errors.Trace(err)
	}
	span.End()
	return &Evaluation{ColdStart: coldStart, Scores: scores}, nil
}

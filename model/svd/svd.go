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

// Package svd predicts user-article interactions from a truncated singular value
// decomposition of the interaction matrix.
//
// The matrix A is factorized as U Σ Vᵀ. Keeping the k largest singular values
//
//	Â_k = U_k Σ_k V_kᵀ
//
// is the best rank-k approximation of A. Entries of Â_k are rounded to {0, 1} to
// predict whether a user has interacted with an article.
package svd

import (
	"context"
	"slices"

	"github.com/MaxJoas/article-recommendations/base/log"
	"github.com/MaxJoas/article-recommendations/base/progress"
	"github.com/MaxJoas/article-recommendations/common/parallel"
	"github.com/MaxJoas/article-recommendations/dataset"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Score is the prediction error with k latent features.
type Score struct {
	K int
	// Errors is the number of mismatched entries.
	Errors int
	// Total is the number of compared entries.
	Total    int
	Accuracy float64
}

func newScore(k, errs, total int) Score {
	return Score{
		K:        k,
		Errors:   errs,
		Total:    total,
		Accuracy: 1 - float64(errs)/float64(total),
	}
}

// Model is the thin singular value decomposition of an interaction matrix.
type Model struct {
	matrix *dataset.InteractionMatrix
	dense  *mat.Dense
	u      mat.Dense
	v      mat.Dense
	values []float64
}

// Fit factorizes an interaction matrix.
func Fit(m *dataset.InteractionMatrix) (*Model, error) {
	dense := m.Dense()
	if dense == nil {
		return nil, errors.Trace(dataset.ErrEmptyTable)
	}
	var svd mat.SVD
	if ok := svd.Factorize(dense, mat.SVDThin); !ok {
		return nil, errors.New("singular value decomposition failed to converge")
	}
	model := &Model{matrix: m, dense: dense}
	svd.UTo(&model.u)
	svd.VTo(&model.v)
	model.values = svd.Values(nil)
	numUsers, numArticles := m.Shape()
	log.Logger().Debug("fit svd",
		zap.Int("n_users", numUsers),
		zap.Int("n_articles", numArticles),
		zap.Int("rank", model.Rank()))
	return model, nil
}

// Rank returns the number of singular values, which bounds k.
func (m *Model) Rank() int {
	return len(m.values)
}

// Values returns singular values in descending order.
func (m *Model) Values() []float64 {
	return slices.Clone(m.values)
}

func (m *Model) checkK(k int) error {
	if k < 1 || k > m.Rank() {
		return errors.NotValidf("k = %d out of range [1, %d]", k, m.Rank())
	}
	return nil
}

// reconstruct computes U_k Σ_k V_kᵀ restricted to the given rows and columns of the
// training matrix.
func (m *Model) reconstruct(k int, rows, cols []int) *mat.Dense {
	us := mat.NewDense(len(rows), k, nil)
	for i, row := range rows {
		for j := 0; j < k; j++ {
			us.Set(i, j, m.u.At(row, j)*m.values[j])
		}
	}
	vk := mat.NewDense(len(cols), k, nil)
	for i, col := range cols {
		for j := 0; j < k; j++ {
			vk.Set(i, j, m.v.At(col, j))
		}
	}
	var est mat.Dense
	est.Mul(us, vk.T())
	return &est
}

// Reconstruct returns the rank-k approximation of the training matrix without rounding.
func (m *Model) Reconstruct(k int) (*mat.Dense, error) {
	if err := m.checkK(k); err != nil {
		return nil, errors.Trace(err)
	}
	numUsers, numArticles := m.matrix.Shape()
	return m.reconstruct(k, lo.Range(numUsers), lo.Range(numArticles)), nil
}

// Predict returns the rank-k approximation rounded to {0, 1}.
func (m *Model) Predict(k int) (*mat.Dense, error) {
	est, err := m.Reconstruct(k)
	if err != nil {
		return nil, errors.Trace(err)
	}
	round(est)
	return est, nil
}

// round maps entries of at least 0.5 to 1 and the others to 0.
func round(a *mat.Dense) {
	a.Apply(func(_, _ int, v float64) float64 {
		if v >= 0.5 {
			return 1
		}
		return 0
	}, a)
}

func mismatches(est *mat.Dense, actual func(i, j int) float64) int {
	r, c := est.Dims()
	errs := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if est.At(i, j) != actual(i, j) {
				errs++
			}
		}
	}
	return errs
}

// TrainingError returns the number of mismatches between the rounded rank-k
// approximation and the training matrix.
func (m *Model) TrainingError(k int) (Score, error) {
	est, err := m.Predict(k)
	if err != nil {
		return Score{}, errors.Trace(err)
	}
	r, c := m.dense.Dims()
	return newScore(k, mismatches(est, m.dense.At), r*c), nil
}

// ClipGrid keeps the k values within [1, rank]. If any k exceeds the rank, the rank is
// appended so that the full decomposition is evaluated.
func ClipGrid(ks []int, rank int) []int {
	clipped := lo.Filter(ks, func(k int, _ int) bool {
		return k >= 1 && k <= rank
	})
	if lo.SomeBy(ks, func(k int) bool { return k > rank }) && !slices.Contains(clipped, rank) && rank > 0 {
		clipped = append(clipped, rank)
	}
	return clipped
}

// Sweep computes the training error for each k. Scores are returned in the order of ks
// regardless of the number of jobs.
func (m *Model) Sweep(ctx context.Context, ks []int, jobs int) ([]Score, error) {
	for _, k := range ks {
		if err := m.checkK(k); err != nil {
			return nil, errors.Trace(err)
		}
	}
	_, span := progress.Start(ctx, "svd.Sweep", len(ks))
	scores := make([]Score, len(ks))
	err := parallel.Parallel(ctx, len(ks), jobs, func(_, i int) error {
		score, err := m.TrainingError(ks[i])
		if err != nil {
			return errors.Trace(err)
		}
		scores[i] = score
		span.Add(1)
		return nil
	})
	if err != nil {
		span.Fail(err)
		return nil, errors.Trace(err)
	}
	span.End()
	return scores, nil
}

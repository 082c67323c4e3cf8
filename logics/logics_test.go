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

package logics

import (
	"fmt"

	"github.com/MaxJoas/article-recommendations/dataset"
	"github.com/MaxJoas/article-recommendations/storage/data"
)

// newTestTable returns the following interactions:
//
//	user 1: 1, 2, 3
//	user 2: 1, 2, 4
//	user 3: 1, 5, 5
//	user 4: 2, 3, 6, 7
//	user 5: 8, 8
func newTestTable() *dataset.Table {
	rows := [][2]string{
		{"a", "1"}, {"a", "2"}, {"a", "3"},
		{"b", "1"}, {"b", "2"}, {"b", "4"},
		{"c", "1"}, {"c", "5"},
		{"d", "2"}, {"d", "3"}, {"d", "6"}, {"d", "7"},
		{"e", "8"}, {"e", "8"}, {"c", "5"},
	}
	interactions := make([]data.Interaction, len(rows))
	for i, row := range rows {
		interactions[i] = data.Interaction{
			Email:     row[0],
			ArticleId: row[1],
			Title:     fmt.Sprintf("article %s", row[1]),
		}
	}
	return dataset.NewTable(interactions)
}

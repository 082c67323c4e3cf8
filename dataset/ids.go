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

package dataset

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeArticleId returns the canonical form of an article id. Numeric ids are
// formatted with exactly one decimal place, so that "1430" and "1430.0" are the same
// article. Other ids are trimmed and kept verbatim.
func NormalizeArticleId(raw string) string {
	s := strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return s
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// CompareArticleIds orders canonical article ids by numeric value. Non-numeric ids sort
// after numeric ones, lexicographically.
func CompareArticleIds(a, b string) int {
	va, errA := strconv.ParseFloat(a, 64)
	vb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		if va < vb {
			return -1
		} else if va > vb {
			return 1
		}
		return strings.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

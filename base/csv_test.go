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

package base

import (
	"bufio"
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func splitLines(t *testing.T, text string) [][]string {
	sc := bufio.NewScanner(strings.NewReader(text))
	lines := make([][]string, 0)
	err := ReadLines(sc, ",", func(i int, fields []string) bool {
		assert.Equal(t, len(lines), i)
		lines = append(lines, fields)
		return fields[0] != "STOP"
	})
	assert.NoError(t, err)
	return lines
}

func TestReadLines(t *testing.T) {
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5", "6"}},
		splitLines(t, "1,2,3\r\n4,5,6\r\n"))
	assert.Equal(t, [][]string{{"1,2", "3,4", "5,6"}, {"2,3", "4,6", "6,9"}},
		splitLines(t, "\"1,2\",\"3,4\",\"5,6\"\n\"2,3\",\"4,6\",\"6,9\""))
	assert.Equal(t, [][]string{{"say \"hi\"", ""}},
		splitLines(t, "\"say \"\"hi\"\"\","))
	assert.Equal(t, [][]string{{"1\n2", "3"}, {"4", "5"}},
		splitLines(t, "\"1\n2\",3\n4,5"))
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5", "6"}, {"STOP"}},
		splitLines(t, "1,2,3\n4,5,6\nSTOP\n7,8,9"))
}

func TestReadLinesUnterminated(t *testing.T) {
	sc := bufio.NewScanner(strings.NewReader("1,\"2\n3"))
	err := ReadLines(sc, ",", func(int, []string) bool { return true })
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestReadCSVLongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	var records [][]string
	err := ReadCSV(strings.NewReader("a,b\n"+long+",1\n"), ",", func(_ int, fields []string) bool {
		records = append(records, fields)
		return true
	})
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, long, records[1][0])
}

// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-systolic/systolic"
)

func TestTitle(t *testing.T) {
	assert.Equal(t, "Matrix A", Title("matrix a"))
	assert.Equal(t, "Expected Product", Title("expected product"))
}

func TestMatrixAlignsColumns(t *testing.T) {
	m, err := systolic.FromRows([][]int64{{1, 2}, {13, -4}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Matrix(&buf, "matrix a", m))
	assert.Equal(t, "Matrix A:\n[ 1  2]\n[13 -4]\n", buf.String())
}

func TestMatrixUnsigned(t *testing.T) {
	m := systolic.Identity[uint64](2)
	m.Set(0, 1, 1<<63)

	var buf bytes.Buffer
	require.NoError(t, Matrix(&buf, "big", m))
	assert.Contains(t, buf.String(), "9223372036854775808")
}

func TestFeed(t *testing.T) {
	var buf bytes.Buffer
	f := systolic.FeedPair[int]{Cycle: 3, Phase: systolic.PhaseDrain, Rows: []int{0, 0}, Cols: []int{0, 0}}
	require.NoError(t, Feed(&buf, f))
	assert.Equal(t, "cycle   3 drain   rows=[0 0] cols=[0 0]\n", buf.String())
}

func TestSchedule(t *testing.T) {
	a, _ := systolic.FromRows([][]int{{1, 2}, {3, 4}})
	b, _ := systolic.FromRows([][]int{{5, 6}, {7, 8}})
	s, err := systolic.NewSchedule(a, b)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Schedule(&buf, s))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1+s.Len())
	assert.Contains(t, lines[0], "cycle")
	assert.Contains(t, lines[2], "2 3")
	assert.Contains(t, lines[2], "7 6")
	assert.Contains(t, lines[5], "drain")
}

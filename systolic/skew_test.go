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

package systolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// distinctMatrix returns an n × n matrix whose elements are all different and
// non-zero, starting at base.
func distinctMatrix(n int, base int64) Matrix[int64] {
	m := NewMatrix[int64](n, n)
	for i := range m.Data {
		m.Data[i] = base + int64(i)
	}
	return m
}

func TestScheduleLength(t *testing.T) {
	for n := 2; n <= 8; n++ {
		s, err := NewSchedule(distinctMatrix(n, 1), distinctMatrix(n, 100))
		require.NoError(t, err)
		assert.Equal(t, 3*n-2, s.ComputeCycles())
		assert.Equal(t, n-1, s.DrainCycles())
		assert.Equal(t, 4*n-3, s.Len())

		var compute, drain, next int
		for feed := range s.All() {
			assert.Equal(t, next, feed.Cycle)
			next++
			switch feed.Phase {
			case PhaseCompute:
				compute++
			case PhaseDrain:
				drain++
			}
			assert.Len(t, feed.Rows, n)
			assert.Len(t, feed.Cols, n)
		}
		assert.Equal(t, 3*n-2, compute, "n=%d", n)
		assert.Equal(t, n-1, drain, "n=%d", n)
	}
}

// Every A[r,k] must enter row r on cycle r+k and every B[k,c] column c on
// cycle c+k, each exactly once.
func TestScheduleArrivalTiming(t *testing.T) {
	const n = 5
	a := distinctMatrix(n, 1)
	b := distinctMatrix(n, 1000)
	s, err := NewSchedule(a, b)
	require.NoError(t, err)

	type slot struct{ cycle, lane int }
	seenA := map[int64]slot{}
	seenB := map[int64]slot{}
	for feed := range s.All() {
		for r, v := range feed.Rows {
			if v == 0 {
				continue
			}
			_, dup := seenA[v]
			require.False(t, dup, "A value %d fed twice", v)
			seenA[v] = slot{feed.Cycle, r}
		}
		for c, v := range feed.Cols {
			if v == 0 {
				continue
			}
			_, dup := seenB[v]
			require.False(t, dup, "B value %d fed twice", v)
			seenB[v] = slot{feed.Cycle, c}
		}
	}

	require.Len(t, seenA, n*n)
	require.Len(t, seenB, n*n)
	for r := range n {
		for k := range n {
			assert.Equal(t, slot{r + k, r}, seenA[a.At(r, k)], "A[%d,%d]", r, k)
			assert.Equal(t, slot{k + r, r}, seenB[b.At(k, r)], "B[%d,%d]", k, r)
		}
	}
}

func TestScheduleDrainIsZero(t *testing.T) {
	s, err := NewSchedule(distinctMatrix(4, 1), distinctMatrix(4, 1))
	require.NoError(t, err)
	for feed := range s.All() {
		if feed.Phase != PhaseDrain {
			continue
		}
		assert.GreaterOrEqual(t, feed.Cycle, s.ComputeCycles())
		assert.Equal(t, make([]int64, 4), feed.Rows)
		assert.Equal(t, make([]int64, 4), feed.Cols)
	}
}

func TestScheduleAtMatchesAll(t *testing.T) {
	s, err := NewSchedule(distinctMatrix(3, 1), distinctMatrix(3, 50))
	require.NoError(t, err)
	for feed := range s.All() {
		at, err := s.At(feed.Cycle)
		require.NoError(t, err)
		assert.Equal(t, feed.Phase, at.Phase)
		assert.Equal(t, feed.Rows, at.Rows, "cycle %d", feed.Cycle)
		assert.Equal(t, feed.Cols, at.Cols, "cycle %d", feed.Cycle)
	}

	for _, cycle := range []int{-1, s.Len()} {
		_, err := s.At(cycle)
		assert.ErrorIs(t, err, ErrDimensionMismatch, "cycle %d", cycle)
	}
}

func TestScheduleFirstCycles(t *testing.T) {
	a, _ := FromRows([][]int64{{1, 2}, {3, 4}})
	b, _ := FromRows([][]int64{{5, 6}, {7, 8}})
	s, err := NewSchedule(a, b)
	require.NoError(t, err)

	want := []struct{ rows, cols []int64 }{
		{[]int64{1, 0}, []int64{5, 0}},
		{[]int64{2, 3}, []int64{7, 6}},
		{[]int64{0, 4}, []int64{0, 8}},
		{[]int64{0, 0}, []int64{0, 0}},
		{[]int64{0, 0}, []int64{0, 0}},
	}
	require.Equal(t, len(want), s.Len())
	for i, w := range want {
		feed, err := s.At(i)
		require.NoError(t, err)
		assert.Equal(t, w.rows, feed.Rows, "cycle %d rows", i)
		assert.Equal(t, w.cols, feed.Cols, "cycle %d cols", i)
	}
}

func TestScheduleAllStopsEarly(t *testing.T) {
	s, err := NewSchedule(distinctMatrix(3, 1), distinctMatrix(3, 1))
	require.NoError(t, err)
	var seen int
	for range s.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestNewScheduleRejectsShapes(t *testing.T) {
	square2 := NewMatrix[int64](2, 2)
	testCases := []struct {
		name string
		a, b Matrix[int64]
		want error
	}{
		{"non_square_a", NewMatrix[int64](2, 3), square2, ErrDimensionMismatch},
		{"non_square_b", square2, NewMatrix[int64](3, 2), ErrDimensionMismatch},
		{"different_sizes", square2, NewMatrix[int64](3, 3), ErrDimensionMismatch},
		{"short_data", Matrix[int64]{Rows: 2, Cols: 2, Data: make([]int64, 3)}, square2, ErrDimensionMismatch},
		{"scalar", NewMatrix[int64](1, 1), NewMatrix[int64](1, 1), ErrInvalidConfiguration},
		{"empty", Matrix[int64]{}, Matrix[int64]{}, ErrInvalidConfiguration},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSchedule(tc.a, tc.b)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, s)
		})
	}
}

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
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Matrix is a dense row-major matrix:
//
//	m.At(r, c) == m.Data[r*m.Cols+c]
type Matrix[T Integer] struct {
	Rows int
	Cols int
	Data []T
}

// NewMatrix returns a zero-filled rows × cols matrix.
func NewMatrix[T Integer](rows, cols int) Matrix[T] {
	return Matrix[T]{Rows: rows, Cols: cols, Data: make([]T, rows*cols)}
}

// FromRows builds a matrix from a slice of equally long rows.
func FromRows[T Integer](rows [][]T) (Matrix[T], error) {
	if len(rows) == 0 {
		return Matrix[T]{}, nil
	}
	cols := len(rows[0])
	if !lo.EveryBy(rows, func(row []T) bool { return len(row) == cols }) {
		return Matrix[T]{}, fmt.Errorf("%w: ragged rows, want %d columns each", ErrDimensionMismatch, cols)
	}
	return Matrix[T]{Rows: len(rows), Cols: cols, Data: lo.Flatten(rows)}, nil
}

// Identity returns the n × n identity matrix.
func Identity[T Integer](n int) Matrix[T] {
	m := NewMatrix[T](n, n)
	for i := range n {
		m.Data[i*n+i] = 1
	}
	return m
}

// At returns the element at row r, column c.
func (m Matrix[T]) At(r, c int) T {
	return m.Data[r*m.Cols+c]
}

// Set stores v at row r, column c.
func (m Matrix[T]) Set(r, c int, v T) {
	m.Data[r*m.Cols+c] = v
}

// Row returns row r. The slice aliases m.Data.
func (m Matrix[T]) Row(r int) []T {
	return m.Data[r*m.Cols : (r+1)*m.Cols]
}

// IsSquare reports whether m has as many rows as columns.
func (m Matrix[T]) IsSquare() bool {
	return m.Rows == m.Cols
}

// Equal reports whether m and o have the same shape and elements.
func (m Matrix[T]) Equal(o Matrix[T]) bool {
	if m.Rows != o.Rows || m.Cols != o.Cols || len(m.Data) != len(o.Data) {
		return false
	}
	for i := range m.Data {
		if m.Data[i] != o.Data[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of m.
func (m Matrix[T]) Clone() Matrix[T] {
	return Matrix[T]{Rows: m.Rows, Cols: m.Cols, Data: append([]T(nil), m.Data...)}
}

// Add returns the elementwise sum m + o.
func (m Matrix[T]) Add(o Matrix[T]) (Matrix[T], error) {
	if m.Rows != o.Rows || m.Cols != o.Cols {
		return Matrix[T]{}, fmt.Errorf("%w: %dx%d + %dx%d", ErrDimensionMismatch, m.Rows, m.Cols, o.Rows, o.Cols)
	}
	sum := NewMatrix[T](m.Rows, m.Cols)
	for i := range sum.Data {
		sum.Data[i] = m.Data[i] + o.Data[i]
	}
	return sum, nil
}

// ToRows copies m into a slice of rows.
func (m Matrix[T]) ToRows() [][]T {
	if m.Cols == 0 {
		return make([][]T, m.Rows)
	}
	return lo.Chunk(append([]T(nil), m.Data...), m.Cols)
}

// String formats m one row per line, e.g. "[1 2]\n[3 4]".
func (m Matrix[T]) String() string {
	var sb strings.Builder
	for r := range m.Rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprint(&sb, m.Row(r))
	}
	return sb.String()
}

// ReferenceMultiply computes a · b with the standard triple loop. It is the
// independent check the simulator is validated against.
func ReferenceMultiply[T Integer](a, b Matrix[T]) (Matrix[T], error) {
	if a.Cols != b.Rows {
		return Matrix[T]{}, fmt.Errorf("%w: %dx%d · %dx%d", ErrDimensionMismatch, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	m, k, n := a.Rows, a.Cols, b.Cols
	c := NewMatrix[T](m, n)
	for i := range m {
		for p := range k {
			aip := a.Data[i*k+p]
			for j := range n {
				c.Data[i*n+j] += aip * b.Data[p*n+j]
			}
		}
	}
	return c, nil
}

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

// Package systolic simulates, cycle by cycle, a square systolic array that
// multiplies two N×N integer matrices.
//
// The array is a Grid of identical cells. Each cycle every cell adds the
// product of its two operands to a private accumulator, then passes its left
// operand to the cell on its right and its top operand to the cell below.
// No cell ever sees more than its own state.
//
// # Skew
//
// Operands must meet in the right cell on the right cycle. The Schedule feeds
// row r of A into the left edge delayed by r cycles and column c of B into the
// top edge delayed by c cycles, so A[r,k] and B[k,c] reach cell (r,c)
// together on cycle r+c+k:
//
//	cycle:   0    1    2    3    4
//	row 0:  a00  a01   .    .    .
//	row 1:   .   a10  a11   .    .
//
// A full multiply takes 3N-2 compute cycles followed by N-1 drain cycles with
// zero input, 4N-3 cycles in total.
//
// # Update order
//
// Cells are updated in place, from the highest row to the lowest and, within
// a row, from the highest column to the lowest. A cell therefore writes into
// neighbors that have already finished the current cycle, and every operand
// moves exactly one cell per cycle. StrategyDoubleBuffer and
// StrategyWavefront are alternative update rules with identical results.
//
// # Example Usage
//
//	a, _ := systolic.FromRows([][]int64{{1, 2}, {3, 4}})
//	b, _ := systolic.FromRows([][]int64{{5, 6}, {7, 8}})
//	c, err := systolic.Multiply(a, b)
//	// c = [[19 22] [43 50]]
//
// Accumulators are never cleared implicitly. Running two products through the
// same Grid yields their sum; call Grid.Reset between independent runs.
package systolic

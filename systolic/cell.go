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

const noTarget = -1

// Cell is one processing element. A and B are the operands received this
// cycle; Accumulator only ever grows by A*B computed from the cell's own
// state.
type Cell[T Integer] struct {
	A           T
	B           T
	Accumulator T

	// Arena indices of the cells receiving A and B next cycle, or noTarget.
	right int
	down  int
}

// HasRight reports whether the cell forwards A to a right neighbor.
func (c Cell[T]) HasRight() bool { return c.right != noTarget }

// HasDown reports whether the cell forwards B to a neighbor below.
func (c Cell[T]) HasDown() bool { return c.down != noTarget }

// step accumulates and forwards in place.
func (g *Grid[T]) step(i int) {
	c := &g.cells[i]
	c.Accumulator += c.A * c.B
	if c.right != noTarget {
		g.cells[c.right].A = c.A
	}
	if c.down != noTarget {
		g.cells[c.down].B = c.B
	}
}

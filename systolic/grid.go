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
	"sync"
)

// Grid is an N×N systolic array. Cells live in a single row-major arena;
// forwarding targets are indices into it, fixed at construction: A moves one
// column right, B one row down.
//
// A Grid is not safe for concurrent use.
type Grid[T Integer] struct {
	n     int
	cells []Cell[T]

	// spare is the second buffer for StrategyDoubleBuffer, nil otherwise.
	spare []Cell[T]

	strategy Strategy
	workers  int
	cycles   int
}

// NewGrid returns an n × n grid with every cell zeroed. It fails with
// ErrInvalidConfiguration if n < MinSize. Only WithStrategy and WithWorkers
// affect a grid.
func NewGrid[T Integer](n int, opts ...Option) (*Grid[T], error) {
	if n < MinSize {
		return nil, fmt.Errorf("%w: grid size %d, need at least %d", ErrInvalidConfiguration, n, MinSize)
	}
	o := buildOptions(opts)
	if _, ok := strategyNames[o.strategy]; !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, o.strategy)
	}

	g := &Grid[T]{
		n:        n,
		cells:    newArena[T](n),
		strategy: o.strategy,
		workers:  o.workers,
	}
	if o.strategy == StrategyDoubleBuffer {
		g.spare = newArena[T](n)
	}
	return g, nil
}

func newArena[T Integer](n int) []Cell[T] {
	cells := make([]Cell[T], n*n)
	for r := range n {
		for c := range n {
			cell := &cells[r*n+c]
			cell.right, cell.down = noTarget, noTarget
			if c < n-1 {
				cell.right = r*n + c + 1
			}
			if r < n-1 {
				cell.down = (r+1)*n + c
			}
		}
	}
	return cells
}

// Size returns N.
func (g *Grid[T]) Size() int { return g.n }

// Strategy returns the update strategy the grid was built with.
func (g *Grid[T]) Strategy() Strategy { return g.strategy }

// Cycles returns the number of Advance calls since construction or the last
// Reset.
func (g *Grid[T]) Cycles() int { return g.cycles }

// Cell returns a copy of the cell at row r, column c.
func (g *Grid[T]) Cell(r, c int) (Cell[T], error) {
	if r < 0 || r >= g.n || c < 0 || c >= g.n {
		return Cell[T]{}, fmt.Errorf("%w: cell (%d, %d) outside %dx%d grid", ErrDimensionMismatch, r, c, g.n, g.n)
	}
	return g.cells[r*g.n+c], nil
}

// Feed loads the boundary operands for the next cycle: rows[r] becomes A of
// cell (r, 0) and cols[c] becomes B of cell (0, c). Interior cells keep what
// the previous Advance forwarded to them. Both slices must have length N;
// otherwise no cell is modified.
func (g *Grid[T]) Feed(rows, cols []T) error {
	if len(rows) != g.n || len(cols) != g.n {
		return fmt.Errorf("%w: feed lengths %d and %d, grid size %d", ErrDimensionMismatch, len(rows), len(cols), g.n)
	}
	for r, v := range rows {
		g.cells[r*g.n].A = v
	}
	for c, v := range cols {
		g.cells[c].B = v
	}
	return nil
}

// Advance runs one cycle: every cell adds A*B to its accumulator and passes
// A right and B down, each operand moving exactly one cell.
func (g *Grid[T]) Advance() {
	switch g.strategy {
	case StrategyDoubleBuffer:
		g.advanceDoubleBuffer()
	case StrategyWavefront:
		g.advanceWavefront()
	default:
		g.advanceSerial()
	}
	g.cycles++
}

// advanceSerial visits cells from the highest row to the lowest and, within a
// row, from the highest column to the lowest. Each cell's targets have then
// already consumed their operands for this cycle, so nothing moves twice.
func (g *Grid[T]) advanceSerial() {
	for i := len(g.cells) - 1; i >= 0; i-- {
		g.step(i)
	}
}

// advanceDoubleBuffer reads only the current buffer, so visit order is free.
func (g *Grid[T]) advanceDoubleBuffer() {
	cur, next := g.cells, g.spare
	for i := range cur {
		c := &cur[i]
		next[i].Accumulator = c.Accumulator + c.A*c.B
		// Edge cells keep their operand until the next Feed.
		if i%g.n == 0 {
			next[i].A = c.A
		}
		if i < g.n {
			next[i].B = c.B
		}
	}
	for i := range cur {
		c := &cur[i]
		if c.right != noTarget {
			next[c.right].A = c.A
		}
		if c.down != noTarget {
			next[c.down].B = c.B
		}
	}
	g.cells, g.spare = next, cur
}

// advanceWavefront processes anti-diagonals d = r+c from 2N-2 down to 0.
// Cells on one anti-diagonal only write into anti-diagonal d+1, which is
// already done, so they can run concurrently.
func (g *Grid[T]) advanceWavefront() {
	n := g.n
	inline := g.workers == 1 || n*n < MinWavefrontCells
	for d := 2*n - 2; d >= 0; d-- {
		rLo, rHi := max(0, d-n+1), min(d, n-1)
		if inline {
			for r := rHi; r >= rLo; r-- {
				g.step(r*n + d - r)
			}
			continue
		}

		count := rHi - rLo + 1
		workers := min(g.workers, count)
		chunk := (count + workers - 1) / workers

		// Work queue of row ranges on this anti-diagonal.
		work := make(chan int, workers)
		for start := rLo; start <= rHi; start += chunk {
			work <- start
		}
		close(work)

		var wg sync.WaitGroup
		for range workers {
			wg.Go(func() {
				for start := range work {
					for r := start; r <= min(start+chunk-1, rHi); r++ {
						g.step(r*n + d - r)
					}
				}
			})
		}
		wg.Wait()
	}
}

// Snapshot returns every cell's accumulator as an N × N matrix.
func (g *Grid[T]) Snapshot() Matrix[T] {
	m := NewMatrix[T](g.n, g.n)
	for i := range g.cells {
		m.Data[i] = g.cells[i].Accumulator
	}
	return m
}

// Reset zeroes every operand and accumulator and the cycle counter. Neither
// Run nor Multiply calls it.
func (g *Grid[T]) Reset() {
	for _, buf := range [][]Cell[T]{g.cells, g.spare} {
		for i := range buf {
			buf[i].A, buf[i].B, buf[i].Accumulator = 0, 0, 0
		}
	}
	g.cycles = 0
}

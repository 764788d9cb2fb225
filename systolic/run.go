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
	"context"
	"fmt"
	"log/slog"
)

// Run multiplies a by b on g: for each cycle of the skew sequence it calls
// g.Feed then g.Advance, 4N-3 times in all, and returns g.Snapshot().
//
// Run keeps no state between calls and does not reset g. Accumulators left by
// an earlier run are added to, so two runs on one grid return the sum of both
// products; call g.Reset first for an independent result.
//
// Shapes are checked before g is touched. WithStrategy and WithWorkers are
// ignored; the grid's own strategy applies.
func Run[T Integer](g *Grid[T], a, b Matrix[T], opts ...Option) (Matrix[T], error) {
	sched, err := NewSchedule(a, b)
	if err != nil {
		return Matrix[T]{}, err
	}
	if sched.Size() != g.Size() {
		return Matrix[T]{}, fmt.Errorf("%w: %dx%d matrices on a %dx%d grid",
			ErrDimensionMismatch, sched.Size(), sched.Size(), g.Size(), g.Size())
	}

	o := buildOptions(opts)
	ctx := context.Background()
	debug := o.logger.Enabled(ctx, slog.LevelDebug)
	total := sched.Len()
	for feed := range sched.All() {
		if err := g.Feed(feed.Rows, feed.Cols); err != nil {
			return Matrix[T]{}, err
		}
		g.Advance()
		if debug {
			o.logger.DebugContext(ctx, "systolic cycle",
				"cycle", feed.Cycle,
				"phase", feed.Phase.String(),
				"rows", feed.Rows,
				"cols", feed.Cols)
		}
		if o.observer != nil {
			o.observer(CycleEvent{Cycle: feed.Cycle, Total: total, Phase: feed.Phase})
		}
	}

	result := g.Snapshot()
	o.logger.Debug("systolic run complete", "size", g.Size(), "cycles", total, "strategy", g.Strategy().String())
	return result, nil
}

// Multiply computes a · b on a freshly built grid. a and b must be square
// matrices of the same size N ≥ 2.
func Multiply[T Integer](a, b Matrix[T], opts ...Option) (Matrix[T], error) {
	if !a.IsSquare() || !b.IsSquare() || a.Rows != b.Rows {
		return Matrix[T]{}, fmt.Errorf("%w: need two equal square matrices, got %dx%d and %dx%d",
			ErrDimensionMismatch, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	g, err := NewGrid[T](a.Rows, opts...)
	if err != nil {
		return Matrix[T]{}, err
	}
	return Run(g, a, b, opts...)
}

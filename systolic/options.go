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
	"log/slog"
	"runtime"
)

// Strategy selects how Grid.Advance updates cells within one cycle. All
// strategies produce identical cell state after every cycle.
type Strategy int

const (
	// StrategySerial updates cells in place, descending row then descending
	// column.
	StrategySerial Strategy = iota

	// StrategyDoubleBuffer computes every cell's next operands from the
	// current state into a second buffer, then swaps buffers.
	StrategyDoubleBuffer

	// StrategyWavefront updates anti-diagonals from the bottom-right corner
	// inwards, running the cells of one anti-diagonal concurrently.
	StrategyWavefront
)

var strategyNames = map[Strategy]string{
	StrategySerial:       "serial",
	StrategyDoubleBuffer: "double-buffer",
	StrategyWavefront:    "wavefront",
}

// String returns the strategy name accepted by ParseStrategy.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy returns the Strategy named name.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfiguration, name)
}

// MinWavefrontCells is the grid cell count below which StrategyWavefront
// updates each anti-diagonal inline rather than spawning goroutines.
var MinWavefrontCells = 64 * 64

// CycleEvent describes one completed simulation cycle.
type CycleEvent struct {
	Cycle int   // zero-based cycle index within the run
	Total int   // cycles in the run, 4N-3
	Phase Phase // compute or drain
}

type options struct {
	strategy Strategy
	workers  int
	logger   *slog.Logger
	observer func(CycleEvent)
}

// Option configures a Grid or a Run.
type Option func(*options)

// WithStrategy sets the cell update strategy. Ignored by Run on an existing
// grid.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithWorkers bounds the goroutines StrategyWavefront uses per anti-diagonal.
// Values below 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger Run reports cycles to at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers fn to be called after every cycle of a Run.
func WithObserver(fn func(CycleEvent)) Option {
	return func(o *options) { o.observer = fn }
}

func buildOptions(opts []Option) options {
	o := options{strategy: StrategySerial}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

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

package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-systolic/internal/cpuinfo"
	"github.com/ajroetker/go-systolic/internal/render"
	"github.com/ajroetker/go-systolic/systolic"
)

var errMismatch = errors.New("systolic result differs from reference product")

func newMultiplyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "multiply",
		Short: "Multiply two random N×N matrices on the simulated array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.multiply(cmd.OutOrStdout())
		},
	}
	flags := cmd.Flags()
	addGridFlags(flags, a.cfg)
	flags.String("strategy", a.cfg.Strategy, "cell update strategy (serial|double-buffer|wavefront)")
	flags.Int("workers", a.cfg.Workers, "wavefront goroutines per anti-diagonal, 0 for GOMAXPROCS")
	flags.Bool("trace", false, "print every cycle's feed vectors")
	flags.Bool("no-verify", false, "skip the reference multiply")
	return cmd
}

func (a *app) multiply(w io.Writer) error {
	cfg := a.cfg
	rng := newRNG(cfg.Seed)
	ma := randomMatrix(rng, cfg.Size, cfg.MaxValue)
	mb := randomMatrix(rng, cfg.Size, cfg.MaxValue)

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	if cfg.Workers == 0 {
		opts = append(opts, systolic.WithWorkers(cpuinfo.Collect().DefaultWorkers()))
	}
	opts = append(opts, systolic.WithLogger(a.logger))

	g, err := systolic.NewGrid[int64](cfg.Size, opts...)
	if err != nil {
		return err
	}

	// First error hit while printing the trace, reported after the run.
	var traceErr error
	if cfg.Trace {
		sched, err := systolic.NewSchedule(ma, mb)
		if err != nil {
			return err
		}
		opts = append(opts, systolic.WithObserver(func(e systolic.CycleEvent) {
			if traceErr != nil {
				return
			}
			feed, err := sched.At(e.Cycle)
			if err == nil {
				err = render.Feed(w, feed)
			}
			traceErr = err
		}))
	}

	for _, m := range []struct {
		title string
		m     systolic.Matrix[int64]
	}{{"matrix a", ma}, {"matrix b", mb}} {
		if err := render.Matrix(w, m.title, m.m); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	start := time.Now()
	result, err := systolic.Run(g, ma, mb, opts...)
	if err != nil {
		return err
	}
	if traceErr != nil {
		return fmt.Errorf("trace: %w", traceErr)
	}
	a.logger.Info("multiply done",
		"size", cfg.Size,
		"strategy", g.Strategy().String(),
		"cycles", g.Cycles(),
		"elapsed", time.Since(start))

	if err := render.Matrix(w, "result", result); err != nil {
		return err
	}
	if !cfg.Verify {
		return nil
	}

	want, err := systolic.ReferenceMultiply(ma, mb)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	if err := render.Matrix(w, "expected", want); err != nil {
		return err
	}
	if !result.Equal(want) {
		return errMismatch
	}
	return nil
}

func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func randomMatrix(rng *rand.Rand, n int, maxValue int64) systolic.Matrix[int64] {
	return systolic.Matrix[int64]{
		Rows: n,
		Cols: n,
		Data: lo.Times(n*n, func(int) int64 { return rng.Int63n(maxValue) }),
	}
}

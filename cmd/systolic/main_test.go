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
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-systolic/internal/config"
	"github.com/ajroetker/go-systolic/systolic"
)

var errClosedPipe = errors.New("closed pipe")

// traceFailWriter accepts everything except trace lines.
type traceFailWriter struct{ bytes.Buffer }

func (w *traceFailWriter) Write(p []byte) (int, error) {
	if bytes.HasPrefix(p, []byte("cycle ")) {
		return 0, errClosedPipe
	}
	return w.Buffer.Write(p)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestMultiplyCommand(t *testing.T) {
	for _, strategy := range []string{"serial", "double-buffer", "wavefront"} {
		t.Run(strategy, func(t *testing.T) {
			out, _, err := execute(t, "multiply", "--size", "5", "--seed", "3", "--strategy", strategy, "--workers", "2")
			require.NoError(t, err)
			for _, heading := range []string{"Matrix A:", "Matrix B:", "Result:", "Expected:"} {
				assert.Contains(t, out, heading)
			}
		})
	}
}

func TestMultiplyTrace(t *testing.T) {
	out, _, err := execute(t, "multiply", "--size", "3", "--seed", "9", "--trace", "--no-verify")
	require.NoError(t, err)
	assert.Equal(t, 4*3-3, strings.Count(out, "cycle "))
	assert.Contains(t, out, "drain")
	assert.NotContains(t, out, "Expected:")
}

func TestMultiplyLogsAtInfo(t *testing.T) {
	_, stderr, err := execute(t, "multiply", "--size", "2", "--seed", "1", "--log-level", "info")
	require.NoError(t, err)
	assert.Contains(t, stderr, "multiply done")
	assert.Contains(t, stderr, "cycles=5")
}

func TestMultiplyFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "systolic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("size: 3\nseed: 4\nmax_value: 3\nverify: false\n"), 0o644))

	out, _, err := execute(t, "--config", path, "multiply", "--size", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Result:")
	assert.NotContains(t, out, "Expected:", "verify comes from the file")
	resultRows := strings.Split(strings.SplitN(out, "Result:\n", 2)[1], "\n")
	assert.Len(t, resultRows, 3, "flag --size 2 wins over the file")
}

func TestMultiplyRejectsBadSettings(t *testing.T) {
	_, _, err := execute(t, "multiply", "--size", "1")
	assert.ErrorIs(t, err, systolic.ErrInvalidConfiguration)

	_, _, err = execute(t, "multiply", "--strategy", "diagonal")
	assert.ErrorIs(t, err, systolic.ErrInvalidConfiguration)

	_, _, err = execute(t, "multiply", "--max", "0")
	assert.Error(t, err)
}

func TestScheduleCommand(t *testing.T) {
	out, _, err := execute(t, "schedule", "--size", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 1+4*2-3)
	assert.Contains(t, lines[1], "compute")
	assert.Contains(t, lines[5], "drain")
}

func TestInfoCommand(t *testing.T) {
	out, _, err := execute(t, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "GOARCH:")
	assert.Contains(t, out, "Default wavefront workers:")
}

func TestMultiplyReportsTraceWriteError(t *testing.T) {
	cfg := config.Default()
	cfg.Size, cfg.Seed, cfg.Trace = 3, 2, true
	a := &app{cfg: cfg, logger: slog.New(slog.DiscardHandler)}

	var w traceFailWriter
	err := a.multiply(&w)
	require.ErrorIs(t, err, errClosedPipe)
	assert.Contains(t, w.String(), "Matrix A:")
	assert.NotContains(t, w.String(), "Expected:", "nothing is printed after a failed trace")
}

func TestScheduleTakesOnlySize(t *testing.T) {
	for _, flag := range []string{"--seed", "--max"} {
		_, _, err := execute(t, "schedule", "--size", "3", flag, "5")
		assert.Error(t, err, "schedule must not accept %s", flag)
	}
}

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

// Package cpuinfo reports the host features detected by Go and picks the
// default worker count for wavefront grids.
package cpuinfo

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sys/cpu"
)

// Feature is one CPU capability flag.
type Feature struct {
	Name    string
	Present bool
	Note    string
}

// Report describes the host the simulator runs on.
type Report struct {
	GOOS       string
	GOARCH     string
	NumCPU     int
	GOMAXPROCS int
	Features   []Feature
}

// Collect gathers the report for the running process.
func Collect() Report {
	r := Report{
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}
	switch runtime.GOARCH {
	case "arm64":
		r.Features = arm64Features()
	case "amd64":
		r.Features = amd64Features()
	}
	return r
}

func arm64Features() []Feature {
	return []Feature{
		{"ASIMD", cpu.ARM64.HasASIMD, "NEON baseline"},
		{"FP", cpu.ARM64.HasFP, "floating point"},
		{"SVE", cpu.ARM64.HasSVE, "Scalable Vector Extension"},
		{"SVE2", cpu.ARM64.HasSVE2, ""},
		{"ATOMICS", cpu.ARM64.HasATOMICS, "Large System Extensions"},
		{"CRC32", cpu.ARM64.HasCRC32, ""},
	}
}

func amd64Features() []Feature {
	return []Feature{
		{"SSE2", cpu.X86.HasSSE2, ""},
		{"SSE41", cpu.X86.HasSSE41, ""},
		{"AVX", cpu.X86.HasAVX, ""},
		{"AVX2", cpu.X86.HasAVX2, ""},
		{"AVX512F", cpu.X86.HasAVX512F, ""},
		{"FMA", cpu.X86.HasFMA, ""},
		{"POPCNT", cpu.X86.HasPOPCNT, ""},
	}
}

// DefaultWorkers is the goroutine bound for one anti-diagonal of a wavefront
// grid: GOMAXPROCS, at least 1.
func (r Report) DefaultWorkers() int {
	return max(1, r.GOMAXPROCS)
}

// Write prints the report in the layout of `systolic info`.
func (r Report) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "GOOS: %s\nGOARCH: %s\nNumCPU: %d\nGOMAXPROCS: %d\n",
		r.GOOS, r.GOARCH, r.NumCPU, r.GOMAXPROCS); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Default wavefront workers: %d\n", r.DefaultWorkers()); err != nil {
		return err
	}
	if len(r.Features) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n=== golang.org/x/sys/cpu (%s) ===\n", r.GOARCH); err != nil {
		return err
	}
	for _, f := range r.Features {
		line := fmt.Sprintf("  Has%-11s %v", f.Name+":", f.Present)
		if f.Note != "" {
			line += " (" + f.Note + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

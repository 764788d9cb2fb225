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
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-systolic/internal/cpuinfo"
	"github.com/ajroetker/go-systolic/internal/render"
	"github.com/ajroetker/go-systolic/systolic"
)

func newScheduleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the skew sequence fed into an N×N array",
		Long: `Print, cycle by cycle, the vectors entering the left and top edges of
the array when multiplying the N×N matrix A[r][c] = r*N+c+1 by itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := a.cfg.Size
			m := systolic.NewMatrix[int64](n, n)
			for i := range m.Data {
				m.Data[i] = int64(i + 1)
			}
			s, err := systolic.NewSchedule(m, m)
			if err != nil {
				return err
			}
			return render.Schedule(cmd.OutOrStdout(), s)
		},
	}
	addSizeFlag(cmd.Flags(), a.cfg)
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print host CPU features and the default wavefront worker count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cpuinfo.Collect().Write(cmd.OutOrStdout())
		},
	}
}

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

// Package render prints matrices, feed vectors and skew tables for the
// systolic command.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/go-systolic/systolic"
)

var titler = cases.Title(language.English)

// Title capitalizes every word of s: "expected product" -> "Expected Product".
func Title(s string) string {
	return titler.String(s)
}

// Matrix writes a titled matrix with right-aligned columns:
//
//	Matrix A:
//	[ 1  2]
//	[13  4]
func Matrix[T systolic.Integer](w io.Writer, title string, m systolic.Matrix[T]) error {
	cells := lo.Map(m.Data, func(v T, _ int) string { return formatInt(v) })
	width := 0
	if len(cells) > 0 {
		width = len(lo.MaxBy(cells, func(a, b string) bool { return len(a) > len(b) }))
	}

	var sb strings.Builder
	sb.WriteString(Title(title))
	sb.WriteString(":\n")
	for r := range m.Rows {
		row := cells[r*m.Cols : (r+1)*m.Cols]
		padded := lo.Map(row, func(s string, _ int) string { return fmt.Sprintf("%*s", width, s) })
		sb.WriteString("[" + strings.Join(padded, " ") + "]\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Feed writes one trace line for a cycle's boundary input.
func Feed[T systolic.Integer](w io.Writer, f systolic.FeedPair[T]) error {
	_, err := fmt.Fprintf(w, "cycle %3d %-7s rows=%v cols=%v\n", f.Cycle, f.Phase, f.Rows, f.Cols)
	return err
}

// Schedule writes the full skew sequence as a table, one line per cycle.
func Schedule[T systolic.Integer](w io.Writer, s *systolic.Schedule[T]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "cycle\tphase\trows (left edge)\tcols (top edge)\t")
	for f := range s.All() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", f.Cycle, f.Phase, joinInts(f.Rows), joinInts(f.Cols))
	}
	return tw.Flush()
}

func joinInts[T systolic.Integer](vs []T) string {
	return strings.Join(lo.Map(vs, func(v T, _ int) string { return formatInt(v) }), " ")
}

func formatInt[T systolic.Integer](v T) string {
	if v < 0 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}

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
	"iter"
)

// Phase distinguishes cycles that inject data from drain cycles.
type Phase int

const (
	// PhaseCompute cycles carry skewed operands (possibly all zero near the
	// end of the phase).
	PhaseCompute Phase = iota
	// PhaseDrain cycles carry only zeros.
	PhaseDrain
)

func (p Phase) String() string {
	switch p {
	case PhaseCompute:
		return "compute"
	case PhaseDrain:
		return "drain"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// FeedPair is the boundary input for one cycle. Rows[r] enters the left edge
// at row r, Cols[c] enters the top edge at column c.
type FeedPair[T Integer] struct {
	Cycle int
	Phase Phase
	Rows  []T
	Cols  []T
}

// Schedule is the skew sequence for multiplying a by b: 3N-2 compute cycles
// followed by N-1 drain cycles.
//
// At compute cycle t, row r receives A[r, t-r] and column c receives
// B[t-c, c], or zero when the index falls outside the matrix. A[r, k] thus
// enters k cycles after A[r, 0], B[k, c] enters k cycles after B[0, c], and
// the pair meets in cell (r, c) on cycle r+c+k. The last pair, A[N-1, N-1]
// and B[N-1, N-1], meets in the bottom-right cell on cycle 3N-3.
type Schedule[T Integer] struct {
	a, b Matrix[T]
	n    int
}

// NewSchedule validates that a and b are square matrices of the same size
// N ≥ 2 and returns their skew sequence. Neither matrix is copied; they must
// not change while the schedule is in use.
func NewSchedule[T Integer](a, b Matrix[T]) (*Schedule[T], error) {
	if !a.IsSquare() || !b.IsSquare() || a.Rows != b.Rows {
		return nil, fmt.Errorf("%w: need two equal square matrices, got %dx%d and %dx%d",
			ErrDimensionMismatch, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	if len(a.Data) != a.Rows*a.Cols || len(b.Data) != b.Rows*b.Cols {
		return nil, fmt.Errorf("%w: matrix data does not match its shape", ErrDimensionMismatch)
	}
	if a.Rows < MinSize {
		return nil, fmt.Errorf("%w: matrix size %d, need at least %d", ErrInvalidConfiguration, a.Rows, MinSize)
	}
	return &Schedule[T]{a: a, b: b, n: a.Rows}, nil
}

// Size returns N.
func (s *Schedule[T]) Size() int { return s.n }

// ComputeCycles returns 3N-2.
func (s *Schedule[T]) ComputeCycles() int { return 3*s.n - 2 }

// DrainCycles returns N-1.
func (s *Schedule[T]) DrainCycles() int { return s.n - 1 }

// Len returns the total number of cycles, 4N-3.
func (s *Schedule[T]) Len() int { return s.ComputeCycles() + s.DrainCycles() }

// At returns the feed for cycle t in freshly allocated vectors.
func (s *Schedule[T]) At(t int) (FeedPair[T], error) {
	if t < 0 || t >= s.Len() {
		return FeedPair[T]{}, fmt.Errorf("%w: cycle %d outside [0, %d)", ErrDimensionMismatch, t, s.Len())
	}
	p := FeedPair[T]{Rows: make([]T, s.n), Cols: make([]T, s.n)}
	s.fill(&p, t)
	return p, nil
}

// All yields the whole sequence in order. The yielded vectors are reused
// between iterations and must not be retained.
func (s *Schedule[T]) All() iter.Seq[FeedPair[T]] {
	return func(yield func(FeedPair[T]) bool) {
		p := FeedPair[T]{Rows: make([]T, s.n), Cols: make([]T, s.n)}
		for t := range s.Len() {
			s.fill(&p, t)
			if !yield(p) {
				return
			}
		}
	}
}

func (s *Schedule[T]) fill(p *FeedPair[T], t int) {
	n := s.n
	p.Cycle = t
	p.Phase = PhaseCompute
	if t >= s.ComputeCycles() {
		p.Phase = PhaseDrain
		clear(p.Rows)
		clear(p.Cols)
		return
	}
	for i := range n {
		var av, bv T
		if k := t - i; k >= 0 && k < n {
			av = s.a.Data[i*n+k]
			bv = s.b.Data[k*n+i]
		}
		p.Rows[i] = av
		p.Cols[i] = bv
	}
}

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

import "errors"

// Sentinel errors returned by the simulator. Returned errors wrap one of these
// with call-specific detail; match them with errors.Is.
var (
	// ErrInvalidConfiguration indicates a grid smaller than 2×2.
	ErrInvalidConfiguration = errors.New("systolic: invalid configuration")

	// ErrDimensionMismatch indicates a matrix or vector whose shape disagrees
	// with the grid size.
	ErrDimensionMismatch = errors.New("systolic: dimension mismatch")
)

// MinSize is the smallest supported grid dimension.
const MinSize = 2

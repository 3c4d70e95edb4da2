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

package matmul

import (
	"errors"
	"fmt"

	"github.com/ajroetker/matbench/matrix"
)

// Errors returned by Assemble.
var (
	ErrEntryCount      = errors.New("matmul: wrong number of entries")
	ErrEntryOutOfRange = errors.New("matmul: entry coordinate out of range")
	ErrDuplicateEntry  = errors.New("matmul: duplicate entry coordinate")
)

// Assemble places entries into a rows x cols matrix by coordinate. The
// entries must cover every cell exactly once.
func Assemble(entries []Entry, rows, cols int) (*matrix.Matrix, error) {
	if len(entries) != rows*cols {
		return nil, fmt.Errorf("got %d, want %d: %w", len(entries), rows*cols, ErrEntryCount)
	}

	c := matrix.New(rows, cols)
	seen := make([]bool, rows*cols)
	for _, e := range entries {
		if e.X < 0 || e.X >= cols || e.Y < 0 || e.Y >= rows {
			return nil, fmt.Errorf("(%d, %d) in %dx%d: %w", e.X, e.Y, rows, cols, ErrEntryOutOfRange)
		}
		idx := e.Y*cols + e.X
		if seen[idx] {
			return nil, fmt.Errorf("(%d, %d): %w", e.X, e.Y, ErrDuplicateEntry)
		}
		seen[idx] = true
		c.Set(e.Y, e.X, e.Value)
	}
	return c, nil
}

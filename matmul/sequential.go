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

import "github.com/ajroetker/matbench/matrix"

// Sequential computes C = A * B on the calling goroutine, visiting cells in
// Grid order and writing each one straight into the result.
func Sequential(a, b *matrix.Matrix) *matrix.Matrix {
	checkShapes(a, b)

	c := matrix.New(a.Rows(), b.Cols())
	for _, coord := range Grid(a.Rows(), b.Cols()) {
		c.Set(coord.Y, coord.X, Dot(a, b, coord))
	}
	return c
}

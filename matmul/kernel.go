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
	"fmt"

	"github.com/ajroetker/matbench/matrix"
)

// Dot computes output cell c of A * B: the inner product of row c.Y of a
// and column c.X of b, summed in ascending index order. Each product is
// rounded before it is added, so the result is the same on every platform.
//
// It panics if a's column count differs from b's row count. Dot never
// writes to a or b and is safe to call from many goroutines at once.
func Dot(a, b *matrix.Matrix, c Coordinate) float64 {
	checkShapes(a, b)

	row := a.Row(c.Y)
	var sum float64
	for i, av := range row {
		sum += float64(av * b.At(i, c.X))
	}
	return sum
}

func checkShapes(a, b *matrix.Matrix) {
	if a.Cols() != b.Rows() {
		panic(fmt.Sprintf("matmul: cannot multiply %dx%d by %dx%d", a.Rows(), a.Cols(), b.Rows(), b.Cols()))
	}
}

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

import "fmt"

// Coordinate identifies one output cell: X is the column, Y the row.
type Coordinate struct {
	X, Y int
}

// Coordinates returns every (x, y) with 0 <= x, y < n, rows outer and
// columns inner: (0,0), (1,0), ..., (n-1,0), (0,1), ..., (n-1,n-1).
func Coordinates(n int) []Coordinate {
	return Grid(n, n)
}

// Grid is Coordinates for a rows x cols output.
func Grid(rows, cols int) []Coordinate {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matmul: negative grid %dx%d", rows, cols))
	}
	coords := make([]Coordinate, 0, rows*cols)
	for y := range rows {
		for x := range cols {
			coords = append(coords, Coordinate{X: x, Y: y})
		}
	}
	return coords
}

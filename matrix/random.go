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

package matrix

import (
	"fmt"
	"math/rand/v2"
)

// NewRand returns a PCG-backed generator and the seed it was built from.
// A zero seed is replaced by one drawn from process entropy, so callers can
// always report the seed that reproduces a run.
func NewRand(seed uint64) (*rand.Rand, uint64) {
	for seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed
}

// Randomize overwrites every cell of a and b with independent values drawn
// uniformly from [0, 1). Cells are visited row by row, alternating between
// a and b. It panics if the two matrices differ in shape.
func Randomize(rng *rand.Rand, a, b *Matrix) {
	if a.rows != b.rows || a.cols != b.cols {
		panic(fmt.Sprintf("matrix: cannot randomize %dx%d and %dx%d together", a.rows, a.cols, b.rows, b.cols))
	}
	for i := range a.data {
		a.data[i] = rng.Float64()
		b.data[i] = rng.Float64()
	}
}

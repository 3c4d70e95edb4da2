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

// Package matmul computes dense matrix products one output cell at a time,
// either sequentially or spread over a worker pool.
//
// Cells are addressed by Coordinate{X, Y}, where X is the column and Y the
// row of C = A * B:
//
//	C[y][x] = sum(A[y][i] * B[i][x]) for i in 0..K-1
//
// Every cell is an independent work item. The sequential driver writes cells
// straight into a result matrix; the parallel drivers return one Entry per
// cell, which Assemble turns back into a matrix:
//
//	pool, _ := workerpool.New(8)
//	defer pool.Close()
//
//	entries := matmul.Parallel(pool, a, b)
//	c, err := matmul.Assemble(entries, a.Rows(), b.Cols())
//
// The inputs are never written by any driver, which is the only
// synchronization the parallel paths need.
package matmul

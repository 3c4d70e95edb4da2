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
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/matbench/internal/workerpool"
	"github.com/ajroetker/matbench/matrix"
)

// ErrInvalidParallelism is returned when fewer than one worker is requested.
var ErrInvalidParallelism = errors.New("matmul: parallelism must be at least 1")

// Entry is one computed output cell paired with its coordinate.
type Entry struct {
	X, Y  int
	Value float64
}

// Coordinate returns the cell the entry belongs to.
func (e Entry) Coordinate() Coordinate {
	return Coordinate{X: e.X, Y: e.Y}
}

// Parallel computes every cell of A * B on pool and returns one Entry per
// cell. Each work item writes only its own slot of the result; a and b are
// shared read-only.
//
// The order of the returned entries is not part of the contract. Use
// Assemble to rebuild the product matrix.
func Parallel(pool *workerpool.Pool, a, b *matrix.Matrix) []Entry {
	checkShapes(a, b)

	coords := Grid(a.Rows(), b.Cols())
	return workerpool.Map(pool, len(coords), func(i int) Entry {
		c := coords[i]
		return Entry{X: c.X, Y: c.Y, Value: Dot(a, b, c)}
	})
}

// ParallelGroup is Parallel built on errgroup instead of a persistent pool.
// Exactly p goroutines pull batches of coordinates from a shared counter.
// It returns ctx.Err() if ctx is cancelled before all cells are computed.
func ParallelGroup(ctx context.Context, p int, a, b *matrix.Matrix) ([]Entry, error) {
	if p < 1 {
		return nil, ErrInvalidParallelism
	}
	checkShapes(a, b)

	coords := Grid(a.Rows(), b.Cols())
	n := len(coords)
	out := make([]Entry, n)
	if n == 0 {
		return out, nil
	}

	batchSize := workerpool.BatchSize(n, p)
	var next atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p)
	for range p {
		g.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				start := int(next.Add(1)-1) * batchSize
				if start >= n {
					return nil
				}
				for i := start; i < min(start+batchSize, n); i++ {
					c := coords[i]
					out[i] = Entry{X: c.X, Y: c.Y, Value: Dot(a, b, c)}
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

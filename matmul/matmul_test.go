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
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/matbench/internal/workerpool"
	"github.com/ajroetker/matbench/matrix"
)

// fixedMatrix fills an n x n matrix with deterministic, non-trivial values.
func fixedMatrix(n int, scale float64) *matrix.Matrix {
	m := matrix.NewSquare(n)
	for r := range n {
		for c := range n {
			m.Set(r, c, scale*float64((r*n+c)%11)-float64(c)/3)
		}
	}
	return m
}

// dotReference is the textbook inner product, kept independent of Dot.
func dotReference(a, b *matrix.Matrix, x, y int) float64 {
	var sum float64
	for i := range a.Cols() {
		sum += float64(a.At(y, i) * b.At(i, x))
	}
	return sum
}

func newPool(t testing.TB, n int) *workerpool.Pool {
	t.Helper()
	pool, err := workerpool.New(n)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func sortEntries(entries []Entry) []Entry {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(e1, e2 Entry) int {
		if e1.Y != e2.Y {
			return e1.Y - e2.Y
		}
		return e1.X - e2.X
	})
	return sorted
}

func TestCoordinatesOrder(t *testing.T) {
	want := []Coordinate{
		{0, 0}, {1, 0}, {2, 0},
		{0, 1}, {1, 1}, {2, 1},
		{0, 2}, {1, 2}, {2, 2},
	}
	if diff := cmp.Diff(want, Coordinates(3)); diff != "" {
		t.Errorf("Coordinates(3) mismatch (-want +got):\n%s", diff)
	}
}

func TestCoordinatesCoverage(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17} {
		coords := Coordinates(n)
		require.Len(t, coords, n*n)
		assert.Len(t, lo.Uniq(coords), n*n, "n=%d: duplicates", n)
		for _, c := range coords {
			assert.True(t, c.X >= 0 && c.X < n && c.Y >= 0 && c.Y < n, "n=%d: %v out of range", n, c)
		}
	}
}

func TestCoordinatesBoundaries(t *testing.T) {
	assert.Empty(t, Coordinates(0))
	assert.Equal(t, []Coordinate{{0, 0}}, Coordinates(1))
	assert.Panics(t, func() { Coordinates(-1) })
}

func TestGridNonSquare(t *testing.T) {
	assert.Equal(t, []Coordinate{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}, Grid(2, 3))
}

func TestDot2x2(t *testing.T) {
	a, err := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	b, err := matrix.FromRows([][]float64{{5, 6}, {7, 8}})
	require.NoError(t, err)

	tests := []struct {
		c    Coordinate
		want float64
	}{
		{Coordinate{0, 0}, 1*5 + 2*7},
		{Coordinate{1, 0}, 1*6 + 2*8},
		{Coordinate{0, 1}, 3*5 + 4*7},
		{Coordinate{1, 1}, 3*6 + 4*8},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Dot(a, b, tc.c), "Dot at %v", tc.c)
	}

	want, _ := matrix.FromRows([][]float64{{19, 22}, {43, 50}})
	got := Sequential(a, b)
	assert.True(t, want.Equal(got), "got %v, want %v", got, want)
}

func TestDotExact(t *testing.T) {
	for _, n := range []int{1, 3, 8, 13} {
		a, b := fixedMatrix(n, 0.1), fixedMatrix(n, 1.7)
		for _, c := range Coordinates(n) {
			// Same summation order, so equality is bit-for-bit.
			require.Equal(t, dotReference(a, b, c.X, c.Y), Dot(a, b, c), "n=%d at %v", n, c)
		}
	}
}

func TestDotNonSquare(t *testing.T) {
	// 2x3 * 3x2 = 2x2
	a, _ := matrix.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	b, _ := matrix.FromRows([][]float64{{7, 8}, {9, 10}, {11, 12}})
	want, _ := matrix.FromRows([][]float64{{58, 64}, {139, 154}})

	assert.True(t, want.Equal(Sequential(a, b)))

	c, err := Assemble(Parallel(newPool(t, 2), a, b), 2, 2)
	require.NoError(t, err)
	assert.True(t, want.Equal(c))
}

func TestDotShapeMismatchPanics(t *testing.T) {
	a := matrix.New(2, 3)
	b := matrix.New(2, 3)
	assert.Panics(t, func() { Dot(a, b, Coordinate{0, 0}) })
	assert.Panics(t, func() { Sequential(a, b) })
	assert.Panics(t, func() { Parallel(newPool(t, 2), a, b) })
}

func TestSequentialMatchesKernel(t *testing.T) {
	for _, n := range []int{1, 4, 9} {
		rng, _ := matrix.NewRand(uint64(n))
		a, b := matrix.NewSquare(n), matrix.NewSquare(n)
		matrix.Randomize(rng, a, b)

		c := Sequential(a, b)
		require.Equal(t, n*n, c.Len())
		for _, coord := range Coordinates(n) {
			require.Equal(t, Dot(a, b, coord), c.At(coord.Y, coord.X), "n=%d at %v", n, coord)
		}
	}
}

func TestSequentialEmpty(t *testing.T) {
	c := Sequential(matrix.NewSquare(0), matrix.NewSquare(0))
	assert.Equal(t, 0, c.Len())
}

func TestParallelMatchesKernel(t *testing.T) {
	for _, n := range []int{1, 2, 7, 32} {
		for _, p := range []int{1, 3, 8} {
			t.Run(fmt.Sprintf("n=%d/p=%d", n, p), func(t *testing.T) {
				rng, _ := matrix.NewRand(uint64(n*100 + p))
				a, b := matrix.NewSquare(n), matrix.NewSquare(n)
				matrix.Randomize(rng, a, b)

				entries := Parallel(newPool(t, p), a, b)
				require.Len(t, entries, n*n)

				coords := lo.Map(entries, func(e Entry, _ int) Coordinate { return e.Coordinate() })
				assert.ElementsMatch(t, Coordinates(n), coords)
				for _, e := range entries {
					require.Equal(t, Dot(a, b, e.Coordinate()), e.Value, "at %v", e.Coordinate())
				}
			})
		}
	}
}

func TestParallelEmpty(t *testing.T) {
	entries := Parallel(newPool(t, 4), matrix.NewSquare(0), matrix.NewSquare(0))
	assert.Empty(t, entries)
}

func TestParallelPeakBounded(t *testing.T) {
	pool := newPool(t, 3)
	a, b := fixedMatrix(24, 0.5), fixedMatrix(24, 0.25)
	Parallel(pool, a, b)
	assert.LessOrEqual(t, pool.Peak(), 3)
}

func TestSequentialParallelCrossCheck(t *testing.T) {
	n := 19
	a, b := fixedMatrix(n, 0.3), fixedMatrix(n, 2.1)
	seq := Sequential(a, b)

	pool := newPool(t, 4)
	par, err := Assemble(Parallel(pool, a, b), n, n)
	require.NoError(t, err)
	if diff := cmp.Diff(seq.ToRows(), par.ToRows()); diff != "" {
		t.Errorf("pool result mismatch (-sequential +parallel):\n%s", diff)
	}

	entries, err := ParallelGroup(context.Background(), 4, a, b)
	require.NoError(t, err)
	grp, err := Assemble(entries, n, n)
	require.NoError(t, err)
	if diff := cmp.Diff(seq.ToRows(), grp.ToRows()); diff != "" {
		t.Errorf("errgroup result mismatch (-sequential +parallel):\n%s", diff)
	}

	// Sorted entries line up with the sequential matrix in Coordinates order.
	for i, e := range sortEntries(entries) {
		c := Coordinates(n)[i]
		require.Equal(t, c, e.Coordinate())
		require.Equal(t, seq.At(c.Y, c.X), e.Value)
	}
}

func TestRepeatedRunsInOneProcess(t *testing.T) {
	a, b := fixedMatrix(10, 1), fixedMatrix(10, 2)
	want := Sequential(a, b)
	for p := 1; p <= 4; p++ {
		pool, err := workerpool.New(p)
		require.NoError(t, err)
		got, err := Assemble(Parallel(pool, a, b), 10, 10)
		pool.Close()
		require.NoError(t, err)
		require.True(t, want.Equal(got), "p=%d", p)
		require.True(t, want.Equal(Sequential(a, b)))
	}
}

func TestParallelGroupInvalid(t *testing.T) {
	a := matrix.NewSquare(2)
	_, err := ParallelGroup(context.Background(), 0, a, a)
	assert.ErrorIs(t, err, ErrInvalidParallelism)
}

func TestParallelGroupCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := fixedMatrix(16, 1)
	entries, err := ParallelGroup(ctx, 2, a, a)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, entries)
}

func TestParallelGroupEmpty(t *testing.T) {
	entries, err := ParallelGroup(context.Background(), 3, matrix.NewSquare(0), matrix.NewSquare(0))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr error
	}{
		{"short", []Entry{{0, 0, 1}}, ErrEntryCount},
		{"out of range", []Entry{{0, 0, 1}, {2, 0, 1}, {0, 1, 1}, {1, 1, 1}}, ErrEntryOutOfRange},
		{"negative", []Entry{{0, 0, 1}, {1, 0, 1}, {0, -1, 1}, {1, 1, 1}}, ErrEntryOutOfRange},
		{"duplicate", []Entry{{0, 0, 1}, {1, 0, 1}, {1, 0, 2}, {1, 1, 1}}, ErrDuplicateEntry},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Assemble(tc.entries, 2, 2)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestAssembleEmpty(t *testing.T) {
	c, err := Assemble(nil, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func BenchmarkSequential(b *testing.B) {
	m1, m2 := fixedMatrix(128, 0.5), fixedMatrix(128, 0.25)
	for b.Loop() {
		Sequential(m1, m2)
	}
}

func BenchmarkParallel(b *testing.B) {
	m1, m2 := fixedMatrix(128, 0.5), fixedMatrix(128, 0.25)
	for _, p := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("p=%d", p), func(b *testing.B) {
			pool := newPool(b, p)
			for b.Loop() {
				Parallel(pool, m1, m2)
			}
		})
	}
}

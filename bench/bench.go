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

// Package bench times sequential and parallel matrix multiplication on
// random square inputs.
//
// Each run allocates two N x N inputs, fills them from a seeded generator,
// and starts the clock only once the inputs are ready. The clock stops after
// the last result is written (sequential) or collected (parallel).
//
//	res, err := bench.RunParallel(ctx, bench.Config{N: 512, Parallelism: 8})
//	if err != nil {
//	    return err
//	}
//	res.WriteText(os.Stdout)
//
// Parallel runs build their own worker pool and close it before returning,
// so any number of runs can share one process.
package bench

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"

	"github.com/ajroetker/matbench/internal/workerpool"
	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/matrix"
)

// Mode names the driver a Result came from.
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeParallel   Mode = "parallel"
)

// Result is the outcome of one timed run.
type Result struct {
	Mode        Mode          `json:"mode"`
	N           int           `json:"n"`
	Parallelism int           `json:"parallelism,omitempty"`
	Strategy    Strategy      `json:"strategy,omitempty"`
	Seed        uint64        `json:"seed"`
	Count       int           `json:"count"`
	Elapsed     time.Duration `json:"elapsed_ns"`
	// Checksum is the sum of all computed cells.
	Checksum float64 `json:"checksum"`
}

// inputs allocates and randomizes the two N x N operands.
func inputs(n int, seed uint64) (a, b *matrix.Matrix, used uint64) {
	rng, used := matrix.NewRand(seed)
	a, b = matrix.NewSquare(n), matrix.NewSquare(n)
	matrix.Randomize(rng, a, b)
	return a, b, used
}

// RunSequential times matmul.Sequential on fresh random inputs.
func RunSequential(cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	a, b, seed := inputs(cfg.N, cfg.Seed)
	res, _ := timeSequential(a, b)
	res.Seed = seed
	return res, nil
}

func timeSequential(a, b *matrix.Matrix) (Result, *matrix.Matrix) {
	start := time.Now()
	c := matmul.Sequential(a, b)
	elapsed := time.Since(start)

	return Result{
		Mode:     ModeSequential,
		N:        a.Rows(),
		Count:    c.Len(),
		Elapsed:  elapsed,
		Checksum: c.Sum(),
	}, c
}

// RunParallel times the parallel driver selected by cfg.Strategy on fresh
// random inputs, using exactly cfg.Parallelism workers.
func RunParallel(ctx context.Context, cfg Config) (Result, error) {
	if err := cfg.ValidateParallel(); err != nil {
		return Result{}, err
	}
	a, b, seed := inputs(cfg.N, cfg.Seed)
	res, _, err := timeParallel(ctx, cfg, a, b)
	if err != nil {
		return Result{}, err
	}
	res.Seed = seed
	return res, nil
}

func timeParallel(ctx context.Context, cfg Config, a, b *matrix.Matrix) (Result, []matmul.Entry, error) {
	var pool *workerpool.Pool
	if cfg.strategy() == StrategyPool {
		var err error
		if pool, err = workerpool.New(cfg.Parallelism); err != nil {
			return Result{}, nil, fmt.Errorf("building worker pool: %w", err)
		}
		defer pool.Close()
	}

	start := time.Now()
	var entries []matmul.Entry
	switch cfg.strategy() {
	case StrategyPool:
		entries = matmul.Parallel(pool, a, b)
	case StrategyErrgroup:
		var err error
		if entries, err = matmul.ParallelGroup(ctx, cfg.Parallelism, a, b); err != nil {
			return Result{}, nil, err
		}
	}
	elapsed := time.Since(start)

	return Result{
		Mode:        ModeParallel,
		N:           a.Rows(),
		Parallelism: cfg.Parallelism,
		Strategy:    cfg.strategy(),
		Count:       len(entries),
		Elapsed:     elapsed,
		Checksum:    lo.SumBy(entries, func(e matmul.Entry) float64 { return e.Value }),
	}, entries, nil
}

// Comparison is the outcome of Compare.
type Comparison struct {
	Sequential Result `json:"sequential"`
	Parallel   Result `json:"parallel"`
	// Identical reports whether both drivers produced bit-identical products.
	Identical bool `json:"identical"`
	// Speedup is sequential time over parallel time.
	Speedup float64 `json:"speedup"`
}

// Compare runs both drivers on the same seeded inputs, rebuilds the parallel
// product from its entries and checks it against the sequential one.
func Compare(ctx context.Context, cfg Config) (Comparison, error) {
	if err := cfg.ValidateParallel(); err != nil {
		return Comparison{}, err
	}
	a, b, seed := inputs(cfg.N, cfg.Seed)

	seqRes, seqC := timeSequential(a, b)
	parRes, entries, err := timeParallel(ctx, cfg, a, b)
	if err != nil {
		return Comparison{}, err
	}
	seqRes.Seed, parRes.Seed = seed, seed

	parC, err := matmul.Assemble(entries, cfg.N, cfg.N)
	if err != nil {
		return Comparison{}, fmt.Errorf("assembling parallel result: %w", err)
	}

	cmp := Comparison{
		Sequential: seqRes,
		Parallel:   parRes,
		Identical:  seqC.Equal(parC),
	}
	if parRes.Elapsed > 0 {
		cmp.Speedup = float64(seqRes.Elapsed) / float64(parRes.Elapsed)
	}
	return cmp, nil
}

// MultiplyMatrixSequential runs the sequential benchmark on n x n inputs
// drawn from process entropy and prints the result count and elapsed time
// to w.
func MultiplyMatrixSequential(w io.Writer, n int) error {
	res, err := RunSequential(Config{N: n})
	if err != nil {
		return err
	}
	return res.WriteText(w)
}

// MultiplyMatrixParallel runs the parallel benchmark with a pool of exactly
// parallelism workers and prints the result count and elapsed time to w.
func MultiplyMatrixParallel(w io.Writer, n, parallelism int) error {
	res, err := RunParallel(context.Background(), Config{N: n, Parallelism: parallelism})
	if err != nil {
		return err
	}
	return res.WriteText(w)
}

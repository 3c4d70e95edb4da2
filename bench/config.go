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

package bench

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ajroetker/matbench/matmul"
)

// Strategy selects how the parallel benchmark fans work out.
type Strategy string

const (
	// StrategyPool uses a persistent worker pool created for the run.
	StrategyPool Strategy = "pool"
	// StrategyErrgroup uses an errgroup limited to Parallelism goroutines.
	StrategyErrgroup Strategy = "errgroup"
)

// Strategies lists the supported strategies, default first.
func Strategies() []Strategy {
	return []Strategy{StrategyPool, StrategyErrgroup}
}

// Configuration errors.
var (
	ErrInvalidSize        = errors.New("bench: matrix size must not be negative")
	ErrInvalidParallelism = matmul.ErrInvalidParallelism
	ErrUnknownStrategy    = errors.New("bench: unknown strategy")
)

// Config describes one benchmark run.
type Config struct {
	// N is the size of the square input matrices.
	N int
	// Parallelism is the exact number of workers for parallel runs.
	Parallelism int
	// Seed for the input generator; 0 draws one from process entropy.
	Seed uint64
	// Strategy for parallel runs; empty means StrategyPool.
	Strategy Strategy
}

// Validate checks the fields used by every run.
func (c Config) Validate() error {
	if c.N < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, c.N)
	}
	return nil
}

// ValidateParallel also checks the fields used by parallel runs.
func (c Config) ValidateParallel() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidParallelism, c.Parallelism)
	}
	if !slices.Contains(Strategies(), c.strategy()) {
		return fmt.Errorf("%w %q", ErrUnknownStrategy, c.Strategy)
	}
	return nil
}

func (c Config) strategy() Strategy {
	if c.Strategy == "" {
		return StrategyPool
	}
	return c.Strategy
}

// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a fixed-size, caller-owned worker pool.
//
// A Pool is created with an exact number of workers, used for one or more
// parallel loops, and closed by its owner. There is no process-wide pool:
// each benchmark run builds its own, so sequential and parallel runs can be
// repeated freely within one process.
//
// Usage:
//
//	pool, err := workerpool.New(8)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	out := workerpool.Map(pool, n, func(i int) float64 {
//	    return compute(i)
//	})
package workerpool

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrInvalidSize is returned by New when asked for fewer than one worker.
var ErrInvalidSize = errors.New("workerpool: number of workers must be at least 1")

// Pool is a persistent worker pool. Workers are spawned once at creation and
// reused by every loop until Close is called.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool

	running atomic.Int32
	peak    atomic.Int32
}

// workItem represents one worker's share of a parallel loop.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with exactly numWorkers workers.
func New(numWorkers int) (*Pool, error) {
	if numWorkers < 1 {
		return nil, ErrInvalidSize
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p, nil
}

func (p *Pool) worker() {
	for item := range p.workC {
		p.enter()
		item.fn()
		p.running.Add(-1)
		item.barrier.Done()
	}
}

// enter records a worker starting an item and raises the peak if needed.
func (p *Pool) enter() {
	now := p.running.Add(1)
	for {
		old := p.peak.Load()
		if now <= old || p.peak.CompareAndSwap(old, now) {
			return
		}
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Peak returns the largest number of workers seen running work at once.
// It never exceeds NumWorkers.
func (p *Pool) Peak() int {
	return int(p.peak.Load())
}

// Close shuts down the worker pool. Pending work completes first.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// dispatch hands one item per worker to the pool and waits for all of them.
func (p *Pool) dispatch(workers int, fn func()) {
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{fn: fn, barrier: &wg}
	}
	wg.Wait()
}

// ParallelFor calls fn over [0, n) split into one contiguous chunk per
// worker. Blocks until all chunks complete.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if p.closed.Load() {
		fn(0, n)
		return
	}

	workers := min(p.numWorkers, n)
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for i := range workers {
		start := i * chunkSize
		if start >= n {
			break
		}
		end := min(start+chunkSize, n)
		wg.Add(1)
		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}

// ParallelForBatched calls fn over [0, n) in batches of batchSize. Workers
// grab the next batch from a shared atomic counter, so faster workers take
// more batches. Blocks until all batches complete.
func (p *Pool) ParallelForBatched(n, batchSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if p.closed.Load() {
		fn(0, n)
		return
	}

	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)

	var nextBatch atomic.Int64
	p.dispatch(workers, func() {
		for {
			start := int(nextBatch.Add(1)-1) * batchSize
			if start >= n {
				return
			}
			fn(start, min(start+batchSize, n))
		}
	})
}

// Map calls fn for every index in [0, n) on the pool and returns the results
// in index order. Each call writes only its own slot of the output.
func Map[T any](p *Pool, n int, fn func(i int) T) []T {
	if n <= 0 {
		return []T{}
	}
	out := make([]T, n)
	p.ParallelForBatched(n, BatchSize(n, p.NumWorkers()), func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = fn(i)
		}
	})
	return out
}

// BatchSize picks a batch size giving each worker several batches to balance
// over, without grabbing the counter once per item.
func BatchSize(n, workers int) int {
	const batchesPerWorker = 8
	if workers < 1 {
		workers = 1
	}
	return max(1, n/(workers*batchesPerWorker))
}

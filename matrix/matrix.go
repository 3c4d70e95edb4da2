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

// Package matrix provides the dense float64 matrix used by the benchmark
// drivers, and the randomizer that fills benchmark inputs.
//
// Storage is a single row-major slice:
//
//	m := matrix.New(rows, cols)
//	m.Set(r, c, v)      // stored at data[r*cols+c]
//
// A matrix is written while it is being filled, then only read while a
// product is computed, so it can be shared by any number of goroutines
// during a multiplication without locking.
package matrix

import (
	"errors"
	"fmt"
	"math"
)

// ErrRagged is returned by FromRows when the rows have different lengths.
var ErrRagged = errors.New("matrix: rows have different lengths")

// Matrix is a rows x cols matrix of float64 stored row-major.
type Matrix struct {
	rows, cols int
	data       []float64
}

// New returns a zero-filled rows x cols matrix. It panics if either
// dimension is negative.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix: negative dimensions %dx%d", rows, cols))
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// NewSquare returns a zero-filled n x n matrix.
func NewSquare(n int) *Matrix {
	return New(n, n)
}

// FromRows builds a matrix from literal rows, copying them.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	cols := len(rows[0])
	m := New(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", r, len(row), cols, ErrRagged)
		}
		copy(m.data[r*cols:], row)
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Len returns the total number of elements.
func (m *Matrix) Len() int { return len(m.data) }

// At returns the value at (row, col).
func (m *Matrix) At(row, col int) float64 {
	return m.data[m.index(row, col)]
}

// Set stores v at (row, col).
func (m *Matrix) Set(row, col int, v float64) {
	m.data[m.index(row, col)] = v
}

func (m *Matrix) index(row, col int) int {
	if uint(row) >= uint(m.rows) || uint(col) >= uint(m.cols) {
		panic(fmt.Sprintf("matrix: index (%d, %d) out of range for %dx%d", row, col, m.rows, m.cols))
	}
	return row*m.cols + col
}

// Row returns row r as a slice aliasing the matrix storage.
func (m *Matrix) Row(r int) []float64 {
	if uint(r) >= uint(m.rows) {
		panic(fmt.Sprintf("matrix: row %d out of range for %dx%d", r, m.rows, m.cols))
	}
	return m.data[r*m.cols : (r+1)*m.cols]
}

// ToRows returns a copy of the matrix as a slice of rows.
func (m *Matrix) ToRows() [][]float64 {
	out := make([][]float64, m.rows)
	for r := range out {
		out[r] = append([]float64(nil), m.Row(r)...)
	}
	return out
}

// Sum returns the sum of all elements, accumulated in storage order.
func (m *Matrix) Sum() float64 {
	var s float64
	for _, v := range m.data {
		s += v
	}
	return s
}

// Equal reports whether m and other have the same shape and bit-identical
// elements. NaNs with equal payloads compare equal.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, v := range m.data {
		if math.Float64bits(v) != math.Float64bits(other.data[i]) {
			return false
		}
	}
	return true
}

// String formats small matrices for test failures and debugging.
func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix(%dx%d)%v", m.rows, m.cols, m.ToRows())
}

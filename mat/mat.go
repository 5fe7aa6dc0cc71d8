// Package mat implements the dense matrix and reverse-mode autodiff graph
// backing the trainable classifiers: embedding lookup, matrix products,
// elementwise gates and the backward pass that accumulates gradients into
// each matrix's DW buffer.
package mat

import (
	"fmt"
	"math/rand"
)

// Mat is a row-major Rows x Cols matrix with a weight buffer W and a
// gradient buffer DW of the same shape.
type Mat struct {
	Rows int
	Cols int
	W    []float64
	DW   []float64
}

// NewMat returns a zero matrix of the given shape.
func NewMat(rows, cols int) *Mat {
	must(rows >= 0 && cols >= 0, "mat: dimensions must be non-negative")
	return &Mat{
		Rows: rows,
		Cols: cols,
		W:    make([]float64, rows*cols),
		DW:   make([]float64, rows*cols),
	}
}

// NewRandMat returns a matrix with weights drawn from a normal
// distribution with the given mean and standard deviation, using the
// global math/rand source. Seed it for reproducible initialization.
func NewRandMat(rows, cols int, mu, stddev float64) *Mat {
	m := NewMat(rows, cols)
	for i := range m.W {
		m.W[i] = rand.NormFloat64()*stddev + mu
	}
	return m
}

// Get returns the element at (row, col).
func (m *Mat) Get(row, col int) float64 {
	must(row >= 0 && row < m.Rows && col >= 0 && col < m.Cols,
		fmt.Sprintf("mat: Get(%d,%d) out of bounds for %dx%d", row, col, m.Rows, m.Cols))
	return m.W[row*m.Cols+col]
}

// Set assigns the element at (row, col).
func (m *Mat) Set(row, col int, v float64) {
	must(row >= 0 && row < m.Rows && col >= 0 && col < m.Cols,
		fmt.Sprintf("mat: Set(%d,%d) out of bounds for %dx%d", row, col, m.Rows, m.Cols))
	m.W[row*m.Cols+col] = v
}

// ZeroGrads clears the gradient buffer.
func (m *Mat) ZeroGrads() {
	for i := range m.DW {
		m.DW[i] = 0
	}
}

// Clone copies the weights into a fresh matrix with zero gradients.
func (m *Mat) Clone() *Mat {
	out := NewMat(m.Rows, m.Cols)
	copy(out.W, m.W)
	return out
}

func must(condition bool, message string) {
	if !condition {
		panic(message)
	}
}

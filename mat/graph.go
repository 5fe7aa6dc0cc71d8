package mat

import (
	"fmt"
	"math"

	"github.com/neurlang/sentiment/parallel"
)

// Graph records the operations of a forward pass so Backward can replay
// them in reverse, accumulating gradients. A graph built with
// needsBackprop == false records nothing and is used for evaluation.
// Graphs are built and replayed from one goroutine; only the forward row
// loop inside Mul fans out, and it records nothing.
type Graph struct {
	NeedsBackprop bool

	backprop []func()
}

// NewGraph returns an empty computation graph.
func NewGraph(needsBackprop bool) *Graph {
	return &Graph{NeedsBackprop: needsBackprop}
}

// Backward runs the recorded backward steps in reverse order.
func (g *Graph) Backward() {
	for i := len(g.backprop) - 1; i >= 0; i-- {
		g.backprop[i]()
	}
}

func (g *Graph) addBackward(f func()) {
	if g.NeedsBackprop {
		g.backprop = append(g.backprop, f)
	}
}

func (g *Graph) applyActivation(m *Mat, fn func(float64) float64, derivative func(in, out float64) float64) *Mat {
	out := NewMat(m.Rows, m.Cols)
	for i := range m.W {
		out.W[i] = fn(m.W[i])
	}
	if g.NeedsBackprop {
		g.addBackward(func() {
			for i := range m.W {
				m.DW[i] += derivative(m.W[i], out.W[i]) * out.DW[i]
			}
		})
	}
	return out
}

// Tanh applies tanh elementwise.
func (g *Graph) Tanh(m *Mat) *Mat {
	return g.applyActivation(m, math.Tanh, func(in, out float64) float64 {
		return 1.0 - out*out
	})
}

// Sigmoid applies the logistic function elementwise.
func (g *Graph) Sigmoid(m *Mat) *Mat {
	return g.applyActivation(m, func(x float64) float64 {
		return 1.0 / (1.0 + math.Exp(-x))
	}, func(in, out float64) float64 {
		return out * (1.0 - out)
	})
}

// Add returns the elementwise sum of two equally shaped matrices.
func (g *Graph) Add(m1, m2 *Mat) *Mat {
	must(m1.Rows == m2.Rows && m1.Cols == m2.Cols,
		fmt.Sprintf("mat: Add shape mismatch %dx%d vs %dx%d", m1.Rows, m1.Cols, m2.Rows, m2.Cols))
	out := NewMat(m1.Rows, m1.Cols)
	for i := range m1.W {
		out.W[i] = m1.W[i] + m2.W[i]
	}
	if g.NeedsBackprop {
		g.addBackward(func() {
			for i := range m1.W {
				m1.DW[i] += out.DW[i]
				m2.DW[i] += out.DW[i]
			}
		})
	}
	return out
}

// Eltmul returns the elementwise product of two equally shaped matrices.
func (g *Graph) Eltmul(m1, m2 *Mat) *Mat {
	must(m1.Rows == m2.Rows && m1.Cols == m2.Cols,
		fmt.Sprintf("mat: Eltmul shape mismatch %dx%d vs %dx%d", m1.Rows, m1.Cols, m2.Rows, m2.Cols))
	out := NewMat(m1.Rows, m1.Cols)
	for i := range m1.W {
		out.W[i] = m1.W[i] * m2.W[i]
	}
	if g.NeedsBackprop {
		g.addBackward(func() {
			for i := range m1.W {
				m1.DW[i] += m2.W[i] * out.DW[i]
				m2.DW[i] += m1.W[i] * out.DW[i]
			}
		})
	}
	return out
}

// OneMinus returns 1 - m elementwise.
func (g *Graph) OneMinus(m *Mat) *Mat {
	out := NewMat(m.Rows, m.Cols)
	for i := range m.W {
		out.W[i] = 1.0 - m.W[i]
	}
	if g.NeedsBackprop {
		g.addBackward(func() {
			for i := range m.W {
				m.DW[i] -= out.DW[i]
			}
		})
	}
	return out
}

// parallelRowThreshold keeps small products on one goroutine; forking
// costs more than the arithmetic below it.
const parallelRowThreshold = 1 << 14

// Mul returns the matrix product m1 * m2. The forward row loop fans out
// over Workers() goroutines for large products; rows are independent so
// the result is identical to the sequential one. The backward pass stays
// sequential because it accumulates into shared gradient buffers.
func (g *Graph) Mul(m1, m2 *Mat) *Mat {
	must(m1.Cols == m2.Rows,
		fmt.Sprintf("mat: Mul shape mismatch %dx%d vs %dx%d", m1.Rows, m1.Cols, m2.Rows, m2.Cols))
	n, k, cols := m1.Rows, m1.Cols, m2.Cols
	out := NewMat(n, cols)

	mulRow := func(i int) {
		for j := 0; j < cols; j++ {
			dot := 0.0
			for l := 0; l < k; l++ {
				dot += m1.W[i*k+l] * m2.W[l*cols+j]
			}
			out.W[i*cols+j] = dot
		}
	}
	if n > 1 && n*k*cols >= parallelRowThreshold {
		parallel.ForEach(n, Workers(), mulRow)
	} else {
		for i := 0; i < n; i++ {
			mulRow(i)
		}
	}

	if g.NeedsBackprop {
		g.addBackward(func() {
			for i := 0; i < n; i++ {
				for j := 0; j < cols; j++ {
					grad := out.DW[i*cols+j]
					if grad == 0 {
						continue
					}
					for l := 0; l < k; l++ {
						m1.DW[i*k+l] += m2.W[l*cols+j] * grad
						m2.DW[l*cols+j] += m1.W[i*k+l] * grad
					}
				}
			}
		})
	}
	return out
}

// AddBroadcastCol adds a column vector to every column of m1.
func (g *Graph) AddBroadcastCol(m1, col *Mat) *Mat {
	must(m1.Rows == col.Rows && col.Cols == 1,
		fmt.Sprintf("mat: AddBroadcastCol shape mismatch %dx%d vs %dx%d", m1.Rows, m1.Cols, col.Rows, col.Cols))
	out := NewMat(m1.Rows, m1.Cols)
	for i := 0; i < m1.Rows; i++ {
		for j := 0; j < m1.Cols; j++ {
			out.W[i*m1.Cols+j] = m1.W[i*m1.Cols+j] + col.W[i]
		}
	}
	if g.NeedsBackprop {
		g.addBackward(func() {
			for i := 0; i < m1.Rows; i++ {
				for j := 0; j < m1.Cols; j++ {
					grad := out.DW[i*m1.Cols+j]
					m1.DW[i*m1.Cols+j] += grad
					col.DW[i] += grad
				}
			}
		})
	}
	return out
}

// Lookup gathers one embedding column per id: the result has table.Cols
// rows and len(ids) columns, column j holding table row ids[j]. Ids
// outside the table map to a zero column and receive no gradient.
func (g *Graph) Lookup(table *Mat, ids []int) *Mat {
	must(len(ids) > 0, "mat: Lookup needs at least one id")
	dim := table.Cols
	out := NewMat(dim, len(ids))
	valid := make([]int, len(ids))
	for j, id := range ids {
		valid[j] = id
		if id < 0 || id >= table.Rows {
			valid[j] = -1
			continue
		}
		for i := 0; i < dim; i++ {
			out.W[i*len(ids)+j] = table.W[id*dim+i]
		}
	}
	if g.NeedsBackprop {
		g.addBackward(func() {
			for j, id := range valid {
				if id == -1 {
					continue
				}
				for i := 0; i < dim; i++ {
					table.DW[id*dim+i] += out.DW[i*len(ids)+j]
				}
			}
		})
	}
	return out
}

// StackRows concatenates matrices with equal column counts vertically, in
// argument order.
func (g *Graph) StackRows(mats ...*Mat) *Mat {
	must(len(mats) > 0, "mat: StackRows needs at least one matrix")
	cols := mats[0].Cols
	rows := 0
	for _, m := range mats {
		must(m.Cols == cols, "mat: StackRows column counts differ")
		rows += m.Rows
	}
	out := NewMat(rows, cols)
	offset := 0
	for _, m := range mats {
		copy(out.W[offset:offset+len(m.W)], m.W)
		offset += len(m.W)
	}
	if g.NeedsBackprop {
		g.addBackward(func() {
			offset := 0
			for _, m := range mats {
				for i := range m.DW {
					m.DW[i] += out.DW[offset+i]
				}
				offset += len(m.DW)
			}
		})
	}
	return out
}

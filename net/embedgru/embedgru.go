// Package embedgru implements the recurrent classifier: per-token
// embeddings feed a minimal GRU whose final hidden state summarizes the
// sequence order-sensitively before an affine sigmoid head.
package embedgru

import (
	"fmt"

	"github.com/neurlang/sentiment/mat"
	"github.com/neurlang/sentiment/net"
)

// Model holds the embedding table, the GRU cell weights and the dense
// head. The cell uses an update gate and a candidate state; the hidden
// width is independent of sequence length.
type Model struct {
	VocabSize    int
	MaxLen       int
	EmbeddingDim int
	HiddenSize   int

	Embedding *mat.Mat // VocabSize x EmbeddingDim

	Wz *mat.Mat // HiddenSize x EmbeddingDim, update gate input weights
	Uz *mat.Mat // HiddenSize x HiddenSize, update gate recurrent weights
	Bz *mat.Mat // HiddenSize x 1

	Wh *mat.Mat // HiddenSize x EmbeddingDim, candidate input weights
	Uh *mat.Mat // HiddenSize x HiddenSize, candidate recurrent weights
	Bh *mat.Mat // HiddenSize x 1

	HeadW *mat.Mat // 1 x HiddenSize
	HeadB *mat.Mat // 1 x 1
}

// New builds a model with small random weights from the global math/rand
// source. vocabSize counts all usable indices, sentinel included.
func New(vocabSize, maxLen, embeddingDim, hiddenSize int) *Model {
	return &Model{
		VocabSize:    vocabSize,
		MaxLen:       maxLen,
		EmbeddingDim: embeddingDim,
		HiddenSize:   hiddenSize,
		Embedding:    mat.NewRandMat(vocabSize, embeddingDim, 0, 0.08),
		Wz:           mat.NewRandMat(hiddenSize, embeddingDim, 0, 0.08),
		Uz:           mat.NewRandMat(hiddenSize, hiddenSize, 0, 0.08),
		Bz:           mat.NewMat(hiddenSize, 1),
		Wh:           mat.NewRandMat(hiddenSize, embeddingDim, 0, 0.08),
		Uh:           mat.NewRandMat(hiddenSize, hiddenSize, 0, 0.08),
		Bh:           mat.NewMat(hiddenSize, 1),
		HeadW:        mat.NewRandMat(1, hiddenSize, 0, 0.08),
		HeadB:        mat.NewMat(1, 1),
	}
}

// Forward consumes the sequences timestep by timestep:
//
//	z_t = sigmoid(Wz x_t + Uz h_{t-1} + bz)
//	c_t = tanh(Wh x_t + Uh h_{t-1} + bh)
//	h_t = (1 - z_t) * h_{t-1} + z_t * c_t
//
// and reduces the final hidden state to one logit per sequence.
func (m *Model) Forward(g *mat.Graph, batch [][]int) *mat.Mat {
	h := mat.NewMat(m.HiddenSize, len(batch))
	ids := make([]int, len(batch))
	for t := 0; t < m.MaxLen; t++ {
		for i, seq := range batch {
			if len(seq) != m.MaxLen {
				panic(fmt.Sprintf("embedgru: sequence %d has length %d, model expects %d", i, len(seq), m.MaxLen))
			}
			ids[i] = seq[t]
		}
		x := g.Lookup(m.Embedding, ids)

		z := g.Sigmoid(g.AddBroadcastCol(g.Add(g.Mul(m.Wz, x), g.Mul(m.Uz, h)), m.Bz))
		c := g.Tanh(g.AddBroadcastCol(g.Add(g.Mul(m.Wh, x), g.Mul(m.Uh, h)), m.Bh))
		h = g.Add(g.Eltmul(g.OneMinus(z), h), g.Eltmul(z, c))
	}
	return g.AddBroadcastCol(g.Mul(m.HeadW, h), m.HeadB)
}

// Predict returns the positive-class probability for each sequence.
func (m *Model) Predict(batch [][]int) []float64 {
	return net.Predict(m, batch)
}

// Parameters returns the trainable weights in a stable order.
func (m *Model) Parameters() []*mat.Mat {
	return []*mat.Mat{
		m.Embedding,
		m.Wz, m.Uz, m.Bz,
		m.Wh, m.Uh, m.Bh,
		m.HeadW, m.HeadB,
	}
}

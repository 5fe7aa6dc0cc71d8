// Package embedbag implements the embedding-only classifier: per-token
// embeddings are flattened in sequence order into one wide vector and fed
// to an affine sigmoid head. Order information survives only through the
// position of each embedding in the flattened vector.
package embedbag

import (
	"fmt"

	"github.com/neurlang/sentiment/mat"
	"github.com/neurlang/sentiment/net"
)

// Model holds the embedding table and the dense head. Index 0 of the
// table is the learnable padding/OOV vector.
type Model struct {
	VocabSize    int
	MaxLen       int
	EmbeddingDim int

	Embedding *mat.Mat // VocabSize x EmbeddingDim
	HeadW     *mat.Mat // 1 x (MaxLen*EmbeddingDim)
	HeadB     *mat.Mat // 1 x 1
}

// New builds a model with small random weights from the global math/rand
// source. vocabSize counts all usable indices, sentinel included.
func New(vocabSize, maxLen, embeddingDim int) *Model {
	return &Model{
		VocabSize:    vocabSize,
		MaxLen:       maxLen,
		EmbeddingDim: embeddingDim,
		Embedding:    mat.NewRandMat(vocabSize, embeddingDim, 0, 0.08),
		HeadW:        mat.NewRandMat(1, maxLen*embeddingDim, 0, 0.08),
		HeadB:        mat.NewMat(1, 1),
	}
}

// Forward computes one logit per sequence. Each timestep is looked up
// across the batch, the per-token columns are stacked into a
// (MaxLen*EmbeddingDim) x batch matrix, and the head reduces it to 1 x batch.
func (m *Model) Forward(g *mat.Graph, batch [][]int) *mat.Mat {
	steps := make([]*mat.Mat, m.MaxLen)
	ids := make([]int, len(batch))
	for t := 0; t < m.MaxLen; t++ {
		for i, seq := range batch {
			if len(seq) != m.MaxLen {
				panic(fmt.Sprintf("embedbag: sequence %d has length %d, model expects %d", i, len(seq), m.MaxLen))
			}
			ids[i] = seq[t]
		}
		steps[t] = g.Lookup(m.Embedding, ids)
	}
	flat := g.StackRows(steps...)
	return g.AddBroadcastCol(g.Mul(m.HeadW, flat), m.HeadB)
}

// Predict returns the positive-class probability for each sequence.
func (m *Model) Predict(batch [][]int) []float64 {
	return net.Predict(m, batch)
}

// Parameters returns the trainable weights in a stable order.
func (m *Model) Parameters() []*mat.Mat {
	return []*mat.Mat{m.Embedding, m.HeadW, m.HeadB}
}

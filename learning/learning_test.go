package learning

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/sentiment/mat"
)

func TestValidateDefaults(t *testing.T) {
	h := HyperParameters{MaxVocabSize: 100, MaxSeqLen: 10}
	require.NoError(t, h.Validate())

	assert.Equal(t, 16, h.EmbeddingDim)
	assert.Equal(t, 32, h.RecurrentUnits)
	assert.Equal(t, 32, h.BatchSize)
	assert.Equal(t, 0.2, h.ValidationFraction)
	assert.Equal(t, 1e-3, h.LearningRate)
	assert.Greater(t, h.Threads, 0)
}

func TestValidateRejects(t *testing.T) {
	cases := []HyperParameters{
		{MaxVocabSize: 1, MaxSeqLen: 10},
		{MaxVocabSize: 100, MaxSeqLen: 0},
		{MaxVocabSize: 100, MaxSeqLen: 10, EmbeddingDim: -1},
		{MaxVocabSize: 100, MaxSeqLen: 10, Epochs: -1},
		{MaxVocabSize: 100, MaxSeqLen: 10, BatchSize: -4},
		{MaxVocabSize: 100, MaxSeqLen: 10, ValidationFraction: 1.5},
		{MaxVocabSize: 100, MaxSeqLen: 10, LearningRate: -0.1},
		{MaxVocabSize: 100, MaxSeqLen: 10, Patience: -2},
	}
	for i, h := range cases {
		assert.Error(t, h.Validate(), "case %d", i)
	}
}

func TestAdamWDescendsQuadratic(t *testing.T) {
	// minimize f(w) = w^2 with grad 2w
	p := mat.NewMat(1, 1)
	p.W[0] = 1.0
	s := NewAdamW(0.05)

	for i := 0; i < 500; i++ {
		p.DW[0] = 2 * p.W[0]
		s.Step([]*mat.Mat{p})
	}
	assert.InDelta(t, 0.0, p.W[0], 0.05)
	assert.Zero(t, p.DW[0])
}

func TestAdamWIgnoresNonFiniteGradients(t *testing.T) {
	p := mat.NewMat(1, 2)
	p.W[0], p.W[1] = 0.5, 0.5
	p.DW[0], p.DW[1] = math.NaN(), math.Inf(1)

	s := NewAdamW(0.01)
	s.Step([]*mat.Mat{p})

	for _, w := range p.W {
		assert.False(t, math.IsNaN(w))
		assert.False(t, math.IsInf(w, 0))
	}
}

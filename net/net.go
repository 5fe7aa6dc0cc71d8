// Package net defines the trainable classifier contract shared by the
// embedding-only and recurrent variants, so the trainer is written once
// against the abstraction.
package net

import (
	"math"

	"github.com/neurlang/sentiment/mat"
)

// Classifier is a parametric function from a batch of fixed-length token
// index sequences to one logit per sequence. Implementations own their
// weights; training them is the trainer's job.
type Classifier interface {
	// Forward computes a 1 x len(batch) logit matrix on the given graph.
	// Every sequence must have the width the model was built for.
	Forward(g *mat.Graph, batch [][]int) *mat.Mat
	// Predict returns the positive-class probability for each sequence.
	Predict(batch [][]int) []float64
	// Parameters returns every trainable weight matrix, in a stable order.
	Parameters() []*mat.Mat
}

// Predict runs a forward pass with no gradient tracking and squashes the
// logits to probabilities. Implementations use it to satisfy the
// Classifier interface.
func Predict(c Classifier, batch [][]int) []float64 {
	if len(batch) == 0 {
		return nil
	}
	logits := c.Forward(mat.NewGraph(false), batch)
	out := make([]float64, len(batch))
	for i := range out {
		out[i] = Sigmoid(logits.W[i])
	}
	return out
}

// Sigmoid squashes a logit into (0,1).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

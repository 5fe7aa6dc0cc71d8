package embedbag

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/sentiment/mat"
	"github.com/neurlang/sentiment/net"
)

func TestForwardShape(t *testing.T) {
	rand.Seed(1)
	m := New(10, 4, 3)
	batch := [][]int{
		{0, 0, 1, 2},
		{3, 4, 5, 6},
		{9, 9, 9, 9},
	}
	logits := m.Forward(mat.NewGraph(false), batch)
	assert.Equal(t, 1, logits.Rows)
	assert.Equal(t, 3, logits.Cols)
}

func TestPredictProbabilities(t *testing.T) {
	rand.Seed(2)
	m := New(10, 4, 3)
	probs := m.Predict([][]int{{0, 1, 2, 3}, {4, 5, 6, 7}})
	require.Len(t, probs, 2)
	for _, p := range probs {
		assert.Greater(t, p, 0.0)
		assert.Less(t, p, 1.0)
	}
	assert.Nil(t, m.Predict(nil))
}

func TestForwardRejectsWrongWidth(t *testing.T) {
	m := New(10, 4, 3)
	assert.Panics(t, func() {
		m.Forward(mat.NewGraph(false), [][]int{{1, 2}})
	})
}

func TestWeightsRoundTrip(t *testing.T) {
	rand.Seed(3)
	src := New(8, 3, 2)
	var buf bytes.Buffer
	require.NoError(t, net.WriteCompressedWeights(src, &buf))

	dst := New(8, 3, 2)
	require.NoError(t, net.ReadCompressedWeights(dst, &buf))
	batch := [][]int{{1, 2, 3}, {0, 0, 7}}
	assert.Equal(t, src.Predict(batch), dst.Predict(batch))
}

func TestWeightsShapeMismatch(t *testing.T) {
	rand.Seed(4)
	src := New(8, 3, 2)
	var buf bytes.Buffer
	require.NoError(t, net.WriteCompressedWeights(src, &buf))

	dst := New(8, 5, 2)
	assert.Error(t, net.ReadCompressedWeights(dst, &buf))
}

package inference

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/sentiment/net/embedbag"
	"github.com/neurlang/sentiment/vocab"
)

func newScorer(t *testing.T) *Scorer {
	t.Helper()
	v, err := vocab.Fit([]string{"great movie", "bad movie"}, 10)
	require.NoError(t, err)
	rand.Seed(1)
	return &Scorer{
		Vocabulary: v,
		Model:      embedbag.New(v.NumIndices(), 4, 3),
		MaxLen:     4,
	}
}

func TestScore(t *testing.T) {
	s := newScorer(t)
	prob, err := s.Score("a great movie")
	require.NoError(t, err)
	assert.Greater(t, prob, 0.0)
	assert.Less(t, prob, 1.0)
}

func TestScoreBatch(t *testing.T) {
	s := newScorer(t)
	probs, err := s.ScoreBatch([]string{"great", "bad", "totally unseen words"})
	require.NoError(t, err)
	assert.Len(t, probs, 3)

	empty, err := s.ScoreBatch(nil)
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestClassify(t *testing.T) {
	s := newScorer(t)
	label, prob, err := s.Classify("great movie")
	require.NoError(t, err)
	assert.Contains(t, []int{0, 1}, label)
	if label == 1 {
		assert.GreaterOrEqual(t, prob, 0.5)
	} else {
		assert.Less(t, prob, 0.5)
	}
}

func TestScorerValidation(t *testing.T) {
	s := &Scorer{}
	_, err := s.Score("anything")
	assert.Error(t, err)
}

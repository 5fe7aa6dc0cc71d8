// Package inference scores raw text with a trained vocabulary and
// classifier pair.
package inference

import (
	"github.com/pkg/errors"

	"github.com/neurlang/sentiment/datasets"
	"github.com/neurlang/sentiment/net"
	"github.com/neurlang/sentiment/vocab"
)

// Scorer bundles everything needed to score raw text: the fitted
// vocabulary, the trained model, and the row width used at training time.
type Scorer struct {
	Vocabulary *vocab.Vocabulary
	Model      net.Classifier
	MaxLen     int
}

// Score returns the positive-class probability of one document.
func (s *Scorer) Score(text string) (float64, error) {
	probs, err := s.ScoreBatch([]string{text})
	if err != nil {
		return 0, err
	}
	return probs[0], nil
}

// ScoreBatch encodes, pads and scores documents in one forward pass.
func (s *Scorer) ScoreBatch(texts []string) ([]float64, error) {
	if s.Vocabulary == nil || s.Model == nil {
		return nil, errors.New("inference: scorer needs a vocabulary and a model")
	}
	if len(texts) == 0 {
		return nil, nil
	}
	seqs := make([][]int, len(texts))
	for i, t := range texts {
		seqs[i] = s.Vocabulary.Encode(t)
	}
	features, err := datasets.PadSequences(seqs, s.MaxLen)
	if err != nil {
		return nil, err
	}
	return s.Model.Predict(features), nil
}

// Classify maps a document to its predicted label, 1 for positive, and
// returns the probability alongside.
func (s *Scorer) Classify(text string) (label int, prob float64, err error) {
	prob, err = s.Score(text)
	if err != nil {
		return 0, 0, err
	}
	if prob >= 0.5 {
		label = 1
	}
	return label, prob, nil
}

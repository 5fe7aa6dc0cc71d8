// Package learning holds the hyperparameter surface of the training
// pipeline and the gradient-based solver that updates model weights.
package learning

import (
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/neurlang/sentiment/mat"
)

// HyperParameters configures the whole pipeline. Zero values are filled
// with the documented defaults by Validate; out-of-range values are
// rejected there, never silently replaced.
type HyperParameters struct {
	MaxVocabSize int // cap on retained words, sentinel index 0 included
	MaxSeqLen    int // fixed encoded row width

	EmbeddingDim   int // width of per-token vectors (default 16)
	RecurrentUnits int // hidden width of the recurrent summarizer (default 32)

	Epochs             int     // full passes over the training set
	BatchSize          int     // rows per parameter update (default 32)
	ValidationFraction float64 // held-out share of the corpus (default 0.2)
	LearningRate       float64 // solver step size (default 1e-3)
	Patience           int     // epochs without valLoss improvement before stopping, 0 disables

	Seed    int64 // seeds splitting, batch shuffling and weight init
	Threads int   // goroutines for batch-level work (default mat.Workers())

	KeepPunct        bool // retain punctuation runes as vocabulary tokens
	ShuffleEachEpoch bool // reshuffle training order before every epoch
	StrictDivergence bool // abort the run when an epoch loss goes non-finite

	l *log.Logger
}

// Validate fills defaults and rejects unusable values. It must pass before
// any model parameters are created.
func (h *HyperParameters) Validate() error {
	if h.MaxVocabSize < 2 {
		return errors.Errorf("learning: max vocab size must be at least 2, got %d", h.MaxVocabSize)
	}
	if h.MaxSeqLen <= 0 {
		return errors.Errorf("learning: max sequence length must be positive, got %d", h.MaxSeqLen)
	}
	if h.EmbeddingDim == 0 {
		h.EmbeddingDim = 16
	}
	if h.EmbeddingDim < 0 {
		return errors.Errorf("learning: embedding dim must be positive, got %d", h.EmbeddingDim)
	}
	if h.RecurrentUnits == 0 {
		h.RecurrentUnits = 32
	}
	if h.RecurrentUnits < 0 {
		return errors.Errorf("learning: recurrent units must be positive, got %d", h.RecurrentUnits)
	}
	if h.Epochs < 0 {
		return errors.Errorf("learning: epochs must be non-negative, got %d", h.Epochs)
	}
	if h.BatchSize == 0 {
		h.BatchSize = 32
	}
	if h.BatchSize < 0 {
		return errors.Errorf("learning: batch size must be positive, got %d", h.BatchSize)
	}
	if h.ValidationFraction == 0 {
		h.ValidationFraction = 0.2
	}
	if h.ValidationFraction < 0 || h.ValidationFraction >= 1 {
		return errors.Errorf("learning: validation fraction must be in (0,1), got %v", h.ValidationFraction)
	}
	if h.LearningRate == 0 {
		h.LearningRate = 1e-3
	}
	if h.LearningRate < 0 {
		return errors.Errorf("learning: learning rate must be positive, got %v", h.LearningRate)
	}
	if h.Patience < 0 {
		return errors.Errorf("learning: patience must be non-negative, got %d", h.Patience)
	}
	if h.Threads <= 0 {
		h.Threads = mat.Workers()
	}
	return nil
}

// SetLogger appends per-epoch metric lines to the named file.
func (h *HyperParameters) SetLogger(filename string) {
	outfile, _ := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	h.l = log.New(outfile, "", 0)
}

// Logf writes to the metrics log when one is set.
func (h *HyperParameters) Logf(format string, v ...interface{}) {
	if h.l != nil {
		h.l.Printf(format, v...)
	}
}

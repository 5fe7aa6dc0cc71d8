// Package datasets implements the fixed-length sequence dataset consumed
// by the trainer: rectangular padding/truncation of encoded sequences and
// deterministic shuffled train/validation splitting.
package datasets

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/rand"

	spooky "github.com/dgryski/go-spooky"
	"github.com/pkg/errors"
)

// ErrInvalidLength is returned when the requested row width is not positive.
var ErrInvalidLength = errors.New("datasets: max length must be positive")

// ErrInsufficientData is returned when a split would leave the train or
// validation side empty.
var ErrInsufficientData = errors.New("datasets: split leaves an empty train or validation set")

// Dataset pairs encoded feature rows with binary labels.
// Invariant: len(Features) == len(Labels), every row has the same width.
type Dataset struct {
	Features [][]int
	Labels   []int
}

// Len reports the number of rows.
func (d Dataset) Len() int {
	return len(d.Features)
}

// Fingerprint hashes rows and labels into a 64-bit value. Equal datasets
// in equal order hash equally, so reruns of a seeded pipeline can be
// checked for accidental nondeterminism.
func (d Dataset) Fingerprint() uint64 {
	var buf bytes.Buffer
	var scratch [4]byte
	for i, row := range d.Features {
		for _, ix := range row {
			binary.LittleEndian.PutUint32(scratch[:], uint32(ix))
			buf.Write(scratch[:])
		}
		if i < len(d.Labels) {
			binary.LittleEndian.PutUint32(scratch[:], uint32(d.Labels[i]))
			buf.Write(scratch[:])
		}
	}
	return spooky.Hash64(buf.Bytes())
}

// PadSequences forces every sequence to length maxLen: longer sequences
// keep only their last maxLen tokens (the ending of review-style text
// carries the concluding sentiment), shorter ones are left-padded with the
// sentinel index 0. The result is rectangular.
func PadSequences(seqs [][]int, maxLen int) ([][]int, error) {
	if maxLen <= 0 {
		return nil, errors.Wrapf(ErrInvalidLength, "got %d", maxLen)
	}
	out := make([][]int, len(seqs))
	for i, seq := range seqs {
		row := make([]int, maxLen)
		if n := len(seq); n >= maxLen {
			copy(row, seq[n-maxLen:])
		} else {
			copy(row[maxLen-n:], seq)
		}
		out[i] = row
	}
	return out, nil
}

// ShuffleSplit permutes rows and labels in lock-step with a seeded
// pseudo-random permutation, then takes the last ceil(N*validationFraction)
// permuted rows as the validation set. The same seed always produces the
// same partition. Rows are shared with the input, not copied.
func ShuffleSplit(d Dataset, validationFraction float64, seed int64) (train, validation Dataset, err error) {
	n := d.Len()
	if n != len(d.Labels) {
		return train, validation, errors.Errorf("datasets: %d feature rows but %d labels", n, len(d.Labels))
	}
	nVal := int(math.Ceil(float64(n) * validationFraction))
	if nVal <= 0 || nVal >= n {
		return train, validation, errors.Wrapf(ErrInsufficientData,
			"%d rows at validation fraction %v", n, validationFraction)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	features := make([][]int, n)
	labels := make([]int, n)
	for i, p := range perm {
		features[i] = d.Features[p]
		labels[i] = d.Labels[p]
	}

	cut := n - nVal
	train = Dataset{Features: features[:cut], Labels: labels[:cut]}
	validation = Dataset{Features: features[cut:], Labels: labels[cut:]}
	return train, validation, nil
}

package net

import (
	"compress/lzw"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

type matState struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	W    []float64 `json:"w"`
}

// WriteCompressedWeightsToFile writes model weights to an lzw file.
func WriteCompressedWeightsToFile(c Classifier, name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = WriteCompressedWeights(c, file)
	file.Close()
	return err
}

// WriteCompressedWeights writes model weights to a writer.
func WriteCompressedWeights(c Classifier, w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	params := c.Parameters()
	states := make([]matState, len(params))
	for i, p := range params {
		states[i] = matState{Rows: p.Rows, Cols: p.Cols, W: p.W}
	}
	if err := json.NewEncoder(lw).Encode(states); err != nil {
		return err
	}
	return lw.Close()
}

// ReadCompressedWeightsFromFile reads model weights from an lzw file into
// an already constructed model of matching shape.
func ReadCompressedWeightsFromFile(c Classifier, name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	err = ReadCompressedWeights(c, file)
	file.Close()
	return err
}

// ReadCompressedWeights reads model weights from a reader.
func ReadCompressedWeights(c Classifier, r io.Reader) error {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()

	var states []matState
	if err := json.NewDecoder(lr).Decode(&states); err != nil {
		return errors.Wrap(err, "net: decoding weights")
	}
	params := c.Parameters()
	if len(states) != len(params) {
		return errors.Errorf("net: weight count mismatch, file has %d matrices, model has %d",
			len(states), len(params))
	}
	for i, p := range params {
		s := states[i]
		if s.Rows != p.Rows || s.Cols != p.Cols || len(s.W) != len(p.W) {
			return errors.Errorf("net: matrix %d shape mismatch, file %dx%d, model %dx%d",
				i, s.Rows, s.Cols, p.Rows, p.Cols)
		}
		copy(p.W, s.W)
	}
	return nil
}

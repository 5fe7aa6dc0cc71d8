package vocab

import (
	"compress/lzw"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

type vocabularyState struct {
	WordToIndex      map[string]int `json:"word_to_index"`
	MaxSize          int            `json:"max_size"`
	TotalUniqueWords int            `json:"total_unique_words"`
	KeepPunct        bool           `json:"keep_punct"`
}

// WriteCompressedToFile writes the vocabulary to an lzw-compressed JSON file.
func (v *Vocabulary) WriteCompressedToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = v.WriteCompressed(file)
	file.Close()
	return err
}

// WriteCompressed writes the vocabulary to a writer.
func (v *Vocabulary) WriteCompressed(w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	if err := json.NewEncoder(lw).Encode(vocabularyState{
		WordToIndex:      v.WordToIndex,
		MaxSize:          v.MaxSize,
		TotalUniqueWords: v.TotalUniqueWords,
		KeepPunct:        v.KeepPunct,
	}); err != nil {
		return err
	}
	return lw.Close()
}

// ReadCompressedFromFile reads a vocabulary from an lzw-compressed JSON file.
func ReadCompressedFromFile(name string) (*Vocabulary, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	v, err := ReadCompressed(file)
	file.Close()
	return v, err
}

// ReadCompressed reads a vocabulary from a reader.
func ReadCompressed(r io.Reader) (*Vocabulary, error) {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()

	var state vocabularyState
	if err := json.NewDecoder(lr).Decode(&state); err != nil {
		return nil, errors.Wrap(err, "vocab: decoding")
	}
	v := &Vocabulary{
		WordToIndex:      state.WordToIndex,
		IndexToWord:      make([]string, len(state.WordToIndex)+1),
		MaxSize:          state.MaxSize,
		TotalUniqueWords: state.TotalUniqueWords,
		KeepPunct:        state.KeepPunct,
	}
	for w, i := range state.WordToIndex {
		if i < 1 || i > len(state.WordToIndex) {
			return nil, errors.Errorf("vocab: index %d for %q out of range", i, w)
		}
		v.IndexToWord[i] = w
	}
	return v, nil
}

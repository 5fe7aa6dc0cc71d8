// Package vocab implements the frequency-ranked word index used to turn
// raw text into integer token sequences. Index 0 is reserved as the
// shared padding/OOV sentinel and is never assigned to a real word.
package vocab

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/neurlang/sentiment/text"
)

// ErrEmptyCorpus is returned when fitting a corpus that yields no tokens.
var ErrEmptyCorpus = errors.New("vocab: corpus yields no tokens")

// Vocabulary maps normalized words to integer indices 1..Size(), ranked by
// descending corpus frequency with ties broken by first appearance.
// A Vocabulary is immutable once Fit returns and is safe for concurrent
// readers.
type Vocabulary struct {
	WordToIndex map[string]int
	IndexToWord []string // IndexToWord[0] is the sentinel, always ""
	MaxSize     int
	// TotalUniqueWords counts distinct words seen before the MaxSize
	// cutoff, so callers can pick MaxSize as a fraction of it.
	TotalUniqueWords int
	KeepPunct        bool
}

// Fit builds a Vocabulary from the corpus, keeping at most maxSize-1 words
// (index 0 stays reserved). Punctuation is stripped during tokenization.
func Fit(corpus []string, maxSize int) (*Vocabulary, error) {
	return fit(corpus, maxSize, false)
}

// FitKeepPunct is Fit with punctuation runes retained as tokens.
func FitKeepPunct(corpus []string, maxSize int) (*Vocabulary, error) {
	return fit(corpus, maxSize, true)
}

func fit(corpus []string, maxSize int, keepPunct bool) (*Vocabulary, error) {
	if maxSize < 2 {
		return nil, errors.Errorf("vocab: max size must be at least 2, got %d", maxSize)
	}

	counts := make(map[string]int)
	var order []string // words in first-seen order, the tie-break rank
	for _, doc := range corpus {
		for _, w := range tokenize(doc, keepPunct) {
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}
	if len(order) == 0 {
		return nil, ErrEmptyCorpus
	}

	// Stable sort over first-seen order: equal counts keep their
	// first-appearance rank, which decides who survives the cutoff.
	ranked := make([]string, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	kept := len(ranked)
	if kept > maxSize-1 {
		kept = maxSize - 1
	}

	v := &Vocabulary{
		WordToIndex:      make(map[string]int, kept),
		IndexToWord:      make([]string, kept+1),
		MaxSize:          maxSize,
		TotalUniqueWords: len(order),
		KeepPunct:        keepPunct,
	}
	for i := 0; i < kept; i++ {
		v.WordToIndex[ranked[i]] = i + 1
		v.IndexToWord[i+1] = ranked[i]
	}
	return v, nil
}

// Size reports the number of real words in the vocabulary, excluding the
// reserved sentinel.
func (v *Vocabulary) Size() int {
	return len(v.WordToIndex)
}

// NumIndices reports how many distinct indices an encoded sequence can
// contain, sentinel included. Embedding tables are sized by this.
func (v *Vocabulary) NumIndices() int {
	return len(v.WordToIndex) + 1
}

// Encode tokenizes s with the same normalization used during fitting and
// maps each token to its index, preserving token order. Words outside the
// vocabulary collapse to the sentinel index 0, same as padding; the two
// are indistinguishable downstream.
func (v *Vocabulary) Encode(s string) []int {
	tokens := tokenize(s, v.KeepPunct)
	out := make([]int, len(tokens))
	for i, w := range tokens {
		out[i] = v.WordToIndex[w] // missing -> 0
	}
	return out
}

// Word returns the word assigned to index, if any.
func (v *Vocabulary) Word(index int) (string, bool) {
	if index < 1 || index >= len(v.IndexToWord) {
		return "", false
	}
	return v.IndexToWord[index], true
}

func tokenize(s string, keepPunct bool) text.Tokens {
	if keepPunct {
		return text.TokenizeKeepPunct(s)
	}
	return text.Tokenize(s)
}

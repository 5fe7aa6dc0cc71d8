// Package polarity loads a two-class sentiment corpus from disk. The
// corpus root must contain exactly two class subdirectories (canonically
// "neg" and "pos") with one plain-text document per file.
package polarity

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// ErrBadLayout is returned when the corpus root does not contain exactly
// two class subdirectories.
var ErrBadLayout = errors.New("polarity: corpus root must contain exactly two class subdirectories")

// Document is one labeled corpus file, read as-is with no normalization.
type Document struct {
	ID    int
	Label int // 0 for the first class directory, 1 for the second
	Text  string
}

// Load enumerates the corpus deterministically: class directories in
// lexicographic order, then files in lexicographic order within each. The
// lexicographically first directory becomes label 0, the second label 1,
// which maps "neg" to 0 and "pos" to 1.
func Load(root string) ([]Document, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "polarity: reading corpus root %s", root)
	}

	var classes []string
	for _, e := range entries {
		if e.IsDir() {
			classes = append(classes, e.Name())
		}
	}
	if len(classes) != 2 {
		return nil, errors.Wrapf(ErrBadLayout, "%s has %d", root, len(classes))
	}
	sort.Strings(classes)

	var docs []Document
	for label, class := range classes {
		dir := filepath.Join(root, class)
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, errors.Wrapf(err, "polarity: reading class directory %s", dir)
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			path := filepath.Join(dir, f.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, errors.Wrapf(err, "polarity: reading document %s", path)
			}
			docs = append(docs, Document{
				ID:    len(docs),
				Label: label,
				Text:  string(data),
			})
		}
	}
	return docs, nil
}

// Texts extracts the raw text of every document, in corpus order.
func Texts(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Text
	}
	return out
}

// Labels extracts the label of every document, in corpus order.
func Labels(docs []Document) []int {
	out := make([]int, len(docs))
	for i, d := range docs {
		out[i] = d.Label
	}
	return out
}

// Balance oversamples the minority class by cycling through its documents
// in order until both classes have the same count. Appended copies get
// fresh IDs. The input slice is not modified.
func Balance(docs []Document) []Document {
	var byClass [2][]Document
	for _, d := range docs {
		if d.Label == 0 || d.Label == 1 {
			byClass[d.Label] = append(byClass[d.Label], d)
		}
	}
	minority, majority := 0, 1
	if len(byClass[0]) > len(byClass[1]) {
		minority, majority = 1, 0
	}
	if len(byClass[minority]) == 0 || len(byClass[minority]) == len(byClass[majority]) {
		return docs
	}

	out := make([]Document, len(docs), len(docs)+len(byClass[majority])-len(byClass[minority]))
	copy(out, docs)
	for i := 0; len(byClass[minority])+i < len(byClass[majority]); i++ {
		d := byClass[minority][i%len(byClass[minority])]
		d.ID = len(out)
		out = append(out, d)
	}
	return out
}

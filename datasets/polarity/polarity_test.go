package polarity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, classes map[string][]string) string {
	t.Helper()
	root := t.TempDir()
	for class, texts := range classes {
		dir := filepath.Join(root, class)
		require.NoError(t, os.Mkdir(dir, 0o755))
		for i, text := range texts {
			name := filepath.Join(dir, "doc"+string(rune('a'+i))+".txt")
			require.NoError(t, os.WriteFile(name, []byte(text), 0o644))
		}
	}
	return root
}

func TestLoad(t *testing.T) {
	root := writeCorpus(t, map[string][]string{
		"neg": {"awful film", "terrible"},
		"pos": {"wonderful", "great film", "superb"},
	})

	docs, err := Load(root)
	require.NoError(t, err)
	require.Len(t, docs, 5)

	var zeros, ones int
	for i, d := range docs {
		assert.Equal(t, i, d.ID)
		switch d.Label {
		case 0:
			zeros++
		case 1:
			ones++
		default:
			t.Fatalf("label out of range: %d", d.Label)
		}
	}
	assert.Equal(t, 2, zeros)
	assert.Equal(t, 3, ones)

	// neg sorts before pos, files sort within the class.
	assert.Equal(t, "awful film", docs[0].Text)
	assert.Equal(t, "terrible", docs[1].Text)
	assert.Equal(t, "wonderful", docs[2].Text)
}

func TestLoadDeterministicOrder(t *testing.T) {
	root := writeCorpus(t, map[string][]string{
		"neg": {"a", "b", "c"},
		"pos": {"d", "e", "f"},
	})
	first, err := Load(root)
	require.NoError(t, err)
	second, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadBadLayout(t *testing.T) {
	one := writeCorpus(t, map[string][]string{"neg": {"x"}})
	_, err := Load(one)
	assert.ErrorIs(t, err, ErrBadLayout)

	three := writeCorpus(t, map[string][]string{
		"neg": {"x"}, "pos": {"y"}, "neutral": {"z"},
	})
	_, err = Load(three)
	assert.ErrorIs(t, err, ErrBadLayout)

	empty := t.TempDir()
	_, err = Load(empty)
	assert.ErrorIs(t, err, ErrBadLayout)

	_, err = Load(filepath.Join(empty, "missing"))
	assert.Error(t, err)
}

func TestTextsAndLabels(t *testing.T) {
	docs := []Document{
		{ID: 0, Label: 0, Text: "bad"},
		{ID: 1, Label: 1, Text: "good"},
	}
	assert.Equal(t, []string{"bad", "good"}, Texts(docs))
	assert.Equal(t, []int{0, 1}, Labels(docs))
}

func TestBalance(t *testing.T) {
	docs := []Document{
		{ID: 0, Label: 0, Text: "bad"},
		{ID: 1, Label: 1, Text: "good"},
		{ID: 2, Label: 1, Text: "fine"},
		{ID: 3, Label: 1, Text: "nice"},
	}
	balanced := Balance(docs)
	require.Len(t, balanced, 6)

	var zeros int
	for _, d := range balanced {
		if d.Label == 0 {
			zeros++
		}
	}
	assert.Equal(t, 3, zeros)
	// Copies cycle through the minority in order with fresh IDs.
	assert.Equal(t, "bad", balanced[4].Text)
	assert.Equal(t, 4, balanced[4].ID)
	assert.Equal(t, "bad", balanced[5].Text)

	// Already balanced input comes back unchanged.
	even := docs[:2]
	assert.Equal(t, even, Balance(even))
}

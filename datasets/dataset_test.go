package datasets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadSequencesLengths(t *testing.T) {
	const maxLen = 4
	seqs := [][]int{
		{},
		{7},
		{1, 2, 3, 4},
		{1, 2, 3, 4, 5, 6},
	}
	out, err := PadSequences(seqs, maxLen)
	require.NoError(t, err)
	require.Len(t, out, len(seqs))
	for _, row := range out {
		assert.Len(t, row, maxLen)
	}

	assert.Equal(t, []int{0, 0, 0, 0}, out[0])
	assert.Equal(t, []int{0, 0, 0, 7}, out[1])
	assert.Equal(t, []int{1, 2, 3, 4}, out[2])
}

func TestPadSequencesFrontTruncates(t *testing.T) {
	// 7 tokens at maxLen 3 keep the last 3.
	out, err := PadSequences([][]int{{1, 2, 3, 4, 5, 6, 7}}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6, 7}, out[0])
}

func TestPadSequencesInvalidLength(t *testing.T) {
	for _, maxLen := range []int{0, -1} {
		_, err := PadSequences([][]int{{1}}, maxLen)
		assert.ErrorIs(t, err, ErrInvalidLength)
	}
}

func grouped(n int) Dataset {
	// Class-grouped ordering: all negatives first, like a directory walk.
	d := Dataset{}
	for i := 0; i < n; i++ {
		label := 0
		if i >= n/2 {
			label = 1
		}
		d.Features = append(d.Features, []int{i, i + 1})
		d.Labels = append(d.Labels, label)
	}
	return d
}

func TestShuffleSplitDeterministic(t *testing.T) {
	d := grouped(20)

	train1, val1, err := ShuffleSplit(d, 0.25, 42)
	require.NoError(t, err)
	train2, val2, err := ShuffleSplit(d, 0.25, 42)
	require.NoError(t, err)

	assert.Equal(t, train1, train2)
	assert.Equal(t, val1, val2)
	assert.Equal(t, train1.Fingerprint(), train2.Fingerprint())

	_, val3, err := ShuffleSplit(d, 0.25, 43)
	require.NoError(t, err)
	assert.NotEqual(t, val1.Fingerprint(), val3.Fingerprint())
}

func TestShuffleSplitCountsAndLockstep(t *testing.T) {
	d := grouped(21)
	train, val, err := ShuffleSplit(d, 0.3, 7)
	require.NoError(t, err)

	// ceil(21 * 0.3) == 7
	assert.Equal(t, 7, val.Len())
	assert.Equal(t, 14, train.Len())
	assert.Equal(t, d.Len(), train.Len()+val.Len())

	// Rows must travel with their labels: the feature row encodes its
	// original position, which determines the original label.
	check := func(part Dataset) {
		for i, row := range part.Features {
			want := 0
			if row[0] >= 21/2 {
				want = 1
			}
			assert.Equal(t, want, part.Labels[i])
		}
	}
	check(train)
	check(val)
}

func TestShuffleSplitBothClassesRepresented(t *testing.T) {
	d := grouped(40)
	for seed := int64(0); seed < 10; seed++ {
		train, val, err := ShuffleSplit(d, 0.25, seed)
		require.NoError(t, err)
		for _, part := range []Dataset{train, val} {
			var zeros, ones int
			for _, l := range part.Labels {
				if l == 0 {
					zeros++
				} else {
					ones++
				}
			}
			assert.Greater(t, zeros, 0, "seed %d", seed)
			assert.Greater(t, ones, 0, "seed %d", seed)
		}
	}
}

func TestShuffleSplitInsufficientData(t *testing.T) {
	d := grouped(4)
	_, _, err := ShuffleSplit(d, 0.0, 1)
	assert.ErrorIs(t, err, ErrInsufficientData)
	_, _, err = ShuffleSplit(d, 1.0, 1)
	assert.ErrorIs(t, err, ErrInsufficientData)

	bad := Dataset{Features: [][]int{{1}}, Labels: []int{0, 1}}
	_, _, err = ShuffleSplit(bad, 0.5, 1)
	assert.Error(t, err)
}

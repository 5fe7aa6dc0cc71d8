package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForEachVisitsEveryIndex(t *testing.T) {
	for _, limit := range []int{0, 1, 4, 100} {
		var visited [64]int32
		ForEach(len(visited), limit, func(i int) {
			atomic.AddInt32(&visited[i], 1)
		})
		for i, v := range visited {
			assert.Equal(t, int32(1), v, "limit %d index %d", limit, i)
		}
	}
}

func TestForEachZeroLength(t *testing.T) {
	called := false
	ForEach(0, 4, func(i int) { called = true })
	assert.False(t, called)
}

package mat

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

var workers int

func init() {
	workers = cpuid.CPU.LogicalCores
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers <= 0 {
		workers = 1
	}
}

// Workers reports how many goroutines heavy tensor loops fan out to,
// taken from the detected logical core count.
func Workers() int {
	return workers
}

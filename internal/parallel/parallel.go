// Package parallel runs independent jobs, such as training runs of distinct
// networks, on a bounded number of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Upper bound on concurrent goroutines.
	MinChunkSize int  // Minimum jobs per goroutine.
}

// DefaultConfig returns one worker per CPU and single-job chunks.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// Sequential returns a Config that runs every job on the calling goroutine.
func Sequential() Config {
	return Config{}
}

// For executes f(i) for i in [0, n).
//
// Jobs are split into contiguous chunks, one goroutine per chunk, so at most
// NumWorkers goroutines run at once. Runs sequentially when parallelism is
// disabled or n is below MinChunkSize. For returns after every f has returned.
func For(n int, f func(i int), cfg Config) {
	if n <= 0 {
		return
	}
	workers := max(cfg.NumWorkers, 1)
	if !cfg.Enabled || workers == 1 || n < max(cfg.MinChunkSize, 2) {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := max((n+workers-1)/workers, cfg.MinChunkSize, 1)

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForGrid executes f(r, c) for every cell of a rows×cols grid, row-major.
func ForGrid(rows, cols int, f func(r, c int), cfg Config) {
	if rows <= 0 || cols <= 0 {
		return
	}
	For(rows*cols, func(k int) {
		f(k/cols, k%cols)
	}, cfg)
}

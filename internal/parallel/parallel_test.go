package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	seen := make([]int32, 1000)
	For(len(seen), func(i int) {
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	for i, n := range seen {
		assert.Equal(t, int32(1), n, "job %d", i)
	}
}

func TestFor_BoundedWorkers(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1}

	var running, peak int32
	var mu sync.Mutex
	For(12, func(_ int) {
		cur := atomic.AddInt32(&running, 1)
		mu.Lock()
		peak = max(peak, cur)
		mu.Unlock()
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&running, -1)
	}, cfg)

	assert.LessOrEqual(t, peak, int32(3))
}

func TestFor_Sequential(t *testing.T) {
	var order []int
	For(5, func(i int) {
		order = append(order, i)
	}, Sequential())

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestFor_SmallChunk(t *testing.T) {
	// Fewer jobs than MinChunkSize run sequentially.
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 10}

	var order []int
	For(9, func(i int) {
		order = append(order, i)
	}, cfg)

	assert.Len(t, order, 9)
	For(0, func(int) { t.Fatal("no jobs expected") }, cfg)
}

func TestForGrid(t *testing.T) {
	cfg := DefaultConfig()

	rows, cols := 4, 3
	results := make([][]bool, rows)
	for r := range results {
		results[r] = make([]bool, cols)
	}

	ForGrid(rows, cols, func(r, c int) {
		results[r][c] = true
	}, cfg)

	for r := range results {
		for c := range results[r] {
			assert.True(t, results[r][c], "missing cell [%d][%d]", r, c)
		}
	}
	ForGrid(0, 3, func(int, int) { t.Fatal("empty grid") }, cfg)
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, Sequential())
		}
	})
}

package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkerPool(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 4, 4},
		{"zero uses GOMAXPROCS", 0, runtime.GOMAXPROCS(0)},
		{"negative uses GOMAXPROCS", -3, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.workers)
			defer pool.Close()
			assert.Equal(t, tt.want, pool.Workers())
			assert.True(t, pool.IsRunning())
		})
	}
}

func TestWorkerPool_Run(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	var rows atomic.Int64
	pool.Run(Bands(100, 7), func(b Band) { rows.Add(int64(b.Height())) })
	assert.EqualValues(t, 100, rows.Load())

	pool.Run(nil, func(Band) { t.Error("no bands, no calls") })
}

func TestWorkerPool_RunAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()
	require.False(t, pool.IsRunning())

	calls := 0
	pool.Run(Bands(4, 2), func(Band) { calls++ })
	assert.Equal(t, 2, calls, "a closed pool runs bands inline")
}

func TestShared(t *testing.T) {
	require.Same(t, Shared(), Shared())
	assert.Equal(t, runtime.NumCPU(), Shared().Workers())
}

func TestBands(t *testing.T) {
	tests := []struct {
		height, n int
		want      []Band
	}{
		{10, 3, []Band{{0, 4}, {4, 7}, {7, 10}}},
		{4, 4, []Band{{0, 1}, {1, 2}, {2, 3}, {3, 4}}},
		{2, 8, []Band{{0, 1}, {1, 2}}},
		{5, 0, []Band{{0, 5}}},
		{0, 4, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Bands(tt.height, tt.n), "Bands(%d, %d)", tt.height, tt.n)
	}
}

func TestForEachBand_CoversEveryRowOnce(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const height = 257
	rows := make([]int32, height)
	ForEachBand(pool, height, 4, func(b Band) {
		for y := b.Y0; y < b.Y1; y++ {
			rows[y]++
		}
	})
	for y, n := range rows {
		require.EqualValues(t, 1, n, "row %d", y)
	}
}

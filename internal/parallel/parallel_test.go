package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForBatch(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	batch, columns := 4, 8
	results := make([][]bool, batch)
	for b := range results {
		results[b] = make([]bool, columns)
	}

	var mu [4 * 8]int32
	ForBatch(batch, columns, func(b, c int) {
		atomic.AddInt32(&mu[b*columns+c], 1)
		results[b][c] = true
	}, cfg)

	for b := 0; b < batch; b++ {
		for c := 0; c < columns; c++ {
			if !results[b][c] {
				t.Errorf("Missing result at [%d][%d]", b, c)
			}
			if mu[b*columns+c] != 1 {
				t.Errorf("Cell [%d][%d] visited %d times", b, c, mu[b*columns+c])
			}
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Sequential()

	order := make([]int, 0, 100)
	For(100, func(i int) {
		order = append(order, i)
	}, cfg)

	if len(order) != 100 {
		t.Fatalf("Expected 100 iterations, got %d", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("Sequential execution out of order at %d: %d", i, v)
		}
	}
}

func TestFor_SmallFallsBackToSequential(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 64

	var counter int64
	For(10, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 10 {
		t.Errorf("Expected 10, got %d", counter)
	}
}

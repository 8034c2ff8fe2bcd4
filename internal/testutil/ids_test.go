package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialIDGenerator_Sequence(t *testing.T) {
	gen := NewSequentialIDGenerator("chg")
	assert.Equal(t, "chg-0001", gen.Generate())
	assert.Equal(t, "chg-0002", gen.Generate())
}

func TestSequentialIDGenerator_DefaultPrefix(t *testing.T) {
	assert.Equal(t, "change-0001", NewSequentialIDGenerator("").Generate())
}

func TestSequentialIDGenerator_Reset(t *testing.T) {
	gen := NewSequentialIDGenerator("x")
	gen.Generate()
	gen.Generate()
	gen.Reset()
	assert.Equal(t, "x-0001", gen.Generate())
}

func TestSequentialIDGenerator_ConcurrentUnique(t *testing.T) {
	gen := NewSequentialIDGenerator("c")

	const workers = 10
	const perWorker = 50
	var mu sync.Mutex
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id := gen.Generate()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

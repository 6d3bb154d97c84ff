package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductDeactivate(t *testing.T) {
	p := NewProduct(7, "apple red", "crisp fruit")
	assert.Equal(t, ProductID(7), p.ID())
	assert.Equal(t, "apple red", p.Name())
	assert.Equal(t, "crisp fruit", p.Description())
	assert.True(t, p.Available())

	p.Deactivate()
	assert.False(t, p.Available())
	assert.Equal(t, "apple red", p.Name(), "content is immutable")
}

func TestSequenceMonotonic(t *testing.T) {
	seq := NewSequence(10)
	assert.Equal(t, ProductID(10), seq.NextID())
	assert.Equal(t, ProductID(11), seq.NextID())
	assert.Equal(t, ProductID(12), seq.Peek())
}

func TestSequenceConcurrentUnique(t *testing.T) {
	const (
		workers = 8
		perWork = 1000
	)
	seq := &Sequence{}
	var (
		mu   sync.Mutex
		seen = make(map[ProductID]struct{}, workers*perWork)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]ProductID, 0, perWork)
			for i := 0; i < perWork; i++ {
				local = append(local, seq.NextID())
			}
			mu.Lock()
			for _, id := range local {
				seen[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	require.Len(t, seen, workers*perWork)
	assert.NotContains(t, seen, EmptySlot)
}

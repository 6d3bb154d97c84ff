package keyword

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// indexUnderTest abstracts the two implementations for shared behavior tests.
type indexUnderTest interface {
	Reader
	Add(id uint64, text string)
	Remove(id uint64, text string)
	Has(word string) bool
}

func implementations() map[string]func() indexUnderTest {
	return map[string]func() indexUnderTest{
		"ordered":    func() indexUnderTest { return NewIndex() },
		"concurrent": func() indexUnderTest { return NewConcurrentIndex() },
	}
}

func TestIndexAddRemove(t *testing.T) {
	for name, newIndex := range implementations() {
		t.Run(name, func(t *testing.T) {
			x := newIndex()
			x.Add(1, "apple red")
			x.Add(2, "cherry red")
			x.Add(3, "banana yellow")

			assert.Equal(t, []uint64{1, 2}, x.AppendIDs(nil, "red"))
			assert.Equal(t, []uint64{3}, x.AppendIDs(nil, "yellow"))
			assert.Empty(t, x.AppendIDs(nil, "green"))
			assert.Equal(t, 5, x.Len())

			x.Remove(1, "apple red")
			assert.Equal(t, []uint64{2}, x.AppendIDs(nil, "red"))
			assert.Empty(t, x.AppendIDs(nil, "apple"))

			stats := x.Stats()
			assert.Equal(t, 5, stats.Entries)
			assert.Equal(t, int64(len("apple")+len("red")+len("cherry")+len("banana")+len("yellow")), stats.KeyBytes)
			assert.Equal(t, int64(4), stats.Postings)
			assert.Positive(t, stats.BucketBytes)
		})
	}
}

func TestIndexKeysAreAppendOnly(t *testing.T) {
	for name, newIndex := range implementations() {
		t.Run(name, func(t *testing.T) {
			x := newIndex()
			for cycle := 0; cycle < 3; cycle++ {
				id := uint64(cycle)
				x.Add(id, "plum")
				require.Equal(t, []uint64{id}, x.AppendIDs(nil, "plum"))

				x.Remove(id, "plum")
				assert.True(t, x.Has("plum"), "empty bucket keeps its key")
				assert.Empty(t, x.AppendIDs(nil, "plum"))
				assert.Equal(t, 1, x.Len())
			}
			assert.Equal(t, 1, x.Stats().Entries)
			assert.Zero(t, x.Stats().Postings)
		})
	}
}

func TestIndexDuplicateWordsCountOnce(t *testing.T) {
	for name, newIndex := range implementations() {
		t.Run(name, func(t *testing.T) {
			x := newIndex()
			x.Add(7, "red red RED")
			assert.Equal(t, int64(1), x.Stats().Postings)
			x.Remove(7, "red")
			assert.Zero(t, x.Stats().Postings)
		})
	}
}

func TestIndexWordsAscending(t *testing.T) {
	for name, newIndex := range implementations() {
		t.Run(name, func(t *testing.T) {
			x := newIndex()
			x.Add(1, "pear fig")
			x.Add(2, "fig kiwi")

			var words []string
			var sizes []int
			x.Words(func(word string, size int) bool {
				words = append(words, word)
				sizes = append(sizes, size)
				return true
			})
			assert.Equal(t, []string{"fig", "kiwi", "pear"}, words)
			assert.Equal(t, []int{2, 1, 1}, sizes)
		})
	}
}

func TestConcurrentIndexBucketCreationRace(t *testing.T) {
	const writers = 16
	x := NewConcurrentIndex()

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			x.Add(id, "shared "+fmt.Sprintf("own%d", id))
		}(uint64(w))
	}
	wg.Wait()

	ids := x.AppendIDs(nil, "shared")
	require.Len(t, ids, writers, "no insert lost to a losing bucket")
	stats := x.Stats()
	assert.Equal(t, writers+1, stats.Entries)
	assert.Equal(t, int64(2*writers), stats.Postings)
}

func TestConcurrentIndexAddRemoveStress(t *testing.T) {
	x := NewConcurrentIndex()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(base uint64) {
			defer wg.Done()
			for i := uint64(0); i < 500; i++ {
				id := base*1000 + i
				x.Add(id, "alpha beta")
				x.Remove(id, "alpha beta")
			}
		}(uint64(w))
	}
	wg.Wait()

	assert.Empty(t, x.AppendIDs(nil, "alpha"))
	assert.Empty(t, x.AppendIDs(nil, "beta"))
	assert.Zero(t, x.Stats().Postings)
	assert.Equal(t, 2, x.Len())
}

package textgen

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDictionary(t *testing.T) {
	d, err := NewDictionary([]string{"Apple", " apple ", "", "two words", "pear"})
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, "apple", d.Word(0))
	assert.Equal(t, "pear", d.Word(1))

	_, err = NewDictionary([]string{" ", ""})
	assert.ErrorIs(t, err, ErrEmptyDictionary)
}

func TestGeneratorSeededIsReproducible(t *testing.T) {
	a := New(DefaultDictionary(), WithSeed(7))
	b := New(DefaultDictionary(), WithSeed(7))
	for range 20 {
		assert.Equal(t, a.Name(), b.Name())
		assert.Equal(t, a.Description(), b.Description())
	}
}

func TestGeneratorWordCounts(t *testing.T) {
	g := New(DefaultDictionary(), WithSeed(1), WithNameWords(3), WithDescriptionWords(5))
	assert.Len(t, strings.Fields(g.Name()), 3)
	assert.Len(t, strings.Fields(g.Description()), 5)
	assert.Empty(t, g.RandomString(0))
}

func TestGeneratorSyntheticWords(t *testing.T) {
	g := New(nil, WithSeed(3), WithWordLength(4, 4))

	w := g.RandomWord(6)
	assert.Len(t, w, 6)
	assert.Equal(t, strings.ToLower(w), w)

	for _, word := range strings.Fields(g.Description()) {
		assert.Len(t, word, 4)
	}
	assert.Empty(t, g.RandomWord(0))
}

func TestGeneratorConcurrentUse(t *testing.T) {
	g := New(DefaultDictionary())
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.NotEmpty(t, g.Name())
			}
		}()
	}
	wg.Wait()
}

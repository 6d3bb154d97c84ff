// Package textgen generates random product names and descriptions.
package textgen

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
)

const letters = "abcdefghijklmnopqrstuvwxyz"

// ErrEmptyDictionary is returned by NewDictionary when no usable word is given.
var ErrEmptyDictionary = errors.New("textgen: dictionary is empty")

// Dictionary is an immutable list of distinct lower-case words.
type Dictionary struct {
	words []string
}

// NewDictionary normalizes words to lower case and drops blanks and duplicates.
func NewDictionary(words []string) (*Dictionary, error) {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || strings.ContainsAny(w, " \t\r\n") {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if len(out) == 0 {
		return nil, ErrEmptyDictionary
	}
	return &Dictionary{words: out}, nil
}

// DefaultDictionary returns a small built-in dictionary of colors, fruits
// and product-ish nouns.
func DefaultDictionary() *Dictionary {
	d, _ := NewDictionary(defaultWords)
	return d
}

// Len returns the number of words.
func (d *Dictionary) Len() int { return len(d.words) }

// Word returns the i-th word.
func (d *Dictionary) Word(i int) string { return d.words[i] }

// Generator produces random text. It is safe for concurrent use.
//
// With a dictionary, words are drawn from it; without one, words are random
// letter sequences.
type Generator struct {
	dict       *Dictionary
	nameWords  int
	descWords  int
	minWordLen int
	maxWordLen int
	seed       uint64
	seeded     bool

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the generated sequence reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
		g.seeded = true
	}
}

// WithNameWords sets the number of words per product name. Default 2.
func WithNameWords(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.nameWords = n
		}
	}
}

// WithDescriptionWords sets the number of words per description. Default 8.
func WithDescriptionWords(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.descWords = n
		}
	}
}

// WithWordLength bounds the length of synthesized words. Default 3 to 8.
func WithWordLength(minLen, maxLen int) Option {
	return func(g *Generator) {
		if minLen > 0 && maxLen >= minLen {
			g.minWordLen, g.maxWordLen = minLen, maxLen
		}
	}
}

// New creates a Generator. dict may be nil.
func New(dict *Dictionary, optFns ...Option) *Generator {
	g := &Generator{
		dict:       dict,
		nameWords:  2,
		descWords:  8,
		minWordLen: 3,
		maxWordLen: 8,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(g)
		}
	}
	if g.seeded {
		g.rng = rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	} else {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// RandomWord returns a word of exactly length random letters.
func (g *Generator) RandomWord(length int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.letters(length)
}

func (g *Generator) letters(length int) string {
	if length <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(letters[g.rng.IntN(len(letters))])
	}
	return b.String()
}

// word returns one word. The caller holds g.mu.
func (g *Generator) word() string {
	if g.dict != nil {
		return g.dict.words[g.rng.IntN(len(g.dict.words))]
	}
	return g.letters(g.minWordLen + g.rng.IntN(g.maxWordLen-g.minWordLen+1))
}

// RandomString returns words space-separated random words.
func (g *Generator) RandomString(words int) string {
	if words <= 0 {
		return ""
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	parts := make([]string, words)
	for i := range parts {
		parts[i] = g.word()
	}
	return strings.Join(parts, " ")
}

// Name returns a random product name.
func (g *Generator) Name() string {
	return g.RandomString(g.nameWords)
}

// Description returns a random product description.
func (g *Generator) Description() string {
	return g.RandomString(g.descWords)
}

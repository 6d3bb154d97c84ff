package testutil

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/prodcat/model"
)

// RNG struct encapsulates the random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// ZipfPicker returns a slot picker drawing Zipfian-distributed slots from r,
// so that low slots are hot. P(k) ∝ 1/(1+k)^s; s must be greater than 1.
func (r *RNG) ZipfPicker(s float64) func(n int) int {
	if s <= 1 {
		panic(fmt.Sprintf("testutil: zipf skew must be > 1, got %g", s))
	}
	zipfs := make(map[int]*rand.Zipf)
	return func(n int) int {
		r.mu.Lock()
		defer r.mu.Unlock()
		z, ok := zipfs[n]
		if !ok {
			z = rand.NewZipf(r.rand, s, 1, uint64(n-1))
			zipfs[n] = z
		}
		return int(z.Uint64())
	}
}

// SlotPicker returns a slot picker drawing uniformly from r.
func (r *RNG) SlotPicker() func(n int) int {
	return r.Intn
}

// Words returns n words picked from vocabulary, possibly repeating.
func (r *RNG) Words(vocabulary []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = vocabulary[r.Intn(len(vocabulary))]
	}
	return out
}

// Fruits and Colors are paired by FruitGenerator.
var (
	Fruits = []string{"apple", "banana", "cherry", "grape", "lemon", "lime", "mango", "melon", "peach", "plum"}
	Colors = []string{"red", "yellow", "red", "purple", "yellow", "green", "orange", "green", "orange", "purple"}
)

// FruitGenerator is a deterministic model.ContentGenerator. The i-th call to
// Name returns "<fruit> <color>" for the i-th pair of Fruits and Colors,
// cycling; descriptions are "fresh <fruit> number <i>".
type FruitGenerator struct {
	mu    sync.Mutex
	names int
	descs int
}

// NewFruitGenerator creates a FruitGenerator.
func NewFruitGenerator() *FruitGenerator {
	return &FruitGenerator{}
}

// Name implements model.ContentGenerator.
func (g *FruitGenerator) Name() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.names % len(Fruits)
	g.names++
	return Fruits[i] + " " + Colors[i]
}

// Description implements model.ContentGenerator.
func (g *FruitGenerator) Description() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.descs
	g.descs++
	return fmt.Sprintf("fresh %s number%d", Fruits[i%len(Fruits)], i)
}

// Catalog is the read surface CheckSlots needs.
type Catalog interface {
	Capacity() int
	LookupBySlot(i int) (*model.Product, bool)
	MatchAll(keywords []string) []*model.Product
}

// CheckSlots verifies at a quiescent point that every slot resolves to an
// available product, that no product occupies two slots and that the set of
// all products equals the set of slot occupants.
func CheckSlots(c Catalog) error {
	var errs []error
	slotIDs := make([]uint64, 0, c.Capacity())
	for i := range c.Capacity() {
		p, ok := c.LookupBySlot(i)
		if !ok {
			errs = append(errs, fmt.Errorf("slot %d is empty", i))
			continue
		}
		if !p.Available() {
			errs = append(errs, fmt.Errorf("slot %d holds retired product %d", i, p.ID()))
		}
		slotIDs = append(slotIDs, p.ID())
	}
	slices.Sort(slotIDs)
	if n := len(slices.Compact(slices.Clone(slotIDs))); n != len(slotIDs) {
		errs = append(errs, fmt.Errorf("%d slots share products", len(slotIDs)-n))
	}

	all := IDs(c.MatchAll(nil))
	if !slices.Equal(all, slotIDs) {
		errs = append(errs, fmt.Errorf("catalog holds %d products, slots hold %d", len(all), len(slotIDs)))
	}
	return errors.Join(errs...)
}

// IDs returns the ids of products in order, or nil if there are none.
func IDs(products []*model.Product) []uint64 {
	if len(products) == 0 {
		return nil
	}
	out := make([]uint64, len(products))
	for i, p := range products {
		out[i] = p.ID()
	}
	return out
}

package prodcat_test

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hupe1980/prodcat"
	"github.com/hupe1980/prodcat/model"
	"github.com/hupe1980/prodcat/testutil"
)

// Example demonstrates keyword search over a small catalog.
func Example() {
	store, err := prodcat.New(5, testutil.NewFruitGenerator())
	if err != nil {
		log.Fatal(err)
	}

	for _, p := range store.MatchAll([]string{"red"}) {
		fmt.Println(p.ID(), p.Name())
	}
	fmt.Println(len(store.MatchAny([]string{"yellow", "purple"})))
	// Output:
	// 0 apple red
	// 2 cherry red
	// 3
}

// Example_lockFree replaces a product in a lock-free store.
func Example_lockFree() {
	store, err := prodcat.New(3, testutil.NewFruitGenerator(),
		prodcat.WithStrategy(prodcat.LockFree),
		prodcat.WithSlotPicker(func(int) int { return 1 }),
	)
	if err != nil {
		log.Fatal(err)
	}

	removed, err := store.ReplaceArbitrarySlot(model.NewProduct(100, "plum purple", "a ripe plum"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("removed:", removed.Name(), removed.Available())

	p, _ := store.LookupBySlot(1)
	fmt.Println("slot 1:", p.Name())
	// Output:
	// removed: banana yellow false
	// slot 1: plum purple
}

// Example_phased shows that replacements become visible after a rebuild.
func Example_phased() {
	store, err := prodcat.New(3, testutil.NewFruitGenerator(),
		prodcat.WithStrategy(prodcat.Phased),
		prodcat.WithSlotPicker(func(int) int { return 0 }),
		prodcat.WithReportSink(io.Discard),
	)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := store.ReplaceArbitrarySlot(model.NewProduct(100, "lime green", "a sour lime")); err != nil {
		log.Fatal(err)
	}
	fmt.Println("pending:", store.PendingChanges())
	fmt.Println("before:", len(store.MatchAll([]string{"lime"})))

	applied, err := store.Rebuild()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("applied:", applied)
	fmt.Println("after:", len(store.MatchAll([]string{"lime"})))
	// Output:
	// pending: 1
	// before: 0
	// applied: 1
	// after: 1
}

// ExampleStore_Report prints the catalog report in CSV form.
func ExampleStore_Report() {
	store, err := prodcat.New(2, testutil.NewFruitGenerator(),
		prodcat.WithStrategy(prodcat.LockFree),
		prodcat.WithCSVReport(true),
		prodcat.WithReportSink(os.Stdout),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := store.Report(false); err != nil {
		log.Fatal(err)
	}
}

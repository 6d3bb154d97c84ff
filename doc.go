// Package prodcat provides an in-memory product catalog that is searched and
// mutated concurrently.
//
// A Store has a fixed number of slots. Every slot holds one product; a
// product has a permanent id, a name and a description and is never
// modified except for being retired. Keyword indices over names and
// descriptions answer match-all and match-any queries while writers replace
// the products of random slots.
//
// # Strategies
//
// Three interchangeable strategies keep the slots, the primary map and the
// keyword indices consistent:
//
//   - Exclusive: a single reader/writer lock. Searches and lookups share it,
//     replacements hold it exclusively.
//   - LockFree: no global lock. Slots are claimed with atomic swaps, the
//     primary map is a concurrent map and each keyword bucket has its own
//     lock. Results may briefly mix old and new state; a lookup may find a
//     slot empty while a replacement is in flight.
//   - Phased: replacements are queued in a change log. Rebuild applies them
//     to a copy of the current snapshot, re-indexes it and publishes it with
//     one atomic pointer swap. Readers always see a whole snapshot.
//
// # Quick Start
//
//	gen := textgen.New(textgen.DefaultDictionary(), textgen.WithSeed(1))
//	store, err := prodcat.New(1000, gen, prodcat.WithStrategy(prodcat.Phased))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, _, err := store.ReplaceRandomProduct(); err != nil {
//	    log.Fatal(err)
//	}
//	_, _ = store.Rebuild() // Phased only
//
//	for _, p := range store.MatchAll([]string{"red", "apple"}) {
//	    fmt.Println(p.ID(), p.Name())
//	}
//
// Use Rebuilder to rebuild a Phased store periodically:
//
//	rb, _ := prodcat.NewRebuilder(store, 100*time.Millisecond)
//	go rb.Run(ctx)
package prodcat

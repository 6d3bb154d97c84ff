// Package testutil provides testing utilities for prodcat.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded thread-safe RNG, deterministic product fixtures and
// consistency checks that work against any catalog through its public API.
//
// # Fixtures
//
//	gen := testutil.NewFruitGenerator()
//	gen.Name()        // "apple red", "banana yellow", ...
//
// # Consistency
//
//	err := testutil.CheckSlots(store)
package testutil

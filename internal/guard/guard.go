// Package guard runs actions under a shared or exclusive lock.
//
// A Guard wraps a sync.RWMutex with a scoped-execution API: the caller hands
// over a function and the guard holds the appropriate lock for exactly the
// duration of that call, releasing it on every exit path including panics.
// The guard also counts how often each side had to wait for the lock.
package guard

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/cpu"
)

// Stats summarizes lock usage of a Guard.
type Stats struct {
	Reads           uint64
	Writes          uint64
	ContendedReads  uint64
	ContendedWrites uint64
	ReadWait        time.Duration
	WriteWait       time.Duration
}

type counters struct {
	acquired  atomic.Uint64
	contended atomic.Uint64
	waitNanos atomic.Int64
}

// Guard serializes writers against everyone while letting readers share.
// The zero value is ready to use.
type Guard struct {
	mu sync.RWMutex

	_       cpu.CacheLinePad
	readers counters
	_       cpu.CacheLinePad
	writers counters
	_       cpu.CacheLinePad
}

// New creates a Guard.
func New() *Guard {
	return &Guard{}
}

// ActAsReader runs fn while holding the shared lock.
func (g *Guard) ActAsReader(fn func()) {
	g.rlock()
	defer g.mu.RUnlock()
	fn()
}

// ActAsWriter runs fn while holding the exclusive lock.
func (g *Guard) ActAsWriter(fn func()) {
	g.lock()
	defer g.mu.Unlock()
	fn()
}

// Read runs fn under the shared lock of g and returns its result.
func Read[T any](g *Guard, fn func() T) (out T) {
	g.ActAsReader(func() { out = fn() })
	return out
}

// Write runs fn under the exclusive lock of g and returns its result.
func Write[T any](g *Guard, fn func() T) (out T) {
	g.ActAsWriter(func() { out = fn() })
	return out
}

func (g *Guard) rlock() {
	g.readers.acquired.Add(1)
	if g.mu.TryRLock() {
		return
	}
	start := time.Now()
	g.mu.RLock()
	g.readers.contended.Add(1)
	g.readers.waitNanos.Add(int64(time.Since(start)))
}

func (g *Guard) lock() {
	g.writers.acquired.Add(1)
	if g.mu.TryLock() {
		return
	}
	start := time.Now()
	g.mu.Lock()
	g.writers.contended.Add(1)
	g.writers.waitNanos.Add(int64(time.Since(start)))
}

// Stats returns a snapshot of the lock counters.
func (g *Guard) Stats() Stats {
	return Stats{
		Reads:           g.readers.acquired.Load(),
		Writes:          g.writers.acquired.Load(),
		ContendedReads:  g.readers.contended.Load(),
		ContendedWrites: g.writers.contended.Load(),
		ReadWait:        time.Duration(g.readers.waitNanos.Load()),
		WriteWait:       time.Duration(g.writers.waitNanos.Load()),
	}
}

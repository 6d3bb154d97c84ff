package prodcat

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Rebuilder periodically rebuilds a Phased store. It is the single
// maintenance path a Phased store expects; run at most one per store.
type Rebuilder struct {
	store    *Store
	interval time.Duration
	rebuilds int
	applied  int
}

// NewRebuilder creates a Rebuilder for store that rebuilds every interval.
// It returns a *UsageError unless store uses the Phased strategy.
func NewRebuilder(store *Store, interval time.Duration) (*Rebuilder, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is nil", ErrInvalidArgument)
	}
	if store.phased == nil {
		return nil, &UsageError{Op: "rebuilder", Strategy: store.Strategy(), Required: Phased}
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w: rebuild interval must be positive, got %s", ErrInvalidArgument, interval)
	}
	return &Rebuilder{store: store, interval: interval}, nil
}

// Run rebuilds on every tick until ctx is done, then performs a final
// rebuild so that no queued change is left behind. Report sink failures are
// logged and do not stop the loop. Run returns nil on cancellation and the
// first other rebuild error otherwise.
func (r *Rebuilder) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Final rebuild before shutdown
			return r.rebuild(context.WithoutCancel(ctx))
		case <-ticker.C:
			if err := r.rebuild(ctx); err != nil {
				return err
			}
		}
	}
}

func (r *Rebuilder) rebuild(ctx context.Context) error {
	n, err := r.store.rebuild(ctx)
	if err != nil && !errors.Is(err, ErrReport) {
		return err
	}
	r.rebuilds++
	r.applied += n
	if err != nil {
		r.store.logger.WarnContext(ctx, "rebuild report failed", "error", err)
	}
	return nil
}

// Totals returns the number of rebuilds performed by Run and the number of
// change records they applied. Call it after Run has returned.
func (r *Rebuilder) Totals() (rebuilds, applied int) {
	return r.rebuilds, r.applied
}

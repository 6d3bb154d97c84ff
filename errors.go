package prodcat

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a constructor or operation receives
	// an argument it cannot work with (non-positive capacity, nil product, ...).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateID is returned when a replacement product carries an id that
	// is already present in the catalog.
	ErrDuplicateID = errors.New("duplicate product id")

	// ErrReport is wrapped by errors writing to the report sink. The operation
	// that reported has completed when it is returned.
	ErrReport = errors.New("write report")

	// ErrUsage is the sentinel wrapped by every *UsageError.
	ErrUsage = errors.New("usage error")

	// ErrInvariantViolation is the sentinel wrapped by every *InvariantViolation.
	ErrInvariantViolation = errors.New("internal invariant violation")
)

// UsageError indicates that a strategy-specific operation was invoked on a
// store configured with a different strategy. It signals a programming error
// in the caller and is not recoverable by retrying.
//
// errors.Is(err, ErrUsage) reports true for every UsageError.
type UsageError struct {
	Op       string
	Strategy Strategy
	Required Strategy
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s requires the %s strategy, store uses %s", e.Op, e.Required, e.Strategy)
}

func (e *UsageError) Unwrap() error { return ErrUsage }

// InvariantViolation describes a breach of a catalog invariant that is not an
// accepted race. The store panics with a *InvariantViolation value because the
// catalog can no longer be trusted; it is never returned as an error.
//
// errors.Is(v, ErrInvariantViolation) reports true for every InvariantViolation.
type InvariantViolation struct {
	Invariant string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant %q violated: %s", e.Invariant, e.Detail)
}

func (e *InvariantViolation) Unwrap() error { return ErrInvariantViolation }

func violate(invariant, format string, args ...any) {
	panic(&InvariantViolation{Invariant: invariant, Detail: fmt.Sprintf(format, args...)})
}

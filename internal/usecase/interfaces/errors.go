package interfaces

import "errors"

// Repository-level error taxonomy. Use cases translate these into the
// caller-facing sentinels; handlers never see them directly.
var (
	// ErrInfrastructure wraps any underlying store/transport failure. Reads
	// may be retried once; mutations are never retried to avoid duplicate
	// side effects.
	ErrInfrastructure = errors.New("infrastructure failure")

	// ErrConditionFailed signals that an optimistic precondition (status,
	// version, assignment) did not hold at write time.
	ErrConditionFailed = errors.New("precondition failed")

	// ErrQuoteExists signals that the (order, supplier) quote pair already
	// exists when an insert expected it to be absent.
	ErrQuoteExists = errors.New("quote already exists")
)

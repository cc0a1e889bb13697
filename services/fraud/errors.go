package fraud

import "errors"

// Error taxonomy for the fraud pipeline. All errors are matched with
// errors.Is; implementations wrap them with context.
var (
	// ErrInvalidInput marks a transaction submitted for scoring without a
	// usable embedding. Never retried.
	ErrInvalidInput = errors.New("transaction has no embedding")

	// ErrStoreUnavailable marks a transient failure talking to the
	// transaction store.
	ErrStoreUnavailable = errors.New("transaction store unavailable")

	// ErrFeedClosed marks an unexpected termination of the change feed
	// cursor. Fatal to the listener instance, not to the process.
	ErrFeedClosed = errors.New("change feed closed")

	// ErrShutdownTimeout marks a background task that failed to stop within
	// the grace period.
	ErrShutdownTimeout = errors.New("shutdown grace period exceeded")

	// ErrAlreadyStarted marks a second Start call on a running component.
	ErrAlreadyStarted = errors.New("already started")
)

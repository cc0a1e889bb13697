package fraud

import (
	"context"

	"github.com/fraudsight/fraudsight/internal/pkg/models"
)

// TransactionRepo defines data access for the transaction store. All writes
// are idempotent upserts keyed by the immutable transaction ID, safe for
// concurrent callers.
type TransactionRepo interface {
	// Upsert inserts the transaction or replaces the stored record in place.
	Upsert(ctx context.Context, tx *models.Transaction) error

	// UpdateVerdict sets the fraud verdict on an existing record.
	// Last write wins under concurrent scoring.
	UpdateVerdict(ctx context.Context, transactionID string, isFraud bool) error

	// Get fetches a transaction by ID; returns nil when not found.
	Get(ctx context.Context, transactionID string) (*models.Transaction, error)

	// QueryCandidates returns up to limit historical transactions forming
	// the candidate pool for similarity search, most recent first.
	QueryCandidates(ctx context.Context, limit int) ([]*models.Transaction, error)

	// Count returns the number of stored transactions.
	Count(ctx context.Context) (int64, error)
}

// FeedCursor iterates over live change feed events. Next blocks until an
// event arrives, the context is cancelled, or the cursor is closed.
type FeedCursor interface {
	Next(ctx context.Context) (*models.FeedEvent, error)
	Close() error
}

// ChangeFeed opens live cursors over the transaction store's mutation feed
type ChangeFeed interface {
	Open(ctx context.Context) (FeedCursor, error)
}

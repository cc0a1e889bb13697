package generator

import (
	"context"
	"time"

	"github.com/fraudsight/fraudsight/internal/pkg/models"
)

// CustomerRepo defines data access for customer spending profiles
type CustomerRepo interface {
	// List returns every customer profile from the source of truth.
	List(ctx context.Context) ([]*models.Customer, error)

	// Count returns the number of stored customers.
	Count(ctx context.Context) (int64, error)

	// Insert stores a customer profile.
	Insert(ctx context.Context, customer *models.Customer) error
}

// SnapshotCache shares the customer roster between generator instances so
// the source of truth is hit at most once per refresh interval.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context) ([]*models.Customer, error)
	PutSnapshot(ctx context.Context, customers []*models.Customer, ttl time.Duration) error
}

// TransactionGW publishes generated transactions onto the message queue
type TransactionGW interface {
	PublishTransaction(ctx context.Context, tx *models.Transaction) error
}

package fraud

import (
	"context"

	"github.com/fraudsight/fraudsight/internal/pkg/models"
)

// FraudGW publishes pipeline results to downstream consumers
type FraudGW interface {
	// PublishScored announces a scored transaction. Best effort: failures
	// are logged by callers, never retried through the queue.
	PublishScored(ctx context.Context, tx *models.Transaction) error
}

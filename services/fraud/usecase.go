package fraud

import (
	"context"

	"github.com/fraudsight/fraudsight/internal/pkg/models"
)

// Scorer computes a fraud verdict for a transaction by neighbor-similarity
// voting over historical transactions. Scoring is a pure read-and-compute
// operation; callers persist the verdict.
type Scorer interface {
	Evaluate(ctx context.Context, tx *models.Transaction) (bool, error)
}

package gateway

import (
	"context"
	"fmt"

	"github.com/fraudsight/fraudsight/internal/pkg/constants"
	"github.com/fraudsight/fraudsight/internal/pkg/models"
	natspkg "github.com/fraudsight/fraudsight/internal/pkg/nats"
)

// TransactionGW publishes generated transactions over NATS
type TransactionGW struct {
	producer *natspkg.Producer
}

// NewTransactionGW creates a new transaction gateway on an existing client
func NewTransactionGW(client *natspkg.Client) *TransactionGW {
	return &TransactionGW{producer: natspkg.NewProducer(client)}
}

// PublishTransaction sends a transaction event onto the queue
func (g *TransactionGW) PublishTransaction(ctx context.Context, tx *models.Transaction) error {
	if err := g.producer.Publish(ctx, constants.SubjectTransactionEvents, tx); err != nil {
		return fmt.Errorf("failed to publish transaction event: %w", err)
	}
	return nil
}

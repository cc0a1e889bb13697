package gateway

import (
	"context"
	"fmt"

	"github.com/fraudsight/fraudsight/internal/pkg/constants"
	"github.com/fraudsight/fraudsight/internal/pkg/models"
	natspkg "github.com/fraudsight/fraudsight/internal/pkg/nats"
)

// FraudGW publishes pipeline results over NATS
type FraudGW struct {
	producer *natspkg.Producer
}

// NewFraudGW creates a new fraud gateway on an existing NATS client
func NewFraudGW(client *natspkg.Client) *FraudGW {
	return &FraudGW{producer: natspkg.NewProducer(client)}
}

// PublishScored announces a scored transaction to downstream consumers
func (g *FraudGW) PublishScored(ctx context.Context, tx *models.Transaction) error {
	event := models.NewScoredEvent(tx)
	if err := g.producer.Publish(ctx, constants.SubjectTransactionScored, event); err != nil {
		return fmt.Errorf("failed to publish scored event: %w", err)
	}
	return nil
}

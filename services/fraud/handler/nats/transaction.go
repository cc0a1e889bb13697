package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/fraudsight/fraudsight/internal/pkg/constants"
	"github.com/fraudsight/fraudsight/internal/pkg/logger"
	"github.com/fraudsight/fraudsight/internal/pkg/models"
	natspkg "github.com/fraudsight/fraudsight/internal/pkg/nats"
	"github.com/fraudsight/fraudsight/services/fraud"
)

// TransactionHandler consumes transaction events from the queue, persists
// them, scores them, and persists the verdict.
type TransactionHandler struct {
	client   *natspkg.Client
	repo     fraud.TransactionRepo
	scorer   fraud.Scorer
	fraudGW  fraud.FraudGW
	consumer *natspkg.Consumer
}

// NewTransactionHandler creates a new transaction queue handler
func NewTransactionHandler(client *natspkg.Client, repo fraud.TransactionRepo, scorer fraud.Scorer, fraudGW fraud.FraudGW) *TransactionHandler {
	return &TransactionHandler{
		client:  client,
		repo:    repo,
		scorer:  scorer,
		fraudGW: fraudGW,
	}
}

// Start begins consuming transaction events on the durable consumer group.
// Ordering is guaranteed only within the stream's delivery order, not across
// the change feed path.
func (h *TransactionHandler) Start(ctx context.Context) error {
	consumer, err := natspkg.NewConsumer(ctx, h.client, natspkg.ConsumerConfig{
		StreamName:    constants.StreamTransactions,
		ConsumerName:  constants.ConsumerFraudGroup,
		FilterSubject: constants.SubjectTransactionEvents,
	}, func(msg jetstream.Msg) error {
		return h.handleTransactionEvent(ctx, msg.Data())
	})
	if err != nil {
		return fmt.Errorf("failed to start transaction consumer: %w", err)
	}

	h.consumer = consumer
	return nil
}

// Stop halts message delivery
func (h *TransactionHandler) Stop() {
	if h.consumer != nil {
		h.consumer.Stop()
		h.consumer = nil
	}
}

// handleTransactionEvent processes one delivered transaction event.
//
// A store failure is returned to the consumer so the message stays
// unacknowledged and the queue redelivers it. A scoring failure is soft: the
// transaction keeps its default verdict and the message is acknowledged,
// since an unscored transaction beats one stuck in redelivery forever.
// Replay is safe because both writes are upserts keyed by the immutable
// transaction ID.
func (h *TransactionHandler) handleTransactionEvent(ctx context.Context, data []byte) error {
	var tx models.Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return fmt.Errorf("%w: unmarshal transaction event: %v", natspkg.ErrNonRetryable, err)
	}
	if tx.TransactionID == "" {
		return fmt.Errorf("%w: transaction event without transaction_id", natspkg.ErrNonRetryable)
	}

	logger.Info("Received transaction",
		logger.String("transaction_id", tx.TransactionID),
		logger.Float64("amount", tx.Amount),
		logger.String("currency", string(tx.Currency)),
		logger.String("merchant", string(tx.Merchant)),
		logger.String("category", string(tx.Category)))

	// Persist as received; the verdict starts out false
	tx.IsFraud = false
	if err := h.repo.Upsert(ctx, &tx); err != nil {
		return fmt.Errorf("failed to persist transaction %s: %w", tx.TransactionID, err)
	}

	isFraud, err := h.scorer.Evaluate(ctx, &tx)
	if err != nil {
		logger.Warn("Scoring failed, keeping default verdict",
			logger.String("transaction_id", tx.TransactionID),
			logger.Err(err))
		return nil
	}

	if err := h.repo.UpdateVerdict(ctx, tx.TransactionID, isFraud); err != nil {
		return fmt.Errorf("failed to persist verdict for %s: %w", tx.TransactionID, err)
	}

	tx.IsFraud = isFraud
	if err := h.fraudGW.PublishScored(ctx, &tx); err != nil {
		logger.Warn("Failed to publish scored event",
			logger.String("transaction_id", tx.TransactionID),
			logger.Err(err))
	}

	logger.Info("Transaction evaluated",
		logger.String("transaction_id", tx.TransactionID),
		logger.Bool("is_fraud", isFraud))
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgconn"

	"github.com/fraudsight/fraudsight/internal/pkg/database"
	"github.com/fraudsight/fraudsight/internal/pkg/logger"
	"github.com/fraudsight/fraudsight/internal/pkg/models"
	"github.com/fraudsight/fraudsight/services/fraud"
)

// FeedChannel is the Postgres notification channel carrying transaction
// mutations. The trigger installed by the schema migration publishes to it.
const FeedChannel = "transaction_feed"

// ChangeFeed opens live cursors over the transactions table using Postgres
// LISTEN/NOTIFY. The notification payload carries only the operation and the
// transaction ID; the cursor resolves the full document with a follow-up
// read so embeddings never hit the NOTIFY payload size limit.
type ChangeFeed struct {
	client *database.PostgresClient
	repo   fraud.TransactionRepo
}

// NewChangeFeed creates a change feed over the transaction store
func NewChangeFeed(client *database.PostgresClient, repo fraud.TransactionRepo) *ChangeFeed {
	return &ChangeFeed{client: client, repo: repo}
}

// Open starts listening on the feed channel with a dedicated connection
func (f *ChangeFeed) Open(ctx context.Context) (fraud.FeedCursor, error) {
	conn, err := f.client.NewListenConn(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(ctx, "LISTEN "+FeedChannel); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to listen on %s: %w", FeedChannel, err)
	}

	return &feedCursor{conn: conn, repo: f.repo}, nil
}

// notificationConn is the subset of the pgx connection the cursor uses
type notificationConn interface {
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

// feedCursor consumes notifications from a dedicated listen connection
type feedCursor struct {
	conn notificationConn
	repo fraud.TransactionRepo
}

// feedPayload is the JSON body published by the transactions trigger
type feedPayload struct {
	Op            string `json:"op"`
	TransactionID string `json:"transaction_id"`
}

// Next blocks until the next mutation event arrives. Insert events carry the
// full document when it can be resolved; a document that disappeared between
// the notification and the read yields a nil Document. Malformed payloads are
// skipped: anything on the channel can publish garbage, and one bad
// notification must not end the watch session.
func (c *feedCursor) Next(ctx context.Context) (*models.FeedEvent, error) {
	for {
		notification, err := c.conn.WaitForNotification(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", fraud.ErrFeedClosed, err)
		}

		var payload feedPayload
		if err := json.Unmarshal([]byte(notification.Payload), &payload); err != nil {
			logger.Warn("Skipping malformed feed payload",
				logger.String("payload", notification.Payload),
				logger.Err(err))
			continue
		}

		event := &models.FeedEvent{
			Op:            models.FeedOp(payload.Op),
			TransactionID: payload.TransactionID,
		}

		if event.Op == models.FeedOpInsert {
			doc, err := c.repo.Get(ctx, payload.TransactionID)
			if err != nil {
				logger.Warn("Failed to resolve feed document",
					logger.String("transaction_id", payload.TransactionID),
					logger.Err(err))
			}
			event.Document = doc
		}

		return event, nil
	}
}

// Close terminates the listen connection, unblocking any pending Next
func (c *feedCursor) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.conn.Close(ctx)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/fraudsight/fraudsight/internal/pkg/models"
)

// TransactionRepo implements the fraud transaction repository on PostgreSQL
type TransactionRepo struct {
	db *sqlx.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sqlx.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

// transactionDTO maps a transactions row for sqlx scanning
type transactionDTO struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	Amount        float64         `db:"amount"`
	Currency      string          `db:"currency"`
	Merchant      string          `db:"merchant"`
	Category      string          `db:"category"`
	CreatedAt     time.Time       `db:"created_at"`
	Embedding     pq.Float32Array `db:"embedding"`
	IsFraud       bool            `db:"is_fraud"`
}

func (dto *transactionDTO) toModel() *models.Transaction {
	return &models.Transaction{
		TransactionID: dto.TransactionID,
		UserID:        dto.UserID,
		Amount:        dto.Amount,
		Currency:      models.Currency(dto.Currency),
		Merchant:      models.Merchant(dto.Merchant),
		Category:      models.Category(dto.Category),
		Timestamp:     dto.CreatedAt,
		Embedding:     []float32(dto.Embedding),
		IsFraud:       dto.IsFraud,
	}
}

const selectColumns = `
	transaction_id, user_id, amount, currency, merchant, category,
	created_at, embedding, is_fraud
`

// Upsert inserts the transaction or replaces the stored record in place.
// The single-statement conflict clause keeps concurrent writes on the same
// transaction ID atomic at the store: writers cannot corrupt the row, only
// overwrite each other.
func (r *TransactionRepo) Upsert(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (
			transaction_id, user_id, amount, currency, merchant, category,
			created_at, embedding, is_fraud
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (transaction_id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			merchant = EXCLUDED.merchant,
			category = EXCLUDED.category,
			embedding = EXCLUDED.embedding,
			is_fraud = EXCLUDED.is_fraud
	`
	_, err := r.db.ExecContext(ctx, query,
		tx.TransactionID, tx.UserID, tx.Amount,
		string(tx.Currency), string(tx.Merchant), string(tx.Category),
		tx.Timestamp, pq.Float32Array(tx.Embedding), tx.IsFraud,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert transaction: %w", err)
	}
	return nil
}

// UpdateVerdict sets the fraud verdict for a stored transaction.
// Last write wins when both ingestion paths score the same record.
func (r *TransactionRepo) UpdateVerdict(ctx context.Context, transactionID string, isFraud bool) error {
	query := `UPDATE transactions SET is_fraud = $2 WHERE transaction_id = $1`
	_, err := r.db.ExecContext(ctx, query, transactionID, isFraud)
	if err != nil {
		return fmt.Errorf("failed to update verdict: %w", err)
	}
	return nil
}

// Get fetches a transaction by ID; returns nil when not found
func (r *TransactionRepo) Get(ctx context.Context, transactionID string) (*models.Transaction, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions WHERE transaction_id = $1`

	var dto transactionDTO
	err := r.db.GetContext(ctx, &dto, query, transactionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return dto.toModel(), nil
}

// QueryCandidates returns up to limit transactions forming the candidate
// pool for similarity search, most recent first.
func (r *TransactionRepo) QueryCandidates(ctx context.Context, limit int) ([]*models.Transaction, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions ORDER BY created_at DESC LIMIT $1`

	var dtos []transactionDTO
	if err := r.db.SelectContext(ctx, &dtos, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	candidates := make([]*models.Transaction, 0, len(dtos))
	for i := range dtos {
		candidates = append(candidates, dtos[i].toModel())
	}
	return candidates, nil
}

// Count returns the number of stored transactions
func (r *TransactionRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM transactions`); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

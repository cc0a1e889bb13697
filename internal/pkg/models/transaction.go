package models

import (
	"time"

	"github.com/google/uuid"
)

// EmbeddingDimensions is the fixed length of every transaction embedding
const EmbeddingDimensions = 384

// Transaction represents a single financial event scored for fraud
type Transaction struct {
	TransactionID string    `json:"transaction_id" db:"transaction_id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Amount        float64   `json:"amount" db:"amount"`
	Currency      Currency  `json:"currency" db:"currency"`
	Merchant      Merchant  `json:"merchant" db:"merchant"`
	Category      Category  `json:"category" db:"category"`
	Timestamp     time.Time `json:"timestamp" db:"created_at"`
	Embedding     []float32 `json:"embedding" db:"embedding"`
	IsFraud       bool      `json:"is_fraud" db:"is_fraud"`
}

// NewTransaction creates a transaction with a generated ID and timestamp.
// The ID and timestamp are assigned exactly once and never change.
func NewTransaction(userID string, amount float64, currency Currency, merchant Merchant, category Category) *Transaction {
	return &Transaction{
		TransactionID: uuid.New().String(),
		UserID:        userID,
		Amount:        amount,
		Currency:      currency,
		Merchant:      merchant,
		Category:      category,
		Timestamp:     time.Now().UTC(),
	}
}

// HasEmbedding reports whether the transaction is eligible for scoring
func (t *Transaction) HasEmbedding() bool {
	return len(t.Embedding) > 0
}

// ScoredEvent announces a fraud verdict to downstream consumers. It carries
// the transaction without its embedding to keep messages small.
type ScoredEvent struct {
	TransactionID string    `json:"transaction_id"`
	UserID        string    `json:"user_id"`
	Amount        float64   `json:"amount"`
	Currency      Currency  `json:"currency"`
	Merchant      Merchant  `json:"merchant"`
	Category      Category  `json:"category"`
	Timestamp     time.Time `json:"timestamp"`
	IsFraud       bool      `json:"is_fraud"`
}

// NewScoredEvent builds the verdict announcement for a scored transaction
func NewScoredEvent(t *Transaction) *ScoredEvent {
	return &ScoredEvent{
		TransactionID: t.TransactionID,
		UserID:        t.UserID,
		Amount:        t.Amount,
		Currency:      t.Currency,
		Merchant:      t.Merchant,
		Category:      t.Category,
		Timestamp:     t.Timestamp,
		IsFraud:       t.IsFraud,
	}
}

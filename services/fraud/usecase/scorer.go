package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/fraudsight/fraudsight/internal/pkg/logger"
	"github.com/fraudsight/fraudsight/internal/pkg/models"
	"github.com/fraudsight/fraudsight/services/fraud"
)

// Evaluate scores the transaction by majority vote over its nearest
// neighbors. The verdict is fraud only when strictly more than half of the
// neighbors are fraudulent; a tie favors legitimacy. With no historical
// evidence the verdict defaults to false.
func (uc *ScorerUC) Evaluate(ctx context.Context, tx *models.Transaction) (bool, error) {
	if tx == nil || !tx.HasEmbedding() {
		return false, fraud.ErrInvalidInput
	}

	candidates, err := uc.repo.QueryCandidates(ctx, uc.cfg.NumCandidates)
	if err != nil {
		return false, fmt.Errorf("%w: %v", fraud.ErrStoreUnavailable, err)
	}

	neighbors := uc.nearestNeighbors(tx, candidates)
	if len(neighbors) == 0 {
		return false, nil
	}

	fraudCount := 0
	for _, neighbor := range neighbors {
		if neighbor.IsFraud {
			fraudCount++
		}
	}

	fraudRatio := float64(fraudCount) / float64(len(neighbors))
	isFraud := fraudRatio > 0.5

	logger.Debug("Scored transaction",
		logger.String("transaction_id", tx.TransactionID),
		logger.Int("neighbors", len(neighbors)),
		logger.Float64("fraud_ratio", fraudRatio),
		logger.Bool("is_fraud", isFraud))

	return isFraud, nil
}

// nearestNeighbors narrows the candidate pool to the top SearchLimit
// transactions by cosine similarity. Candidates without embeddings and the
// transaction's own stored record are excluded from the vote.
func (uc *ScorerUC) nearestNeighbors(tx *models.Transaction, candidates []*models.Transaction) []*models.Transaction {
	type scored struct {
		tx         *models.Transaction
		similarity float64
	}

	pool := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil || !candidate.HasEmbedding() {
			continue
		}
		if candidate.TransactionID == tx.TransactionID {
			continue
		}
		pool = append(pool, scored{
			tx:         candidate,
			similarity: cosineSimilarity(tx.Embedding, candidate.Embedding),
		})
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].similarity > pool[j].similarity
	})

	limit := uc.cfg.SearchLimit
	if len(pool) < limit {
		limit = len(pool)
	}

	neighbors := make([]*models.Transaction, 0, limit)
	for _, s := range pool[:limit] {
		neighbors = append(neighbors, s.tx)
	}
	return neighbors
}

// cosineSimilarity compares two embeddings. Mismatched or zero-length
// vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

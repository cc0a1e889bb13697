package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/fraudsight/fraudsight/internal/pkg/models"
	"github.com/fraudsight/fraudsight/services/fraud"
	"github.com/fraudsight/fraudsight/services/fraud/mocks"
)

func candidateTx(id string, embedding []float32, isFraud bool) *models.Transaction {
	return &models.Transaction{
		TransactionID: id,
		UserID:        "alice",
		Amount:        50,
		Currency:      models.CurrencyEUR,
		Merchant:      models.MerchantTesco,
		Category:      models.CategoryGrocery,
		Embedding:     embedding,
		IsFraud:       isFraud,
	}
}

// identicalPool builds count candidates equidistant from the subject so the
// verdict depends only on the vote, not on ranking.
func identicalPool(embedding []float32, fraudCount, count int) []*models.Transaction {
	pool := make([]*models.Transaction, 0, count)
	for i := 0; i < count; i++ {
		id := string(rune('a' + i))
		pool = append(pool, candidateTx("cand-"+id, embedding, i < fraudCount))
	}
	return pool
}

func TestEvaluate_MajorityFraudulentNeighbors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTransactionRepo(ctrl)
	uc := NewScorerUC(models.ScorerConfig{SearchLimit: 5, NumCandidates: 50}, mockRepo)

	embedding := []float32{1, 0, 0}
	tx := candidateTx("tx-1", embedding, false)

	mockRepo.EXPECT().
		QueryCandidates(gomock.Any(), 50).
		Return(identicalPool(embedding, 3, 5), nil)

	isFraud, err := uc.Evaluate(context.Background(), tx)
	assert.NoError(t, err)
	assert.True(t, isFraud)
}

func TestEvaluate_MinorityFraudulentNeighbors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTransactionRepo(ctrl)
	uc := NewScorerUC(models.ScorerConfig{SearchLimit: 5, NumCandidates: 50}, mockRepo)

	embedding := []float32{1, 0, 0}
	tx := candidateTx("tx-1", embedding, false)

	mockRepo.EXPECT().
		QueryCandidates(gomock.Any(), 50).
		Return(identicalPool(embedding, 2, 5), nil)

	isFraud, err := uc.Evaluate(context.Background(), tx)
	assert.NoError(t, err)
	assert.False(t, isFraud)
}

func TestEvaluate_TieFavorsLegitimacy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTransactionRepo(ctrl)
	uc := NewScorerUC(models.ScorerConfig{SearchLimit: 4, NumCandidates: 50}, mockRepo)

	embedding := []float32{1, 0, 0}
	tx := candidateTx("tx-1", embedding, false)

	// Exactly half fraudulent: 2 of 4 is not a strict majority.
	mockRepo.EXPECT().
		QueryCandidates(gomock.Any(), 50).
		Return(identicalPool(embedding, 2, 4), nil)

	isFraud, err := uc.Evaluate(context.Background(), tx)
	assert.NoError(t, err)
	assert.False(t, isFraud)
}

func TestEvaluate_ColdStartDefaultsLegitimate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTransactionRepo(ctrl)
	uc := NewScorerUC(models.ScorerConfig{}, mockRepo)

	tx := candidateTx("tx-1", []float32{1, 0, 0}, false)

	mockRepo.EXPECT().
		QueryCandidates(gomock.Any(), 50).
		Return([]*models.Transaction{}, nil)

	isFraud, err := uc.Evaluate(context.Background(), tx)
	assert.NoError(t, err)
	assert.False(t, isFraud)
}

func TestEvaluate_PoolSmallerThanSearchLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTransactionRepo(ctrl)
	uc := NewScorerUC(models.ScorerConfig{SearchLimit: 5, NumCandidates: 50}, mockRepo)

	embedding := []float32{1, 0, 0}
	tx := candidateTx("tx-1", embedding, false)

	// Only 3 candidates exist; all of them vote and all are fraudulent.
	mockRepo.EXPECT().
		QueryCandidates(gomock.Any(), 50).
		Return(identicalPool(embedding, 3, 3), nil)

	isFraud, err := uc.Evaluate(context.Background(), tx)
	assert.NoError(t, err)
	assert.True(t, isFraud)
}

func TestEvaluate_OnlyNearestNeighborsVote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTransactionRepo(ctrl)
	uc := NewScorerUC(models.ScorerConfig{SearchLimit: 2, NumCandidates: 50}, mockRepo)

	tx := candidateTx("tx-1", []float32{1, 0, 0}, false)

	// The two fraudulent candidates are nearly identical to the subject;
	// the three legitimate ones point elsewhere and must not vote.
	candidates := []*models.Transaction{
		candidateTx("near-1", []float32{1, 0.01, 0}, true),
		candidateTx("near-2", []float32{1, 0, 0.01}, true),
		candidateTx("far-1", []float32{0, 1, 0}, false),
		candidateTx("far-2", []float32{0, 0, 1}, false),
		candidateTx("far-3", []float32{0, 1, 1}, false),
	}
	mockRepo.EXPECT().QueryCandidates(gomock.Any(), 50).Return(candidates, nil)

	isFraud, err := uc.Evaluate(context.Background(), tx)
	assert.NoError(t, err)
	assert.True(t, isFraud)
}

func TestEvaluate_ExcludesSelfAndUnembeddedCandidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTransactionRepo(ctrl)
	uc := NewScorerUC(models.ScorerConfig{SearchLimit: 5, NumCandidates: 50}, mockRepo)

	embedding := []float32{1, 0, 0}
	tx := candidateTx("tx-1", embedding, false)

	// The stored copy of the subject and the unembedded candidate are both
	// excluded, leaving a 2-of-3 fraudulent majority.
	candidates := []*models.Transaction{
		candidateTx("tx-1", embedding, true),
		candidateTx("no-embedding", nil, true),
		candidateTx("cand-1", embedding, true),
		candidateTx("cand-2", embedding, true),
		candidateTx("cand-3", embedding, false),
	}
	mockRepo.EXPECT().QueryCandidates(gomock.Any(), 50).Return(candidates, nil)

	isFraud, err := uc.Evaluate(context.Background(), tx)
	assert.NoError(t, err)
	assert.True(t, isFraud)
}

func TestEvaluate_NilTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTransactionRepo(ctrl)
	uc := NewScorerUC(models.ScorerConfig{}, mockRepo)

	isFraud, err := uc.Evaluate(context.Background(), nil)
	assert.ErrorIs(t, err, fraud.ErrInvalidInput)
	assert.False(t, isFraud)
}

func TestEvaluate_MissingEmbedding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTransactionRepo(ctrl)
	uc := NewScorerUC(models.ScorerConfig{}, mockRepo)

	tx := candidateTx("tx-1", nil, false)

	isFraud, err := uc.Evaluate(context.Background(), tx)
	assert.ErrorIs(t, err, fraud.ErrInvalidInput)
	assert.False(t, isFraud)
}

func TestEvaluate_StoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTransactionRepo(ctrl)
	uc := NewScorerUC(models.ScorerConfig{}, mockRepo)

	tx := candidateTx("tx-1", []float32{1, 0, 0}, false)

	mockRepo.EXPECT().
		QueryCandidates(gomock.Any(), 50).
		Return(nil, errors.New("connection refused"))

	isFraud, err := uc.Evaluate(context.Background(), tx)
	assert.ErrorIs(t, err, fraud.ErrStoreUnavailable)
	assert.False(t, isFraud)
}

func TestNewScorerUC_DefaultTuning(t *testing.T) {
	uc := NewScorerUC(models.ScorerConfig{}, nil)
	assert.Equal(t, 5, uc.cfg.SearchLimit)
	assert.Equal(t, 50, uc.cfg.NumCandidates)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{1}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
}

package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudsight/fraudsight/internal/pkg/models"
)

func embedTx(userID string, amount float64, currency models.Currency, merchant models.Merchant, category models.Category) *models.Transaction {
	return &models.Transaction{
		TransactionID: "tx-1",
		UserID:        userID,
		Amount:        amount,
		Currency:      currency,
		Merchant:      merchant,
		Category:      category,
	}
}

func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func TestEmbed_Deterministic(t *testing.T) {
	e := NewFeatureHashEmbedder(models.EmbeddingDimensions)
	tx := embedTx("alice", 42.50, models.CurrencyEUR, models.MerchantTesco, models.CategoryGrocery)

	first, err := e.Embed(tx)
	require.NoError(t, err)
	second, err := e.Embed(tx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEmbed_DimensionAndNorm(t *testing.T) {
	e := NewFeatureHashEmbedder(models.EmbeddingDimensions)
	tx := embedTx("alice", 42.50, models.CurrencyEUR, models.MerchantTesco, models.CategoryGrocery)

	vec, err := e.Embed(tx)
	require.NoError(t, err)
	assert.Len(t, vec, models.EmbeddingDimensions)
	assert.Equal(t, models.EmbeddingDimensions, e.Dimension())

	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, sumSq, 1e-5)
}

func TestEmbed_SharedFeaturesIncreaseSimilarity(t *testing.T) {
	e := NewFeatureHashEmbedder(models.EmbeddingDimensions)

	base := embedTx("alice", 42.50, models.CurrencyEUR, models.MerchantTesco, models.CategoryGrocery)
	similar := embedTx("alice", 44.00, models.CurrencyEUR, models.MerchantTesco, models.CategoryGrocery)
	dissimilar := embedTx("mallory", 9000.00, models.CurrencyGBP, models.MerchantApple, models.CategoryTech)

	baseVec, err := e.Embed(base)
	require.NoError(t, err)
	similarVec, err := e.Embed(similar)
	require.NoError(t, err)
	dissimilarVec, err := e.Embed(dissimilar)
	require.NoError(t, err)

	assert.Greater(t, cosine(baseVec, similarVec), cosine(baseVec, dissimilarVec))
}

func TestEmbed_NilTransaction(t *testing.T) {
	e := NewFeatureHashEmbedder(models.EmbeddingDimensions)

	vec, err := e.Embed(nil)
	assert.Error(t, err)
	assert.Nil(t, vec)
}

func TestNewFeatureHashEmbedder_DefaultDimension(t *testing.T) {
	e := NewFeatureHashEmbedder(0)
	assert.Equal(t, models.EmbeddingDimensions, e.Dimension())
}

func TestAmountBucket(t *testing.T) {
	assert.Equal(t, 0, amountBucket(-5))
	assert.Equal(t, 0, amountBucket(0))
	assert.Equal(t, 1, amountBucket(1))
	assert.Equal(t, amountBucket(40), amountBucket(50))
	assert.NotEqual(t, amountBucket(40), amountBucket(4000))
}

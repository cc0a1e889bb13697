package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudsight/fraudsight/internal/pkg/embedding"
	"github.com/fraudsight/fraudsight/internal/pkg/models"
	fraudmocks "github.com/fraudsight/fraudsight/services/fraud/mocks"
	"github.com/fraudsight/fraudsight/services/generator/mocks"
)

type generatorMocks struct {
	customers *mocks.MockCustomerRepo
	cache     *mocks.MockSnapshotCache
	txRepo    *fraudmocks.MockTransactionRepo
	txGW      *mocks.MockTransactionGW
}

func setupGeneratorTest(t *testing.T, cfg models.GeneratorConfig) (*GeneratorUC, *generatorMocks, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	m := &generatorMocks{
		customers: mocks.NewMockCustomerRepo(ctrl),
		cache:     mocks.NewMockSnapshotCache(ctrl),
		txRepo:    fraudmocks.NewMockTransactionRepo(ctrl),
		txGW:      mocks.NewMockTransactionGW(ctrl),
	}
	embedder := embedding.NewFeatureHashEmbedder(models.EmbeddingDimensions)
	uc := NewGeneratorUC(cfg, m.customers, m.cache, m.txRepo, m.txGW, embedder)
	return uc, m, ctrl
}

func testCustomer() *models.Customer {
	return &models.Customer{
		UserID:            "alice",
		TrustedMerchants:  []models.Merchant{models.MerchantTesco},
		TrustedCategories: []models.Category{models.CategoryGrocery, models.CategoryRetail},
		MeanSpending:      45.0,
		SpendingStdDev:    12.0,
		PreferredCurrency: models.CurrencyEUR,
	}
}

func TestSeed_ProvisionsEmptyStore(t *testing.T) {
	uc, m, ctrl := setupGeneratorTest(t, models.GeneratorConfig{SeedPerCustomer: 2})
	defer ctrl.Finish()

	roster := []*models.Customer{testCustomer()}

	m.customers.EXPECT().Count(gomock.Any()).Return(int64(0), nil)
	m.customers.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(len(defaultCustomers))
	m.txRepo.EXPECT().Count(gomock.Any()).Return(int64(0), nil)
	m.customers.EXPECT().List(gomock.Any()).Return(roster, nil)

	// Seeded transactions are written straight to the store with embeddings
	// attached, so the change feed path scores them.
	m.txRepo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *models.Transaction) error {
			assert.Equal(t, "alice", tx.UserID)
			assert.True(t, tx.HasEmbedding())
			return nil
		}).
		Times(2)

	assert.NoError(t, uc.Seed(context.Background()))
}

func TestSeed_SkipsWhenTransactionsExist(t *testing.T) {
	uc, m, ctrl := setupGeneratorTest(t, models.GeneratorConfig{})
	defer ctrl.Finish()

	m.customers.EXPECT().Count(gomock.Any()).Return(int64(5), nil)
	m.txRepo.EXPECT().Count(gomock.Any()).Return(int64(25), nil)

	assert.NoError(t, uc.Seed(context.Background()))
}

func TestSeed_CustomerCountFailure(t *testing.T) {
	uc, m, ctrl := setupGeneratorTest(t, models.GeneratorConfig{})
	defer ctrl.Finish()

	m.customers.EXPECT().Count(gomock.Any()).Return(int64(0), errors.New("connection refused"))

	assert.Error(t, uc.Seed(context.Background()))
}

func TestRefreshSnapshot_CacheHit(t *testing.T) {
	uc, m, ctrl := setupGeneratorTest(t, models.GeneratorConfig{})
	defer ctrl.Finish()

	roster := []*models.Customer{testCustomer()}
	m.cache.EXPECT().GetSnapshot(gomock.Any()).Return(roster, nil)

	require.NoError(t, uc.RefreshSnapshot(context.Background()))
	assert.Equal(t, roster, uc.Snapshot())
}

func TestRefreshSnapshot_CacheMissFallsBackToStore(t *testing.T) {
	uc, m, ctrl := setupGeneratorTest(t, models.GeneratorConfig{SnapshotTTL: 5 * time.Minute})
	defer ctrl.Finish()

	roster := []*models.Customer{testCustomer()}
	m.cache.EXPECT().GetSnapshot(gomock.Any()).Return(nil, nil)
	m.customers.EXPECT().List(gomock.Any()).Return(roster, nil)
	m.cache.EXPECT().PutSnapshot(gomock.Any(), roster, 5*time.Minute).Return(nil)

	require.NoError(t, uc.RefreshSnapshot(context.Background()))
	assert.Equal(t, roster, uc.Snapshot())
}

func TestRefreshSnapshot_CacheErrorIsNotFatal(t *testing.T) {
	uc, m, ctrl := setupGeneratorTest(t, models.GeneratorConfig{})
	defer ctrl.Finish()

	roster := []*models.Customer{testCustomer()}
	m.cache.EXPECT().GetSnapshot(gomock.Any()).Return(nil, errors.New("redis down"))
	m.customers.EXPECT().List(gomock.Any()).Return(roster, nil)
	m.cache.EXPECT().PutSnapshot(gomock.Any(), roster, gomock.Any()).Return(errors.New("redis down"))

	require.NoError(t, uc.RefreshSnapshot(context.Background()))
	assert.Equal(t, roster, uc.Snapshot())
}

func TestRefreshSnapshot_StoreFailure(t *testing.T) {
	uc, m, ctrl := setupGeneratorTest(t, models.GeneratorConfig{})
	defer ctrl.Finish()

	m.cache.EXPECT().GetSnapshot(gomock.Any()).Return(nil, nil)
	m.customers.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection refused"))

	assert.Error(t, uc.RefreshSnapshot(context.Background()))
}

func TestGenerateAndPublish(t *testing.T) {
	uc, m, ctrl := setupGeneratorTest(t, models.GeneratorConfig{})
	defer ctrl.Finish()

	roster := []*models.Customer{testCustomer()}
	m.cache.EXPECT().GetSnapshot(gomock.Any()).Return(roster, nil)
	require.NoError(t, uc.RefreshSnapshot(context.Background()))

	m.txGW.EXPECT().
		PublishTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *models.Transaction) error {
			assert.Equal(t, "alice", tx.UserID)
			assert.True(t, tx.HasEmbedding())
			assert.Len(t, tx.Embedding, models.EmbeddingDimensions)
			return nil
		})

	assert.NoError(t, uc.generateAndPublish(context.Background()))
}

func TestGenerateAndPublish_EmptySnapshot(t *testing.T) {
	uc, _, ctrl := setupGeneratorTest(t, models.GeneratorConfig{})
	defer ctrl.Finish()

	// No customers is a quiet no-op; the publisher is never called.
	assert.NoError(t, uc.generateAndPublish(context.Background()))
}

func TestGenerateTransaction_NormalProfile(t *testing.T) {
	uc, _, ctrl := setupGeneratorTest(t, models.GeneratorConfig{SuspiciousRate: 0.000001})
	defer ctrl.Finish()

	customer := testCustomer()
	for i := 0; i < 100; i++ {
		tx := uc.GenerateTransaction(customer)
		require.NotEmpty(t, tx.TransactionID)
		assert.Equal(t, "alice", tx.UserID)
		assert.GreaterOrEqual(t, tx.Amount, 0.0)
		assert.Equal(t, models.CurrencyEUR, tx.Currency)
		assert.Contains(t, customer.TrustedCategories, tx.Category)
	}
}

func TestGenerateTransaction_SuspiciousProfile(t *testing.T) {
	uc, _, ctrl := setupGeneratorTest(t, models.GeneratorConfig{SuspiciousRate: 1.0})
	defer ctrl.Finish()

	customer := testCustomer()
	for i := 0; i < 100; i++ {
		tx := uc.GenerateTransaction(customer)
		assert.NotEqual(t, customer.PreferredCurrency, tx.Currency)
		assert.NotContains(t, customer.TrustedCategories, tx.Category)
		assert.GreaterOrEqual(t, tx.Amount, customer.MeanSpending)
	}
}

func TestGenerateTransaction_UniqueIDs(t *testing.T) {
	uc, _, ctrl := setupGeneratorTest(t, models.GeneratorConfig{})
	defer ctrl.Finish()

	customer := testCustomer()
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		tx := uc.GenerateTransaction(customer)
		_, dup := seen[tx.TransactionID]
		assert.False(t, dup)
		seen[tx.TransactionID] = struct{}{}
	}
}

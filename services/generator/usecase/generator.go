package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/fraudsight/fraudsight/internal/pkg/logger"
	"github.com/fraudsight/fraudsight/internal/pkg/models"
)

// defaultCustomers is the roster seeded into an empty store so generation
// can start without manual provisioning.
var defaultCustomers = []*models.Customer{
	{
		UserID:            "alice",
		TrustedMerchants:  []models.Merchant{models.MerchantAmazon, models.MerchantTesco, models.MerchantNetflix},
		TrustedCategories: []models.Category{models.CategoryRetail, models.CategoryGrocery, models.CategoryEntertainment},
		MeanSpending:      45.0,
		SpendingStdDev:    12.0,
		PreferredCurrency: models.CurrencyEUR,
	},
	{
		UserID:            "bob",
		TrustedMerchants:  []models.Merchant{models.MerchantApple, models.MerchantStarbucks, models.MerchantShell},
		TrustedCategories: []models.Category{models.CategoryTech, models.CategoryBeverages, models.CategoryFuel},
		MeanSpending:      120.0,
		SpendingStdDev:    40.0,
		PreferredCurrency: models.CurrencyUSD,
	},
	{
		UserID:            "carol",
		TrustedMerchants:  []models.Merchant{models.MerchantZara, models.MerchantHM, models.MerchantSpotify},
		TrustedCategories: []models.Category{models.CategoryShopping, models.CategorySubscription},
		MeanSpending:      75.0,
		SpendingStdDev:    25.0,
		PreferredCurrency: models.CurrencyGBP,
	},
	{
		UserID:            "dave",
		TrustedMerchants:  []models.Merchant{models.MerchantLidl, models.MerchantAldi, models.MerchantMcDonalds},
		TrustedCategories: []models.Category{models.CategoryGrocery, models.CategoryFood},
		MeanSpending:      30.0,
		SpendingStdDev:    8.0,
		PreferredCurrency: models.CurrencyEUR,
	},
	{
		UserID:            "erin",
		TrustedMerchants:  []models.Merchant{models.MerchantSamsung, models.MerchantBestBuy, models.MerchantBP},
		TrustedCategories: []models.Category{models.CategoryElectronics, models.CategoryTransportation},
		MeanSpending:      200.0,
		SpendingStdDev:    60.0,
		PreferredCurrency: models.CurrencyUSD,
	},
}

// Seed provisions customers and historical transactions into an empty
// store. Seeded transactions are written directly to the store, so the
// change feed listener observes and scores them without any queue traffic.
func (uc *GeneratorUC) Seed(ctx context.Context) error {
	customerCount, err := uc.customers.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check customer roster: %w", err)
	}
	if customerCount == 0 {
		for _, customer := range defaultCustomers {
			if err := uc.customers.Insert(ctx, customer); err != nil {
				return err
			}
		}
		logger.Info("Seeded customer roster", logger.Int("customers", len(defaultCustomers)))
	}

	txCount, err := uc.txRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check transaction history: %w", err)
	}
	if txCount > 0 {
		logger.Info("Transactions already exist, skipping seeding")
		return nil
	}

	customers, err := uc.customers.List(ctx)
	if err != nil {
		return err
	}

	seeded := 0
	for _, customer := range customers {
		for i := 0; i < uc.cfg.SeedPerCustomer; i++ {
			tx := uc.GenerateTransaction(customer)
			embeddingVec, err := uc.embedder.Embed(tx)
			if err != nil {
				return fmt.Errorf("failed to embed seed transaction: %w", err)
			}
			tx.Embedding = embeddingVec

			if err := uc.txRepo.Upsert(ctx, tx); err != nil {
				return err
			}
			seeded++
		}
	}

	logger.Info("Seeded transaction history", logger.Int("transactions", seeded))
	return nil
}

// Run drives scheduled transaction generation until the context is
// cancelled. The customer snapshot is refreshed on its own timer and passed
// by value to each generation step; no global mutable roster exists.
func (uc *GeneratorUC) Run(ctx context.Context) error {
	if err := uc.RefreshSnapshot(ctx); err != nil {
		return err
	}

	generateTicker := time.NewTicker(uc.cfg.Interval)
	defer generateTicker.Stop()
	refreshTicker := time.NewTicker(uc.cfg.SnapshotRefresh)
	defer refreshTicker.Stop()

	logger.Info("Transaction generator started",
		logger.Duration("interval", uc.cfg.Interval))

	for {
		select {
		case <-ctx.Done():
			logger.Info("Transaction generator stopped")
			return nil
		case <-refreshTicker.C:
			if err := uc.RefreshSnapshot(ctx); err != nil {
				logger.Warn("Failed to refresh customer snapshot", logger.Err(err))
			}
		case <-generateTicker.C:
			if err := uc.generateAndPublish(ctx); err != nil {
				logger.Error("Failed to generate transaction", logger.Err(err))
			}
		}
	}
}

// RefreshSnapshot replaces the in-memory customer snapshot, reading through
// the shared cache and falling back to the source of truth on a miss.
func (uc *GeneratorUC) RefreshSnapshot(ctx context.Context) error {
	customers, err := uc.cache.GetSnapshot(ctx)
	if err != nil {
		logger.Warn("Customer snapshot cache unavailable", logger.Err(err))
	}

	if len(customers) == 0 {
		customers, err = uc.customers.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to load customers: %w", err)
		}
		if len(customers) > 0 {
			if err := uc.cache.PutSnapshot(ctx, customers, uc.cfg.SnapshotTTL); err != nil {
				logger.Warn("Failed to cache customer snapshot", logger.Err(err))
			}
		}
	}

	uc.mu.Lock()
	uc.snapshot = customers
	uc.mu.Unlock()

	logger.Debug("Customer snapshot refreshed", logger.Int("customers", len(customers)))
	return nil
}

// Snapshot returns the current customer snapshot
func (uc *GeneratorUC) Snapshot() []*models.Customer {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.snapshot
}

func (uc *GeneratorUC) generateAndPublish(ctx context.Context) error {
	snapshot := uc.Snapshot()
	if len(snapshot) == 0 {
		logger.Warn("No customers available for transaction generation")
		return nil
	}

	customer := snapshot[rand.Intn(len(snapshot))]
	tx := uc.GenerateTransaction(customer)

	embeddingVec, err := uc.embedder.Embed(tx)
	if err != nil {
		return fmt.Errorf("failed to embed transaction: %w", err)
	}
	tx.Embedding = embeddingVec

	if err := uc.txGW.PublishTransaction(ctx, tx); err != nil {
		return err
	}

	logger.Info("Generated transaction",
		logger.String("transaction_id", tx.TransactionID),
		logger.String("user_id", tx.UserID),
		logger.Float64("amount", tx.Amount),
		logger.String("currency", string(tx.Currency)),
		logger.String("merchant", string(tx.Merchant)),
		logger.String("category", string(tx.Category)))
	return nil
}

// GenerateTransaction produces one synthetic transaction for the customer.
// A configurable fraction is suspicious: inflated amount, a currency the
// customer never uses, and a category outside their trusted set.
func (uc *GeneratorUC) GenerateTransaction(customer *models.Customer) *models.Transaction {
	suspicious := rand.Float64() < uc.cfg.SuspiciousRate

	var amount float64
	var currency models.Currency
	var category models.Category
	if suspicious {
		amount = customer.MeanSpending + rand.Float64()*5*customer.SpendingStdDev
		currency = models.RandomSuspiciousCurrency(customer.PreferredCurrency)
		category = models.UnfrequentCategory(customer.TrustedCategories)
	} else {
		amount = customer.MeanSpending + rand.NormFloat64()*customer.SpendingStdDev
		currency = customer.PreferredCurrency
		category = models.FrequentCategory(customer.TrustedCategories)
	}
	if amount < 0 {
		amount = 0
	}

	merchant := models.RandomMerchant(category)
	return models.NewTransaction(customer.UserID, amount, currency, merchant, category)
}

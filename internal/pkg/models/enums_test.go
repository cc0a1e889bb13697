package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomSuspiciousCurrency(t *testing.T) {
	for i := 0; i < 50; i++ {
		picked := RandomSuspiciousCurrency(CurrencyEUR)
		assert.NotEqual(t, CurrencyEUR, picked)
		assert.Contains(t, AllCurrencies, picked)
	}
}

func TestFrequentCategory(t *testing.T) {
	trusted := []Category{CategoryGrocery, CategoryRetail}
	for i := 0; i < 50; i++ {
		assert.Contains(t, trusted, FrequentCategory(trusted))
	}

	// No trusted set falls back to the full catalogue.
	assert.Contains(t, AllCategories, FrequentCategory(nil))
}

func TestUnfrequentCategory(t *testing.T) {
	trusted := []Category{CategoryGrocery, CategoryRetail}
	for i := 0; i < 50; i++ {
		picked := UnfrequentCategory(trusted)
		assert.NotContains(t, trusted, picked)
		assert.Contains(t, AllCategories, picked)
	}

	// A customer trusting every category still gets a valid pick.
	assert.Contains(t, AllCategories, UnfrequentCategory(AllCategories))
}

func TestRandomMerchant(t *testing.T) {
	for _, category := range AllCategories {
		merchant := RandomMerchant(category)
		assert.Contains(t, categoryMerchants[category], merchant,
			"merchant %s outside category %s", merchant, category)
	}

	// Unknown categories fall back to the full merchant set.
	assert.Contains(t, AllMerchants, RandomMerchant(Category("UNKNOWN")))
}

func TestNewTransaction(t *testing.T) {
	tx := NewTransaction("alice", 42.50, CurrencyEUR, MerchantTesco, CategoryGrocery)
	assert.NotEmpty(t, tx.TransactionID)
	assert.Equal(t, "alice", tx.UserID)
	assert.False(t, tx.Timestamp.IsZero())
	assert.False(t, tx.HasEmbedding())
	assert.False(t, tx.IsFraud)
}

func TestNewScoredEvent(t *testing.T) {
	tx := NewTransaction("alice", 42.50, CurrencyEUR, MerchantTesco, CategoryGrocery)
	tx.Embedding = []float32{1, 0, 0}
	tx.IsFraud = true

	event := NewScoredEvent(tx)
	assert.Equal(t, tx.TransactionID, event.TransactionID)
	assert.Equal(t, tx.Amount, event.Amount)
	assert.True(t, event.IsFraud)
}

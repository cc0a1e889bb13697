package usecase

import (
	"sync"

	"github.com/fraudsight/fraudsight/internal/pkg/embedding"
	"github.com/fraudsight/fraudsight/internal/pkg/models"
	"github.com/fraudsight/fraudsight/services/fraud"
	"github.com/fraudsight/fraudsight/services/generator"
)

// GeneratorUC produces synthetic transaction traffic parameterized by
// customer spending profiles.
type GeneratorUC struct {
	cfg       models.GeneratorConfig
	customers generator.CustomerRepo
	cache     generator.SnapshotCache
	txRepo    fraud.TransactionRepo
	txGW      generator.TransactionGW
	embedder  embedding.Embedder

	mu       sync.RWMutex
	snapshot []*models.Customer
}

// NewGeneratorUC creates a new generator use case
func NewGeneratorUC(
	cfg models.GeneratorConfig,
	customers generator.CustomerRepo,
	cache generator.SnapshotCache,
	txRepo fraud.TransactionRepo,
	txGW generator.TransactionGW,
	embedder embedding.Embedder,
) *GeneratorUC {
	if cfg.SuspiciousRate <= 0 {
		cfg.SuspiciousRate = 0.1
	}
	if cfg.SeedPerCustomer <= 0 {
		cfg.SeedPerCustomer = 5
	}
	return &GeneratorUC{
		cfg:       cfg,
		customers: customers,
		cache:     cache,
		txRepo:    txRepo,
		txGW:      txGW,
		embedder:  embedder,
	}
}

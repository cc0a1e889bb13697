package usecase

import (
	"github.com/fraudsight/fraudsight/internal/pkg/models"
	"github.com/fraudsight/fraudsight/services/fraud"
)

// ScorerUC implements the fraud.Scorer interface
type ScorerUC struct {
	cfg  models.ScorerConfig
	repo fraud.TransactionRepo
}

// NewScorerUC creates a new fraud scorer use case. Zero or negative tuning
// values fall back to the defaults of the similarity search contract.
func NewScorerUC(cfg models.ScorerConfig, repo fraud.TransactionRepo) *ScorerUC {
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 5
	}
	if cfg.NumCandidates <= 0 {
		cfg.NumCandidates = 50
	}
	return &ScorerUC{
		cfg:  cfg,
		repo: repo,
	}
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/fraudsight/fraudsight/internal/pkg/constants"
	"github.com/fraudsight/fraudsight/internal/pkg/database"
	"github.com/fraudsight/fraudsight/internal/pkg/models"
)

// CustomerRepo implements customer data access on PostgreSQL with a Redis
// snapshot cache shared across generator instances.
type CustomerRepo struct {
	db          *sqlx.DB
	redisClient *database.RedisClient
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *sqlx.DB, redisClient *database.RedisClient) *CustomerRepo {
	return &CustomerRepo{db: db, redisClient: redisClient}
}

type customerDTO struct {
	UserID            string         `db:"user_id"`
	TrustedMerchants  pq.StringArray `db:"trusted_merchants"`
	TrustedCategories pq.StringArray `db:"trusted_categories"`
	MeanSpending      float64        `db:"mean_spending"`
	SpendingStdDev    float64        `db:"spending_std_dev"`
	PreferredCurrency string         `db:"preferred_currency"`
}

func (dto *customerDTO) toModel() *models.Customer {
	merchants := make([]models.Merchant, 0, len(dto.TrustedMerchants))
	for _, m := range dto.TrustedMerchants {
		merchants = append(merchants, models.Merchant(m))
	}
	categories := make([]models.Category, 0, len(dto.TrustedCategories))
	for _, c := range dto.TrustedCategories {
		categories = append(categories, models.Category(c))
	}
	return &models.Customer{
		UserID:            dto.UserID,
		TrustedMerchants:  merchants,
		TrustedCategories: categories,
		MeanSpending:      dto.MeanSpending,
		SpendingStdDev:    dto.SpendingStdDev,
		PreferredCurrency: models.Currency(dto.PreferredCurrency),
	}
}

// List returns every customer profile
func (r *CustomerRepo) List(ctx context.Context) ([]*models.Customer, error) {
	query := `
		SELECT user_id, trusted_merchants, trusted_categories,
		       mean_spending, spending_std_dev, preferred_currency
		FROM customers
	`
	var dtos []customerDTO
	if err := r.db.SelectContext(ctx, &dtos, query); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	customers := make([]*models.Customer, 0, len(dtos))
	for i := range dtos {
		customers = append(customers, dtos[i].toModel())
	}
	return customers, nil
}

// Count returns the number of stored customers
func (r *CustomerRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM customers`); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// Insert stores a customer profile
func (r *CustomerRepo) Insert(ctx context.Context, customer *models.Customer) error {
	merchants := make(pq.StringArray, 0, len(customer.TrustedMerchants))
	for _, m := range customer.TrustedMerchants {
		merchants = append(merchants, string(m))
	}
	categories := make(pq.StringArray, 0, len(customer.TrustedCategories))
	for _, c := range customer.TrustedCategories {
		categories = append(categories, string(c))
	}

	query := `
		INSERT INTO customers (
			user_id, trusted_merchants, trusted_categories,
			mean_spending, spending_std_dev, preferred_currency
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		customer.UserID, merchants, categories,
		customer.MeanSpending, customer.SpendingStdDev,
		string(customer.PreferredCurrency),
	)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

// GetSnapshot loads the cached customer roster; a cache miss returns nil
func (r *CustomerRepo) GetSnapshot(ctx context.Context) ([]*models.Customer, error) {
	raw, err := r.redisClient.Get(ctx, constants.KeyCustomerSnapshot)
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read customer snapshot: %w", err)
	}

	var customers []*models.Customer
	if err := json.Unmarshal([]byte(raw), &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customer snapshot: %w", err)
	}
	return customers, nil
}

// PutSnapshot caches the customer roster with a TTL
func (r *CustomerRepo) PutSnapshot(ctx context.Context, customers []*models.Customer, ttl time.Duration) error {
	raw, err := json.Marshal(customers)
	if err != nil {
		return fmt.Errorf("failed to encode customer snapshot: %w", err)
	}
	if err := r.redisClient.Set(ctx, constants.KeyCustomerSnapshot, raw, ttl); err != nil {
		return fmt.Errorf("failed to cache customer snapshot: %w", err)
	}
	return nil
}

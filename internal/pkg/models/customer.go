package models

// Customer holds the aggregate spending profile used to parameterize
// synthetic transaction generation. The fraud pipeline never mutates it.
type Customer struct {
	UserID            string     `json:"user_id" db:"user_id"`
	TrustedMerchants  []Merchant `json:"trusted_merchants" db:"-"`
	TrustedCategories []Category `json:"trusted_categories" db:"-"`
	MeanSpending      float64    `json:"mean_spending" db:"mean_spending"`
	SpendingStdDev    float64    `json:"spending_std_dev" db:"spending_std_dev"`
	PreferredCurrency Currency   `json:"preferred_currency" db:"preferred_currency"`
}

package constants

// Redis key formats
const (
	// Generator service
	KeyCustomerSnapshot = "customers:snapshot" // JSON-encoded customer roster
)

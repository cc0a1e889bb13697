package constants

// JetStream stream and consumer names
const (
	StreamTransactions = "TRANSACTIONS"
	ConsumerFraudGroup = "fraud-detection-group"
)

// NATS subjects
const (
	// Inbound transaction events
	SubjectTransactionEvents = "transaction.events"

	// Outbound scored verdicts for downstream consumers
	SubjectTransactionScored = "transaction.scored"
)

package models

// FeedOp is the operation type carried by a change feed event
type FeedOp string

const (
	FeedOpInsert FeedOp = "INSERT"
	FeedOpUpdate FeedOp = "UPDATE"
	FeedOpDelete FeedOp = "DELETE"
)

// FeedEvent is a single mutation observed on the transaction collection.
// Document carries the full record for insert events; it is nil when the
// record could not be resolved.
type FeedEvent struct {
	Op            FeedOp       `json:"op"`
	TransactionID string       `json:"transaction_id"`
	Document      *Transaction `json:"-"`
}

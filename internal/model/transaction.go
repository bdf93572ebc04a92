package model

import "time"

// Transaction is a single signed entry in the ledger. Positive amounts add to
// a category's budget, negative amounts spend from it. Ids are assigned by
// the ledger and never reused after deletion.
type Transaction struct {
	Timestamp   time.Time
	Description string
	Category    string
	ID          int64
	Amount      float64
}

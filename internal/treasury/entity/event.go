package entity

import "time"

// LedgerEvent is emitted after a ledger mutation has been committed.
type LedgerEvent struct {
	EventID     string
	Kind        LedgerEventKind
	Transaction Transaction
	OccurredAt  time.Time
}

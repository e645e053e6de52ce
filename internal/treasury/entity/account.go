package entity

import "github.com/shopspring/decimal"

// Account is a treasury account holding a single currency.
//
// ID, Name and Currency never change after creation; Balance is only
// mutated by the ledger engine and is never negative.
type Account struct {
	ID       string
	Name     string
	Currency Currency
	Balance  decimal.Decimal
}

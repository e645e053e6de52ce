package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an entry of the ledger log.
//
// Accounts are referenced by id; FromAccount and ToAccount hold the account
// names as they were when the transaction was recorded and are display only.
// ConvertedAmount and ConvertedCurrency are set only for conversions.
type Transaction struct {
	ID                string
	FromAccountID     string
	ToAccountID       string
	FromAccount       string
	ToAccount         string
	Amount            decimal.Decimal
	Currency          Currency
	ConvertedAmount   decimal.NullDecimal
	ConvertedCurrency Currency
	Note              string
	Timestamp         time.Time
	Type              TxType
	IsReversed        bool
	ReversalOf        string
}

// Credited returns the amount and currency the destination account received.
func (t Transaction) Credited() (decimal.Decimal, Currency) {
	if t.ConvertedAmount.Valid {
		return t.ConvertedAmount.Decimal, t.ConvertedCurrency
	}
	return t.Amount, t.Currency
}

func (t Transaction) State() TxState {
	switch {
	case t.ReversalOf != "":
		return TxStateReversal
	case t.IsReversed:
		return TxStateReversed
	default:
		return TxStateActive
	}
}

// Involves reports whether the transaction moved funds in currency c on either leg.
func (t Transaction) Involves(c Currency) bool {
	return t.Currency == c || (t.ConvertedAmount.Valid && t.ConvertedCurrency == c)
}

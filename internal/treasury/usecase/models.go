package usecase

import (
	"slices"

	"github.com/WuorBhang/fund-transfer/internal/treasury/entity"
	"github.com/WuorBhang/fund-transfer/internal/treasury/fx"
	"github.com/shopspring/decimal"
)

type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Note          string
}

type TransferResult struct {
	Transaction entity.Transaction
}

type ReversalResult struct {
	Reversal entity.Transaction
	Original entity.Transaction
}

type TransactionsResult struct {
	Transactions []entity.Transaction
	Page         int
	PageSize     int
	Total        int
}

type CurrencyTotal struct {
	Currency entity.Currency
	Balance  decimal.Decimal
	Accounts int
}

type SummaryResult struct {
	Totals       []CurrencyTotal
	Transactions int
	Conversions  int
	Reversed     int
}

type QuoteResult struct {
	fx.Quote
}

// TransactionFilter selects ledger entries. A zero filter matches everything.
type TransactionFilter struct {
	// Currency matches either leg of a transaction.
	Currency entity.Currency
	Types    []entity.TxType
	States   []entity.TxState
}

func (f TransactionFilter) Matches(tx entity.Transaction) bool {
	if f.Currency != "" && !tx.Involves(f.Currency) {
		return false
	}

	if len(f.Types) > 0 && !slices.Contains(f.Types, tx.Type) {
		return false
	}

	if len(f.States) > 0 && !slices.Contains(f.States, tx.State()) {
		return false
	}

	return true
}

// Posting is a signed balance change on one account.
type Posting struct {
	AccountID string
	Delta     decimal.Decimal
}

// Entry is the unit a Store commits atomically: balance postings, the
// transaction to append and, for reversals, the transaction to mark reversed.
type Entry struct {
	Postings     []Posting
	Append       entity.Transaction
	MarkReversed string
}

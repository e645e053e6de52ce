package inbound

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/WuorBhang/fund-transfer/internal/treasury/entity"
	"github.com/shopspring/decimal"
)

type Account struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Currency entity.Currency `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

type Transaction struct {
	ID                string              `json:"id"`
	FromAccountID     string              `json:"from_account_id"`
	ToAccountID       string              `json:"to_account_id"`
	FromAccount       string              `json:"from_account"`
	ToAccount         string              `json:"to_account"`
	Amount            decimal.Decimal     `json:"amount"`
	Currency          entity.Currency     `json:"currency"`
	ConvertedAmount   decimal.NullDecimal `json:"converted_amount"`
	ConvertedCurrency entity.Currency     `json:"converted_currency,omitempty"`
	Note              string              `json:"note"`
	Timestamp         time.Time           `json:"timestamp"`
	Type              entity.TxType       `json:"type"`
	State             entity.TxState      `json:"state"`
	IsReversed        bool                `json:"is_reversed"`
	ReversalOf        string              `json:"reversal_of,omitempty"`
}

// TransferRequest keeps amount raw so that a malformed number reaches the
// engine as an invalid amount instead of failing body decoding.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        json.RawMessage `json:"amount"`
	Note          string          `json:"note"`
}

type AccountsResponse struct {
	Accounts []Account `json:"accounts"`
}

type CurrencyTotal struct {
	Currency entity.Currency `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
	Accounts int             `json:"accounts"`
}

type SummaryResponse struct {
	Totals       []CurrencyTotal `json:"totals"`
	Transactions int             `json:"transactions"`
	Conversions  int             `json:"conversions"`
	Reversed     int             `json:"reversed"`
}

type TransferResponse struct {
	Transaction Transaction `json:"transaction"`
}

func (TransferResponse) StatusCode() int {
	return http.StatusCreated
}

func (r TransferResponse) Message() string {
	if r.Transaction.Type == entity.TxTypeConversion {
		return "conversion completed"
	}
	return "transfer completed"
}

type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	page         int
	pageSize     int
	total        int
}

func (r TransactionsResponse) Meta() map[string]any {
	return map[string]any{
		"page":      r.page,
		"page_size": r.pageSize,
		"total":     r.total,
	}
}

type ReversalResponse struct {
	Reversal Transaction `json:"reversal"`
	Original Transaction `json:"original"`
}

func (ReversalResponse) StatusCode() int {
	return http.StatusCreated
}

func (ReversalResponse) Message() string {
	return "transaction reversed"
}

type QuoteResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      entity.Currency `json:"from"`
	To        entity.Currency `json:"to"`
	Rate      string          `json:"rate"`
	Converted decimal.Decimal `json:"converted"`
}

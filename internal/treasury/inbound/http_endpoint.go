package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/WuorBhang/fund-transfer/internal/pkg/pkgerror"
	"github.com/WuorBhang/fund-transfer/internal/pkg/pkgrouter"
	"github.com/WuorBhang/fund-transfer/internal/treasury/entity"
	"github.com/WuorBhang/fund-transfer/internal/treasury/usecase"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) ListAccounts(ctx context.Context, r *http.Request) (any, error) {
	accounts, err := h.uc.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Account, 0, len(accounts))
	for _, acc := range accounts {
		items = append(items, toHTTPAccount(acc))
	}

	return AccountsResponse{Accounts: items}, nil
}

func (h *HTTPEndpoint) GetAccount(ctx context.Context, r *http.Request) (any, error) {
	acc, err := h.uc.GetAccount(ctx, pkgrouter.GetParam(ctx, "id"))
	if err != nil {
		return nil, err
	}

	return toHTTPAccount(acc), nil
}

func (h *HTTPEndpoint) Summary(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Summary(ctx)
	if err != nil {
		return nil, err
	}

	totals := make([]CurrencyTotal, 0, len(result.Totals))
	for _, t := range result.Totals {
		totals = append(totals, CurrencyTotal{Currency: t.Currency, Balance: t.Balance, Accounts: t.Accounts})
	}

	return SummaryResponse{
		Totals:       totals,
		Transactions: result.Transactions,
		Conversions:  result.Conversions,
		Reversed:     result.Reversed,
	}, nil
}

func (h *HTTPEndpoint) Transfer(ctx context.Context, r *http.Request) (any, error) {
	var req TransferRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return nil, pkgerror.NewInvalidFormat()
	}

	result, err := h.uc.Transfer(ctx, usecase.TransferInput{
		FromAccountID: strings.TrimSpace(req.FromAccountID),
		ToAccountID:   strings.TrimSpace(req.ToAccountID),
		Amount:        parseAmount(req.Amount),
		Note:          strings.TrimSpace(req.Note),
	})
	if err != nil {
		return nil, err
	}

	return TransferResponse{Transaction: toHTTPTransaction(result.Transaction)}, nil
}

func (h *HTTPEndpoint) ListTransactions(ctx context.Context, r *http.Request) (any, error) {
	query := r.URL.Query()

	page, pageSize, err := parsePagination(query.Get("page"), query.Get("page_size"))
	if err != nil {
		return nil, err
	}

	filter, err := parseFilter(query.Get("currency"), query.Get("type"), query.Get("state"))
	if err != nil {
		return nil, err
	}

	result, err := h.uc.ListTransactions(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(result.Transactions))
	for _, tx := range result.Transactions {
		transactions = append(transactions, toHTTPTransaction(tx))
	}

	return TransactionsResponse{
		Transactions: transactions,
		page:         result.Page,
		pageSize:     result.PageSize,
		total:        result.Total,
	}, nil
}

func (h *HTTPEndpoint) GetTransaction(ctx context.Context, r *http.Request) (any, error) {
	tx, err := h.uc.GetTransaction(ctx, pkgrouter.GetParam(ctx, "id"))
	if err != nil {
		return nil, err
	}

	return toHTTPTransaction(tx), nil
}

func (h *HTTPEndpoint) ReverseTransaction(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.ReverseTransaction(ctx, pkgrouter.GetParam(ctx, "id"))
	if err != nil {
		return nil, err
	}

	return ReversalResponse{
		Reversal: toHTTPTransaction(result.Reversal),
		Original: toHTTPTransaction(result.Original),
	}, nil
}

func (h *HTTPEndpoint) Quote(ctx context.Context, r *http.Request) (any, error) {
	query := r.URL.Query()

	from, err := parseCurrency("from", query.Get("from"))
	if err != nil {
		return nil, err
	}
	to, err := parseCurrency("to", query.Get("to"))
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(query.Get("amount")))
	if err != nil {
		return nil, usecase.ErrInvalidAmount
	}

	result, err := h.uc.Quote(ctx, amount, from, to)
	if err != nil {
		return nil, err
	}

	return QuoteResponse{
		Amount:    result.Amount,
		From:      result.From,
		To:        result.To,
		Rate:      result.Rate.String(),
		Converted: result.Converted,
	}, nil
}

// parseAmount accepts a JSON number or a numeric string. Anything else yields
// zero, which the engine rejects as an invalid amount once the accounts have
// been checked.
func parseAmount(raw json.RawMessage) decimal.Decimal {
	value := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(value); err == nil {
		value = strings.TrimSpace(unquoted)
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

func parseCurrency(field, value string) (entity.Currency, error) {
	if strings.TrimSpace(value) == "" {
		return "", pkgerror.NewInvalidInput(errors.New(field + " is required"))
	}

	c, err := entity.ParseCurrency(value)
	if err != nil {
		return "", pkgerror.NewInvalidInput(err)
	}
	return c, nil
}

func parsePagination(pageRaw, sizeRaw string) (int, int, error) {
	page := 1
	pageSize := 20

	if pageRaw != "" {
		value, err := strconv.Atoi(pageRaw)
		if err != nil || value < 1 {
			return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page"))
		}
		page = value
	}

	if sizeRaw != "" {
		value, err := strconv.Atoi(sizeRaw)
		if err != nil || value < 1 {
			return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page_size"))
		}
		pageSize = min(value, 100)
	}

	return page, pageSize, nil
}

func parseFilter(currencyRaw, typeRaw, stateRaw string) (usecase.TransactionFilter, error) {
	filter := usecase.TransactionFilter{}

	if currencyRaw = strings.TrimSpace(currencyRaw); currencyRaw != "" && !strings.EqualFold(currencyRaw, "all") {
		c, err := parseCurrency("currency", currencyRaw)
		if err != nil {
			return filter, err
		}
		filter.Currency = c
	}

	for _, value := range splitList(typeRaw) {
		switch typ := entity.TxType(strings.ToLower(value)); typ {
		case entity.TxTypeTransfer, entity.TxTypeConversion:
			filter.Types = append(filter.Types, typ)
		default:
			return filter, pkgerror.NewInvalidInput(errors.New("invalid type filter"))
		}
	}

	for _, value := range splitList(stateRaw) {
		switch state := entity.TxState(strings.ToLower(value)); state {
		case entity.TxStateActive, entity.TxStateReversed, entity.TxStateReversal:
			filter.States = append(filter.States, state)
		default:
			return filter, pkgerror.NewInvalidInput(errors.New("invalid state filter"))
		}
	}

	return filter, nil
}

func splitList(raw string) []string {
	var out []string
	for _, value := range strings.Split(raw, ",") {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}

func toHTTPAccount(acc entity.Account) Account {
	return Account{
		ID:       acc.ID,
		Name:     acc.Name,
		Currency: acc.Currency,
		Balance:  acc.Balance,
	}
}

func toHTTPTransaction(tx entity.Transaction) Transaction {
	return Transaction{
		ID:                tx.ID,
		FromAccountID:     tx.FromAccountID,
		ToAccountID:       tx.ToAccountID,
		FromAccount:       tx.FromAccount,
		ToAccount:         tx.ToAccount,
		Amount:            tx.Amount,
		Currency:          tx.Currency,
		ConvertedAmount:   tx.ConvertedAmount,
		ConvertedCurrency: tx.ConvertedCurrency,
		Note:              tx.Note,
		Timestamp:         tx.Timestamp,
		Type:              tx.Type,
		State:             tx.State(),
		IsReversed:        tx.IsReversed,
		ReversalOf:        tx.ReversalOf,
	}
}

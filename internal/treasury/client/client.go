// Package client is a typed client for the treasury HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/WuorBhang/fund-transfer/internal/treasury/entity"
	"github.com/WuorBhang/fund-transfer/internal/treasury/inbound"
	"github.com/shopspring/decimal"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Code    string
	Reason  string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%d %s", e.Status, e.Message)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

type envelope[T any] struct {
	Message string         `json:"message"`
	Data    T              `json:"data"`
	Meta    map[string]any `json:"meta"`
}

type errorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Error   map[string]string `json:"error"`
}

type Client struct {
	base *url.URL
	http *http.Client
}

// New returns a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must include scheme and host", baseURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{base: base, http: httpClient}, nil
}

func (c *Client) Accounts(ctx context.Context) ([]inbound.Account, error) {
	var env envelope[inbound.AccountsResponse]
	if err := c.do(ctx, http.MethodGet, "/accounts", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Data.Accounts, nil
}

func (c *Client) Account(ctx context.Context, id string) (inbound.Account, error) {
	var env envelope[inbound.Account]
	if err := c.do(ctx, http.MethodGet, "/accounts/"+url.PathEscape(id), nil, nil, &env); err != nil {
		return inbound.Account{}, err
	}
	return env.Data, nil
}

func (c *Client) Summary(ctx context.Context) (inbound.SummaryResponse, error) {
	var env envelope[inbound.SummaryResponse]
	if err := c.do(ctx, http.MethodGet, "/summary", nil, nil, &env); err != nil {
		return inbound.SummaryResponse{}, err
	}
	return env.Data, nil
}

type TransferRequest struct {
	FromAccountID string
	ToAccountID   string
	Amount        string
	Note          string
}

func (c *Client) Transfer(ctx context.Context, req TransferRequest) (inbound.Transaction, error) {
	body := map[string]string{
		"from_account_id": req.FromAccountID,
		"to_account_id":   req.ToAccountID,
		"amount":          req.Amount,
		"note":            req.Note,
	}

	var env envelope[inbound.TransferResponse]
	if err := c.do(ctx, http.MethodPost, "/transfers", nil, body, &env); err != nil {
		return inbound.Transaction{}, err
	}
	return env.Data.Transaction, nil
}

func (c *Client) Reverse(ctx context.Context, transactionID string) (inbound.ReversalResponse, error) {
	var env envelope[inbound.ReversalResponse]
	path := "/transactions/" + url.PathEscape(transactionID) + "/reversal"
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &env); err != nil {
		return inbound.ReversalResponse{}, err
	}
	return env.Data, nil
}

func (c *Client) Transaction(ctx context.Context, id string) (inbound.Transaction, error) {
	var env envelope[inbound.Transaction]
	if err := c.do(ctx, http.MethodGet, "/transactions/"+url.PathEscape(id), nil, nil, &env); err != nil {
		return inbound.Transaction{}, err
	}
	return env.Data, nil
}

type TransactionsQuery struct {
	// Currency is empty for all currencies.
	Currency entity.Currency
	Page     int
	PageSize int
}

type TransactionsPage struct {
	Transactions []inbound.Transaction
	Page         int
	PageSize     int
	Total        int
}

func (c *Client) Transactions(ctx context.Context, q TransactionsQuery) (TransactionsPage, error) {
	query := url.Values{}
	if q.Currency != "" {
		query.Set("currency", q.Currency.String())
	}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(q.PageSize))
	}

	var env envelope[inbound.TransactionsResponse]
	if err := c.do(ctx, http.MethodGet, "/transactions", query, nil, &env); err != nil {
		return TransactionsPage{}, err
	}

	return TransactionsPage{
		Transactions: env.Data.Transactions,
		Page:         metaInt(env.Meta, "page"),
		PageSize:     metaInt(env.Meta, "page_size"),
		Total:        metaInt(env.Meta, "total"),
	}, nil
}

func (c *Client) Quote(ctx context.Context, amount decimal.Decimal, from, to entity.Currency) (inbound.QuoteResponse, error) {
	query := url.Values{}
	query.Set("amount", amount.String())
	query.Set("from", from.String())
	query.Set("to", to.String())

	var env envelope[inbound.QuoteResponse]
	if err := c.do(ctx, http.MethodGet, "/fx/quote", query, nil, &env); err != nil {
		return inbound.QuoteResponse{}, err
	}
	return env.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body errorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		}
		apiErr.Code = body.Code
		apiErr.Reason = body.Error["reason"]
	}

	return apiErr
}

func metaInt(meta map[string]any, key string) int {
	if v, ok := meta[key].(float64); ok {
		return int(v)
	}
	return 0
}

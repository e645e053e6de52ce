package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/WuorBhang/fund-transfer/internal/pkg/pkgrouter"
	"github.com/WuorBhang/fund-transfer/internal/pkg/pkguid"
	"github.com/WuorBhang/fund-transfer/internal/treasury/entity"
	"github.com/WuorBhang/fund-transfer/internal/treasury/inbound"
	"github.com/WuorBhang/fund-transfer/internal/treasury/store"
	"github.com/WuorBhang/fund-transfer/internal/treasury/usecase"
	"github.com/shopspring/decimal"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	node, err := pkguid.NewSnowflakeNode(2)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	uc := usecase.New(usecase.Dependency{
		Store:      store.NewInMemoryStore(store.SeedAccounts()),
		TransferID: pkguid.NewPrefixed("TXN", node),
		ReversalID: pkguid.NewPrefixed("REV", node),
	})

	router := pkgrouter.NewRouter(pkguid.NewUUID())
	inbound.RegisterHTTPEndpoint(router, uc)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", srv.Client())
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}
	return c
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	accounts, err := c.Accounts(ctx)
	if err != nil {
		t.Fatalf("Accounts() err = %v", err)
	}
	if len(accounts) != 10 || accounts[3].Currency != entity.CurrencyUSD {
		t.Fatalf("unexpected accounts: %+v", accounts)
	}

	tx, err := c.Transfer(ctx, TransferRequest{FromAccountID: "1", ToAccountID: "7", Amount: "1000", Note: "ngn float"})
	if err != nil {
		t.Fatalf("Transfer() err = %v", err)
	}
	if !tx.ConvertedAmount.Decimal.Equal(decimal.NewFromInt(10670)) || tx.ConvertedCurrency != entity.CurrencyNGN {
		t.Fatalf("unexpected conversion: %+v", tx)
	}

	rev, err := c.Reverse(ctx, tx.ID)
	if err != nil {
		t.Fatalf("Reverse() err = %v", err)
	}
	if rev.Reversal.ReversalOf != tx.ID || !rev.Original.IsReversed {
		t.Fatalf("unexpected reversal: %+v", rev)
	}

	page, err := c.Transactions(ctx, TransactionsQuery{Currency: entity.CurrencyNGN, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("Transactions() err = %v", err)
	}
	if page.Total != 2 || len(page.Transactions) != 2 || page.PageSize != 10 {
		t.Fatalf("unexpected page: %+v", page)
	}

	got, err := c.Transaction(ctx, tx.ID)
	if err != nil || got.State != entity.TxStateReversed {
		t.Fatalf("Transaction() = %+v, %v", got, err)
	}

	acc, err := c.Account(ctx, "1")
	if err != nil || !acc.Balance.Equal(decimal.NewFromInt(250000)) {
		t.Fatalf("Account() = %+v, %v", acc, err)
	}

	summary, err := c.Summary(ctx)
	if err != nil || summary.Reversed != 1 {
		t.Fatalf("Summary() = %+v, %v", summary, err)
	}

	quote, err := c.Quote(ctx, decimal.NewFromInt(2), entity.CurrencyUSD, entity.CurrencyNGN)
	if err != nil || !quote.Converted.Equal(decimal.NewFromInt(3200)) {
		t.Fatalf("Quote() = %+v, %v", quote, err)
	}
}

func TestClientAPIError(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.Transfer(ctx, TransferRequest{FromAccountID: "4", ToAccountID: "5", Amount: "99999999"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T (%v)", err, err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Code != "ERROR_CODE_INSUFFICIENT_FUNDS" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}

	_, err = c.Reverse(ctx, "TXN404")
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound || apiErr.Message != "transaction not found" {
		t.Fatalf("unexpected reverse error: %v", err)
	}
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := New("localhost:8080", nil); err == nil {
		t.Fatal("expected error for url without scheme")
	}
}

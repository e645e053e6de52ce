package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/WuorBhang/fund-transfer/internal/pkg/pkgerror"
	"github.com/WuorBhang/fund-transfer/internal/treasury/entity"
	"github.com/WuorBhang/fund-transfer/internal/treasury/usecase"
	"github.com/shopspring/decimal"
)

func newTestStore() *InMemoryStore {
	return NewInMemoryStore([]entity.Account{
		{ID: "1", Name: "Mpesa_KES_1", Currency: entity.CurrencyKES, Balance: decimal.NewFromInt(100)},
		{ID: "2", Name: "Mpesa_KES_2", Currency: entity.CurrencyKES, Balance: decimal.NewFromInt(50)},
		{ID: "3", Name: "Bank_USD_1", Currency: entity.CurrencyUSD, Balance: decimal.NewFromInt(10)},
	})
}

func transferEntry(id, from, to string, amount int64) usecase.Entry {
	return usecase.Entry{
		Postings: []usecase.Posting{
			{AccountID: from, Delta: decimal.NewFromInt(-amount)},
			{AccountID: to, Delta: decimal.NewFromInt(amount)},
		},
		Append: entity.Transaction{
			ID:            id,
			FromAccountID: from,
			ToAccountID:   to,
			Amount:        decimal.NewFromInt(amount),
			Currency:      entity.CurrencyKES,
			Type:          entity.TxTypeTransfer,
		},
	}
}

func balanceOf(t *testing.T, s *InMemoryStore, id string) decimal.Decimal {
	t.Helper()

	acc, err := s.GetAccount(context.Background(), id)
	if err != nil {
		t.Fatalf("GetAccount(%s) err = %v", id, err)
	}
	return acc.Balance
}

func TestInMemoryStore_SeedAccounts(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore(SeedAccounts())
	items, err := store.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts() err = %v", err)
	}

	if len(items) != 10 {
		t.Fatalf("ListAccounts() len = %d, want 10", len(items))
	}
	if items[0].Name != "Mpesa_KES_1" || items[9].Name != "Treasury_NGN_Reserve" {
		t.Fatalf("ListAccounts() order = %s..%s", items[0].Name, items[9].Name)
	}
	if !items[9].Balance.Equal(decimal.NewFromInt(3200000)) || items[9].Currency != entity.CurrencyNGN {
		t.Fatalf("ListAccounts() last = %+v", items[9])
	}
}

func TestInMemoryStore_NewSkipsDuplicateIDs(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore([]entity.Account{
		{ID: "1", Name: "first", Currency: entity.CurrencyKES},
		{ID: "1", Name: "second", Currency: entity.CurrencyUSD},
	})

	items, _ := store.ListAccounts(context.Background())
	if len(items) != 1 || items[0].Name != "first" {
		t.Fatalf("ListAccounts() = %+v, want only the first account", items)
	}
}

func TestInMemoryStore_ReturnsCopies(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	items, _ := store.ListAccounts(context.Background())
	items[0].Balance = decimal.NewFromInt(999)

	if got := balanceOf(t, store, "1"); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("store balance changed through returned slice: %s", got)
	}
}

func TestInMemoryStore_GetNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore()

	if _, err := store.GetAccount(ctx, "404"); !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("GetAccount() err = %v, want %v", err, pkgerror.ErrNotFound)
	}
	if _, err := store.GetTransaction(ctx, "TXN404"); !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("GetTransaction() err = %v, want %v", err, pkgerror.ErrNotFound)
	}
}

func TestInMemoryStore_Commit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore()

	if err := store.Commit(ctx, transferEntry("TXN1", "1", "2", 30)); err != nil {
		t.Fatalf("Commit() err = %v", err)
	}

	if got := balanceOf(t, store, "1"); !got.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("from balance = %s, want 70", got)
	}
	if got := balanceOf(t, store, "2"); !got.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("to balance = %s, want 80", got)
	}

	tx, err := store.GetTransaction(ctx, "TXN1")
	if err != nil {
		t.Fatalf("GetTransaction() err = %v", err)
	}
	if tx.FromAccountID != "1" || tx.ToAccountID != "2" {
		t.Fatalf("GetTransaction() = %+v", tx)
	}
}

func TestInMemoryStore_CommitOverdrawIsAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore()

	err := store.Commit(ctx, transferEntry("TXN1", "2", "1", 51))

	var perr *pkgerror.Error
	if !errors.As(err, &perr) {
		t.Fatalf("Commit() expected pkgerror.Error, got %T", err)
	}
	if perr.Code() != pkgerror.CodeInsufficientFunds {
		t.Fatalf("Commit() error code = %v, want %v", perr.Code(), pkgerror.CodeInsufficientFunds)
	}

	if got := balanceOf(t, store, "1"); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("credited account changed: %s", got)
	}
	if got := balanceOf(t, store, "2"); !got.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("debited account changed: %s", got)
	}
	if _, err := store.GetTransaction(ctx, "TXN1"); !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("failed commit must not append, got %v", err)
	}
}

func TestInMemoryStore_CommitRejects(t *testing.T) {
	t.Parallel()

	// notFound marks cases answered with the plain pkgerror.ErrNotFound sentinel.
	const notFound = pkgerror.Code(-1)

	tests := []struct {
		name  string
		entry usecase.Entry
		code  pkgerror.Code
	}{
		{
			name:  "missing id",
			entry: transferEntry("", "1", "2", 1),
			code:  pkgerror.CodeInvalidInput,
		},
		{
			name:  "duplicate id",
			entry: transferEntry("TXN1", "1", "2", 1),
			code:  pkgerror.CodeConflict,
		},
		{
			name:  "unknown account",
			entry: transferEntry("TXN2", "1", "404", 1),
			code:  notFound,
		},
		{
			name: "unknown reversed transaction",
			entry: func() usecase.Entry {
				e := transferEntry("REV1", "2", "1", 1)
				e.MarkReversed = "TXN404"
				return e
			}(),
			code: notFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			store := newTestStore()
			if err := store.Commit(ctx, transferEntry("TXN1", "1", "2", 10)); err != nil {
				t.Fatalf("seed Commit() err = %v", err)
			}

			err := store.Commit(ctx, tt.entry)

			if tt.code == notFound {
				if !errors.Is(err, pkgerror.ErrNotFound) {
					t.Fatalf("Commit() err = %v, want %v", err, pkgerror.ErrNotFound)
				}
			} else {
				var perr *pkgerror.Error
				if !errors.As(err, &perr) {
					t.Fatalf("Commit() expected pkgerror.Error, got %T (%v)", err, err)
				}
				if perr.Code() != tt.code {
					t.Fatalf("Commit() error code = %v, want %v", perr.Code(), tt.code)
				}
			}
			if got := balanceOf(t, store, "1"); !got.Equal(decimal.NewFromInt(90)) {
				t.Fatalf("balance changed after rejected commit: %s", got)
			}
		})
	}
}

func TestInMemoryStore_CommitMarkReversed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore()
	if err := store.Commit(ctx, transferEntry("TXN1", "1", "2", 10)); err != nil {
		t.Fatalf("Commit() err = %v", err)
	}

	rev := transferEntry("REV1", "2", "1", 10)
	rev.MarkReversed = "TXN1"
	rev.Append.ReversalOf = "TXN1"
	if err := store.Commit(ctx, rev); err != nil {
		t.Fatalf("Commit(reversal) err = %v", err)
	}

	orig, _ := store.GetTransaction(ctx, "TXN1")
	if !orig.IsReversed {
		t.Fatal("original not marked reversed")
	}

	again := transferEntry("REV2", "2", "1", 10)
	again.MarkReversed = "TXN1"
	err := store.Commit(ctx, again)

	var perr *pkgerror.Error
	if !errors.As(err, &perr) || perr.Code() != pkgerror.CodeConflict {
		t.Fatalf("second reversal err = %v, want conflict", err)
	}
	if got := balanceOf(t, store, "1"); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("balance = %s, want 100", got)
	}
}

func TestInMemoryStore_ListTransactions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore()
	for _, id := range []string{"TXN1", "TXN2", "TXN3", "TXN4", "TXN5"} {
		if err := store.Commit(ctx, transferEntry(id, "1", "2", 1)); err != nil {
			t.Fatalf("Commit(%s) err = %v", id, err)
		}
	}

	tests := []struct {
		name      string
		page      int
		pageSize  int
		wantIDs   []string
		wantTotal int
	}{
		{name: "first page", page: 1, pageSize: 2, wantIDs: []string{"TXN5", "TXN4"}, wantTotal: 5},
		{name: "last page", page: 3, pageSize: 2, wantIDs: []string{"TXN1"}, wantTotal: 5},
		{name: "past the end", page: 4, pageSize: 2, wantIDs: []string{}, wantTotal: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := store.ListTransactions(ctx, usecase.TransactionFilter{}, tt.page, tt.pageSize)
			if err != nil {
				t.Fatalf("ListTransactions() err = %v", err)
			}
			if total != tt.wantTotal {
				t.Fatalf("ListTransactions() total = %d, want %d", total, tt.wantTotal)
			}

			gotIDs := make([]string, 0, len(items))
			for _, tx := range items {
				gotIDs = append(gotIDs, tx.ID)
			}
			if !reflect.DeepEqual(gotIDs, tt.wantIDs) {
				t.Fatalf("ListTransactions() ids = %v, want %v", gotIDs, tt.wantIDs)
			}
		})
	}

	items, total, _ := store.ListTransactions(ctx, usecase.TransactionFilter{Currency: entity.CurrencyUSD}, 1, 10)
	if total != 0 || len(items) != 0 {
		t.Fatalf("USD filter = %d items, total %d; want none", len(items), total)
	}
}

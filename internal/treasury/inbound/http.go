package inbound

import (
	"context"

	"github.com/WuorBhang/fund-transfer/internal/pkg/pkgrouter"
	"github.com/WuorBhang/fund-transfer/internal/treasury/entity"
	"github.com/WuorBhang/fund-transfer/internal/treasury/usecase"
	"github.com/shopspring/decimal"
)

type uc interface {
	ListAccounts(ctx context.Context) ([]entity.Account, error)
	GetAccount(ctx context.Context, id string) (entity.Account, error)
	Summary(ctx context.Context) (usecase.SummaryResult, error)
	Transfer(ctx context.Context, in usecase.TransferInput) (usecase.TransferResult, error)
	ListTransactions(ctx context.Context, filter usecase.TransactionFilter, page, pageSize int) (usecase.TransactionsResult, error)
	GetTransaction(ctx context.Context, id string) (entity.Transaction, error)
	ReverseTransaction(ctx context.Context, transactionID string) (usecase.ReversalResult, error)
	Quote(ctx context.Context, amount decimal.Decimal, from, to entity.Currency) (usecase.QuoteResult, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/accounts", end.ListAccounts)
	r.GET("/accounts/:id", end.GetAccount)
	r.GET("/summary", end.Summary)

	r.POST("/transfers", end.Transfer)

	r.GET("/transactions", end.ListTransactions) // ?currency=&type=&state=&page=&page_size=
	r.GET("/transactions/:id", end.GetTransaction)
	r.POST("/transactions/:id/reversal", end.ReverseTransaction)

	r.GET("/fx/quote", end.Quote) // ?amount=&from=&to=
}

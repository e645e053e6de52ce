package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/WuorBhang/fund-transfer/internal/pkg/pkgerror"
	"github.com/WuorBhang/fund-transfer/internal/pkg/pkguid"
	"github.com/WuorBhang/fund-transfer/internal/treasury/entity"
	"github.com/WuorBhang/fund-transfer/internal/treasury/fx"
	"github.com/shopspring/decimal"
)

type Store interface {
	GetAccount(ctx context.Context, id string) (entity.Account, error)
	ListAccounts(ctx context.Context) ([]entity.Account, error)
	GetTransaction(ctx context.Context, id string) (entity.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter, page, pageSize int) ([]entity.Transaction, int, error)
	Commit(ctx context.Context, entry Entry) error
}

type Converter interface {
	Convert(amount decimal.Decimal, from, to entity.Currency) (decimal.Decimal, error)
	Quote(amount decimal.Decimal, from, to entity.Currency) (fx.Quote, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.LedgerEvent) error
}

type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error)
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store      Store
	Converter  Converter
	Events     EventPublisher
	Runner     Runner
	Clock      Clock
	TransferID pkguid.StringID
	ReversalID pkguid.StringID
	EventID    pkguid.StringID
	RootCtx    context.Context
}

// Usecase is the ledger engine. Transfer and ReverseTransaction are
// serialized by mu, so a balance check and the mutation it guards are never
// interleaved with another write.
type Usecase struct {
	mu sync.Mutex

	store      Store
	converter  Converter
	events     EventPublisher
	runner     Runner
	clock      Clock
	transferID pkguid.StringID
	reversalID pkguid.StringID
	eventID    pkguid.StringID
	rootCtx    context.Context
}

func New(dep Dependency) *Usecase {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	converter := dep.Converter
	if converter == nil {
		converter = fx.NewConverter(nil)
	}

	return &Usecase{
		store:      dep.Store,
		converter:  converter,
		events:     dep.Events,
		runner:     dep.Runner,
		clock:      clock,
		transferID: dep.TransferID,
		reversalID: dep.ReversalID,
		eventID:    dep.EventID,
		rootCtx:    root,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Transfer moves in.Amount out of the source account and credits the
// destination, converting when the currencies differ.
func (u *Usecase) Transfer(ctx context.Context, in TransferInput) (TransferResult, error) {
	if u.store == nil || u.transferID == nil {
		return TransferResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	tx, err := u.commitTransfer(ctx, in)
	if err != nil {
		return TransferResult{}, err
	}

	u.publish(entity.LedgerEventTransferCompleted, tx)

	return TransferResult{Transaction: tx}, nil
}

func (u *Usecase) commitTransfer(ctx context.Context, in TransferInput) (entity.Transaction, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	from, err := u.store.GetAccount(ctx, in.FromAccountID)
	if err != nil {
		return entity.Transaction{}, mapAccountErr(err, ErrAccountNotFound)
	}
	to, err := u.store.GetAccount(ctx, in.ToAccountID)
	if err != nil {
		return entity.Transaction{}, mapAccountErr(err, ErrAccountNotFound)
	}

	if from.ID == to.ID {
		return entity.Transaction{}, ErrSameAccount
	}

	if !in.Amount.IsPositive() {
		return entity.Transaction{}, ErrInvalidAmount
	}

	if from.Balance.LessThan(in.Amount) {
		return entity.Transaction{}, ErrInsufficientBalance
	}

	tx := entity.Transaction{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		FromAccount:   from.Name,
		ToAccount:     to.Name,
		Amount:        in.Amount,
		Currency:      from.Currency,
		Note:          in.Note,
		Type:          entity.TxTypeTransfer,
	}

	credited := in.Amount
	if from.Currency != to.Currency {
		credited, err = u.converter.Convert(in.Amount, from.Currency, to.Currency)
		if err != nil {
			return entity.Transaction{}, mapConvertErr(err)
		}

		tx.Type = entity.TxTypeConversion
		tx.ConvertedAmount = decimal.NewNullDecimal(credited)
		tx.ConvertedCurrency = to.Currency
	}

	tx.ID = u.transferID.Generate()
	tx.Timestamp = u.clock.Now().UTC()

	if err := u.store.Commit(ctx, Entry{
		Postings: []Posting{
			{AccountID: from.ID, Delta: in.Amount.Neg()},
			{AccountID: to.ID, Delta: credited},
		},
		Append: tx,
	}); err != nil {
		return entity.Transaction{}, normalizeErr(err)
	}

	return tx, nil
}

// ReverseTransaction undoes a prior transfer or conversion and records the
// reversal as a new transaction. A transaction is reversed at most once and a
// reversal can never be reversed itself.
func (u *Usecase) ReverseTransaction(ctx context.Context, transactionID string) (ReversalResult, error) {
	if u.store == nil || u.reversalID == nil {
		return ReversalResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	result, err := u.commitReversal(ctx, transactionID)
	if err != nil {
		return ReversalResult{}, err
	}

	u.publish(entity.LedgerEventTransactionReversed, result.Reversal)

	return result, nil
}

func (u *Usecase) commitReversal(ctx context.Context, transactionID string) (ReversalResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	orig, err := u.store.GetTransaction(ctx, transactionID)
	if err != nil {
		if errors.Is(err, pkgerror.ErrNotFound) {
			return ReversalResult{}, ErrTransactionNotFound
		}
		return ReversalResult{}, normalizeErr(err)
	}

	if orig.IsReversed {
		return ReversalResult{}, ErrAlreadyReversed
	}

	if orig.ReversalOf != "" {
		return ReversalResult{}, ErrCannotReverseAReversal
	}

	source, err := u.store.GetAccount(ctx, orig.FromAccountID)
	if err != nil {
		return ReversalResult{}, mapAccountErr(err, ErrAccountsNotFound)
	}
	destination, err := u.store.GetAccount(ctx, orig.ToAccountID)
	if err != nil {
		return ReversalResult{}, mapAccountErr(err, ErrAccountsNotFound)
	}

	credited, creditedCurrency := orig.Credited()
	if destination.Balance.LessThan(credited) {
		return ReversalResult{}, ErrInsufficientBalanceForReversal
	}

	rev := entity.Transaction{
		ID:            u.reversalID.Generate(),
		FromAccountID: destination.ID,
		ToAccountID:   source.ID,
		FromAccount:   orig.ToAccount,
		ToAccount:     orig.FromAccount,
		Amount:        credited,
		Currency:      creditedCurrency,
		Note:          fmt.Sprintf("Reversal of transaction %s", orig.ID),
		Timestamp:     u.clock.Now().UTC(),
		Type:          orig.Type,
		ReversalOf:    orig.ID,
	}
	if orig.Type == entity.TxTypeConversion {
		rev.ConvertedAmount = decimal.NewNullDecimal(orig.Amount)
		rev.ConvertedCurrency = orig.Currency
	}

	if err := u.store.Commit(ctx, Entry{
		Postings: []Posting{
			{AccountID: source.ID, Delta: orig.Amount},
			{AccountID: destination.ID, Delta: credited.Neg()},
		},
		Append:       rev,
		MarkReversed: orig.ID,
	}); err != nil {
		return ReversalResult{}, normalizeErr(err)
	}

	orig.IsReversed = true

	return ReversalResult{Reversal: rev, Original: orig}, nil
}

func (u *Usecase) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	accounts, err := u.store.ListAccounts(ctx)
	if err != nil {
		return nil, normalizeErr(err)
	}
	return accounts, nil
}

func (u *Usecase) GetAccount(ctx context.Context, id string) (entity.Account, error) {
	if id == "" {
		return entity.Account{}, pkgerror.NewInvalidInput(errors.New("account id is required"))
	}

	acc, err := u.store.GetAccount(ctx, id)
	if err != nil {
		return entity.Account{}, mapAccountErr(err, ErrAccountNotFound)
	}
	return acc, nil
}

func (u *Usecase) GetTransaction(ctx context.Context, id string) (entity.Transaction, error) {
	if id == "" {
		return entity.Transaction{}, pkgerror.NewInvalidInput(errors.New("transaction id is required"))
	}

	tx, err := u.store.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, pkgerror.ErrNotFound) {
			return entity.Transaction{}, ErrTransactionNotFound
		}
		return entity.Transaction{}, normalizeErr(err)
	}
	return tx, nil
}

// ListTransactions returns the ledger most recent first.
func (u *Usecase) ListTransactions(ctx context.Context, filter TransactionFilter, page, pageSize int) (TransactionsResult, error) {
	if page < 1 || pageSize < 1 {
		return TransactionsResult{}, pkgerror.NewInvalidInput(errors.New("invalid pagination"))
	}

	txs, total, err := u.store.ListTransactions(ctx, filter, page, pageSize)
	if err != nil {
		return TransactionsResult{}, normalizeErr(err)
	}

	return TransactionsResult{
		Transactions: txs,
		Page:         page,
		PageSize:     pageSize,
		Total:        total,
	}, nil
}

// Summary totals balances per currency and counts ledger entries.
func (u *Usecase) Summary(ctx context.Context) (SummaryResult, error) {
	accounts, err := u.store.ListAccounts(ctx)
	if err != nil {
		return SummaryResult{}, normalizeErr(err)
	}

	totals := make(map[entity.Currency]*CurrencyTotal)
	for _, acc := range accounts {
		t, ok := totals[acc.Currency]
		if !ok {
			t = &CurrencyTotal{Currency: acc.Currency}
			totals[acc.Currency] = t
		}
		t.Balance = t.Balance.Add(acc.Balance)
		t.Accounts++
	}

	result := SummaryResult{}
	for _, cur := range entity.Currencies() {
		if t, ok := totals[cur]; ok {
			result.Totals = append(result.Totals, *t)
		}
	}

	counts := []struct {
		filter TransactionFilter
		dst    *int
	}{
		{TransactionFilter{}, &result.Transactions},
		{TransactionFilter{Types: []entity.TxType{entity.TxTypeConversion}}, &result.Conversions},
		{TransactionFilter{States: []entity.TxState{entity.TxStateReversed}}, &result.Reversed},
	}
	for _, c := range counts {
		_, total, err := u.store.ListTransactions(ctx, c.filter, 1, 1)
		if err != nil {
			return SummaryResult{}, normalizeErr(err)
		}
		*c.dst = total
	}

	return result, nil
}

// Quote previews a conversion without touching any balance.
func (u *Usecase) Quote(ctx context.Context, amount decimal.Decimal, from, to entity.Currency) (QuoteResult, error) {
	if !amount.IsPositive() {
		return QuoteResult{}, ErrInvalidAmount
	}

	q, err := u.converter.Quote(amount, from, to)
	if err != nil {
		return QuoteResult{}, mapConvertErr(err)
	}

	return QuoteResult{Quote: q}, nil
}

// publish runs on the runner and must only be called after mu is released.
func (u *Usecase) publish(kind entity.LedgerEventKind, tx entity.Transaction) {
	if u.events == nil || u.runner == nil {
		return
	}

	event := entity.LedgerEvent{
		Kind:        kind,
		Transaction: tx,
		OccurredAt:  tx.Timestamp,
	}
	if u.eventID != nil {
		event.EventID = u.eventID.Generate()
	}

	u.runner.Go(u.rootCtx, func(ctx context.Context) error {
		if err := u.events.Publish(ctx, event); err != nil {
			return fmt.Errorf("publish %s for %s: %w", kind, tx.ID, err)
		}
		return nil
	})
}

func mapAccountErr(err, notFound error) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return notFound
	}
	return normalizeErr(err)
}

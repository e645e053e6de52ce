package store

import (
	"context"
	"errors"
	"sync"

	"github.com/WuorBhang/fund-transfer/internal/pkg/pkgerror"
	"github.com/WuorBhang/fund-transfer/internal/treasury/entity"
	"github.com/WuorBhang/fund-transfer/internal/treasury/usecase"
	"github.com/shopspring/decimal"
)

var errMissingTransactionID = errors.New("transaction id is required")

// InMemoryStore holds the account set and the append-only transaction log.
type InMemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*entity.Account
	order    []string
	txs      []entity.Transaction
	txIndex  map[string]int
}

// NewInMemoryStore creates a store holding a copy of accounts, kept in the given order.
// Duplicate account ids keep the first occurrence.
func NewInMemoryStore(accounts []entity.Account) *InMemoryStore {
	s := &InMemoryStore{
		accounts: make(map[string]*entity.Account, len(accounts)),
		order:    make([]string, 0, len(accounts)),
		txIndex:  make(map[string]int),
	}

	for _, acc := range accounts {
		if _, exists := s.accounts[acc.ID]; exists {
			continue
		}
		s.accounts[acc.ID] = &acc
		s.order = append(s.order, acc.ID)
	}

	return s
}

func (s *InMemoryStore) GetAccount(ctx context.Context, id string) (entity.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return entity.Account{}, pkgerror.ErrNotFound
	}

	return *acc, nil
}

func (s *InMemoryStore) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entity.Account, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, *s.accounts[id])
	}

	return items, nil
}

func (s *InMemoryStore) GetTransaction(ctx context.Context, id string) (entity.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.txIndex[id]
	if !ok {
		return entity.Transaction{}, pkgerror.ErrNotFound
	}

	return s.txs[idx], nil
}

// ListTransactions returns matching transactions most recent first, paginated.
func (s *InMemoryStore) ListTransactions(ctx context.Context, filter usecase.TransactionFilter, page, pageSize int) ([]entity.Transaction, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	start := (page - 1) * pageSize
	end := start + pageSize
	items := make([]entity.Transaction, 0, pageSize)

	for i := len(s.txs) - 1; i >= 0; i-- {
		tx := s.txs[i]
		if !filter.Matches(tx) {
			continue
		}

		if total >= start && total < end {
			items = append(items, tx)
		}
		total++
	}

	return items, total, nil
}

// Commit applies entry atomically: either every posting, the append and the
// reversal mark take effect, or nothing does.
func (s *InMemoryStore) Commit(ctx context.Context, entry usecase.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.Append.ID == "" {
		return pkgerror.NewInvalidInput(errMissingTransactionID)
	}
	if _, exists := s.txIndex[entry.Append.ID]; exists {
		return pkgerror.NewBusiness("transaction already exists", pkgerror.CodeConflict)
	}

	reversedIdx := -1
	if entry.MarkReversed != "" {
		idx, ok := s.txIndex[entry.MarkReversed]
		if !ok {
			return pkgerror.ErrNotFound
		}
		if s.txs[idx].IsReversed {
			return pkgerror.NewBusiness("transaction already reversed", pkgerror.CodeConflict)
		}
		reversedIdx = idx
	}

	balances := make(map[string]decimal.Decimal, len(entry.Postings))
	for _, p := range entry.Postings {
		acc, ok := s.accounts[p.AccountID]
		if !ok {
			return pkgerror.ErrNotFound
		}

		current, seen := balances[p.AccountID]
		if !seen {
			current = acc.Balance
		}
		balances[p.AccountID] = current.Add(p.Delta)
	}

	for _, balance := range balances {
		if balance.IsNegative() {
			return pkgerror.NewBusiness("commit would overdraw account", pkgerror.CodeInsufficientFunds)
		}
	}

	for id, balance := range balances {
		s.accounts[id].Balance = balance
	}
	if reversedIdx >= 0 {
		s.txs[reversedIdx].IsReversed = true
	}
	s.txIndex[entry.Append.ID] = len(s.txs)
	s.txs = append(s.txs, entry.Append)

	return nil
}
